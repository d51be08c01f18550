package diag

// Severity ranks how much a diagnostic should worry the reader.
type Severity uint8

const (
	// SevInfo carries context that is never a defect on its own.
	SevInfo Severity = iota
	// SevWarning flags suspicious but well-typed code, such as a branch
	// that can never run.
	SevWarning
	// SevError marks a rule violation; a bag holding one fails the run.
	SevError
)

// String renders the severity the way the terminal renderer prints it.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
