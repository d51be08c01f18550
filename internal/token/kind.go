package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwType represents the 'type' keyword.
	KwType // type
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwTypeof represents the 'typeof' keyword.
	KwTypeof // typeof
	// KwReadonly represents the 'readonly' field modifier.
	KwReadonly // readonly
	// KwTrue represents the 'true' literal.
	KwTrue // true
	// KwFalse represents the 'false' literal.
	KwFalse // false

	// NumberLit represents a numeric literal.
	NumberLit
	// StringLit represents a double-quoted string literal.
	StringLit

	Assign    // =
	EqEq      // ==
	BangEq    // !=
	Pipe      // |
	Question  // ?
	Colon     // :
	Comma     // ,
	Dot       // .
	Lt        // <
	Gt        // >
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	FatArrow  // =>
	Semicolon // ;
	Newline   // statement separator
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case Ident:
		return "identifier"
	case KwType:
		return "'type'"
	case KwLet:
		return "'let'"
	case KwConst:
		return "'const'"
	case KwIf:
		return "'if'"
	case KwElse:
		return "'else'"
	case KwIn:
		return "'in'"
	case KwTypeof:
		return "'typeof'"
	case KwReadonly:
		return "'readonly'"
	case KwTrue:
		return "'true'"
	case KwFalse:
		return "'false'"
	case NumberLit:
		return "number literal"
	case StringLit:
		return "string literal"
	case Assign:
		return "'='"
	case EqEq:
		return "'=='"
	case BangEq:
		return "'!='"
	case Pipe:
		return "'|'"
	case Question:
		return "'?'"
	case Colon:
		return "':'"
	case Comma:
		return "','"
	case Dot:
		return "'.'"
	case Lt:
		return "'<'"
	case Gt:
		return "'>'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case FatArrow:
		return "'=>'"
	case Semicolon:
		return "';'"
	case Newline:
		return "newline"
	default:
		return "unknown"
	}
}
