package check

import (
	"fmt"

	"lattice/internal/types"
)

// TypeMismatchError reports an assignment whose value type is not
// compatible with the declared type. Path names the nested location of the
// first mismatch ("" for the top level).
type TypeMismatchError struct {
	Expected types.TypeID
	Actual   types.TypeID
	Path     string
	Reason   string
}

func (e *TypeMismatchError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("type mismatch at %s: %s", e.Path, e.Reason)
	}
	return "type mismatch: " + e.Reason
}

// ImmutableBindingError reports reassignment of a const binding.
type ImmutableBindingError struct {
	Name string
}

func (e *ImmutableBindingError) Error() string {
	return fmt.Sprintf("cannot reassign const binding %q", e.Name)
}

// ReadonlyViolationError reports a write to a readonly field.
type ReadonlyViolationError struct {
	Name  string
	Field string
}

func (e *ReadonlyViolationError) Error() string {
	return fmt.Sprintf("cannot write readonly field %q of %q", e.Field, e.Name)
}

// UnnarrowedUnknownError reports consumption of an unknown-typed value
// before any narrowing check.
type UnnarrowedUnknownError struct {
	Name string
}

func (e *UnnarrowedUnknownError) Error() string {
	if e.Name == "" {
		return "value of type unknown must be narrowed before use"
	}
	return fmt.Sprintf("%q has type unknown and must be narrowed before use", e.Name)
}

// RecursionLimitError reports that a single compatibility walk exceeded
// the configured depth. The checker itself stays usable.
type RecursionLimitError struct {
	Depth int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("type recursion limit exceeded (depth %d)", e.Depth)
}
