package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAny
	KindUnknown
	KindNever
	KindBool
	KindNumber
	KindString
	KindLiteral
	KindArray
	KindTuple
	KindObject
	KindUnion
	KindFn
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindAny:
		return "any"
	case KindUnknown:
		return "unknown"
	case KindNever:
		return "never"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindLiteral:
		return "literal"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindObject:
		return "object"
	case KindUnion:
		return "union"
	case KindFn:
		return "function"
	case KindGeneric:
		return "generic"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Primitive reports whether k is one of the three value primitives.
func (k Kind) Primitive() bool {
	return k == KindBool || k == KindNumber || k == KindString
}

// Type is a compact descriptor for any supported type. Composite kinds keep
// their structure in a side table addressed by Payload.
type Type struct {
	Kind    Kind
	Elem    TypeID // element type for arrays
	Payload uint32 // side-table slot for literal/tuple/object/union/fn/generic
}

// MakeArray describes an array of element type.
func MakeArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}
