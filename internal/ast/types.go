package ast

import "lattice/internal/source"

// TypeExpr is implemented by every type-expression node.
type TypeExpr interface {
	Span() source.Span
	typeExprNode()
}

// NamedType references a primitive, special, or user-declared type name.
type NamedType struct {
	Name     source.StringID
	NameText string
	Sp       source.Span
}

// LiteralType is an exact-value type: "on", 42, true.
type LiteralType struct {
	Text   string // canonical value text
	IsStr  bool
	IsBool bool
	Sp     source.Span
}

// ArrayType is Elem[].
type ArrayType struct {
	Elem TypeExpr
	Sp   source.Span
}

// TupleType is [A, B, ...].
type TupleType struct {
	Elems []TypeExpr
	Sp    source.Span
}

// ObjectField is one entry of an ObjectType.
type ObjectField struct {
	Name     source.StringID
	NameText string
	Type     TypeExpr
	Optional bool
	Readonly bool
	Sp       source.Span
}

// ObjectType is {a: T, b?: U, readonly c: V}.
type ObjectType struct {
	Fields []ObjectField
	Sp     source.Span
}

// UnionType is A | B | C.
type UnionType struct {
	Members []TypeExpr
	Sp      source.Span
}

// FnType is (A, B) => R.
type FnType struct {
	Params []TypeExpr
	Result TypeExpr
	Sp     source.Span
}

// GenericType is Name<Args>: a nominal type application or one of the
// builtin transforms (Partial, Required, Readonly, Omit). Omit's key list
// arrives as string LiteralType arguments; the checker pulls them apart.
type GenericType struct {
	Base     source.StringID
	BaseText string
	Args     []TypeExpr
	Sp       source.Span
}

func (t *NamedType) Span() source.Span   { return t.Sp }
func (t *LiteralType) Span() source.Span { return t.Sp }
func (t *ArrayType) Span() source.Span   { return t.Sp }
func (t *TupleType) Span() source.Span   { return t.Sp }
func (t *ObjectType) Span() source.Span  { return t.Sp }
func (t *UnionType) Span() source.Span   { return t.Sp }
func (t *FnType) Span() source.Span      { return t.Sp }
func (t *GenericType) Span() source.Span { return t.Sp }

func (*NamedType) typeExprNode()   {}
func (*LiteralType) typeExprNode() {}
func (*ArrayType) typeExprNode()   {}
func (*TupleType) typeExprNode()   {}
func (*ObjectType) typeExprNode()  {}
func (*UnionType) typeExprNode()   {}
func (*FnType) typeExprNode()      {}
func (*GenericType) typeExprNode() {}
