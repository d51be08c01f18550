package ast

import "lattice/internal/source"

// Expr is implemented by every value-expression node.
type Expr interface {
	Span() source.Span
	exprNode()
}

// StringLit is a double-quoted string value.
type StringLit struct {
	Value string // unescaped contents
	Sp    source.Span
}

// NumberLit is a numeric value in canonical text form.
type NumberLit struct {
	Text string
	Sp   source.Span
}

// BoolLit is true or false.
type BoolLit struct {
	Value bool
	Sp    source.Span
}

// IdentExpr references a binding by name.
type IdentExpr struct {
	Name     source.StringID
	NameText string
	Sp       source.Span
}

// ObjectEntry is one key: value pair of an ObjectLit.
type ObjectEntry struct {
	Name     source.StringID
	NameText string
	Value    Expr
	Sp       source.Span
}

// ObjectLit is {a: 1, b: "x"}.
type ObjectLit struct {
	Entries []ObjectEntry
	Sp      source.Span
}

// ArrayLit is [e1, e2, ...].
type ArrayLit struct {
	Elems []Expr
	Sp    source.Span
}

// FieldExpr is base.field access.
type FieldExpr struct {
	Base  Expr
	Field source.StringID
	Text  string
	Sp    source.Span
}

func (e *StringLit) Span() source.Span { return e.Sp }
func (e *NumberLit) Span() source.Span { return e.Sp }
func (e *BoolLit) Span() source.Span   { return e.Sp }
func (e *IdentExpr) Span() source.Span { return e.Sp }
func (e *ObjectLit) Span() source.Span { return e.Sp }
func (e *ArrayLit) Span() source.Span  { return e.Sp }
func (e *FieldExpr) Span() source.Span { return e.Sp }

func (*StringLit) exprNode() {}
func (*NumberLit) exprNode() {}
func (*BoolLit) exprNode()   {}
func (*IdentExpr) exprNode() {}
func (*ObjectLit) exprNode() {}
func (*ArrayLit) exprNode()  {}
func (*FieldExpr) exprNode() {}
