// Package ast defines the syntax tree for lattice scripts. Nodes are
// plain pointers: scripts are screenfuls, not compilation units, so an
// arena brings nothing here.
package ast

import (
	"lattice/internal/source"
)

// File is a parsed script: a statement sequence.
type File struct {
	Path  string
	Stmts []Stmt
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Span() source.Span
	stmtNode()
}

// TypeDecl declares a named type alias: type Name = Expr.
type TypeDecl struct {
	Name     source.StringID
	NameText string
	Type     TypeExpr
	Sp       source.Span
}

// LetDecl declares a binding: let/const name[: Type] = value.
type LetDecl struct {
	Name     source.StringID
	NameText string
	Const    bool
	Type     TypeExpr // nil when inferred from the initializer
	Value    Expr
	Sp       source.Span
}

// AssignStmt reassigns a binding or writes a field: name = v, name.f = v.
type AssignStmt struct {
	Name  source.StringID
	Field source.StringID // NoStringID for a plain reassignment
	Value Expr
	Sp    source.Span
}

// IfStmt is a guarded conditional narrowing a union-typed binding.
type IfStmt struct {
	Guard Guard
	Then  []Stmt
	Else  []Stmt // nil when absent
	Sp    source.Span
}

func (s *TypeDecl) Span() source.Span   { return s.Sp }
func (s *LetDecl) Span() source.Span    { return s.Sp }
func (s *AssignStmt) Span() source.Span { return s.Sp }
func (s *IfStmt) Span() source.Span     { return s.Sp }

func (*TypeDecl) stmtNode()   {}
func (*LetDecl) stmtNode()    {}
func (*AssignStmt) stmtNode() {}
func (*IfStmt) stmtNode()     {}

// GuardKind selects the narrowing mechanism of an if-statement.
type GuardKind uint8

const (
	// GuardTypeof is `typeof name == "kind"` (or !=).
	GuardTypeof GuardKind = iota
	// GuardIn is `"field" in name`.
	GuardIn
)

// Guard is the condition of an IfStmt.
type Guard struct {
	Kind    GuardKind
	Binding source.StringID
	TagName string          // typeof comparand: "string", "number", "boolean"
	Negated bool            // typeof ... != "kind"
	Field   source.StringID // for GuardIn
	Sp      source.Span
}
