package parser

import (
	"testing"

	"lattice/internal/ast"
	"lattice/internal/diag"
	"lattice/internal/source"
)

func parseScript(t *testing.T, src string) (*ast.File, *diag.Bag, *source.Interner) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lat", []byte(src))
	names := source.NewInterner()
	bag := diag.NewBag(0)
	file := ParseFile(fs.Get(id), names, diag.BagReporter{Bag: bag})
	return file, bag, names
}

func mustParse(t *testing.T, src string) (*ast.File, *source.Interner) {
	t.Helper()
	file, bag, names := parseScript(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	return file, names
}

func TestParseTypeDecl(t *testing.T) {
	file, names := mustParse(t, `type Pet = Fish | Bird`)
	if len(file.Stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(file.Stmts))
	}
	decl, ok := file.Stmts[0].(*ast.TypeDecl)
	if !ok {
		t.Fatalf("want *ast.TypeDecl, got %T", file.Stmts[0])
	}
	if decl.NameText != "Pet" {
		t.Fatalf("name = %q", decl.NameText)
	}
	union, ok := decl.Type.(*ast.UnionType)
	if !ok {
		t.Fatalf("want union, got %T", decl.Type)
	}
	if len(union.Members) != 2 {
		t.Fatalf("want 2 members, got %d", len(union.Members))
	}
	first := union.Members[0].(*ast.NamedType)
	if got, _ := names.Lookup(first.Name); got != "Fish" {
		t.Fatalf("first member = %q", got)
	}
}

func TestParseObjectType(t *testing.T) {
	file, _ := mustParse(t, `type Car = {make: string, model: string, year?: number, readonly vin: string}`)
	decl := file.Stmts[0].(*ast.TypeDecl)
	obj, ok := decl.Type.(*ast.ObjectType)
	if !ok {
		t.Fatalf("want object type, got %T", decl.Type)
	}
	if len(obj.Fields) != 4 {
		t.Fatalf("want 4 fields, got %d", len(obj.Fields))
	}
	if obj.Fields[2].NameText != "year" || !obj.Fields[2].Optional {
		t.Fatalf("year field: %+v", obj.Fields[2])
	}
	if obj.Fields[3].NameText != "vin" || !obj.Fields[3].Readonly {
		t.Fatalf("vin field: %+v", obj.Fields[3])
	}
}

func TestParseMultilineObjectType(t *testing.T) {
	file, _ := mustParse(t, `type Car = {
	make: string
	model: string
}`)
	obj := file.Stmts[0].(*ast.TypeDecl).Type.(*ast.ObjectType)
	if len(obj.Fields) != 2 {
		t.Fatalf("want 2 fields, got %d", len(obj.Fields))
	}
}

func TestParseArrayAndTuple(t *testing.T) {
	file, _ := mustParse(t, "type Pair = [string, number]\ntype Names = string[]\ntype Rows = (string | number)[]")
	if len(file.Stmts) != 3 {
		t.Fatalf("want 3 statements, got %d", len(file.Stmts))
	}
	if tup, ok := file.Stmts[0].(*ast.TypeDecl).Type.(*ast.TupleType); !ok || len(tup.Elems) != 2 {
		t.Fatalf("bad tuple: %#v", file.Stmts[0].(*ast.TypeDecl).Type)
	}
	arr, ok := file.Stmts[1].(*ast.TypeDecl).Type.(*ast.ArrayType)
	if !ok {
		t.Fatalf("want array, got %T", file.Stmts[1].(*ast.TypeDecl).Type)
	}
	if _, ok := arr.Elem.(*ast.NamedType); !ok {
		t.Fatalf("array elem: %T", arr.Elem)
	}
	grouped, ok := file.Stmts[2].(*ast.TypeDecl).Type.(*ast.ArrayType)
	if !ok {
		t.Fatalf("want array of group, got %T", file.Stmts[2].(*ast.TypeDecl).Type)
	}
	if _, ok := grouped.Elem.(*ast.UnionType); !ok {
		t.Fatalf("grouped elem: %T", grouped.Elem)
	}
}

func TestParseFnType(t *testing.T) {
	file, _ := mustParse(t, `type Handler = (string, number) => bool`)
	fn, ok := file.Stmts[0].(*ast.TypeDecl).Type.(*ast.FnType)
	if !ok {
		t.Fatalf("want fn type, got %T", file.Stmts[0].(*ast.TypeDecl).Type)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("want 2 params, got %d", len(fn.Params))
	}
	if _, ok := fn.Result.(*ast.NamedType); !ok {
		t.Fatalf("result: %T", fn.Result)
	}
}

func TestParseGenericApplication(t *testing.T) {
	file, _ := mustParse(t, `type Draft = Partial<Car>
type Slim = Omit<Car, "vin", "year">`)
	gen := file.Stmts[0].(*ast.TypeDecl).Type.(*ast.GenericType)
	if gen.BaseText != "Partial" || len(gen.Args) != 1 {
		t.Fatalf("partial: %+v", gen)
	}
	omit := file.Stmts[1].(*ast.TypeDecl).Type.(*ast.GenericType)
	if omit.BaseText != "Omit" || len(omit.Args) != 3 {
		t.Fatalf("omit: %+v", omit)
	}
	key, ok := omit.Args[1].(*ast.LiteralType)
	if !ok || !key.IsStr || key.Text != "vin" {
		t.Fatalf("omit key: %#v", omit.Args[1])
	}
}

func TestParseLiteralTypes(t *testing.T) {
	file, _ := mustParse(t, `type Flag = "on" | "off" | 0 | true`)
	union := file.Stmts[0].(*ast.TypeDecl).Type.(*ast.UnionType)
	lit := union.Members[0].(*ast.LiteralType)
	if !lit.IsStr || lit.Text != "on" {
		t.Fatalf("first literal: %+v", lit)
	}
	num := union.Members[2].(*ast.LiteralType)
	if num.IsStr || num.IsBool || num.Text != "0" {
		t.Fatalf("number literal: %+v", num)
	}
	b := union.Members[3].(*ast.LiteralType)
	if !b.IsBool || b.Text != "true" {
		t.Fatalf("bool literal: %+v", b)
	}
}

func TestParseLetConstAssign(t *testing.T) {
	file, _ := mustParse(t, `let name: string = "ada"
const limit = 10
name = "grace"
car.year = 1988`)
	if len(file.Stmts) != 4 {
		t.Fatalf("want 4 statements, got %d", len(file.Stmts))
	}
	let := file.Stmts[0].(*ast.LetDecl)
	if let.Const || let.Type == nil {
		t.Fatalf("let: %+v", let)
	}
	cons := file.Stmts[1].(*ast.LetDecl)
	if !cons.Const || cons.Type != nil {
		t.Fatalf("const: %+v", cons)
	}
	assign := file.Stmts[2].(*ast.AssignStmt)
	if assign.Field != source.NoStringID {
		t.Fatalf("plain assign has field set")
	}
	fieldAssign := file.Stmts[3].(*ast.AssignStmt)
	if fieldAssign.Field == source.NoStringID {
		t.Fatalf("field assign missing field")
	}
}

func TestParseObjectAndArrayLiterals(t *testing.T) {
	file, _ := mustParse(t, `let car = {make: "honda", year: 1999}
let xs = [1, 2, 3]`)
	obj := file.Stmts[0].(*ast.LetDecl).Value.(*ast.ObjectLit)
	if len(obj.Entries) != 2 || obj.Entries[0].NameText != "make" {
		t.Fatalf("object literal: %+v", obj)
	}
	arr := file.Stmts[1].(*ast.LetDecl).Value.(*ast.ArrayLit)
	if len(arr.Elems) != 3 {
		t.Fatalf("array literal: %+v", arr)
	}
}

func TestParseTypeofGuard(t *testing.T) {
	file, _ := mustParse(t, `if typeof id == "string" {
	id = "x"
} else {
	id = 2
}`)
	ifStmt := file.Stmts[0].(*ast.IfStmt)
	if ifStmt.Guard.Kind != ast.GuardTypeof || ifStmt.Guard.TagName != "string" || ifStmt.Guard.Negated {
		t.Fatalf("guard: %+v", ifStmt.Guard)
	}
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 1 {
		t.Fatalf("branches: then=%d else=%d", len(ifStmt.Then), len(ifStmt.Else))
	}
}

func TestParseNegatedTypeofAndInGuard(t *testing.T) {
	file, _ := mustParse(t, `if typeof id != "number" { id = "x" }
if "swim" in pet { pet = fish }`)
	neg := file.Stmts[0].(*ast.IfStmt)
	if !neg.Guard.Negated {
		t.Fatalf("negation lost: %+v", neg.Guard)
	}
	in := file.Stmts[1].(*ast.IfStmt)
	if in.Guard.Kind != ast.GuardIn || in.Guard.Field == source.NoStringID {
		t.Fatalf("in guard: %+v", in.Guard)
	}
}

func TestParseElseIfChain(t *testing.T) {
	file, _ := mustParse(t, `if typeof v == "string" { v = "a" } else if typeof v == "number" { v = 1 } else { v = true }`)
	outer := file.Stmts[0].(*ast.IfStmt)
	if len(outer.Else) != 1 {
		t.Fatalf("else arm: %d statements", len(outer.Else))
	}
	inner, ok := outer.Else[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("want nested if, got %T", outer.Else[0])
	}
	if inner.Guard.TagName != "number" || len(inner.Else) != 1 {
		t.Fatalf("inner: %+v", inner)
	}
}

func TestParseRecoversPerStatement(t *testing.T) {
	file, bag, _ := parseScript(t, `let = "broken"
let ok = 1
type = Car
const fine = "yes"`)
	if !bag.HasErrors() {
		t.Fatalf("expected syntax errors")
	}
	if len(file.Stmts) != 2 {
		t.Fatalf("want the 2 good statements, got %d", len(file.Stmts))
	}
}

func TestParseDuplicateFieldRejected(t *testing.T) {
	_, bag, _ := parseScript(t, `type T = {a: string, a: number}`)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynDuplicateField {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing duplicate-field diagnostic: %v", bag.Items())
	}
}

func TestParseMissingGuardDiagnostic(t *testing.T) {
	_, bag, _ := parseScript(t, `if x { x = 1 }`)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectGuard {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing guard diagnostic: %v", bag.Items())
	}
}

func TestParseFieldAccessChain(t *testing.T) {
	file, _ := mustParse(t, `let y = a.b.c`)
	outer := file.Stmts[0].(*ast.LetDecl).Value.(*ast.FieldExpr)
	if outer.Text != "c" {
		t.Fatalf("outer field: %q", outer.Text)
	}
	inner := outer.Base.(*ast.FieldExpr)
	if inner.Text != "b" {
		t.Fatalf("inner field: %q", inner.Text)
	}
	if _, ok := inner.Base.(*ast.IdentExpr); !ok {
		t.Fatalf("base: %T", inner.Base)
	}
}
