package types

import (
	"testing"

	"lattice/internal/source"
)

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Any == NoTypeID || b.Unknown == NoTypeID || b.Never == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	if in.Kind(b.Number) != KindNumber {
		t.Fatalf("expected number kind, got %v", in.Kind(b.Number))
	}
}

func TestInternerDeduplicatesArrays(t *testing.T) {
	in := NewInterner()
	a1 := in.RegisterArray(in.Builtins().String)
	a2 := in.RegisterArray(in.Builtins().String)
	if a1 != a2 {
		t.Fatalf("array types should be deduplicated")
	}
	if elem, ok := in.ArrayElem(a1); !ok || elem != in.Builtins().String {
		t.Fatalf("element type lost")
	}
}

func TestLiteralIdentity(t *testing.T) {
	in := NewInterner()
	a := in.RegisterLiteral(KindString, "ID123")
	b := in.RegisterLiteral(KindString, "ID123")
	c := in.RegisterLiteral(KindNumber, "456")
	if a != b {
		t.Fatalf("same literal must intern once")
	}
	if a == c {
		t.Fatalf("distinct literals must differ")
	}
	if in.RegisterLiteral(KindArray, "x") != NoTypeID {
		t.Fatalf("literal base must be a primitive")
	}
}

func TestObjectFieldOrderIrrelevant(t *testing.T) {
	in := NewInterner()
	names := source.NewInterner()
	id := names.Intern("id")
	name := names.Intern("name")
	b := in.Builtins()

	first := in.MustRegisterObject([]Field{
		{Name: id, Type: b.Number},
		{Name: name, Type: b.String},
	})
	second := in.MustRegisterObject([]Field{
		{Name: name, Type: b.String},
		{Name: id, Type: b.Number},
	})
	if first != second {
		t.Fatalf("field order must not split identity")
	}
}

func TestObjectDuplicateFieldRejected(t *testing.T) {
	in := NewInterner()
	names := source.NewInterner()
	id := names.Intern("id")
	_, err := in.RegisterObject([]Field{
		{Name: id, Type: in.Builtins().Number},
		{Name: id, Type: in.Builtins().String},
	})
	if err == nil {
		t.Fatalf("expected duplicate field error")
	}
}

func TestObjectFlagsAffectIdentity(t *testing.T) {
	in := NewInterner()
	names := source.NewInterner()
	year := names.Intern("year")
	b := in.Builtins()

	plain := in.MustRegisterObject([]Field{{Name: year, Type: b.Number}})
	opt := in.MustRegisterObject([]Field{{Name: year, Type: b.Number, Optional: true}})
	ro := in.MustRegisterObject([]Field{{Name: year, Type: b.Number, Readonly: true}})
	if plain == opt || plain == ro || opt == ro {
		t.Fatalf("optional/readonly must distinguish object types")
	}
}

func TestUnionCanonicalization(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	u1 := in.RegisterUnion([]TypeID{b.String, b.Number})
	u2 := in.RegisterUnion([]TypeID{b.Number, b.String})
	if u1 != u2 {
		t.Fatalf("member order must not split identity")
	}

	nested := in.RegisterUnion([]TypeID{u1, b.Bool})
	info, ok := in.UnionInfo(nested)
	if !ok || len(info.Members) != 3 {
		t.Fatalf("nested union must flatten, got %v", info)
	}

	if got := in.RegisterUnion([]TypeID{b.String, b.String}); got != b.String {
		t.Fatalf("singleton set must collapse to its member")
	}
	if got := in.RegisterUnion(nil); got != b.Never {
		t.Fatalf("empty set must collapse to never")
	}
}

func TestFnAndGenericIdentity(t *testing.T) {
	in := NewInterner()
	names := source.NewInterner()
	b := in.Builtins()

	f1 := in.RegisterFn([]TypeID{b.String}, b.Number)
	f2 := in.RegisterFn([]TypeID{b.String}, b.Number)
	f3 := in.RegisterFn([]TypeID{b.Number}, b.Number)
	if f1 != f2 || f1 == f3 {
		t.Fatalf("fn identity broken")
	}

	box := names.Intern("Box")
	g1 := in.RegisterGeneric(box, []TypeID{b.Number})
	g2 := in.RegisterGeneric(box, []TypeID{b.Number})
	g3 := in.RegisterGeneric(box, []TypeID{b.String})
	if g1 != g2 || g1 == g3 {
		t.Fatalf("generic identity broken")
	}
}
