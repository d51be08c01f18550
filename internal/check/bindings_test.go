package check

import (
	"errors"
	"testing"

	"lattice/internal/source"
	"lattice/internal/types"
)

func TestAssignUnionAbsorbsBothWays(t *testing.T) {
	c, in, names := newTestChecker()
	b := in.Builtins()
	u := in.RegisterUnion([]types.TypeID{b.String, b.Number})

	id := &Binding{Name: names.Intern("id"), Declared: u}
	if err := c.Assign(id, in.RegisterLiteral(types.KindString, "ID123")); err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	if err := c.Assign(id, in.RegisterLiteral(types.KindNumber, "456")); err != nil {
		t.Fatalf("second assignment: %v", err)
	}
	if err := c.Assign(id, b.Bool); err == nil {
		t.Fatalf("expected mismatch for boolean")
	} else {
		var mismatch *TypeMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("expected TypeMismatchError, got %T", err)
		}
	}
}

func TestAssignConstRejected(t *testing.T) {
	c, in, names := newTestChecker()
	b := in.Builtins()

	origin := &Binding{Name: names.Intern("origin"), Declared: b.Number, Const: true}
	err := c.Assign(origin, b.Number)
	var immutable *ImmutableBindingError
	if !errors.As(err, &immutable) {
		t.Fatalf("expected ImmutableBindingError, got %v", err)
	}
}

func TestAssignUnknownValueRejected(t *testing.T) {
	c, in, names := newTestChecker()
	b := in.Builtins()

	s := &Binding{Name: names.Intern("s"), Declared: b.String}
	err := c.Assign(s, b.Unknown)
	var unnarrowed *UnnarrowedUnknownError
	if !errors.As(err, &unnarrowed) {
		t.Fatalf("expected UnnarrowedUnknownError, got %v", err)
	}

	// unknown flows into unknown and any without narrowing.
	sink := &Binding{Name: names.Intern("sink"), Declared: b.Unknown}
	if err := c.Assign(sink, b.Unknown); err != nil {
		t.Fatalf("unknown into unknown: %v", err)
	}
}

func TestAssignFieldReadonly(t *testing.T) {
	c, in, names := newTestChecker()
	b := in.Builtins()
	mk := names.Intern("make")

	car := in.MustRegisterObject([]types.Field{{Name: mk, Type: b.String, Readonly: true}})
	bnd := &Binding{Name: names.Intern("car"), Declared: car}

	err := c.AssignField(bnd, mk, b.String)
	var readonly *ReadonlyViolationError
	if !errors.As(err, &readonly) {
		t.Fatalf("expected ReadonlyViolationError, got %v", err)
	}
}

func TestAssignFieldTypeChecked(t *testing.T) {
	c, in, names := newTestChecker()
	b := in.Builtins()
	year := names.Intern("year")

	car := in.MustRegisterObject([]types.Field{{Name: year, Type: b.Number}})
	bnd := &Binding{Name: names.Intern("car"), Declared: car}

	if err := c.AssignField(bnd, year, in.RegisterLiteral(types.KindNumber, "2021")); err != nil {
		t.Fatalf("valid field write: %v", err)
	}
	if err := c.AssignField(bnd, year, b.String); err == nil {
		t.Fatalf("expected mismatch")
	}
	if err := c.AssignField(bnd, names.Intern("vin"), b.String); err == nil {
		t.Fatalf("expected unknown field failure")
	}
}

func TestAssignFieldThroughAny(t *testing.T) {
	c, in, names := newTestChecker()
	b := in.Builtins()

	bnd := &Binding{Name: names.Intern("blob"), Declared: b.Any}
	if err := c.AssignField(bnd, names.Intern("anything"), b.String); err != nil {
		t.Fatalf("field write through any: %v", err)
	}
	if err := c.AssignField(bnd, names.Intern("other"), b.Unknown); err != nil {
		t.Fatalf("unknown into a field of any: %v", err)
	}
}

func TestEnvScopesAndShadowing(t *testing.T) {
	_, in, names := newTestChecker()
	b := in.Builtins()
	x := names.Intern("x")

	env := NewEnv()
	if err := env.Declare(&Binding{Name: x, Declared: b.Number}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	if err := env.Declare(&Binding{Name: x, Declared: b.String}); err == nil {
		t.Fatalf("redeclaration in same scope must fail")
	}

	env.Push()
	if err := env.Declare(&Binding{Name: x, Declared: b.String}); err != nil {
		t.Fatalf("shadowing in inner scope: %v", err)
	}
	if got, _ := env.EffectiveType(x); got != b.String {
		t.Fatalf("inner scope must win")
	}
	env.Pop()
	if got, _ := env.EffectiveType(x); got != b.Number {
		t.Fatalf("binding must die with its scope")
	}
}

func TestNarrowFramesScopeRefinements(t *testing.T) {
	c, in, names := newTestChecker()
	b := in.Builtins()
	id := names.Intern("id")
	u := in.RegisterUnion([]types.TypeID{b.String, b.Number})

	env := NewEnv()
	if err := env.Declare(&Binding{Name: id, Declared: u}); err != nil {
		t.Fatalf("declare: %v", err)
	}

	then, _ := c.Narrow(u, TagIs(types.KindString))
	env.PushNarrow(map[source.StringID]types.TypeID{id: then})
	if got, _ := env.EffectiveType(id); got != b.String {
		t.Fatalf("refinement must win inside the branch")
	}
	env.PopNarrow()
	if got, _ := env.EffectiveType(id); got != u {
		t.Fatalf("refinement must not leak past the branch")
	}
}
