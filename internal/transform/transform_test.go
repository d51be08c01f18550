package transform

import (
	"errors"
	"testing"

	"lattice/internal/source"
	"lattice/internal/types"
)

func carType(in *types.Interner, names *source.Interner) types.TypeID {
	return in.MustRegisterObject([]types.Field{
		{Name: names.Intern("id"), Type: in.Builtins().Number},
		{Name: names.Intern("name"), Type: in.Builtins().String},
		{Name: names.Intern("email"), Type: in.Builtins().String, Optional: true},
	})
}

func TestPartialForcesOptional(t *testing.T) {
	in := types.NewInterner()
	names := source.NewInterner()
	obj := in.MustRegisterObject([]types.Field{
		{Name: names.Intern("a"), Type: in.Builtins().Number},
		{Name: names.Intern("b"), Type: in.Builtins().String, Readonly: true},
	})

	got, ok := Partial(in, obj)
	if !ok {
		t.Fatalf("partial failed")
	}
	info, _ := in.ObjectInfo(got)
	for _, f := range info.Fields {
		if !f.Optional {
			t.Fatalf("every field must be optional")
		}
	}
	// Readonly flags survive.
	if f, _ := in.FieldByName(got, names.Intern("b")); !f.Readonly {
		t.Fatalf("readonly must be preserved")
	}
}

func TestRequiredForcesPresence(t *testing.T) {
	in := types.NewInterner()
	names := source.NewInterner()
	obj := carType(in, names)

	got, ok := Required(in, obj)
	if !ok {
		t.Fatalf("required failed")
	}
	info, _ := in.ObjectInfo(got)
	for _, f := range info.Fields {
		if f.Optional {
			t.Fatalf("every field must be required")
		}
	}
}

func TestPartialOfRequiredEqualsPartial(t *testing.T) {
	in := types.NewInterner()
	names := source.NewInterner()
	obj := carType(in, names)

	req, _ := Required(in, obj)
	left, _ := Partial(in, req)
	right, _ := Partial(in, obj)
	if !in.Equal(left, right) {
		t.Fatalf("partial(required(t)) must equal partial(t)")
	}
}

func TestReadonlyOf(t *testing.T) {
	in := types.NewInterner()
	names := source.NewInterner()
	obj := carType(in, names)

	got, ok := ReadonlyOf(in, obj)
	if !ok {
		t.Fatalf("readonlyOf failed")
	}
	info, _ := in.ObjectInfo(got)
	for _, f := range info.Fields {
		if !f.Readonly {
			t.Fatalf("every field must be readonly")
		}
	}
	// Optionality untouched.
	if f, _ := in.FieldByName(got, names.Intern("email")); !f.Optional {
		t.Fatalf("optional must be preserved")
	}
}

func TestOmitDropsFields(t *testing.T) {
	in := types.NewInterner()
	names := source.NewInterner()
	obj := carType(in, names)
	email := names.Intern("email")

	got, err := Omit(in, obj, []source.StringID{email}, names)
	if err != nil {
		t.Fatalf("omit: %v", err)
	}
	want := in.MustRegisterObject([]types.Field{
		{Name: names.Intern("id"), Type: in.Builtins().Number},
		{Name: names.Intern("name"), Type: in.Builtins().String},
	})
	if !in.Equal(got, want) {
		t.Fatalf("omit result mismatch: %s", in.Format(got, names))
	}
}

func TestOmitUnknownKeyFails(t *testing.T) {
	in := types.NewInterner()
	names := source.NewInterner()
	obj := carType(in, names)

	_, err := Omit(in, obj, []source.StringID{names.Intern("ssn")}, names)
	var unknownKey *UnknownKeyError
	if !errors.As(err, &unknownKey) {
		t.Fatalf("expected UnknownKeyError, got %v", err)
	}
	if unknownKey.Key != "ssn" {
		t.Fatalf("error must name the key, got %q", unknownKey.Key)
	}
}

func TestOmitIsNotIdempotentOnTheSameKey(t *testing.T) {
	in := types.NewInterner()
	names := source.NewInterner()
	obj := carType(in, names)
	email := names.Intern("email")

	once, err := Omit(in, obj, []source.StringID{email}, names)
	if err != nil {
		t.Fatalf("first omit: %v", err)
	}
	_, err = Omit(in, once, []source.StringID{email}, names)
	var unknownKey *UnknownKeyError
	if !errors.As(err, &unknownKey) {
		t.Fatalf("second omit must fail with UnknownKeyError, got %v", err)
	}
}

func TestTransformsRejectNonObjects(t *testing.T) {
	in := types.NewInterner()
	names := source.NewInterner()

	if _, ok := Partial(in, in.Builtins().String); ok {
		t.Fatalf("partial must reject non-objects")
	}
	if _, err := Omit(in, in.Builtins().String, nil, names); err == nil {
		t.Fatalf("omit must reject non-objects")
	}
}

func TestTransformsNeverMutateInput(t *testing.T) {
	in := types.NewInterner()
	names := source.NewInterner()
	obj := carType(in, names)

	before := in.Format(obj, names)
	if _, ok := Partial(in, obj); !ok {
		t.Fatalf("partial failed")
	}
	if _, ok := ReadonlyOf(in, obj); !ok {
		t.Fatalf("readonlyOf failed")
	}
	if after := in.Format(obj, names); after != before {
		t.Fatalf("input mutated: %s -> %s", before, after)
	}
}
