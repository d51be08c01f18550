package types

import (
	"testing"

	"lattice/internal/source"
)

func TestFormatObject(t *testing.T) {
	in := NewInterner()
	names := source.NewInterner()
	b := in.Builtins()

	car := in.MustRegisterObject([]Field{
		{Name: names.Intern("make"), Type: b.String},
		{Name: names.Intern("model"), Type: b.String},
		{Name: names.Intern("year"), Type: b.Number, Optional: true},
	})
	want := "{make: string, model: string, year?: number}"
	if got := in.Format(car, names); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatComposites(t *testing.T) {
	in := NewInterner()
	names := source.NewInterner()
	b := in.Builtins()

	union := in.RegisterUnion([]TypeID{b.String, b.Number})
	cases := []struct {
		id   TypeID
		want string
	}{
		{in.RegisterLiteral(KindString, "ID123"), `"ID123"`},
		{in.RegisterLiteral(KindNumber, "456"), "456"},
		{in.RegisterArray(b.String), "string[]"},
		{in.RegisterArray(union), "(string | number)[]"},
		{in.RegisterTuple([]TypeID{b.Number, b.Number}), "[number, number]"},
		{in.RegisterFn([]TypeID{b.String}, b.Bool), "(string) => boolean"},
		{in.RegisterGeneric(names.Intern("Box"), []TypeID{b.Number}), "Box<number>"},
		{b.Never, "never"},
	}
	for _, tc := range cases {
		if got := in.Format(tc.id, names); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}

func TestEqualStructural(t *testing.T) {
	in := NewInterner()
	names := source.NewInterner()
	b := in.Builtins()

	swim := names.Intern("swim")
	fish1 := in.MustRegisterObject([]Field{{Name: swim, Type: b.String}})
	fish2 := in.MustRegisterObject([]Field{{Name: swim, Type: b.String}})
	if !in.Equal(fish1, fish2) {
		t.Fatalf("identical objects must be equal")
	}
	if in.Equal(fish1, b.String) {
		t.Fatalf("object vs primitive must differ")
	}
	if in.Equal(b.String, b.Number) {
		t.Fatalf("distinct primitives must differ")
	}
}
