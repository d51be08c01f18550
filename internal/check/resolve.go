package check

import (
	"errors"
	"fmt"

	"lattice/internal/ast"
	"lattice/internal/diag"
	"lattice/internal/source"
	"lattice/internal/transform"
	"lattice/internal/types"
)

// resolveType interns the type an expression denotes. Unknown names and
// bad transform applications are reported and resolve to false.
func (w *walker) resolveType(t ast.TypeExpr) (types.TypeID, bool) {
	in := w.c.types
	switch t := t.(type) {
	case *ast.NamedType:
		if id, ok := builtinNamed(in.Builtins(), t.NameText); ok {
			return id, true
		}
		if id, ok := w.aliases[t.Name]; ok {
			return id, true
		}
		w.errorAt(diag.CheckUnknownName, t.Sp,
			fmt.Sprintf("unknown type %q", t.NameText))
		return types.NoTypeID, false

	case *ast.LiteralType:
		return in.RegisterLiteral(literalKind(t), t.Text), true

	case *ast.ArrayType:
		elem, ok := w.resolveType(t.Elem)
		if !ok {
			return types.NoTypeID, false
		}
		return in.RegisterArray(elem), true

	case *ast.TupleType:
		elems := make([]types.TypeID, 0, len(t.Elems))
		for _, e := range t.Elems {
			id, ok := w.resolveType(e)
			if !ok {
				return types.NoTypeID, false
			}
			elems = append(elems, id)
		}
		return in.RegisterTuple(elems), true

	case *ast.ObjectType:
		fields := make([]types.Field, 0, len(t.Fields))
		for _, f := range t.Fields {
			id, ok := w.resolveType(f.Type)
			if !ok {
				return types.NoTypeID, false
			}
			fields = append(fields, types.Field{
				Name:     f.Name,
				Type:     id,
				Optional: f.Optional,
				Readonly: f.Readonly,
			})
		}
		id, err := in.RegisterObject(fields)
		if err != nil {
			w.errorAt(diag.SynDuplicateField, t.Sp, err.Error())
			return types.NoTypeID, false
		}
		return id, true

	case *ast.UnionType:
		members := make([]types.TypeID, 0, len(t.Members))
		for _, m := range t.Members {
			id, ok := w.resolveType(m)
			if !ok {
				return types.NoTypeID, false
			}
			members = append(members, id)
		}
		return in.RegisterUnion(members), true

	case *ast.FnType:
		params := make([]types.TypeID, 0, len(t.Params))
		for _, p := range t.Params {
			id, ok := w.resolveType(p)
			if !ok {
				return types.NoTypeID, false
			}
			params = append(params, id)
		}
		result, ok := w.resolveType(t.Result)
		if !ok {
			return types.NoTypeID, false
		}
		return in.RegisterFn(params, result), true

	case *ast.GenericType:
		return w.resolveGeneric(t)
	}
	return types.NoTypeID, false
}

// resolveGeneric applies the builtin transforms eagerly; any other base
// name interns as a nominal type application.
func (w *walker) resolveGeneric(t *ast.GenericType) (types.TypeID, bool) {
	in := w.c.types
	switch t.BaseText {
	case "Partial", "Required", "Readonly":
		if len(t.Args) != 1 {
			w.errorAt(diag.SynBadTransformArg, t.Sp,
				fmt.Sprintf("%s takes exactly one type argument", t.BaseText))
			return types.NoTypeID, false
		}
		arg, ok := w.resolveType(t.Args[0])
		if !ok {
			return types.NoTypeID, false
		}
		var out types.TypeID
		switch t.BaseText {
		case "Partial":
			out, ok = transform.Partial(in, arg)
		case "Required":
			out, ok = transform.Required(in, arg)
		case "Readonly":
			out, ok = transform.ReadonlyOf(in, arg)
		}
		if !ok {
			w.errorAt(diag.CheckNotAnObject, t.Args[0].Span(),
				fmt.Sprintf("%s requires an object type, got %s", t.BaseText, w.c.format(arg)))
			return types.NoTypeID, false
		}
		return out, true

	case "Omit":
		if len(t.Args) < 2 {
			w.errorAt(diag.SynBadTransformArg, t.Sp,
				"Omit takes an object type and at least one key")
			return types.NoTypeID, false
		}
		obj, ok := w.resolveType(t.Args[0])
		if !ok {
			return types.NoTypeID, false
		}
		keys := make([]source.StringID, 0, len(t.Args)-1)
		for _, arg := range t.Args[1:] {
			lit, isLit := arg.(*ast.LiteralType)
			if !isLit || !lit.IsStr {
				w.errorAt(diag.SynBadTransformArg, arg.Span(),
					"Omit keys must be string literals")
				return types.NoTypeID, false
			}
			keys = append(keys, w.c.names.Intern(lit.Text))
		}
		out, err := transform.Omit(in, obj, keys, w.c.names)
		if err != nil {
			var unknown *transform.UnknownKeyError
			if errors.As(err, &unknown) {
				w.errorAt(diag.CheckUnknownKey, t.Sp, err.Error())
			} else {
				w.errorAt(diag.CheckNotAnObject, t.Args[0].Span(),
					fmt.Sprintf("Omit requires an object type, got %s", w.c.format(obj)))
			}
			return types.NoTypeID, false
		}
		return out, true
	}

	args := make([]types.TypeID, 0, len(t.Args))
	for _, arg := range t.Args {
		id, ok := w.resolveType(arg)
		if !ok {
			return types.NoTypeID, false
		}
		args = append(args, id)
	}
	return in.RegisterGeneric(t.Base, args), true
}

func builtinNamed(b types.Builtins, name string) (types.TypeID, bool) {
	switch name {
	case "any":
		return b.Any, true
	case "unknown":
		return b.Unknown, true
	case "never":
		return b.Never, true
	case "bool", "boolean":
		return b.Bool, true
	case "number":
		return b.Number, true
	case "string":
		return b.String, true
	}
	return types.NoTypeID, false
}

func literalKind(t *ast.LiteralType) types.Kind {
	switch {
	case t.IsStr:
		return types.KindString
	case t.IsBool:
		return types.KindBool
	default:
		return types.KindNumber
	}
}

// inferValue types a value expression against an expected type. The
// expectation only disambiguates array literals: against a tuple of the
// same length the literal infers elementwise as a tuple, against an array
// the element expectation distributes. Everything else ignores it.
func (w *walker) inferValue(e ast.Expr, expected types.TypeID) (types.TypeID, bool) {
	lit, ok := e.(*ast.ArrayLit)
	if !ok || expected == types.NoTypeID {
		return w.inferExpr(e)
	}
	in := w.c.types
	if info, isTuple := in.TupleInfo(expected); isTuple && len(info.Elems) == len(lit.Elems) {
		elems := make([]types.TypeID, 0, len(lit.Elems))
		for i, elem := range lit.Elems {
			id, ok := w.inferValue(elem, info.Elems[i])
			if !ok {
				return types.NoTypeID, false
			}
			elems = append(elems, w.widen(id))
		}
		return in.RegisterTuple(elems), true
	}
	if elem, isArray := in.ArrayElem(expected); isArray && len(lit.Elems) > 0 {
		members := make([]types.TypeID, 0, len(lit.Elems))
		for _, el := range lit.Elems {
			id, ok := w.inferValue(el, elem)
			if !ok {
				return types.NoTypeID, false
			}
			members = append(members, w.widen(id))
		}
		return in.RegisterArray(in.RegisterUnion(members)), true
	}
	return w.inferExpr(e)
}

// inferExpr types a value expression. Scalar literals keep their exact
// literal type; the declaration site decides whether that survives or
// widens. Object and array literals widen their element types, matching
// the mutable-position rule.
func (w *walker) inferExpr(e ast.Expr) (types.TypeID, bool) {
	in := w.c.types
	switch e := e.(type) {
	case *ast.StringLit:
		return in.RegisterLiteral(types.KindString, e.Value), true
	case *ast.NumberLit:
		return in.RegisterLiteral(types.KindNumber, e.Text), true
	case *ast.BoolLit:
		if e.Value {
			return in.RegisterLiteral(types.KindBool, "true"), true
		}
		return in.RegisterLiteral(types.KindBool, "false"), true

	case *ast.IdentExpr:
		id, ok := w.env.EffectiveType(e.Name)
		if !ok {
			w.errorAt(diag.CheckUnknownName, e.Sp,
				fmt.Sprintf("unknown name %q", e.NameText))
			return types.NoTypeID, false
		}
		return id, true

	case *ast.ObjectLit:
		fields := make([]types.Field, 0, len(e.Entries))
		for _, entry := range e.Entries {
			id, ok := w.inferExpr(entry.Value)
			if !ok {
				return types.NoTypeID, false
			}
			fields = append(fields, types.Field{Name: entry.Name, Type: w.widen(id)})
		}
		id, err := in.RegisterObject(fields)
		if err != nil {
			w.errorAt(diag.SynDuplicateField, e.Sp, err.Error())
			return types.NoTypeID, false
		}
		return id, true

	case *ast.ArrayLit:
		if len(e.Elems) == 0 {
			return in.RegisterArray(in.Builtins().Never), true
		}
		members := make([]types.TypeID, 0, len(e.Elems))
		for _, elem := range e.Elems {
			id, ok := w.inferExpr(elem)
			if !ok {
				return types.NoTypeID, false
			}
			members = append(members, w.widen(id))
		}
		return in.RegisterArray(in.RegisterUnion(members)), true

	case *ast.FieldExpr:
		return w.inferField(e)
	}
	return types.NoTypeID, false
}

func (w *walker) inferField(e *ast.FieldExpr) (types.TypeID, bool) {
	base, ok := w.inferExpr(e.Base)
	if !ok {
		return types.NoTypeID, false
	}
	switch w.c.types.Kind(base) {
	case types.KindAny:
		return base, true
	case types.KindUnknown:
		w.errorAt(diag.CheckUnnarrowedUnknown, e.Sp,
			(&UnnarrowedUnknownError{}).Error())
		return types.NoTypeID, false
	case types.KindObject:
		f, found := w.c.types.FieldByName(base, e.Field)
		if !found {
			w.errorAt(diag.CheckUnknownKey, e.Sp,
				fmt.Sprintf("%s has no field %q", w.c.format(base), e.Text))
			return types.NoTypeID, false
		}
		return f.Type, true
	default:
		w.errorAt(diag.CheckNotAnObject, e.Sp,
			fmt.Sprintf("cannot read field %q of %s", e.Text, w.c.format(base)))
		return types.NoTypeID, false
	}
}

// widen maps a literal type to its primitive; everything else is already
// in widened form.
func (w *walker) widen(id types.TypeID) types.TypeID {
	info, ok := w.c.types.LiteralInfo(id)
	if !ok {
		return id
	}
	prim, ok := w.c.primitiveFor(info.Kind)
	if !ok {
		return id
	}
	return prim
}
