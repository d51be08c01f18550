package types

// equalDepthLimit bounds the structural walk; interned types are finite,
// but the guard keeps a corrupted table from spinning forever.
const equalDepthLimit = 256

// Equal reports structural equality of two types. Because the interner is
// canonical the fast path is ID identity; the walk remains for callers
// comparing structures assembled in different orders or across tables.
// Object fields are matched by name, never by position.
func (in *Interner) Equal(a, b TypeID) bool {
	return in.equal(a, b, 0)
}

func (in *Interner) equal(a, b TypeID, depth int) bool {
	if a == b {
		return true
	}
	if depth > equalDepthLimit {
		return false
	}
	ta, okA := in.Lookup(a)
	tb, okB := in.Lookup(b)
	if !okA || !okB || ta.Kind != tb.Kind {
		return false
	}

	switch ta.Kind {
	case KindLiteral:
		la, _ := in.LiteralInfo(a)
		lb, _ := in.LiteralInfo(b)
		return la != nil && lb != nil && la.Kind == lb.Kind && la.Text == lb.Text

	case KindArray:
		return in.equal(ta.Elem, tb.Elem, depth+1)

	case KindTuple:
		ia, _ := in.TupleInfo(a)
		ib, _ := in.TupleInfo(b)
		if ia == nil || ib == nil || len(ia.Elems) != len(ib.Elems) {
			return false
		}
		for i := range ia.Elems {
			if !in.equal(ia.Elems[i], ib.Elems[i], depth+1) {
				return false
			}
		}
		return true

	case KindObject:
		oa, _ := in.ObjectInfo(a)
		ob, _ := in.ObjectInfo(b)
		if oa == nil || ob == nil || len(oa.Fields) != len(ob.Fields) {
			return false
		}
		for _, fa := range oa.Fields {
			fb, ok := in.FieldByName(b, fa.Name)
			if !ok || fa.Optional != fb.Optional || fa.Readonly != fb.Readonly {
				return false
			}
			if !in.equal(fa.Type, fb.Type, depth+1) {
				return false
			}
		}
		return true

	case KindUnion:
		ua, _ := in.UnionInfo(a)
		ub, _ := in.UnionInfo(b)
		if ua == nil || ub == nil || len(ua.Members) != len(ub.Members) {
			return false
		}
		// Member order is display-only; compare as sets.
		for _, ma := range ua.Members {
			found := false
			for _, mb := range ub.Members {
				if in.equal(ma, mb, depth+1) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true

	case KindFn:
		fa, _ := in.FnInfo(a)
		fb, _ := in.FnInfo(b)
		if fa == nil || fb == nil || len(fa.Params) != len(fb.Params) {
			return false
		}
		for i := range fa.Params {
			if !in.equal(fa.Params[i], fb.Params[i], depth+1) {
				return false
			}
		}
		return in.equal(fa.Result, fb.Result, depth+1)

	case KindGeneric:
		ga, _ := in.GenericInfo(a)
		gb, _ := in.GenericInfo(b)
		if ga == nil || gb == nil || ga.Base != gb.Base || len(ga.Args) != len(gb.Args) {
			return false
		}
		for i := range ga.Args {
			if !in.equal(ga.Args[i], gb.Args[i], depth+1) {
				return false
			}
		}
		return true

	default:
		// Primitives and the special kinds are singletons; identity above
		// already decided them.
		return false
	}
}
