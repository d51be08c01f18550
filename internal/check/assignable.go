package check

import (
	"fmt"

	"lattice/internal/source"
	"lattice/internal/types"
)

// verdict is the three-valued result of a compatibility walk: incompatible,
// compatible, or aborted by the recursion depth limit.
type verdict uint8

const (
	vNo verdict = iota
	vYes
	vDepth
)

type assignKey struct {
	src types.TypeID
	dst types.TypeID
}

// assignState carries per-call bookkeeping so a Checker stays free of
// mutable state and safe for concurrent use.
type assignState struct {
	seen map[assignKey]struct{}
}

// IsAssignable decides whether a value of type src may be assigned to a
// location declared as dst. It never panics; on failure the string holds a
// human-readable mismatch reason.
func (c *Checker) IsAssignable(src, dst types.TypeID) (bool, string) {
	st := &assignState{seen: make(map[assignKey]struct{})}
	switch c.assignable(src, dst, 0, st) {
	case vYes:
		return true, ""
	case vDepth:
		return false, (&RecursionLimitError{Depth: c.maxDepth}).Error()
	default:
		_, msg := c.explain(src, dst, "", 0)
		return false, msg
	}
}

// assignable evaluates the compatibility rules in order, first match wins.
func (c *Checker) assignable(src, dst types.TypeID, depth int, st *assignState) verdict {
	if depth > c.maxDepth {
		return vDepth
	}
	srcT, okSrc := c.types.Lookup(src)
	dstT, okDst := c.types.Lookup(dst)
	if !okSrc || !okDst {
		return vNo
	}

	// Identity fast path: the interner is canonical.
	if src == dst {
		return vYes
	}

	// any short-circuits in both directions.
	if srcT.Kind == types.KindAny || dstT.Kind == types.KindAny {
		return vYes
	}
	// unknown accepts any value in, but flows out only to any/unknown.
	if dstT.Kind == types.KindUnknown {
		return vYes
	}
	if srcT.Kind == types.KindUnknown {
		return vNo
	}
	// never has no values; it satisfies every target.
	if srcT.Kind == types.KindNever {
		return vYes
	}
	if dstT.Kind == types.KindNever {
		return vNo
	}

	// Mutually recursive structures: break the cycle instead of looping.
	key := assignKey{src: src, dst: dst}
	if _, inProgress := st.seen[key]; inProgress {
		return vNo
	}
	st.seen[key] = struct{}{}
	defer delete(st.seen, key)

	// Union as target absorbs: one compatible member suffices.
	if dstT.Kind == types.KindUnion {
		info, _ := c.types.UnionInfo(dst)
		for _, m := range info.Members {
			switch c.assignable(src, m, depth+1, st) {
			case vYes:
				return vYes
			case vDepth:
				return vDepth
			}
		}
		// A union source may still satisfy the target memberwise.
	}
	// Union as source: every member must satisfy the target.
	if srcT.Kind == types.KindUnion {
		info, _ := c.types.UnionInfo(src)
		for _, m := range info.Members {
			switch c.assignable(m, dst, depth+1, st) {
			case vNo:
				return vNo
			case vDepth:
				return vDepth
			}
		}
		return vYes
	}
	if dstT.Kind == types.KindUnion {
		return vNo
	}

	switch {
	case srcT.Kind.Primitive() && dstT.Kind.Primitive():
		if srcT.Kind == dstT.Kind {
			return vYes
		}
		return vNo

	case srcT.Kind == types.KindLiteral && dstT.Kind.Primitive():
		// Widening: a literal is an instance of its primitive kind.
		info, _ := c.types.LiteralInfo(src)
		if info.Kind == dstT.Kind {
			return vYes
		}
		return vNo

	case srcT.Kind == types.KindLiteral && dstT.Kind == types.KindLiteral:
		a, _ := c.types.LiteralInfo(src)
		b, _ := c.types.LiteralInfo(dst)
		if a.Kind == b.Kind && a.Text == b.Text {
			return vYes
		}
		return vNo

	case srcT.Kind == types.KindArray && dstT.Kind == types.KindArray:
		return c.assignable(srcT.Elem, dstT.Elem, depth+1, st)

	case srcT.Kind == types.KindTuple && dstT.Kind == types.KindTuple:
		a, _ := c.types.TupleInfo(src)
		b, _ := c.types.TupleInfo(dst)
		if len(a.Elems) != len(b.Elems) {
			return vNo
		}
		for i := range a.Elems {
			switch c.assignable(a.Elems[i], b.Elems[i], depth+1, st) {
			case vNo:
				return vNo
			case vDepth:
				return vDepth
			}
		}
		return vYes

	case srcT.Kind == types.KindObject && dstT.Kind == types.KindObject:
		return c.objectAssignable(src, dst, depth, st)

	case srcT.Kind == types.KindFn && dstT.Kind == types.KindFn:
		return c.fnAssignable(src, dst, depth, st)

	case srcT.Kind == types.KindGeneric && dstT.Kind == types.KindGeneric:
		a, _ := c.types.GenericInfo(src)
		b, _ := c.types.GenericInfo(dst)
		if a.Base != b.Base || len(a.Args) != len(b.Args) {
			return vNo
		}
		for i := range a.Args {
			switch c.assignable(a.Args[i], b.Args[i], depth+1, st) {
			case vNo:
				return vNo
			case vDepth:
				return vDepth
			}
		}
		return vYes
	}

	return vNo
}

// objectAssignable applies structural width-subtyping: every field the
// target declares must be satisfied by the source, extra source fields are
// fine. An optional target field may be absent. Readonly on the target is a
// write restriction, not a compatibility constraint.
func (c *Checker) objectAssignable(src, dst types.TypeID, depth int, st *assignState) verdict {
	dstInfo, _ := c.types.ObjectInfo(dst)
	for _, want := range dstInfo.Fields {
		got, present := c.types.FieldByName(src, want.Name)
		if !present {
			if want.Optional {
				continue
			}
			return vNo
		}
		switch c.assignable(got.Type, want.Type, depth+1, st) {
		case vNo:
			return vNo
		case vDepth:
			return vDepth
		}
	}
	return vYes
}

// fnAssignable checks function compatibility: fixed arity, contravariant
// parameters, covariant return type.
func (c *Checker) fnAssignable(src, dst types.TypeID, depth int, st *assignState) verdict {
	a, _ := c.types.FnInfo(src)
	b, _ := c.types.FnInfo(dst)
	if len(a.Params) != len(b.Params) {
		return vNo
	}
	for i := range a.Params {
		switch c.assignable(b.Params[i], a.Params[i], depth+1, st) {
		case vNo:
			return vNo
		case vDepth:
			return vDepth
		}
	}
	return c.assignable(a.Result, b.Result, depth+1, st)
}

// explain rebuilds the first mismatch as a readable message, descending
// into composite types to name the offending path.
func (c *Checker) explain(src, dst types.TypeID, path string, depth int) (string, string) {
	base := fmt.Sprintf("%s is not assignable to %s", c.format(src), c.format(dst))
	if depth > c.maxDepth {
		return path, base
	}
	srcT, okSrc := c.types.Lookup(src)
	dstT, okDst := c.types.Lookup(dst)
	if !okSrc || !okDst {
		return path, base
	}

	st := &assignState{seen: make(map[assignKey]struct{})}
	switch {
	case srcT.Kind == types.KindObject && dstT.Kind == types.KindObject:
		dstInfo, _ := c.types.ObjectInfo(dst)
		for _, want := range dstInfo.Fields {
			name := lookupFieldName(c, want.Name)
			got, present := c.types.FieldByName(src, want.Name)
			if !present {
				if want.Optional {
					continue
				}
				return path, fmt.Sprintf("%s: missing required field %q", base, name)
			}
			if c.assignable(got.Type, want.Type, depth+1, st) != vYes {
				return c.explain(got.Type, want.Type, joinPath(path, name), depth+1)
			}
		}

	case srcT.Kind == types.KindTuple && dstT.Kind == types.KindTuple:
		a, _ := c.types.TupleInfo(src)
		b, _ := c.types.TupleInfo(dst)
		if len(a.Elems) != len(b.Elems) {
			return path, fmt.Sprintf("%s: tuple length %d vs %d", base, len(a.Elems), len(b.Elems))
		}
		for i := range a.Elems {
			if c.assignable(a.Elems[i], b.Elems[i], depth+1, st) != vYes {
				return c.explain(a.Elems[i], b.Elems[i], fmt.Sprintf("%s[%d]", path, i), depth+1)
			}
		}

	case srcT.Kind == types.KindArray && dstT.Kind == types.KindArray:
		if c.assignable(srcT.Elem, dstT.Elem, depth+1, st) != vYes {
			return c.explain(srcT.Elem, dstT.Elem, path+"[]", depth+1)
		}
	}
	return path, base
}

func joinPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

func lookupFieldName(c *Checker, id source.StringID) string {
	if c.names == nil {
		return "?"
	}
	s, ok := c.names.Lookup(id)
	if !ok {
		return "?"
	}
	return s
}
