package check

import (
	"lattice/internal/source"
	"lattice/internal/types"
)

// PredicateKind selects the narrowing mechanism.
type PredicateKind uint8

const (
	// PredTag is the typeof-style check against a primitive kind.
	PredTag PredicateKind = iota
	// PredHasField is the in-operator check for a declared object field.
	PredHasField
)

// Predicate is a runtime guard reframed as data: either a tag check
// against a primitive kind or a property-presence check.
type Predicate struct {
	Kind  PredicateKind
	Tag   types.Kind      // for PredTag
	Field source.StringID // for PredHasField
}

// TagIs builds a typeof-style predicate for the given primitive kind.
func TagIs(k types.Kind) Predicate {
	return Predicate{Kind: PredTag, Tag: k}
}

// HasField builds an in-operator predicate for the given field name.
func HasField(name source.StringID) Predicate {
	return Predicate{Kind: PredHasField, Field: name}
}

// Narrow partitions a union under the predicate and returns the refined
// types for the guarded branch and its complement. The two results are
// disjoint and together cover every member of the input (closed world).
// A single surviving member is returned directly, an empty side becomes
// never. Non-union inputs are treated as a one-member set.
//
// Narrowing is pure: no context survives the call. Callers scope the
// results with Env.PushNarrow/PopNarrow for the branch's extent.
func (c *Checker) Narrow(id types.TypeID, p Predicate) (then, els types.TypeID) {
	never := c.types.Builtins().Never

	// typeof on a bare unknown is the sanctioned way to consume it: the
	// guarded branch sees the tested primitive, the complement stays
	// unknown.
	if c.types.Kind(id) == types.KindUnknown && p.Kind == PredTag {
		if prim, ok := c.primitiveFor(p.Tag); ok {
			return prim, id
		}
		return never, id
	}

	members := c.types.UnionMembers(id)
	matched := make([]types.TypeID, 0, len(members))
	rest := make([]types.TypeID, 0, len(members))
	for _, m := range members {
		if c.matches(m, p) {
			matched = append(matched, m)
		} else {
			rest = append(rest, m)
		}
	}
	return c.narrowResult(matched, never), c.narrowResult(rest, never)
}

func (c *Checker) narrowResult(members []types.TypeID, never types.TypeID) types.TypeID {
	switch len(members) {
	case 0:
		return never
	case 1:
		return members[0]
	default:
		return c.types.RegisterUnion(members)
	}
}

func (c *Checker) matches(member types.TypeID, p Predicate) bool {
	switch p.Kind {
	case PredTag:
		kind := c.types.Kind(member)
		if kind == p.Tag {
			return true
		}
		if info, ok := c.types.LiteralInfo(member); ok {
			return info.Kind == p.Tag
		}
		return false

	case PredHasField:
		_, ok := c.types.FieldByName(member, p.Field)
		return ok
	}
	return false
}

func (c *Checker) primitiveFor(k types.Kind) (types.TypeID, bool) {
	b := c.types.Builtins()
	switch k {
	case types.KindBool:
		return b.Bool, true
	case types.KindNumber:
		return b.Number, true
	case types.KindString:
		return b.String, true
	}
	return types.NoTypeID, false
}
