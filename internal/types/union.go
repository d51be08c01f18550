package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// UnionInfo stores the member set of a union type: flattened and
// deduplicated, at least two entries. Members keep first-appearance order
// for display; identity is order-insensitive.
type UnionInfo struct {
	Members []TypeID
}

// RegisterUnion creates or finds the union of the given members. Nested
// unions are flattened and duplicates removed; when the set collapses to a
// single member that member is returned directly, and an empty set yields
// never.
func (in *Interner) RegisterUnion(members []TypeID) TypeID {
	flat := make([]TypeID, 0, len(members))
	seen := make(map[TypeID]struct{}, len(members))
	add := func(m TypeID) {
		if _, dup := seen[m]; dup {
			return
		}
		seen[m] = struct{}{}
		flat = append(flat, m)
	}
	for _, m := range members {
		if info, ok := in.UnionInfo(m); ok {
			for _, inner := range info.Members {
				add(inner)
			}
			continue
		}
		add(m)
	}

	switch len(flat) {
	case 0:
		return in.builtins.Never
	case 1:
		return flat[0]
	}

	sorted := slices.Clone(flat)
	slices.Sort(sorted)
	parts := make([]uint32, len(sorted))
	for i, m := range sorted {
		parts[i] = uint32(m)
	}
	key := compositeKey(KindUnion, parts...)
	if id, ok := in.lookupComposite(key); ok {
		return id
	}
	slot, err := safecast.Conv[uint32](len(in.unions))
	if err != nil {
		panic(fmt.Errorf("union info overflow: %w", err))
	}
	in.unions = append(in.unions, UnionInfo{Members: flat})
	return in.storeComposite(key, Type{Kind: KindUnion, Payload: slot})
}

// UnionInfo returns metadata for the provided union TypeID.
func (in *Interner) UnionInfo(id TypeID) (*UnionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindUnion {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.unions) {
		return nil, false
	}
	return &in.unions[tt.Payload], true
}

// UnionMembers returns the member set of a union, or the type itself when
// it is not a union. Narrowing treats both uniformly.
func (in *Interner) UnionMembers(id TypeID) []TypeID {
	if info, ok := in.UnionInfo(id); ok {
		return slices.Clone(info.Members)
	}
	return []TypeID{id}
}
