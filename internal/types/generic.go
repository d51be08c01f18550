package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"lattice/internal/source"
)

// GenericInfo stores a generic instantiation: the base template name and
// its concrete type arguments. Compatibility between instances is decided
// by base identity plus argument-wise assignability.
type GenericInfo struct {
	Base source.StringID
	Args []TypeID
}

// RegisterGeneric creates or finds an instantiation of the named template.
func (in *Interner) RegisterGeneric(base source.StringID, args []TypeID) TypeID {
	parts := make([]uint32, 0, len(args)+1)
	parts = append(parts, uint32(base))
	for _, a := range args {
		parts = append(parts, uint32(a))
	}
	key := compositeKey(KindGeneric, parts...)
	if id, ok := in.lookupComposite(key); ok {
		return id
	}
	slot, err := safecast.Conv[uint32](len(in.generics))
	if err != nil {
		panic(fmt.Errorf("generic info overflow: %w", err))
	}
	in.generics = append(in.generics, GenericInfo{Base: base, Args: slices.Clone(args)})
	return in.storeComposite(key, Type{Kind: KindGeneric, Payload: slot})
}

// GenericInfo retrieves instantiation metadata by TypeID.
func (in *Interner) GenericInfo(id TypeID) (*GenericInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindGeneric {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.generics) {
		return nil, false
	}
	return &in.generics[tt.Payload], true
}
