package types

import (
	"encoding/binary"
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for types every checker needs.
type Builtins struct {
	Invalid TypeID
	Any     TypeID
	Unknown TypeID
	Never   TypeID
	Bool    TypeID
	Number  TypeID
	String  TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Identical structures always intern to the same TypeID, so ID equality is
// type identity. Construction is single-goroutine; a published interner is
// read-only and safe for concurrent readers.
type Interner struct {
	types    []Type
	index    map[string]TypeID
	builtins Builtins

	literals []LiteralInfo
	tuples   []TupleInfo
	objects  []ObjectInfo
	unions   []UnionInfo
	fns      []FnInfo
	generics []GenericInfo
}

// NewInterner constructs an interner seeded with built-in types.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[string]TypeID, 64),
	}
	// Slot 0 of every side table is an invalid sentinel.
	in.literals = append(in.literals, LiteralInfo{})
	in.tuples = append(in.tuples, TupleInfo{})
	in.objects = append(in.objects, ObjectInfo{})
	in.unions = append(in.unions, UnionInfo{})
	in.fns = append(in.fns, FnInfo{})
	in.generics = append(in.generics, GenericInfo{})

	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Any = in.Intern(Type{Kind: KindAny})
	in.builtins.Unknown = in.Intern(Type{Kind: KindUnknown})
	in.builtins.Never = in.Intern(Type{Kind: KindNever})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Number = in.Intern(Type{Kind: KindNumber})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	return in
}

// Builtins returns TypeIDs for the seeded types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := descriptorKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[descriptorKey(t)] = id
	return id
}

// RegisterArray creates or finds the array type over elem.
func (in *Interner) RegisterArray(elem TypeID) TypeID {
	return in.Intern(MakeArray(elem))
}

// ArrayElem returns the element type when id is an array.
func (in *Interner) ArrayElem(id TypeID) (TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindArray {
		return NoTypeID, false
	}
	return tt.Elem, true
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Kind returns the kind for id, KindInvalid when id is unknown.
func (in *Interner) Kind(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

// Len reports how many descriptors the interner holds, the invalid
// sentinel included.
func (in *Interner) Len() int {
	return len(in.types)
}

// descriptorKey flattens a compact descriptor into a map key.
func descriptorKey(t Type) string {
	var buf [9]byte
	buf[0] = byte(t.Kind)
	binary.LittleEndian.PutUint32(buf[1:5], uint32(t.Elem))
	binary.LittleEndian.PutUint32(buf[5:9], t.Payload)
	return string(buf[:])
}

// compositeKey builds a canonical lookup key for side-table structures so
// registering the same structure twice yields the same TypeID. The 0xFF
// marker keeps these keys disjoint from descriptor keys.
func compositeKey(kind Kind, parts ...uint32) string {
	buf := make([]byte, 2+4*len(parts))
	buf[0] = 0xFF
	buf[1] = byte(kind)
	for i, p := range parts {
		binary.LittleEndian.PutUint32(buf[2+4*i:], p)
	}
	return string(buf)
}

// lookupComposite resolves a canonical key to an already-interned TypeID.
func (in *Interner) lookupComposite(key string) (TypeID, bool) {
	id, ok := in.index[key]
	return id, ok
}

// storeComposite interns a descriptor and records its canonical key.
func (in *Interner) storeComposite(key string, t Type) TypeID {
	id := in.internRaw(t)
	in.index[key] = id
	return id
}
