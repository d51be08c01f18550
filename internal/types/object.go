package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"lattice/internal/source"
)

// Field describes a single field inside an object type.
type Field struct {
	Name     source.StringID
	Type     TypeID
	Optional bool
	Readonly bool
}

// ObjectInfo stores the field list of an object type in declaration order.
type ObjectInfo struct {
	Fields []Field
}

// ErrDuplicateField rejects object registration with a repeated field name.
type ErrDuplicateField struct {
	Name source.StringID
}

func (e *ErrDuplicateField) Error() string {
	return fmt.Sprintf("duplicate object field (name id %d)", e.Name)
}

// RegisterObject creates or finds an object type with the given fields.
// Field names must be unique. Field order does not affect identity: two
// registrations that differ only in order intern to the same TypeID.
func (in *Interner) RegisterObject(fields []Field) (TypeID, error) {
	seen := make(map[source.StringID]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return NoTypeID, &ErrDuplicateField{Name: f.Name}
		}
		seen[f.Name] = struct{}{}
	}

	key := objectKey(fields)
	if id, ok := in.lookupComposite(key); ok {
		return id, nil
	}
	slot, err := safecast.Conv[uint32](len(in.objects))
	if err != nil {
		panic(fmt.Errorf("object info overflow: %w", err))
	}
	in.objects = append(in.objects, ObjectInfo{Fields: slices.Clone(fields)})
	return in.storeComposite(key, Type{Kind: KindObject, Payload: slot}), nil
}

// MustRegisterObject panics on duplicate field names; convenient in tests
// and transforms that start from an already-valid object.
func (in *Interner) MustRegisterObject(fields []Field) TypeID {
	id, err := in.RegisterObject(fields)
	if err != nil {
		panic(err)
	}
	return id
}

// ObjectInfo returns metadata for the provided object TypeID.
func (in *Interner) ObjectInfo(id TypeID) (*ObjectInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindObject {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.objects) {
		return nil, false
	}
	return &in.objects[tt.Payload], true
}

// FieldByName finds a field of the object type by name.
func (in *Interner) FieldByName(id TypeID, name source.StringID) (Field, bool) {
	info, ok := in.ObjectInfo(id)
	if !ok {
		return Field{}, false
	}
	for _, f := range info.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// objectKey canonicalizes the field list (sorted by name) so field order
// never splits identity.
func objectKey(fields []Field) string {
	sorted := slices.Clone(fields)
	slices.SortFunc(sorted, func(a, b Field) int {
		return int(a.Name) - int(b.Name)
	})
	parts := make([]uint32, 0, 3*len(sorted))
	for _, f := range sorted {
		var flags uint32
		if f.Optional {
			flags |= 1
		}
		if f.Readonly {
			flags |= 2
		}
		parts = append(parts, uint32(f.Name), uint32(f.Type), flags)
	}
	return compositeKey(KindObject, parts...)
}
