// Package transform derives new object types from existing ones: the
// partial/required/readonly/omit utility transforms. Every transform is
// pure; the input type is never mutated.
package transform

import (
	"fmt"

	"lattice/internal/source"
	"lattice/internal/types"
)

// UnknownKeyError reports an omit key that the object does not declare.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("cannot omit unknown key %q", e.Key)
}

// Partial returns the object type with every field optional; readonly
// flags are preserved. ok is false when obj is not an object type.
func Partial(in *types.Interner, obj types.TypeID) (types.TypeID, bool) {
	return mapFields(in, obj, func(f types.Field) types.Field {
		f.Optional = true
		return f
	})
}

// Required returns the object type with every field non-optional. This is
// a type-level operation only: it supplies no defaults, so constructing a
// value still requires every field.
func Required(in *types.Interner, obj types.TypeID) (types.TypeID, bool) {
	return mapFields(in, obj, func(f types.Field) types.Field {
		f.Optional = false
		return f
	})
}

// ReadonlyOf returns the object type with every field readonly.
func ReadonlyOf(in *types.Interner, obj types.TypeID) (types.TypeID, bool) {
	return mapFields(in, obj, func(f types.Field) types.Field {
		f.Readonly = true
		return f
	})
}

// Omit returns the object type without the named fields. Every requested
// key must exist in obj; a miss fails with *UnknownKeyError.
func Omit(in *types.Interner, obj types.TypeID, keys []source.StringID, names *source.Interner) (types.TypeID, error) {
	info, ok := in.ObjectInfo(obj)
	if !ok {
		return types.NoTypeID, fmt.Errorf("omit requires an object type")
	}
	drop := make(map[source.StringID]struct{}, len(keys))
	for _, k := range keys {
		if _, declared := in.FieldByName(obj, k); !declared {
			key := "?"
			if names != nil {
				if s, found := names.Lookup(k); found {
					key = s
				}
			}
			return types.NoTypeID, &UnknownKeyError{Key: key}
		}
		drop[k] = struct{}{}
	}
	kept := make([]types.Field, 0, len(info.Fields))
	for _, f := range info.Fields {
		if _, gone := drop[f.Name]; gone {
			continue
		}
		kept = append(kept, f)
	}
	return in.MustRegisterObject(kept), nil
}

func mapFields(in *types.Interner, obj types.TypeID, apply func(types.Field) types.Field) (types.TypeID, bool) {
	info, ok := in.ObjectInfo(obj)
	if !ok {
		return types.NoTypeID, false
	}
	fields := make([]types.Field, len(info.Fields))
	for i, f := range info.Fields {
		fields[i] = apply(f)
	}
	return in.MustRegisterObject(fields), true
}
