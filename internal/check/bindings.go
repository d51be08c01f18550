package check

import (
	"fmt"

	"lattice/internal/source"
	"lattice/internal/types"
)

// Binding is a declared name: its declared type, mutability, and the type
// of the value it currently holds.
type Binding struct {
	Name     source.StringID
	Declared types.TypeID
	Const    bool
	Value    types.TypeID
	DeclSpan source.Span
}

// Env is a scope stack of bindings plus narrowing overlays. Scopes are
// pushed on block entry and popped on exit; bindings die with their scope.
type Env struct {
	scopes []map[source.StringID]*Binding
	narrow []narrowFrame
}

// narrowFrame overlays refined types for bindings within one guarded
// branch. Frames never outlive their branch and are never shared.
type narrowFrame map[source.StringID]types.TypeID

func NewEnv() *Env {
	return &Env{scopes: []map[source.StringID]*Binding{{}}}
}

// Push enters a new lexical scope.
func (e *Env) Push() {
	e.scopes = append(e.scopes, map[source.StringID]*Binding{})
}

// Pop leaves the innermost scope, discarding its bindings.
func (e *Env) Pop() {
	if len(e.scopes) <= 1 {
		return
	}
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Declare installs a binding in the innermost scope. Redeclaring a name
// within the same scope fails; shadowing an outer scope is allowed.
func (e *Env) Declare(b *Binding) error {
	top := e.scopes[len(e.scopes)-1]
	if _, exists := top[b.Name]; exists {
		return fmt.Errorf("name already declared in this scope")
	}
	top[b.Name] = b
	return nil
}

// Lookup finds a binding by name, innermost scope first.
func (e *Env) Lookup(name source.StringID) (*Binding, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if b, ok := e.scopes[i][name]; ok {
			return b, true
		}
	}
	return nil, false
}

// PushNarrow enters a guarded branch with the given refinements.
func (e *Env) PushNarrow(frame map[source.StringID]types.TypeID) {
	e.narrow = append(e.narrow, frame)
}

// PopNarrow leaves the current guarded branch.
func (e *Env) PopNarrow() {
	if len(e.narrow) == 0 {
		return
	}
	e.narrow = e.narrow[:len(e.narrow)-1]
}

// EffectiveType returns the type the name has at this point: the innermost
// narrowing refinement when present, the declared type otherwise.
func (e *Env) EffectiveType(name source.StringID) (types.TypeID, bool) {
	for i := len(e.narrow) - 1; i >= 0; i-- {
		if t, ok := e.narrow[i][name]; ok {
			return t, true
		}
	}
	b, ok := e.Lookup(name)
	if !ok {
		return types.NoTypeID, false
	}
	return b.Declared, true
}

// Assign replaces the binding's value after enforcing mutability, unknown
// consumption, and compatibility with the declared type.
func (c *Checker) Assign(b *Binding, value types.TypeID) error {
	name := lookupFieldName(c, b.Name)
	if b.Const {
		return &ImmutableBindingError{Name: name}
	}
	if c.types.Kind(value) == types.KindUnknown {
		declared := c.types.Kind(b.Declared)
		if declared != types.KindUnknown && declared != types.KindAny {
			return &UnnarrowedUnknownError{Name: name}
		}
	}
	st := &assignState{seen: make(map[assignKey]struct{})}
	switch c.assignable(value, b.Declared, 0, st) {
	case vDepth:
		return &RecursionLimitError{Depth: c.maxDepth}
	case vNo:
		path, reason := c.explain(value, b.Declared, name, 0)
		return &TypeMismatchError{
			Expected: b.Declared,
			Actual:   value,
			Path:     path,
			Reason:   reason,
		}
	}
	b.Value = value
	return nil
}

// AssignField checks a write to a field of an object-typed binding:
// readonly fields reject the write, and the value must be compatible with
// the field's declared type. A binding declared any absorbs every field
// write, matching how any absorbs plain assignments.
func (c *Checker) AssignField(b *Binding, field source.StringID, value types.TypeID) error {
	name := lookupFieldName(c, b.Name)
	fieldName := lookupFieldName(c, field)
	if c.types.Kind(b.Declared) == types.KindAny {
		return nil
	}
	f, ok := c.types.FieldByName(b.Declared, field)
	if !ok {
		return &TypeMismatchError{
			Expected: b.Declared,
			Actual:   value,
			Path:     name,
			Reason:   fmt.Sprintf("%s has no field %q", c.format(b.Declared), fieldName),
		}
	}
	if f.Readonly {
		return &ReadonlyViolationError{Name: name, Field: fieldName}
	}
	if c.types.Kind(value) == types.KindUnknown {
		kind := c.types.Kind(f.Type)
		if kind != types.KindUnknown && kind != types.KindAny {
			return &UnnarrowedUnknownError{Name: name}
		}
	}
	st := &assignState{seen: make(map[assignKey]struct{})}
	switch c.assignable(value, f.Type, 0, st) {
	case vDepth:
		return &RecursionLimitError{Depth: c.maxDepth}
	case vNo:
		path, reason := c.explain(value, f.Type, joinPath(name, fieldName), 0)
		return &TypeMismatchError{
			Expected: f.Type,
			Actual:   value,
			Path:     path,
			Reason:   reason,
		}
	}
	return nil
}
