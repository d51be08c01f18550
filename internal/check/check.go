// Package check implements the compatibility and narrowing engines: the
// assignability relation over interned types, scoped bindings with
// const/readonly enforcement, and union refinement under guard predicates.
package check

import (
	"lattice/internal/diag"
	"lattice/internal/source"
	"lattice/internal/types"
)

// DefaultMaxDepth bounds recursive compatibility walks. Structural types
// are finite in this model; the limit exists to fail a single pathological
// check instead of blowing the stack.
const DefaultMaxDepth = 256

// Options configure a Checker.
type Options struct {
	Reporter diag.Reporter
	MaxDepth int
}

// Checker decides assignability between interned types. It holds no
// per-check mutable state, so one Checker may serve concurrent callers.
type Checker struct {
	types    *types.Interner
	names    *source.Interner
	reporter diag.Reporter
	maxDepth int
}

// New constructs a Checker over the given type and name tables.
func New(in *types.Interner, names *source.Interner, opts Options) *Checker {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Checker{
		types:    in,
		names:    names,
		reporter: reporter,
		maxDepth: maxDepth,
	}
}

// Types exposes the underlying type interner.
func (c *Checker) Types() *types.Interner {
	return c.types
}

// Names exposes the underlying string interner.
func (c *Checker) Names() *source.Interner {
	return c.names
}

func (c *Checker) format(id types.TypeID) string {
	return c.types.Format(id, c.names)
}
