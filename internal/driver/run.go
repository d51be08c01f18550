// Package driver composes the front end into end-to-end runs: one script,
// one file, or a directory of scripts checked concurrently.
package driver

import (
	"lattice/internal/ast"
	"lattice/internal/check"
	"lattice/internal/diag"
	"lattice/internal/lexer"
	"lattice/internal/parser"
	"lattice/internal/source"
	"lattice/internal/token"
	"lattice/internal/types"
)

// Options tune one run.
type Options struct {
	MaxDiagnostics int // 0 means unbounded
	MaxDepth       int // 0 means check.DefaultMaxDepth
}

// Result bundles everything a caller might want after checking a script:
// the interners (for formatting), the syntax tree, the check summary, and
// every diagnostic in source order.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Names   *source.Interner
	Types   *types.Interner
	AST     *ast.File
	Check   check.FileResult
	Bag     *diag.Bag
}

// HasErrors reports whether the run produced at least one error.
func (r *Result) HasErrors() bool {
	return r.Bag.HasErrors()
}

// FormatType renders an interned type for display.
func (r *Result) FormatType(id types.TypeID) string {
	return r.Types.Format(id, r.Names)
}

// RunScript checks in-memory source under the given display name.
func RunScript(name string, src []byte, opts Options) *Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return run(fs, id, opts)
}

// RunFile loads and checks one script from disk.
func RunFile(path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return run(fs, id, opts), nil
}

func run(fs *source.FileSet, id source.FileID, opts Options) *Result {
	file := fs.Get(id)
	names := source.NewInterner()
	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := diag.BagReporter{Bag: bag}

	parsed := parser.ParseFile(file, names, rep)

	in := types.NewInterner()
	c := check.New(in, names, check.Options{Reporter: rep, MaxDepth: opts.MaxDepth})
	summary := c.CheckFile(parsed)

	bag.Sort()
	return &Result{
		FileSet: fs,
		File:    file,
		Names:   names,
		Types:   in,
		AST:     parsed,
		Check:   summary,
		Bag:     bag,
	}
}

// TokenizeResult is the outcome of scanning one file without parsing it.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// TokenizeFile scans one script from disk and returns the raw tokens.
func TokenizeFile(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)
	bag := diag.NewBag(opts.MaxDiagnostics)
	toks := lexer.Tokenize(file, diag.BagReporter{Bag: bag})
	return &TokenizeResult{FileSet: fs, File: file, Tokens: toks, Bag: bag}, nil
}
