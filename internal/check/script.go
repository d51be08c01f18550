package check

import (
	"errors"
	"fmt"

	"lattice/internal/ast"
	"lattice/internal/diag"
	"lattice/internal/source"
	"lattice/internal/types"
)

// FileResult summarizes one checked script: the named type aliases it
// declared and the declared types of its top-level bindings.
type FileResult struct {
	Aliases  map[source.StringID]types.TypeID
	Bindings map[source.StringID]types.TypeID
}

// CheckFile walks a parsed script: type declarations populate an alias
// table, let/const declarations enter the environment, assignments and
// guarded branches run through the compatibility and narrowing engines.
// Every violation goes to the checker's reporter; checking continues past
// errors so one bad statement does not mute the rest.
func (c *Checker) CheckFile(file *ast.File) FileResult {
	w := &walker{
		c:       c,
		env:     NewEnv(),
		aliases: make(map[source.StringID]types.TypeID),
		result: FileResult{
			Aliases:  make(map[source.StringID]types.TypeID),
			Bindings: make(map[source.StringID]types.TypeID),
		},
	}
	for _, stmt := range file.Stmts {
		w.stmt(stmt, 0)
	}
	w.result.Aliases = w.aliases
	return w.result
}

// walker holds the per-file state of a CheckFile run. The Checker itself
// stays immutable, so concurrent CheckFile calls never interfere.
type walker struct {
	c       *Checker
	env     *Env
	aliases map[source.StringID]types.TypeID
	result  FileResult
}

func (w *walker) errorAt(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(w.c.reporter, code, sp, msg)
}

func (w *walker) warnAt(code diag.Code, sp source.Span, msg string) {
	diag.ReportWarning(w.c.reporter, code, sp, msg)
}

func (w *walker) stmt(s ast.Stmt, depth int) {
	switch s := s.(type) {
	case *ast.TypeDecl:
		w.typeDecl(s)
	case *ast.LetDecl:
		w.letDecl(s, depth)
	case *ast.AssignStmt:
		w.assign(s)
	case *ast.IfStmt:
		w.ifStmt(s, depth)
	}
}

func (w *walker) typeDecl(s *ast.TypeDecl) {
	if _, exists := w.aliases[s.Name]; exists {
		w.errorAt(diag.CheckRedeclaredName, s.Sp,
			fmt.Sprintf("type %q is already declared", s.NameText))
		return
	}
	id, ok := w.resolveType(s.Type)
	if !ok {
		return
	}
	w.aliases[s.Name] = id
}

func (w *walker) letDecl(s *ast.LetDecl, depth int) {
	annotated := types.NoTypeID
	if s.Type != nil {
		var ok bool
		annotated, ok = w.resolveType(s.Type)
		if !ok {
			return
		}
	}
	value, ok := w.inferValue(s.Value, annotated)
	if !ok {
		return
	}

	declared := value
	if s.Type != nil {
		declared = annotated
		if !w.checkAssign(value, declared, s.NameText, s.Value.Span()) {
			return
		}
	} else if !s.Const {
		// A let without annotation gets the widened shape: literal
		// initializers do not pin the binding to one value.
		declared = w.widen(value)
	}

	if w.c.types.Kind(value) == types.KindUnknown {
		kind := w.c.types.Kind(declared)
		if kind != types.KindUnknown && kind != types.KindAny {
			w.errorAt(diag.CheckUnnarrowedUnknown, s.Value.Span(),
				(&UnnarrowedUnknownError{Name: s.NameText}).Error())
			return
		}
	}

	b := &Binding{
		Name:     s.Name,
		Declared: declared,
		Const:    s.Const,
		Value:    value,
		DeclSpan: s.Sp,
	}
	if err := w.env.Declare(b); err != nil {
		w.errorAt(diag.CheckRedeclaredName, s.Sp,
			fmt.Sprintf("%q is already declared in this scope", s.NameText))
		return
	}
	if depth == 0 {
		w.result.Bindings[s.Name] = declared
	}
}

func (w *walker) assign(s *ast.AssignStmt) {
	b, ok := w.env.Lookup(s.Name)
	if !ok {
		w.errorAt(diag.CheckUnknownName, s.Sp,
			fmt.Sprintf("unknown name %q", lookupFieldName(w.c, s.Name)))
		return
	}
	expected := b.Declared
	if s.Field != source.NoStringID {
		expected = types.NoTypeID
		if f, found := w.c.types.FieldByName(b.Declared, s.Field); found {
			expected = f.Type
		}
	}
	value, ok := w.inferValue(s.Value, expected)
	if !ok {
		return
	}
	var err error
	if s.Field == source.NoStringID {
		err = w.c.Assign(b, value)
	} else {
		err = w.c.AssignField(b, s.Field, value)
	}
	if err != nil {
		w.errorAt(codeFor(err), s.Sp, err.Error())
	}
}

// codeFor maps a checker error to its diagnostic code.
func codeFor(err error) diag.Code {
	var (
		immutable *ImmutableBindingError
		readonly  *ReadonlyViolationError
		unknown   *UnnarrowedUnknownError
		limit     *RecursionLimitError
	)
	switch {
	case errors.As(err, &immutable):
		return diag.CheckImmutableBinding
	case errors.As(err, &readonly):
		return diag.CheckReadonlyViolation
	case errors.As(err, &unknown):
		return diag.CheckUnnarrowedUnknown
	case errors.As(err, &limit):
		return diag.CheckRecursionLimit
	default:
		return diag.CheckTypeMismatch
	}
}

func (w *walker) ifStmt(s *ast.IfStmt, depth int) {
	g := s.Guard
	effective, ok := w.env.EffectiveType(g.Binding)
	if !ok {
		w.errorAt(diag.CheckUnknownName, g.Sp,
			fmt.Sprintf("unknown name %q", lookupFieldName(w.c, g.Binding)))
		return
	}

	then, els, ok := w.guardSplit(g, effective)
	if !ok {
		return
	}
	if g.Negated {
		then, els = els, then
	}

	never := w.c.types.Builtins().Never
	if then == never && len(s.Then) > 0 {
		w.warnAt(diag.CheckUnreachableBranch, s.Sp, "branch never taken: guard cannot match")
	}
	if els == never && len(s.Else) > 0 {
		w.warnAt(diag.CheckUnreachableBranch, s.Sp, "else branch never taken: guard always matches")
	}

	w.branch(s.Then, g.Binding, then, depth)
	if s.Else != nil {
		w.branch(s.Else, g.Binding, els, depth)
	}
}

// guardSplit turns the syntactic guard into a narrowing partition.
func (w *walker) guardSplit(g ast.Guard, effective types.TypeID) (then, els types.TypeID, ok bool) {
	switch g.Kind {
	case ast.GuardTypeof:
		tag, known := tagKind(g.TagName)
		if !known {
			w.errorAt(diag.CheckBadTypeTag, g.Sp,
				fmt.Sprintf("unknown type tag %q: want \"string\", \"number\", or \"boolean\"", g.TagName))
			return types.NoTypeID, types.NoTypeID, false
		}
		// typeof pierces any the same way it pierces unknown: the guarded
		// branch sees the tested primitive, the complement is untouched.
		if w.c.types.Kind(effective) == types.KindAny {
			prim, _ := w.c.primitiveFor(tag)
			return prim, effective, true
		}
		w.checkGuardTarget(g, effective)
		then, els = w.c.Narrow(effective, TagIs(tag))
		return then, els, true

	case ast.GuardIn:
		w.checkGuardTarget(g, effective)
		then, els = w.c.Narrow(effective, HasField(g.Field))
		return then, els, true
	}
	return types.NoTypeID, types.NoTypeID, false
}

// checkGuardTarget warns when the guarded binding is a single concrete
// type: the guard still partitions, but one side is always dead.
func (w *walker) checkGuardTarget(g ast.Guard, effective types.TypeID) {
	kind := w.c.types.Kind(effective)
	if kind == types.KindUnion || kind == types.KindUnknown || kind == types.KindAny {
		return
	}
	w.warnAt(diag.CheckGuardNotUnion, g.Sp,
		fmt.Sprintf("%q has type %s: the guard cannot refine it further",
			lookupFieldName(w.c, g.Binding), w.c.format(effective)))
}

func (w *walker) branch(stmts []ast.Stmt, binding source.StringID, refined types.TypeID, depth int) {
	w.env.PushNarrow(map[source.StringID]types.TypeID{binding: refined})
	w.env.Push()
	for _, stmt := range stmts {
		w.stmt(stmt, depth+1)
	}
	w.env.Pop()
	w.env.PopNarrow()
}

func tagKind(name string) (types.Kind, bool) {
	switch name {
	case "string":
		return types.KindString, true
	case "number":
		return types.KindNumber, true
	case "boolean":
		return types.KindBool, true
	}
	return types.KindInvalid, false
}

// checkAssign verifies value-to-declared compatibility and reports the
// violation in place. It returns whether the assignment is allowed.
func (w *walker) checkAssign(value, declared types.TypeID, name string, sp source.Span) bool {
	st := &assignState{seen: make(map[assignKey]struct{})}
	switch w.c.assignable(value, declared, 0, st) {
	case vDepth:
		w.errorAt(diag.CheckRecursionLimit, sp,
			(&RecursionLimitError{Depth: w.c.maxDepth}).Error())
		return false
	case vNo:
		path, reason := w.c.explain(value, declared, name, 0)
		err := &TypeMismatchError{Expected: declared, Actual: value, Path: path, Reason: reason}
		w.errorAt(diag.CheckTypeMismatch, sp, err.Error())
		return false
	}
	return true
}
