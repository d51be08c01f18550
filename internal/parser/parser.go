// Package parser builds the lattice AST from a token stream. Recovery is
// per statement: a malformed statement is dropped and scanning resumes at
// the next statement boundary, so one bad line does not hide the rest of
// the script's diagnostics.
package parser

import (
	"lattice/internal/ast"
	"lattice/internal/diag"
	"lattice/internal/lexer"
	"lattice/internal/source"
	"lattice/internal/token"
)

type Parser struct {
	toks     []token.Token
	pos      int
	names    *source.Interner
	reporter diag.Reporter
}

// ParseFile tokenizes and parses one script file. The returned File holds
// every statement that parsed cleanly; syntax errors go to the reporter.
func ParseFile(file *source.File, names *source.Interner, reporter diag.Reporter) *ast.File {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	p := &Parser{
		toks:     lexer.Tokenize(file, reporter),
		names:    names,
		reporter: reporter,
	}
	return &ast.File{Path: file.Path, Stmts: p.parseStmts(token.EOF)}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.toks[p.pos].Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(k token.Kind, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errorAt(diag.SynUnexpectedToken, p.peek().Span, msg+", got "+p.describe(p.peek()))
	return token.Token{Kind: token.Invalid, Span: p.peek().Span}, false
}

func (p *Parser) errorAt(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(p.reporter, code, sp, msg)
}

func (p *Parser) describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Newline:
		return "end of line"
	case token.StringLit:
		return "\"" + tok.Text + "\""
	default:
		if tok.Text != "" {
			return "'" + tok.Text + "'"
		}
		return tok.Kind.String()
	}
}

func (p *Parser) skipNewlines() {
	for p.at(token.Newline) || p.at(token.Semicolon) {
		p.advance()
	}
}

// stmtEnd consumes the newline or semicolon that terminates a statement.
// A closing brace or EOF also ends a statement without being consumed.
func (p *Parser) stmtEnd() bool {
	switch p.peek().Kind {
	case token.Newline, token.Semicolon:
		p.advance()
		return true
	case token.RBrace, token.EOF:
		return true
	default:
		p.errorAt(diag.SynUnexpectedToken, p.peek().Span,
			"expected end of statement, got "+p.describe(p.peek()))
		return false
	}
}

// resync skips ahead to the next statement boundary after an error.
func (p *Parser) resync() {
	for {
		switch p.peek().Kind {
		case token.Newline, token.Semicolon:
			p.advance()
			return
		case token.RBrace, token.EOF:
			return
		}
		p.advance()
	}
}

func (p *Parser) parseStmts(until token.Kind) []ast.Stmt {
	var stmts []ast.Stmt
	for {
		p.skipNewlines()
		if p.at(until) || p.at(token.EOF) {
			return stmts
		}
		stmt, ok := p.parseStmt()
		if !ok {
			p.resync()
			continue
		}
		stmts = append(stmts, stmt)
	}
}

func (p *Parser) parseStmt() (ast.Stmt, bool) {
	switch p.peek().Kind {
	case token.KwType:
		return p.parseTypeDecl()
	case token.KwLet, token.KwConst:
		return p.parseLetDecl()
	case token.KwIf:
		return p.parseIfStmt()
	case token.Ident:
		return p.parseAssign()
	default:
		p.errorAt(diag.SynUnexpectedToken, p.peek().Span,
			"expected a statement, got "+p.describe(p.peek()))
		return nil, false
	}
}

// parseTypeDecl parses `type Name = TypeExpr`.
func (p *Parser) parseTypeDecl() (ast.Stmt, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, "expected type name after 'type'")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Assign, "expected '=' in type declaration"); !ok {
		return nil, false
	}
	typ, ok := p.parseTypeExpr()
	if !ok {
		return nil, false
	}
	stmt := &ast.TypeDecl{
		Name:     p.names.Intern(name.Text),
		NameText: name.Text,
		Type:     typ,
		Sp:       kw.Span.Cover(typ.Span()),
	}
	return stmt, p.stmtEnd()
}

// parseLetDecl parses `let|const name [: Type] = value`.
func (p *Parser) parseLetDecl() (ast.Stmt, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, "expected binding name after '"+kw.Text+"'")
	if !ok {
		return nil, false
	}
	var typ ast.TypeExpr
	if p.at(token.Colon) {
		p.advance()
		typ, ok = p.parseTypeExpr()
		if !ok {
			return nil, false
		}
	}
	if _, ok := p.expect(token.Assign, "expected '=' in declaration"); !ok {
		return nil, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	stmt := &ast.LetDecl{
		Name:     p.names.Intern(name.Text),
		NameText: name.Text,
		Const:    kw.Kind == token.KwConst,
		Type:     typ,
		Value:    value,
		Sp:       kw.Span.Cover(value.Span()),
	}
	return stmt, p.stmtEnd()
}

// parseAssign parses `name = value` and `name.field = value`.
func (p *Parser) parseAssign() (ast.Stmt, bool) {
	name := p.advance()
	field := source.NoStringID
	sp := name.Span
	if p.at(token.Dot) {
		p.advance()
		fieldTok, ok := p.expect(token.Ident, "expected field name after '.'")
		if !ok {
			return nil, false
		}
		field = p.names.Intern(fieldTok.Text)
		sp = sp.Cover(fieldTok.Span)
	}
	if _, ok := p.expect(token.Assign, "expected '=' in assignment"); !ok {
		return nil, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	stmt := &ast.AssignStmt{
		Name:  p.names.Intern(name.Text),
		Field: field,
		Value: value,
		Sp:    sp.Cover(value.Span()),
	}
	return stmt, p.stmtEnd()
}

// parseIfStmt parses `if <guard> { ... } [else { ... } | else if ...]`.
func (p *Parser) parseIfStmt() (ast.Stmt, bool) {
	kw := p.advance()
	guard, ok := p.parseGuard()
	if !ok {
		return nil, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	stmt := &ast.IfStmt{Guard: guard, Then: then, Sp: kw.Span.Cover(guard.Sp)}
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			nested, ok := p.parseIfStmt()
			if !ok {
				return nil, false
			}
			stmt.Else = []ast.Stmt{nested}
			return stmt, true
		}
		stmt.Else, ok = p.parseBlock()
		if !ok {
			return nil, false
		}
	}
	return stmt, true
}

// parseGuard recognizes the two narrowing conditions:
//
//	typeof name == "string"   (or !=)
//	"field" in name
func (p *Parser) parseGuard() (ast.Guard, bool) {
	switch p.peek().Kind {
	case token.KwTypeof:
		sp := p.advance().Span
		name, ok := p.expect(token.Ident, "expected binding name after 'typeof'")
		if !ok {
			return ast.Guard{}, false
		}
		negated := false
		switch p.peek().Kind {
		case token.EqEq:
			p.advance()
		case token.BangEq:
			negated = true
			p.advance()
		default:
			p.errorAt(diag.SynExpectGuard, p.peek().Span,
				"expected '==' or '!=' in typeof guard")
			return ast.Guard{}, false
		}
		tag, ok := p.expect(token.StringLit, "expected a type-tag string")
		if !ok {
			return ast.Guard{}, false
		}
		return ast.Guard{
			Kind:    ast.GuardTypeof,
			Binding: p.names.Intern(name.Text),
			TagName: tag.Text,
			Negated: negated,
			Sp:      sp.Cover(tag.Span),
		}, true
	case token.StringLit:
		field := p.advance()
		if _, ok := p.expect(token.KwIn, "expected 'in' after the field name"); !ok {
			return ast.Guard{}, false
		}
		name, ok := p.expect(token.Ident, "expected binding name after 'in'")
		if !ok {
			return ast.Guard{}, false
		}
		return ast.Guard{
			Kind:    ast.GuardIn,
			Binding: p.names.Intern(name.Text),
			Field:   p.names.Intern(field.Text),
			Sp:      field.Span.Cover(name.Span),
		}, true
	default:
		p.errorAt(diag.SynExpectGuard, p.peek().Span,
			"expected a typeof comparison or a \"field\" in x guard")
		return ast.Guard{}, false
	}
}

func (p *Parser) parseBlock() ([]ast.Stmt, bool) {
	open, ok := p.expect(token.LBrace, "expected '{'")
	if !ok {
		return nil, false
	}
	stmts := p.parseStmts(token.RBrace)
	if !p.at(token.RBrace) {
		p.errorAt(diag.SynUnclosedDelimiter, open.Span, "unclosed '{'")
		return nil, false
	}
	p.advance()
	return stmts, true
}
