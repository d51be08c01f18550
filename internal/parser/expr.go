package parser

import (
	"lattice/internal/ast"
	"lattice/internal/diag"
	"lattice/internal/source"
	"lattice/internal/token"
)

// parseExpr parses a value expression: a primary optionally followed by a
// `.field` access chain.
func (p *Parser) parseExpr() (ast.Expr, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return nil, false
	}
	for p.at(token.Dot) {
		p.advance()
		field, ok := p.expect(token.Ident, "expected field name after '.'")
		if !ok {
			return nil, false
		}
		expr = &ast.FieldExpr{
			Base:  expr,
			Field: p.names.Intern(field.Text),
			Text:  field.Text,
			Sp:    expr.Span().Cover(field.Span),
		}
	}
	return expr, true
}

func (p *Parser) parsePrimaryExpr() (ast.Expr, bool) {
	switch p.peek().Kind {
	case token.StringLit:
		tok := p.advance()
		return &ast.StringLit{Value: tok.Text, Sp: tok.Span}, true
	case token.NumberLit:
		tok := p.advance()
		return &ast.NumberLit{Text: tok.Text, Sp: tok.Span}, true
	case token.KwTrue, token.KwFalse:
		tok := p.advance()
		return &ast.BoolLit{Value: tok.Kind == token.KwTrue, Sp: tok.Span}, true
	case token.Ident:
		tok := p.advance()
		return &ast.IdentExpr{
			Name:     p.names.Intern(tok.Text),
			NameText: tok.Text,
			Sp:       tok.Span,
		}, true
	case token.LBrace:
		return p.parseObjectLit()
	case token.LBracket:
		return p.parseArrayLit()
	default:
		p.errorAt(diag.SynUnexpectedToken, p.peek().Span,
			"expected a value expression, got "+p.describe(p.peek()))
		return nil, false
	}
}

// parseObjectLit parses `{a: 1, b: "x"}`.
func (p *Parser) parseObjectLit() (ast.Expr, bool) {
	open := p.advance()
	var entries []ast.ObjectEntry
	seen := make(map[source.StringID]struct{})
	p.skipNewlines()
	for !p.at(token.RBrace) {
		name, ok := p.expect(token.Ident, "expected field name")
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, "expected ':' after field name"); !ok {
			return nil, false
		}
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		id := p.names.Intern(name.Text)
		if _, dup := seen[id]; dup {
			p.errorAt(diag.SynDuplicateField, name.Span,
				"duplicate field \""+name.Text+"\" in object literal")
			return nil, false
		}
		seen[id] = struct{}{}
		entries = append(entries, ast.ObjectEntry{
			Name:     id,
			NameText: name.Text,
			Value:    value,
			Sp:       name.Span.Cover(value.Span()),
		})
		if p.at(token.Comma) || p.at(token.Newline) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	close, ok := p.expect(token.RBrace, "expected '}' closing object literal")
	if !ok {
		return nil, false
	}
	return &ast.ObjectLit{Entries: entries, Sp: open.Span.Cover(close.Span)}, true
}

// parseArrayLit parses `[e1, e2]`.
func (p *Parser) parseArrayLit() (ast.Expr, bool) {
	open := p.advance()
	var elems []ast.Expr
	p.skipNewlines()
	for !p.at(token.RBracket) {
		elem, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		elems = append(elems, elem)
		p.skipNewlines()
		if p.at(token.Comma) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	close, ok := p.expect(token.RBracket, "expected ']' closing array literal")
	if !ok {
		return nil, false
	}
	return &ast.ArrayLit{Elems: elems, Sp: open.Span.Cover(close.Span)}, true
}
