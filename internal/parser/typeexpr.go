package parser

import (
	"lattice/internal/ast"
	"lattice/internal/diag"
	"lattice/internal/source"
	"lattice/internal/token"
)

// parseTypeExpr parses a full type expression: a `|` union of postfix
// types. A single member collapses to the member itself.
func (p *Parser) parseTypeExpr() (ast.TypeExpr, bool) {
	first, ok := p.parsePostfixType()
	if !ok {
		return nil, false
	}
	if !p.at(token.Pipe) {
		return first, true
	}
	members := []ast.TypeExpr{first}
	for p.at(token.Pipe) {
		p.advance()
		p.skipNewlines()
		next, ok := p.parsePostfixType()
		if !ok {
			return nil, false
		}
		members = append(members, next)
	}
	return &ast.UnionType{
		Members: members,
		Sp:      first.Span().Cover(members[len(members)-1].Span()),
	}, true
}

// parsePostfixType parses a primary type followed by any number of `[]`
// array suffixes. `(A | B)[]` binds the suffix to the whole group.
func (p *Parser) parsePostfixType() (ast.TypeExpr, bool) {
	typ, ok := p.parsePrimaryType()
	if !ok {
		return nil, false
	}
	for p.at(token.LBracket) && p.toks[p.pos+1].Kind == token.RBracket {
		p.advance()
		close := p.advance()
		typ = &ast.ArrayType{Elem: typ, Sp: typ.Span().Cover(close.Span)}
	}
	return typ, true
}

func (p *Parser) parsePrimaryType() (ast.TypeExpr, bool) {
	switch p.peek().Kind {
	case token.Ident:
		return p.parseNamedOrGeneric()
	case token.StringLit:
		tok := p.advance()
		return &ast.LiteralType{Text: tok.Text, IsStr: true, Sp: tok.Span}, true
	case token.NumberLit:
		tok := p.advance()
		return &ast.LiteralType{Text: tok.Text, Sp: tok.Span}, true
	case token.KwTrue, token.KwFalse:
		tok := p.advance()
		return &ast.LiteralType{Text: tok.Text, IsBool: true, Sp: tok.Span}, true
	case token.LBracket:
		return p.parseTupleType()
	case token.LBrace:
		return p.parseObjectType()
	case token.LParen:
		return p.parseFnOrGroupType()
	default:
		p.errorAt(diag.SynExpectTypeExpr, p.peek().Span,
			"expected a type expression, got "+p.describe(p.peek()))
		return nil, false
	}
}

// parseNamedOrGeneric parses `Name` or `Name<Arg, ...>`.
func (p *Parser) parseNamedOrGeneric() (ast.TypeExpr, bool) {
	name := p.advance()
	id := p.names.Intern(name.Text)
	if !p.at(token.Lt) {
		return &ast.NamedType{Name: id, NameText: name.Text, Sp: name.Span}, true
	}
	p.advance()
	var args []ast.TypeExpr
	for {
		p.skipNewlines()
		arg, ok := p.parseTypeExpr()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		p.skipNewlines()
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	close, ok := p.expect(token.Gt, "expected '>' closing type arguments")
	if !ok {
		return nil, false
	}
	return &ast.GenericType{
		Base:     id,
		BaseText: name.Text,
		Args:     args,
		Sp:       name.Span.Cover(close.Span),
	}, true
}

// parseTupleType parses `[A, B, ...]`. An empty tuple `[]` is allowed.
func (p *Parser) parseTupleType() (ast.TypeExpr, bool) {
	open := p.advance()
	var elems []ast.TypeExpr
	p.skipNewlines()
	for !p.at(token.RBracket) {
		elem, ok := p.parseTypeExpr()
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
	close, ok := p.expect(token.RBracket, "expected ']' closing tuple type")
	if !ok {
		return nil, false
	}
	return &ast.TupleType{Elems: elems, Sp: open.Span.Cover(close.Span)}, true
}

// parseObjectType parses `{a: T, b?: U, readonly c: V}`. Fields separate
// by comma or newline; duplicate names are rejected here so the checker
// never sees them.
func (p *Parser) parseObjectType() (ast.TypeExpr, bool) {
	open := p.advance()
	var fields []ast.ObjectField
	seen := make(map[source.StringID]struct{})
	p.skipNewlines()
	for !p.at(token.RBrace) {
		fieldStart := p.peek().Span
		readonly := false
		if p.at(token.KwReadonly) {
			p.advance()
			readonly = true
		}
		name, ok := p.expect(token.Ident, "expected field name")
		if !ok {
			return nil, false
		}
		optional := false
		if p.at(token.Question) {
			p.advance()
			optional = true
		}
		if _, ok := p.expect(token.Colon, "expected ':' after field name"); !ok {
			return nil, false
		}
		typ, ok := p.parseTypeExpr()
		if !ok {
			return nil, false
		}
		id := p.names.Intern(name.Text)
		if _, dup := seen[id]; dup {
			p.errorAt(diag.SynDuplicateField, name.Span,
				"duplicate field \""+name.Text+"\" in object type")
			return nil, false
		}
		seen[id] = struct{}{}
		fields = append(fields, ast.ObjectField{
			Name:     id,
			NameText: name.Text,
			Type:     typ,
			Optional: optional,
			Readonly: readonly,
			Sp:       fieldStart.Cover(typ.Span()),
		})
		if p.at(token.Comma) || p.at(token.Newline) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	close, ok := p.expect(token.RBrace, "expected '}' closing object type")
	if !ok {
		return nil, false
	}
	return &ast.ObjectType{Fields: fields, Sp: open.Span.Cover(close.Span)}, true
}

// parseFnOrGroupType parses `(A, B) => R` or a parenthesized type
// `(A | B)`. The decision waits until the closing paren: a following
// `=>` makes it a function type.
func (p *Parser) parseFnOrGroupType() (ast.TypeExpr, bool) {
	open := p.advance()
	var params []ast.TypeExpr
	p.skipNewlines()
	for !p.at(token.RParen) {
		param, ok := p.parseTypeExpr()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		p.skipNewlines()
		if p.at(token.Comma) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, "expected ')'"); !ok {
		return nil, false
	}
	if p.at(token.FatArrow) {
		p.advance()
		result, ok := p.parsePostfixType()
		if !ok {
			return nil, false
		}
		return &ast.FnType{
			Params: params,
			Result: result,
			Sp:     open.Span.Cover(result.Span()),
		}, true
	}
	if len(params) == 1 {
		return params[0], true
	}
	p.errorAt(diag.SynExpectTypeExpr, open.Span,
		"expected '=>' after a parenthesized parameter list")
	return nil, false
}
