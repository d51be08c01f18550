package token

import "lattice/internal/source"

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwType, KwLet, KwConst, KwIf, KwElse, KwIn, KwTypeof, KwReadonly, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

var keywords = map[string]Kind{
	"type":     KwType,
	"let":      KwLet,
	"const":    KwConst,
	"if":       KwIf,
	"else":     KwElse,
	"in":       KwIn,
	"typeof":   KwTypeof,
	"readonly": KwReadonly,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword resolves an identifier's text to its keyword kind, Ident
// otherwise.
func LookupKeyword(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return Ident
}
