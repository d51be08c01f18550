package lexer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"lattice/internal/diag"
	"lattice/internal/token"
)

// scanIdentOrKeyword consumes an identifier, resolving keywords. Unicode
// identifiers are normalized to NFC so visually identical names intern to
// the same string.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.off
	ascii := true
	for !lx.eof() {
		ch := lx.peek()
		if ch < utf8.RuneSelf {
			if !isIdentContinue(ch) {
				break
			}
			lx.off++
			continue
		}
		r, size := utf8.DecodeRune(lx.file.Content[lx.off:])
		if !isIdentContinueRune(r) {
			break
		}
		ascii = false
		lx.off += uint32(size)
	}
	text := string(lx.file.Content[start:lx.off])
	if !ascii {
		text = norm.NFC.String(text)
	}
	return token.Token{
		Kind: token.LookupKeyword(text),
		Span: lx.span(start, lx.off),
		Text: text,
	}
}

// scanNumber consumes an integer or decimal literal. The text is
// canonicalized (leading zeros trimmed) so equal values produce equal
// literal types.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.off
	for !lx.eof() && isDigit(lx.peek()) {
		lx.off++
	}
	if !lx.eof() && lx.peek() == '.' && isDigit(lx.peekAt(1)) {
		lx.off++
		for !lx.eof() && isDigit(lx.peek()) {
			lx.off++
		}
	}
	// A trailing identifier character makes the number malformed (12abc).
	if !lx.eof() && (isIdentStart(lx.peek()) || lx.peek() == '.') {
		for !lx.eof() && (isIdentContinue(lx.peek()) || lx.peek() == '.') {
			lx.off++
		}
		sp := lx.span(start, lx.off)
		diag.ReportError(lx.reporter, diag.LexBadNumber, sp, "malformed number literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[start:lx.off])}
	}
	return token.Token{
		Kind: token.NumberLit,
		Span: lx.span(start, lx.off),
		Text: canonicalNumber(string(lx.file.Content[start:lx.off])),
	}
}

// canonicalNumber strips leading zeros and a trailing ".0" fraction so
// "042" and "42" (and "42.0") denote the same literal type.
func canonicalNumber(text string) string {
	intPart, fracPart, hasFrac := strings.Cut(text, ".")
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	if hasFrac {
		fracPart = strings.TrimRight(fracPart, "0")
	}
	if fracPart == "" {
		return intPart
	}
	return intPart + "." + fracPart
}

func (lx *Lexer) scanString() token.Token {
	start := lx.off
	lx.off++ // opening quote
	var sb strings.Builder
	for !lx.eof() {
		ch := lx.peek()
		switch ch {
		case '"':
			lx.off++
			return token.Token{
				Kind: token.StringLit,
				Span: lx.span(start, lx.off),
				Text: sb.String(),
			}
		case '\n':
			sp := lx.span(start, lx.off)
			diag.ReportError(lx.reporter, diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: sb.String()}
		case '\\':
			lx.off++
			if lx.eof() {
				break
			}
			switch lx.peek() {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteByte(lx.peek())
			}
			lx.off++
		default:
			sb.WriteByte(ch)
			lx.off++
		}
	}
	sp := lx.span(start, lx.off)
	diag.ReportError(lx.reporter, diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: sb.String()}
}

func (lx *Lexer) scanOperator() token.Token {
	start := lx.off
	ch := lx.peek()
	lx.off++

	two := func(kind token.Kind) token.Token {
		lx.off++
		return token.Token{Kind: kind, Span: lx.span(start, lx.off), Text: string(lx.file.Content[start:lx.off])}
	}
	one := func(kind token.Kind) token.Token {
		return token.Token{Kind: kind, Span: lx.span(start, lx.off), Text: string(lx.file.Content[start:lx.off])}
	}

	switch ch {
	case '=':
		if !lx.eof() && lx.peek() == '=' {
			return two(token.EqEq)
		}
		if !lx.eof() && lx.peek() == '>' {
			return two(token.FatArrow)
		}
		return one(token.Assign)
	case '!':
		if !lx.eof() && lx.peek() == '=' {
			return two(token.BangEq)
		}
	case '|':
		return one(token.Pipe)
	case '?':
		return one(token.Question)
	case ':':
		return one(token.Colon)
	case ',':
		return one(token.Comma)
	case '.':
		return one(token.Dot)
	case '<':
		return one(token.Lt)
	case '>':
		return one(token.Gt)
	case '(':
		return one(token.LParen)
	case ')':
		return one(token.RParen)
	case '{':
		return one(token.LBrace)
	case '}':
		return one(token.RBrace)
	case '[':
		return one(token.LBracket)
	case ']':
		return one(token.RBracket)
	case ';':
		return one(token.Semicolon)
	}

	sp := lx.span(start, lx.off)
	diag.ReportError(lx.reporter, diag.LexUnknownChar, sp, "unexpected character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[start:lx.off])}
}
