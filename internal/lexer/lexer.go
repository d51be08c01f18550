// Package lexer turns script bytes into tokens. Newlines are significant:
// they separate statements, so the scanner emits one Newline token per run
// of blank space containing at least one line break.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"lattice/internal/diag"
	"lattice/internal/source"
	"lattice/internal/token"
)

type Lexer struct {
	file     *source.File
	off      uint32
	reporter diag.Reporter
}

func New(file *source.File, reporter diag.Reporter) *Lexer {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Lexer{file: file, reporter: reporter}
}

// Tokenize scans the whole file. The result always ends with an EOF token.
func Tokenize(file *source.File, reporter diag.Reporter) []token.Token {
	lx := New(file, reporter)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next returns the next token, collapsing whitespace and comments.
func (lx *Lexer) Next() token.Token {
	sawNewline := false
	newlineAt := lx.off
	for !lx.eof() {
		ch := lx.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			lx.off++
		case ch == '\n':
			if !sawNewline {
				newlineAt = lx.off
			}
			sawNewline = true
			lx.off++
		case ch == '/' && lx.peekAt(1) == '/':
			for !lx.eof() && lx.peek() != '\n' {
				lx.off++
			}
		default:
			goto scan
		}
	}
scan:
	if sawNewline {
		return token.Token{Kind: token.Newline, Span: lx.span(newlineAt, newlineAt+1)}
	}
	if lx.eof() {
		return token.Token{Kind: token.EOF, Span: lx.span(lx.off, lx.off)}
	}

	ch := lx.peek()
	switch {
	case isIdentStart(ch) || ch >= utf8.RuneSelf && isIdentStartRune(lx.peekRune()):
		return lx.scanIdentOrKeyword()
	case isDigit(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperator()
	}
}

func (lx *Lexer) eof() bool {
	return int(lx.off) >= len(lx.file.Content)
}

func (lx *Lexer) peek() byte {
	return lx.file.Content[lx.off]
}

func (lx *Lexer) peekAt(n uint32) byte {
	if int(lx.off+n) >= len(lx.file.Content) {
		return 0
	}
	return lx.file.Content[lx.off+n]
}

func (lx *Lexer) peekRune() rune {
	r, _ := utf8.DecodeRune(lx.file.Content[lx.off:])
	return r
}

func (lx *Lexer) span(start, end uint32) source.Span {
	if end > uint32(len(lx.file.Content)) {
		end = uint32(len(lx.file.Content))
	}
	return source.Span{File: lx.file.ID, Start: start, End: end}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
