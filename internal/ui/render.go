// Package ui renders diagnostics for terminals and hosts the interactive
// session.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"lattice/internal/diag"
	"lattice/internal/source"
)

// RenderOpts configure diagnostic output.
type RenderOpts struct {
	Color   bool
	NoLines bool // suppress source excerpts
}

var (
	errorBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	infoBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	caretStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

func badge(sev diag.Severity, color bool) string {
	text := sev.String()
	if !color {
		return text
	}
	switch sev {
	case diag.SevError:
		return errorBadge.Render(text)
	case diag.SevWarning:
		return warnBadge.Render(text)
	default:
		return infoBadge.Render(text)
	}
}

// RenderDiagnostics writes every diagnostic in the bag as
//
//	path:line:col: SEVERITY CODE: message
//	    <source line>
//	    ^~~~
//
// The caret line is aligned with display widths, so tabs and wide runes in
// the excerpt do not skew the underline.
func RenderDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts RenderOpts) {
	for _, d := range bag.Items() {
		renderOne(w, d, fs, opts)
	}
}

func renderOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts RenderOpts) {
	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)

	path := "<input>"
	if file != nil {
		path = file.Path
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, start.Line, start.Col, badge(d.Severity, opts.Color), d.Code, d.Message)

	if !opts.NoLines && file != nil {
		renderExcerpt(w, file, start, end, opts)
	}
	for _, note := range d.Notes {
		noteStart, _ := fs.Resolve(note.Span)
		line := fmt.Sprintf("%s:%d:%d: note: %s", path, noteStart.Line, noteStart.Col, note.Msg)
		if opts.Color {
			line = dimStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

func renderExcerpt(w io.Writer, file *source.File, start, end source.LineCol, opts RenderOpts) {
	text := file.Line(start.Line)
	if text == "" && start.Col == 1 && end.Col == 1 {
		return
	}
	gutter := fmt.Sprintf("  %d | ", start.Line)
	fmt.Fprintf(w, "%s%s\n", gutter, text)

	// Widths up to the caret and under it, in display cells.
	runes := []rune(text)
	startIdx := clampIdx(int(start.Col)-1, len(runes))
	endIdx := len(runes)
	if end.Line == start.Line {
		endIdx = clampIdx(int(end.Col)-1, len(runes)+1)
	}
	if endIdx <= startIdx {
		endIdx = startIdx + 1
	}

	pad := runewidth.StringWidth(string(runes[:startIdx]))
	width := runewidth.StringWidth(string(runes[startIdx:min(endIdx, len(runes))]))
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = caretStyle.Render(marker)
	}
	fmt.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", runewidth.StringWidth(gutter)), strings.Repeat(" ", pad), marker)
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
