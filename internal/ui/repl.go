package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lattice/internal/ast"
	"lattice/internal/driver"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	typeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

const replHelp = `commands:
  :help      show this help
  :types     list declared type aliases
  :bindings  list declared bindings
  :reset     discard the session
  :quit      leave (also ctrl+d)`

// ReplModel is the interactive session: each accepted line re-checks the
// whole accumulated script, so every answer reflects the full session
// state. Lines that fail to check are reported and rolled back.
type ReplModel struct {
	input      textinput.Model
	lines      []string
	transcript []string
	color      bool
	quitting   bool
}

// NewRepl builds the session model.
func NewRepl(color bool) ReplModel {
	in := textinput.New()
	in.Prompt = "lat> "
	if color {
		in.PromptStyle = promptStyle
	}
	in.Placeholder = "let x: string | number = 1"
	in.Focus()
	return ReplModel{
		input: in,
		color: color,
		transcript: []string{
			"lattice interactive session, :help for commands",
		},
	}
}

func (m ReplModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ReplModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		line := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		if line == "" {
			return m, nil
		}
		m.echo("lat> " + line)
		if strings.HasPrefix(line, ":") {
			return m.command(line)
		}
		m.submit(line)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ReplModel) echo(line string) {
	m.transcript = append(m.transcript, line)
}

func (m ReplModel) command(line string) (tea.Model, tea.Cmd) {
	switch line {
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	case ":help":
		m.echo(replHelp)
	case ":reset":
		m.lines = nil
		m.echo("session cleared")
	case ":types", ":bindings":
		res := m.runAll("")
		table := res.Check.Bindings
		layout := "%s: %s"
		if line == ":types" {
			table = res.Check.Aliases
			layout = "type %s = %s"
		}
		rendered := make([]string, 0, len(table))
		for name, id := range table {
			rendered = append(rendered, fmt.Sprintf(layout, res.Names.MustLookup(name), m.style(res.FormatType(id))))
		}
		sort.Strings(rendered)
		for _, entry := range rendered {
			m.echo(entry)
		}
	default:
		m.echo("unknown command " + line + ", :help for the list")
	}
	return m, nil
}

// submit re-checks the session with the candidate line appended and
// commits it only when the whole script still checks.
func (m *ReplModel) submit(line string) {
	res := m.runAll(line)
	if res.HasErrors() {
		var sb strings.Builder
		RenderDiagnostics(&sb, res.Bag, res.FileSet, RenderOpts{Color: m.color, NoLines: true})
		m.echo(strings.TrimRight(sb.String(), "\n"))
		return
	}
	m.lines = append(m.lines, line)
	m.describe(res)
}

// describe prints what the last statement introduced.
func (m *ReplModel) describe(res *driver.Result) {
	if len(res.AST.Stmts) == 0 {
		return
	}
	switch s := res.AST.Stmts[len(res.AST.Stmts)-1].(type) {
	case *ast.TypeDecl:
		if id, ok := res.Check.Aliases[s.Name]; ok {
			m.echo(fmt.Sprintf("type %s = %s", s.NameText, m.style(res.FormatType(id))))
		}
	case *ast.LetDecl:
		if id, ok := res.Check.Bindings[s.Name]; ok {
			m.echo(fmt.Sprintf("%s: %s", s.NameText, m.style(res.FormatType(id))))
		}
	default:
		m.echo("ok")
	}
}

func (m *ReplModel) runAll(extra string) *driver.Result {
	src := strings.Join(m.lines, "\n")
	if extra != "" {
		if src != "" {
			src += "\n"
		}
		src += extra
	}
	return driver.RunScript("repl", []byte(src), driver.Options{})
}

func (m ReplModel) style(s string) string {
	if !m.color {
		return s
	}
	return typeStyle.Render(s)
}

func (m ReplModel) View() string {
	if m.quitting {
		return strings.Join(m.transcript, "\n") + "\n"
	}
	view := strings.Join(m.transcript, "\n") + "\n" + m.input.View()
	if m.color {
		return view + "\n" + faintStyle.Render("ctrl+d to quit")
	}
	return view + "\nctrl+d to quit"
}

// RunRepl starts the interactive session and blocks until it exits.
func RunRepl(color bool) error {
	p := tea.NewProgram(NewRepl(color))
	_, err := p.Run()
	return err
}
