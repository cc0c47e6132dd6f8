package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/forbidden-bands/petscii"
	"github.com/forbidden-bands/petscii/charmap"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type direction int

const (
	directionDecode direction = iota
	directionEncode
)

type interactiveModel struct {
	err    error
	tables *charmap.Map
	result string
	raw    string
	input  textinput.Model
	dir    direction
}

func newInteractiveModel(tables *charmap.Map) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()

	m := &interactiveModel{tables: tables, input: ti, dir: directionDecode}
	m.input.Placeholder = m.placeholder()
	return m
}

func (m *interactiveModel) placeholder() string {
	if m.dir == directionDecode {
		return "48 49 20 0E 54 48 45 52 45 8E"
	}
	return "Hello, World!"
}

func (m *interactiveModel) modeLabel() string {
	if m.dir == directionDecode {
		return "petscii -> text"
	}
	return "text -> petscii"
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "tab":
			if m.dir == directionDecode {
				m.dir = directionEncode
			} else {
				m.dir = directionDecode
			}
			m.input.Placeholder = m.placeholder()
			m.result = ""
			m.raw = ""
			m.err = nil
			return m, nil

		case "esc":
			m.input.SetValue("")
			m.result = ""
			m.raw = ""
			m.err = nil
			return m, nil

		case "enter":
			m.convert()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) convert() {
	m.result = ""
	m.raw = ""
	m.err = nil

	switch m.dir {
	case directionDecode:
		data, err := parseHexBytes(m.input.Value())
		if err != nil {
			m.err = err
			return
		}
		s, err := petscii.New(len(data), data)
		if err != nil {
			m.err = err
			return
		}
		text, err := petscii.Decode(s, m.tables)
		if err != nil {
			m.err = err
			return
		}
		m.result = text
		m.raw = s.Dump()

	case directionEncode:
		text := m.input.Value()
		s, err := petscii.Encode(text, m.tables, 2*len(text)+1)
		if err != nil {
			m.err = err
			return
		}
		m.result = fmt.Sprintf("% 02X", s.Bytes())
		m.raw = s.Dump()
	}
}

// parseHexBytes reads whitespace- or comma-separated byte values,
// accepting the $ and 0x prefixes common in 8-bit listings.
func parseHexBytes(text string) ([]byte, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	if len(fields) == 0 {
		return nil, stderrors.New("no bytes to decode")
	}

	data := make([]byte, 0, len(fields))
	for _, field := range fields {
		token := strings.ToLower(strings.TrimPrefix(field, "$"))
		token = strings.TrimPrefix(token, "0x")
		v, err := strconv.ParseUint(token, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("bad byte %q", field)
		}
		data = append(data, byte(v))
	}
	return data, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("PETSCII Workbench"))
	b.WriteString(" ")
	b.WriteString(modeStyle.Render(m.modeLabel()))
	b.WriteString("  charmap ")
	b.WriteString(modeStyle.Render(m.tables.Version))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	case m.result != "":
		b.WriteString(resultStyle.Render(m.result))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.raw))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter convert • tab direction • esc clear • ctrl+c quit"))
	return b.String()
}

func cmdInteractive(tables *charmap.Map) int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fail(stderrors.New("interactive mode needs a terminal"))
	}

	p := tea.NewProgram(newInteractiveModel(tables), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fail(err)
	}
	return 0
}
