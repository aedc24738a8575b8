package main

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/structree/structree"
	"github.com/structree/structree/treescope"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelect modelState = iota
	stateView
	stateEdit
)

type explorerModel struct {
	err      error
	entries  []demoEntry
	renderer *treescope.Renderer
	input    textinput.Model
	selected int
	state    modelState
}

func newExplorerModel(entries []demoEntry) *explorerModel {
	ti := textinput.New()
	ti.Placeholder = "Field = value"
	ti.Width = 40
	return &explorerModel{
		entries:  entries,
		renderer: treescope.NewRenderer(treescope.WithColor(true)),
		input:    ti,
		state:    stateSelect,
	}
}

func (m *explorerModel) Init() tea.Cmd {
	return nil
}

func (m *explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q":
		if m.state != stateEdit {
			return m, tea.Quit
		}

	case "up", "k":
		if m.state == stateSelect && m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.state == stateSelect && m.selected < len(m.entries)-1 {
			m.selected++
		}

	case "enter":
		switch m.state {
		case stateSelect:
			m.state = stateView
		case stateEdit:
			m.err = m.applyEdit(m.input.Value())
			if m.err == nil {
				m.input.Reset()
				m.input.Blur()
				m.state = stateView
			}
		}
		return m, nil

	case "e":
		if m.state == stateView {
			m.state = stateEdit
			m.err = nil
			m.input.Reset()
			m.input.Focus()
			return m, textinput.Blink
		}

	case "esc":
		switch m.state {
		case stateView:
			m.state = stateSelect
			m.err = nil
		case stateEdit:
			m.state = stateView
			m.err = nil
			m.input.Reset()
			m.input.Blur()
		}
		return m, nil
	}

	if m.state == stateEdit {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applyEdit parses a "Field = value" line and swaps the selected entry for a
// rebuilt copy. The original value is never touched; a failed parse or an
// unknown field leaves the entry as it was.
func (m *explorerModel) applyEdit(line string) error {
	name, raw, ok := strings.Cut(line, "=")
	if !ok {
		return fmt.Errorf("expected Field = value")
	}
	name = strings.TrimSpace(name)
	raw = strings.TrimSpace(raw)

	entry := &m.entries[m.selected]
	t, ok := structree.Lookup(reflect.TypeOf(entry.value))
	if !ok {
		return fmt.Errorf("%T is not a registered type", entry.value)
	}

	var field *structree.FieldInfo
	for _, f := range t.Fields() {
		if f.Name == name {
			field = &f
			break
		}
	}
	if field == nil {
		return fmt.Errorf("%s has no field %s", t.Name(), name)
	}

	val, err := parseScalar(raw, field.Type)
	if err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}

	attrs, err := structree.AttributesDict(entry.value)
	if err != nil {
		return err
	}
	attrs[name] = val
	next, err := t.FromAttributes(attrs)
	if err != nil {
		return err
	}
	entry.value = next
	return nil
}

func parseScalar(raw string, t reflect.Type) (any, error) {
	switch t.Kind() {
	case reflect.String:
		return raw, nil
	case reflect.Bool:
		return strconv.ParseBool(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(v).Convert(t).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(v).Convert(t).Interface(), nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(v).Convert(t).Interface(), nil
	default:
		return nil, fmt.Errorf("only scalar fields are editable, %s is %s", raw, t)
	}
}

func (m *explorerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tree Explorer"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelect:
		b.WriteString("Select a value to inspect:\n\n")
		for i, e := range m.entries {
			line := fmt.Sprintf("%s  %s", nameStyle.Render(e.name), typeStyle.Render(typeName(e.value)))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + e.name))
				b.WriteString("  " + typeStyle.Render(typeName(e.value)))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter inspect • q quit"))

	case stateView:
		e := m.entries[m.selected]
		b.WriteString(nameStyle.Render(e.name))
		b.WriteString(" = ")
		b.WriteString(m.renderer.Render(e.value))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("e edit field • esc back • q quit"))

	case stateEdit:
		e := m.entries[m.selected]
		b.WriteString(fmt.Sprintf("Rebuild %s with a new field value:\n\n", nameStyle.Render(e.name)))
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter apply • esc cancel"))
	}

	return b.String()
}

func typeName(v any) string {
	if t, ok := structree.Lookup(reflect.TypeOf(v)); ok {
		return t.Name()
	}
	return fmt.Sprintf("%T", v)
}

func runInteractive(entries []demoEntry) error {
	p := tea.NewProgram(newExplorerModel(entries), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
