package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Field is a labeled text input within a Form.
type Field struct {
	Label   string
	Numeric bool
	input   textinput.Model
}

// FormStyles holds the styles the form renders with.
type FormStyles struct {
	Label   lipgloss.Style
	Focused lipgloss.Style
	Blurred lipgloss.Style
	Title   lipgloss.Style
}

// Form is a small vertical stack of text inputs with tab cycling. Views use
// it for procurement and distribution entry.
type Form struct {
	title  string
	fields []*Field
	focus  int
	styles FormStyles
}

// NewForm builds a form from field definitions. The first field starts
// focused.
func NewForm(title string, defs ...Field) *Form {
	f := &Form{title: title}
	for i := range defs {
		fd := defs[i]
		ti := textinput.New()
		ti.CharLimit = 32
		ti.Width = 24
		ti.Prompt = "> "
		if fd.Numeric {
			ti.CharLimit = 9
			ti.Width = 10
		}
		fd.input = ti
		f.fields = append(f.fields, &fd)
	}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

// SetStyles replaces the form's render styles.
func (f *Form) SetStyles(s FormStyles) {
	f.styles = s
}

// Reset clears all inputs and returns focus to the first field.
func (f *Form) Reset() {
	for i, fd := range f.fields {
		fd.input.Reset()
		fd.input.Blur()
		if i == 0 {
			fd.input.Focus()
		}
	}
	f.focus = 0
}

// Update routes a message to the focused input, handling tab cycling.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.cycle(1)
			return nil
		case "shift+tab", "up":
			f.cycle(-1)
			return nil
		}
		if f.focus < len(f.fields) && f.fields[f.focus].Numeric {
			if !numericKey(key) {
				return nil
			}
		}
	}
	if f.focus >= len(f.fields) {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *Form) cycle(dir int) {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + dir + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

func numericKey(key tea.KeyMsg) bool {
	switch key.Type {
	case tea.KeyRunes:
		for _, r := range key.Runes {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	default:
		return true // backspace, arrows, etc.
	}
}

// Value returns the trimmed text of the field at index i.
func (f *Form) Value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return strings.TrimSpace(f.fields[i].input.Value())
}

// IntValue parses the field at index i as an integer, returning 0 when
// empty or malformed.
func (f *Form) IntValue(i int) int {
	n, err := strconv.Atoi(f.Value(i))
	if err != nil {
		return 0
	}
	return n
}

// Render draws the form.
func (f *Form) Render() string {
	var b strings.Builder
	if f.title != "" {
		b.WriteString(f.styles.Title.Render(f.title))
		b.WriteString("\n\n")
	}
	for i, fd := range f.fields {
		label := f.styles.Label.Render(fd.Label + ":")
		view := fd.input.View()
		if i == f.focus {
			view = f.styles.Focused.Render(view)
		} else {
			view = f.styles.Blurred.Render(view)
		}
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(view)
		b.WriteString("\n")
	}
	return b.String()
}
