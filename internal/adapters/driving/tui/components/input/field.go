// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/styles"
)

// Field wraps a bubbles textinput with a label. When allowed is set, typed
// runes outside it are dropped.
type Field struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	allowed   string
}

// NewField creates a labelled text field.
func NewField(s *styles.Styles, label, placeholder string, charLimit int) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.Width = 20

	return &Field{
		textinput: ti,
		styles:    s,
		label:     label,
	}
}

// NewNumberField creates a field that accepts digits, and a decimal point
// when decimal is true.
func NewNumberField(s *styles.Styles, label, placeholder string, charLimit int, decimal bool) *Field {
	f := NewField(s, label, placeholder, charLimit)
	f.allowed = "0123456789"
	if decimal {
		f.allowed += "."
	}
	return f
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyRunes && !f.accepts(key.Runes) {
		return f, nil
	}
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

func (f *Field) accepts(runes []rune) bool {
	if f.allowed == "" {
		return true
	}
	for _, r := range runes {
		if !strings.ContainsRune(f.allowed, r) {
			return false
		}
	}
	return true
}

// View renders the label above the input.
func (f *Field) View() string {
	label := f.styles.Normal.Render(f.label + ":")
	return lipgloss.JoinVertical(lipgloss.Left, label, f.textinput.View())
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}
