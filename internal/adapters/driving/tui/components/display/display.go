// Package display provides the calculator display component for the TUI.
package display

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/abacus/internal/core/domain"
)

// defaultWidth matches the rendered keypad width.
const defaultWidth = 23

// Display shows the input buffer with the error message or a
// result preview underneath.
type Display struct {
	styles  *styles.Styles
	current domain.Display
	preview string
	width   int
}

// New creates a new display component.
func New(s *styles.Styles) *Display {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Display{
		styles: s,
		width:  defaultWidth,
	}
}

// Init initialises the display.
func (d *Display) Init() tea.Cmd {
	return nil
}

// Update handles display messages.
func (d *Display) Update(msg tea.Msg) (*Display, tea.Cmd) {
	// Display is passive, updated via Set methods
	return d, nil
}

// View renders the display box and the line beneath it.
func (d *Display) View() string {
	inner := d.width - 4 // border and padding
	if inner < 1 {
		inner = 1
	}

	buffer := truncateLeft(d.current.Buffer, inner)
	if buffer == "" {
		buffer = " "
	}
	box := d.styles.Display.Width(d.width - 2).Render(buffer)

	var below string
	switch {
	case d.current.HasError():
		below = d.styles.Error.Render(d.current.Error)
	case d.preview != "":
		below = d.styles.Muted.Render("= " + d.preview)
	default:
		below = " "
	}

	return lipgloss.JoinVertical(lipgloss.Right, box, below)
}

// SetDisplay sets what the session currently shows.
func (d *Display) SetDisplay(current domain.Display) {
	d.current = current
}

// Current returns what is being shown.
func (d *Display) Current() domain.Display {
	return d.current
}

// SetPreview sets the result preview shown while no error is displayed.
func (d *Display) SetPreview(preview string) {
	d.preview = preview
}

// Preview returns the current preview.
func (d *Display) Preview() string {
	return d.preview
}

// SetWidth sets the display width including its border.
func (d *Display) SetWidth(width int) {
	d.width = width
}

// Width returns the current width.
func (d *Display) Width() int {
	return d.width
}

// truncateLeft keeps the last max runes of s, marking the cut with "…".
func truncateLeft(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return "…" + string(runes[len(runes)-max+1:])
}
