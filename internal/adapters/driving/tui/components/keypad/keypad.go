// Package keypad provides the calculator button grid for the TUI.
package keypad

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/abacus/internal/core/domain"
)

// Keypad renders domain.Keypad with a movable cursor.
type Keypad struct {
	styles *styles.Styles
	rows   [][]string
	row    int
	col    int
}

// New creates a keypad with the cursor on "=".
func New(s *styles.Styles) *Keypad {
	if s == nil {
		s = styles.DefaultStyles()
	}

	k := &Keypad{
		styles: s,
		rows:   domain.Keypad,
	}
	k.Focus(domain.TokenEvaluate)
	return k
}

// Init initialises the keypad.
func (k *Keypad) Init() tea.Cmd {
	return nil
}

// Update handles keypad messages.
func (k *Keypad) Update(msg tea.Msg) (*Keypad, tea.Cmd) {
	// Keypad is driven by the calculator view via Move and Focus
	return k, nil
}

// Move shifts the cursor, stopping at the grid edges.
func (k *Keypad) Move(dRow, dCol int) {
	k.row = clamp(k.row+dRow, 0, len(k.rows)-1)
	k.col = clamp(k.col+dCol, 0, len(k.rows[k.row])-1)
}

// Focus moves the cursor onto token. It reports false if token is not
// on the keypad.
func (k *Keypad) Focus(token string) bool {
	for r, row := range k.rows {
		for c, b := range row {
			if b == token {
				k.row, k.col = r, c
				return true
			}
		}
	}
	return false
}

// Selected returns the token under the cursor.
func (k *Keypad) Selected() string {
	return k.rows[k.row][k.col]
}

// Cursor returns the cursor row and column.
func (k *Keypad) Cursor() (row, col int) {
	return k.row, k.col
}

// View renders the grid.
func (k *Keypad) View() string {
	lines := make([]string, 0, len(k.rows))
	for r, row := range k.rows {
		keys := make([]string, 0, len(row)*2)
		for c, token := range row {
			if c > 0 {
				keys = append(keys, " ")
			}
			keys = append(keys, k.styleFor(r, c, token).Render(token))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, keys...))
	}
	return strings.Join(lines, "\n\n")
}

func (k *Keypad) styleFor(r, c int, token string) lipgloss.Style {
	switch {
	case r == k.row && c == k.col:
		return k.styles.SelectedKey
	case isOperand(token):
		return k.styles.Key
	default:
		return k.styles.OperatorKey
	}
}

// isOperand reports whether token contributes digits rather than an
// operator or a control action.
func isOperand(token string) bool {
	if token == "." || token == "00" {
		return true
	}
	return len(token) == 1 && token[0] >= '0' && token[0] <= '9'
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
