// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/styles"
)

// State represents the current calculator state for display.
type State string

const (
	StateReady  State = "ready"
	StateResult State = "result"
	StateError  State = "error"
	StateHelp   State = "help"
)

// shortIDLen is how much of a session ID the bar shows.
const shortIDLen = 8

// Bar displays calculator status and keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	state     State
	message   string
	sessionID string
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is mostly passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state, message and session.
func (s *Bar) renderLeft() string {
	var text string
	switch s.state {
	case StateResult:
		text = s.styles.Success.Render("= " + s.message)
	case StateError:
		if s.message != "" {
			text = s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		} else {
			text = s.styles.Error.Render("Error")
		}
	case StateHelp:
		text = s.styles.Normal.Render("Help")
	default:
		text = s.styles.Muted.Render("Ready")
	}

	if s.sessionID != "" {
		id := s.sessionID
		if len(id) > shortIDLen {
			id = id[:shortIDLen]
		}
		text += s.styles.Muted.Render("  session " + id)
	}
	return text
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateHelp {
		bindings = s.keymap.ShortHelp()
	} else {
		bindings = s.keymap.CalculatorHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the result or error text.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetSessionID sets the session shown in the bar.
func (s *Bar) SetSessionID(id string) {
	s.sessionID = id
}

// SessionID returns the session shown in the bar.
func (s *Bar) SessionID() string {
	return s.sessionID
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the state and message. The session is kept.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
