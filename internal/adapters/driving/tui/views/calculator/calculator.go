// Package calculator provides the display and keypad view for the TUI.
package calculator

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/components/display"
	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/components/keypad"
	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/abacus/internal/core/domain"
	"github.com/custodia-labs/abacus/internal/core/ports/driving"
)

// View is the calculator view. Every key press goes through one session.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	calculator driving.CalculatorService
	sessions   driving.SessionService
	ctx        context.Context

	sessionID string
	err       error

	display *display.Display
	keypad  *keypad.Keypad
	status  *status.Bar

	width  int
	height int
	ready  bool
}

// NewView creates a new calculator view.
func NewView(
	s *styles.Styles,
	calculator driving.CalculatorService,
	sessions driving.SessionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		styles:     s,
		keymap:     km,
		calculator: calculator,
		sessions:   sessions,
		ctx:        context.Background(),
		display:    display.New(s),
		keypad:     keypad.New(s),
		status:     status.NewBar(s, km),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context used for session calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init opens the backing session on first use.
func (v *View) Init() tea.Cmd {
	if v.sessionID != "" {
		return nil
	}
	return v.openSession()
}

// openSession returns a command that opens a new session.
func (v *View) openSession() tea.Cmd {
	return func() tea.Msg {
		if v.sessions == nil {
			return messages.SessionOpened{Err: fmt.Errorf("session service not available")}
		}
		id, err := v.sessions.Open(v.ctx)
		return messages.SessionOpened{ID: id, Err: err}
	}
}

// Update handles messages for the calculator view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SessionOpened:
		if msg.Err != nil {
			v.err = msg.Err
			v.status.SetState(status.StateError)
			v.status.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.sessionID = msg.ID
		v.err = nil
		v.status.Clear()
		v.status.SetSessionID(msg.ID)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg maps a key press to navigation or a token.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(k, v.keymap.Quit):
		return v, tea.Quit
	case keymap.Matches(k, v.keymap.Help):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	case keymap.Matches(k, v.keymap.Up):
		v.keypad.Move(-1, 0)
	case keymap.Matches(k, v.keymap.Down):
		v.keypad.Move(1, 0)
	case keymap.Matches(k, v.keymap.Left):
		v.keypad.Move(0, -1)
	case keymap.Matches(k, v.keymap.Right):
		v.keypad.Move(0, 1)
	case keymap.Matches(k, v.keymap.Press):
		return v, v.press(v.keypad.Selected())
	case keymap.Matches(k, v.keymap.Evaluate):
		return v, v.press(domain.TokenEvaluate)
	case keymap.Matches(k, v.keymap.Backspace):
		return v, v.press(domain.TokenBackspace)
	case keymap.Matches(k, v.keymap.Clear):
		return v, v.press(domain.TokenClear)
	default:
		if token := tokenForKey(k); token != "" {
			return v, v.press(token)
		}
	}

	return v, nil
}

// press sends token to the session and refreshes the display.
// A session that has gone away is reopened.
func (v *View) press(token string) tea.Cmd {
	if v.sessions == nil || v.sessionID == "" {
		return nil
	}
	v.keypad.Focus(token)

	d, err := v.sessions.Press(v.ctx, v.sessionID, token)
	if err != nil {
		v.err = err
		v.status.SetState(status.StateError)
		v.status.SetMessage(err.Error())
		if errors.Is(err, domain.ErrSessionNotFound) {
			v.sessionID = ""
			return v.openSession()
		}
		return nil
	}

	v.err = nil
	v.apply(token, d)
	return func() tea.Msg {
		return messages.TokenPressed{Token: token, Display: d}
	}
}

// apply shows d and updates the preview and status bar.
func (v *View) apply(token string, d domain.Display) {
	v.display.SetDisplay(d)
	v.display.SetPreview(v.preview(d))

	switch {
	case d.HasError():
		v.status.SetState(status.StateError)
		v.status.SetMessage(d.Error)
	case token == domain.TokenEvaluate:
		v.status.SetState(status.StateResult)
		v.status.SetMessage(d.Buffer)
	default:
		v.status.Clear()
	}
}

// preview evaluates the buffer without committing it.
// Only successful evaluations are previewed.
func (v *View) preview(d domain.Display) string {
	if v.calculator == nil || d.HasError() || d.Buffer == "" {
		return ""
	}
	out := v.calculator.Evaluate(d.Buffer)
	if !out.OK() {
		return ""
	}
	return out.String()
}

// tokenForKey returns the keypad token typed with k, or "".
func tokenForKey(k string) string {
	k = domain.NormalizeToken(k)
	switch k {
	case domain.TokenClear, domain.TokenBackspace, domain.TokenEvaluate:
		// Reached through their own bindings.
		return ""
	}
	if domain.IsKeypadToken(k) {
		return k
	}
	return ""
}

// View renders the calculator.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("Abacus"),
		"",
		v.display.View(),
		"",
		v.keypad.View(),
	)
	if v.err != nil && v.sessionID == "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "",
			v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	}

	bar := v.status.View()
	area := lipgloss.Place(v.width, max(v.height-lipgloss.Height(bar), 0),
		lipgloss.Center, lipgloss.Center, body)

	return lipgloss.JoinVertical(lipgloss.Left, area, bar)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.status.SetWidth(width)
}

// Close discards the backing session. It is a no-op before a session opens.
func (v *View) Close(ctx context.Context) error {
	if v.sessions == nil || v.sessionID == "" {
		return nil
	}
	id := v.sessionID
	v.sessionID = ""
	if err := v.sessions.Close(ctx, id); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}

// SessionID returns the session backing the keypad.
func (v *View) SessionID() string {
	return v.sessionID
}

// Display returns what the display currently shows.
func (v *View) Display() domain.Display {
	return v.display.Current()
}

// Preview returns the current result preview.
func (v *View) Preview() string {
	return v.display.Preview()
}

// Selected returns the keypad token under the cursor.
func (v *View) Selected() string {
	return v.keypad.Selected()
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.status.State()
}

// Err returns the last session error.
func (v *View) Err() error {
	return v.err
}
