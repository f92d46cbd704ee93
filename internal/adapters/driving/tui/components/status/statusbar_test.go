package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := NewBar(s, km)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, "", bar.SessionID())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_Init(t *testing.T) {
	bar := NewBar(nil, nil)

	cmd := bar.Init()

	assert.Nil(t, cmd)
}

func TestStatusBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	updated, cmd := bar.Update(msg)

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_SetState(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetState(StateResult)

	assert.Equal(t, StateResult, bar.State())
}

func TestStatusBar_SetMessage(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetMessage("42")

	assert.Equal(t, "42", bar.Message())
}

func TestStatusBar_SetWidth(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetWidth(120)

	assert.Equal(t, 120, bar.Width())
}

func TestStatusBar_Width(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Equal(t, 80, bar.Width()) // Default
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("Cannot divide by zero")
	bar.SetSessionID("0b7c0d5e-2f7a-4b8e-9c1d-1234567890ab")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, "0b7c0d5e-2f7a-4b8e-9c1d-1234567890ab", bar.SessionID())
}

func TestStatusBar_View_Ready(t *testing.T) {
	bar := NewBar(nil, nil)

	view := bar.View()

	assert.NotEmpty(t, view)
	assert.Contains(t, view, "Ready")
}

func TestStatusBar_View_Result(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateResult)
	bar.SetMessage("42")

	assert.Contains(t, bar.View(), "= 42")
}

func TestStatusBar_View_Error(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)

	view := bar.View()

	assert.Contains(t, view, "Error")
}

func TestStatusBar_View_ErrorWithMessage(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)
	bar.SetState(StateError)
	bar.SetMessage("Cannot divide by zero")

	view := bar.View()

	assert.Contains(t, view, "Error")
	assert.Contains(t, view, "Cannot divide by zero")
}

func TestStatusBar_View_Help(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateHelp)

	view := bar.View()

	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "quit")
}

func TestStatusBar_View_ShortSessionID(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)
	bar.SetSessionID("0b7c0d5e-2f7a-4b8e-9c1d-1234567890ab")

	view := bar.View()

	assert.Contains(t, view, "session 0b7c0d5e")
	assert.NotContains(t, view, "2f7a")
}

func TestStatusBar_View_ShowsCalculatorKeybindings(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)

	view := bar.View()

	assert.Contains(t, view, "evaluate")
	assert.Contains(t, view, "clear")
}

func TestState_Constants(t *testing.T) {
	assert.Equal(t, State("ready"), StateReady)
	assert.Equal(t, State("result"), StateResult)
	assert.Equal(t, State("error"), StateError)
	assert.Equal(t, State("help"), StateHelp)
}
