// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/abacus/internal/core/domain"
	"github.com/custodia-labs/abacus/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionTheme
	SectionRateLimit
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyTab   = "tab"
)

// Field indices within SectionRateLimit.
const (
	fieldRate = iota
	fieldBurst
)

// errNoSettingsService is returned when settings cannot be changed.
var errNoSettingsService = fmt.Errorf("settings service not available")

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	err      error
	saved    bool

	// Navigation state
	section      Section
	selected     int // selection within current section
	focusedField int // rate limit input focus

	// Text inputs for the MCP rate limit
	rateInput  *input.Field
	burstInput *input.Field

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		rateInput:       input.NewNumberField(s, "Requests per second", "requests per second", 16, true),
		burstInput:      input.NewNumberField(s, "Burst", "burst", 8, false),
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return LoadSettings(v.settingsService)
}

// LoadSettings returns a command that loads settings from svc.
// A nil service yields the defaults.
func LoadSettings(svc driving.SettingsService) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			defaults := domain.DefaultAppSettings()
			return messages.SettingsLoaded{Settings: &defaults}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.saved = false
			return v, nil
		}
		v.err = nil
		v.saved = true
		v.leaveSection()
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses based on current section.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Global escape to go back
	if msg.String() == "esc" {
		switch v.section {
		case SectionOverview:
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case SectionTheme:
			v.leaveSection()
			return v, v.revertTheme()
		default:
			v.leaveSection()
			return v, nil
		}
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionTheme:
		return v.handleThemeKeys(msg)
	case SectionRateLimit:
		return v.handleRateLimitKeys(msg)
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Overview menu: Theme, MCP rate limit
	maxItems := 2

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < maxItems-1 {
			v.selected++
		}
	case keyEnter:
		v.saved = false
		switch v.selected {
		case 0:
			v.section = SectionTheme
			v.selected = v.getThemeIndex()
		case 1:
			v.section = SectionRateLimit
			v.selected = 0
			v.focusedField = fieldRate
			v.fillRateInputs()
			return v, v.rateInput.Focus()
		}
	}
	return v, nil
}

// handleThemeKeys moves through themes, previewing each one live.
func (v *View) handleThemeKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	themes := domain.AllThemes()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			return v, previewTheme(themes[v.selected])
		}
	case keyDown, "j":
		if v.selected < len(themes)-1 {
			v.selected++
			return v, previewTheme(themes[v.selected])
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < len(themes) {
			return v, v.setTheme(themes[v.selected])
		}
	}
	return v, nil
}

func (v *View) handleRateLimitKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyTab, "shift+tab":
		if v.focusedField == fieldRate {
			v.focusedField = fieldBurst
			v.rateInput.Blur()
			return v, v.burstInput.Focus()
		}
		v.focusedField = fieldRate
		v.burstInput.Blur()
		return v, v.rateInput.Focus()
	case keyEnter:
		return v, v.setRateLimit(v.rateInput.Value(), v.burstInput.Value())
	}

	var cmd tea.Cmd
	if v.focusedField == fieldRate {
		v.rateInput, cmd = v.rateInput.Update(msg)
	} else {
		v.burstInput, cmd = v.burstInput.Update(msg)
	}
	return v, cmd
}

// leaveSection returns to the overview and blurs the inputs.
func (v *View) leaveSection() {
	v.section = SectionOverview
	v.selected = 0
	v.focusedField = fieldRate
	v.rateInput.Blur()
	v.burstInput.Blur()
}

// fillRateInputs seeds the inputs with the current limits.
func (v *View) fillRateInputs() {
	limits := domain.DefaultAppSettings().MCP
	if v.settings != nil {
		limits = v.settings.MCP
	}
	v.rateInput.SetValue(strconv.FormatFloat(limits.RequestsPerSecond, 'f', -1, 64))
	v.burstInput.SetValue(strconv.Itoa(limits.Burst))
}

// Commands to update settings.

func previewTheme(theme domain.ThemeName) tea.Cmd {
	return func() tea.Msg {
		return messages.ThemeChanged{Theme: theme}
	}
}

// revertTheme restores the saved theme after a preview.
func (v *View) revertTheme() tea.Cmd {
	if v.settings == nil {
		return nil
	}
	return previewTheme(v.settings.Display.Theme)
}

func (v *View) setTheme(theme domain.ThemeName) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: errNoSettingsService}
		}
		return messages.SettingsSaved{Err: svc.SetTheme(theme)}
	}
}

func (v *View) setRateLimit(rate, burst string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: errNoSettingsService}
		}
		rps, err := strconv.ParseFloat(strings.TrimSpace(rate), 64)
		if err != nil {
			return messages.SettingsSaved{Err: fmt.Errorf("%w: requests per second %q", domain.ErrInvalidInput, rate)}
		}
		b, err := strconv.Atoi(strings.TrimSpace(burst))
		if err != nil {
			return messages.SettingsSaved{Err: fmt.Errorf("%w: burst %q", domain.ErrInvalidInput, burst)}
		}
		return messages.SettingsSaved{Err: svc.SetRateLimit(rps, b)}
	}
}

func (v *View) getThemeIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, t := range domain.AllThemes() {
		if t == v.settings.Display.Theme {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	// Error display
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	// Loading state
	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionTheme:
		b.WriteString(v.renderThemeSelect())
	case SectionRateLimit:
		b.WriteString(v.renderRateLimit())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	items := []struct {
		label string
		value string
	}{
		{
			label: "Theme",
			value: v.settings.Display.Theme.Description(),
		},
		{
			label: "MCP Rate Limit",
			value: fmt.Sprintf("%s req/s, burst %d",
				strconv.FormatFloat(v.settings.MCP.RequestsPerSecond, 'f', -1, 64),
				v.settings.MCP.Burst),
		},
	}

	for i, item := range items {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		line := fmt.Sprintf("%s%s: %s", indicator, item.label, item.value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	if v.saved {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render("Settings saved"))
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderThemeSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select Theme"))
	b.WriteString("\n\n")

	for i, theme := range domain.AllThemes() {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		current := ""
		if theme == v.settings.Display.Theme {
			current = v.styles.Success.Render(" (current)")
		}

		line := fmt.Sprintf("%s%s%s", indicator, theme.Description(), current)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderRateLimit() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("MCP Rate Limit"))
	b.WriteString("\n\n")
	b.WriteString(v.rateInput.View())
	b.WriteString("\n\n")
	b.WriteString(v.burstInput.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Applies to the next `abacus mcp serve`."))
	b.WriteString("\n")

	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case SectionTheme:
		return v.styles.Help.Render("[j/k] preview  [enter] select  [esc] back")
	case SectionRateLimit:
		return v.styles.Help.Render("[tab] next field  [enter] save  [esc] back")
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Settings returns the loaded settings, nil until loaded.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.leaveSection()
	v.err = nil
	v.saved = false
	v.rateInput.SetValue("")
	v.burstInput.SetValue("")
}
