// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/abacus/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Name identifies the theme in settings.
	Name domain.ThemeName

	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the operator key colour.
	Secondary lipgloss.Color

	// Background is the background colour.
	Background lipgloss.Color

	// Surface is the background of bars and keys.
	Surface lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return DarkTheme()
}

// DarkTheme returns the dark colour theme.
func DarkTheme() *Theme {
	return &Theme{
		Name:       domain.ThemeDark,
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Background: lipgloss.Color("#1E1E2E"), // Dark gray
		Surface:    lipgloss.Color("#181825"),
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// LightTheme returns the light colour theme.
func LightTheme() *Theme {
	return &Theme{
		Name:       domain.ThemeLight,
		Primary:    lipgloss.Color("#8839EF"), // Purple
		Secondary:  lipgloss.Color("#1E66F5"), // Blue
		Background: lipgloss.Color("#EFF1F5"),
		Surface:    lipgloss.Color("#E6E9EF"),
		Foreground: lipgloss.Color("#4C4F69"),
		Muted:      lipgloss.Color("#8C8FA1"),
		Success:    lipgloss.Color("#40A02B"), // Green
		Warning:    lipgloss.Color("#DF8E1D"), // Yellow
		Error:      lipgloss.Color("#D20F39"), // Red
		Border:     lipgloss.Color("#BCC0CC"),
	}
}

// MonoTheme returns a greyscale theme for terminals with poor colour support.
func MonoTheme() *Theme {
	return &Theme{
		Name:       domain.ThemeMono,
		Primary:    lipgloss.Color("255"),
		Secondary:  lipgloss.Color("250"),
		Background: lipgloss.Color("0"),
		Surface:    lipgloss.Color("235"),
		Foreground: lipgloss.Color("252"),
		Muted:      lipgloss.Color("243"),
		Success:    lipgloss.Color("254"),
		Warning:    lipgloss.Color("248"),
		Error:      lipgloss.Color("231"),
		Border:     lipgloss.Color("240"),
	}
}

// ThemeByName returns the theme for name, or the default for unknown names.
func ThemeByName(name domain.ThemeName) *Theme {
	switch name {
	case domain.ThemeLight:
		return LightTheme()
	case domain.ThemeMono:
		return MonoTheme()
	default:
		return DarkTheme()
	}
}

// Styles contains pre-configured lipgloss styles.
// Views share one *Styles, so Apply restyles all of them at once.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// Display style for the calculator display box.
	Display lipgloss.Style

	// Key style for digit keys.
	Key lipgloss.Style

	// OperatorKey style for operator and control keys.
	OperatorKey lipgloss.Style

	// SelectedKey style for the key under the cursor.
	SelectedKey lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	s := &Styles{}
	s.Apply(theme)
	return s
}

// Apply rebuilds every style from theme in place.
func (s *Styles) Apply(theme *Theme) {
	if theme == nil {
		theme = DefaultTheme()
	}

	key := lipgloss.NewStyle().
		Width(5).
		Align(lipgloss.Center).
		Foreground(theme.Foreground).
		Background(theme.Surface)

	*s = Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Display: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Foreground(theme.Foreground).
			Bold(true).
			Align(lipgloss.Right).
			Padding(0, 1),

		Key: key,

		OperatorKey: key.
			Foreground(theme.Secondary).
			Bold(true),

		SelectedKey: key.
			Foreground(theme.Background).
			Background(theme.Primary).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Surface).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
