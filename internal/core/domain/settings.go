package domain

const unknownDescription = "Unknown"

// ThemeName selects the TUI colour palette.
type ThemeName string

// Available themes.
const (
	// ThemeDark is the default cyan-on-slate palette.
	ThemeDark ThemeName = "dark"

	// ThemeLight is a palette for light terminal backgrounds.
	ThemeLight ThemeName = "light"

	// ThemeMono uses no colour, only bold and reverse.
	ThemeMono ThemeName = "mono"
)

// IsValid returns true if the theme is recognised.
func (t ThemeName) IsValid() bool {
	switch t {
	case ThemeDark, ThemeLight, ThemeMono:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t ThemeName) String() string {
	return string(t)
}

// Description returns a human-readable description of the theme.
func (t ThemeName) Description() string {
	switch t {
	case ThemeDark:
		return "Dark (cyan on slate)"
	case ThemeLight:
		return "Light (for light terminals)"
	case ThemeMono:
		return "Mono (no colour)"
	default:
		return unknownDescription
	}
}

// AllThemes returns all available themes.
func AllThemes() []ThemeName {
	return []ThemeName{ThemeDark, ThemeLight, ThemeMono}
}

// DisplaySettings holds presentation configuration.
type DisplaySettings struct {
	// Theme is the TUI colour palette.
	Theme ThemeName
}

// MCPSettings holds MCP server limits.
type MCPSettings struct {
	// RequestsPerSecond is the sustained tool call rate.
	RequestsPerSecond float64

	// Burst is the maximum number of tool calls allowed at once.
	Burst int
}

// IsValid returns true if the limits are usable.
func (m MCPSettings) IsValid() bool {
	return m.RequestsPerSecond > 0 && m.Burst > 0
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Display holds presentation settings.
	Display DisplaySettings

	// MCP holds MCP server settings.
	MCP MCPSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Display: DisplaySettings{
			Theme: ThemeDark,
		},
		MCP: MCPSettings{
			RequestsPerSecond: 20,
			Burst:             40,
		},
	}
}
