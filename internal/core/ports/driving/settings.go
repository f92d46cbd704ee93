package driving

import "github.com/custodia-labs/abacus/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetTheme updates the TUI theme.
	SetTheme(theme domain.ThemeName) error

	// SetRateLimit updates the MCP tool call limits.
	SetRateLimit(requestsPerSecond float64, burst int) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
