package services

import (
	"fmt"

	"github.com/custodia-labs/abacus/internal/core/domain"
	"github.com/custodia-labs/abacus/internal/core/ports/driven"
	"github.com/custodia-labs/abacus/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyTheme    = "display.theme"
	keyMCPRate  = "mcp.requests_per_second"
	keyMCPBurst = "mcp.burst"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Display: domain.DisplaySettings{
			Theme: s.getTheme(defaults.Display.Theme),
		},
		MCP: domain.MCPSettings{
			RequestsPerSecond: s.getFloat(keyMCPRate, defaults.MCP.RequestsPerSecond),
			Burst:             s.getInt(keyMCPBurst, defaults.MCP.Burst),
		},
	}

	if !settings.MCP.IsValid() {
		settings.MCP = defaults.MCP
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if !settings.Display.Theme.IsValid() {
		return fmt.Errorf("%w: theme %q", domain.ErrInvalidInput, settings.Display.Theme)
	}
	if !settings.MCP.IsValid() {
		return fmt.Errorf("%w: rate limit must be positive", domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(keyTheme, settings.Display.Theme.String()); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	if err := s.configStore.Set(keyMCPRate, settings.MCP.RequestsPerSecond); err != nil {
		return fmt.Errorf("save mcp rate: %w", err)
	}
	if err := s.configStore.Set(keyMCPBurst, settings.MCP.Burst); err != nil {
		return fmt.Errorf("save mcp burst: %w", err)
	}

	return nil
}

// SetTheme updates the TUI theme.
func (s *SettingsService) SetTheme(theme domain.ThemeName) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: theme %q", domain.ErrInvalidInput, theme)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Display.Theme = theme
	return s.Save(settings)
}

// SetRateLimit updates the MCP tool call limits.
func (s *SettingsService) SetRateLimit(requestsPerSecond float64, burst int) error {
	limits := domain.MCPSettings{RequestsPerSecond: requestsPerSecond, Burst: burst}
	if !limits.IsValid() {
		return fmt.Errorf("%w: rate limit must be positive", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.MCP = limits
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getTheme(defaultVal domain.ThemeName) domain.ThemeName {
	val := s.configStore.GetString(keyTheme)
	if val == "" {
		return defaultVal
	}
	theme := domain.ThemeName(val)
	if !theme.IsValid() {
		return defaultVal
	}
	return theme
}
