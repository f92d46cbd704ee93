package mcp

import (
	"context"
	"errors"

	"github.com/custodia-labs/abacus/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/abacus/internal/core/domain"
	"github.com/custodia-labs/abacus/internal/core/services"
)

// mockCalculatorService is a mock implementation of driving.CalculatorService.
type mockCalculatorService struct {
	outcome domain.Outcome
}

func (m *mockCalculatorService) Evaluate(_ string) domain.Outcome {
	return m.outcome
}

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	id      string
	display domain.Display
	err     error
}

func (m *mockSessionService) Open(_ context.Context) (string, error) {
	return m.id, m.err
}

func (m *mockSessionService) Press(_ context.Context, _ string, _ ...string) (domain.Display, error) {
	return m.display, m.err
}

func (m *mockSessionService) Get(_ context.Context, _ string) (domain.Display, error) {
	return m.display, m.err
}

func (m *mockSessionService) Close(_ context.Context, _ string) error {
	return m.err
}

func (m *mockSessionService) List(_ context.Context) ([]string, error) {
	return nil, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return m.err
}

func (m *mockSettingsService) SetTheme(_ domain.ThemeName) error {
	return m.err
}

func (m *mockSettingsService) SetRateLimit(_ float64, _ int) error {
	return m.err
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

var errBoom = errors.New("boom")

// newRealPorts wires the core services behind an in-memory session store.
func newRealPorts() *Ports {
	calc := services.NewEvaluator()
	return &Ports{
		Calculator: calc,
		Sessions:   services.NewSessionManager(memory.NewSessionStore(0), calc),
	}
}
