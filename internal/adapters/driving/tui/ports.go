// Package tui provides an interactive terminal calculator for abacus.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/abacus/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Calculator evaluates the buffer for the live result preview.
	Calculator driving.CalculatorService

	// Sessions owns the input buffer behind the keypad.
	Sessions driving.SessionService

	// Settings manages application settings. Optional; without it the
	// settings view is read-only and the default theme is used.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	calculator driving.CalculatorService,
	sessions driving.SessionService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Calculator: calculator,
		Sessions:   sessions,
		Settings:   settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Calculator == nil {
		return ErrMissingCalculatorService
	}
	if p.Sessions == nil {
		return ErrMissingSessionService
	}
	return nil
}
