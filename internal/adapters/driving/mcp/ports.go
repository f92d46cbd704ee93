package mcp

import (
	"github.com/custodia-labs/abacus/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Calculator evaluates one-shot expressions.
	Calculator driving.CalculatorService

	// Sessions backs the keypad session tools. Optional.
	Sessions driving.SessionService

	// Settings supplies the tool call rate limit. Optional; defaults apply.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Calculator == nil {
		return ErrMissingCalculatorService
	}
	return nil
}
