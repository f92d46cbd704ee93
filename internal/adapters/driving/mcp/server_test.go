package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/abacus/internal/core/domain"
)

func TestNewServer(t *testing.T) {
	t.Run("nil calculator service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingCalculatorService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Calculator: &mockCalculatorService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("default rate limit without settings", func(t *testing.T) {
		server, err := NewServer(&Ports{Calculator: &mockCalculatorService{}})
		require.NoError(t, err)

		defaults := domain.DefaultAppSettings().MCP
		assert.Equal(t, defaults.RequestsPerSecond, server.Limiter().Limit())
		assert.Equal(t, defaults.Burst, server.Limiter().Burst())
	})

	t.Run("rate limit from settings", func(t *testing.T) {
		settings := &mockSettingsService{settings: domain.AppSettings{
			MCP: domain.MCPSettings{RequestsPerSecond: 3, Burst: 7},
		}}
		server, err := NewServer(&Ports{Calculator: &mockCalculatorService{}, Settings: settings})
		require.NoError(t, err)

		assert.Equal(t, 3.0, server.Limiter().Limit())
		assert.Equal(t, 7, server.Limiter().Burst())
	})

	t.Run("settings error falls back to defaults", func(t *testing.T) {
		settings := &mockSettingsService{err: errBoom}
		server, err := NewServer(&Ports{Calculator: &mockCalculatorService{}, Settings: settings})
		require.NoError(t, err)

		assert.Equal(t, domain.DefaultAppSettings().MCP.Burst, server.Limiter().Burst())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil calculator service returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingCalculatorService)
	})

	t.Run("calculator only is valid", func(t *testing.T) {
		ports := &Ports{
			Calculator: &mockCalculatorService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Calculator: &mockCalculatorService{},
			Sessions:   &mockSessionService{},
			Settings:   &mockSettingsService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}
