// Package mcp provides an MCP (Model Context Protocol) server adapter for abacus.
// It lets AI assistants evaluate expressions and drive keypad sessions.
package mcp

import "errors"

// ErrMissingCalculatorService is returned when the calculator service is not provided.
var ErrMissingCalculatorService = errors.New("mcp: calculator service is required")

// ErrSessionsUnavailable is returned by session tools when no session service is wired.
var ErrSessionsUnavailable = errors.New("mcp: sessions are not available")
