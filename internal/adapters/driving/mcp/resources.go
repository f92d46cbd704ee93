package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/abacus/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for abacus resources.
	uriScheme = "abacus://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource describing the keypad.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "keypad",
		Name:        "keypad",
		Description: "Keypad buttons, row by row, as accepted by the press tool",
		MIMEType:    "application/json",
	}, s.handleKeypadResource)

	if s.ports.Sessions == nil {
		return
	}

	// Template for a session display.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sessions/{sessionId}",
		Name:        "session-display",
		Description: "What a keypad session currently shows",
		MIMEType:    "application/json",
	}, s.handleSessionResource)
}

// handleKeypadResource returns the keypad grid.
func (s *Server) handleKeypadResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	keypad := struct {
		Rows [][]string `json:"rows"`
	}{Rows: domain.Keypad}

	data, err := json.MarshalIndent(keypad, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling keypad: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSessionResource returns the display of one session.
func (s *Server) handleSessionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Sessions == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract sessionId from URI: abacus://sessions/{sessionId}
	id := extractSessionID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	d, err := s.ports.Sessions.Get(ctx, id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}

	data, err := json.MarshalIndent(displayOutput(id, d), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling session: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSessionID extracts the session ID from a URI like abacus://sessions/{sessionId}.
func extractSessionID(uri string) string {
	const prefix = uriScheme + "sessions/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
