package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/abacus/internal/core/domain"
)

func TestExtractSessionID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid session URI",
			uri:      "abacus://sessions/abc-123",
			expected: "abc-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://sessions/abc-123",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "abacus://sessions/abc/extra",
			expected: "",
		},
		{
			name:     "missing id",
			uri:      "abacus://sessions/",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractSessionID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleKeypadResource(t *testing.T) {
	server, err := NewServer(&Ports{Calculator: &mockCalculatorService{}})
	require.NoError(t, err)

	result, err := server.handleKeypadResource(context.Background(), makeReadResourceRequest("abacus://keypad"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var keypad struct {
		Rows [][]string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &keypad))
	assert.Equal(t, domain.Keypad, keypad.Rows)
}

func TestServer_handleSessionResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns session display", func(t *testing.T) {
		server, err := NewServer(newRealPorts())
		require.NoError(t, err)

		_, opened, err := server.handleOpenSession(ctx, nil, OpenSessionInput{})
		require.NoError(t, err)
		_, _, err = server.handlePress(ctx, nil, PressInput{SessionID: opened.SessionID, Tokens: []string{"5", "+"}})
		require.NoError(t, err)

		result, err := server.handleSessionResource(ctx, makeReadResourceRequest("abacus://sessions/"+opened.SessionID))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)

		var out DisplayOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &out))
		assert.Equal(t, opened.SessionID, out.SessionID)
		assert.Equal(t, "5+", out.Buffer)
		assert.Equal(t, "none", out.Kind)
	})

	t.Run("unknown session is not found", func(t *testing.T) {
		server, err := NewServer(newRealPorts())
		require.NoError(t, err)

		_, err = server.handleSessionResource(ctx, makeReadResourceRequest("abacus://sessions/missing"))
		require.Error(t, err)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		server, err := NewServer(newRealPorts())
		require.NoError(t, err)

		_, err = server.handleSessionResource(ctx, makeReadResourceRequest("abacus://other"))
		require.Error(t, err)
	})

	t.Run("nil session service", func(t *testing.T) {
		server, err := NewServer(&Ports{Calculator: &mockCalculatorService{}})
		require.NoError(t, err)

		_, err = server.handleSessionResource(ctx, makeReadResourceRequest("abacus://sessions/x"))
		require.Error(t, err)
	})

	t.Run("service error is wrapped", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Calculator: &mockCalculatorService{},
			Sessions:   &mockSessionService{err: errBoom},
		})
		require.NoError(t, err)

		_, err = server.handleSessionResource(ctx, makeReadResourceRequest("abacus://sessions/x"))
		require.Error(t, err)
		assert.ErrorIs(t, err, errBoom)
		assert.Contains(t, err.Error(), "getting session")
	})
}
