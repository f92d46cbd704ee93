package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/abacus/internal/core/domain"
	"github.com/custodia-labs/abacus/internal/logger"
)

// EvaluateInput is the input schema for the evaluate tool.
type EvaluateInput struct {
	Expression string `json:"expression" jsonschema:"a NUMBER OPERATOR NUMBER expression such as 6*7 or 50%+10"`
}

// EvaluateOutput is the output schema for the evaluate tool.
// Evaluation failures are reported in Error and Kind, not as tool errors.
type EvaluateOutput struct {
	Expression string `json:"expression"`
	Result     string `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
	Kind       string `json:"kind"`
}

// OpenSessionInput is the input schema for the open_session tool.
type OpenSessionInput struct{}

// OpenSessionOutput is the output schema for the open_session tool.
type OpenSessionOutput struct {
	SessionID string `json:"session_id"`
}

// PressInput is the input schema for the press tool.
type PressInput struct {
	SessionID string   `json:"session_id" jsonschema:"the session returned by open_session"`
	Tokens    []string `json:"tokens" jsonschema:"keypad tokens pressed in order: 0-9 00 . % + - * / AC ⌫ ="`
}

// DisplayOutput is what a session shows after its last token.
type DisplayOutput struct {
	SessionID string `json:"session_id"`
	Buffer    string `json:"buffer"`
	Error     string `json:"error,omitempty"`
	Kind      string `json:"kind"`
}

// CloseSessionInput is the input schema for the close_session tool.
type CloseSessionInput struct {
	SessionID string `json:"session_id" jsonschema:"the session to discard"`
}

// CloseSessionOutput is the output schema for the close_session tool.
type CloseSessionOutput struct {
	Closed bool `json:"closed"`
}

// registerTools registers all tool handlers with the MCP server.
// Session tools are only offered when a session service is wired.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "evaluate",
		Description: "Evaluate a single binary expression (two operands, one of + - * /)",
	}, s.handleEvaluate)

	if s.ports.Sessions == nil {
		return
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "open_session",
		Description: "Open a keypad session with an empty input buffer",
	}, s.handleOpenSession)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "press",
		Description: "Press keypad tokens in a session and return the display",
	}, s.handlePress)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "close_session",
		Description: "Close a keypad session",
	}, s.handleCloseSession)
}

// handleEvaluate handles the evaluate tool invocation.
func (s *Server) handleEvaluate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input EvaluateInput,
) (*mcp.CallToolResult, EvaluateOutput, error) {
	if err := s.limiter.check("evaluate"); err != nil {
		return nil, EvaluateOutput{}, err
	}

	out := s.ports.Calculator.Evaluate(input.Expression)
	output := EvaluateOutput{
		Expression: input.Expression,
		Kind:       out.Kind().String(),
	}
	if out.OK() {
		output.Result = out.String()
	} else {
		output.Error = out.String()
	}

	return nil, output, nil
}

// handleOpenSession handles the open_session tool invocation.
func (s *Server) handleOpenSession(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ OpenSessionInput,
) (*mcp.CallToolResult, OpenSessionOutput, error) {
	if err := s.limiter.check("open_session"); err != nil {
		return nil, OpenSessionOutput{}, err
	}
	if s.ports.Sessions == nil {
		return nil, OpenSessionOutput{}, ErrSessionsUnavailable
	}

	id, err := s.ports.Sessions.Open(ctx)
	if err != nil {
		return nil, OpenSessionOutput{}, err
	}

	logger.Debug("mcp: session %s opened", id)
	return nil, OpenSessionOutput{SessionID: id}, nil
}

// handlePress handles the press tool invocation.
func (s *Server) handlePress(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PressInput,
) (*mcp.CallToolResult, DisplayOutput, error) {
	if err := s.limiter.check("press"); err != nil {
		return nil, DisplayOutput{}, err
	}
	if s.ports.Sessions == nil {
		return nil, DisplayOutput{}, ErrSessionsUnavailable
	}

	d, err := s.ports.Sessions.Press(ctx, input.SessionID, input.Tokens...)
	if err != nil {
		return nil, DisplayOutput{}, err
	}

	return nil, displayOutput(input.SessionID, d), nil
}

// handleCloseSession handles the close_session tool invocation.
func (s *Server) handleCloseSession(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CloseSessionInput,
) (*mcp.CallToolResult, CloseSessionOutput, error) {
	if err := s.limiter.check("close_session"); err != nil {
		return nil, CloseSessionOutput{}, err
	}
	if s.ports.Sessions == nil {
		return nil, CloseSessionOutput{}, ErrSessionsUnavailable
	}

	if err := s.ports.Sessions.Close(ctx, input.SessionID); err != nil {
		return nil, CloseSessionOutput{}, err
	}

	return nil, CloseSessionOutput{Closed: true}, nil
}

func displayOutput(id string, d domain.Display) DisplayOutput {
	return DisplayOutput{
		SessionID: id,
		Buffer:    d.Buffer,
		Error:     d.Error,
		Kind:      d.Kind.String(),
	}
}
