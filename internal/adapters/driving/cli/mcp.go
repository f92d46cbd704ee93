package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/abacus/internal/adapters/driving/mcp"
	"github.com/custodia-labs/abacus/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

Tools: evaluate, open_session, press, close_session.
Resources: abacus://keypad, abacus://sessions/{sessionId}.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Tool calls are rate limited; see "abacus settings rate". Sessions left
idle for 30 minutes are closed.

Examples:
  # Stdio mode (default, for Claude Desktop)
  abacus mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  abacus mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "abacus": {
        "command": "/path/to/abacus",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Calculator: calculatorService,
		Sessions:   sessionService,
		Settings:   settingsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if sessionReaper != nil {
		go func() {
			if err := sessionReaper.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("session reaper stopped: %v", err)
			}
		}()
		defer func() { _ = sessionReaper.Stop() }()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		logger.Info("mcp: serving streamable HTTP on %s", addr)
		return server.RunHTTP(ctx, addr)
	}

	logger.Info("mcp: serving on stdio")
	return server.Run(ctx)
}
