package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/abacus/internal/adapters/driving/tui"
	"github.com/custodia-labs/abacus/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive keypad",
	Long: `Launch the interactive terminal keypad for abacus.

Type digits and operators directly, or move over the keypad with the
arrow keys and press space. Edits to the config file are picked up
while the keypad is open.

Controls:
  0-9 . + - * / %  - Type
  = / Enter        - Evaluate
  Backspace        - Delete last character
  c / Delete       - Clear
  Esc              - Back
  ?                - Help
  q                - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if logger.IsVerbose() && logFile == "" {
		logger.Warn("debug output will mix with the TUI; use --log-file")
	}

	ports := tui.NewPorts(calculatorService, sessionService, settingsService)

	// Create the TUI app
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)

	if configWatcher != nil {
		changes, err := configWatcher.Watch(ctx)
		if err != nil {
			logger.Warn("config changes will not be picked up: %v", err)
		} else {
			app.WithConfigChanges(changes)
		}
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
