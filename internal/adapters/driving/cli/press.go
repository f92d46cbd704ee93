package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/abacus/internal/core/domain"
)

var pressTrace bool

var pressCmd = &cobra.Command{
	Use:   "press [token...]",
	Short: "Replay keypad presses",
	Long: `Press keypad tokens in order through one session and print the display.

Tokens: 0-9 00 . % + - * / AC ⌫ =
The aliases "backspace", "del", "clear" and "eval" are accepted.

Examples:
  abacus press 6 '*' 7 =          # 42
  abacus press 1 0 / 0 =          # Cannot divide by zero
  abacus press --trace 1 2 bs =   # shows every step`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPress,
}

func init() {
	pressCmd.Flags().BoolVar(&pressTrace, "trace", false, "print the display after every token")
	rootCmd.AddCommand(pressCmd)
}

func runPress(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	ctx := cmd.Context()
	id, err := sessionService.Open(ctx)
	if err != nil {
		return fmt.Errorf("opening session: %w", err)
	}
	defer sessionService.Close(ctx, id) //nolint:errcheck // session is discarded either way

	w := cmd.OutOrStdout()

	if !pressTrace {
		d, err := sessionService.Press(ctx, id, args...)
		if err != nil {
			return fmt.Errorf("pressing tokens: %w", err)
		}
		printDisplay(w, d)
		return nil
	}

	for _, token := range args {
		d, err := sessionService.Press(ctx, id, token)
		if err != nil {
			return fmt.Errorf("pressing %q: %w", token, err)
		}
		fmt.Fprintf(w, "%-4s ", token)
		printDisplay(w, d)
	}
	return nil
}

// printDisplay writes the buffer and, when set, the error next to it.
func printDisplay(w io.Writer, d domain.Display) {
	if d.HasError() {
		fmt.Fprintf(w, "%s  [%s]\n", d.Buffer, d.Error)
		return
	}
	fmt.Fprintln(w, d.Buffer)
}
