package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/abacus/internal/core/domain"
	"github.com/custodia-labs/abacus/internal/logger"
)

var evalJSON bool

var evalCmd = &cobra.Command{
	Use:   "eval [expression...]",
	Short: "Evaluate an expression",
	Long: `Evaluate a single "NUMBER OPERATOR NUMBER" expression.

Arguments are joined with spaces, and whitespace is ignored, so
"abacus eval 6 '*' 7" and "abacus eval 6*7" are the same.

Without arguments, every line of piped stdin is evaluated.

Examples:
  abacus eval 50%+10        # 10.5
  abacus eval -- -5+3       # -2
  echo "10/4" | abacus eval # 2.5`,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(evalCmd)
}

// evalResult is the JSON form of one evaluation.
type evalResult struct {
	Expression string `json:"expression"`
	Result     string `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
	Kind       string `json:"kind"`
}

func runEval(cmd *cobra.Command, args []string) error {
	if calculatorService == nil {
		return errors.New("calculator service not configured")
	}

	if len(args) > 0 {
		return evalOne(cmd, strings.Join(args, " "))
	}

	in := cmd.InOrStdin()
	if isTerminal(in) {
		return errors.New("expression required: pass it as arguments or pipe it on stdin")
	}
	return evalLines(cmd, in)
}

// evalOne prints the result of expr. A failed evaluation is the command's error.
func evalOne(cmd *cobra.Command, expr string) error {
	out := calculatorService.Evaluate(expr)

	if evalJSON {
		return writeJSON(cmd, toEvalResult(expr, out))
	}
	if !out.OK() {
		return out.Error()
	}
	fmt.Fprintln(cmd.OutOrStdout(), out.String())
	return nil
}

// evalLines evaluates every non-blank line of r.
func evalLines(cmd *cobra.Command, r io.Reader) error {
	var failed, total int
	w := cmd.OutOrStdout()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		total++
		logger.Section(fmt.Sprintf("line %d", total))

		out := calculatorService.Evaluate(line)
		if !out.OK() {
			failed++
		}

		switch {
		case evalJSON:
			if err := writeJSON(cmd, toEvalResult(line, out)); err != nil {
				return err
			}
		case out.OK():
			fmt.Fprintln(w, out.String())
		default:
			fmt.Fprintf(w, "Error: %s\n", out.String())
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	logger.Info("evaluated %d expressions, %d failed", total, failed)
	if failed > 0 && !evalJSON {
		return fmt.Errorf("%d of %d expressions failed", failed, total)
	}
	return nil
}

func toEvalResult(expr string, out domain.Outcome) evalResult {
	res := evalResult{Expression: expr, Kind: out.Kind().String()}
	if out.OK() {
		res.Result = out.String()
	} else {
		res.Error = out.String()
	}
	return res
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
