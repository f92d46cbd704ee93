package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/custodia-labs/abacus/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/abacus/internal/core/services"
)

// setupServices wires the real core services behind in-memory stores and
// resets every package-level flag when the test ends.
func setupServices(t *testing.T) *Services {
	t.Helper()

	calc := services.NewEvaluator()
	s := &Services{
		Calculator: calc,
		Sessions:   services.NewSessionManager(memory.NewSessionStore(0), calc),
		Settings:   services.NewSettingsService(memory.NewConfigStore()),
	}
	SetServices(s)

	t.Cleanup(resetCLI)
	return s
}

func resetCLI() {
	SetServices(nil)
	bootstrap = nil
	evalJSON = false
	pressTrace = false
	versionShort = false
	verbose = false
	configDir = ""
	sessionDB = ""
	logFile = ""
	closeLog = nil
	closeServices = nil
	rootCmd.SetArgs(nil)
	rootCmd.SetIn(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
}

// execute runs rootCmd with args and returns stdout and stderr.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()

	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	if stdin != nil {
		rootCmd.SetIn(stdin)
	} else {
		rootCmd.SetIn(strings.NewReader(""))
	}
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}
