// Package cli provides the cobra command tree for abacus.
// Commands reach the core only through driving ports set by main.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/abacus/internal/core/ports/driven"
	"github.com/custodia-labs/abacus/internal/core/ports/driving"
	"github.com/custodia-labs/abacus/internal/logger"
)

// Services bundles the ports the commands use.
type Services struct {
	Calculator    driving.CalculatorService
	Sessions      driving.SessionService
	Settings      driving.SettingsService
	ConfigWatcher driven.ConfigWatcher

	// Reaper closes idle sessions while the MCP server runs. Optional.
	Reaper driving.Reaper

	// Close releases resources held by the services. Optional.
	Close func() error
}

// Options are the global flags that shape how services are built.
type Options struct {
	// ConfigDir is the config directory, empty for the default location.
	ConfigDir string

	// SessionDB is the SQLite file for sessions, empty to keep them in memory.
	SessionDB string
}

// Bootstrap builds the services once flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

var (
	// version is set by main from build info.
	version = "dev"

	calculatorService driving.CalculatorService
	sessionService    driving.SessionService
	settingsService   driving.SettingsService
	configWatcher     driven.ConfigWatcher
	sessionReaper     driving.Reaper

	bootstrap Bootstrap

	// Global flags
	verbose   bool
	configDir string
	sessionDB string
	logFile   string

	closeLog      func() error
	closeServices func() error
)

var rootCmd = &cobra.Command{
	Use:   "abacus",
	Short: "A keypad calculator for the terminal",
	Long: `abacus evaluates simple "NUMBER OPERATOR NUMBER" expressions.

Use it one-shot from the shell, interactively with the keypad TUI,
or as an MCP server for AI assistants.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.abacus, \":memory:\" for none)")
	rootCmd.PersistentFlags().StringVar(&sessionDB, "session-db", "", "persist sessions in this SQLite file (default in memory)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
}

// Execute runs the root command. Cancelling ctx stops long-running
// commands such as the MCP server. Services and the log file are released
// even when the command fails, since cobra skips post-run hooks on error.
func Execute(ctx context.Context) (err error) {
	defer func() {
		if rerr := release(); err == nil {
			err = rerr
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function that builds services once flags are parsed.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices sets the ports used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	calculatorService = s.Calculator
	sessionService = s.Sessions
	settingsService = s.Settings
	configWatcher = s.ConfigWatcher
	sessionReaper = s.Reaper
}

// setup configures logging and builds services before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if logFile != "" {
		closer, err := logger.OpenFile(logFile)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		closeLog = closer
	}

	// version needs no services
	if cmd.Name() == "version" || bootstrap == nil {
		return nil
	}

	services, err := bootstrap(Options{ConfigDir: configDir, SessionDB: sessionDB})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)
	closeServices = services.Close
	logger.Debug("services ready (config dir %q, session db %q)", configDir, sessionDB)
	return nil
}

// teardown releases resources after a successful command.
func teardown(_ *cobra.Command, _ []string) error {
	return release()
}

// release closes the services and the log file opened by setup.
// Calling it again is a no-op.
func release() error {
	var errs []error
	if closeServices != nil {
		errs = append(errs, closeServices())
		closeServices = nil
	}
	if closeLog != nil {
		errs = append(errs, closeLog())
		closeLog = nil
	}
	return errors.Join(errs...)
}
