// Command abacus is a keypad calculator for the terminal, the shell and
// MCP clients.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/custodia-labs/abacus/internal/adapters/driven/config/file"
	"github.com/custodia-labs/abacus/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/abacus/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/abacus/internal/adapters/driving/cli"
	"github.com/custodia-labs/abacus/internal/core/domain"
	"github.com/custodia-labs/abacus/internal/core/ports/driven"
	"github.com/custodia-labs/abacus/internal/core/services"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = ""

// inMemoryConfig selects a config store that is never written to disk.
const inMemoryConfig = ":memory:"

// maxSessions caps live keypad sessions across all MCP clients.
const maxSessions = 1024

func main() {
	cli.SetVersion(buildVersion())
	cli.SetBootstrap(wire)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// wire builds the core services and their driven adapters.
func wire(opts cli.Options) (*cli.Services, error) {
	var (
		configStore driven.ConfigStore
		watcher     driven.ConfigWatcher
	)

	if opts.ConfigDir == inMemoryConfig {
		configStore = memory.NewConfigStore()
	} else {
		fileStore, err := file.NewConfigStore(opts.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("opening config: %w", err)
		}
		configStore = fileStore
		watcher = fileStore
	}

	var (
		sessionStore driven.SessionStore
		closeStore   func() error
	)
	if opts.SessionDB == "" {
		sessionStore = memory.NewSessionStore(maxSessions)
	} else {
		db, err := sqlite.NewStore(opts.SessionDB, maxSessions)
		if err != nil {
			return nil, fmt.Errorf("opening session database: %w", err)
		}
		sessionStore = db
		closeStore = db.Close
	}

	calculator := services.NewEvaluator()
	sessions := services.NewSessionManager(sessionStore, calculator)

	return &cli.Services{
		Calculator:    calculator,
		Sessions:      sessions,
		Settings:      services.NewSettingsService(configStore),
		ConfigWatcher: watcher,
		Reaper:        services.NewSessionReaper(domain.DefaultReaperConfig(), sessions),
		Close:         closeStore,
	}, nil
}

// buildVersion returns the ldflags version, else the module version.
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
