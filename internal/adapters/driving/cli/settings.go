package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/abacus/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the keypad theme and MCP rate limit.

Settings are stored in config.toml inside the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsThemeCmd = &cobra.Command{
	Use:   "theme <name>",
	Short: "Set the TUI theme",
	Long: `Set the colour theme used by the keypad TUI.

Available themes:
  dark   - Cyan on slate (default)
  light  - For light terminal backgrounds
  mono   - No colour`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsTheme,
}

var settingsRateCmd = &cobra.Command{
	Use:   "rate <requests-per-second> <burst>",
	Short: "Set the MCP tool call rate limit",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsRate,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsThemeCmd)
	settingsCmd.AddCommand(settingsRateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Display]")
	cmd.Printf("  Theme: %s\n", settings.Display.Theme.Description())
	cmd.Println()

	cmd.Println("[MCP]")
	cmd.Printf("  Requests per second: %s\n", strconv.FormatFloat(settings.MCP.RequestsPerSecond, 'f', -1, 64))
	cmd.Printf("  Burst: %d\n", settings.MCP.Burst)

	return nil
}

func runSettingsTheme(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	theme := domain.ThemeName(strings.ToLower(strings.TrimSpace(args[0])))
	if !theme.IsValid() {
		return fmt.Errorf("unknown theme %q (available: %s)", args[0], themeNames())
	}

	if err := settingsService.SetTheme(theme); err != nil {
		return fmt.Errorf("failed to set theme: %w", err)
	}

	cmd.Printf("Theme set to: %s\n", theme.Description())
	return nil
}

func runSettingsRate(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	rps, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid requests per second %q: %w", args[0], domain.ErrInvalidInput)
	}
	burst, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid burst %q: %w", args[1], domain.ErrInvalidInput)
	}

	if err := settingsService.SetRateLimit(rps, burst); err != nil {
		return fmt.Errorf("failed to set rate limit: %w", err)
	}

	cmd.Printf("MCP rate limit set to %s req/s, burst %d\n", strconv.FormatFloat(rps, 'f', -1, 64), burst)
	return nil
}

func themeNames() string {
	themes := domain.AllThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
