// Package main is the entry point for the ytmenu CLI application.
//
// Running ytmenu with no arguments starts the interactive TUI: a first-time
// setup wizard when no configuration exists, then the tool menu. Subcommands
// cover the non-interactive surface: one-shot tool invocation (call), the
// catalog listing (tools) and the resolved configuration (config).
package main

import (
	"fmt"
	"os"

	"ytmenu/internal/config"
	"ytmenu/internal/logging"
	"ytmenu/internal/tui"
	"ytmenu/internal/tui/helpers"
	"ytmenu/internal/tui/setupmenu"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ytmenu",
	Short: "Interactive console for a YouTrack MCP server",
	Long: `ytmenu invokes YouTrack tools exposed by an MCP server through an
external MCP client binary. It prompts for tool parameters, assembles the
client's --tool-args payload, runs the client and pretty-prints the result
embedded in its output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runTUI() error {
	appLogger := logging.NewAppLogger()

	// Check if first run and handle setup
	if config.IsFirstRun() {
		if err := runFirstTimeSetup(appLogger); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	appLogger.Info("Configuration loaded successfully.", "mcp_name", cfg.MCPName, "client", cfg.ClientBin)

	model := tui.NewMainModel(cfg, appLogger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error starting TUI program: %w", err)
	}

	return nil
}

// runFirstTimeSetup launches the interactive setup wizard for new users.
// If the user cancels, an error is returned so the application does not
// continue without configuration.
func runFirstTimeSetup(logger *logging.AppLogger) error {
	ctx := helpers.NewUIContext(0, 0, nil, logger) // Dimensions will be set by tea program
	menu := setupmenu.NewSetupModel(ctx)
	program := tea.NewProgram(menu, tea.WithAltScreen())

	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	setup := finalModel.(*setupmenu.SetupModel)
	if setup.Cancelled {
		return fmt.Errorf("setup cancelled by user")
	}

	return nil
}
