/*
PURPOSE:
  Defines the root Cobra command for the pch-reader CLI.
  Handles global flags, configuration loading and logger setup.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Log flags override the config file, which overrides defaults.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/pch-reader/main.go
  - Calls: Child commands (summary, export, plot, report, simple)
  - Modifies: output.Logger

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init() and apply them in loadConfig.

RELATED FILES:
  - cmd/pch-reader/main.go
  - internal/config/config.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/daryltucker/pch-reader/internal/config"
	"github.com/daryltucker/pch-reader/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile   string
	logLevel  string
	logFormat string

	// cfg is loaded once per invocation before any subcommand runs.
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pch-reader",
		Short: "Reader for NASTRAN punch (.pch) result files",
		Long: `Parses NASTRAN punch output (static and frequency response) and exports
the results as CSV, JSON Lines, PNG charts or a PDF summary report.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if logFormat != "" {
		loaded.LogFormat = logFormat
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	output.SetLogger(output.NewLogger(loaded.LogLevel, loaded.LogFormat, os.Stderr))
	output.Logger.Debug("Configuration loaded", "config", cfgFile, "output_dir", loaded.OutputDir)
	cfg = loaded
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./pch-reader.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
}
