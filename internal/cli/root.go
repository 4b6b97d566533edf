// Package cli provides the command-line interface for journeytree.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/elyxlabs/journeytree/internal/config"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and logger, set up before every command.
	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "journeytree",
	Short: "Member journey simulator and decision tree analyzer",
	Long: `Journeytree simulates a multi-month member/advisor conversation from a
sparse message timeline and reconstructs the decision tree behind it:
which exchanges were decision points, how they branch, and how health
domains, urgency and complexity evolve over the journey.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}

		logger, closeLog = config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			if err := closeLog(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// timelineEpoch parses the configured epoch, falling back to the default on
// bad input.
func timelineEpoch() time.Time {
	epoch, err := time.Parse("2006-01-02", cfg.TimelineEpoch)
	if err != nil {
		logger.Warn("invalid timeline epoch, using default",
			"epoch", cfg.TimelineEpoch, "default", config.DefaultEpoch)
		epoch, _ = time.Parse("2006-01-02", config.DefaultEpoch)
	}
	return epoch
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(archiveCmd)
}
