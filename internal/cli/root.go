// Package cli provides the command-line interface for insightloop.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/insightloop/insightloop/pkg/config"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Loaded in PersistentPreRunE, shared by all subcommands.
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "insightloop",
	Short: "Meeting audio analysis pipeline",
	Long: `InsightLoop turns meeting recordings into structured reports:
transcription, speaker attribution, an executive summary and a
prioritized action-item list, written as a single JSON document.

Audio can come from local files (analyze) or straight from Zoom cloud
recordings (zoom monitor).`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if cfg.Server.Environment == "production" && !verbose {
			logger, err = zap.NewProduction()
		} else {
			logger, err = zap.NewDevelopment()
		}
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(zoomCmd)
	rootCmd.AddCommand(migrateCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
