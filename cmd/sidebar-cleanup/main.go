// Package main provides the sidebar-cleanup CLI.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/uiplatform/sidebar-cleanup/internal/config"
	"github.com/uiplatform/sidebar-cleanup/internal/logging"
)

// version is overridable at build time via -ldflags.
var version = "0.2.0"

// Global flag values.
var (
	flagConfig  string
	flagDSN     string
	flagField   string
	flagDryRun  bool
	flagVerbose bool
)

// cfg is loaded by PersistentPreRunE so all subcommands can use it.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "sidebar-cleanup",
	Short: "Remove legacy fields from stored sidebar configuration documents",
	Long: `sidebar-cleanup strips a legacy field (requiresProject by default) from
every JSON sidebar configuration document in the database, rewrites only the
rows that changed inside a single transaction, then verifies that no
occurrences remain and prints a sample item for inspection.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, errLoad := config.Load(flagConfig)
		if errLoad != nil {
			return errLoad
		}
		cfg = loaded
		logging.Setup(cfg.Log, flagVerbose)
		return nil
	},
	RunE: runCleanup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultConfigPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&flagDSN, "dsn", "", "database DSN (overrides config and environment)")
	rootCmd.PersistentFlags().StringVar(&flagField, "field", "", "target field to strip (default: requiresProject)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "report changes without writing")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(versionCmd)
}

// targetField picks the field by precedence: flag > config file > default.
func targetField() string {
	if flagField != "" {
		return flagField
	}
	return cfg.Cleanup.Field
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("cleanup failed")
		os.Exit(1)
	}
}
