package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/secretgrep/cmd/secretgrep/commands"
	"github.com/systmms/secretgrep/internal/config"
	"github.com/systmms/secretgrep/internal/logging"
	"github.com/systmms/secretgrep/internal/secure"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	defer secure.Purge()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		secure.Purge()
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		storeName  string
		format     string
		noColor    bool
		debug      bool
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "secretgrep",
		Short: "List, fetch, and search key-value secrets in remote secret stores",
		Long: `secretgrep pulls key-value secrets from your secret store(s) and lets you
enumerate them, fetch them, or grep across secret names and the keys inside
each secret.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger with parsed flags
			logger := logging.New(debug, noColor)

			cfg.Path = configFile
			cfg.Logger = logger
			cfg.StoreName = storeName
			cfg.Format = format
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "secretgrep.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVar(&storeName, "store", "", "Store name from the config (default: defaults.store or $SECRETGREP_STORE)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "", "Output format: plain or json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		commands.NewListCommand(cfg),
		commands.NewGetCommand(cfg),
		commands.NewSearchCommand(cfg),
		commands.NewDoctorCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	return rootCmd.Execute()
}
