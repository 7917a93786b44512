package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "costroll",
	Short:         "Rolls cloud cost exports up to infrastructure objects",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	time.Local = time.UTC

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "costroll.yaml", "Path to configuration file (empty for defaults and env only)")
	rootCmd.AddCommand(runCmd, migrateCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
