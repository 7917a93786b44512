package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations and seed the object type reference table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		adapter, err := openStore(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}
		defer adapter.Close()

		slog.Info("Store is up to date")
		return nil
	},
}
