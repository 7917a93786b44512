package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/costroll/internal/core/storage/postgres"
	"github.com/spf13/cobra"
)

var (
	runOutput   string
	runInputDir string
	runWorkers  int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Ingest the configured cost exports once and persist per-object totals",
	RunE:  runPipeline,
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "text", "Report format: text or yaml")
	runCmd.Flags().StringVar(&runInputDir, "input-dir", "", "Override input.dir for the local source")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "Override pipeline.workers (0 keeps the configured value)")
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	if runOutput != "text" && runOutput != "yaml" {
		return fmt.Errorf("unsupported --output %q (must be text or yaml)", runOutput)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runInputDir != "" {
		cfg.Input.Dir = runInputDir
	}
	if runWorkers > 0 {
		cfg.Pipeline.Workers = runWorkers
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	adapter, err := openStore(ctx, cfg, cfg.Database.AutoMigrate)
	if err != nil {
		return err
	}
	defer adapter.Close()

	pipeline := newPipeline(cfg, postgres.NewResultsAdapter(adapter.DB()), nil)
	report, runErr := pipeline.Run(ctx)

	if report != nil {
		out := cmd.OutOrStdout()
		var writeErr error
		if runOutput == "yaml" {
			writeErr = report.WriteYAML(out)
		} else {
			writeErr = report.WriteText(out)
		}
		if writeErr != nil && runErr == nil {
			return fmt.Errorf("write report: %w", writeErr)
		}
	}
	return runErr
}
