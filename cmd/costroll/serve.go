package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/costroll/internal/aggregation"
	"github.com/aevon-lab/costroll/internal/core/storage/postgres"
	"github.com/aevon-lab/costroll/internal/projection"
	"github.com/aevon-lab/costroll/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve persisted totals, metrics and the run trigger over HTTP",
	RunE:  serve,
}

func serve(cmd *cobra.Command, _ []string) error {
	// 1. Load Configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 2. Initialize Storage (PostgreSQL)
	adapter, err := openStore(cmd.Context(), cfg, cfg.Database.AutoMigrate)
	if err != nil {
		return err
	}
	defer adapter.Close()
	results := postgres.NewResultsAdapter(adapter.DB())

	// 3. Initialize Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := aggregation.NewMetrics(registry)

	// 4. Initialize Pipeline and Projection (read API + run trigger)
	pipeline := newPipeline(cfg, results, metrics)
	projectionSvc := projection.NewService(results, pipeline)

	// 5. Initialize Server
	srv := server.New(cfg.Server.Addr(), results, registry, cfg.Server.Mode)
	projectionSvc.RegisterRoutes(srv.Engine)

	// 6. Start Services
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		return err
	}

	slog.Info("Shutdown complete")
	return nil
}

// pipeline must satisfy the trigger interface.
var _ projection.Runner = (*aggregation.Pipeline)(nil)
