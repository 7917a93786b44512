package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/aevon-lab/costroll/internal/aggregation"
	corecfg "github.com/aevon-lab/costroll/internal/core/config"
	"github.com/aevon-lab/costroll/internal/core/storage/postgres"
	"github.com/aevon-lab/costroll/internal/ingestion"
	"github.com/aevon-lab/costroll/internal/migrations"
)

// loadConfig loads configuration and installs the default slog logger.
// A missing default config file is not an error: defaults and env still apply.
func loadConfig() (*corecfg.Config, error) {
	path := configPath
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !rootCmd.PersistentFlags().Changed("config") {
			path = ""
		}
	}

	cfg, err := corecfg.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Debug("Loaded config", "path", path, "config", cfg)
	return cfg, nil
}

// openStore connects to PostgreSQL, applies migrations and seeds the
// object type reference table.
func openStore(ctx context.Context, cfg *corecfg.Config, autoMigrate bool) (*postgres.Adapter, error) {
	adapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if err := migrations.RunMigrations(adapter.DB(), autoMigrate); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("run database migrations: %w", err)
	}
	if err := adapter.ValidateSchema(ctx); err != nil {
		adapter.Close()
		return nil, err
	}
	if err := adapter.SeedObjectTypes(ctx); err != nil {
		adapter.Close()
		return nil, err
	}
	return adapter, nil
}

func newSource(cfg *corecfg.Config) ingestion.Source {
	if cfg.Input.Source == "s3" {
		return ingestion.NewS3Source(cfg.Input.S3.Region, cfg.Input.S3.Bucket, cfg.Input.S3.Prefix, cfg.Input.Pattern)
	}
	return ingestion.NewLocalSource(cfg.Input.Dir, cfg.Input.Pattern)
}

func newPipeline(cfg *corecfg.Config, store aggregation.ResultWriter, metrics *aggregation.Metrics) *aggregation.Pipeline {
	return aggregation.NewPipeline(
		newSource(cfg),
		ingestion.NewIngestor(cfg.Columns.Extractor()),
		store,
		metrics,
		aggregation.Options{
			Workers:           cfg.Pipeline.Workers,
			WorkerHeadroom:    cfg.Pipeline.WorkerHeadroom,
			ChannelBufferSize: cfg.Pipeline.ChannelBufferSize,
		},
	)
}
