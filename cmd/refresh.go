package cmd

import (
	"context"
	"fmt"
	"time"

	"country-catalog/core/config"
	"country-catalog/core/database"
	"country-catalog/core/logger"
	"country-catalog/core/storage"
	"country-catalog/feature/countries"
	"country-catalog/feature/countries/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var refreshTimeoutSeconds int

// refreshCmd runs a single refresh-and-reconcile pass without the server.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch both external feeds and reconcile them into the catalog",
	Long: `Runs one refresh pass: fetches the country and exchange-rate feeds,
joins them, and upserts the catalog in a single transaction.

Examples:
  # One-off refresh with the configured sources
  country-catalog refresh

  # Bound the whole run to 60 seconds
  country-catalog refresh --timeout 60`,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().IntVar(&refreshTimeoutSeconds, "timeout", 120, "Overall timeout for the refresh run in seconds")
	RootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(refreshTimeoutSeconds)*time.Second)
	defer cancel()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Country{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var store storage.Client
	if client, err := storage.NewClient(cfg.Storage); err != nil {
		l.Warn("Optional storage connection failed, summary report skipped", zap.Error(err))
	} else {
		store = client
	}

	feature := countries.NewFeature(db, store, cfg.Storage.Bucket, l, cfg.Sources, cfg.Refresh)

	l.Info("Starting catalog refresh")
	result, err := feature.Service().Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	// Regenerate the summary synchronously for the CLI so the process can
	// exit once everything is written.
	if store != nil {
		if err := feature.Service().GenerateSummary(ctx); err != nil {
			l.Warn("Summary report generation failed", zap.Error(err))
		}
	}

	stats, err := feature.Service().Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read catalog stats: %w", err)
	}

	l.Info("Catalog refresh finished",
		zap.Int("added", result.Added),
		zap.Int("updated", result.Updated),
		zap.Int64("total", stats.TotalCountries),
	)
	return nil
}
