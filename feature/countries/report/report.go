package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"country-catalog/core/errs"
	"country-catalog/core/storage"
	"country-catalog/feature/countries/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ObjectName is the storage key of the generated summary artifact.
const ObjectName = "summary.json"

// Summary is the artifact regenerated after every successful refresh.
type Summary struct {
	TotalCountries    int64      `json:"total_countries"`
	LastRefreshedAt   *time.Time `json:"last_refreshed_at"`
	TopByEstimatedGDP []Entry    `json:"top_by_estimated_gdp"`
	GeneratedAt       time.Time  `json:"generated_at"`
}

// Entry is one row of the top-by-GDP ranking.
type Entry struct {
	Name         string  `json:"name"`
	EstimatedGDP float64 `json:"estimated_gdp"`
}

// Generator builds the summary artifact and stores it in object storage.
type Generator struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewGenerator creates a summary report generator.
func NewGenerator(client storage.Client, bucket string, logger *zap.Logger) *Generator {
	return &Generator{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Generate builds the summary from post-refresh aggregates and uploads it,
// replacing any previous artifact.
func (g *Generator) Generate(ctx context.Context, stats *models.Stats, top []models.Country) error {
	summary := Summary{
		TotalCountries:  stats.TotalCountries,
		LastRefreshedAt: stats.LastRefreshedAt,
		GeneratedAt:     time.Now().UTC(),
	}
	for _, country := range top {
		if country.EstimatedGDP == nil {
			continue
		}
		summary.TopByEstimatedGDP = append(summary.TopByEstimatedGDP, Entry{
			Name:         country.Name,
			EstimatedGDP: *country.EstimatedGDP,
		})
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	exists, err := g.client.BucketExists(ctx, g.bucket)
	if err != nil {
		return fmt.Errorf("failed to check report bucket: %w", err)
	}
	if !exists {
		if err := g.client.MakeBucket(ctx, g.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create report bucket: %w", err)
		}
	}

	_, err = g.client.PutObject(ctx, g.bucket, ObjectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload summary: %w", err)
	}

	g.logger.Info("Summary report uploaded",
		zap.String("bucket", g.bucket),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// Fetch streams back the stored summary artifact. A missing or unreadable
// artifact reports ErrNotFound; the first refresh has not completed yet.
func (g *Generator) Fetch(ctx context.Context) ([]byte, error) {
	reader, err := g.client.GetObject(ctx, g.bucket, ObjectName, minio.GetObjectOptions{})
	if err != nil {
		g.logger.Debug("Summary report fetch failed", zap.Error(err))
		return nil, errs.ErrNotFound
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		g.logger.Debug("Summary report read failed", zap.Error(err))
		return nil, errs.ErrNotFound
	}
	return data, nil
}
