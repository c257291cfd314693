package countries

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"country-catalog/core/errs"
	"country-catalog/feature/countries/models"
	"country-catalog/feature/countries/refresh"
	"country-catalog/feature/countries/report"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// sortColumns whitelists the accepted sort tokens. Unknown tokens leave the
// store's natural order.
var sortColumns = map[string]string{
	"name_asc":        "name ASC",
	"name_desc":       "name DESC",
	"population_asc":  "population ASC",
	"population_desc": "population DESC",
	"gdp_asc":         "estimated_gdp ASC",
	"gdp_desc":        "estimated_gdp DESC",
}

// ListOptions bounds and filters a catalog listing.
type ListOptions struct {
	Region   string
	Currency string
	Sort     string
	Skip     int
	Limit    int
}

// Service owns catalog reads and orchestrates the refresh pipeline.
type Service struct {
	db      *gorm.DB
	logger  *zap.Logger
	engine  *refresh.Engine
	reports *report.Generator // nil when object storage is unavailable
	group   singleflight.Group
}

// NewService creates a countries service. reports may be nil; summary
// generation is then skipped.
func NewService(db *gorm.DB, logger *zap.Logger, engine *refresh.Engine, reports *report.Generator) *Service {
	return &Service{
		db:      db,
		logger:  logger,
		engine:  engine,
		reports: reports,
	}
}

// Refresh runs the reconcile pipeline. Concurrent invocations are collapsed
// with singleflight so a single writer performs the whole upsert batch; both
// callers receive the same result. On success, summary-report regeneration
// is scheduled out-of-band and never affects the returned result.
func (s *Service) Refresh(ctx context.Context) (*refresh.Result, error) {
	v, err, _ := s.group.Do("refresh", func() (any, error) {
		return s.engine.Refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	result := v.(*refresh.Result)

	if s.reports != nil {
		go func() {
			bg, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := s.GenerateSummary(bg); err != nil {
				s.logger.Warn("Summary report generation failed", zap.Error(err))
			}
		}()
	}

	return result, nil
}

// GenerateSummary rebuilds the summary artifact from current aggregates.
func (s *Service) GenerateSummary(ctx context.Context) error {
	if s.reports == nil {
		return nil
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		return err
	}
	top, err := s.TopByGDP(ctx, 5)
	if err != nil {
		return err
	}
	return s.reports.Generate(ctx, stats, top)
}

// SummaryReport returns the stored summary artifact, or ErrNotFound when no
// refresh has produced one yet.
func (s *Service) SummaryReport(ctx context.Context) ([]byte, error) {
	if s.reports == nil {
		return nil, errs.ErrNotFound
	}
	return s.reports.Fetch(ctx)
}

// List returns catalog entries with optional exact case-insensitive filters,
// whitelisted sorting, and a bounded page.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]models.Country, error) {
	q := s.db.WithContext(ctx).Model(&models.Country{})

	if opts.Region != "" {
		q = q.Where("LOWER(region) = LOWER(?)", opts.Region)
	}
	if opts.Currency != "" {
		q = q.Where("LOWER(currency_code) = LOWER(?)", opts.Currency)
	}
	if order, ok := sortColumns[strings.ToLower(opts.Sort)]; ok {
		q = q.Order(order)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	skip := opts.Skip
	if skip < 0 {
		skip = 0
	}

	var countries []models.Country
	if err := q.Offset(skip).Limit(limit).Find(&countries).Error; err != nil {
		return nil, &errs.PersistenceError{Op: "list countries", Err: err}
	}
	return countries, nil
}

// GetByName looks up one entry by case-insensitive exact name.
func (s *Service) GetByName(ctx context.Context, name string) (*models.Country, error) {
	var country models.Country
	err := s.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&country).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, &errs.PersistenceError{Op: "get country", Err: err}
	}
	return &country, nil
}

// DeleteByName removes one entry by case-insensitive exact name. It reports
// whether an entry was found; a miss is a normal negative result.
func (s *Service) DeleteByName(ctx context.Context, name string) (bool, error) {
	res := s.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).Delete(&models.Country{})
	if res.Error != nil {
		return false, &errs.PersistenceError{Op: "delete country", Err: res.Error}
	}
	return res.RowsAffected > 0, nil
}

// Stats returns the total entry count and the most recent refresh timestamp.
func (s *Service) Stats(ctx context.Context) (*models.Stats, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Country{}).Count(&total).Error; err != nil {
		return nil, &errs.PersistenceError{Op: "count countries", Err: err}
	}

	row := s.db.WithContext(ctx).Model(&models.Country{}).
		Select("MAX(last_refreshed_at)").Row()
	var last sql.NullTime
	if err := row.Scan(&last); err != nil {
		return nil, &errs.PersistenceError{Op: "stats", Err: err}
	}

	stats := &models.Stats{TotalCountries: total}
	if last.Valid {
		stats.LastRefreshedAt = &last.Time
	}
	return stats, nil
}

// TopByGDP returns the top n entries by estimated GDP, excluding entries
// without an estimate.
func (s *Service) TopByGDP(ctx context.Context, n int) ([]models.Country, error) {
	if n <= 0 {
		n = 5
	}
	var countries []models.Country
	err := s.db.WithContext(ctx).
		Where("estimated_gdp IS NOT NULL").
		Order("estimated_gdp DESC").
		Limit(n).
		Find(&countries).Error
	if err != nil {
		return nil, &errs.PersistenceError{Op: "top countries by gdp", Err: err}
	}
	return countries, nil
}
