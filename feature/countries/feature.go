package countries

import (
	"country-catalog/core/loader"
	"country-catalog/core/storage"
	"country-catalog/feature/countries/fetch"
	"country-catalog/feature/countries/refresh"
	"country-catalog/feature/countries/report"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the country catalog into the feature loader.
type Feature struct {
	service *Service
	db      *gorm.DB
}

var _ loader.Feature = (*Feature)(nil)

// NewFeature assembles the full pipeline: feed clients, reconciliation
// engine, optional summary-report generator, and the service on top.
// client may be nil; summary reports are then disabled.
func NewFeature(db *gorm.DB, client storage.Client, bucket string, logg *zap.Logger, sources fetch.Config, refreshCfg refresh.Config) *Feature {
	countriesClient := fetch.NewCountryClient(sources, logg)
	ratesClient := fetch.NewRateClient(sources, logg)
	engine := refresh.NewEngine(countriesClient, ratesClient, db, logg, refreshCfg)

	var reports *report.Generator
	if client != nil {
		reports = report.NewGenerator(client, bucket, logg)
	}

	return &Feature{
		service: NewService(db, logg, engine, reports),
		db:      db,
	}
}

// Service exposes the assembled service for CLI callers.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "countries"
}

// IsEnabled reports whether the feature can run; the catalog store is required.
func (f *Feature) IsEnabled() bool {
	return f.db != nil
}

// Load registers the catalog routes.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service).RegisterRoutes(app)
	return nil
}
