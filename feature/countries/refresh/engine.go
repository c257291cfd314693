package refresh

import (
	"context"
	"errors"
	"sync"
	"time"

	"country-catalog/core/errs"
	"country-catalog/feature/countries/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Engine reconciles the two external feeds against the persisted catalog.
// It joins normalized countries with exchange rates on currency code,
// derives the estimated GDP, and upserts the whole batch in one transaction.
type Engine struct {
	countries  CountrySource
	rates      RateSource
	db         *gorm.DB
	logger     *zap.Logger
	multiplier MultiplierSource
}

// NewEngine creates a reconciliation engine with a uniform multiplier drawn
// from the configured range.
func NewEngine(countries CountrySource, rates RateSource, db *gorm.DB, logger *zap.Logger, cfg Config) *Engine {
	min, max := cfg.bounds()
	return &Engine{
		countries:  countries,
		rates:      rates,
		db:         db,
		logger:     logger,
		multiplier: NewUniformMultiplier(min, max),
	}
}

// WithMultiplier overrides the randomness source. Tests use it to make the
// estimated GDP reproducible.
func (e *Engine) WithMultiplier(m MultiplierSource) *Engine {
	e.multiplier = m
	return e
}

// Refresh runs the full reconcile pipeline.
//
// The two feeds have no data dependency and are fetched concurrently; if
// either fails the refresh aborts before any store access and the tagged
// ExternalSourceError propagates. Every fetched country is then upserted by
// case-insensitive name inside a single transaction: existing entries have
// all mutable fields overwritten, new names are created. Entries absent from
// the current feed are left untouched. Any write failure rolls the whole
// batch back and surfaces a PersistenceError.
func (e *Engine) Refresh(ctx context.Context) (*Result, error) {
	var (
		countries []models.NormalizedCountry
		rates     map[string]float64
		cErr      error
		rErr      error
		wg        sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		countries, cErr = e.countries.FetchCountries(ctx)
	}()
	go func() {
		defer wg.Done()
		rates, rErr = e.rates.FetchRates(ctx)
	}()
	wg.Wait()

	if cErr != nil {
		return nil, cErr
	}
	if rErr != nil {
		return nil, rErr
	}

	result := &Result{}
	now := time.Now().UTC()

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, country := range countries {
			entry := e.buildEntry(country, rates, now)

			var existing models.Country
			err := tx.Where("LOWER(name) = LOWER(?)", country.Name).First(&existing).Error
			switch {
			case err == nil:
				updates := map[string]any{
					"name":              entry.Name,
					"capital":           entry.Capital,
					"region":            entry.Region,
					"population":        entry.Population,
					"currency_code":     entry.CurrencyCode,
					"exchange_rate":     entry.ExchangeRate,
					"estimated_gdp":     entry.EstimatedGDP,
					"flag_url":          entry.FlagURL,
					"last_refreshed_at": now,
				}
				if err := tx.Model(&models.Country{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
					return err
				}
				result.Updated++
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
				result.Added++
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, &errs.PersistenceError{Op: "refresh upsert", Err: err}
	}

	e.logger.Info("Catalog refresh committed",
		zap.Int("added", result.Added),
		zap.Int("updated", result.Updated),
		zap.Int("rates", len(rates)),
	)

	return result, nil
}

// buildEntry resolves the exchange rate and derives the estimated GDP for
// one normalized country. The rate must be present and positive to count;
// the GDP is population * multiplier / rate, nulled when non-positive.
func (e *Engine) buildEntry(country models.NormalizedCountry, rates map[string]float64, now time.Time) models.Country {
	var rate *float64
	var gdp *float64

	if country.CurrencyCode != nil {
		if r, ok := rates[*country.CurrencyCode]; ok && r > 0 {
			rate = &r
			if g := float64(country.Population) * e.multiplier() / r; g > 0 {
				gdp = &g
			}
		}
	}

	return models.Country{
		Name:            country.Name,
		Capital:         country.Capital,
		Region:          country.Region,
		Population:      country.Population,
		CurrencyCode:    country.CurrencyCode,
		ExchangeRate:    rate,
		EstimatedGDP:    gdp,
		FlagURL:         country.FlagURL,
		LastRefreshedAt: now,
	}
}
