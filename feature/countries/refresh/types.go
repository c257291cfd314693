package refresh

import (
	"context"
	"math/rand"
	"time"

	"country-catalog/feature/countries/models"
)

// CountrySource retrieves the normalized country list.
type CountrySource interface {
	FetchCountries(ctx context.Context) ([]models.NormalizedCountry, error)
}

// RateSource retrieves the exchange rate table keyed by currency code.
type RateSource interface {
	FetchRates(ctx context.Context) (map[string]float64, error)
}

// MultiplierSource yields the pseudo-random scaling factor used in the
// estimated GDP computation. It is a seam: production draws uniformly from
// the configured range, tests substitute a fixed sequence.
type MultiplierSource func() float64

// NewUniformMultiplier returns a MultiplierSource drawing uniformly from
// [min, max). The engine is a single writer, so the unsynchronized rand
// source is safe.
func NewUniformMultiplier(min, max float64) MultiplierSource {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return func() float64 {
		return min + rng.Float64()*(max-min)
	}
}

// Result summarizes one refresh: how many catalog entries were created and
// how many existing entries were overwritten.
type Result struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}
