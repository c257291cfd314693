package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"country-catalog/core/errs"
	"country-catalog/feature/countries/models"

	"go.uber.org/zap"
)

// Source tags identifying the failing feed in ExternalSourceError.
const (
	SourceCountries = "countries"
	SourceRates     = "rates"
)

// CountryClient retrieves the raw country list and normalizes every record.
type CountryClient struct {
	httpClient *http.Client
	url        string
	logger     *zap.Logger
}

// NewCountryClient creates a country feed client from the source configuration.
func NewCountryClient(cfg Config, logger *zap.Logger) *CountryClient {
	return &CountryClient{
		httpClient: &http.Client{Timeout: time.Duration(cfg.timeout()) * time.Second},
		url:        cfg.CountriesURL,
		logger:     logger,
	}
}

// FetchCountries fetches and normalizes the country feed. Remote failure,
// timeout, or a non-2xx response aborts with an ExternalSourceError; a
// malformed individual record is dropped and logged, never surfaced —
// partial success beats total failure for this stage.
func (c *CountryClient) FetchCountries(ctx context.Context) ([]models.NormalizedCountry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &errs.ExternalSourceError{Source: SourceCountries, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errs.ExternalSourceError{Source: SourceCountries, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errs.ExternalSourceError{
			Source: SourceCountries,
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var raw []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &errs.ExternalSourceError{Source: SourceCountries, Err: err}
	}

	countries := make([]models.NormalizedCountry, 0, len(raw))
	dropped := 0
	for _, record := range raw {
		normalized, err := Normalize(record)
		if err != nil {
			dropped++
			c.logger.Warn("Dropping unprocessable country record", zap.Error(err))
			continue
		}
		countries = append(countries, normalized)
	}

	if dropped > 0 {
		c.logger.Info("Country feed processed with drops",
			zap.Int("kept", len(countries)),
			zap.Int("dropped", dropped),
		)
	}

	return countries, nil
}
