package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"country-catalog/core/errs"

	"go.uber.org/zap"
)

// RateClient retrieves the currency exchange rate table.
type RateClient struct {
	httpClient *http.Client
	url        string
	logger     *zap.Logger
}

// NewRateClient creates a rate feed client from the source configuration.
func NewRateClient(cfg Config, logger *zap.Logger) *RateClient {
	return &RateClient{
		httpClient: &http.Client{Timeout: time.Duration(cfg.timeout()) * time.Second},
		url:        cfg.RatesURL,
		logger:     logger,
	}
}

// ratesEnvelope is the rate feed payload; only the rates mapping matters.
type ratesEnvelope struct {
	Rates map[string]float64 `json:"rates"`
}

// FetchRates fetches the mapping from currency code to USD-relative rate.
// Remote failure, timeout, or a non-2xx response aborts with an
// ExternalSourceError. A payload without a rates field yields an empty map:
// missing rates degrade GDP estimation instead of aborting the refresh.
func (c *RateClient) FetchRates(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &errs.ExternalSourceError{Source: SourceRates, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errs.ExternalSourceError{Source: SourceRates, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errs.ExternalSourceError{
			Source: SourceRates,
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var envelope ratesEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &errs.ExternalSourceError{Source: SourceRates, Err: err}
	}

	if envelope.Rates == nil {
		c.logger.Warn("Rate feed payload missing rates field, continuing without rates")
		return map[string]float64{}, nil
	}

	return envelope.Rates, nil
}
