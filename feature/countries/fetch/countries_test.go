package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"country-catalog/core/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetchCountries_DropsMalformedRecords(t *testing.T) {
	payload := `[
		{"name": "Nigeria", "capital": "Abuja", "region": "Africa", "population": 206139589,
		 "currencies": [{"code": "NGN", "name": "Nigerian naira"}], "flag": "https://flagcdn.com/ng.svg"},
		{"capital": "Nowhere", "population": 1},
		{"name": "Ghana", "region": "Africa", "population": 31072940, "currencies": ["GHS", "USD"]}
	]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewCountryClient(Config{CountriesURL: server.URL, TimeoutSeconds: 5}, zap.NewNop())

	countries, err := client.FetchCountries(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 2)

	assert.Equal(t, "Nigeria", countries[0].Name)
	require.NotNil(t, countries[0].CurrencyCode)
	assert.Equal(t, "NGN", *countries[0].CurrencyCode)

	assert.Equal(t, "Ghana", countries[1].Name)
	require.NotNil(t, countries[1].CurrencyCode)
	assert.Equal(t, "GHS", *countries[1].CurrencyCode)
}

func TestFetchCountries_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewCountryClient(Config{CountriesURL: server.URL, TimeoutSeconds: 5}, zap.NewNop())

	_, err := client.FetchCountries(context.Background())
	require.Error(t, err)

	var srcErr *errs.ExternalSourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, SourceCountries, srcErr.Source)
}

func TestFetchCountries_RemoteUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewCountryClient(Config{CountriesURL: server.URL, TimeoutSeconds: 1}, zap.NewNop())

	_, err := client.FetchCountries(context.Background())
	require.Error(t, err)

	var srcErr *errs.ExternalSourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, SourceCountries, srcErr.Source)
}
