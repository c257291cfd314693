package fetch

import (
	"testing"

	"country-catalog/core/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_RejectsMissingName(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"Absent", map[string]any{"population": 100}},
		{"Empty", map[string]any{"name": ""}},
		{"WrongType", map[string]any{"name": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			require.Error(t, err)

			var malformed *errs.MalformedRecordError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestNormalize_PopulationCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int64
	}{
		{"Number", float64(206139589), 206139589},
		{"Missing", nil, 0},
		{"NonNumericString", "lots", 0},
		{"NumericString", "1234", 1234},
		{"Negative", float64(-5), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := map[string]any{"name": "Testland"}
			if tt.raw != nil {
				record["population"] = tt.raw
			}
			normalized, err := Normalize(record)
			require.NoError(t, err)
			assert.Equal(t, tt.want, normalized.Population)
		})
	}
}

func TestNormalize_CurrencySelection(t *testing.T) {
	tests := []struct {
		name       string
		currencies any
		want       *string
	}{
		{"FirstOfStringList", []any{"EUR", "USD"}, strPtr("EUR")},
		{"FirstOfObjectList", []any{map[string]any{"code": "ngn", "name": "Naira"}}, strPtr("NGN")},
		{"ScalarCode", "usd", strPtr("USD")},
		{"EmptyList", []any{}, nil},
		{"Absent", nil, nil},
		{"ObjectWithoutCode", []any{map[string]any{"name": "Mystery"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := map[string]any{"name": "Testland"}
			if tt.currencies != nil {
				record["currencies"] = tt.currencies
			}
			normalized, err := Normalize(record)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, normalized.CurrencyCode)
			} else {
				require.NotNil(t, normalized.CurrencyCode)
				assert.Equal(t, *tt.want, *normalized.CurrencyCode)
			}
		})
	}
}

func TestNormalize_OptionalFields(t *testing.T) {
	normalized, err := Normalize(map[string]any{
		"name":    "Nigeria",
		"capital": "Abuja",
		"region":  "Africa",
		"flag":    "https://flagcdn.com/ng.svg",
	})
	require.NoError(t, err)

	require.NotNil(t, normalized.Capital)
	assert.Equal(t, "Abuja", *normalized.Capital)
	require.NotNil(t, normalized.Region)
	assert.Equal(t, "Africa", *normalized.Region)
	require.NotNil(t, normalized.FlagURL)

	bare, err := Normalize(map[string]any{"name": "Bare"})
	require.NoError(t, err)
	assert.Nil(t, bare.Capital)
	assert.Nil(t, bare.Region)
	assert.Nil(t, bare.FlagURL)
}

func TestNormalize_NestedName(t *testing.T) {
	normalized, err := Normalize(map[string]any{
		"name": map[string]any{"common": "Ghana", "official": "Republic of Ghana"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ghana", normalized.Name)
}

func strPtr(s string) *string {
	return &s
}
