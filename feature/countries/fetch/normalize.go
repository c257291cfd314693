package fetch

import (
	"strings"

	"country-catalog/core/errs"
	"country-catalog/core/utils"
	"country-catalog/feature/countries/models"
)

// Normalize converts one raw country record into its canonical shape.
// Records are unstructured mappings of unknown shape; everything except the
// name degrades to a zero value or nil instead of failing. A missing or
// empty name rejects the record with a MalformedRecordError.
func Normalize(raw map[string]any) (models.NormalizedCountry, error) {
	name := countryName(raw["name"])
	if name == "" {
		return models.NormalizedCountry{}, &errs.MalformedRecordError{Reason: "missing country name"}
	}

	population := utils.ToInt64(raw["population"])
	if population < 0 {
		population = 0
	}

	return models.NormalizedCountry{
		Name:         name,
		Capital:      utils.OptString(raw["capital"]),
		Region:       utils.OptString(raw["region"]),
		Population:   population,
		CurrencyCode: currencyCode(raw["currencies"]),
		FlagURL:      utils.OptString(raw["flag"]),
	}, nil
}

// countryName resolves the name field, which is a plain string in the v2
// feed and an object with a "common" field in newer feed revisions.
func countryName(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case map[string]any:
		if common, ok := n["common"].(string); ok {
			return common
		}
		return ""
	default:
		return ""
	}
}

// currencyCode resolves the currency descriptor, which appears in three
// variants: a bare code string, a list of code strings, or a list of objects
// carrying a "code" field. The first descriptor wins; multiple currencies
// per country are not reconciled. Empty or absent descriptors yield nil.
func currencyCode(v any) *string {
	switch cur := v.(type) {
	case string:
		return upperCode(cur)
	case []any:
		if len(cur) == 0 {
			return nil
		}
		switch first := cur[0].(type) {
		case string:
			return upperCode(first)
		case map[string]any:
			if code, ok := first["code"].(string); ok {
				return upperCode(code)
			}
		}
	}
	return nil
}

func upperCode(code string) *string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	return &code
}
