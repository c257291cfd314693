package models

import "time"

// Country is a persisted catalog entry. There is exactly one row per
// case-insensitively distinct name; all lookups compare LOWER(name).
type Country struct {
	ID           uint     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string   `gorm:"column:name;size:255;not null;uniqueIndex" json:"name"`
	Capital      *string  `gorm:"column:capital;size:255" json:"capital"`
	Region       *string  `gorm:"column:region;size:255" json:"region"`
	Population   int64    `gorm:"column:population;not null" json:"population"`
	CurrencyCode *string  `gorm:"column:currency_code;size:10" json:"currency_code"`
	ExchangeRate *float64 `gorm:"column:exchange_rate" json:"exchange_rate"`

	// EstimatedGDP is derived during refresh, never user-supplied. It is
	// non-null only when the population is positive and a positive exchange
	// rate was resolved for the country's currency.
	EstimatedGDP *float64 `gorm:"column:estimated_gdp" json:"estimated_gdp"`

	FlagURL         *string   `gorm:"column:flag_url;type:text" json:"flag_url"`
	LastRefreshedAt time.Time `gorm:"column:last_refreshed_at" json:"last_refreshed_at"`
}

// TableName overrides the table name used by GORM.
func (Country) TableName() string {
	return "countries"
}

// Stats aggregates catalog-wide refresh state.
type Stats struct {
	TotalCountries  int64      `json:"total_countries"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`
}
