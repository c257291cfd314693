package models

// NormalizedCountry is the canonical shape of one raw country record after
// normalization. It lives only for the duration of a refresh; Name is the
// join and identity key against the persisted catalog.
type NormalizedCountry struct {
	Name         string
	Capital      *string
	Region       *string
	Population   int64
	CurrencyCode *string
	FlagURL      *string
}
