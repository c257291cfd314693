package fetch

// Config holds configuration for the external data sources.
type Config struct {
	// CountriesURL is the endpoint returning the raw country list.
	CountriesURL string `mapstructure:"countries_url" default:"https://restcountries.com/v2/all?fields=name,capital,region,population,flag,currencies"`
	// RatesURL is the endpoint returning exchange rates relative to USD.
	RatesURL string `mapstructure:"rates_url" default:"https://open.er-api.com/v6/latest/USD"`
	// TimeoutSeconds bounds each remote request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// timeout returns the configured timeout with a safe default.
func (c Config) timeout() int {
	if c.TimeoutSeconds <= 0 {
		return 30
	}
	return c.TimeoutSeconds
}
