package refresh

// Config holds tuning for the reconciliation engine.
//
// The multiplier range is an arbitrary scaling constant for the estimated
// GDP figure, not a domain law, which is why it is configurable.
type Config struct {
	// MultiplierMin is the inclusive lower bound of the GDP multiplier draw.
	MultiplierMin float64 `mapstructure:"gdp_multiplier_min" default:"1000"`
	// MultiplierMax is the exclusive upper bound of the GDP multiplier draw.
	MultiplierMax float64 `mapstructure:"gdp_multiplier_max" default:"2000"`
}

// bounds returns the configured multiplier range with safe defaults.
func (c Config) bounds() (float64, float64) {
	min, max := c.MultiplierMin, c.MultiplierMax
	if min <= 0 {
		min = 1000
	}
	if max <= min {
		max = min + 1000
	}
	return min, max
}
