package model

// AppConfig holds application-wide preferences, the price list and the
// defaults applied to new jobs.
type AppConfig struct {
	// Defaults applied to new jobs
	DefaultFenceHeight string    `json:"default_fence_height" mapstructure:"default_fence_height"`
	DefaultFenceType   FenceType `json:"default_fence_type" mapstructure:"default_fence_type"`
	DefaultEnds        int       `json:"default_ends" mapstructure:"default_ends"`
	DefaultCorners     int       `json:"default_corners" mapstructure:"default_corners"`

	Pricing        PricingConfig `json:"pricing" mapstructure:"pricing"`
	CurrencySymbol string        `json:"currency_symbol" mapstructure:"currency_symbol"`

	// Application preferences
	StrictValidation bool     `json:"strict_validation" mapstructure:"strict_validation"`
	RecentJobs       []string `json:"recent_jobs" mapstructure:"recent_jobs"`
}

// DefaultPricing returns a starter price list for residential chain link.
func DefaultPricing() PricingConfig {
	return PricingConfig{
		FabricPerFoot: 2.45,
		LinePost:      18.50,
		EndPost:       32.00,
		CornerPost:    32.00,
		TopRail:       24.75,
		TieWire:       0.09,
		LoopCap:       2.10,
		PostCap:       3.25,
		BraceBand:     1.40,
		TensionBar:    4.60,
		TensionBand:   1.15,
		NutAndBolt:    0.22,
	}
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultFenceHeight: "4",
		DefaultFenceType:   FenceResidential,
		DefaultEnds:        2,
		DefaultCorners:     0,
		Pricing:            DefaultPricing(),
		CurrencySymbol:     "$",
		StrictValidation:   false,
		RecentJobs:         []string{},
	}
}

// ApplyToInput fills the structural parameters of an input from the saved
// defaults. Runs are left untouched.
func (c AppConfig) ApplyToInput(in *EstimationInput) {
	in.FenceHeight = c.DefaultFenceHeight
	in.FenceType = c.DefaultFenceType
	in.Ends = c.DefaultEnds
	in.Corners = c.DefaultCorners
}

// AddRecentJob moves id to the front of the recent list, keeping at most limit entries.
func (c *AppConfig) AddRecentJob(id string, limit int) {
	recent := []string{id}
	for _, r := range c.RecentJobs {
		if r != id {
			recent = append(recent, r)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentJobs = recent
}
