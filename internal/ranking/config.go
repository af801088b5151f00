package ranking

import "github.com/hyperjump/contentkit/internal/config"

// RankingConfig holds the relatedness weights and the default result size.
type RankingConfig struct {
	CategoryWeight float64 `yaml:"category_weight"` // default: 10
	TagWeight      float64 `yaml:"tag_weight"`      // default: 5 per shared tag
	Limit          int     `yaml:"limit"`           // default: 3
}

// DefaultRankingConfig returns the default weights.
func DefaultRankingConfig() *RankingConfig {
	return &RankingConfig{
		CategoryWeight: 10,
		TagWeight:      5,
		Limit:          3,
	}
}

// ApplyDefaults fills a non-positive limit. Weights are used as given, so a zero
// weight turns its scorer off.
func (c *RankingConfig) ApplyDefaults() {
	if c.Limit <= 0 {
		c.Limit = DefaultRankingConfig().Limit
	}
}

// FromConfig converts the application's related section.
func FromConfig(rc config.RelatedConfig) *RankingConfig {
	c := &RankingConfig{
		CategoryWeight: rc.CategoryWeightOrDefault(),
		TagWeight:      rc.TagWeightOrDefault(),
		Limit:          rc.Limit,
	}
	c.ApplyDefaults()
	return c
}
