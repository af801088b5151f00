package config

import "time"

// DefaultCollections mirrors content/blog/*.mdx, content/releases/*.mdx and
// content/docs/**/*.{mdx,md}.
func DefaultCollections() []CollectionConfig {
	return []CollectionConfig{
		{Name: "blog", Dir: "blog", Extensions: []string{".mdx"}},
		{Name: "releases", Dir: "releases", Extensions: []string{".mdx"}},
		{Name: "docs", Dir: "docs", Extensions: []string{".mdx", ".md"}, Recursive: true},
	}
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Content.Root == "" {
		cfg.Content.Root = "content"
	}
	if len(cfg.Content.Collections) == 0 {
		cfg.Content.Collections = DefaultCollections()
	}
	for i := range cfg.Content.Collections {
		c := &cfg.Content.Collections[i]
		if c.Dir == "" {
			c.Dir = c.Name
		}
		if len(c.Extensions) == 0 {
			c.Extensions = []string{".mdx"}
		}
	}
	if cfg.Reading.WordsPerMinute == 0 {
		cfg.Reading.WordsPerMinute = 200
	}
	if cfg.Reading.CharsPerMinute == 0 {
		cfg.Reading.CharsPerMinute = 500
	}
	if cfg.Excerpt.MaxLength == 0 {
		cfg.Excerpt.MaxLength = 160
	}
	if cfg.Related.Limit == 0 {
		cfg.Related.Limit = 3
	}
	if cfg.Related.CategoryWeight == nil {
		w := cfg.Related.CategoryWeightOrDefault()
		cfg.Related.CategoryWeight = &w
	}
	if cfg.Related.TagWeight == nil {
		w := cfg.Related.TagWeightOrDefault()
		cfg.Related.TagWeight = &w
	}
	if cfg.Tags.RelatedLimit == 0 {
		cfg.Tags.RelatedLimit = 10
	}
	if cfg.Search.BaseURL == "" {
		cfg.Search.BaseURL = "http://localhost:3000"
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = 10 * time.Second
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".mdx", ".md"}
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 400 * time.Millisecond
	}
}
