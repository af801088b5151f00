// Package config provides configuration loading and structs for contentkit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Content ContentConfig `yaml:"content"`
	Reading ReadingConfig `yaml:"reading"`
	Excerpt ExcerptConfig `yaml:"excerpt"`
	Related RelatedConfig `yaml:"related"`
	Tags    TagsConfig    `yaml:"tags"`
	Search  SearchConfig  `yaml:"search"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ContentConfig locates the content tree and defines its collections.
type ContentConfig struct {
	Root string `yaml:"root"`
	// Strict excludes items that fail front matter validation instead of warning.
	Strict      bool               `yaml:"strict"`
	Collections []CollectionConfig `yaml:"collections"`
}

// CollectionConfig defines one collection directory under the content root.
type CollectionConfig struct {
	Name       string   `yaml:"name"`
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions"`
	Recursive  bool     `yaml:"recursive"`
}

// ReadingConfig holds reading-time rates.
type ReadingConfig struct {
	WordsPerMinute int `yaml:"words_per_minute"`
	CharsPerMinute int `yaml:"chars_per_minute"`
}

// ExcerptConfig holds excerpt generation settings.
type ExcerptConfig struct {
	MaxLength int `yaml:"max_length"`
}

// RelatedConfig holds relatedness scoring weights and the default result size.
// An unset weight takes its default; 0 disables that part of the score.
type RelatedConfig struct {
	Limit          int      `yaml:"limit"`
	CategoryWeight *float64 `yaml:"category_weight"`
	TagWeight      *float64 `yaml:"tag_weight"`
}

const (
	defaultCategoryWeight = 10
	defaultTagWeight      = 5
)

// CategoryWeightOrDefault returns the category bonus; defaults to 10 when unset.
func (r *RelatedConfig) CategoryWeightOrDefault() float64 {
	if r.CategoryWeight != nil {
		return *r.CategoryWeight
	}
	return defaultCategoryWeight
}

// TagWeightOrDefault returns the per-shared-tag score; defaults to 5 when unset.
func (r *RelatedConfig) TagWeightOrDefault() float64 {
	if r.TagWeight != nil {
		return *r.TagWeight
	}
	return defaultTagWeight
}

// TagsConfig holds tag aggregation settings.
type TagsConfig struct {
	FoldCase     bool `yaml:"fold_case"`
	RelatedLimit int  `yaml:"related_limit"`
}

// SearchConfig points at the external search and contact API.
type SearchConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// WatchConfig holds content watcher settings.
type WatchConfig struct {
	Extensions []string      `yaml:"extensions"`
	Debounce   time.Duration `yaml:"debounce"`
}

// Collection returns the definition for name, if configured.
func (c *ContentConfig) Collection(name string) (CollectionConfig, bool) {
	for _, cc := range c.Collections {
		if cc.Name == name {
			return cc, true
		}
	}
	return CollectionConfig{}, false
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	cfg.Content.Root = expandPath(cfg.Content.Root, filepath.Dir(path))

	return &cfg, nil
}

// Default returns a config with every default applied, rooted at the working directory.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	cfg.Content.Root = expandPath(cfg.Content.Root, workingDir())
	return &cfg
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. "~/" is the home directory; other relative
// paths are relative to baseDir (the config file's directory).
func expandPath(path string, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return filepath.Join(baseDir, path)
}
