package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. CONTENTKIT_SERVER_PORT.
const EnvPrefix = "CONTENTKIT"

// NewViper returns a viper instance that resolves keys like "server.port" from
// CONTENTKIT_SERVER_PORT. Callers may bind CLI flags onto the same keys.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ApplyOverrides copies every key that is set in v (environment or changed flag) onto cfg.
// Precedence is flags > env > config file > defaults.
func ApplyOverrides(cfg *Config, v *viper.Viper) {
	if v.IsSet("debug") {
		cfg.Debug = v.GetBool("debug")
	}
	if v.IsSet("server.host") {
		cfg.Server.Host = v.GetString("server.host")
	}
	if v.IsSet("server.port") {
		cfg.Server.Port = v.GetInt("server.port")
	}
	if v.IsSet("content.root") {
		cfg.Content.Root = expandPath(v.GetString("content.root"), workingDir())
	}
	if v.IsSet("content.strict") {
		cfg.Content.Strict = v.GetBool("content.strict")
	}
	if v.IsSet("tags.fold_case") {
		cfg.Tags.FoldCase = v.GetBool("tags.fold_case")
	}
	if v.IsSet("search.base_url") {
		cfg.Search.BaseURL = v.GetString("search.base_url")
	}
	if v.IsSet("search.timeout") {
		cfg.Search.Timeout = v.GetDuration("search.timeout")
	}
}
