// Package config loads runtime settings from a config file and the
// environment.
//
// Settings resolve in viper's usual order: explicit environment
// variables (FILMLENS_* with dots mapped to underscores), then an
// optional filmlens.yaml, then built-in defaults. API keys have no
// default and must come from one of the first two.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the fully resolved runtime configuration.
type Config struct {
	OMDb struct {
		APIKey  string
		BaseURL string
	}
	TMDB struct {
		APIKey  string
		BaseURL string
	}
	Cache struct {
		TTL        time.Duration
		MaxEntries int
	}
	Reviews struct {
		TruncateLength int
	}
	Providers struct {
		Timeout time.Duration
	}
	Server struct {
		Addr string
	}
}

// Load reads configuration from the environment and an optional
// filmlens.yaml in the working directory or $HOME/.config/filmlens.
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("FILMLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("filmlens")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/filmlens")

	v.SetDefault("omdb.base_url", "https://www.omdbapi.com/")
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.max_entries", 100)
	v.SetDefault("reviews.truncate_length", 200)
	v.SetDefault("providers.timeout", "5s")
	v.SetDefault("server.addr", ":8080")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	cfg.OMDb.APIKey = v.GetString("omdb.api_key")
	cfg.OMDb.BaseURL = v.GetString("omdb.base_url")
	cfg.TMDB.APIKey = v.GetString("tmdb.api_key")
	cfg.TMDB.BaseURL = v.GetString("tmdb.base_url")
	cfg.Cache.TTL = v.GetDuration("cache.ttl")
	cfg.Cache.MaxEntries = v.GetInt("cache.max_entries")
	cfg.Reviews.TruncateLength = v.GetInt("reviews.truncate_length")
	cfg.Providers.Timeout = v.GetDuration("providers.timeout")
	cfg.Server.Addr = v.GetString("server.addr")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.OMDb.APIKey == "" {
		return errors.New("config: omdb.api_key is required (FILMLENS_OMDB_API_KEY)")
	}
	if c.TMDB.APIKey == "" {
		return errors.New("config: tmdb.api_key is required (FILMLENS_TMDB_API_KEY)")
	}
	return nil
}
