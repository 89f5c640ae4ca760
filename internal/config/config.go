package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/raaga-player/raaga/internal/catalog"
)

type Config struct {
	Theme            string `koanf:"theme"`              // "dark" or "light"
	Icons            string `koanf:"icons"`              // "unicode" or "none"
	StreamQuality    string `koanf:"stream_quality"`     // "low" through "highest"
	SearchDebounceMS int    `koanf:"search_debounce_ms"` // delay before a search fires (default: 500)

	// Catalog API settings
	API APIConfig `koanf:"api"`
}

// APIConfig holds catalog API endpoint configuration.
type APIConfig struct {
	BaseURL      string   `koanf:"base_url"`      // primary endpoint, e.g. "https://saavn.dev"
	FallbackURLs []string `koanf:"fallback_urls"` // tried in order when the primary fails
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Theme != "light" {
		cfg.Theme = "dark"
	}
	if cfg.Icons != "none" {
		cfg.Icons = "unicode"
	}
	switch cfg.StreamQuality {
	case "low", "medium", "high", "very-high", "highest":
	default:
		cfg.StreamQuality = "high"
	}
	if cfg.SearchDebounceMS <= 0 {
		cfg.SearchDebounceMS = 500
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = catalog.DefaultBaseURL
	}
	cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")
	if len(cfg.API.FallbackURLs) == 0 {
		cfg.API.FallbackURLs = append([]string(nil), catalog.DefaultFallbackURLs...)
	}
	for i, u := range cfg.API.FallbackURLs {
		cfg.API.FallbackURLs[i] = strings.TrimSuffix(u, "/")
	}
}

// Quality returns the configured stream quality as a catalog tier.
func (c *Config) Quality() catalog.Quality {
	return catalog.ParseQuality(c.StreamQuality)
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/raaga/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "raaga", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}
