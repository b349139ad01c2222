package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/cinescope/browse"
	"github.com/s0up4200/cinescope/tmdb"
)

// EnvPrefix prefixes every environment override, e.g. CINESCOPE_TMDB_API_KEY
const EnvPrefix = "CINESCOPE"

// Load loads the configuration from file and environment. A missing config
// file is only an error when configPath was given explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("tmdb.api_key", EnvPrefix+"_TMDB_API_KEY", "TMDB_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "cinescope"))
		}

		// Check /etc
		v.AddConfigPath("/etc/cinescope/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TMDB defaults
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.base_url", tmdb.DefaultBaseURL)
	v.SetDefault("tmdb.image_base_url", tmdb.DefaultImageBaseURL)
	v.SetDefault("tmdb.language", "en-US")
	v.SetDefault("tmdb.timeout", tmdb.DefaultTimeout)
	v.SetDefault("tmdb.rate_limit", 20)

	// Browse defaults
	v.SetDefault("browse.movie_category", browse.MovieResource.Default)
	v.SetDefault("browse.tv_category", browse.TVResource.Default)
	v.SetDefault("browse.search_kind", string(tmdb.KindMovie))
	v.SetDefault("browse.poster_size", tmdb.SizeW185)

	// Filter defaults
	v.SetDefault("filter.default_expression", "")

	// Radarr defaults
	v.SetDefault("radarr.enabled", false)
	v.SetDefault("radarr.url", "http://localhost:7878")
	v.SetDefault("radarr.api_key", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.file", "")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.TMDB.APIKey) == "" || cfg.TMDB.APIKey == "your-api-key-here" {
		return fmt.Errorf("tmdb.api_key must be set to a valid API key (or set TMDB_API_KEY)")
	}

	if cfg.TMDB.RateLimit < 0 {
		return fmt.Errorf("tmdb.rate_limit must not be negative: %v", cfg.TMDB.RateLimit)
	}

	if cfg.TMDB.Timeout < 0 {
		return fmt.Errorf("tmdb.timeout must not be negative: %s", cfg.TMDB.Timeout)
	}

	if _, ok := browse.MovieResource.Lookup(cfg.Browse.MovieCategory); !ok {
		return fmt.Errorf("invalid browse.movie_category: %s (valid: %s)",
			cfg.Browse.MovieCategory, strings.Join(browse.MovieResource.CategoryIDs(), ", "))
	}

	if _, ok := browse.TVResource.Lookup(cfg.Browse.TVCategory); !ok {
		return fmt.Errorf("invalid browse.tv_category: %s (valid: %s)",
			cfg.Browse.TVCategory, strings.Join(browse.TVResource.CategoryIDs(), ", "))
	}

	kind, err := tmdb.ParseKind(cfg.Browse.SearchKind)
	if err != nil {
		return fmt.Errorf("invalid browse.search_kind: %s (valid: movie, tv, multi)", cfg.Browse.SearchKind)
	}
	cfg.Browse.SearchKind = string(kind)

	if !tmdb.ValidImageSize(cfg.Browse.PosterSize) {
		return fmt.Errorf("invalid browse.poster_size: %s", cfg.Browse.PosterSize)
	}

	for name, preset := range cfg.Filter.Presets {
		if strings.TrimSpace(preset.Expression) == "" {
			return fmt.Errorf("filter.presets.%s.expression is required", name)
		}
	}

	if cfg.Radarr.Enabled {
		if cfg.Radarr.URL == "" {
			return fmt.Errorf("radarr.url is required when radarr is enabled")
		}
		if cfg.Radarr.APIKey == "" {
			return fmt.Errorf("radarr.api_key is required when radarr is enabled")
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
