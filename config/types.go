package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Browse  BrowseConfig  `mapstructure:"browse"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Radarr  RadarrConfig  `mapstructure:"radarr"`
	Logging LoggingConfig `mapstructure:"logging"`

	// File is the config file that was read, empty when none was found
	File string `mapstructure:"-"`
}

// TMDBConfig holds TMDB API connection details
type TMDBConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Language     string        `mapstructure:"language"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RateLimit    float64       `mapstructure:"rate_limit"`
}

// BrowseConfig holds the starting state of the browsing screens
type BrowseConfig struct {
	MovieCategory string `mapstructure:"movie_category"`
	TVCategory    string `mapstructure:"tv_category"`
	SearchKind    string `mapstructure:"search_kind"`
	PosterSize    string `mapstructure:"poster_size"`
}

// FilterConfig contains the default expression and named presets
type FilterConfig struct {
	DefaultExpression string                  `mapstructure:"default_expression"`
	Presets           map[string]PresetConfig `mapstructure:"presets"`
}

// PresetConfig is a named filter expression
type PresetConfig struct {
	Expression  string `mapstructure:"expression"`
	Description string `mapstructure:"description"`
}

// RadarrConfig holds Radarr API connection details
type RadarrConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
	File   string `mapstructure:"file"`
}

// Expressions returns preset name to expression
func (f FilterConfig) Expressions() map[string]string {
	out := make(map[string]string, len(f.Presets))
	for name, p := range f.Presets {
		out[name] = p.Expression
	}
	return out
}
