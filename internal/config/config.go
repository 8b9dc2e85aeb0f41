// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-fitter/internal/layout"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Fitting
	Page         string  `json:"page,omitempty"`                                 // Page preset, resolved by layout.PageByName
	FillFraction float64 `json:"fill_fraction,omitempty" validate:"gte=0,lte=1"` // Share of the usable height to fill

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print the search trace

	// Server
	Port               int    `json:"port,omitempty" validate:"gte=0,lte=65535"`
	RateLimitPerMinute int    `json:"rate_limit_per_minute,omitempty" validate:"gte=0"` // Requests per client IP, 0 uses the default
	CacheTTL           string `json:"cache_ttl,omitempty"`                              // Go duration, e.g. "10m"
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Page:               layout.A4.Name,
		FillFraction:       layout.DefaultFillFraction,
		Port:               8080,
		RateLimitPerMinute: 120,
		CacheTTL:           "10m",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if _, err := layout.PageByName(c.Page); err != nil {
		return fmt.Errorf("config error: 'page' %w", err)
	}

	if c.CacheTTL != "" {
		if _, err := time.ParseDuration(c.CacheTTL); err != nil {
			return fmt.Errorf("config error: 'cache_ttl' is not a duration: %w", err)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Page == "" {
		result.Page = defaults.Page
	}
	if result.CacheTTL == "" {
		result.CacheTTL = defaults.CacheTTL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimitPerMinute == 0 {
		result.RateLimitPerMinute = defaults.RateLimitPerMinute
	}
	if result.FillFraction == 0 {
		result.FillFraction = defaults.FillFraction
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Geometry resolves the page preset
func (c *Config) Geometry() (layout.PageGeometry, error) {
	return layout.PageByName(c.Page)
}

// FitterOptions turns the fitting fields into layout options
func (c *Config) FitterOptions() ([]layout.Option, error) {
	page, err := c.Geometry()
	if err != nil {
		return nil, err
	}
	opts := []layout.Option{layout.WithGeometry(page)}
	if c.FillFraction > 0 {
		opts = append(opts, layout.WithFillFraction(c.FillFraction))
	}
	return opts, nil
}

// CacheDuration parses CacheTTL, falling back to ten minutes
func (c *Config) CacheDuration() time.Duration {
	if d, err := time.ParseDuration(c.CacheTTL); err == nil && d > 0 {
		return d
	}
	return 10 * time.Minute
}
