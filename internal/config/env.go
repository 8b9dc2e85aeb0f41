package config

import (
	"os"
	"strconv"
)

// Environment variables read by FromEnv
const (
	EnvPort      = "RESUME_FITTER_PORT"
	EnvPage      = "RESUME_FITTER_PAGE"
	EnvFill      = "RESUME_FITTER_FILL_FRACTION"
	EnvRateLimit = "RESUME_FITTER_RATE_LIMIT"
	EnvCacheTTL  = "RESUME_FITTER_CACHE_TTL"
)

// FromEnv returns base with any values set in the environment applied on top.
// Unparseable numbers are ignored.
func FromEnv(base Config) Config {
	result := base

	if v := os.Getenv(EnvPage); v != "" {
		result.Page = v
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		result.CacheTTL = v
	}
	if v, ok := envInt(EnvPort); ok {
		result.Port = v
	}
	if v, ok := envInt(EnvRateLimit); ok {
		result.RateLimitPerMinute = v
	}
	if v := os.Getenv(EnvFill); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			result.FillFraction = f
		}
	}

	return result
}

func envInt(key string) (int, bool) {
	value := os.Getenv(key)
	if value == "" {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}
