// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all application configuration values loaded from the environment.
// It is built once at process start and treated as immutable afterwards; every
// component that talks to the Mosaic API receives it (or values derived from
// it) explicitly.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Mosaic CMS API
	APIURL           string // base URL, e.g. http://localhost:3000/api/v1
	APIKey           string // optional; empty means anonymous/public access
	SiteDomain       string
	AutoDetectRoutes bool

	// Upstream HTTP behavior
	HTTPTimeout time.Duration

	// Valkey (Redis-compatible page cache); optional — empty host disables it
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A missing API key is accepted and
// treated as anonymous access. The API URL is not validated for
// well-formedness here; a bad URL surfaces as a fetch error at request time.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		APIURL:           envOrDefault("NEXT_PUBLIC_MOSAIC_API_URL", "http://localhost:3000/api/v1"),
		APIKey:           os.Getenv("MOSAIC_API_KEY"),
		SiteDomain:       envOrDefault("MOSAIC_SITE_DOMAIN", "example.com"),
		AutoDetectRoutes: os.Getenv("MOSAIC_AUTODETECT_ROUTES") == "true",

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
	}

	timeout, err := time.ParseDuration(envOrDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CacheEnabled returns true when a Valkey host is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
