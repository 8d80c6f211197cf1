// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct. A '.env' file in the working directory, when present, is loaded
first so local development does not need exported variables.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components through
their constructors.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/mdrss/internal/platform/validate"
)

// # Configuration Schema

// Config holds all runtime configuration for MDRSS.
type Config struct {

	// Server settings
	ServerHost  string `env:"SERVER_HOST"`
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// URLPrefix mounts every route under a sub-path (e.g. "/mdrss").
	URLPrefix string `env:"URL_PREFIX"`

	// PublicBaseURL is prepended to the request URI to build feed links and ids.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Upstream API (MangaDex)
	MangaDexBaseURL   string  `env:"MANGADEX_BASE_URL"   envDefault:"https://api.mangadex.org"`
	MangaDexUserAgent string  `env:"MANGADEX_USER_AGENT" envDefault:"mdrss/0.1.0"`
	MangaDexRateLimit float64 `env:"MANGADEX_RATE_LIMIT" envDefault:"4"`

	// Ingestion loop
	FetchEnabled  bool          `env:"FETCH_ENABLED"  envDefault:"true"`
	FetchInterval time.Duration `env:"FETCH_INTERVAL" envDefault:"60s"`
	FetchLimit    int           `env:"FETCH_LIMIT"    envDefault:"50"`
	FetchLookback time.Duration `env:"FETCH_LOOKBACK" envDefault:"48h"`

	// Feed rendering cache
	FeedCacheTTL time.Duration `env:"FEED_CACHE_TTL" envDefault:"60s"`

	// Error tracking (Sentry). An empty DSN disables delivery.
	SentryDSN              string  `env:"SENTRY_DSN"`
	SentryTracesSampleRate float64 `env:"SENTRY_TRACES_SAMPLE_RATE" envDefault:"1.0"`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// A missing .env file is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	cfg.URLPrefix = strings.TrimRight(cfg.URLPrefix, "/")
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Validate checks cross-field and range constraints the env tags cannot express.
func (c *Config) Validate() error {
	v := &validate.Validator{}

	v.OneOf("ENVIRONMENT", c.Environment, "development", "staging", "production").
		URL("PUBLIC_BASE_URL", c.PublicBaseURL).
		URL("MANGADEX_BASE_URL", c.MangaDexBaseURL).
		Required("MANGADEX_USER_AGENT", c.MangaDexUserAgent).
		Range("FETCH_LIMIT", c.FetchLimit, 1, 100).
		Custom("FETCH_INTERVAL", c.FetchInterval < time.Second, "Must be at least 1s").
		Custom("FETCH_LOOKBACK", c.FetchLookback <= 0, "Must be positive").
		Custom("MANGADEX_RATE_LIMIT", c.MangaDexRateLimit <= 0, "Must be positive").
		Custom("FEED_CACHE_TTL", c.FeedCacheTTL < 0, "Must not be negative").
		Custom("SENTRY_TRACES_SAMPLE_RATE", c.SentryTracesSampleRate < 0 || c.SentryTracesSampleRate > 1, "Must be between 0 and 1").
		Custom("URL_PREFIX", c.URLPrefix != "" && !strings.HasPrefix(c.URLPrefix, "/"), "Must start with '/'")

	return v.Err()
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
