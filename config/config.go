package config

import (
	"fmt"
	"os"
	"rentvsbuy/utils/helpers"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	Port        string `env:"PORT" envDefault:"4000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	SentryDSN        string  `env:"SENTRY_DSN"`
	SentrySampleRate float64 `env:"SENTRY_SAMPLE_RATE" envDefault:"1.0"`

	RateLimitPerSecond float64 `env:"RATE_LIMIT_PER_SECOND" envDefault:"10"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" envDefault:"30"`

	CacheTTL             time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	CacheCleanupInterval time.Duration `env:"CACHE_CLEANUP_INTERVAL" envDefault:"30m"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load reads an optional .env file, from the working directory or its parent,
// and parses the environment into an AppConfig. Load runs before the logger
// exists, so a .env file that cannot be read is returned as an error.
func Load() (*AppConfig, error) {
	if err := loadDotenv(".env", "../.env"); err != nil {
		return nil, err
	}

	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Environment = helpers.NormalizeString(cfg.Environment)
	cfg.LogLevel = helpers.NormalizeString(cfg.LogLevel)

	if cfg.RateLimitPerSecond <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %v/s burst %d", cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	}
	return cfg, nil
}

// loadDotenv loads the first of paths that exists. Missing files are skipped.
func loadDotenv(paths ...string) error {
	for _, path := range paths {
		err := godotenv.Load(path)
		if err == nil {
			return nil
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// IsProduction reports whether the service runs in production.
func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}
