package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
// Network profiles are compiled in (see internal/network) and are not configurable here.
type Config struct {
	Port     int    `envconfig:"NETBALANCE_PORT" default:"8080"`
	LogLevel string `envconfig:"NETBALANCE_LOG_LEVEL" default:"info"`
	LogDir   string `envconfig:"NETBALANCE_LOG_DIR" default:"./logs"`

	DefaultNetwork string `envconfig:"NETBALANCE_DEFAULT_NETWORK" default:"ethereum"`
	RPCRateLimit   int    `envconfig:"NETBALANCE_RPC_RATE_LIMIT" default:"10"`
}

// Load reads configuration from .env file (if present) then from environment variables.
// Environment variables override .env values.
func Load() (*Config, error) {
	// godotenv does NOT override already-set env vars, so real environment
	// variables take precedence over .env values.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			slog.Warn("failed to load .env file", "file", ".env", "error", err)
		} else {
			slog.Info("loaded .env file", "file", ".env")
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration values for correctness.
// Whether DefaultNetwork names a registered network is checked by the caller
// against the registry.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port must be 1-65535, got %d", ErrInvalidConfig, c.Port)
	}
	if c.RPCRateLimit < 1 {
		return fmt.Errorf("%w: rpc rate limit must be positive, got %d", ErrInvalidConfig, c.RPCRateLimit)
	}
	if strings.TrimSpace(c.DefaultNetwork) == "" {
		return fmt.Errorf("%w: default network must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
