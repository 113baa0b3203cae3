// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds the blockworld server configuration
type Config struct {
	// ListenAddr is the address the admin API listens on
	ListenAddr string `env:"BLOCKWORLD_ADDR" envDefault:":8080"`

	// StorageType selects the player-record backend ("memory" or "redis")
	StorageType string `env:"BLOCKWORLD_STORAGE" envDefault:"memory"`

	// RedisURL is required when StorageType is "redis"
	RedisURL string `env:"BLOCKWORLD_REDIS_URL" envDefault:"redis://localhost:6379"`

	// CommandPrefix marks chat messages as commands
	CommandPrefix string `env:"BLOCKWORLD_COMMAND_PREFIX" envDefault:"/"`

	// APITokenHash is a bcrypt hash of the admin API bearer token.
	// Empty disables API authentication.
	APITokenHash string `env:"BLOCKWORLD_API_TOKEN_HASH"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `env:"BLOCKWORLD_LOG_LEVEL" envDefault:"info"`

	// ServerName and OwnerName configure the loopback console used
	// when no real control transport is wired in
	ServerName string `env:"BLOCKWORLD_SERVER_NAME" envDefault:"blockworld"`
	OwnerName  string `env:"BLOCKWORLD_OWNER"`
}

// Load reads configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.StorageType != "memory" && cfg.StorageType != "redis" {
		return Config{}, fmt.Errorf("invalid BLOCKWORLD_STORAGE %q: must be 'memory' or 'redis'", cfg.StorageType)
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SlogLevel maps the configured log level onto slog's levels
func (c Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid BLOCKWORLD_LOG_LEVEL %q", c.LogLevel)
	}
}
