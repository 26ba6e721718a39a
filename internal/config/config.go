// Package config loads service configuration from the environment. The
// server refuses to start without a signing secret; everything else has a
// sensible default.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable the service reads at startup.
type Config struct {
	// SecretKey signs and verifies bearer tokens. Required.
	SecretKey string `env:"POKEDEX_SECRET_KEY,notEmpty"`

	// SigningAlgorithm selects the HMAC variant for tokens.
	SigningAlgorithm string `env:"POKEDEX_SIGNING_ALGORITHM" envDefault:"HS256"`

	// TokenLifetimeMinutes is how long issued tokens stay valid.
	TokenLifetimeMinutes int `env:"POKEDEX_TOKEN_LIFETIME_MINUTES" envDefault:"1440"`

	// DatabaseURL is the sqlite database path.
	DatabaseURL string `env:"POKEDEX_DATABASE_URL" envDefault:"./pokedex.db"`

	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `env:"POKEDEX_LISTEN_ADDR" envDefault:":8080"`

	// AllowedOrigins is the CORS allow-list. Empty means same-origin only.
	AllowedOrigins []string `env:"POKEDEX_ALLOWED_ORIGINS" envSeparator:","`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"POKEDEX_LOG_LEVEL" envDefault:"info"`

	// PokeAPIBaseURL overrides the upstream Pokemon data service.
	PokeAPIBaseURL string `env:"POKEDEX_POKEAPI_BASE_URL"`

	// PokeAPITimeout bounds each upstream call.
	PokeAPITimeout time.Duration `env:"POKEDEX_POKEAPI_TIMEOUT" envDefault:"10s"`
}

var validAlgorithms = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// Load parses the environment into a Config and validates it. A missing
// secret key or unknown algorithm is fatal to the caller.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	cfg.SigningAlgorithm = strings.ToUpper(cfg.SigningAlgorithm)
	if !validAlgorithms[cfg.SigningAlgorithm] {
		return nil, fmt.Errorf("unsupported signing algorithm %q, want HS256, HS384 or HS512", cfg.SigningAlgorithm)
	}
	if cfg.TokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %d", cfg.TokenLifetimeMinutes)
	}

	return &cfg, nil
}

// TokenLifetime returns the configured lifetime as a duration.
func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// SlogLevel maps the configured level string onto slog's levels,
// defaulting to info for anything unrecognized.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
