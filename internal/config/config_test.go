package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSecretKey(t *testing.T) {
	t.Setenv("POKEDEX_SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POKEDEX_SECRET_KEY", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "HS256", cfg.SigningAlgorithm)
	assert.Equal(t, 24*time.Hour, cfg.TokenLifetime())
	assert.Equal(t, "./pokedex.db", cfg.DatabaseURL)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.PokeAPITimeout)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POKEDEX_SECRET_KEY", "test-secret")
	t.Setenv("POKEDEX_SIGNING_ALGORITHM", "hs512")
	t.Setenv("POKEDEX_TOKEN_LIFETIME_MINUTES", "60")
	t.Setenv("POKEDEX_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "HS512", cfg.SigningAlgorithm)
	assert.Equal(t, time.Hour, cfg.TokenLifetime())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadRejectsBadAlgorithm(t *testing.T) {
	t.Setenv("POKEDEX_SECRET_KEY", "test-secret")
	t.Setenv("POKEDEX_SIGNING_ALGORITHM", "RS256")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported signing algorithm")
}

func TestLoadRejectsNonPositiveLifetime(t *testing.T) {
	t.Setenv("POKEDEX_SECRET_KEY", "test-secret")
	t.Setenv("POKEDEX_TOKEN_LIFETIME_MINUTES", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"":      slog.LevelInfo,
	}
	for in, want := range tests {
		cfg := &Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), "level %q", in)
	}
}
