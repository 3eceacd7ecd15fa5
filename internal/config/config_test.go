package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "moviedb.sqlite", cfg.DatabasePath)
	assert.Equal(t, "imdb_top_1000.csv", cfg.CatalogPath)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5, cfg.LoginAttempts)
	assert.Equal(t, 12*time.Second, cfg.LoginRefill)
	assert.False(t, cfg.ImportLenient)
	assert.Empty(t, cfg.LogFile)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestLoad_GeneratesSessionSecret(t *testing.T) {
	a, err := Load()
	require.NoError(t, err)
	b, err := Load()
	require.NoError(t, err)

	assert.Len(t, a.SessionSecret, 64)
	assert.NotEqual(t, a.SessionSecret, b.SessionSecret)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	secret := strings.Repeat("s", 40)
	t.Setenv("DATABASE_PATH", "/tmp/movies.db")
	t.Setenv("CATALOG_PATH", "/tmp/top.xlsx")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("SESSION_SECRET", secret)
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("LOGIN_ATTEMPTS", "3")
	t.Setenv("LOGIN_REFILL", "1m")
	t.Setenv("IMPORT_LENIENT", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/tmp/moviedb.log")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/movies.db", cfg.DatabasePath)
	assert.Equal(t, "/tmp/top.xlsx", cfg.CatalogPath)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, secret, cfg.SessionSecret)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.LoginAttempts)
	assert.Equal(t, time.Minute, cfg.LoginRefill)
	assert.True(t, cfg.ImportLenient)
	assert.Equal(t, "/tmp/moviedb.log", cfg.LogFile)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bcrypt cost too low", "BCRYPT_COST", "3"},
		{"bcrypt cost too high", "BCRYPT_COST", "15"},
		{"bcrypt cost not a number", "BCRYPT_COST", "high"},
		{"short secret", "SESSION_SECRET", "tooshort"},
		{"bad ttl", "SESSION_TTL", "forever"},
		{"negative ttl", "SESSION_TTL", "-1h"},
		{"zero attempts", "LOGIN_ATTEMPTS", "0"},
		{"bad log level", "LOG_LEVEL", "loud"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
