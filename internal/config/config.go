// Package config loads runtime settings from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains the application settings.
type Config struct {
	DatabasePath  string        `env:"DATABASE_PATH" envDefault:"moviedb.sqlite"`
	CatalogPath   string        `env:"CATALOG_PATH" envDefault:"imdb_top_1000.csv"`
	BcryptCost    int           `env:"BCRYPT_COST" envDefault:"12"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	LoginAttempts int           `env:"LOGIN_ATTEMPTS" envDefault:"5"`
	LoginRefill   time.Duration `env:"LOGIN_REFILL" envDefault:"12s"`
	ImportLenient bool          `env:"IMPORT_LENIENT" envDefault:"false"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"warn"`
	LogFile       string        `env:"LOG_FILE"`
}

// Load parses and validates the configuration. A random session secret is
// generated when none is set, so sessions do not outlive the process.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.SessionSecret = secret
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.LoginAttempts < 1 {
		return fmt.Errorf("LOGIN_ATTEMPTS must be at least 1, got %d", c.LoginAttempts)
	}
	if c.LoginRefill <= 0 {
		return fmt.Errorf("LOGIN_REFILL must be positive, got %s", c.LoginRefill)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LOG_LEVEL onto a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
