// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all server settings. Both JWT secrets are required and
// must differ so the two token classes stay independent.
type Config struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	Address      string `env:"ADDRESS" envDefault:":8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"medimart.db"`

	JWTSecret     string        `env:"JWT_SECRET,required"`
	JWTExpiresIn  time.Duration `env:"JWT_EXPIRES_IN" envDefault:"15m"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET,required"`
	// 8760h = one year
	RefreshExpiresIn time.Duration `env:"REFRESH_TOKEN_EXPIRES_IN" envDefault:"8760h"`

	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

// New parses configuration from environment variables.
func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.JWTSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("JWT_SECRET and REFRESH_TOKEN_SECRET must differ")
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in production mode.
// Controls the Secure attribute of the refresh cookie.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
