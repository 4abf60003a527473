package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
}

func TestNew_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, "medimart.db", cfg.DatabasePath)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiresIn)
	assert.Equal(t, 8760*time.Hour, cfg.RefreshExpiresIn)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.IsProduction())
}

func TestNew_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("ADDRESS", ":9090")
	t.Setenv("JWT_EXPIRES_IN", "5m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := New()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9090", cfg.Address)
	assert.Equal(t, 5*time.Minute, cfg.JWTExpiresIn)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestNew_MissingSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	_, err := New()
	assert.Error(t, err)
}

func TestNew_IdenticalSecretsRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "same")
	t.Setenv("REFRESH_TOKEN_SECRET", "same")

	_, err := New()
	assert.Error(t, err)
}
