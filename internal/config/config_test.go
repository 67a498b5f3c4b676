package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Database.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionLifetime)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Demo.ResetEnabled)
	assert.Equal(t, "0 * * * *", cfg.Demo.ResetSchedule)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("DEMO_RESET_ENABLED", "true")
	t.Setenv("AUTH_SESSION_LIFETIME", "1h")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.True(t, cfg.Demo.ResetEnabled)
	assert.Equal(t, time.Hour, cfg.Auth.SessionLifetime)
}
