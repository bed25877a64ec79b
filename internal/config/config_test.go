package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8190), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DefaultSessionDatabasePath, cfg.Database.Path)
	assert.Equal(t, 24*time.Hour, cfg.Session.Lifetime)
	assert.True(t, cfg.Session.SecureCookies)
	assert.True(t, cfg.Session.CSRFEnabled)
	assert.Equal(t, DefaultTruncateLength, cfg.RichText.TruncateLength)
	assert.True(t, cfg.Sweep.Enabled)
	assert.Equal(t, "*/10 * * * *", cfg.Sweep.Schedule)
	assert.Equal(t, time.Hour, cfg.Sweep.IdleTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_SECURE_COOKIES", "false")
	t.Setenv("RICHTEXT_TRUNCATE_LENGTH", "80")
	t.Setenv("SWEEP_IDLE_TTL", "15m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.False(t, cfg.Session.SecureCookies)
	assert.Equal(t, 80, cfg.RichText.TruncateLength)
	assert.Equal(t, 15*time.Minute, cfg.Sweep.IdleTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
}
