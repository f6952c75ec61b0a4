package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "caterflow-backend", cfg.App.Name)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowOrigins)
		assert.Equal(t, "contracts", cfg.Storage.Bucket)
		assert.Equal(t, "Los Angeles", cfg.Weather.DefaultCity)
		assert.Equal(t, 15*time.Minute, cfg.Weather.CacheTTL)
		assert.Equal(t, "0 9 * * *", cfg.Reminders.Schedule)
		assert.Equal(t, 7, cfg.Reminders.WindowDays)
		assert.False(t, cfg.Twilio.Enabled())
	})

	t.Run("prefixed env vars override defaults", func(t *testing.T) {
		t.Setenv("CATERFLOW_APP_PORT", "9090")
		t.Setenv("CATERFLOW_CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
		t.Setenv("CATERFLOW_WEATHER_CACHE_TTL", "2m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
		assert.Equal(t, 2*time.Minute, cfg.Weather.CacheTTL)
	})

	t.Run("legacy env names still work", func(t *testing.T) {
		t.Setenv("DB_URL", "postgres://localhost/caterflow")
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("JWT_EXPIRY_HOURS", "48")
		t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
		t.Setenv("TWILIO_AUTH_TOKEN", "tok")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "postgres://localhost/caterflow", cfg.Database.URL)
		assert.Equal(t, "s3cret", cfg.JWT.Secret)
		assert.Equal(t, 48*time.Hour, cfg.JWT.Expiry)
		assert.True(t, cfg.Twilio.Enabled())
		assert.NoError(t, cfg.Validate())
	})

	t.Run("prefixed name wins over legacy name", func(t *testing.T) {
		t.Setenv("DB_URL", "postgres://legacy")
		t.Setenv("CATERFLOW_DATABASE_URL", "postgres://new")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "postgres://new", cfg.Database.URL)
	})
}

func TestSettingsValidate(t *testing.T) {
	cfg := &Settings{}
	assert.Error(t, cfg.Validate())

	cfg.Database.URL = "postgres://x"
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "secret"
	assert.NoError(t, cfg.Validate())
}
