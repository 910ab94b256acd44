package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.Cron.SweepInterval)
	assert.False(t, cfg.Cron.Enabled)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.Report.SweepTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_HOST", "db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CRON_ENABLED", "true")
	t.Setenv("CRON_SWEEP_INTERVAL", "15m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
	assert.True(t, cfg.Cron.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Cron.SweepInterval)
	assert.Equal(t, "postgres://postgres:pw@db:5432/securefront?sslmode=disable", cfg.DatabaseURL())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"bad port", map[string]string{"JWT_SECRET_KEY": "s", "APP_PORT": "http"}},
		{"bad duration", map[string]string{"JWT_SECRET_KEY": "s", "REPORT_TIMEOUT": "soon"}},
		{"unknown store", map[string]string{"JWT_SECRET_KEY": "s", "STORE_DRIVER": "sqlite"}},
		{"postgres without password", map[string]string{"JWT_SECRET_KEY": "s", "STORE_DRIVER": "postgres"}},
		{"mongo without uri", map[string]string{"JWT_SECRET_KEY": "s", "STORE_DRIVER": "mongo"}},
		{"bad token ttl", map[string]string{"JWT_SECRET_KEY": "s", "JWT_ACCESS_EXPIRATION_TIME": "1 day"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
