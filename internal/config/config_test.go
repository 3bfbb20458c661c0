package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DSN", "postgres://localhost/contracts")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("UNIDOC_LICENSE_API_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 7090, cfg.HTTP.Port)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 12*time.Hour, cfg.Auth.AccessTTL)
	assert.Equal(t, 50, cfg.Documents.HistoryLimit)
	assert.True(t, cfg.Registry.UseMock)
	assert.False(t, cfg.Registry.DataNewton.Enabled())
	assert.Equal(t, "https://api.datanewton.ru", cfg.Registry.DataNewton.BaseURL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DSN", "postgres://localhost/contracts")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("UNIDOC_LICENSE_API_KEY", "key")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("DADATA_API_KEY", "token")
	t.Setenv("REGISTRY_INTERVAL", "1s")
	t.Setenv("HISTORY_LIMIT", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.True(t, cfg.Registry.DaData.Enabled())
	assert.Equal(t, time.Second, cfg.Registry.Interval)
	assert.Equal(t, 10, cfg.Documents.HistoryLimit)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("UNIDOC_LICENSE_API_KEY", "key")

	_, err := Load()
	assert.EqualError(t, err, "DB_DSN is required")

	t.Setenv("DB_DSN", "postgres://localhost/contracts")
	t.Setenv("JWT_ACCESS_SECRET", "")
	_, err = Load()
	assert.EqualError(t, err, "JWT_ACCESS_SECRET is required")
}

func TestLoadRequiresLicenseKey(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DSN", "postgres://localhost/contracts")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("UNIDOC_LICENSE_API_KEY", "")

	_, err := Load()
	assert.EqualError(t, err, "UNIDOC_LICENSE_API_KEY is required")
}
