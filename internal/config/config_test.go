package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/qrfolio_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "https://api.qrserver.com/v1/create-qr-code/", cfg.QRAPIBaseURL)
	assert.Equal(t, 500, cfg.BulkFetchDelayMS)
	assert.Equal(t, 10, cfg.RateLimitRPS)
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/qrfolio_test")
	t.Setenv("PORT", "9090")
	t.Setenv("BULK_FETCH_DELAY_MS", "250")
	t.Setenv("PUBLIC_ORIGIN", "https://qrfolio.app")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 250, cfg.BulkFetchDelayMS)
	assert.Equal(t, "https://qrfolio.app", cfg.PublicOrigin)
}

func TestLoad_IgnoresBadIntValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/qrfolio_test")
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.RateLimitRPS)
}
