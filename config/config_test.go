package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, "https://cashier-api.faizlzm.com/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "cashier.db", cfg.Storage.Path)
	assert.Equal(t, 24*time.Hour, cfg.Cache.ProductMaxAge)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Encoding)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CASHIER_API_URL", "http://localhost:9000/api")
	t.Setenv("CASHIER_API_TIMEOUT", "3s")
	t.Setenv("CASHIER_DB_PATH", "/tmp/pos.db")
	t.Setenv("CASHIER_PRODUCT_CACHE_MAX_AGE", "1h")
	t.Setenv("LOGGER_LEVEL", "debug")
	t.Setenv("LOGGER_DISABLE_CALLER", "true")

	cfg := LoadEnv()

	assert.Equal(t, "http://localhost:9000/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "/tmp/pos.db", cfg.Storage.Path)
	assert.Equal(t, time.Hour, cfg.Cache.ProductMaxAge)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.Logger.DisableCaller)
}

func TestLoadEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("CASHIER_API_TIMEOUT", "soon")
	t.Setenv("LOGGER_DISABLE_STACKTRACE", "maybe")

	cfg := LoadEnv()

	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.Logger.DisableStacktrace)
}
