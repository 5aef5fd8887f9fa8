package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverlaysSetVariables(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("HTTP_ADDRESS", "")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, "")

	assert.Equal(t, "postgres://env/db", cfg.DatabaseDSN)
	assert.Equal(t, "from-env", cfg.SecretKey)
	assert.Equal(t, 2*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, "memory", cfg.StorageBackend)
	// empty variables keep the previous value
	assert.Equal(t, ":3000", cfg.EndpointAddrHTTP)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("REDIS_ADDR=cache:6379\nLOG_LEVEL=debug\n"), 0o600))

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, path)

	// REDIS_ADDR is set but empty, so the .env value does not replace it.
	assert.Empty(t, cfg.RedisAddr)
	// variables already present win over the file
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParseEnv_MissingDotEnvIsIgnored(t *testing.T) {
	cfg := &Config{}
	require.NotPanics(t, func() { parseEnv(cfg, filepath.Join(t.TempDir(), "absent.env")) })
}

func TestParseEnv_BadDurationPanics(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "whenever")

	cfg := &Config{}
	require.Panics(t, func() { parseEnv(cfg, "") })
}
