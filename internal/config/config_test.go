package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/skillshare")
	t.Setenv("ENV", "")
	t.Setenv("STORE", "")
	t.Setenv("PROVIDER_TIMEOUT", "")
	t.Setenv("PROVIDER_RATE_PER_SEC", "")
	t.Setenv("HEALTH_CHECK_INTERVAL", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, StorePostgres, cfg.Store)
	require.Equal(t, 10*time.Second, cfg.Google.Timeout)
	require.Equal(t, 5.0, cfg.Google.RatePerSec)
	require.Equal(t, 15*time.Minute, cfg.HealthCheckInterval)
}

func TestFromEnvMemoryStoreNeedsNoDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("STORE", StoreMemory)
	t.Setenv("PROVIDER_TIMEOUT", "3s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, cfg.Google.Timeout)
}

func TestFromEnvErrors(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("STORE", "")
	_, err := FromEnv()
	require.Error(t, err)

	t.Setenv("STORE", "redis")
	_, err = FromEnv()
	require.Error(t, err)

	t.Setenv("STORE", StoreMemory)
	t.Setenv("PROVIDER_TIMEOUT", "soon")
	_, err = FromEnv()
	require.Error(t, err)

	t.Setenv("PROVIDER_TIMEOUT", "")
	t.Setenv("PROVIDER_RATE_PER_SEC", "-1")
	_, err = FromEnv()
	require.Error(t, err)
}
