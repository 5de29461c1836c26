package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/nest-monitor-service/pkg/common"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv(common.EnvKeyNestBackend, "memory")
	t.Setenv(common.EnvKeyNestDefaultRate, "2.5")
	t.Setenv(common.EnvKeyNestDefaultBurst, "4")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(common.EnvKeyFirebaseDatabaseURL, "")
	t.Setenv(common.EnvKeyFirebaseInstance, "")
	t.Setenv(common.EnvKeyFirebaseRegion, "")
	t.Setenv(common.EnvKeyNestCollection, "")
	t.Setenv(common.EnvKeyNestHttpHostPort, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, 2.5, cfg.DefaultRate)
	assert.Equal(t, 4, cfg.DefaultBurst)
	assert.Equal(t, DefaultHttpHostPort, cfg.HttpHostPort)
	assert.Equal(t, "/nests/{ownerId}/{deviceId}", cfg.TriggerPath())
	assert.Equal(t, DefaultFirebaseRegion, cfg.Firebase.Region)
	assert.Equal(t,
		"https://smartshell-ad097-default-rtdb.asia-southeast1.firebasedatabase.app",
		cfg.Firebase.DatabaseURL)
}

func TestLoadDatabaseURL(t *testing.T) {
	setRequiredEnv(t)

	{
		t.Setenv(common.EnvKeyFirebaseDatabaseURL, "")
		t.Setenv(common.EnvKeyFirebaseInstance, "demo-rtdb")
		t.Setenv(common.EnvKeyFirebaseRegion, "us-central1")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "https://demo-rtdb.firebaseio.com", cfg.Firebase.DatabaseURL)
	}

	{
		t.Setenv(common.EnvKeyFirebaseDatabaseURL, "http://127.0.0.1:9000?ns=demo")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:9000?ns=demo", cfg.Firebase.DatabaseURL)
	}
}

func TestLoad_EdgeCases(t *testing.T) {
	{
		setRequiredEnv(t)
		t.Setenv(common.EnvKeyNestBackend, "postgres")
		_, err := Load()
		require.Error(t, err)
	}

	{
		setRequiredEnv(t)
		t.Setenv(common.EnvKeyNestDefaultRate, "fast")
		_, err := Load()
		require.Error(t, err)
	}

	{
		setRequiredEnv(t)
		t.Setenv(common.EnvKeyNestDefaultBurst, "1.5")
		_, err := Load()
		require.Error(t, err)
	}
}
