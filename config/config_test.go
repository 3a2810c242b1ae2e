package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("STORE", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, 180, cfg.HotWindowMinutes)
	assert.Equal(t, time.Minute, cfg.LifecycleInterval)
	assert.False(t, cfg.Release())
}

func TestLoadPicksMongoWhenURISet(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MONGODB_URI", "mongodb://127.0.0.1:27017")
	t.Setenv("STORE", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "mongo", cfg.Store)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadReadsDotenv(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE", "")
	t.Setenv("MONGODB_URI", "")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HOT_WINDOW_MINUTES=90\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("HOT_WINDOW_MINUTES") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.HotWindowMinutes)
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE", "redis")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestLoadRejectsNonPositiveRateLimit(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE", "")
	t.Setenv("MONGODB_URI", "")

	for _, v := range []string{"0", "-5"} {
		t.Setenv("RATE_LIMIT_PER_MINUTE", v)
		_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		require.Error(t, err, v)
		assert.Contains(t, err.Error(), "RATE_LIMIT_PER_MINUTE")
	}
}
