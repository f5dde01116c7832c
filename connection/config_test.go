package connection

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HUB_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestLoadConfigDefaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "hub.db", cfg.Database.DSN)
	assert.Equal(t, time.Hour, cfg.JWT.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "media", cfg.Storage.MediaPrefix)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "0 7 * * *", cfg.Scheduler.Cron)

	assert.Error(t, cfg.JWT.Validate())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	isolateConfig(t)
	t.Setenv("HUB_SERVER_PORT", "9090")
	t.Setenv("HUB_DATABASE_DRIVER", "mysql")
	t.Setenv("HUB_JWT_ACCESS_TTL", "2h")
	t.Setenv("HUB_JWT_ACCESS_SECRET", "s1")
	t.Setenv("HUB_JWT_REFRESH_SECRET", "s2")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTTL)
	assert.NoError(t, cfg.JWT.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("redis:\n  enabled: true\n  addr: cache:6379\nai:\n  model: gpt-test\n"), 0o600))
	t.Setenv("HUB_CONFIG", path)
	t.Setenv("HUB_AI_MODEL", "gpt-env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, "gpt-env", cfg.AI.Model)
}

func TestLoadConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))
	t.Setenv("HUB_CONFIG", path)

	_, err := LoadConfig()
	assert.Error(t, err)
}
