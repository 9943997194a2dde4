package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizsync/bizsync/internal/conflict"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
addr: ":9090"
database:
  path: /var/lib/bizsync/server.db
auth:
  jwt_secret: super-secret
  access_token_ttl: 1h
sync:
  conflict_strategy: merge
log:
  level: debug
  file: /var/log/bizsync/server.log
  max_size_mb: 50
limits:
  rate: 200
  window: 30s
  login_rate: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/var/lib/bizsync/server.db", cfg.Database.Path)
	assert.Equal(t, "super-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, conflict.StrategyMerge, cfg.Strategy())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 50, cfg.Log.MaxSizeMB)
	assert.Equal(t, 200, cfg.Limits.Rate)
	assert.Equal(t, 30*time.Second, cfg.Limits.Window)
	assert.Equal(t, 5, cfg.Limits.LoginRate)
}

func TestLoad_DefaultsFilled(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, DefaultAccessTokenTTL, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, conflict.DefaultStrategy, cfg.Strategy())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultRateLimit, cfg.Limits.Rate)
	assert.Equal(t, DefaultRateWindow, cfg.Limits.Window)
	assert.Equal(t, DefaultLoginRateLimit, cfg.Limits.LoginRate)
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, `addr: ":9090"`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
addr: ":9090"
auth:
  jwt_secret: from-file
`)

	t.Setenv("BIZSYNC_JWT_SECRET", "from-env")
	t.Setenv("BIZSYNC_ADDR", ":7070")
	t.Setenv("BIZSYNC_CONFLICT_STRATEGY", "server_wins")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, conflict.StrategyServerWins, cfg.Strategy())
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv("BIZSYNC_JWT_SECRET", "env-only")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-only", cfg.Auth.JWTSecret)
	assert.Equal(t, DefaultAddr, cfg.Addr)
}

func TestLoad_InvalidStrategy(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: s
sync:
  conflict_strategy: coin_flip
`)

	_, err := Load(path)
	require.ErrorIs(t, err, conflict.ErrUnknownStrategy)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "addr: [broken")

	_, err := Load(path)
	require.Error(t, err)
}
