//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rest-app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestInitializeRestConfig_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
port: "9090"
environment: test
database:
  type: sqlite
  dsn: ":memory:"
auth:
  jwt_secret: "`+strings.Repeat("k", 40)+`"
  access_token_ttl: 30m
messaging:
  encryption_key: "`+strings.Repeat("0f", 32)+`"
`)

	cfg, err := InitializeRestConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, SqliteDbType, cfg.Database.Type)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, EventDriverMemory, cfg.Events.Driver)
	assert.Equal(t, "@every 15m", cfg.Scheduler.MeetingReminders)
	assert.Equal(t, 1000, cfg.Monitoring.MaxMetrics)
	assert.False(t, cfg.IsProduction())
}

func TestInitializeRestConfig_EnvOverride(t *testing.T) {
	path := writeConfigFile(t, `
environment: test
auth:
  jwt_secret: "`+strings.Repeat("k", 40)+`"
messaging:
  encryption_key: "`+strings.Repeat("0f", 32)+`"
`)
	t.Setenv("MENTARA_PORT", "7070")
	t.Setenv("MENTARA_ENVIRONMENT", "production")

	cfg, err := InitializeRestConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.True(t, cfg.IsProduction())
}

func TestInitializeRestConfig_InvalidSettings(t *testing.T) {
	path := writeConfigFile(t, `
environment: test
auth:
  jwt_secret: "too-short"
messaging:
  encryption_key: "`+strings.Repeat("0f", 32)+`"
`)

	_, err := InitializeRestConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid auth settings")
}

func TestInitializeRestConfig_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "port: [unterminated")

	_, err := InitializeRestConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
