//go:build unit
// +build unit

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Wetooa/mentara-sub026/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		settings *config.LoggerSettings
		wantErr  string
	}{
		{
			name:     "console",
			settings: &config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeConsole},
		},
		{
			name:     "console with redaction",
			settings: &config.LoggerSettings{LogLevel: config.LogLevelDebug, LogType: config.LogTypeConsole, RedactKeys: config.DefaultRedactKeys},
		},
		{
			name:    "nil settings",
			wantErr: "settings are required",
		},
		{
			name:     "invalid level",
			settings: &config.LoggerSettings{LogLevel: "verbose", LogType: config.LogTypeConsole},
			wantErr:  "invalid config",
		},
		{
			name:     "blank redact key",
			settings: &config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeConsole, RedactKeys: []string{"password", ""}},
			wantErr:  "invalid config",
		},
		{
			name:     "file without rotation",
			settings: &config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeFile, FilePath: "/tmp/mentara.log"},
			wantErr:  "invalid config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.settings, config.ServiceRestAPI)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, log)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestNew_FileSinkStampsServiceAndRedacts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")
	log, err := New(&config.LoggerSettings{
		LogLevel:   config.LogLevelInfo,
		LogType:    config.LogTypeFile,
		FilePath:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		RedactKeys: []string{"Token", "answers"},
	}, config.ServiceRestAPI)
	require.NoError(t, err)

	log.With("user_id", "client-1", "token", "secret-refresh-token").Info("session refreshed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &record))
	assert.Equal(t, "session refreshed", record["msg"])
	assert.Equal(t, config.ServiceRestAPI, record["service"])
	assert.Equal(t, "client-1", record["user_id"])
	assert.Equal(t, redactedValue, record["token"])
	assert.NotContains(t, string(data), "secret-refresh-token")
}

func TestHandlerOptions_Redaction(t *testing.T) {
	var buf bytes.Buffer
	log := newConsoleLogger(&buf, handlerOptions(config.LogLevelInfo, config.DefaultRedactKeys))

	log.With("password", "hunter2", "content", "I have been feeling low", "meeting_id", "m-1").Info("message stored")

	output := buf.String()
	assert.NotContains(t, output, "hunter2")
	assert.NotContains(t, output, "feeling low")
	assert.Contains(t, output, "password="+redactedValue)
	assert.Contains(t, output, "meeting_id=m-1")
}

func TestSetDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	log := newConsoleLogger(&buf, handlerOptions(config.LogLevelInfo, []string{"authorization"}))
	SetDefault(log.With("service", config.ServiceCLI))

	slog.Info("seeding finished", "authorization", "Bearer abc")

	output := buf.String()
	assert.Contains(t, output, "seeding finished")
	assert.Contains(t, output, "service="+config.ServiceCLI)
	assert.NotContains(t, output, "Bearer abc")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{config.LogLevelDebug, slog.LevelDebug},
		{config.LogLevelInfo, slog.LevelInfo},
		{config.LogLevelWarning, slog.LevelWarn},
		{config.LogLevelError, slog.LevelError},
		{config.LogLevelCritical, slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}
