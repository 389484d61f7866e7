package testutil

import (
	"testing"

	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/stretchr/testify/require"
)

// SetupTestLogger returns a console logger at info level that masks the default redacted keys
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	log, err := logger.New(&config.LoggerSettings{
		LogLevel:   config.LogLevelInfo,
		LogType:    config.LogTypeConsole,
		RedactKeys: config.DefaultRedactKeys,
	}, "")
	require.NoError(t, err)
	return log
}
