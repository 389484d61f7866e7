package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
)

const redactedValue = "[REDACTED]"

// New builds the logger described by settings. Records carry a "service" attribute when
// service is set, and the values of settings.RedactKeys are masked.
func New(settings *config.LoggerSettings, service string) (Logger, error) {
	if settings == nil {
		return nil, fmt.Errorf("logger settings are required")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := handlerOptions(settings.LogLevel, settings.RedactKeys)
	var log Logger
	switch settings.LogType {
	case config.LogTypeConsole:
		log = newConsoleLogger(os.Stdout, opts)
	case config.LogTypeFile:
		log = newFileLogger(settings.FilePath, settings.MaxSize, settings.MaxBackups, settings.MaxAge, opts)
	default:
		return nil, fmt.Errorf("unsupported log type: %s", settings.LogType)
	}

	if service != "" {
		log = log.With("service", service)
	}
	return log, nil
}

// SetDefault routes the standard library's slog default through log, so libraries that log via slog share its sink
func SetDefault(log Logger) {
	if backed, ok := log.(interface{ slogger() *slog.Logger }); ok {
		slog.SetDefault(backed.slogger())
	}
}

func handlerOptions(level string, redactKeys []string) *slog.HandlerOptions {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if len(redactKeys) == 0 {
		return opts
	}

	redacted := make(map[string]struct{}, len(redactKeys))
	for _, key := range redactKeys {
		redacted[strings.ToLower(key)] = struct{}{}
	}
	opts.ReplaceAttr = func(_ []string, attr slog.Attr) slog.Attr {
		if _, ok := redacted[strings.ToLower(attr.Key)]; ok {
			return slog.String(attr.Key, redactedValue)
		}
		return attr
	}
	return opts
}

func parseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarning:
		return slog.LevelWarn
	case config.LogLevelError, config.LogLevelCritical:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func formatArgs(args ...interface{}) string {
	if len(args) == 0 {
		return ""
	}
	return fmt.Sprint(args...)
}
