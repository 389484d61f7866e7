package logger

import (
	"io"
	"log/slog"
	"os"
)

// ConsoleLogger writes human readable text records to stdout.
type ConsoleLogger struct {
	slogLogger
}

// NewConsoleLogger creates a new console logger with the specified log level.
func NewConsoleLogger(level string) Logger {
	return newConsoleLogger(os.Stdout, handlerOptions(level, nil))
}

func newConsoleLogger(w io.Writer, opts *slog.HandlerOptions) *ConsoleLogger {
	return &ConsoleLogger{slogLogger{logger: slog.New(slog.NewTextHandler(w, opts))}}
}
