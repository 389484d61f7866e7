package logger

import (
	"log/slog"

	"github.com/natefinch/lumberjack"
)

// FileLogger writes JSON records to a size-rotated log file.
type FileLogger struct {
	slogLogger
	writer *lumberjack.Logger
}

// NewFileLogger creates a new file logger with rotation settings.
func NewFileLogger(level string, filePath string, maxSize int, maxBackups int, maxAge int) Logger {
	return newFileLogger(filePath, maxSize, maxBackups, maxAge, handlerOptions(level, nil))
}

func newFileLogger(filePath string, maxSize, maxBackups, maxAge int, opts *slog.HandlerOptions) *FileLogger {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}

	return &FileLogger{
		slogLogger: slogLogger{logger: slog.New(slog.NewJSONHandler(writer, opts))},
		writer:     writer,
	}
}

// Close flushes and closes the underlying log file.
func (l *FileLogger) Close() error {
	return l.writer.Close()
}
