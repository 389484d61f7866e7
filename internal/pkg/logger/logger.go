package logger

// Logger defines the logging interface used across the platform.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})

	// With returns a Logger that attaches the given key/value pairs to every record.
	With(keyvals ...interface{}) Logger
}
