package config

// Log levels accepted by LoggerSettings.LogLevel
const (
	LogLevelInfo     = "info"
	LogLevelDebug    = "debug"
	LogLevelError    = "error"
	LogLevelWarning  = "warning"
	LogLevelCritical = "critical"
)

// Log sinks
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Service names stamped on every record of a binary
const (
	ServiceRestAPI = "mentara-rest-api"
	ServiceCLI     = "mentara-cli"
)

// DefaultRedactKeys are the record attributes whose values are masked before they reach a sink
var DefaultRedactKeys = []string{
	"password",
	"token",
	"access_token",
	"refresh_token",
	"authorization",
	"answers",
	"content",
}
