package config

// Log levels accepted by LoggerSettings. critical maps to the error level.
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
