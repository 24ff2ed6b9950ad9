package logger

// Logger defines the logging interface shared by the engines, the CLI and the REST handlers
type Logger interface {
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}
