package port

// Logger is the logging interface services and handlers depend on. Args are
// alternating key/value pairs in slog style.
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
