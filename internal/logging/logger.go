// Package logging defines a minimal structured-logging interface used across
// the client. The concrete implementation wraps zerolog; tests may substitute
// a no-op or capturing logger.
package logging

// Logger is a structured logger. The variadic args are interpreted as
// key–value pairs, e.g.:
//
//	log.Info("request completed", "method", "GET", "status", 200)
type Logger interface {
	// Debug logs fine-grained diagnostic output.
	Debug(msg string, args ...any)

	// Info logs an informational message.
	Info(msg string, args ...any)

	// Warn logs a warning for unusual but non-fatal conditions.
	Warn(msg string, args ...any)

	// Error logs a failure.
	Error(msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) With(...any) Logger   { return nopLogger{} }
