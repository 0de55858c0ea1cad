package interfaces

import "context"

// Logger is the leveled logging surface pagekit code writes to. The method
// set matches github.com/goliatone/go-logger, which means a host already on
// that package can pass its loggers straight through. Fatal is expected to
// terminate the process after logging.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out named loggers. The name is a dotted module path
// such as "pagekit.pages"; providers may scope configuration per name or
// ignore it and return a shared logger.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger attaches persistent structured fields. Loggers that do not
// implement it still work; field enrichment just becomes a no-op for them.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
