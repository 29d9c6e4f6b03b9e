package logger

import "github.com/suchimauz/court-booking-engine/internal/core/ports/out"

// NoopLogger - логгер-заглушка, используется в тестах
type NoopLogger struct{}

func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(event string, fields out.LogFields) {}
func (l *NoopLogger) Info(event string, fields out.LogFields)  {}
func (l *NoopLogger) Warn(event string, fields out.LogFields)  {}
func (l *NoopLogger) Error(event string, fields out.LogFields) {}

func (l *NoopLogger) WithFields(fields out.LogFields) out.LoggerPort {
	return l
}

func (l *NoopLogger) WithModule(module string) out.LoggerPort {
	return l
}
