package logger

import "github.com/user/castcut/pkg/ports"

// NoopLogger discards everything. It backs the --quiet flag so the
// pipeline can log unconditionally.
type NoopLogger struct{}

// NewNoop returns a logger that drops all messages.
func NewNoop() *NoopLogger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(msg string, args ...interface{}) {}
func (l *NoopLogger) Info(msg string, args ...interface{})  {}
func (l *NoopLogger) Warn(msg string, args ...interface{})  {}
func (l *NoopLogger) Error(msg string, args ...interface{}) {}

// WithComponent returns the receiver; there is nothing to prefix.
func (l *NoopLogger) WithComponent(component string) ports.Logger {
	return l
}

var _ ports.Logger = (*NoopLogger)(nil)
