package logging

import (
	"fmt"
	"io"
	"log/slog"
)

// ComponentKey is the attribute naming the subsystem a record came from.
const ComponentKey = "component"

// Logger is the component-tagged logger passed to every subsystem.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// SlogLogger forwards to a *slog.Logger with the component as an attribute.
type SlogLogger struct{ l *slog.Logger }

func NewSlogLogger(l *slog.Logger) SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return SlogLogger{l: l}
}

// NewFileLogger writes text records to w at debug level.
func NewFileLogger(w io.Writer) SlogLogger {
	return SlogLogger{l: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))}
}

func (s SlogLogger) Infof(component string, format string, args ...interface{}) {
	s.l.Info(fmt.Sprintf(format, args...), slog.String(ComponentKey, component))
}

func (s SlogLogger) Errorf(component string, format string, args ...interface{}) {
	s.l.Error(fmt.Sprintf(format, args...), slog.String(ComponentKey, component))
}
