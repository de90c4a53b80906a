// Package logger adapts log/slog to the ports.Logger interface.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// SlogLogger routes structured log records through a slog.Logger.
type SlogLogger struct {
	l *slog.Logger
}

// New wraps an existing slog.Logger.
func New(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{l: l}
}

// NewTint builds a logger with a tint handler writing to w. Colors are
// enabled only when w is a terminal.
func NewTint(w io.Writer, level slog.Level) *SlogLogger {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	handler := tint.NewHandler(w, &tint.Options{
		Level:   level,
		NoColor: !color,
	})
	return &SlogLogger{l: slog.New(handler)}
}

func (s *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	s.l.Debug(msg, args(fields)...)
}

func (s *SlogLogger) Info(msg string, fields map[string]interface{}) {
	s.l.Info(msg, args(fields)...)
}

func (s *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	s.l.Warn(msg, args(fields)...)
}

func (s *SlogLogger) Error(msg string, err error, fields map[string]interface{}) {
	a := args(fields)
	if err != nil {
		a = append(a, "err", err)
	}
	s.l.Error(msg, a...)
}

func args(fields map[string]interface{}) []any {
	out := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}
