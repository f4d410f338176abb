package logging

import (
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// New builds a Logger for the named backend ("slog" or "zap") writing to w.
// Unknown backends fall back to slog; unknown levels fall back to info.
func New(backend, level string, w io.Writer) Logger {
	switch strings.ToLower(backend) {
	case BackendZap:
		zl := zapcore.InfoLevel
		if err := zl.Set(strings.ToLower(level)); err != nil {
			zl = zapcore.InfoLevel
		}
		return NewZapLogger(zap.New(newZapCore(w, zl)))
	default:
		var sl slog.Level
		if err := sl.UnmarshalText([]byte(level)); err != nil {
			sl = slog.LevelInfo
		}
		h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: sl})
		return NewSlogLogger(slog.New(h))
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
