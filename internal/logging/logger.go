// Package logging defines the structured-logging interface used across
// storyshare, with adapters for log/slog and zap.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are key–value pairs, e.g.:
//
//	log.Info(ctx, "story uploaded", "request_id", id, "bytes", n)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Backends accepted by New.
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Config selects and tunes a Logger backend.
type Config struct {
	Backend string // slog (default) or zap
	Level   string // debug, info, warn, error
}

// New builds a Logger writing to stderr. An unknown level falls back to info;
// a zap build failure falls back to slog.
func New(cfg Config) Logger {
	return newWithWriter(cfg, os.Stderr)
}

func newWithWriter(cfg Config, w io.Writer) Logger {
	if strings.EqualFold(cfg.Backend, BackendZap) {
		if l, err := NewZapLogger(cfg.Level); err == nil {
			return l
		}
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel(cfg.Level)})
	return NewSlogLogger(slog.New(h))
}

func slogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

type requestIDKey struct{}

// ContextWithRequestID returns a copy of ctx carrying id. Both adapters add
// it to every record logged with that context as "request_id".
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request id stored in ctx, if any.
func RequestIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

func withContextArgs(ctx context.Context, args []any) []any {
	id, ok := RequestIDFrom(ctx)
	if !ok {
		return args
	}
	return append([]any{"request_id", id}, args...)
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
