package logging

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
)

// Logger defines the subset of slog functionality used by the bridge.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New returns a Logger backed by the provided slog.Logger. Passing nil binds to
// slog.Default().
func New(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogLogger{logger: logger}
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return &slogLogger{logger: slog.New(slog.DiscardHandler)}
}

type slogLogger struct {
	logger *slog.Logger
}

func (l *slogLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *slogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *slogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *slogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}

// CallSiteKey is the attribute key used by CallSite.
const CallSiteKey = "at"

// CallSite returns an "at" attribute holding file:line of the caller skip
// frames above the function that calls CallSite. CallSite(0) names the
// immediate caller.
func CallSite(skip int) slog.Attr {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return slog.String(CallSiteKey, "unknown")
	}
	return slog.String(CallSiteKey, fmt.Sprintf("%s:%d", filepath.Base(file), line))
}

// Thread returns the attribute used to tag a diagnostic with an OS thread.
func Thread(id uint64) slog.Attr {
	return slog.Uint64("thread", id)
}
