package utils

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	DebugCtx(ctx context.Context, msg string, args ...any)
	InfoCtx(ctx context.Context, msg string, args ...any)
	WarnCtx(ctx context.Context, msg string, args ...any)
	ErrorCtx(ctx context.Context, msg string, args ...any)
}

type DefaultLogger struct {
	logger *slog.Logger
}

func NewDefaultLogger(level slog.Level) *DefaultLogger {
	return NewWriterLogger(os.Stderr, level)
}

// NewWriterLogger logs text records at or above level to w.
func NewWriterLogger(w io.Writer, level slog.Level) *DefaultLogger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	return &DefaultLogger{logger: logger}
}

// Discard is a Logger that drops everything; used when no logger is configured.
var Discard Logger = &DefaultLogger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

// LoggerOr returns l, or Discard when l is nil.
func LoggerOr(l Logger) Logger {
	if l == nil {
		return Discard
	}
	return l
}

const prefix = "[ripple] "

func (d *DefaultLogger) log(ctx context.Context, level slog.Level, msg string, args []any) {
	if !d.logger.Enabled(ctx, level) {
		return
	}
	args = append(args, getDefaultArgs(ctx)...)
	d.logger.Log(ctx, level, prefix+msg, args...)
}

func (d *DefaultLogger) Debug(msg string, args ...any) {
	d.log(context.Background(), slog.LevelDebug, msg, args)
}

func (d *DefaultLogger) Info(msg string, args ...any) {
	d.log(context.Background(), slog.LevelInfo, msg, args)
}

func (d *DefaultLogger) Warn(msg string, args ...any) {
	d.log(context.Background(), slog.LevelWarn, msg, args)
}

func (d *DefaultLogger) Error(msg string, args ...any) {
	d.log(context.Background(), slog.LevelError, msg, args)
}

var DefaultArgs int

func getDefaultArgs(ctx context.Context) []any {
	ctxargs := ctx.Value(&DefaultArgs)
	if ctxargs == nil {
		return nil
	}
	return ctxargs.([]any)
}

// WithDefaultArgs attaches args to every record logged through the *Ctx methods.
func WithDefaultArgs(ctx context.Context, args ...any) context.Context {
	dargs := getDefaultArgs(ctx)
	dargs = append(dargs[:len(dargs):len(dargs)], args...)
	return context.WithValue(ctx, &DefaultArgs, dargs)
}

func (d *DefaultLogger) DebugCtx(ctx context.Context, msg string, args ...any) {
	d.log(ctx, slog.LevelDebug, msg, args)
}

func (d *DefaultLogger) InfoCtx(ctx context.Context, msg string, args ...any) {
	d.log(ctx, slog.LevelInfo, msg, args)
}

func (d *DefaultLogger) WarnCtx(ctx context.Context, msg string, args ...any) {
	d.log(ctx, slog.LevelWarn, msg, args)
}

func (d *DefaultLogger) ErrorCtx(ctx context.Context, msg string, args ...any) {
	d.log(ctx, slog.LevelError, msg, args)
}
