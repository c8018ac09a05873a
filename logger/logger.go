// Package logger provides the application's structured, levelled logger.
//
// Handlers and services obtain a request-scoped logger with WithCtx; the
// request logging middleware injects one tagged with the request ID:
//
//	log := logger.WithCtx(ctx)
//	log.Info("order created", "order_id", order.ID)
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// L is the base logger. It logs text at info level until Init is called.
var L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Init configures the base logger: JSON for production, text otherwise.
func Init(env, level string) {
	L = New(os.Stdout, env, level)
	slog.SetDefault(L)
}

// New builds a logger writing to w. Exposed for tests.
func New(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch env {
	case "production", "prod":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps LOG_LEVEL values onto slog levels, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type ctxKey struct{}

// WithCtx returns the logger stored in ctx, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. Called by the request logging middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}
