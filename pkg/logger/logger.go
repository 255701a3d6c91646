// Package logger provides a structured, levelled logger built on log/slog.
//
// Beyond plain slog it supports per-request loggers: the Logger middleware
// stores a request-scoped *slog.Logger (pre-tagged with request_id) in the
// context, and WithCtx retrieves it:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("payment recorded", "order_id", 7, "amount", 50.0)
//	// → time=... level=INFO msg="payment recorded" request_id=a1b2c3d4 order_id=7 amount=50
//
// When LOG_MONGO_URI is configured, records are additionally fanned out to an
// asynchronous MongoDB sink (see mongo_handler.go).
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/vypar/config"
)

var L *slog.Logger

func init() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	if uri := config.LogMongoURI(); uri != "" {
		if mh, err := NewMongoHandler(uri, config.LogMongoDatabase(), config.LogMongoCollection()); err == nil {
			handler = NewMultiHandler(handler, mh)
		}
		// A broken Mongo sink is not fatal; stdout logging continues alone.
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the request-scoped *slog.Logger stored in ctx, or the base
// logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware — not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
