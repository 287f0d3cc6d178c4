// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns a logger with the
// request ID already attached, so every log line from a handler is
// automatically correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order created", "order_id", order.ID)
//	// → time=... level=INFO msg="order created" request_id=a1b2c3d4 order_id=7
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/vyapar/config"
)

var L *slog.Logger

func init() {
	L = newBase()
	slog.SetDefault(L)
}

func newBase() *slog.Logger {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		opts := &slog.HandlerOptions{Level: slog.LevelInfo}
		handler = slog.NewJSONHandler(os.Stdout, opts) // structured JSON for log aggregators
	default:
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		handler = slog.NewTextHandler(os.Stdout, opts) // human-readable for dev
	}

	return slog.New(handler)
}

// EnableMongo attaches the async MongoDB sink alongside the stdout handler.
// Called from the serve command when LOG_MONGO_URI is configured.
// Returns a close function that flushes and disconnects the sink.
func EnableMongo(uri, db, coll string) (func(), error) {
	mh, err := NewMongoHandler(uri, db, coll)
	if err != nil {
		return nil, err
	}

	L = slog.New(teeHandler{stdout: newBase().Handler(), mongo: mh})
	slog.SetDefault(L)
	return func() { mh.Close() }, nil
}

// teeHandler fans every record out to stdout and the Mongo sink.
type teeHandler struct {
	stdout slog.Handler
	mongo  slog.Handler
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.stdout.Enabled(ctx, level) || t.mongo.Enabled(ctx, level)
}

func (t teeHandler) Handle(ctx context.Context, rec slog.Record) error {
	if t.stdout.Enabled(ctx, rec.Level) {
		_ = t.stdout.Handle(ctx, rec.Clone())
	}
	if t.mongo.Enabled(ctx, rec.Level) {
		_ = t.mongo.Handle(ctx, rec)
	}
	return nil
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler{stdout: t.stdout.WithAttrs(attrs), mongo: t.mongo.WithAttrs(attrs)}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler{stdout: t.stdout.WithGroup(name), mongo: t.mongo.WithGroup(name)}
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the per-request *slog.Logger injected by the Logger
// middleware (pre-tagged with request_id), or the base logger when none
// is present.
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

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
