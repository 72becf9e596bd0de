// Package obs times operations and logs their outcome.
package obs

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time starts a timer for the named operation. Call the returned function
// with a pointer to the operation's error, typically via defer.
func Time(ctx context.Context, logger *slog.Logger, name string) func(errp *error) {
	start := time.Now()
	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		attrs := []any{"op", name, "dur_ms", time.Since(start).Milliseconds()}
		if reqID != "" {
			attrs = append(attrs, "req_id", reqID)
		}
		if errp != nil && *errp != nil {
			logger.WarnContext(ctx, "operation failed", append(attrs, "error", *errp)...)
			return
		}
		logger.DebugContext(ctx, "operation finished", attrs...)
	}
}

// WithRequestID stores a request id for later Time calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
