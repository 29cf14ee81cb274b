package obs

import (
	"context"
	"log/slog"
	"os"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// NewLogger builds the process-wide structured logger.
func NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// WithRequestID stores a request id for later retrieval by Time.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID returns the request id stored by WithRequestID, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs the duration of an operation when the returned closure runs.
// Pass a pointer to the named error return to record the outcome:
//
//	func (c *Client) Query(ctx context.Context, q string) (_ []Row, err error) {
//	    defer obs.Time(ctx, c.logger, "surreal.Query")(&err)
//	    ...
func Time(ctx context.Context, logger *slog.Logger, name string) func(errp *error) {
	start := time.Now()

	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			logger.Error("operation failed",
				"req_id", reqID, "op", name, "dur_ms", dur.Milliseconds(), "err", *errp)
			return
		}
		logger.Debug("operation complete",
			"req_id", reqID, "op", name, "dur_ms", dur.Milliseconds())
	}
}
