package slogx

import (
	"context"
	"log/slog"
	"time"

	slogctx "github.com/veqryn/slog-context"
)

type contextKey int

const operationIDContextKey contextKey = iota

// OperationIDLogKey is the attribute key under which the bulk operation id is
// attached to log records.
const OperationIDLogKey = "bulk_operation_id"

// ContextWithOperationID returns a context carrying the id of the bulk
// operation currently executing. Loggers built with NewOperationIDExtractor
// attach it to every record emitted from that context.
func ContextWithOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operationIDContextKey, id)
}

// OperationIDFromContext returns the bulk operation id stored in the context,
// if any.
func OperationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(operationIDContextKey).(string)
	return id, ok
}

func NewOperationIDExtractor() slogctx.AttrExtractor {
	return func(ctx context.Context, recordT time.Time, recordLvl slog.Level, recordMsg string) []slog.Attr {
		defer func() {
			// Nullify panic to prevent having this hook break an operation
			recover()
		}()

		id, ok := OperationIDFromContext(ctx)
		if !ok {
			return nil
		}
		return []slog.Attr{slog.String(OperationIDLogKey, id)}
	}
}
