package bulkx

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/ksuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/stashkit/x/errorx"
	"github.com/stashkit/x/loggerx"
	"github.com/stashkit/x/slogx"
	"github.com/stashkit/x/tracex"
)

const componentName = "bulkx.executor"

// Execute applies op to every item through the bounded scheduler and folds
// the settled outcomes into a single result. Individual item failures never
// surface as an error: they are captured in the result with the message of
// the error that caused them. The returned error is non-nil only when the
// item list exceeds MaxBulkItems, in which case op is never invoked, or when
// the context is canceled mid-run, in which case the partial result is
// returned alongside it.
func Execute[T, R any](ctx context.Context, items []T, op Operation[T, R], opts ...Option) (*Result[T, R], error) {
	return execute(ctx, "execute", items, op, opts)
}

// Create runs a bulk creation. It is Execute under a dedicated operation type
// so traces and metrics distinguish creations from other mutations.
func Create[T, R any](ctx context.Context, items []T, op Operation[T, R], opts ...Option) (*Result[T, R], error) {
	return execute(ctx, "create", items, op, opts)
}

// Update runs a bulk update. Every item must carry a non-empty id so the
// mutation can be attributed and later undone; otherwise Update fails before
// dispatching anything.
func Update[T Identified, R any](ctx context.Context, items []T, op Operation[T, R], opts ...Option) (*Result[T, R], error) {
	for _, item := range items {
		if item.GetID() == "" {
			return nil, errorx.InvalidArgumentErrorf("bulk update requires an id on every item")
		}
	}

	return execute(ctx, "update", items, op, opts)
}

// Delete runs a bulk deletion. The successful items of the result are the
// deleted inputs themselves.
func Delete[T any](ctx context.Context, items []T, op func(ctx context.Context, item T) error, opts ...Option) (*Result[T, T], error) {
	return execute(ctx, "delete", items, func(ctx context.Context, item T) (T, error) {
		return item, op(ctx, item)
	}, opts)
}

func execute[T, R any](ctx context.Context, operationType string, items []T, op Operation[T, R], opts []Option) (*Result[T, R], error) {
	o := newOptions(opts)

	if len(items) > MaxBulkItems {
		return nil, errorx.ContentTooLargeErrorf("bulk operation exceeds the maximum of %d items (got %d)", MaxBulkItems, len(items))
	}

	operationID := ksuid.New().String()
	ctx = slogx.ContextWithOperationID(ctx, operationID)

	tracer := o.TracerProvider.Tracer(instrumentationName)
	ctx, span, l := tracex.Instrument(ctx, o.Logger, tracer, componentName, operationType, trace.WithAttributes(
		attribute.String(slogx.OperationIDLogKey, operationID),
		attribute.String("operation_type", operationType),
		attribute.Int("item_count", len(items)),
	))
	defer span.End()

	m, err := newMetrics(o.MeterProvider)
	if err != nil {
		l.WithError(err).Warn(ctx, "failed to initialize bulk metrics")
	}

	start := time.Now()

	if len(items) == 0 {
		l.Debug(ctx, "bulk operation received no items")
		result := fold[T, R](nil)
		m.recordOperation(ctx, operationType, 0, 0, time.Since(start))
		return result, nil
	}

	outcomes := make([]outcome[T, R], len(items))
	var (
		mu        sync.Mutex
		completed int
		failed    int
	)

	// Tasks settle their outcome at the index of the originating item, so
	// attribution never depends on completion order.
	settle := func(i int, item T, value R, opErr error) {
		mu.Lock()
		defer mu.Unlock()

		if opErr != nil {
			outcomes[i] = outcome[T, R]{state: outcomeFailed, item: item, err: opErr}
			failed++
		} else {
			outcomes[i] = outcome[T, R]{state: outcomeSucceeded, item: item, value: value}
		}
		completed++

		if o.OnProgress != nil {
			o.OnProgress(Progress{
				Total:       len(items),
				Completed:   completed,
				Failed:      failed,
				Percentage:  float64(completed) / float64(len(items)) * 100,
				CurrentItem: item,
			})
		}
	}

	lim := newLimiter(ctx, o.Concurrency, o.Delay, len(items))
	for i, item := range items {
		lim.submit(func() {
			defer tracex.RecoverWithStackTrace(ctx, l, "panic in bulk progress callback")

			value, opErr := safeApply(ctx, l, op, item)
			if opErr != nil {
				l.WithError(opErr).Debug(ctx, "bulk item failed", attribute.Int("item_index", i))
				if o.StopOnError && lim.drain() {
					l.Warn(ctx, "stopping bulk dispatch after item failure")
				}
			}

			settle(i, item, value, opErr)
		})
	}

	waitErr := lim.wait()
	result := fold(outcomes)

	span.SetAttributes(
		attribute.Int("success_count", result.SuccessCount),
		attribute.Int("failure_count", result.FailureCount),
	)
	m.recordOperation(ctx, operationType, result.SuccessCount, result.FailureCount, time.Since(start))

	if waitErr != nil {
		l.WithError(waitErr).Warn(ctx, "bulk operation interrupted",
			attribute.Int("success_count", result.SuccessCount),
			attribute.Int("failure_count", result.FailureCount),
		)
		return result, waitErr
	}

	l.Info(ctx, "bulk operation completed",
		attribute.Int("success_count", result.SuccessCount),
		attribute.Int("failure_count", result.FailureCount),
	)
	return result, nil
}

// safeApply contains panics from the caller-supplied operation: a panicking
// item is settled as failed instead of tearing down the whole run.
func safeApply[T, R any](ctx context.Context, l *loggerx.Logger, op Operation[T, R], item T) (out R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errorx.InternalErrorf("panic while applying bulk operation")
			l.Error(ctx, "panic while applying bulk operation", tracex.StackTraceAttrs(r)...)
		}
	}()

	return op(ctx, item)
}
