package bulkx

import (
	"context"
	"time"

	"github.com/segmentio/ksuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/stashkit/x/errorx"
	"github.com/stashkit/x/loggerx"
	"github.com/stashkit/x/slogx"
	"github.com/stashkit/x/timerx"
	"github.com/stashkit/x/tracex"
)

// BatchOperation applies one underlying call to a whole batch of items.
type BatchOperation[T any] func(ctx context.Context, batch []T) error

// ExecuteBatched splits items into batches of batchSize and applies op to one
// batch at a time, pausing for the configured delay between batches. The
// granularity is coarser than Execute: when a batch call fails, every item in
// that batch is marked failed with the same error message, and progress is
// reported once per completed batch rather than once per item.
//
// StopOnError aborts the remaining batches outright. This is a hard stop:
// unlike the per-item scheduler, no further batch is dispatched and the
// skipped items are not counted in the result.
func ExecuteBatched[T any](ctx context.Context, items []T, op BatchOperation[T], batchSize int, opts ...Option) (*Result[T, T], error) {
	o := newOptions(opts)

	if len(items) > MaxBulkItems {
		return nil, errorx.ContentTooLargeErrorf("bulk operation exceeds the maximum of %d items (got %d)", MaxBulkItems, len(items))
	}

	operationID := ksuid.New().String()
	ctx = slogx.ContextWithOperationID(ctx, operationID)

	tracer := o.TracerProvider.Tracer(instrumentationName)
	ctx, span, l := tracex.Instrument(ctx, o.Logger, tracer, componentName, "batch", trace.WithAttributes(
		attribute.String(slogx.OperationIDLogKey, operationID),
		attribute.String("operation_type", "batch"),
		attribute.Int("item_count", len(items)),
		attribute.Int("batch_size", batchSize),
	))
	defer span.End()

	m, err := newMetrics(o.MeterProvider)
	if err != nil {
		l.WithError(err).Warn(ctx, "failed to initialize bulk metrics")
	}

	start := time.Now()

	if len(items) == 0 {
		l.Debug(ctx, "bulk operation received no items")
		result := fold[T, T](nil)
		m.recordOperation(ctx, "batch", 0, 0, time.Since(start))
		return result, nil
	}

	batches := Chunk(items, batchSize)
	span.SetAttributes(attribute.Int("batch_count", len(batches)))

	outcomes := make([]outcome[T, T], len(items))
	completed := 0
	failed := 0
	next := 0

	var waitErr error
	for bi, batch := range batches {
		if bi > 0 && o.Delay > 0 {
			if pauseErr := pause(ctx, o.Delay); pauseErr != nil {
				waitErr = pauseErr
				break
			}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			waitErr = ctxErr
			break
		}

		batchErr := safeApplyBatch(ctx, l, op, batch)
		for _, item := range batch {
			if batchErr != nil {
				outcomes[next] = outcome[T, T]{state: outcomeFailed, item: item, err: batchErr}
				failed++
			} else {
				outcomes[next] = outcome[T, T]{state: outcomeSucceeded, item: item, value: item}
			}
			next++
			completed++
		}

		if o.OnProgress != nil {
			o.OnProgress(Progress{
				Total:      len(items),
				Completed:  completed,
				Failed:     failed,
				Percentage: float64(completed) / float64(len(items)) * 100,
			})
		}

		if batchErr != nil {
			l.WithError(batchErr).Debug(ctx, "bulk batch failed",
				attribute.Int("batch_index", bi),
				attribute.Int("batch_len", len(batch)),
			)
			if o.StopOnError {
				l.Warn(ctx, "aborting remaining batches after batch failure")
				break
			}
		}
	}

	result := fold(outcomes)

	span.SetAttributes(
		attribute.Int("success_count", result.SuccessCount),
		attribute.Int("failure_count", result.FailureCount),
	)
	m.recordOperation(ctx, "batch", result.SuccessCount, result.FailureCount, time.Since(start))

	if waitErr != nil {
		l.WithError(waitErr).Warn(ctx, "batched bulk operation interrupted",
			attribute.Int("success_count", result.SuccessCount),
			attribute.Int("failure_count", result.FailureCount),
		)
		return result, waitErr
	}

	l.Info(ctx, "batched bulk operation completed",
		attribute.Int("success_count", result.SuccessCount),
		attribute.Int("failure_count", result.FailureCount),
	)
	return result, nil
}

func safeApplyBatch[T any](ctx context.Context, l *loggerx.Logger, op BatchOperation[T], batch []T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errorx.InternalErrorf("panic while applying batch operation")
			l.Error(ctx, "panic while applying batch operation", tracex.StackTraceAttrs(r)...)
		}
	}()

	return op(ctx, batch)
}

func pause(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timerx.StopTimer(timer)
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
