package bulkx

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/stashkit/x/bulkx"

type metrics struct {
	operations metric.Int64Counter
	items      metric.Int64Counter
	duration   metric.Float64Histogram
}

func newMetrics(mp metric.MeterProvider) (*metrics, error) {
	meter := mp.Meter(instrumentationName)

	operations, opErr := meter.Int64Counter("stashkit.bulk.operations",
		metric.WithDescription("Number of bulk operations executed"),
	)
	items, itemsErr := meter.Int64Counter("stashkit.bulk.items",
		metric.WithDescription("Number of items settled by bulk operations, by outcome"),
	)
	duration, durErr := meter.Float64Histogram("stashkit.bulk.duration",
		metric.WithDescription("Wall-clock duration of bulk operations"),
		metric.WithUnit("s"),
	)

	if err := errors.Join(opErr, itemsErr, durErr); err != nil {
		return nil, err
	}

	return &metrics{
		operations: operations,
		items:      items,
		duration:   duration,
	}, nil
}

// recordOperation is safe to call on a nil receiver, so callers may proceed
// without metrics when instrument creation failed.
func (m *metrics) recordOperation(ctx context.Context, operationType string, succeeded, failed int, elapsed time.Duration) {
	if m == nil {
		return
	}

	typeAttr := attribute.String("operation_type", operationType)

	m.operations.Add(ctx, 1, metric.WithAttributes(typeAttr))
	m.items.Add(ctx, int64(succeeded), metric.WithAttributes(typeAttr, attribute.String("outcome", "succeeded")))
	m.items.Add(ctx, int64(failed), metric.WithAttributes(typeAttr, attribute.String("outcome", "failed")))
	m.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(typeAttr))
}
