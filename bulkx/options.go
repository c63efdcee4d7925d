package bulkx

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/stashkit/x/loggerx"
	"github.com/stashkit/x/mathx"
)

const (
	// MaxBulkItems is the hard cap on how many items a single bulk operation
	// may carry. Larger lists are rejected before any item is touched.
	MaxBulkItems = 1000

	// DefaultConcurrency is the number of items mutated at the same time.
	DefaultConcurrency = 5

	// DefaultDelay is the minimum spacing between two task dispatches.
	DefaultDelay = 100 * time.Millisecond
)

type Options struct {
	// Concurrency is the maximum number of in-flight tasks. Values are
	// clamped to [1, MaxBulkItems].
	Concurrency int

	// Delay is the minimum spacing between two task dispatches. At most one
	// new task starts per interval, even when workers are idle. Negative
	// values disable the throttle.
	Delay time.Duration

	// OnProgress, if set, receives a snapshot after every settled item.
	OnProgress ProgressFunc

	// StopOnError drops all not-yet-started tasks once any task fails.
	// Tasks already dispatched run to completion and are still counted.
	StopOnError bool

	Logger         *loggerx.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

type Option func(*Options)

func NewDefaultOptions() *Options {
	return &Options{
		Concurrency:    DefaultConcurrency,
		Delay:          DefaultDelay,
		Logger:         &loggerx.Logger{Logger: slog.New(slog.DiscardHandler)},
		TracerProvider: tracenoop.NewTracerProvider(),
		MeterProvider:  metricnoop.NewMeterProvider(),
	}
}

func WithConcurrency(concurrency int) Option {
	return func(o *Options) {
		o.Concurrency = concurrency
	}
}

func WithDelay(delay time.Duration) Option {
	return func(o *Options) {
		o.Delay = delay
	}
}

func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) {
		o.OnProgress = fn
	}
}

func WithStopOnError(stopOnError bool) Option {
	return func(o *Options) {
		o.StopOnError = stopOnError
	}
}

func WithLogger(l *loggerx.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTracerProvider specifies a tracer provider to use for creating a tracer.
// If none is specified, spans are not recorded.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(o *Options) {
		if provider != nil {
			o.TracerProvider = provider
		}
	}
}

// WithMeterProvider specifies a meter provider to use for creating meters.
// If none is specified, metrics are not recorded.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(o *Options) {
		if provider != nil {
			o.MeterProvider = provider
		}
	}
}

// newOptions applies the given options over the defaults and normalizes the
// result so the scheduler never sees a zero worker count or a negative delay.
func newOptions(opts []Option) *Options {
	o := NewDefaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	o.Concurrency = mathx.Clamp(o.Concurrency, 1, MaxBulkItems)
	if o.Delay < 0 {
		o.Delay = 0
	}

	return o
}
