package undox

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/stashkit/x/errorx"
	"github.com/stashkit/x/loggerx"
	"github.com/stashkit/x/slogx"
	"github.com/stashkit/x/tracex"
)

const (
	componentName       = "undox.executor"
	instrumentationName = "github.com/stashkit/x/undox"
)

// UpdateFunc restores one entity to its captured previous values.
type UpdateFunc func(ctx context.Context, entityID string, previous map[string]any) error

// EntityFailure records an entity whose restore call failed during an undo.
type EntityFailure struct {
	EntityID string `json:"entityId"`
	Error    string `json:"error"`
}

// UndoResult is the outcome of replaying one registered action. Err is set
// only when the action could not be looked up at all; per-entity restore
// failures are reported through Failed and do not populate Err.
type UndoResult struct {
	Success      bool            `json:"success"`
	SuccessCount int             `json:"successCount"`
	FailureCount int             `json:"failureCount"`
	Failed       []EntityFailure `json:"failed"`
	Err          error           `json:"-"`
}

type Options struct {
	Logger         *loggerx.Logger
	TracerProvider trace.TracerProvider
}

type Option func(*Options)

func NewDefaultOptions() *Options {
	return &Options{
		Logger:         &loggerx.Logger{Logger: slog.New(slog.DiscardHandler)},
		TracerProvider: tracenoop.NewTracerProvider(),
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

// Undo replays the previous values recorded under actionID, one entity at a
// time and in recorded order. Restore calls run sequentially: an entity that
// fails to restore is reported in the result and the replay moves on to the
// next one.
//
// The action is removed from the ledger no matter how the replay went. An
// action can be undone at most once; a partial failure leaves the remaining
// entities un-reverted with no way to retry that undo.
func Undo(ctx context.Context, ledger *Ledger, actionID string, fn UpdateFunc, opts ...Option) UndoResult {
	o := NewDefaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	tracer := o.TracerProvider.Tracer(instrumentationName)
	ctx, span, l := tracex.Instrument(ctx, o.Logger, tracer, componentName, "undo", trace.WithAttributes(
		attribute.String("undo_action_id", actionID),
	))
	defer span.End()

	action, ok := ledger.Get(actionID)
	if !ok {
		l.Warn(ctx, "undo action not found")
		return UndoResult{
			Failed: []EntityFailure{},
			Err:    errorx.NotFoundErrorf("action not found"),
		}
	}

	// One undo attempt per action: the entry goes away even when some
	// entities fail to restore.
	defer ledger.Remove(action.ID)

	span.SetAttributes(
		attribute.String("action_type", action.Type.String()),
		attribute.Int("item_count", len(action.AffectedItems)),
	)

	result := UndoResult{Success: true, Failed: []EntityFailure{}}
	for _, item := range action.AffectedItems {
		rl := &loggerx.Logger{Logger: slogx.WithPreviousValues(l.Logger, item.EntityID, item.PreviousValue)}
		rl.Debug(ctx, "restoring previous values")

		if err := safeRestore(ctx, rl, fn, item); err != nil {
			result.Success = false
			result.FailureCount++
			result.Failed = append(result.Failed, EntityFailure{EntityID: item.EntityID, Error: err.Error()})
			rl.WithError(err).Debug(ctx, "failed to restore previous values")
			continue
		}

		result.SuccessCount++
	}

	span.SetAttributes(
		attribute.Int("success_count", result.SuccessCount),
		attribute.Int("failure_count", result.FailureCount),
	)

	if result.FailureCount > 0 {
		l.Warn(ctx, "undo completed with failures",
			attribute.String("action_type", action.Type.String()),
			attribute.Int("success_count", result.SuccessCount),
			attribute.Int("failure_count", result.FailureCount),
		)
		return result
	}

	l.Info(ctx, "undo completed",
		attribute.String("action_type", action.Type.String()),
		attribute.Int("success_count", result.SuccessCount),
	)
	return result
}

// safeRestore contains panics from the caller-supplied restore function so a
// panicking entity counts as a failed restore instead of aborting the replay.
func safeRestore(ctx context.Context, l *loggerx.Logger, fn UpdateFunc, item AffectedItem) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errorx.InternalErrorf("panic while restoring entity")
			l.Error(ctx, "panic while restoring entity", tracex.StackTraceAttrs(r)...)
		}
	}()

	return fn(ctx, item.EntityID, item.PreviousValue)
}
