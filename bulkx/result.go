package bulkx

import "context"

// Operation applies one caller-supplied mutation to a single item. The second
// return value carries the mutated entity, which is collected into the
// aggregate result on success.
type Operation[T, R any] func(ctx context.Context, item T) (R, error)

// Identified is implemented by items that carry an entity id. Update
// operations require it so every mutation can be attributed and undone.
type Identified interface {
	GetID() string
}

// Progress is a point-in-time view of a running bulk operation. It is emitted
// once per settled item, in completion order, with a monotonically increasing
// Completed count.
type Progress struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Failed     int     `json:"failed"`
	Percentage float64 `json:"percentage"`

	// CurrentItem is the item that just settled, or nil when progress is
	// reported at batch granularity.
	CurrentItem any `json:"currentItem,omitempty"`
}

// ProgressFunc receives progress snapshots. It is invoked while the aggregate
// state is locked, so implementations must return promptly and must not call
// back into the executor.
type ProgressFunc func(Progress)

// FailedItem pairs an input item with the message of the error that failed it.
type FailedItem[T any] struct {
	Item  T      `json:"item"`
	Error string `json:"error"`
}

// Result aggregates the outcome of a bulk operation. Item failures are folded
// in here and never surface as errors: SuccessCount+FailureCount equals
// TotalItems when the run goes to completion, and may be smaller when the run
// stops early.
type Result[T, R any] struct {
	Success         bool            `json:"success"`
	TotalItems      int             `json:"totalItems"`
	SuccessCount    int             `json:"successCount"`
	FailureCount    int             `json:"failureCount"`
	SuccessfulItems []R             `json:"successfulItems"`
	FailedItems     []FailedItem[T] `json:"failedItems"`
}

type outcomeState int

const (
	outcomePending outcomeState = iota
	outcomeSucceeded
	outcomeFailed
)

// outcome is the tagged result of a single task. Tasks write their outcome at
// the index of the originating item, so folding is independent of completion
// order.
type outcome[T, R any] struct {
	state outcomeState
	item  T
	value R
	err   error
}

// fold reduces tagged outcomes into the aggregate result, preserving input
// order. Pending outcomes belong to tasks that were never dispatched and are
// skipped.
func fold[T, R any](outcomes []outcome[T, R]) *Result[T, R] {
	result := &Result[T, R]{
		Success:         true,
		TotalItems:      len(outcomes),
		SuccessfulItems: make([]R, 0, len(outcomes)),
		FailedItems:     make([]FailedItem[T], 0),
	}

	for _, o := range outcomes {
		switch o.state {
		case outcomeSucceeded:
			result.SuccessCount++
			result.SuccessfulItems = append(result.SuccessfulItems, o.value)
		case outcomeFailed:
			result.FailureCount++
			result.Success = false
			result.FailedItems = append(result.FailedItems, FailedItem[T]{Item: o.item, Error: o.err.Error()})
		case outcomePending:
		}
	}

	return result
}
