package bulkx

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stashkit/x/timerx"
)

// limiter is a bounded worker pool with a dispatch-rate cap. A fixed number
// of workers pull tasks from a queue, and a pacer goroutine hands out at most
// one dispatch grant per delay interval, so the pool throttles on two axes:
// in-flight tasks never exceed the worker count, and task starts are spaced
// at least one delay apart even when workers sit idle.
//
// Draining the limiter drops every task that has not started yet; tasks
// already dispatched run to completion. This is soft cancellation, not
// preemption.
type limiter struct {
	tasks  chan func()
	grants chan struct{}
	done   chan struct{}

	drained   chan struct{}
	drainOnce sync.Once

	eg *errgroup.Group
}

// newLimiter starts `concurrency` workers and the pacer. The queue holds up
// to queueSize tasks so submit never blocks when all tasks are enqueued
// before wait.
func newLimiter(ctx context.Context, concurrency int, delay time.Duration, queueSize int) *limiter {
	l := &limiter{
		tasks:   make(chan func(), queueSize),
		grants:  make(chan struct{}),
		done:    make(chan struct{}),
		drained: make(chan struct{}),
		eg:      new(errgroup.Group),
	}

	go l.pace(delay)

	for i := 0; i < concurrency; i++ {
		l.eg.Go(func() error {
			return l.work(ctx)
		})
	}

	return l
}

func (l *limiter) submit(task func()) {
	l.tasks <- task
}

// drain drops all queued tasks that have not been dispatched yet. In-flight
// tasks are unaffected. It reports whether this call was the one that drained
// the limiter.
func (l *limiter) drain() bool {
	first := false
	l.drainOnce.Do(func() {
		close(l.drained)
		first = true
	})
	return first
}

// wait closes the queue and blocks until every worker has exited. It returns
// the context error when dispatching was cut short by cancellation.
func (l *limiter) wait() error {
	close(l.tasks)
	err := l.eg.Wait()
	close(l.done)
	return err
}

// pace hands out dispatch grants, pausing for the delay after each handoff.
// The first grant is available immediately.
func (l *limiter) pace(delay time.Duration) {
	var timer *time.Timer
	for {
		select {
		case <-l.done:
			return
		case l.grants <- struct{}{}:
			if delay <= 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(delay)
			} else {
				timer.Reset(delay)
			}
			select {
			case <-timer.C:
			case <-l.done:
				timerx.StopTimer(timer)
				return
			}
		}
	}
}

func (l *limiter) work(ctx context.Context) error {
	var err error
	for task := range l.tasks {
		select {
		case <-ctx.Done():
			l.drain()
			err = ctx.Err()
		default:
		}

		select {
		case <-l.drained:
			continue
		default:
		}

		select {
		case <-l.grants:
			// Dispatch may still race with a drain here; the window only
			// covers tasks that were already being handed a grant.
			select {
			case <-l.drained:
				continue
			default:
			}
		case <-l.drained:
			continue
		case <-ctx.Done():
			l.drain()
			err = ctx.Err()
			continue
		}

		task()
	}
	return err
}
