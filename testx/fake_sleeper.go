package testx

import (
	"context"
	"sync"
	"time"
)

// FakeSleeper records requested sleep durations and returns immediately.
// It satisfies the sleep hooks exposed by packages that pause between
// attempts, so tests can assert on the schedule without waiting it out.
type FakeSleeper struct {
	mu    sync.Mutex
	slept []time.Duration
}

func NewFakeSleeper() *FakeSleeper {
	return &FakeSleeper{}
}

func (f *FakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.slept = append(f.slept, d)
	return nil
}

// Slept returns a copy of the recorded sleep durations in request order.
func (f *FakeSleeper) Slept() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Duration, len(f.slept))
	copy(out, f.slept)
	return out
}
