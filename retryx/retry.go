package retryx

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/stashkit/x/timerx"
)

const (
	DefaultInterval    = 1 * time.Second
	DefaultMaxInterval = 30 * time.Second
	DefaultMaxRetries  = 3
)

// ConstantRetry executes the provided function `fn` with a constant retry interval.
// This function is designed for simple retry scenarios where the interval between retries
// and the maximum number of retries are the only customizable options.
//
// Parameters:
// - ctx: Cancels the wait between attempts; the error of the last attempt is returned.
// - fn: The function to be executed and retried upon failure.
// - opts: Optional retry configurations, such as interval and maximum retries.
//
// The retry interval defaults to `DefaultInterval` unless overridden by the `WithInterval`
// option. If more advanced control over the retry behavior is required, consider using the
// `backoff` package directly.
func ConstantRetry(ctx context.Context, fn func() error, opts ...RetryOption) error {
	rOpts := &retryOptions{}
	for _, opt := range opts {
		opt(rOpts)
	}

	duration := DefaultInterval
	if rOpts.initialInterval > 0 {
		duration = rOpts.initialInterval
	}

	bc := backoff.NewConstantBackOff(duration)
	bc.Reset()

	return retry(ctx, fn, bc, rOpts)
}

// ExponentialRetry executes the provided function `fn` with an exponential backoff retry
// strategy. The wait before retry number n is `interval * 2^(n-1)`, without jitter, so the
// schedule is deterministic: with the defaults, failed attempts are separated by 1s, 2s and 4s.
//
// Parameters:
// - ctx: Cancels the wait between attempts; the error of the last attempt is returned.
// - fn: The function to be executed and retried upon failure.
// - opts: Optional retry configurations, such as interval, maximum interval and maximum retries.
//
// The retry interval starts at `DefaultInterval` unless overridden by the `WithInterval` option.
// The maximum interval between retries is `DefaultMaxInterval` unless overridden by the
// `WithMaxInterval` option. A maximum elapsed time may be set with `WithMaxElapsedTime`; there
// is none by default. If more advanced control over the retry behavior is required, consider
// using the `backoff` package directly.
func ExponentialRetry(ctx context.Context, fn func() error, opts ...RetryOption) error {
	rOpts := &retryOptions{}
	for _, opt := range opts {
		opt(rOpts)
	}

	duration := DefaultInterval
	maxInterval := DefaultMaxInterval
	if rOpts.initialInterval > 0 {
		duration = rOpts.initialInterval
	}
	if rOpts.maxInterval > 0 {
		maxInterval = rOpts.maxInterval
	}

	bc := backoff.NewExponentialBackOff()
	bc.InitialInterval = duration
	bc.MaxInterval = maxInterval
	bc.MaxElapsedTime = rOpts.maxElapsedTime
	bc.Multiplier = 2
	bc.RandomizationFactor = 0
	bc.Reset()

	return retry(ctx, fn, bc, rOpts)
}

// retry runs fn until it succeeds, the retry budget is exhausted, the backoff
// schedule stops, or the context is canceled during a wait. The error of the
// last attempt is returned unchanged.
func retry(ctx context.Context, fn func() error, bo backoff.BackOff, rOpts *retryOptions) error {
	maxRetryCount := DefaultMaxRetries
	if rOpts.retryCount > 0 {
		maxRetryCount = rOpts.retryCount
	}
	sleep := rOpts.sleep
	if sleep == nil {
		sleep = sleepWithContext
	}

	for retries := 0; ; retries++ {
		err := fn()
		if err == nil {
			return nil
		}

		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return permanent.Err
		}

		if retries >= maxRetryCount {
			return err
		}

		next := bo.NextBackOff()
		if next == backoff.Stop {
			return err
		}

		if sleepErr := sleep(ctx, next); sleepErr != nil {
			return err
		}
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timerx.StopTimer(timer)
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
