package retryx

import (
	"context"
	"time"
)

// SleepFunc pauses between attempts. It returns a non-nil error when the wait
// was interrupted by context cancellation.
type SleepFunc func(ctx context.Context, d time.Duration) error

type retryOptions struct {
	retryCount      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	sleep           SleepFunc
}

type RetryOption func(*retryOptions)

// WithRetryCount sets the maximum number of retries after the initial attempt,
// so the function is called at most count+1 times.
func WithRetryCount(count int) RetryOption {
	return func(ro *retryOptions) {
		ro.retryCount = count
	}
}

func WithInterval(interval time.Duration) RetryOption {
	return func(ro *retryOptions) {
		ro.initialInterval = interval
	}
}

func WithMaxInterval(maxInterval time.Duration) RetryOption {
	return func(ro *retryOptions) {
		ro.maxInterval = maxInterval
	}
}

func WithMaxElapsedTime(maxElapsedTime time.Duration) RetryOption {
	return func(ro *retryOptions) {
		ro.maxElapsedTime = maxElapsedTime
	}
}

// WithSleep replaces the function used to wait between attempts. Tests use
// this to observe the backoff schedule without sleeping.
func WithSleep(sleep SleepFunc) RetryOption {
	return func(ro *retryOptions) {
		ro.sleep = sleep
	}
}
