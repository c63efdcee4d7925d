package tracex

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stashkit/x/loggerx"
	loggerxtest "github.com/stashkit/x/loggerx/test"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverWithStackTrace(t *testing.T) {
	ctx := context.Background()

	t.Run("should recover from panic and log stack trace", func(t *testing.T) {
		l, buf := loggerxtest.NewTestLoggerWithJSONBuffer(t)
		assertCount := 0
		t.Cleanup(func() {
			require.GreaterOrEqual(t, assertCount, 3)
		})
		defer func() {
			assert.Contains(t, buf.String(), "panic at the disco")
			assertCount++
			assert.Contains(t, buf.String(), "test panic")
			assertCount++
			assert.Contains(t, buf.String(), "tracex/recover.go")
			assertCount++
		}()

		defer RecoverWithStackTrace(ctx, l, "panic at the disco")

		panic("test panic")
	})

	t.Run("should recover from panic and log stack trace with error panic", func(t *testing.T) {
		l, buf := loggerxtest.NewTestLoggerWithJSONBuffer(t)
		assertCount := 0
		t.Cleanup(func() {
			require.GreaterOrEqual(t, assertCount, 1)
		})
		defer func() {
			assert.Contains(t, buf.String(), "test panic")
			assertCount++
		}()

		defer RecoverWithStackTrace(ctx, l, "")

		panic(errors.New("test panic"))
	})

	t.Run("should recover from panic and log stack trace with random types or nil", func(t *testing.T) {
		l, buf := loggerxtest.NewTestLoggerWithJSONBuffer(t)
		assertCount := 0
		t.Cleanup(func() {
			require.GreaterOrEqual(t, assertCount, 3)
		})

		testPanic := func(v interface{}, expectedStr string) {
			defer func() {
				assert.Contains(t, buf.String(), expectedStr)
				assertCount++
			}()

			defer RecoverWithStackTrace(ctx, l, "")

			panic(v)
		}

		testPanic([]int{}, "unknown panic")
		testPanic(123, "unknown panic")
		testPanic(struct{}{}, "unknown panic")
	})

	t.Run("should not allow panics in the recoverer", func(t *testing.T) {
		w := &writerThatpanics{}
		l := &loggerx.Logger{Logger: slog.New(slog.NewJSONHandler(w, nil))}
		assertCount := 0
		t.Cleanup(func() {
			require.GreaterOrEqual(t, assertCount, 1)
		})

		defer func() {
			assertCount++
			assert.Equal(t, w.panics, 1)
		}()

		defer RecoverWithStackTrace(ctx, l, "panic while applying mutations")

		panic("test panic")
	})

	t.Run("should not log if logger is nil", func(t *testing.T) {
		defer RecoverWithStackTrace(ctx, nil, "panic while applying mutations")

		panic("test panic")

		// No assertion needed, just ensure no panic occurs
	})
}

func TestGetStackTrace(t *testing.T) {
	t.Run("should return stack trace", func(t *testing.T) {
		stackTrace := GetStackTrace()
		assert.Contains(t, stackTrace, "tracex/recover_test.go")
	})

	t.Run("should return empty stack trace if no panic", func(t *testing.T) {
		stackTrace := GetStackTrace()
		assert.NotEmpty(t, stackTrace)
	})
}

type writerThatpanics struct {
	panics int
}

// Write implements io.Writer.
func (w *writerThatpanics) Write(p []byte) (n int, err error) {
	w.panics++
	panic("expected")
}

var _ io.Writer = (*writerThatpanics)(nil)
