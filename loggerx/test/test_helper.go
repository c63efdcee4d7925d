package loggerxtest

import (
	"log/slog"
	"testing"

	"github.com/stashkit/x/loggerx"
	"github.com/stashkit/x/testx"
)

func NewTestLogger(t testing.TB) *loggerx.Logger {
	t.Helper()
	return &loggerx.Logger{Logger: slog.New(slog.DiscardHandler)}
}

// NewTestLoggerWithJSONBuffer returns a logger writing JSON lines to a
// buffer that is safe to read while bulk workers are still logging.
func NewTestLoggerWithJSONBuffer(t testing.TB) (*loggerx.Logger, *testx.ConcurrentBuffer) {
	t.Helper()
	buf := testx.NewConcurrentBuffer(t)
	l := slog.New(slog.NewJSONHandler(buf, nil))
	return &loggerx.Logger{Logger: l}, buf
}

func NewTestLoggerWithTextBuffer(t testing.TB) (*loggerx.Logger, *testx.ConcurrentBuffer) {
	t.Helper()
	buf := testx.NewConcurrentBuffer(t)
	l := slog.New(slog.NewTextHandler(buf, nil))
	return &loggerx.Logger{Logger: l}, buf
}
