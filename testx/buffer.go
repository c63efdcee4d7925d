package testx

import (
	"bytes"
	"sync"
	"testing"
)

// ConcurrentBuffer is a bytes.Buffer safe for use as the sink of loggers
// that are written to from worker goroutines.
type ConcurrentBuffer struct {
	b *bytes.Buffer
	m sync.RWMutex
	t testing.TB
}

func NewConcurrentBuffer(t testing.TB) *ConcurrentBuffer {
	return &ConcurrentBuffer{
		b: new(bytes.Buffer),
		t: t,
	}
}

func (c *ConcurrentBuffer) Write(p []byte) (n int, err error) {
	c.m.Lock()
	defer c.m.Unlock()
	return c.b.Write(p)
}

func (c *ConcurrentBuffer) String() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.b.String()
}

// Bytes returns a copy of the buffered bytes.
func (c *ConcurrentBuffer) Bytes() []byte {
	c.m.RLock()
	defer c.m.RUnlock()
	return bytes.Clone(c.b.Bytes())
}
