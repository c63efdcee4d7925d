package testx

import "sync"

// ConcurrencyProbe measures how many goroutines are inside a section at once.
// Call Enter at the start of the section and Exit at the end.
type ConcurrencyProbe struct {
	mu      sync.Mutex
	current int
	max     int
}

func NewConcurrencyProbe() *ConcurrencyProbe {
	return &ConcurrencyProbe{}
}

func (p *ConcurrencyProbe) Enter() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current++
	if p.current > p.max {
		p.max = p.current
	}
}

func (p *ConcurrencyProbe) Exit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current--
}

// Max returns the highest number of goroutines observed inside the section.
func (p *ConcurrencyProbe) Max() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.max
}
