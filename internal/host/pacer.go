// Package host drives the sequencer: a paced tick loop with tick and
// context limits.
package host

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Pacer spaces ticks at a fixed rate. Burst is one tick, so a stalled loop
// does not catch up with a flurry of ticks.
type Pacer struct {
	limiter *rate.Limiter
	mu      sync.RWMutex
}

// NewPacer returns a Pacer allowing tps ticks per second. Zero disables pacing.
func NewPacer(tps int) *Pacer {
	return &Pacer{
		limiter: rate.NewLimiter(rate.Limit(tps), 1),
	}
}

func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.RLock()
	limiter := p.limiter
	limit := limiter.Limit()
	p.mu.RUnlock()

	if limit == 0 {
		return nil
	}
	return limiter.Wait(ctx)
}

func (p *Pacer) SetRate(tps int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.limiter.SetLimit(rate.Limit(tps))
}

// Rate returns the current ticks per second.
func (p *Pacer) Rate() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return int(p.limiter.Limit())
}
