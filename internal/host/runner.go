package host

import (
	"context"
	"errors"
)

// ErrMaxTicksReached indicates the runner hit its tick limit.
var ErrMaxTicksReached = errors.New("max ticks reached")

// Ticker is anything advanced one step per loop iteration, usually a
// *sequencer.Engine.
type Ticker interface {
	Tick()
}

// RunnerConfig controls execution behavior.
type RunnerConfig struct {
	MaxTicks int // 0 = unlimited
}

// Runner is the host loop. It is NOT safe for concurrent use.
type Runner struct {
	ticker Ticker
	pacer  *Pacer
	config RunnerConfig
	ticks  int
}

// NewRunner creates a Runner. A nil pacer ticks as fast as possible.
func NewRunner(ticker Ticker, pacer *Pacer, config RunnerConfig) *Runner {
	if pacer == nil {
		pacer = NewPacer(0)
	}
	return &Runner{
		ticker: ticker,
		pacer:  pacer,
		config: config,
	}
}

// Run ticks until the tick limit or ctx ends. It returns ErrMaxTicksReached
// or the context error; it never returns nil.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if r.config.MaxTicks > 0 && r.ticks >= r.config.MaxTicks {
			return ErrMaxTicksReached
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.pacer.Wait(ctx); err != nil {
			// The limiter refuses waits that would pass the deadline.
			<-ctx.Done()
			return ctx.Err()
		}
		r.ticker.Tick()
		r.ticks++
	}
}

// Ticks returns how many ticks Run has issued.
func (r *Runner) Ticks() int {
	return r.ticks
}
