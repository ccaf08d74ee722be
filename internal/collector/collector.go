// Package collector aggregates effect lifecycle events and computes metrics.
package collector

import (
	"sync"
	"sync/atomic"
	"time"

	"flicker/internal/core"
)

const bufferSize = 1000

// Collector receives events from the sequencer and produces a summary.
// Report never blocks the tick loop: events beyond the buffer are dropped
// and counted.
type Collector struct {
	events    []core.Event
	ch        chan core.Event
	done      chan struct{}
	mu        sync.Mutex
	closed    atomic.Bool
	dropped   atomic.Int64
	startTime time.Time
	endTime   time.Time
}

// New creates a Collector and starts its collection goroutine.
func New() *Collector {
	c := &Collector{
		events:    make([]core.Event, 0),
		ch:        make(chan core.Event, bufferSize),
		done:      make(chan struct{}),
		startTime: time.Now(),
	}
	go c.collect()
	return c
}

func (c *Collector) collect() {
	for event := range c.ch {
		c.mu.Lock()
		c.events = append(c.events, event)
		c.mu.Unlock()
	}
	close(c.done)
}

// Report implements core.Reporter. Events reported after Close are dropped.
func (c *Collector) Report(event core.Event) {
	if c.closed.Load() {
		c.dropped.Add(1)
		return
	}
	select {
	case c.ch <- event:
	default:
		c.dropped.Add(1)
	}
}

// Close stops accepting events and waits for the buffer to drain.
// Report must not race with Close.
func (c *Collector) Close() {
	if c.closed.Swap(true) {
		return
	}
	c.mu.Lock()
	c.endTime = time.Now()
	c.mu.Unlock()
	close(c.ch)
	<-c.done
}

// Events returns a copy of collected events.
func (c *Collector) Events() []core.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]core.Event, len(c.events))
	copy(result, c.events)
	return result
}

// DroppedEvents returns how many events did not fit in the buffer.
func (c *Collector) DroppedEvents() int64 {
	return c.dropped.Load()
}

// Duration returns the run duration, up to Close or up to now.
func (c *Collector) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.endTime.IsZero() {
		return c.endTime.Sub(c.startTime)
	}
	return time.Since(c.startTime)
}

// Compute returns metrics over everything collected so far.
func (c *Collector) Compute() *Metrics {
	return ComputeMetrics(c.Events(), c.Duration())
}
