package core

import "time"

// Millis is a millisecond timestamp from a monotonic clock. It is 32 bits wide
// and wraps after roughly 49.7 days, so intervals must be taken with Elapsed.
type Millis uint32

// Elapsed returns now-start using unsigned arithmetic, which stays correct
// across a single wrap of the counter.
func Elapsed(now, start Millis) Millis {
	return now - start
}

// Duration converts a millisecond count to a time.Duration.
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// ToMillis truncates d to whole milliseconds. Negative durations become 0.
func ToMillis(d time.Duration) Millis {
	if d <= 0 {
		return 0
	}
	return Millis(d / time.Millisecond)
}

// Clock provides the tick-time source and can be mocked for testing.
type Clock interface {
	Millis() Millis
}

// RealClock counts milliseconds since it was created.
type RealClock struct {
	epoch time.Time
}

func NewRealClock() *RealClock {
	return &RealClock{epoch: time.Now()}
}

func (c *RealClock) Millis() Millis {
	return Millis(uint64(time.Since(c.epoch).Milliseconds()))
}

// FakeClock is a test clock that can be manually advanced.
type FakeClock struct {
	current Millis
}

func NewFakeClock(start Millis) *FakeClock {
	return &FakeClock{current: start}
}

func (f *FakeClock) Millis() Millis          { return f.current }
func (f *FakeClock) Advance(d time.Duration) { f.current += ToMillis(d) }
func (f *FakeClock) AdvanceMillis(ms Millis) { f.current += ms }
func (f *FakeClock) Set(ms Millis)           { f.current = ms }
