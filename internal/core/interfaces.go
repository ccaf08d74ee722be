// Package core defines the collaborators every lighting effect consumes:
// a millisecond clock, a uniform random source and a light output sink.
package core

// Output is the light output sink. Writes are fire-and-forget and the last
// write wins.
type Output interface {
	SetBinary(on bool)
	SetIntensity(value uint8)
}

// Event describes one completed effect run.
type Event struct {
	Effect   string
	Started  Millis // clock reading when the effect became active
	Finished Millis // clock reading on the tick it reported done
	Ticks    int    // advance calls spent in the effect
	Sequence uint64 // position of the effect in the show, starting at 1
}

// Reporter receives effect lifecycle events from the sequencer.
type Reporter interface {
	Report(Event)
}

// NullReporter discards all events.
var NullReporter Reporter = nullReporter{}

type nullReporter struct{}

func (nullReporter) Report(Event) {}

// NullOutput discards every write.
var NullOutput Output = nullOutput{}

type nullOutput struct{}

func (nullOutput) SetBinary(bool)     {}
func (nullOutput) SetIntensity(uint8) {}
