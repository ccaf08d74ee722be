package effect

import "flicker/internal/core"

// State is the scratch record an effect advances. The sequencer owns the
// single instance and zeroes it whenever a new effect becomes active.
type State struct {
	Step      int         // phase index within the active effect
	StartTime core.Millis // tick-time at which the current phase began
	Param     int         // phase-scoped value, usually a randomized duration or level
	Counter   int         // repetitions of a sub-phase
}

// Reset zeroes every field.
func (s *State) Reset() {
	*s = State{}
}
