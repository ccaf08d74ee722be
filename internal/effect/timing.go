package effect

import (
	"fmt"

	"flicker/internal/core"
)

// Range is a half-open integer interval [Min, Max) for random draws.
type Range struct {
	Min int
	Max int
}

// Timing holds every threshold and random range the effects use. Durations
// are in milliseconds, levels are 0..255.
type Timing struct {
	PartialOn      uint8       // level held while a dropout waits
	DropoutWait    core.Millis // light-on hold before the flicker
	DropoutFlicker core.Millis // flicker window before the outage
	DropoutDark    core.Millis // final dark hold
	BlipDelay      Range       // outage length before the blip
	BlipLength     Range       // blip length
	BrownoutBand   Range       // sagging level used by brownout

	RampIncrement int   // level change per tick
	RampThreshold int   // levels above this are replaced by an unstable value
	BurstBand     Range // over-bright burst level

	MostlyOnWait     Range
	MostlyOnFlicker  Range
	MostlyOffWait    Range
	MostlyOffFlicker Range
	FlickerBand      Range // level written during a mostly-on/off flicker
	Repeats          int   // flicker cycles before mostly-on/off finishes

	BadWiringLength Range
	BadWiringBand   Range

	FlashPulses int
	FlashPulse  core.Millis
}

// DefaultTiming returns the stock parameters.
func DefaultTiming() Timing {
	return Timing{
		PartialOn:      200,
		DropoutWait:    6000,
		DropoutFlicker: 1000,
		DropoutDark:    4000,
		BlipDelay:      Range{500, 3000},
		BlipLength:     Range{50, 400},
		BrownoutBand:   Range{40, 101},

		RampIncrement: 5,
		RampThreshold: 220,
		BurstBand:     Range{230, 256},

		MostlyOnWait:     Range{100, 1000},
		MostlyOnFlicker:  Range{1000, 4000},
		MostlyOffWait:    Range{2000, 6000},
		MostlyOffFlicker: Range{50, 300},
		FlickerBand:      Range{180, 256},
		Repeats:          10,

		BadWiringLength: Range{2000, 8000},
		BadWiringBand:   Range{60, 180},

		FlashPulses: 2,
		FlashPulse:  100,
	}
}

// Validate reports the first inconsistent parameter.
func (t Timing) Validate() error {
	ranges := []struct {
		name string
		r    Range
		hi   int
	}{
		{"blip delay", t.BlipDelay, 0},
		{"blip length", t.BlipLength, 0},
		{"brownout band", t.BrownoutBand, maxIntensity + 1},
		{"burst band", t.BurstBand, maxIntensity + 1},
		{"mostly-on wait", t.MostlyOnWait, 0},
		{"mostly-on flicker", t.MostlyOnFlicker, 0},
		{"mostly-off wait", t.MostlyOffWait, 0},
		{"mostly-off flicker", t.MostlyOffFlicker, 0},
		{"flicker band", t.FlickerBand, maxIntensity + 1},
		{"bad wiring length", t.BadWiringLength, 0},
		{"bad wiring band", t.BadWiringBand, maxIntensity + 1},
	}
	for _, rc := range ranges {
		if rc.r.Min < 0 || rc.r.Max < rc.r.Min {
			return fmt.Errorf("%s: invalid range [%d, %d)", rc.name, rc.r.Min, rc.r.Max)
		}
		if rc.hi > 0 && rc.r.Max > rc.hi {
			return fmt.Errorf("%s: range [%d, %d) exceeds %d", rc.name, rc.r.Min, rc.r.Max, rc.hi-1)
		}
	}
	if t.RampIncrement < 1 {
		return fmt.Errorf("ramp increment must be >= 1, got %d", t.RampIncrement)
	}
	if t.RampThreshold < 0 || t.RampThreshold > maxIntensity {
		return fmt.Errorf("ramp threshold must be within 0..%d, got %d", maxIntensity, t.RampThreshold)
	}
	if t.Repeats < 0 {
		return fmt.Errorf("repeats must be >= 0, got %d", t.Repeats)
	}
	if t.FlashPulses < 1 {
		return fmt.Errorf("flash pulses must be >= 1, got %d", t.FlashPulses)
	}
	return nil
}
