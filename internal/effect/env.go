package effect

import (
	"log/slog"

	"flicker/internal/core"
)

// maxIntensity is the top of the 8-bit output range.
const maxIntensity = 255

// Env bundles the collaborators an effect reads from and writes to.
type Env struct {
	Clock  core.Clock
	Rand   core.Random
	Out    core.Output
	Timing Timing
	Logger *slog.Logger

	toggled bool // last level written by Toggle
}

// NewEnv creates an Env with the default timing.
func NewEnv(clock core.Clock, rnd core.Random, out core.Output) *Env {
	return &Env{
		Clock:  clock,
		Rand:   rnd,
		Out:    out,
		Timing: DefaultTiming(),
	}
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func (e *Env) now() core.Millis {
	return e.Clock.Millis()
}

// arm starts timing a new phase.
func (e *Env) arm(s *State) {
	s.StartTime = e.now()
}

// elapsed is the wraparound-safe time spent in the current phase.
func (e *Env) elapsed(s *State) core.Millis {
	return core.Elapsed(e.now(), s.StartTime)
}

func (e *Env) uniform(r Range) int {
	return e.Rand.Uniform(r.Min, r.Max)
}

func (e *Env) level(r Range) uint8 {
	return clampLevel(e.uniform(r))
}

// invalidPhase finishes an effect whose step is outside its known phases.
func (e *Env) invalidPhase(k Kind, s *State) bool {
	e.logger().Error("invalid phase, finishing effect", "effect", k.String(), "step", s.Step)
	return true
}

func coinFlip(e *Env) bool {
	return core.CoinFlip(e.Rand)
}

// millis converts a drawn duration, treating negatives as zero.
func millis(v int) core.Millis {
	if v < 0 {
		return 0
	}
	return core.Millis(v)
}

func clampLevel(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > maxIntensity:
		return maxIntensity
	}
	return uint8(v)
}
