package effect

// ramp walks the level by RampIncrement per tick. Levels above RampThreshold
// are swapped for a sag or an over-bright burst so the tube looks unstable
// near full power. Step holds the distance travelled.
func ramp(env *Env, s *State, up bool) bool {
	t := &env.Timing

	level := s.Step
	if !up {
		level = maxIntensity - s.Step
	}

	if level > t.RampThreshold {
		env.Out.SetIntensity(unstable(env))
	} else {
		env.Out.SetIntensity(clampLevel(level))
	}

	inc := t.RampIncrement
	if inc < 1 {
		inc = 1
	}
	s.Step += inc
	if s.Step > maxIntensity {
		s.Step = 0
		return true
	}
	return false
}

func unstable(env *Env) uint8 {
	if coinFlip(env) {
		return env.level(env.Timing.BrownoutBand)
	}
	return env.level(env.Timing.BurstBand)
}
