package effect

const (
	flashOn = iota
	flashHoldOn
	flashHoldOff
)

// flash pulses the light FlashPulses times, FlashPulse on then FlashPulse off.
func flash(env *Env, s *State) bool {
	t := &env.Timing

	switch s.Step {
	case flashOn:
		env.Out.SetBinary(true)
		env.arm(s)
		s.Step = flashHoldOn

	case flashHoldOn:
		if env.elapsed(s) >= t.FlashPulse {
			env.Out.SetBinary(false)
			env.arm(s)
			s.Step = flashHoldOff
		}

	case flashHoldOff:
		if env.elapsed(s) >= t.FlashPulse {
			s.Counter++
			if s.Counter >= t.FlashPulses {
				return true
			}
			s.Step = flashOn
		}

	default:
		return env.invalidPhase(Flash, s)
	}

	return false
}
