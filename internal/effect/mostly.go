package effect

const (
	mostlyStart = iota
	mostlyWait
	mostlyFlickerStart
	mostlyFlicker
)

// mostly alternates a dark wait with a bright flicker. The wait and flicker
// ranges decide whether the lamp reads as mostly on or mostly off.
//
// TODO: MostlyOn and MostlyOff differ only in their ranges; fold them into
// one parameterized effect once the catalog can carry per-entry ranges.
func mostly(env *Env, s *State, k Kind, wait, flicker Range) bool {
	t := &env.Timing

	switch s.Step {
	case mostlyStart:
		s.Param = env.uniform(wait)
		env.arm(s)
		s.Step = mostlyWait

	case mostlyWait:
		if env.elapsed(s) >= millis(s.Param) {
			s.Step = mostlyFlickerStart
		}

	case mostlyFlickerStart:
		s.Counter++
		s.Param = env.uniform(flicker)
		env.arm(s)
		s.Step = mostlyFlicker

	case mostlyFlicker:
		env.Out.SetIntensity(env.level(t.FlickerBand))
		if env.elapsed(s) >= millis(s.Param) {
			env.Out.SetBinary(false)
			if s.Counter > t.Repeats {
				return true
			}
			s.Step = mostlyStart
		}

	default:
		return env.invalidPhase(k, s)
	}

	return false
}
