package effect

// badWiring jitters the level every tick for a random total duration.
// The jitter is written before the phase check, including on the final tick.
func badWiring(env *Env, s *State) bool {
	t := &env.Timing

	env.Out.SetIntensity(env.level(t.BadWiringBand))

	if s.Step == 0 {
		s.Param = env.uniform(t.BadWiringLength)
		env.arm(s)
		s.Step = 1
		return false
	}
	return env.elapsed(s) > millis(s.Param)
}
