package effect

// steadyOn and steadyOff are one-shot placeholders for a full fluorescent
// start-up sequence.

func steadyOn(env *Env) bool {
	env.Out.SetIntensity(env.level(env.Timing.BurstBand))
	return true
}

func steadyOff(env *Env) bool {
	env.Out.SetBinary(false)
	return true
}

// toggle flips the binary output each time it runs.
func toggle(env *Env) bool {
	env.toggled = !env.toggled
	env.Out.SetBinary(env.toggled)
	return true
}
