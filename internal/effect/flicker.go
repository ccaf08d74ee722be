package effect

// randomFlicker is a one-tick blink: half the time a random level across the
// full range, otherwise off. Dropout and brownout reuse it every tick.
func randomFlicker(env *Env) bool {
	if coinFlip(env) {
		env.Out.SetIntensity(env.level(Range{0, maxIntensity + 1}))
	} else {
		env.Out.SetBinary(false)
	}
	return true
}
