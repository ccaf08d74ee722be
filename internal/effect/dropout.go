package effect

// DropoutPhase is a step of the dropout and brownout machines.
type DropoutPhase int

const (
	DropoutStart DropoutPhase = iota
	DropoutWaitWithLightOn
	DropoutFlickerStart
	DropoutFlicker
	DropoutDark
	DropoutBlipStart
	DropoutBlip
	DropoutDone
)

var dropoutPhaseNames = [...]string{
	DropoutStart:           "Start",
	DropoutWaitWithLightOn: "WaitWithLightOn",
	DropoutFlickerStart:    "FlickerStart",
	DropoutFlicker:         "Flicker",
	DropoutDark:            "Dropout",
	DropoutBlipStart:       "DropoutBlipStart",
	DropoutBlip:            "DropoutBlip",
	DropoutDone:            "DropoutDone",
}

func (p DropoutPhase) String() string {
	if p >= 0 && int(p) < len(dropoutPhaseNames) {
		return dropoutPhaseNames[p]
	}
	return "Invalid"
}

// dropout simulates a lamp losing power: hold on, stutter, go dark, blip
// once, then stay dark. A brownout sags to a low level instead of going off.
func dropout(env *Env, s *State, k Kind) bool {
	t := &env.Timing

	switch DropoutPhase(s.Step) {
	case DropoutStart:
		env.Out.SetIntensity(t.PartialOn)
		env.arm(s)
		s.Step = int(DropoutWaitWithLightOn)

	case DropoutWaitWithLightOn:
		if env.elapsed(s) >= t.DropoutWait {
			s.Step = int(DropoutFlickerStart)
		}

	case DropoutFlickerStart:
		env.arm(s)
		s.Step = int(DropoutFlicker)

	case DropoutFlicker:
		randomFlicker(env)
		if env.elapsed(s) >= t.DropoutFlicker {
			s.Step = int(DropoutDark)
		}

	case DropoutDark:
		sag(env, k)
		s.Param = env.uniform(t.BlipDelay)
		env.arm(s)
		s.Step = int(DropoutBlipStart)

	case DropoutBlipStart:
		if env.elapsed(s) >= millis(s.Param) {
			s.Param = env.uniform(t.BlipLength)
			env.arm(s)
			s.Step = int(DropoutBlip)
		}

	case DropoutBlip:
		randomFlicker(env)
		if env.elapsed(s) >= millis(s.Param) {
			sag(env, k)
			env.arm(s)
			s.Step = int(DropoutDone)
		}

	case DropoutDone:
		return env.elapsed(s) > t.DropoutDark

	default:
		return env.invalidPhase(k, s)
	}

	return false
}

// sag writes the outage level: off for a dropout, a dim band for a brownout.
func sag(env *Env, k Kind) {
	if k == Brownout {
		env.Out.SetIntensity(env.level(env.Timing.BrownoutBand))
		return
	}
	env.Out.SetBinary(false)
}
