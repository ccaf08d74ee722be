// Package effect implements the catalog of lighting effects. Every effect is
// a non-blocking state machine: Advance performs at most one phase of work,
// writes the output and reports whether the effect has finished.
package effect

import (
	"fmt"
	"strings"
)

// Kind identifies one effect of the catalog.
type Kind uint8

const (
	None Kind = iota
	Dropout
	Brownout
	RandomFlicker
	RampOn
	RampOff
	MostlyOn
	MostlyOff
	BadWiring
	SteadyOn
	SteadyOff
	Flash
	Toggle

	numKinds
)

var kindNames = [numKinds]string{
	None:          "none",
	Dropout:       "dropout",
	Brownout:      "brownout",
	RandomFlicker: "random_flicker",
	RampOn:        "ramp_on",
	RampOff:       "ramp_off",
	MostlyOn:      "mostly_on",
	MostlyOff:     "mostly_off",
	BadWiring:     "bad_wiring",
	SteadyOn:      "steady_on",
	SteadyOff:     "steady_off",
	Flash:         "flash",
	Toggle:        "toggle",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k names a runnable effect.
func (k Kind) Valid() bool {
	return k > None && k < numKinds
}

// Kinds returns every runnable effect in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds-1)
	for k := None + 1; k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind looks an effect up by name. Dashes and case are ignored, so
// "Ramp-On" and "ramp_on" are equivalent.
func ParseKind(name string) (Kind, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for k := None + 1; k < numKinds; k++ {
		if kindNames[k] == normalized {
			return k, nil
		}
	}
	return None, fmt.Errorf("unknown effect %q", name)
}

// Advance runs one tick of the effect. It returns true exactly once, on the
// tick where the effect finishes; s is then safe to reset.
func (k Kind) Advance(env *Env, s *State) bool {
	switch k {
	case Dropout, Brownout:
		return dropout(env, s, k)
	case RandomFlicker:
		return randomFlicker(env)
	case RampOn:
		return ramp(env, s, true)
	case RampOff:
		return ramp(env, s, false)
	case MostlyOn:
		return mostly(env, s, k, env.Timing.MostlyOnWait, env.Timing.MostlyOnFlicker)
	case MostlyOff:
		return mostly(env, s, k, env.Timing.MostlyOffWait, env.Timing.MostlyOffFlicker)
	case BadWiring:
		return badWiring(env, s)
	case SteadyOn:
		return steadyOn(env)
	case SteadyOff:
		return steadyOff(env)
	case Flash:
		return flash(env, s)
	case Toggle:
		return toggle(env)
	default:
		env.logger().Error("unknown effect, finishing", "effect", k.String())
		return true
	}
}
