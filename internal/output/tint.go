package output

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultLampColor is a warm fluorescent white.
const DefaultLampColor = "#fff4e5"

// Tint maps an 8-bit intensity onto a lamp colour by scaling its HSV value.
type Tint struct {
	h, s, v float64
}

// NewTint parses a "#rrggbb" lamp colour. An empty string selects DefaultLampColor.
func NewTint(hex string) (Tint, error) {
	if hex == "" {
		hex = DefaultLampColor
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Tint{}, fmt.Errorf("lamp color %q: %w", hex, err)
	}
	h, s, v := c.Hsv()
	return Tint{h: h, s: s, v: v}, nil
}

// RGB returns the lamp colour at the given intensity.
func (t Tint) RGB(level uint8) (r, g, b uint8) {
	v := t.v * float64(level) / 255
	return colorful.Hsv(t.h, t.s, v).Clamped().RGB255()
}
