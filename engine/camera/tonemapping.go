package camera

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/chewxy/math32"
)

// Tonemapping selects the curve that maps HDR scene color into display range.
type Tonemapping int

const (
	// TonemappingNone clamps each channel to [0, 1].
	TonemappingNone Tonemapping = iota
	// TonemappingReinhard applies c / (1 + c) per channel.
	TonemappingReinhard
	// TonemappingReinhardLuminance applies Reinhard to luminance and rescales the color,
	// preserving hue.
	TonemappingReinhardLuminance
	// TonemappingAcesFitted applies the Narkowicz fit of the ACES reference curve.
	TonemappingAcesFitted
	// TonemappingTonyMcMapface is a filmic curve that compresses luminance and desaturates
	// bright highlights toward white instead of clipping their hue.
	TonemappingTonyMcMapface
)

var tonemappingNames = map[Tonemapping]string{
	TonemappingNone:              "none",
	TonemappingReinhard:          "reinhard",
	TonemappingReinhardLuminance: "reinhard_luminance",
	TonemappingAcesFitted:        "aces_fitted",
	TonemappingTonyMcMapface:     "tony_mc_mapface",
}

// String implements fmt.Stringer.
func (t Tonemapping) String() string {
	if n, ok := tonemappingNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Tonemapping(%d)", int(t))
}

// ParseTonemapping parses the snake_case name of a tone-mapping mode.
//
// Parameters:
//   - s: the mode name, e.g. "tony_mc_mapface"
//
// Returns:
//   - Tonemapping: the parsed mode
//   - error: non-nil if s is not a known mode
func ParseTonemapping(s string) (Tonemapping, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, n := range tonemappingNames {
		if n == s {
			return t, nil
		}
	}
	return TonemappingNone, fmt.Errorf("camera: unknown tonemapping %q", s)
}

// Apply maps a linear HDR color into [0, 1].
//
// Parameters:
//   - c: linear RGB, already multiplied by exposure
//
// Returns:
//   - [3]float32: linear RGB in [0, 1], ready for display encoding
func (t Tonemapping) Apply(c [3]float32) [3]float32 {
	switch t {
	case TonemappingReinhard:
		for i := range c {
			c[i] = c[i] / (1 + c[i])
		}
	case TonemappingReinhardLuminance:
		l := Luminance(c)
		if l > 0 {
			s := (l / (1 + l)) / l
			c = [3]float32{c[0] * s, c[1] * s, c[2] * s}
		}
	case TonemappingAcesFitted:
		for i := range c {
			x := c[i]
			c[i] = (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
		}
	case TonemappingTonyMcMapface:
		c = tonyMcMapface(c)
	}
	for i := range c {
		c[i] = common.Saturate(c[i])
	}
	return c
}

// Luminance returns the Rec. 709 luminance of a linear color.
func Luminance(c [3]float32) float32 {
	return 0.2126*c[0] + 0.7152*c[1] + 0.0722*c[2]
}

// tonyMcMapface compresses luminance with a toe-and-shoulder curve and blends highlights
// toward their compressed luminance, so saturated over-bright colors fade to white.
func tonyMcMapface(c [3]float32) [3]float32 {
	l := Luminance(c)
	if l <= 0 {
		return [3]float32{}
	}
	mapped := l * l / (l*l + 0.18*l + 0.02)
	hue := [3]float32{c[0] / l * mapped, c[1] / l * mapped, c[2] / l * mapped}
	desat := smoothstep(0.6, 4, l)
	for i := range hue {
		hue[i] += (mapped - hue[i]) * desat
	}
	return hue
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := common.Saturate((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// LinearToSRGB encodes a linear channel value in [0, 1] with the sRGB transfer function.
func LinearToSRGB(x float32) float32 {
	if x <= 0.0031308 {
		return x * 12.92
	}
	return 1.055*math32.Pow(x, 1/2.4) - 0.055
}
