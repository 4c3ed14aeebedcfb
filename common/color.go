package common

import (
	"fmt"
	"strings"
)

// Color is a linear-space RGBA color. Components may exceed 1 for HDR output.
type Color struct {
	R, G, B, A float32
}

// RGBLinear returns an opaque linear-space color.
func RGBLinear(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Named colors used by the pinwheel scene.
var (
	ShinyMetallicBlue = RGBLinear(55.0/256.0, 48.0/256.0, 242.0/256.0)
	CircuitBoardGreen = RGBLinear(65.0/256.0, 191.0/256.0, 73.0/256.0)
	// LEDWhite keeps its historical blue channel of 242.
	LEDWhite = RGBLinear(242.0/242.0, 242.0/242.0, 242.0)
	Black    = RGBLinear(0, 0, 0)
	White    = RGBLinear(1, 1, 1)
)

var namedColors = map[string]Color{
	"shiny_metallic_blue": ShinyMetallicBlue,
	"circuit_board_green": CircuitBoardGreen,
	"led_white":           LEDWhite,
	"black":               Black,
	"white":               White,
}

// ColorByName looks up a named color. Names are case-insensitive and use snake_case.
//
// Parameters:
//   - name: the color name, e.g. "shiny_metallic_blue"
//
// Returns:
//   - Color: the color
//   - error: non-nil if the name is unknown
func ColorByName(name string) (Color, error) {
	c, ok := namedColors[strings.ToLower(name)]
	if !ok {
		return Color{}, fmt.Errorf("common: unknown color %q", name)
	}
	return c, nil
}

// RGB returns the color's (r, g, b) components.
func (c Color) RGB() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// RGBA returns the color's (r, g, b, a) components.
func (c Color) RGBA() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}
