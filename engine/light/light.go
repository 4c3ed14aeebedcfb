package light

import (
	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/chewxy/math32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only orientation.
	// Its intensity is an illuminance in lux and does not attenuate with distance.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// Its intensity is a luminous power in lumens, attenuated up to Range.
	LightTypePoint

	// LightTypeSpot represents a point light restricted to a cone around its forward axis.
	// Attenuates with both distance and angle from the cone axis.
	LightTypeSpot
)

// String implements fmt.Stringer.
func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	}
	return "unknown"
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType    LightType
	transform    common.Transform
	color        common.Color
	intensity    float32
	lightRange   float32
	innerAngle   float32 // radians
	outerAngle   float32 // radians
	enabled      bool
	castsShadows bool
}

// Light defines the interface for a light source in the scene.
//
// A light is placed and oriented by a common.Transform. Directional lights use only
// the rotation; point lights use only the translation; spot lights use both, shining
// along the transform's forward (-Z) axis.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional, point, or spot)
	Type() LightType

	// Transform returns the light's placement.
	//
	// Returns:
	//   - common.Transform: translation and rotation of the light
	Transform() common.Transform

	// SetTransform replaces the light's placement.
	//
	// Parameters:
	//   - t: the new transform
	SetTransform(t common.Transform)

	// RotateLocalX turns the light about its own X axis.
	//
	// Parameters:
	//   - angle: rotation in radians
	RotateLocalX(angle float32)

	// Position returns the world-space position of the light.
	// Meaningless for directional lights.
	Position() [3]float32

	// Direction returns the normalized direction the light travels in (the transform's
	// forward axis). Meaningless for point lights.
	Direction() [3]float32

	// Color returns the linear color of the light.
	Color() common.Color

	// Intensity returns illuminance (lux) for directional lights and luminous power
	// (lumens) for point and spot lights.
	Intensity() float32

	// LuminousIntensity converts Intensity into the per-steradian quantity the shading
	// model expects: lux for directional lights, candela for point and spot lights.
	//
	// Returns:
	//   - float32: the converted intensity
	LuminousIntensity() float32

	// Range returns the distance beyond which point and spot lights contribute nothing.
	Range() float32

	// InnerAngle returns the spot cone half-angle in radians inside which intensity is full.
	InnerAngle() float32

	// OuterAngle returns the spot cone half-angle in radians outside which intensity is zero.
	OuterAngle() float32

	// Enabled returns whether this light is active for rendering.
	Enabled() bool

	// CastsShadows returns whether this light is eligible for shadowing.
	CastsShadows() bool

	// SetColor sets the linear color of the light.
	SetColor(c common.Color)

	// SetIntensity sets the light's intensity, in the units described by Intensity.
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light.
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the given type with the provided options.
// Defaults to a white light at the origin facing -Z, intensity 1, range 20, and a spot
// cone from 0 to π/4.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions
//
// Returns:
//   - Light: the constructed light
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:  lightType,
		transform:  common.NewTransform(),
		color:      common.White,
		intensity:  1,
		lightRange: 20,
		innerAngle: 0,
		outerAngle: math32.Pi / 4,
		enabled:    true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Transform() common.Transform {
	return l.transform
}

func (l *lightImpl) SetTransform(t common.Transform) {
	l.transform = t
}

func (l *lightImpl) RotateLocalX(angle float32) {
	l.transform.RotateLocalX(angle)
}

func (l *lightImpl) Position() [3]float32 {
	return l.transform.Translation
}

func (l *lightImpl) Direction() [3]float32 {
	return common.Normalize3(l.transform.Forward())
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) LuminousIntensity() float32 {
	if l.lightType == LightTypeDirectional {
		return l.intensity
	}
	return l.intensity / (4 * math32.Pi)
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) InnerAngle() float32 {
	return l.innerAngle
}

func (l *lightImpl) OuterAngle() float32 {
	return l.outerAngle
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) SetColor(c common.Color) {
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
