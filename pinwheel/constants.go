package pinwheel

import (
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/game_object"
	"github.com/chewxy/math32"
)

// BladeTag marks every blade so the animation systems can query them as a set.
const BladeTag game_object.Tag = "pinwheel.blade"

// BladesPerPinwheel is how many blades one pinwheel spawns around its hub.
const BladesPerPinwheel = 5

// Blade surface finish.
const (
	BladeRoughness float32 = 0.1
	BladeMetallic  float32 = 1.0
)

// Animation rates.
const (
	// BladeTurnsPerSecond is the spin rate of a rotating blade in full turns.
	BladeTurnsPerSecond float32 = 0.2
	// LightSwayRate is how fast the directional light tips about X, in rad/s.
	LightSwayRate float32 = 0.8
	// CameraOrbitRate is how fast the camera circles the origin, in rad/s.
	CameraOrbitRate float32 = 0.8
)

// Lighting rig values.
const (
	DirectionalIlluminance float32 = 10000
	SpotIntensity          float32 = 80000
	SpotRange              float32 = 20
	SpotInnerAngle         float32 = 0
	SpotOuterAngle         float32 = math32.Pi / 4
)

// Camera rig placement.
var (
	CameraPosition = [3]float32{0, 0, 10}
	CameraTarget   = [3]float32{0, 0, 0}
)

// DirectionalLightPosition is where the sun sits before it starts to sway.
var DirectionalLightPosition = [3]float32{0, 0, 5}
