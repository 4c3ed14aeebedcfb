package pinwheel

import (
	"cmp"
	"slices"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/clock"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/game_object"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/light"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/scene"
	"github.com/chewxy/math32"
)

// RotateBlades spins a growing prefix of the blades about their local Z axes.
//
// Blades are visited in fan-index order. Each visited blade turns by
// BladeTurnsPerSecond full turns per second of delta, and the walk stops right after the
// blade at position floor(elapsed). One more blade joins every second until all of them spin.
//
// Parameters:
//   - s: the scene
//   - c: the frame clock
func RotateBlades(s scene.Scene, c clock.Clock) {
	count := int(math32.Floor(c.Elapsed()))
	angle := BladeTurnsPerSecond * 2 * math32.Pi * c.Delta()

	blades := s.Query(BladeTag)
	slices.SortStableFunc(blades, func(a, b game_object.GameObject) int {
		return cmp.Compare(a.FanIndex(), b.FanIndex())
	})

	for index, blade := range blades {
		blade.RotateLocalZ(angle)
		if index == count {
			break
		}
	}
}

// SwayLight tips every directional light about its local X axis by LightSwayRate * delta.
// The rotation accumulates frame over frame.
//
// Parameters:
//   - s: the scene
//   - c: the frame clock
func SwayLight(s scene.Scene, c clock.Clock) {
	for _, l := range s.LightsOfType(light.LightTypeDirectional) {
		l.RotateLocalX(c.Delta() * LightSwayRate)
	}
}

// AnimateCamera orbits the camera about the world Y axis through CameraTarget at
// CameraOrbitRate, keeping it aimed at the target.
func AnimateCamera(s scene.Scene, c clock.Clock) {
	cam := s.Camera()
	if cam == nil {
		return
	}
	t := cam.Transform()
	t.RotateAround(CameraTarget, common.QuatFromAxisAngle(common.AxisY, CameraOrbitRate*c.Delta()))
	cam.SetTransform(t.LookingAt(CameraTarget, common.AxisY))
}
