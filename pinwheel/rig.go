package pinwheel

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/camera"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/light"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/scene"
)

// SpawnDirectionalLight adds the LED-white sun at (0, 0, 5) facing -Z.
//
// Parameters:
//   - s: the scene; must not be sealed
//
// Returns:
//   - light.Light: the new light
func SpawnDirectionalLight(s scene.Scene) light.Light {
	p := DirectionalLightPosition
	l := light.NewLight(light.LightTypeDirectional,
		light.WithPosition(p[0], p[1], p[2]),
		light.WithColor(common.LEDWhite),
		light.WithIntensity(DirectionalIlluminance),
		light.WithCastsShadows(true),
	)
	s.AddLight(l)
	return l
}

// SpawnPointLight adds a shadow-casting spot light at (x, y, 0) facing -Z.
//
// Parameters:
//   - s: the scene; must not be sealed
//   - color: light color
//   - x, y: position in the z=0 plane
//
// Returns:
//   - light.Light: the new light
func SpawnPointLight(s scene.Scene, color common.Color, x, y float32) light.Light {
	slog.Info("spawning spot light", "transform_x", x)
	l := light.NewLight(light.LightTypeSpot,
		light.WithPosition(x, y, 0),
		light.WithColor(color),
		light.WithIntensity(SpotIntensity),
		light.WithRange(SpotRange),
		light.WithSpotAngles(SpotInnerAngle, SpotOuterAngle),
		light.WithCastsShadows(true),
	)
	s.AddLight(l)
	return l
}

// Bloom returns the scene's bloom: a faint additive glow over pixels brighter than 0.4.
func Bloom() camera.BloomSettings {
	return camera.BloomSettings{
		Intensity:                  0.2,
		LowFrequencyBoost:          0.2,
		LowFrequencyBoostCurvature: 1.0,
		HighPassFrequency:          0.5,
		Prefilter: camera.BloomPrefilter{
			Threshold:         0.4,
			ThresholdSoftness: 0.5,
		},
		CompositeMode: camera.BloomAdditive,
	}
}

// SpawnCamera sets the scene camera: at (0, 0, 10) looking at the origin, HDR with
// TonyMcMapface and Bloom().
//
// Parameters:
//   - s: the scene; must not be sealed
//   - aspect: viewport width / height
//
// Returns:
//   - camera.Camera: the new camera
func SpawnCamera(s scene.Scene, aspect float32) camera.Camera {
	p := CameraPosition
	c := camera.NewCamera(
		camera.WithTransform(common.TransformFromXYZ(p[0], p[1], p[2]).LookingAt(CameraTarget, common.AxisY)),
		camera.WithAspect(aspect),
		camera.WithHDR(true),
		camera.WithTonemapping(camera.TonemappingTonyMcMapface),
		camera.WithBloom(Bloom()),
		camera.WithClearColor(common.Black),
	)
	s.SetCamera(c)
	return c
}
