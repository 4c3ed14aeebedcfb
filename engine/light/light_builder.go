package light

import "github.com/Carmen-Shannon/oxy-pinwheel/common"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithTransform sets the placement of the light.
//
// Parameters:
//   - t: the light's transform
//
// Returns:
//   - LightBuilderOption: a function that applies the transform option to a lightImpl
func WithTransform(t common.Transform) LightBuilderOption {
	return func(l *lightImpl) {
		l.transform = t
	}
}

// WithPosition sets the world-space position of the light, keeping its rotation.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.transform.Translation = [3]float32{x, y, z}
	}
}

// WithColor sets the linear color of the light.
//
// Parameters:
//   - c: the light color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(c common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithIntensity sets illuminance (directional) or luminous power (point, spot).
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange sets the attenuation cutoff distance for point and spot lights.
//
// Parameters:
//   - lightRange: the range in world units
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightRange = lightRange
	}
}

// WithSpotAngles sets the inner and outer cone half-angles of a spot light.
//
// Parameters:
//   - inner: full-intensity half-angle in radians
//   - outer: cutoff half-angle in radians
//
// Returns:
//   - LightBuilderOption: a function that applies the cone option to a lightImpl
func WithSpotAngles(inner, outer float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.innerAngle = inner
		l.outerAngle = outer
	}
}

// WithEnabled sets whether the light is active for rendering.
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// WithCastsShadows sets whether this light is eligible for shadowing.
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}
