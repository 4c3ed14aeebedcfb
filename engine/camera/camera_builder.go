package camera

import "github.com/Carmen-Shannon/oxy-pinwheel/common"

// CameraBuilderOption is a functional option used to configure a Camera during construction.
type CameraBuilderOption func(*cameraImpl)

// WithTransform sets the camera's world transform.
//
// Parameters:
//   - t: the camera transform, typically built with common.Transform.LookingAt
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's transform
func WithTransform(t common.Transform) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.transform = t
	}
}

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithClipPlanes sets the near and far clipping distances.
//
// Parameters:
//   - near: near plane distance (must be > 0)
//   - far: far plane distance (must be > near)
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithExposureEV100 sets the camera exposure as an EV100 value.
func WithExposureEV100(ev100 float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.ev100 = ev100
	}
}

// WithHDR enables or disables high-dynamic-range output.
func WithHDR(hdr bool) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.hdr = hdr
	}
}

// WithTonemapping sets the tone-mapping curve.
//
// Parameters:
//   - t: the tone-mapping mode
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's tone-mapping
func WithTonemapping(t Tonemapping) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.tonemapping = t
	}
}

// WithBloom enables bloom with the given settings.
//
// Parameters:
//   - b: the bloom settings
//
// Returns:
//   - CameraBuilderOption: a function that enables bloom on the camera
func WithBloom(b BloomSettings) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.bloom = &b
	}
}

// WithClearColor sets the color the render target is cleared to.
func WithClearColor(color common.Color) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.clearColor = color
	}
}
