package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/chewxy/math32"
)

// DefaultExposureEV100 is the exposure value applied when none is configured. It suits an
// indoor scene lit by a few thousand lux.
const DefaultExposureEV100 float32 = 9.7

type cameraImpl struct {
	mu *sync.Mutex

	transform common.Transform

	fov    float32
	aspect float32
	near   float32
	far    float32
	ev100  float32

	hdr         bool
	tonemapping Tonemapping
	bloom       *BloomSettings
	clearColor  common.Color

	viewMatrix           common.Mat4
	projectionMatrix     common.Mat4
	viewProjectionMatrix common.Mat4
}

// Camera defines the interface for the scene's viewpoint.
//
// The camera is placed by a common.Transform and looks down its forward (-Z) axis. It
// also carries the output settings of the frame it renders: HDR, tone-mapping, bloom
// and the clear color. Matrices are recomputed whenever the transform or projection
// parameters change.
type Camera interface {
	// Transform returns the camera's world transform.
	//
	// Returns:
	//   - common.Transform: position and orientation of the camera
	Transform() common.Transform

	// SetTransform replaces the camera's world transform and recomputes its matrices.
	//
	// Parameters:
	//   - t: the new transform
	SetTransform(t common.Transform)

	// Position returns the camera's world-space position.
	Position() [3]float32

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// SetAspect sets the aspect ratio and recomputes the projection.
	//
	// Parameters:
	//   - aspect: the new aspect ratio (width / height)
	SetAspect(aspect float32)

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ViewMatrix returns the current world-to-view matrix (column-major).
	ViewMatrix() common.Mat4

	// ProjectionMatrix returns the current projection matrix (column-major).
	ProjectionMatrix() common.Mat4

	// ViewProjectionMatrix returns projection * view (column-major).
	ViewProjectionMatrix() common.Mat4

	// Exposure returns the linear multiplier that converts scene luminance into the
	// renderer's working range.
	//
	// Returns:
	//   - float32: 1 / (1.2 * 2^EV100)
	Exposure() float32

	// HDR reports whether the camera renders into a high-dynamic-range target.
	HDR() bool

	// Tonemapping returns the curve used to map HDR color to display range.
	Tonemapping() Tonemapping

	// Bloom returns the bloom settings and whether bloom is enabled.
	//
	// Returns:
	//   - BloomSettings: the settings (zero value when disabled)
	//   - bool: true if bloom is enabled
	Bloom() (BloomSettings, bool)

	// ClearColor returns the color the target is cleared to each frame.
	ClearColor() common.Color
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with the given options. Defaults: placed at the origin
// facing -Z, 45° vertical fov, aspect 1, near 0.1, far 100, LDR output, no tone-mapping,
// no bloom, black clear color.
//
// Parameters:
//   - opts: variadic list of CameraBuilderOption functions
//
// Returns:
//   - Camera: the constructed camera
func NewCamera(opts ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		transform:   common.NewTransform(),
		fov:         math32.Pi / 4,
		aspect:      1,
		near:        0.1,
		far:         100,
		ev100:       DefaultExposureEV100,
		tonemapping: TonemappingNone,
		clearColor:  common.Black,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Transform() common.Transform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform
}

func (c *cameraImpl) SetTransform(t common.Transform) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transform = t
	c.updateMatrices()
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform.Translation
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) ViewMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Exposure() float32 {
	return 1 / (1.2 * math32.Pow(2, c.ev100))
}

func (c *cameraImpl) HDR() bool {
	return c.hdr
}

func (c *cameraImpl) Tonemapping() Tonemapping {
	return c.tonemapping
}

func (c *cameraImpl) Bloom() (BloomSettings, bool) {
	if c.bloom == nil {
		return BloomSettings{}, false
	}
	return *c.bloom, true
}

func (c *cameraImpl) ClearColor() common.Color {
	return c.clearColor
}

// updateMatrices recomputes view, projection and view-projection. Callers hold mu,
// except during construction.
func (c *cameraImpl) updateMatrices() {
	world := c.transform
	world.Scale = [3]float32{1, 1, 1}
	c.viewMatrix = common.RigidInverse(world.Matrix())
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul(c.viewMatrix)
}
