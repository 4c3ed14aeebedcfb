package renderer

import (
	"fmt"
	"strings"
)

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend. It needs a window.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeSoftware selects the headless CPU rasterizer.
	BackendTypeSoftware
)

// String implements fmt.Stringer.
func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeSoftware:
		return "software"
	default:
		return "wgpu"
	}
}

// ParseBackendType maps a config name to a RendererBackendType.
//
// Parameters:
//   - s: "wgpu" or "software" (case-insensitive)
//
// Returns:
//   - RendererBackendType: the matching backend
//   - error: an error if the name is unknown
func ParseBackendType(s string) (RendererBackendType, error) {
	switch strings.ToLower(s) {
	case "wgpu":
		return BackendTypeWGPU, nil
	case "software":
		return BackendTypeSoftware, nil
	}
	return BackendTypeWGPU, fmt.Errorf("renderer: unknown backend %q", s)
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4. The software backend ignores it.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// rendererBackend is implemented by every backend. The Renderer flattens the scene into
// a frame once and hands it to the backend, so backends never walk the scene themselves.
type rendererBackend interface {
	// ConfigureSurface (re)allocates size-dependent targets.
	//
	// Parameters:
	//   - width: the new width of the target in pixels
	//   - height: the new height of the target in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets how frames are delivered to the display.
	SetPresentMode(mode PresentMode)

	// DrawFrame renders one flattened frame.
	//
	// Parameters:
	//   - f: the frame to draw
	//
	// Returns:
	//   - error: an error if the frame could not be drawn or presented
	DrawFrame(f *frame) error

	// Release frees backend resources.
	Release()
}
