package renderer

import (
	"fmt"
	"image"
	"sync"

	"github.com/Carmen-Shannon/oxy-pinwheel/engine/scene"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/window"
)

// Default headless target size, matching the portrait window.
const (
	DefaultWidth  = 720
	DefaultHeight = 1280
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     rendererBackend
	software    *softwareRendererBackendImpl

	width  int
	height int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingSize          *[2]int
}

// Renderer draws a scene through one backend.
//
// Each Render flattens the scene once: enabled objects are resolved against the scene's
// mesh and material stores and drawn with the scene's camera and enabled lights. The
// wgpu backend presents to the window surface; the software backend keeps the last
// frame in memory, readable through Image.
type Renderer interface {
	// BackendType returns the backend this renderer was created with.
	BackendType() RendererBackendType

	// Render draws one frame of s.
	// A scene without a camera is a programming error and panics.
	//
	// Parameters:
	//   - s: the scene to draw
	//
	// Returns:
	//   - error: an error if the backend failed to draw or present the frame
	Render(s scene.Scene) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Size returns the current target size in pixels.
	Size() (width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Image returns a copy of the last rendered frame.
	//
	// Returns:
	//   - *image.RGBA: the frame in sRGB, or nil
	//   - bool: false when the backend does not keep frames in CPU memory
	Image() (*image.RGBA, bool)

	// Release frees all backend resources. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer using the specified backend type, window, and options.
//
// The wgpu backend renders to win's surface and requires a window. The software backend
// sizes itself from win when one is given, otherwise from WithSize, otherwise
// DefaultWidth × DefaultHeight.
//
// Parameters:
//   - backendType: the backend to use
//   - win: the Window the renderer draws to (may be nil for the software backend)
//   - options: variadic list of RendererBuilderOption functions to configure the renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if the GPU device could not be initialised
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		width:       DefaultWidth,
		height:      DefaultHeight,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	if win != nil {
		r.width, r.height = win.Width(), win.Height()
	} else if r.pendingSize != nil {
		r.width, r.height = r.pendingSize[0], r.pendingSize[1]
	}

	switch backendType {
	case BackendTypeSoftware:
		r.software = newSoftwareRendererBackend(r.width, r.height)
		r.backend = r.software
	default:
		if win == nil {
			panic("renderer: NewRenderer: the wgpu backend requires a window")
		}
		msaa := MSAA4x
		if r.pendingMSAA != nil {
			msaa = *r.pendingMSAA
		}
		backend, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
		if err != nil {
			return nil, err
		}
		if r.pendingPresentMode != nil {
			backend.SetPresentMode(*r.pendingPresentMode)
		}
		backend.ConfigureSurface(r.width, r.height)
		r.backend = backend
	}
	return r, nil
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) Render(s scene.Scene) error {
	f := buildFrame(s)
	if err := r.backend.DrawFrame(f); err != nil {
		return fmt.Errorf("renderer: %s frame: %w", r.backendType, err)
	}
	return nil
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Image() (*image.RGBA, bool) {
	if r.software == nil {
		return nil, false
	}
	return r.software.Image(), true
}

func (r *renderer) Release() {
	r.backend.Release()
}
