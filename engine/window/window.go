package window

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Default logical size of the portrait window.
const (
	DefaultWidth  = 720
	DefaultHeight = 1280
)

// Window provides a platform window and the surface the wgpu renderer draws into.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still open.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window is not open
	Close() error

	// ProcessMessages polls pending window events once without blocking.
	// Resize callbacks fire from inside this call.
	//
	// Returns:
	//   - bool: false once the window has been asked to close
	ProcessMessages() bool

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int

	// ScaleFactor returns the factor logical sizes were multiplied by.
	ScaleFactor() float32
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// logicalWidth and logicalHeight are the requested size before scaling.
	logicalWidth  int
	logicalHeight int
	scaleFactor   float32
	resizable     bool

	// width and height track the framebuffer size in pixels.
	width  int
	height int

	platform *glfwWindow

	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow opens a Window with the specified options. Defaults to a 720×1280 portrait
// window at scale factor 1.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	platform, err := openGLFW(w)
	if err != nil {
		return nil, fmt.Errorf("window: create: %w", err)
	}
	w.platform = platform
	return w, nil
}

// newEngineWindow applies defaults and options without touching the platform layer.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:         "pinwheel",
		logicalWidth:  DefaultWidth,
		logicalHeight: DefaultHeight,
		scaleFactor:   1,
		resizable:     true,
	}
	for _, opt := range options {
		opt(w)
	}
	w.width, w.height = pixelSize(w.logicalWidth, w.logicalHeight, w.scaleFactor)
	return w
}

// pixelSize converts a logical size to pixels, rounding to the nearest pixel and never
// going below 1×1.
func pixelSize(width, height int, scale float32) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	pw := int(float32(width)*scale + 0.5)
	ph := int(float32(height)*scale + 0.5)
	return max(pw, 1), max(ph, 1)
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return w.platform.surfaceDescriptor()
}

func (w *engineWindow) IsRunning() bool {
	return w.platform.open()
}

func (w *engineWindow) Close() error {
	return w.platform.close()
}

func (w *engineWindow) ProcessMessages() bool {
	return w.platform.poll()
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) ScaleFactor() float32 {
	return w.scaleFactor
}

// resized records a new framebuffer size and notifies the resize callback.
func (w *engineWindow) resized(width, height int) {
	if width == w.width && height == w.height {
		return
	}
	w.width, w.height = width, height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
