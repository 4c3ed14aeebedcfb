package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// errNotOpen is returned when a platform call is made on a window that was never opened
// or has already been closed.
var errNotOpen = errors.New("window: not open")

// glfwWindow is the GLFW side of an engineWindow.
type glfwWindow struct {
	handle *glfw.Window
	closed bool
}

// openGLFW initialises GLFW and creates a window sized to w's pixel size. The calling
// goroutine stays locked to its OS thread, which GLFW requires for every later call.
//
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func openGLFW(w *engineWindow) (*glfwWindow, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize GLFW: %w", err)
	}

	// no OpenGL context; wgpu brings its own API
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	resizable := glfw.False
	if w.resizable {
		resizable = glfw.True
	}
	glfw.WindowHint(glfw.Resizable, resizable)

	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create GLFW window: %w", err)
	}

	// Framebuffer size, not window size: they differ on high-DPI displays.
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resized(width, height)
	})
	w.width, w.height = handle.GetFramebufferSize()

	return &glfwWindow{handle: handle}, nil
}

// surfaceDescriptor builds the platform surface descriptor through the wgpuglfw bridge.
func (g *glfwWindow) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	if g == nil || g.closed {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(g.handle)
}

func (g *glfwWindow) open() bool {
	return g != nil && !g.closed && !g.handle.ShouldClose()
}

// poll drains pending events without blocking and reports whether the window is still open.
func (g *glfwWindow) poll() bool {
	if g == nil || g.closed {
		return false
	}
	glfw.PollEvents()
	return g.open()
}

// close destroys the window and shuts GLFW down.
func (g *glfwWindow) close() error {
	if g == nil || g.closed {
		return errNotOpen
	}
	g.closed = true
	g.handle.Destroy()
	glfw.Terminate()
	return nil
}
