// Package engine runs the single-threaded frame loop: startup systems once, then per frame
// window events, clock, update systems, render and post-frame hooks.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-pinwheel/engine/clock"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/profiler"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/scene"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/window"
)

// ErrNoRenderer is returned by Run and Step when the engine was built without a renderer.
var ErrNoRenderer = errors.New("engine: no renderer configured")

// System is a callback run against the scene. Startup systems run once before the first
// frame; update systems run once per frame after the clock has advanced.
type System func(s scene.Scene, c clock.Clock)

// PostFrameHook runs after the frame has been rendered. A returned error stops the loop.
type PostFrameHook func(s scene.Scene) error

// engine implements the Engine interface.
type engine struct {
	quitChannel chan struct{}
	quitOnce    sync.Once

	window   window.Window
	renderer renderer.Renderer
	scene    scene.Scene
	clock    clock.Source
	logger   *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	startupSystems []System
	systems        []System
	postFrame      []PostFrameHook

	tickInterval time.Duration // minimum frame duration; 0 = uncapped
	frameLimit   uint64        // 0 = unlimited

	started    bool
	startupErr error // sticky; a half-built scene is never stepped again
	frames     uint64
}

// Engine drives one scene through the frame loop.
type Engine interface {
	// Window returns the window, or nil for a headless engine.
	Window() window.Window

	// Renderer returns the renderer.
	Renderer() renderer.Renderer

	// Scene returns the scene the systems run against.
	Scene() scene.Scene

	// Clock returns the frame clock.
	Clock() clock.Source

	// Frames returns how many frames have completed.
	Frames() uint64

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the target frames per second. 0 or less uncaps the loop.
	//
	// Parameters:
	//   - fps: target frames per second
	SetTickRate(fps float64)

	// Step runs exactly one frame. Startup systems run once, before the first frame, after
	// which the scene is sealed. If a startup system panics, that call and every later call
	// return the same error without running startup again.
	//
	// Returns:
	//   - error: ErrNoRenderer, a startup failure, a render or post-frame error, or a recovered panic
	Step() error

	// Run steps frames until the context is cancelled, Quit is called, the window closes or
	// the frame limit is reached. Those are all clean stops and return nil.
	//
	// Parameters:
	//   - ctx: cancels the loop between frames
	//
	// Returns:
	//   - error: the first frame error
	Run(ctx context.Context) error

	// Quit stops Run after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Defaults: wall clock, 60 frames per second, no frame limit, profiling off.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:  make(chan struct{}),
		logger:       slog.Default(),
		tickInterval: time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.scene == nil {
		panic("engine: NewEngine: a scene is required")
	}
	if e.clock == nil {
		e.clock = clock.NewClock()
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

// resize keeps the render target and camera aspect in step with the window.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	if c := e.scene.Camera(); c != nil {
		c.SetAspect(float32(width) / float32(height))
	}
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Clock() clock.Source {
	return e.clock
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	e.tickInterval = tickInterval(fps)
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Run(ctx context.Context) error {
	if e.renderer == nil {
		return ErrNoRenderer
	}

	e.logger.Info("engine started",
		"scene", e.scene.Name(),
		"backend", e.renderer.BackendType().String(),
		"frame_limit", e.frameLimit,
	)

	for {
		if reason, stop := e.shouldStop(ctx); stop {
			e.logger.Info("engine stopped", "reason", reason, "frames", e.frames)
			return nil
		}

		frameStart := time.Now()
		if err := e.Step(); err != nil {
			e.logger.Error("engine stopped on error", "frame", e.frames, "err", err)
			return err
		}

		if e.tickInterval > 0 {
			if remaining := e.tickInterval - time.Since(frameStart); remaining > 0 {
				timer := time.NewTimer(remaining)
				select {
				case <-ctx.Done():
					timer.Stop()
				case <-e.quitChannel:
					timer.Stop()
				case <-timer.C:
				}
			}
		}
	}
}

// shouldStop reports whether the loop should end before the next frame and why.
func (e *engine) shouldStop(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "context cancelled", true
	case <-e.quitChannel:
		return "quit", true
	default:
	}
	if e.frameLimit > 0 && e.frames >= e.frameLimit {
		return "frame limit reached", true
	}
	if e.window != nil && !e.window.IsRunning() {
		return "window closed", true
	}
	return "", false
}

// startup runs the startup systems and seals the scene.
func (e *engine) startup() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine: startup panicked: %v", r)
			e.logger.Error("startup recovered from panic", "panic", r)
		}
	}()
	for _, sys := range e.startupSystems {
		sys(e.scene, e.clock)
	}
	e.scene.Seal()
	return nil
}

func (e *engine) Step() (err error) {
	if e.renderer == nil {
		return ErrNoRenderer
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine: frame %d panicked: %v", e.frames, r)
			e.logger.Error("frame recovered from panic", "frame", e.frames, "panic", r)
		}
	}()

	if e.startupErr != nil {
		return e.startupErr
	}
	if !e.started {
		e.started = true
		if err := e.startup(); err != nil {
			e.startupErr = err
			return err
		}
	}

	if e.window != nil {
		e.window.ProcessMessages()
	}

	e.clock.Advance()
	for _, sys := range e.systems {
		sys(e.scene, e.clock)
	}

	if err := e.renderer.Render(e.scene); err != nil {
		return err
	}

	for _, hook := range e.postFrame {
		if err := hook(e.scene); err != nil {
			return fmt.Errorf("engine: post-frame: %w", err)
		}
	}

	e.frames++
	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
	return nil
}

// tickInterval converts a frame rate to a minimum frame duration; fps <= 0 uncaps.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
