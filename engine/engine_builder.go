package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-pinwheel/engine/clock"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/profiler"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/scene"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the target frame rate in frames per second.
// Values <= 0 uncap the loop.
//
// Parameters:
//   - fps: target frames per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.tickInterval = tickInterval(fps)
	}
}

// WithFrameLimit stops Run after n frames. 0 means unlimited.
//
// Parameters:
//   - n: the number of frames to run
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(n uint64) EngineBuilderOption {
	return func(e *engine) {
		e.frameLimit = n
	}
}

// WithWindow sets the window whose events are polled each frame and whose resizes
// reach the renderer and camera.
//
// Parameters:
//   - w: an opened Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer each frame is drawn with.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScene sets the scene the systems run against. Required.
//
// Parameters:
//   - s: the Scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithClock replaces the wall clock, e.g. with a fixed-step clock for headless runs.
func WithClock(c clock.Source) EngineBuilderOption {
	return func(e *engine) {
		e.clock = c
	}
}

// WithStartupSystems appends systems run once, in order, before the first frame.
//
// Parameters:
//   - systems: the startup systems
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithStartupSystems(systems ...System) EngineBuilderOption {
	return func(e *engine) {
		e.startupSystems = append(e.startupSystems, systems...)
	}
}

// WithSystems appends update systems run every frame in registration order.
//
// Parameters:
//   - systems: the update systems
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSystems(systems ...System) EngineBuilderOption {
	return func(e *engine) {
		e.systems = append(e.systems, systems...)
	}
}

// WithPostFrame appends hooks run after each frame has rendered.
func WithPostFrame(hooks ...PostFrameHook) EngineBuilderOption {
	return func(e *engine) {
		e.postFrame = append(e.postFrame, hooks...)
	}
}

// WithLogger sets the logger for lifecycle events. Defaults to slog.Default().
func WithLogger(l *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if l != nil {
			e.logger = l
		}
	}
}
