package pinwheel

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-pinwheel/config"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/clock"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/scene"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/screenshot"
)

// StartupSystems returns the setup systems in the order they must run: the pinwheels,
// then the directional light, then the camera.
//
// Parameters:
//   - cfg: a validated configuration
//   - aspect: viewport width / height for the camera
//
// Returns:
//   - []engine.System: the startup systems
func StartupSystems(cfg config.Config, aspect float32) []engine.System {
	pinwheels := cfg.ActivePinwheels()
	withUVs := cfg.Features.UVChannel

	spawnPinwheels := func(s scene.Scene, _ clock.Clock) {
		for i, p := range pinwheels {
			color, err := p.ResolveColor()
			if err != nil {
				panic(fmt.Sprintf("pinwheel: StartupSystems: pinwheel %d: %v", i, err))
			}
			SpawnPinwheel(s, DefaultBladeTemplate(withUVs), color, p.HubDepth, p.LightOrigin)
		}
	}
	spawnSun := func(s scene.Scene, _ clock.Clock) {
		SpawnDirectionalLight(s)
	}
	spawnCamera := func(s scene.Scene, _ clock.Clock) {
		SpawnCamera(s, aspect)
	}
	return []engine.System{spawnPinwheels, spawnSun, spawnCamera}
}

// Systems returns the per-frame systems enabled by features, in run order.
//
// Parameters:
//   - features: the feature flags
//
// Returns:
//   - []engine.System: RotateBlades, SwayLight and, if enabled, AnimateCamera
func Systems(features config.Features) []engine.System {
	systems := []engine.System{RotateBlades, SwayLight}
	if features.CameraAnimation {
		systems = append(systems, AnimateCamera)
	}
	return systems
}

// ScreenshotHook captures every rendered frame.
//
// A software frame renderer already holds the frame, so its image is captured directly.
// Otherwise the scene is rendered again with offscreen, which must be a software renderer.
//
// Parameters:
//   - c: the capturer frames are handed to
//   - frame: the renderer the engine draws with
//   - offscreen: a software renderer, or nil when frame is already software
//
// Returns:
//   - engine.PostFrameHook: the hook
func ScreenshotHook(c screenshot.Capturer, frame, offscreen renderer.Renderer) engine.PostFrameHook {
	src := frame
	if frame.BackendType() != renderer.BackendTypeSoftware {
		if offscreen == nil || offscreen.BackendType() != renderer.BackendTypeSoftware {
			panic("pinwheel: ScreenshotHook: a software offscreen renderer is required")
		}
		src = offscreen
	}

	return func(s scene.Scene) error {
		if src != frame {
			if err := src.Render(s); err != nil {
				return err
			}
		}
		img, ok := src.Image()
		if !ok {
			return errors.New("pinwheel: screenshot: renderer has no frame image")
		}
		_, err := c.Capture(img)
		return err
	}
}
