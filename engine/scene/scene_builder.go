package scene

import (
	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/camera"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/game_object"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/light"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.addLocked(obj)
		}
	}
}

// WithLights adds initial lights to the scene.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append(s.lights, lights...)
	}
}

// WithCamera sets the initial camera.
//
// Parameters:
//   - c: the scene camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(c camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = c
	}
}

// WithAmbientColor sets the ambient light color, pre-scaled by brightness.
//
// Parameters:
//   - c: the ambient color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAmbientColor(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.ambientColor = c
	}
}
