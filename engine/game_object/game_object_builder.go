package game_object

import (
	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/asset"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/material"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/mesh"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithMesh sets the mesh the GameObject renders.
//
// Parameters:
//   - h: handle into the scene's mesh store
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the mesh
func WithMesh(h asset.Handle[mesh.Mesh]) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mesh = h
	}
}

// WithMaterial sets the material the GameObject is shaded with.
//
// Parameters:
//   - h: handle into the scene's material store
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the material
func WithMaterial(h asset.Handle[material.Material]) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.material = h
	}
}

// WithTransform sets the initial local transform.
//
// Parameters:
//   - t: the transform
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the transform
func WithTransform(t common.Transform) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform = t
	}
}

// WithTags attaches marker tags.
//
// Parameters:
//   - tags: the tags to attach
//
// Returns:
//   - GameObjectBuilderOption: functional option to add tags
func WithTags(tags ...Tag) GameObjectBuilderOption {
	return func(obj *gameObject) {
		for _, t := range tags {
			obj.tags[t] = struct{}{}
		}
	}
}

// WithFanIndex assigns the object's stable position within a radial fan.
//
// Parameters:
//   - index: the fan index (>= 0)
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the fan index
func WithFanIndex(index int) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.fanIndex = index
	}
}
