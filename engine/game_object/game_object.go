package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/asset"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/material"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/mesh"
)

// Tag is a marker attached to a GameObject so that a scene can query every object that
// carries it.
type Tag string

// NoFanIndex is the FanIndex of objects that are not part of a radial fan.
const NoFanIndex = -1

type gameObject struct {
	id       uint64
	enabled  atomic.Bool
	mesh     asset.Handle[mesh.Mesh]
	material asset.Handle[material.Material]
	tags     map[Tag]struct{}
	fanIndex int

	mu        sync.RWMutex
	transform common.Transform
}

// GameObject defines the interface for a renderable scene entity: a mesh, a material
// and a transform, plus marker tags and an optional fan index.
//
// Mesh and material are referenced by handle into the owning scene's asset stores.
// Only the transform is mutable after construction.
type GameObject interface {
	// ID returns the object's unique identifier. Zero until the object is added to a scene.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's unique identifier. Called by the scene on Add.
	//
	// Parameters:
	//   - id: the identifier to assign
	SetID(id uint64)

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled enables or disables rendering of the object.
	//
	// Parameters:
	//   - enabled: true to render the object
	SetEnabled(enabled bool)

	// Mesh returns the handle of the object's mesh.
	//
	// Returns:
	//   - asset.Handle[mesh.Mesh]: the mesh handle (invalid if the object has no mesh)
	Mesh() asset.Handle[mesh.Mesh]

	// Material returns the handle of the object's material.
	//
	// Returns:
	//   - asset.Handle[material.Material]: the material handle (invalid if unset)
	Material() asset.Handle[material.Material]

	// Transform returns a copy of the object's local transform.
	//
	// Returns:
	//   - common.Transform: translation, rotation and scale
	Transform() common.Transform

	// SetTransform replaces the object's local transform.
	//
	// Parameters:
	//   - t: the new transform
	SetTransform(t common.Transform)

	// RotateLocalZ turns the object about its own Z axis.
	//
	// Parameters:
	//   - angle: rotation in radians
	RotateLocalZ(angle float32)

	// HasTag reports whether the object carries tag.
	//
	// Parameters:
	//   - tag: the tag to test
	//
	// Returns:
	//   - bool: true if tagged
	HasTag(tag Tag) bool

	// Tags returns the object's tags in no particular order.
	Tags() []Tag

	// FanIndex returns the object's stable position within a radial fan, or NoFanIndex.
	//
	// Returns:
	//   - int: the assigned fan index
	FanIndex() int
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject with the provided options. Defaults to
// enabled, an identity transform and no fan index.
//
// Parameters:
//   - options: variadic list of GameObjectBuilderOption functions
//
// Returns:
//   - GameObject: the constructed object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	g := &gameObject{
		tags:      make(map[Tag]struct{}),
		fanIndex:  NoFanIndex,
		transform: common.NewTransform(),
	}
	g.enabled.Store(true)
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Mesh() asset.Handle[mesh.Mesh] {
	return g.mesh
}

func (g *gameObject) Material() asset.Handle[material.Material] {
	return g.material
}

func (g *gameObject) Transform() common.Transform {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.transform
}

func (g *gameObject) SetTransform(t common.Transform) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform = t
}

func (g *gameObject) RotateLocalZ(angle float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform.RotateLocalZ(angle)
}

func (g *gameObject) HasTag(tag Tag) bool {
	_, ok := g.tags[tag]
	return ok
}

func (g *gameObject) Tags() []Tag {
	tags := make([]Tag, 0, len(g.tags))
	for t := range g.tags {
		tags = append(tags, t)
	}
	return tags
}

func (g *gameObject) FanIndex() int {
	return g.fanIndex
}
