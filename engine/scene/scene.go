package scene

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/asset"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/camera"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/game_object"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/light"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/material"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/mesh"
)

// Scene defines the interface for a collection of game objects, lights and a camera,
// together with the asset stores their meshes and materials live in.
//
// A scene is populated during setup and then sealed. Once sealed, Add, AddLight and
// SetCamera panic: after setup the set of entities never changes, only their
// transforms do.
type Scene interface {
	// Name returns the scene name.
	//
	// Returns:
	//   - string: the name of the scene
	Name() string

	// Meshes returns the scene's mesh store.
	//
	// Returns:
	//   - asset.Store[mesh.Mesh]: the registry mesh handles resolve against
	Meshes() asset.Store[mesh.Mesh]

	// Materials returns the scene's material store.
	//
	// Returns:
	//   - asset.Store[material.Material]: the registry material handles resolve against
	Materials() asset.Store[material.Material]

	// Add registers a game object, assigning it the next ID if it has none.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a game object by ID.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object, or nil
	//   - bool: true if found
	Get(id uint64) (game_object.GameObject, bool)

	// Count returns the number of game objects.
	Count() int

	// Objects returns every game object in ascending ID order.
	Objects() []game_object.GameObject

	// Query returns every game object carrying tag, in ascending ID order.
	//
	// Parameters:
	//   - tag: the marker to select on
	//
	// Returns:
	//   - []game_object.GameObject: the tagged objects
	Query(tag game_object.Tag) []game_object.GameObject

	// AddLight adds a light to the scene.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// Lights returns every light in insertion order.
	Lights() []light.Light

	// LightsOfType returns the lights of one kind in insertion order.
	//
	// Parameters:
	//   - t: the light type to select
	//
	// Returns:
	//   - []light.Light: the matching lights
	LightsOfType(t light.LightType) []light.Light

	// Camera returns the scene camera, or nil if none has been set.
	Camera() camera.Camera

	// SetCamera sets the scene camera.
	//
	// Parameters:
	//   - c: the camera (must not be nil)
	SetCamera(c camera.Camera)

	// AmbientColor returns the ambient light color, already scaled by its brightness.
	AmbientColor() common.Color

	// Seal ends setup. Further structural changes panic.
	Seal()

	// Sealed reports whether Seal has been called.
	Sealed() bool
}

type scene struct {
	mu *sync.RWMutex

	name   string
	sealed bool

	meshes    asset.Store[mesh.Mesh]
	materials asset.Store[material.Material]

	registry map[uint64]game_object.GameObject
	order    []uint64 // IDs in ascending order
	nextID   uint64

	lights       []light.Light
	cam          camera.Camera
	ambientColor common.Color
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates an empty, unsealed Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:           &sync.RWMutex{},
		name:         name,
		meshes:       asset.NewStore[mesh.Mesh](),
		materials:    asset.NewStore[material.Material](),
		registry:     make(map[uint64]game_object.GameObject),
		nextID:       1,
		ambientColor: common.RGBLinear(0.05, 0.05, 0.05),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Meshes() asset.Store[mesh.Mesh] {
	return s.meshes
}

func (s *scene) Materials() asset.Store[material.Material] {
	return s.materials
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	if obj == nil {
		panic("scene: Add requires a non-nil GameObject")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBeOpen("Add")
	return s.addLocked(obj)
}

func (s *scene) addLocked(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
	}
	id := obj.ID()
	if _, exists := s.registry[id]; exists {
		panic(fmt.Sprintf("scene: Add duplicate GameObject ID %d", id))
	}
	if id >= s.nextID {
		s.nextID = id + 1
	}
	s.registry[id] = obj

	// keep order sorted; IDs are almost always appended in increasing order
	i := len(s.order)
	for i > 0 && s.order[i-1] > id {
		i--
	}
	s.order = append(s.order, 0)
	copy(s.order[i+1:], s.order[i:])
	s.order[i] = id
	return id
}

func (s *scene) Get(id uint64) (game_object.GameObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.registry[id]
	return obj, ok
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	objs := make([]game_object.GameObject, 0, len(s.order))
	for _, id := range s.order {
		objs = append(objs, s.registry[id])
	}
	return objs
}

func (s *scene) Query(tag game_object.Tag) []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var objs []game_object.GameObject
	for _, id := range s.order {
		if obj := s.registry[id]; obj.HasTag(tag) {
			objs = append(objs, obj)
		}
	}
	return objs
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		panic("scene: AddLight requires a non-nil Light")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBeOpen("AddLight")
	s.lights = append(s.lights, l)
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]light.Light(nil), s.lights...)
}

func (s *scene) LightsOfType(t light.LightType) []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []light.Light
	for _, l := range s.lights {
		if l.Type() == t {
			out = append(out, l)
		}
	}
	return out
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(c camera.Camera) {
	if c == nil {
		panic("scene: SetCamera requires a non-nil Camera")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBeOpen("SetCamera")
	s.cam = c
}

func (s *scene) AmbientColor() common.Color {
	return s.ambientColor
}

func (s *scene) Seal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sealed = true
}

func (s *scene) Sealed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sealed
}

func (s *scene) mustBeOpen(op string) {
	if s.sealed {
		panic(fmt.Sprintf("scene: %s called on sealed scene %q", op, s.name))
	}
}
