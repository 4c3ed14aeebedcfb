package pinwheel

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/asset"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/game_object"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/light"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/material"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/scene"
	"github.com/jinzhu/copier"
)

// Pinwheel is what SpawnPinwheel created. It is not stored in the scene; after setup only
// the tagged blades and the light remain.
type Pinwheel struct {
	// Blades holds the scene IDs of the blades in fan order.
	Blades [BladesPerPinwheel]uint64
	// FirstFanIndex is the fan index of Blades[0]; the rest follow consecutively.
	FirstFanIndex int
	Material      asset.Handle[material.Material]
	Light         light.Light
}

// SpawnPinwheel adds BladesPerPinwheel blades and one spot light to s.
//
// Every blade gets its own mesh built from a deep copy of tmpl, the translation
// (0, 0, hubDepth) with no rotation, the BladeTag and the next free fan index in the
// scene. The blades share one metallic material of the given color. The spot light is
// placed at lightOrigin and matches the color.
//
// Parameters:
//   - s: the scene; must not be sealed
//   - tmpl: the blade geometry
//   - color: blade and light color
//   - hubDepth: Z translation shared by the blades
//   - lightOrigin: (x, y) of the spot light
//
// Returns:
//   - Pinwheel: the spawned IDs and the light
func SpawnPinwheel(s scene.Scene, tmpl BladeTemplate, color common.Color, hubDepth float32, lightOrigin [2]float32) Pinwheel {
	first := len(s.Query(BladeTag))
	p := Pinwheel{
		FirstFanIndex: first,
		Material: s.Materials().Add(material.NewMaterial(
			material.WithName("blade"),
			material.WithBaseColor(color),
			material.WithRoughness(BladeRoughness),
			material.WithMetallic(BladeMetallic),
		)),
	}

	for i := range BladesPerPinwheel {
		var blade BladeTemplate
		if err := copier.CopyWithOption(&blade, &tmpl, copier.Option{DeepCopy: true}); err != nil {
			panic(fmt.Sprintf("pinwheel: SpawnPinwheel: copy blade template: %v", err))
		}
		p.Blades[i] = s.Add(game_object.NewGameObject(
			game_object.WithMesh(BuildBlade(s.Meshes(), blade)),
			game_object.WithMaterial(p.Material),
			game_object.WithTransform(common.TransformFromXYZ(0, 0, hubDepth)),
			game_object.WithTags(BladeTag),
			game_object.WithFanIndex(first+i),
		))
	}

	p.Light = SpawnPointLight(s, color, lightOrigin[0], lightOrigin[1])
	return p
}
