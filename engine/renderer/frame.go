package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/asset"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/camera"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/light"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/material"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/mesh"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/scene"
)

// drawItem is one enabled game object resolved against the scene's asset stores.
type drawItem struct {
	objectID     uint64
	meshHandle   asset.Handle[mesh.Mesh]
	mesh         mesh.Mesh
	material     material.Material
	model        common.Mat4
	normalMatrix common.Mat4
}

// frame is a scene flattened for drawing. Everything a backend needs is captured here
// so the scene is read exactly once per Render.
type frame struct {
	camera     camera.Camera
	viewProj   common.Mat4
	cameraPos  [3]float32
	exposure   float32
	clearColor common.Color
	lights     []light.Light
	ambient    [3]float32
	items      []drawItem
}

// defaultMaterial is used for objects without a material handle.
var defaultMaterial = material.NewMaterial(material.WithName("default"))

// buildFrame flattens s. Objects that are disabled or have no mesh are skipped.
// A scene without a camera cannot be drawn and panics.
func buildFrame(s scene.Scene) *frame {
	cam := s.Camera()
	if cam == nil {
		panic(fmt.Sprintf("renderer: Render: scene %q has no camera", s.Name()))
	}

	f := &frame{
		camera:     cam,
		viewProj:   cam.ViewProjectionMatrix(),
		cameraPos:  cam.Position(),
		exposure:   cam.Exposure(),
		clearColor: cam.ClearColor(),
		ambient:    s.AmbientColor().RGB(),
	}
	for _, l := range s.Lights() {
		if l.Enabled() {
			f.lights = append(f.lights, l)
		}
	}

	for _, obj := range s.Objects() {
		if !obj.Enabled() || !obj.Mesh().IsValid() {
			continue
		}
		m := s.Meshes().MustGet(obj.Mesh())
		mat := defaultMaterial
		if obj.Material().IsValid() {
			mat = s.Materials().MustGet(obj.Material())
		}
		t := obj.Transform()
		f.items = append(f.items, drawItem{
			objectID:     obj.ID(),
			meshHandle:   obj.Mesh(),
			mesh:         m,
			material:     mat,
			model:        t.Matrix(),
			normalMatrix: t.Rotation.Mat4(),
		})
	}
	return f
}
