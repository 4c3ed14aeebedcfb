package pinwheel

import (
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/asset"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/mesh"
)

// BladeTemplate is the parametric vertex data one blade mesh is built from.
// UVs are optional; when present there must be one per position.
type BladeTemplate struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
}

// bladeIndices splits the blade quad along the diagonal from vertex 1 to vertex 3.
var bladeIndices = [...]uint32{0, 3, 1, 1, 3, 2}

// BladeIndices returns a copy of the fixed blade triangulation [0,3,1, 1,3,2].
func BladeIndices() []uint32 {
	out := make([]uint32, len(bladeIndices))
	copy(out, bladeIndices[:])
	return out
}

// DefaultBladeTemplate returns the thin blade used by the pinwheel scene: a sliver from the
// hub at the origin out to y=2, facing +Z. Vertex 3 coincides with vertex 0, so the second
// triangle is degenerate.
//
// Parameters:
//   - withUVs: attach the UV channel
//
// Returns:
//   - BladeTemplate: a freshly allocated template
func DefaultBladeTemplate(withUVs bool) BladeTemplate {
	t := BladeTemplate{
		Positions: [][3]float32{
			{0, 0, 0},
			{0.5, 2, 0},
			{1, 2, 0},
			{0, 0, 0},
		},
		Normals: [][3]float32{
			{0, 0, 1},
			{0, 0, 1},
			{0, 0, 1},
			{0, 0, 1},
		},
	}
	if withUVs {
		t.UVs = [][2]float32{{0, 1}, {0.5, 0}, {1, 0}, {0.5, 1}}
	}
	return t
}

// BuildBlade registers one blade mesh built from tmpl. The mesh takes ownership of the
// template's slices; pass a deep copy when tmpl is shared between blades.
// Panics with a "mesh: ..." message if tmpl breaks a mesh invariant, e.g. fewer than 4
// vertices or mismatched normals.
//
// Parameters:
//   - meshes: the store to register the mesh in
//   - tmpl: positions, normals and optional UVs
//
// Returns:
//   - asset.Handle[mesh.Mesh]: the new mesh's handle
func BuildBlade(meshes asset.Store[mesh.Mesh], tmpl BladeTemplate) asset.Handle[mesh.Mesh] {
	opts := []mesh.MeshBuilderOption{
		mesh.WithName("blade"),
		mesh.WithPositions(tmpl.Positions),
		mesh.WithNormals(tmpl.Normals),
		mesh.WithIndices(BladeIndices()),
	}
	if len(tmpl.UVs) > 0 {
		opts = append(opts, mesh.WithUVs(tmpl.UVs))
	}
	return meshes.Add(mesh.NewMesh(opts...))
}
