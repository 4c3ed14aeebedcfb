// Package mesh holds CPU-side triangle geometry: index-aligned vertex attributes plus a
// triangulation, with helpers to pack both for GPU upload.
package mesh

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	mu        sync.RWMutex
	name      string
	positions [][3]float32
	normals   [][3]float32
	uvs       [][2]float32
	indices   []uint32
}

// Mesh is an indexed triangle list with per-vertex positions and normals and an optional
// UV channel.
//
// The invariants below hold for every Mesh returned by NewMesh; violating them at
// construction time panics:
//   - len(Positions) == len(Normals)
//   - len(UVs) is 0 or len(Positions)
//   - len(Indices) is a multiple of 3 and every index is < len(Positions)
type Mesh interface {
	// Name returns the debug name of the mesh.
	Name() string

	// Positions returns a copy of the vertex positions.
	//
	// Returns:
	//   - [][3]float32: positions in model space
	Positions() [][3]float32

	// Normals returns a copy of the vertex normals.
	//
	// Returns:
	//   - [][3]float32: unit normals, index-aligned with Positions
	Normals() [][3]float32

	// UVs returns a copy of the texture coordinates, or nil when the mesh has no UV channel.
	//
	// Returns:
	//   - [][2]float32: texture coordinates, index-aligned with Positions
	UVs() [][2]float32

	// HasUVs reports whether the UV channel is populated.
	HasUVs() bool

	// Indices returns a copy of the triangulation.
	//
	// Returns:
	//   - []uint32: vertex indices, three per triangle
	Indices() []uint32

	// Triangles returns the triangulation grouped into triples.
	//
	// Returns:
	//   - [][3]uint32: one entry per triangle, in winding order
	Triangles() [][3]uint32

	// VertexCount returns the number of vertices.
	VertexCount() int

	// IndexCount returns the number of indices.
	IndexCount() int

	// SetPosition replaces the position of vertex i. It panics if i is out of range.
	//
	// Parameters:
	//   - i: vertex index
	//   - p: new model-space position
	SetPosition(i int, p [3]float32)

	// BoundingRadius returns the distance from the model origin to the farthest vertex.
	BoundingRadius() float32

	// VertexData packs the vertices as GPUVertex records for a vertex buffer.
	//
	// Returns:
	//   - []byte: len(Positions) * GPUVertexSize bytes
	VertexData() []byte

	// IndexData packs the indices as little-endian uint32 for an index buffer.
	//
	// Returns:
	//   - []byte: len(Indices) * 4 bytes
	IndexData() []byte
}

var _ Mesh = &mesh{}

// NewMesh creates a Mesh from the provided options and validates it.
// Invalid geometry is a programming error and panics.
//
// Parameters:
//   - options: variadic list of MeshBuilderOption functions
//
// Returns:
//   - Mesh: the constructed mesh
func NewMesh(options ...MeshBuilderOption) Mesh {
	m := &mesh{}
	for _, opt := range options {
		opt(m)
	}
	if err := m.validate(); err != nil {
		panic(fmt.Sprintf("mesh: NewMesh %q: %v", m.name, err))
	}
	return m
}

func (m *mesh) validate() error {
	if len(m.positions) != len(m.normals) {
		return fmt.Errorf("%d positions but %d normals", len(m.positions), len(m.normals))
	}
	if len(m.uvs) != 0 && len(m.uvs) != len(m.positions) {
		return fmt.Errorf("%d uvs for %d positions", len(m.uvs), len(m.positions))
	}
	if len(m.indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(m.indices))
	}
	for i, idx := range m.indices {
		if int(idx) >= len(m.positions) {
			return fmt.Errorf("index %d at %d references vertex outside [0,%d)", idx, i, len(m.positions))
		}
	}
	return nil
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Positions() [][3]float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([][3]float32(nil), m.positions...)
}

func (m *mesh) Normals() [][3]float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([][3]float32(nil), m.normals...)
}

func (m *mesh) UVs() [][2]float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.uvs) == 0 {
		return nil
	}
	return append([][2]float32(nil), m.uvs...)
}

func (m *mesh) HasUVs() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.uvs) > 0
}

func (m *mesh) Indices() []uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]uint32(nil), m.indices...)
}

func (m *mesh) Triangles() [][3]uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tris := make([][3]uint32, 0, len(m.indices)/3)
	for i := 0; i+2 < len(m.indices); i += 3 {
		tris = append(tris, [3]uint32{m.indices[i], m.indices[i+1], m.indices[i+2]})
	}
	return tris
}

func (m *mesh) VertexCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.positions)
}

func (m *mesh) IndexCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.indices)
}

func (m *mesh) SetPosition(i int, p [3]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.positions) {
		panic(fmt.Sprintf("mesh: SetPosition index %d out of range [0,%d)", i, len(m.positions)))
	}
	m.positions[i] = p
}

func (m *mesh) BoundingRadius() float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var r float32
	for _, p := range m.positions {
		r = max(r, common.Length3(p))
	}
	return r
}

func (m *mesh) VertexData() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	buf := make([]byte, 0, len(m.positions)*GPUVertexSize)
	for i := range m.positions {
		v := GPUVertex{Position: m.positions[i], Normal: m.normals[i]}
		if len(m.uvs) > 0 {
			v.TexCoord = m.uvs[i]
		}
		buf = append(buf, v.Marshal()...)
	}
	return buf
}

func (m *mesh) IndexData() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return marshalIndices(m.indices)
}
