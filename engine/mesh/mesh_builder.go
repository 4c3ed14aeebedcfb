package mesh

// MeshBuilderOption is a functional option used to configure a Mesh during construction.
type MeshBuilderOption func(*mesh)

// WithName sets the debug name of the mesh.
//
// Parameters:
//   - name: the name of the mesh
//
// Returns:
//   - MeshBuilderOption: a function that sets the name of the mesh
func WithName(name string) MeshBuilderOption {
	return func(m *mesh) {
		m.name = name
	}
}

// WithPositions sets the vertex positions. The mesh takes ownership of the slice; callers
// that reuse it must pass a copy.
//
// Parameters:
//   - positions: model-space vertex positions
//
// Returns:
//   - MeshBuilderOption: a function that sets the positions of the mesh
func WithPositions(positions [][3]float32) MeshBuilderOption {
	return func(m *mesh) {
		m.positions = positions
	}
}

// WithNormals sets the vertex normals. The mesh takes ownership of the slice.
//
// Parameters:
//   - normals: vertex normals, index-aligned with the positions
//
// Returns:
//   - MeshBuilderOption: a function that sets the normals of the mesh
func WithNormals(normals [][3]float32) MeshBuilderOption {
	return func(m *mesh) {
		m.normals = normals
	}
}

// WithUVs populates the optional UV channel. The mesh takes ownership of the slice.
//
// Parameters:
//   - uvs: texture coordinates, index-aligned with the positions
//
// Returns:
//   - MeshBuilderOption: a function that sets the UVs of the mesh
func WithUVs(uvs [][2]float32) MeshBuilderOption {
	return func(m *mesh) {
		m.uvs = uvs
	}
}

// WithIndices sets the triangulation. The mesh takes ownership of the slice.
//
// Parameters:
//   - indices: vertex indices, three per triangle
//
// Returns:
//   - MeshBuilderOption: a function that sets the indices of the mesh
func WithIndices(indices []uint32) MeshBuilderOption {
	return func(m *mesh) {
		m.indices = indices
	}
}
