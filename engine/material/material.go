// Package material describes the surface of a mesh: base color plus metallic-roughness
// parameters.
package material

import "github.com/Carmen-Shannon/oxy-pinwheel/common"

// material is the implementation of the Material interface.
type material struct {
	name      string
	baseColor common.Color
	metallic  float32
	roughness float32
}

// Material is a read-only metallic-roughness surface description. Materials are shared
// between entities through an asset.Store, so they are immutable after construction.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the linear albedo color of the material.
	//
	// Returns:
	//   - common.Color: the base color
	BaseColor() common.Color

	// Metallic retrieves the metallic factor of the material.
	// A value of 0.0 represents a dielectric surface, 1.0 represents a fully metallic surface.
	//
	// Returns:
	//   - float32: the metallic factor
	Metallic() float32

	// Roughness retrieves the roughness factor of the material.
	// A value of 0.0 represents a perfectly smooth surface, 1.0 represents a fully rough surface.
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32
}

var _ Material = &material{}

// NewMaterial creates a new Material with the provided options.
// Defaults to a white, fully rough dielectric.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions
//
// Returns:
//   - Material: the constructed material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor: common.White,
		metallic:  0,
		roughness: 1,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() common.Color {
	return m.baseColor
}

func (m *material) Metallic() float32 {
	return m.metallic
}

func (m *material) Roughness() float32 {
	return m.roughness
}
