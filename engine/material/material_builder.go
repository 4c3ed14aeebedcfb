package material

import "github.com/Carmen-Shannon/oxy-pinwheel/common"

// MaterialBuilderOption is a functional option used to configure a Material during construction.
type MaterialBuilderOption func(*material)

// WithName sets the name of the material.
//
// Parameters:
//   - name: the name to assign to the material
//
// Returns:
//   - MaterialBuilderOption: a function that sets the name of the material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor sets the linear albedo color of the material.
//
// Parameters:
//   - c: the base color
//
// Returns:
//   - MaterialBuilderOption: a function that sets the base color of the material
func WithBaseColor(c common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = c
	}
}

// WithMetallic sets the metallic factor of the material, clamped to [0, 1].
//
// Parameters:
//   - metallic: the metallic factor
//
// Returns:
//   - MaterialBuilderOption: a function that sets the metallic factor of the material
func WithMetallic(metallic float32) MaterialBuilderOption {
	return func(m *material) {
		m.metallic = common.Saturate(metallic)
	}
}

// WithRoughness sets the perceptual roughness of the material, clamped to [0, 1].
//
// Parameters:
//   - roughness: the roughness factor
//
// Returns:
//   - MaterialBuilderOption: a function that sets the roughness factor of the material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = common.Saturate(roughness)
	}
}
