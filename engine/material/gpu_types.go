package material

import (
	"encoding/binary"
	"math"
)

// GPUMaterialSize is the byte size of a packed GPUMaterial.
const GPUMaterialSize = 32

// GPUMaterial is the uniform-buffer layout of a material.
type GPUMaterial struct {
	BaseColor [4]float32 // offset  0
	Metallic  float32    // offset 16
	Roughness float32    // offset 20
	_         [2]float32 // offset 24: pad to 16-byte alignment
}

// NewGPUMaterial packs m into its GPU layout.
func NewGPUMaterial(m Material) GPUMaterial {
	return GPUMaterial{
		BaseColor: m.BaseColor().RGBA(),
		Metallic:  m.Metallic(),
		Roughness: m.Roughness(),
	}
}

// Marshal serializes the material into a little-endian byte buffer.
//
// Returns:
//   - []byte: GPUMaterialSize bytes ready for GPU upload
func (g *GPUMaterial) Marshal() []byte {
	buf := make([]byte, GPUMaterialSize)
	for i, f := range g.BaseColor {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(g.Metallic))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(g.Roughness))
	return buf
}
