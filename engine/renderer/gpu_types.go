package renderer

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
)

// GPUModelUniformSize is the byte size of a packed GPUModelUniform.
const GPUModelUniformSize = 128

// GPUModelUniform is the per-object uniform of the forward pipeline.
// Size: 128 bytes (WGSL uniform aligned).
type GPUModelUniform struct {
	Model  common.Mat4 // offset  0: model-to-world matrix
	Normal common.Mat4 // offset 64: rotation used for normals
}

// Marshal serializes the uniform into a little-endian byte buffer.
//
// Returns:
//   - []byte: GPUModelUniformSize bytes ready for GPU upload
func (g *GPUModelUniform) Marshal() []byte {
	buf := make([]byte, GPUModelUniformSize)
	for i, f := range g.Model {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	for i, f := range g.Normal {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(f))
	}
	return buf
}
