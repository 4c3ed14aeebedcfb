package mesh

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
)

// GPUVertexSize is the byte size of one packed GPUVertex.
const GPUVertexSize = 32

// GPUVertex is the GPU layout of one mesh vertex. It matches the vertex buffer layout
// declared by the renderer's forward pipeline.
type GPUVertex struct {
	Position [3]float32 // offset  0
	Normal   [3]float32 // offset 12
	TexCoord [2]float32 // offset 24
}

// Marshal serializes the vertex into a little-endian byte buffer.
//
// Returns:
//   - []byte: GPUVertexSize bytes ready for GPU upload
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexSize)
	fields := [8]float32{
		g.Position[0], g.Position[1], g.Position[2],
		g.Normal[0], g.Normal[1], g.Normal[2],
		g.TexCoord[0], g.TexCoord[1],
	}
	for i, f := range fields {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// marshalIndices returns a copy of the index bytes in host order, which is the order
// wgpu reads index buffers in.
func marshalIndices(indices []uint32) []byte {
	return append([]byte(nil), common.SliceToBytes(indices)...)
}
