package camera

import (
	"encoding/binary"
	"math"
)

// GPUCameraUniformSize is the byte size of a packed GPUCameraUniform.
const GPUCameraUniformSize = 96

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Size: 96 bytes (WGSL uniform aligned).
type GPUCameraUniform struct {
	ViewProj       [16]float32 // offset  0: combined view-projection matrix (mat4x4<f32>)
	CameraPosition [3]float32  // offset 64: world-space camera position (vec3<f32>)
	Exposure       float32     // offset 76: exposure multiplier
	Tonemapping    uint32      // offset 80: Tonemapping enum value
	HDR            uint32      // offset 84: 1 when rendering HDR
	_              [2]uint32   // offset 88: padding
}

// NewGPUCameraUniform packs c into its GPU layout.
func NewGPUCameraUniform(c Camera) GPUCameraUniform {
	u := GPUCameraUniform{
		ViewProj:       c.ViewProjectionMatrix(),
		CameraPosition: c.Position(),
		Exposure:       c.Exposure(),
		Tonemapping:    uint32(c.Tonemapping()),
	}
	if c.HDR() {
		u.HDR = 1
	}
	return u
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: GPUCameraUniformSize bytes
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, GPUCameraUniformSize)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.CameraPosition[i]))
	}
	binary.LittleEndian.PutUint32(buf[76:], math.Float32bits(g.Exposure))
	binary.LittleEndian.PutUint32(buf[80:], g.Tonemapping)
	binary.LittleEndian.PutUint32(buf[84:], g.HDR)
	return buf
}
