package light

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
)

// MaxGPULights is the number of light slots in the forward pipeline's uniform buffer.
// Enabled lights beyond this count are dropped.
const MaxGPULights = 8

// GPULightSize is the byte size of a packed GPULight.
const GPULightSize = 64

// GPULightHeaderSize is the byte size of the header that precedes the light array.
const GPULightHeaderSize = 16

// GPULightBufferSize is the total byte size of a marshaled light buffer.
const GPULightBufferSize = GPULightHeaderSize + MaxGPULights*GPULightSize

// GPULight is the GPU-aligned representation of a single light source.
// Size: 64 bytes (WGSL uniform aligned).
type GPULight struct {
	Position     [3]float32 // offset  0: world-space position (point/spot)
	LightType    uint32     // offset 12: 0 = directional, 1 = point, 2 = spot
	Color        [3]float32 // offset 16: linear RGB color
	Intensity    float32    // offset 28: lux (directional) or candela (point/spot)
	Direction    [3]float32 // offset 32: normalized travel direction (directional/spot)
	LightRange   float32    // offset 44: attenuation cutoff distance
	InnerCone    float32    // offset 48: cos(inner half-angle) for spot
	OuterCone    float32    // offset 52: cos(outer half-angle) for spot
	CastsShadows uint32     // offset 56: 1 = casts shadows
	_            uint32     // offset 60: padding
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: GPULightSize bytes ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, GPULightSize)
	put := func(off int, f float32) { binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f)) }
	put(0, g.Position[0])
	put(4, g.Position[1])
	put(8, g.Position[2])
	binary.LittleEndian.PutUint32(buf[12:], g.LightType)
	put(16, g.Color[0])
	put(20, g.Color[1])
	put(24, g.Color[2])
	put(28, g.Intensity)
	put(32, g.Direction[0])
	put(36, g.Direction[1])
	put(40, g.Direction[2])
	put(44, g.LightRange)
	put(48, g.InnerCone)
	put(52, g.OuterCone)
	binary.LittleEndian.PutUint32(buf[56:], g.CastsShadows)
	return buf
}

// ToGPULight converts a Light into its GPU representation.
//
// Parameters:
//   - l: the Light to convert
//
// Returns:
//   - GPULight: the GPU-aligned representation
func ToGPULight(l Light) GPULight {
	var shadows uint32
	if l.CastsShadows() {
		shadows = 1
	}
	return GPULight{
		Position:     l.Position(),
		LightType:    uint32(l.Type()),
		Color:        l.Color().RGB(),
		Intensity:    l.LuminousIntensity(),
		Direction:    l.Direction(),
		LightRange:   l.Range(),
		InnerCone:    math32.Cos(l.InnerAngle()),
		OuterCone:    math32.Cos(l.OuterAngle()),
		CastsShadows: shadows,
	}
}

// MarshalLightBuffer packs the enabled lights into a fixed-size buffer:
//
//	[ambient rgb, count (16 bytes)] [GPULight × MaxGPULights]
//
// Unused slots are zero.
//
// Parameters:
//   - lights: the scene's lights (disabled lights are skipped)
//   - ambient: the scene ambient color, pre-multiplied by its brightness
//
// Returns:
//   - []byte: GPULightBufferSize bytes
func MarshalLightBuffer(lights []Light, ambient [3]float32) []byte {
	buf := make([]byte, GPULightBufferSize)
	offset := GPULightHeaderSize
	count := 0
	for _, l := range lights {
		if !l.Enabled() || count == MaxGPULights {
			continue
		}
		g := ToGPULight(l)
		copy(buf[offset:], g.Marshal())
		offset += GPULightSize
		count++
	}
	for i, c := range ambient {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(c))
	}
	binary.LittleEndian.PutUint32(buf[12:], uint32(count))
	return buf
}
