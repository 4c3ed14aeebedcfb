package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypeSpot)
	assert.Equal(t, LightTypeSpot, l.Type())
	assert.Equal(t, [3]float32{0, 0, -1}, l.Direction())
	assert.Equal(t, float32(20), l.Range())
	assert.Equal(t, float32(0), l.InnerAngle())
	assert.InDelta(t, math.Pi/4, l.OuterAngle(), 1e-6)
	assert.True(t, l.Enabled())
	assert.False(t, l.CastsShadows())
}

func TestLuminousIntensity(t *testing.T) {
	sun := NewLight(LightTypeDirectional, WithIntensity(10000))
	assert.Equal(t, float32(10000), sun.LuminousIntensity())

	spot := NewLight(LightTypeSpot, WithIntensity(80000))
	assert.InDelta(t, 80000/(4*math.Pi), spot.LuminousIntensity(), 1e-2)
}

func TestRotateLocalXAccumulates(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithTransform(common.TransformFromXYZ(0, 0, 5)))
	l.RotateLocalX(math32.Pi / 4)
	l.RotateLocalX(math32.Pi / 4)

	dir := l.Direction()
	assert.InDelta(t, 0, dir[0], 1e-5)
	assert.InDelta(t, 1, dir[1], 1e-5)
	assert.InDelta(t, 0, dir[2], 1e-5)
	assert.Equal(t, [3]float32{0, 0, 5}, l.Position())
}

func TestMarshalLightBuffer(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeDirectional, WithColor(common.LEDWhite), WithIntensity(10000), WithCastsShadows(true)),
		NewLight(LightTypeSpot, WithEnabled(false)),
		NewLight(LightTypeSpot, WithPosition(1, 2, 0)),
	}
	buf := MarshalLightBuffer(lights, [3]float32{0.1, 0.2, 0.3})
	require.Len(t, buf, GPULightBufferSize)

	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(buf[12:]))
	assert.Equal(t, float32(0.2), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))

	first := buf[GPULightHeaderSize:]
	assert.Equal(t, uint32(LightTypeDirectional), binary.LittleEndian.Uint32(first[12:]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(first[56:]))

	second := buf[GPULightHeaderSize+GPULightSize:]
	assert.Equal(t, uint32(LightTypeSpot), binary.LittleEndian.Uint32(second[12:]))
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(second[4:])))
}
