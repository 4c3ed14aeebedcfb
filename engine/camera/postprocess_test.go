package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinwheelBloom() BloomSettings {
	return BloomSettings{
		Intensity:                  0.2,
		LowFrequencyBoost:          0.2,
		LowFrequencyBoostCurvature: 1,
		HighPassFrequency:          0.5,
		Prefilter:                  BloomPrefilter{Threshold: 0.4, ThresholdSoftness: 0.5},
		CompositeMode:              BloomAdditive,
	}
}

func TestMipBlendFactor(t *testing.T) {
	b := pinwheelBloom()
	tests := []struct {
		mip  float32
		want float32
	}{
		{0, 0.2},
		{2, 0.4},
		{3, 0.2},
		{4, 0},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, b.MipBlendFactor(tc.mip, 4), 1e-5, "mip %v", tc.mip)
	}

	ec := DefaultBloomSettings()
	assert.InDelta(t, 0.15, ec.MipBlendFactor(0, 4), 1e-6)
}

func TestSoftThreshold(t *testing.T) {
	b := pinwheelBloom()
	assert.Equal(t, [3]float32{0, 0, 0}, b.SoftThreshold([3]float32{0.1, 0.1, 0.1}))

	bright := b.SoftThreshold([3]float32{2, 1, 0})
	assert.InDelta(t, 1.6, bright[0], 1e-4)
	assert.InDelta(t, 0.8, bright[1], 1e-4)

	knee := b.SoftThreshold([3]float32{0.4, 0, 0})
	assert.Greater(t, knee[0], float32(0))
	assert.Less(t, knee[0], float32(0.4))

	off := BloomSettings{}
	assert.Equal(t, [3]float32{0.1, 0.2, 0.3}, off.SoftThreshold([3]float32{0.1, 0.2, 0.3}))
}

func TestTonemappingApply(t *testing.T) {
	for _, tm := range []Tonemapping{TonemappingNone, TonemappingReinhard, TonemappingReinhardLuminance, TonemappingAcesFitted, TonemappingTonyMcMapface} {
		t.Run(tm.String(), func(t *testing.T) {
			out := tm.Apply([3]float32{50, 20, 5})
			for _, v := range out {
				assert.GreaterOrEqual(t, v, float32(0))
				assert.LessOrEqual(t, v, float32(1))
			}
			assert.Equal(t, [3]float32{0, 0, 0}, tm.Apply([3]float32{}))
		})
	}
	assert.InDelta(t, 0.5, TonemappingReinhard.Apply([3]float32{1, 1, 1})[0], 1e-6)
}

func TestTonyMcMapfaceDesaturatesHighlights(t *testing.T) {
	dim := TonemappingTonyMcMapface.Apply([3]float32{0.2, 0.05, 0.05})
	hot := TonemappingTonyMcMapface.Apply([3]float32{40, 10, 10})
	assert.Greater(t, dim[0]-dim[1], hot[0]-hot[1])
}

func TestParseTonemapping(t *testing.T) {
	tm, err := ParseTonemapping("Tony_Mc_Mapface")
	require.NoError(t, err)
	assert.Equal(t, TonemappingTonyMcMapface, tm)

	_, err = ParseTonemapping("agx")
	assert.Error(t, err)
}
