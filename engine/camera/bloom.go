package camera

import (
	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/chewxy/math32"
)

// BloomCompositeMode selects how the blurred bloom texture is combined with the frame.
type BloomCompositeMode int

const (
	// BloomEnergyConserving lerps between the frame and the bloom by intensity.
	BloomEnergyConserving BloomCompositeMode = iota
	// BloomAdditive adds the bloom on top of the frame.
	BloomAdditive
)

// String implements fmt.Stringer.
func (m BloomCompositeMode) String() string {
	if m == BloomAdditive {
		return "additive"
	}
	return "energy_conserving"
}

// BloomPrefilter selects which pixels feed the bloom. Pixels darker than Threshold are
// excluded; ThresholdSoftness in [0, 1] widens the knee around the threshold.
type BloomPrefilter struct {
	Threshold         float32
	ThresholdSoftness float32
}

// BloomSettings configures the bloom post-process. The bloom is built as a mip chain of
// progressively blurred copies of the prefiltered frame; each level's contribution is
// weighted by MipBlendFactor.
type BloomSettings struct {
	// Intensity is the base weight of every mip level.
	Intensity float32
	// LowFrequencyBoost adds weight to the blurrier (lower-frequency) levels.
	LowFrequencyBoost float32
	// LowFrequencyBoostCurvature in [0, 1) shapes how fast the boost falls off;
	// 1 confines it to the blurriest level.
	LowFrequencyBoostCurvature float32
	// HighPassFrequency in (0, 1] cuts off levels whose normalized mip exceeds it.
	HighPassFrequency float32
	Prefilter         BloomPrefilter
	CompositeMode     BloomCompositeMode
}

// DefaultBloomSettings returns a subtle, energy-conserving bloom.
func DefaultBloomSettings() BloomSettings {
	return BloomSettings{
		Intensity:                  0.15,
		LowFrequencyBoost:          0.7,
		LowFrequencyBoostCurvature: 0.95,
		HighPassFrequency:          1,
		CompositeMode:              BloomEnergyConserving,
	}
}

// SoftThreshold applies the prefilter to one linear color.
//
// Parameters:
//   - c: linear RGB
//
// Returns:
//   - [3]float32: the portion of c that contributes to bloom
func (b BloomSettings) SoftThreshold(c [3]float32) [3]float32 {
	threshold := b.Prefilter.Threshold
	if threshold <= 0 {
		return c
	}
	knee := threshold * common.Saturate(b.Prefilter.ThresholdSoftness)
	brightness := max(c[0], c[1], c[2])

	soft := common.Clamp(brightness-threshold+knee, 0, 2*knee)
	soft = soft * soft / (4*knee + 1e-5)
	contribution := max(brightness-threshold, soft) / max(brightness, 1e-5)
	return [3]float32{c[0] * contribution, c[1] * contribution, c[2] * contribution}
}

// MipBlendFactor returns the weight of bloom mip level mip out of maxMip.
//
// Parameters:
//   - mip: the level, 0 being the sharpest
//   - maxMip: the blurriest level index (> 0)
//
// Returns:
//   - float32: the weight applied when compositing that level
func (b BloomSettings) MipBlendFactor(mip, maxMip float32) float32 {
	t := mip / maxMip
	var boost float32
	if b.LowFrequencyBoostCurvature >= 1 {
		// the exponent 1/(1-curvature) diverges; every level but the sharpest saturates
		if t > 0 {
			boost = 1
		}
	} else {
		boost = 1 - math32.Pow(1-t, 1/(1-b.LowFrequencyBoostCurvature))
	}
	boost *= b.LowFrequencyBoost
	if b.CompositeMode == BloomEnergyConserving {
		boost *= 1 - b.Intensity
	}

	highPass := float32(1)
	if b.HighPassFrequency > 0 {
		highPass = 1 - common.Saturate((t-b.HighPassFrequency)/b.HighPassFrequency)
	}
	return (b.Intensity + boost) * highPass
}
