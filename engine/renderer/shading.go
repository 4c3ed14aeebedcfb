package renderer

import (
	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/light"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/material"
	"github.com/chewxy/math32"
)

// maxShininess caps the Blinn-Phong exponent so near-mirror materials keep a highlight
// wider than a pixel.
const maxShininess = 256

// surface is the material response at one shaded point.
type surface struct {
	diffuse   [3]float32
	specular  [3]float32
	shininess float32
}

// newSurface derives the Blinn-Phong response of m. Metals lose their diffuse term and
// tint the highlight with the base color; dielectrics keep a 4% white highlight.
func newSurface(m material.Material) surface {
	base := m.BaseColor().RGB()
	metallic := m.Metallic()
	alpha := m.Roughness() * m.Roughness()

	s := surface{
		diffuse:   common.Scale3(base, 1-metallic),
		shininess: common.Clamp(2/max(alpha*alpha, 1e-6)-2, 1, maxShininess),
	}
	for i := range base {
		s.specular[i] = 0.04 + (base[i]-0.04)*metallic
	}
	return s
}

// shade returns the radiance leaving pos toward the eye, before exposure. Surfaces are
// two-sided: the normal is flipped to face the viewer.
//
// Parameters:
//   - sf: the material response
//   - lights: enabled scene lights
//   - ambient: ambient light color
//   - eye: camera world position
//   - pos: world-space surface position
//   - n: world-space surface normal (need not be unit length)
//
// Returns:
//   - [3]float32: linear radiance
func shade(sf surface, lights []light.Light, ambient, eye, pos, n [3]float32) [3]float32 {
	n = common.Normalize3(n)
	v := common.Normalize3(common.Sub3(eye, pos))
	if common.Dot3(n, v) < 0 {
		n = common.Scale3(n, -1)
	}

	out := common.Mul3(ambient, common.Add3(sf.diffuse, sf.specular))
	specNorm := (sf.shininess + 8) / (8 * math32.Pi)

	for _, l := range lights {
		var toLight [3]float32
		var irradiance float32
		switch l.Type() {
		case light.LightTypeDirectional:
			toLight = common.Scale3(l.Direction(), -1)
			irradiance = l.LuminousIntensity()
		default:
			d := common.Sub3(l.Position(), pos)
			dist := common.Length3(d)
			if dist == 0 || dist >= l.Range() {
				continue
			}
			toLight = common.Scale3(d, 1/dist)
			irradiance = l.LuminousIntensity() * rangeAttenuation(dist, l.Range())
			if l.Type() == light.LightTypeSpot {
				irradiance *= spotAttenuation(l, toLight)
			}
		}
		nDotL := common.Dot3(n, toLight)
		if nDotL <= 0 || irradiance <= 0 {
			continue
		}

		h := common.Normalize3(common.Add3(toLight, v))
		nDotH := max(common.Dot3(n, h), 0)
		spec := specNorm * math32.Pow(nDotH, sf.shininess)

		radiance := common.Scale3(l.Color().RGB(), irradiance*nDotL)
		brdf := common.Add3(common.Scale3(sf.diffuse, 1/math32.Pi), common.Scale3(sf.specular, spec))
		out = common.Add3(out, common.Mul3(brdf, radiance))
	}
	return out
}

// rangeAttenuation is inverse-square falloff windowed to reach zero at the light range.
func rangeAttenuation(dist, lightRange float32) float32 {
	ratio := dist / lightRange
	window := common.Saturate(1 - ratio*ratio*ratio*ratio)
	return window * window / max(dist*dist, 1e-4)
}

// spotAttenuation fades from 1 inside the inner cone to 0 at the outer cone.
func spotAttenuation(l light.Light, toLight [3]float32) float32 {
	cosInner := math32.Cos(l.InnerAngle())
	cosOuter := math32.Cos(l.OuterAngle())
	scale := 1 / max(cosInner-cosOuter, 1e-4)
	offset := -cosOuter * scale

	cd := common.Dot3(l.Direction(), common.Scale3(toLight, -1))
	a := common.Saturate(cd*scale + offset)
	return a * a
}
