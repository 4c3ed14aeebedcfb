package renderer

import (
	"image"

	"github.com/Carmen-Shannon/oxy-pinwheel/engine/camera"
	"golang.org/x/image/draw"
)

// maxBloomMips bounds the bloom mip chain.
const maxBloomMips = 8

// applyBloom adds a blurred copy of the bright parts of hdr back onto it, in place.
//
// The prefiltered frame is repeatedly halved to build a mip chain. Every level is then
// stretched back to full size and composited with its MipBlendFactor weight. The 16-bit
// working images hold values normalized by the frame's peak so HDR range survives.
//
// Parameters:
//   - hdr: row-major linear color, width*height entries
//   - width: frame width in pixels
//   - height: frame height in pixels
//   - settings: the camera's bloom settings
func applyBloom(hdr [][3]float32, width, height int, settings camera.BloomSettings) {
	levels := bloomMipCount(width, height)
	if levels == 0 {
		return
	}

	var peak float32
	bright := make([][3]float32, len(hdr))
	for i, c := range hdr {
		bright[i] = settings.SoftThreshold(c)
		peak = max(peak, bright[i][0], bright[i][1], bright[i][2])
	}
	if peak <= 0 {
		return
	}

	full := image.Rect(0, 0, width, height)
	src := encodeHDR(bright, full, peak)

	mips := make([]*image.RGBA64, 0, levels)
	for range levels {
		b := src.Bounds()
		dst := image.NewRGBA64(image.Rect(0, 0, max(b.Dx()/2, 1), max(b.Dy()/2, 1)))
		draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		mips = append(mips, dst)
		src = dst
	}

	maxMip := float32(max(levels-1, 1))
	up := image.NewRGBA64(full)
	for mip, level := range mips {
		factor := settings.MipBlendFactor(float32(mip), maxMip)
		if factor <= 0 {
			continue
		}
		draw.BiLinear.Scale(up, full, level, level.Bounds(), draw.Src, nil)
		for i := range hdr {
			bloom := decodeHDR(up, i%width, i/width, peak)
			for ch := range 3 {
				switch settings.CompositeMode {
				case camera.BloomAdditive:
					hdr[i][ch] += bloom[ch] * factor
				default:
					hdr[i][ch] += (bloom[ch] - hdr[i][ch]) * factor
				}
			}
		}
	}
}

// bloomMipCount returns how many times the frame can be halved before its short side
// drops below 2 pixels, capped at maxBloomMips.
func bloomMipCount(width, height int) int {
	n := 0
	for side := min(width, height); side >= 4 && n < maxBloomMips; side /= 2 {
		n++
	}
	return n
}

func encodeHDR(buf [][3]float32, r image.Rectangle, peak float32) *image.RGBA64 {
	img := image.NewRGBA64(r)
	scale := 0xffff / peak
	for i, c := range buf {
		off := i * 8
		for ch := range 3 {
			v := uint16(min(max(c[ch]*scale, 0), 0xffff))
			img.Pix[off+ch*2] = uint8(v >> 8)
			img.Pix[off+ch*2+1] = uint8(v)
		}
		img.Pix[off+6], img.Pix[off+7] = 0xff, 0xff
	}
	return img
}

func decodeHDR(img *image.RGBA64, x, y int, peak float32) [3]float32 {
	c := img.RGBA64At(x, y)
	scale := peak / 0xffff
	return [3]float32{float32(c.R) * scale, float32(c.G) * scale, float32(c.B) * scale}
}
