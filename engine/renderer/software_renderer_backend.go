package renderer

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/camera"
	"github.com/chewxy/math32"
)

// softwareRendererBackendImpl rasterizes frames on the CPU into an HDR float buffer, then
// runs bloom and tone-mapping into an 8-bit sRGB image.
type softwareRendererBackendImpl struct {
	mu     *sync.Mutex
	width  int
	height int

	hdr   [][3]float32
	depth []float32
	out   *image.RGBA
}

// screenVertex is a vertex after projection. Attributes are pre-divided by w so they can
// be interpolated linearly in screen space.
type screenVertex struct {
	x, y, z float32
	invW    float32
	pos     [3]float32 // world position / w
	normal  [3]float32 // world normal / w
}

var _ rendererBackend = &softwareRendererBackendImpl{}

func newSoftwareRendererBackend(width, height int) *softwareRendererBackendImpl {
	b := &softwareRendererBackendImpl{mu: &sync.Mutex{}}
	b.ConfigureSurface(width, height)
	return b
}

func (b *softwareRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	width, height = max(width, 1), max(height, 1)
	b.width, b.height = width, height
	b.hdr = make([][3]float32, width*height)
	b.depth = make([]float32, width*height)
	b.out = image.NewRGBA(image.Rect(0, 0, width, height))
}

// SetPresentMode is a no-op: software frames are never presented.
func (b *softwareRendererBackendImpl) SetPresentMode(PresentMode) {}

func (b *softwareRendererBackendImpl) DrawFrame(f *frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	background := f.clearColor.RGB()
	for i := range b.hdr {
		b.hdr[i] = background
		b.depth[i] = math.MaxFloat32
	}

	for i := range f.items {
		b.drawItem(f, &f.items[i])
	}

	tonemap := f.camera.Tonemapping()
	if !f.camera.HDR() {
		for i, c := range b.hdr {
			b.hdr[i] = [3]float32{min(c[0], 1), min(c[1], 1), min(c[2], 1)}
		}
	} else if settings, ok := f.camera.Bloom(); ok {
		applyBloom(b.hdr, b.width, b.height, settings)
	}
	b.resolve(tonemap)
	return nil
}

func (b *softwareRendererBackendImpl) Release() {}

// Image returns a copy of the last resolved frame.
func (b *softwareRendererBackendImpl) Image() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()

	img := image.NewRGBA(b.out.Rect)
	copy(img.Pix, b.out.Pix)
	return img
}

func (b *softwareRendererBackendImpl) drawItem(f *frame, item *drawItem) {
	positions := item.mesh.Positions()
	normals := item.mesh.Normals()
	sf := newSurface(item.material)

	verts := make([]screenVertex, len(positions))
	visible := make([]bool, len(positions))
	for i, p := range positions {
		world := item.model.MulPoint(p)
		wp := [3]float32{world[0], world[1], world[2]}
		clip := f.viewProj.MulPoint(wp)
		if clip[3] <= 1e-5 {
			continue
		}
		invW := 1 / clip[3]
		n := item.normalMatrix.MulDirection(normals[i])
		verts[i] = screenVertex{
			x:      (clip[0]*invW*0.5 + 0.5) * float32(b.width),
			y:      (0.5 - clip[1]*invW*0.5) * float32(b.height),
			z:      clip[2] * invW,
			invW:   invW,
			pos:    common.Scale3(wp, invW),
			normal: common.Scale3(n, invW),
		}
		visible[i] = true
	}

	for _, tri := range item.mesh.Triangles() {
		// triangles crossing the eye plane are dropped rather than clipped
		if !visible[tri[0]] || !visible[tri[1]] || !visible[tri[2]] {
			continue
		}
		b.rasterize(f, sf, verts[tri[0]], verts[tri[1]], verts[tri[2]])
	}
}

// rasterize fills one triangle using edge functions over its screen bounding box.
// Both windings are drawn.
func (b *softwareRendererBackendImpl) rasterize(f *frame, sf surface, v0, v1, v2 screenVertex) {
	area := edge(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if math32.Abs(area) < 1e-8 {
		return
	}

	minX := max(int(math32.Floor(min(v0.x, v1.x, v2.x))), 0)
	maxX := min(int(math32.Ceil(max(v0.x, v1.x, v2.x))), b.width-1)
	minY := max(int(math32.Floor(min(v0.y, v1.y, v2.y))), 0)
	maxY := min(int(math32.Ceil(max(v0.y, v1.y, v2.y))), b.height-1)

	exposure := f.exposure
	for py := minY; py <= maxY; py++ {
		y := float32(py) + 0.5
		for px := minX; px <= maxX; px++ {
			x := float32(px) + 0.5
			w0 := edge(v1.x, v1.y, v2.x, v2.y, x, y) / area
			w1 := edge(v2.x, v2.y, v0.x, v0.y, x, y) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*v0.z + w1*v1.z + w2*v2.z
			if z < 0 || z > 1 {
				continue
			}
			idx := py*b.width + px
			if z >= b.depth[idx] {
				continue
			}
			b.depth[idx] = z

			invW := w0*v0.invW + w1*v1.invW + w2*v2.invW
			pos := common.Scale3(lerp3(v0.pos, v1.pos, v2.pos, w0, w1, w2), 1/invW)
			n := lerp3(v0.normal, v1.normal, v2.normal, w0, w1, w2)
			radiance := shade(sf, f.lights, f.ambient, f.cameraPos, pos, n)
			b.hdr[idx] = common.Scale3(radiance, exposure)
		}
	}
}

// resolve tone-maps the HDR buffer into the sRGB output image.
func (b *softwareRendererBackendImpl) resolve(t camera.Tonemapping) {
	for i, c := range b.hdr {
		mapped := t.Apply(c)
		b.out.SetRGBA(i%b.width, i/b.width, color.RGBA{
			R: toByte(camera.LinearToSRGB(mapped[0])),
			G: toByte(camera.LinearToSRGB(mapped[1])),
			B: toByte(camera.LinearToSRGB(mapped[2])),
			A: 0xff,
		})
	}
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func lerp3(a, b, c [3]float32, wa, wb, wc float32) [3]float32 {
	return [3]float32{
		a[0]*wa + b[0]*wb + c[0]*wc,
		a[1]*wa + b[1]*wb + c[1]*wc,
		a[2]*wa + b[2]*wb + c[2]*wc,
	}
}

func toByte(v float32) uint8 {
	return uint8(common.Saturate(v)*255 + 0.5)
}
