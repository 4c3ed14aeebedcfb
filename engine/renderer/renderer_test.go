package renderer

import (
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/camera"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/game_object"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/light"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/material"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/mesh"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSize = 64

func quadMesh() mesh.Mesh {
	return mesh.NewMesh(
		mesh.WithName("quad"),
		mesh.WithPositions([][3]float32{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}}),
		mesh.WithNormals([][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}),
		mesh.WithIndices([]uint32{0, 1, 2, 0, 2, 3}),
	)
}

func testCamera(opts ...camera.CameraBuilderOption) camera.Camera {
	t := common.TransformFromXYZ(0, 0, 10).LookingAt([3]float32{}, common.AxisY)
	return camera.NewCamera(append([]camera.CameraBuilderOption{camera.WithTransform(t)}, opts...)...)
}

// quadScene is a metallic white quad facing the camera, lit by the given lights.
func quadScene(cam camera.Camera, lights ...light.Light) scene.Scene {
	s := scene.NewScene("quad", scene.WithCamera(cam), scene.WithLights(lights...))
	addQuad(s, common.White, 0)
	return s
}

func addQuad(s scene.Scene, c common.Color, z float32) {
	mh := s.Meshes().Add(quadMesh())
	mat := s.Materials().Add(material.NewMaterial(
		material.WithBaseColor(c),
		material.WithMetallic(1),
		material.WithRoughness(0.5),
	))
	s.Add(game_object.NewGameObject(
		game_object.WithMesh(mh),
		game_object.WithMaterial(mat),
		game_object.WithTransform(common.TransformFromXYZ(0, 0, z)),
	))
}

func sun() light.Light {
	return light.NewLight(light.LightTypeDirectional, light.WithIntensity(10000))
}

func renderOnce(t *testing.T, s scene.Scene) *image.RGBA {
	t.Helper()
	r, err := NewRenderer(BackendTypeSoftware, nil, WithSize(testSize, testSize))
	require.NoError(t, err)
	defer r.Release()

	require.NoError(t, r.Render(s))
	img, ok := r.Image()
	require.True(t, ok)
	return img
}

func TestSoftwareRenderLitQuad(t *testing.T) {
	img := renderOnce(t, quadScene(testCamera(), sun()))

	assert.Equal(t, image.Rect(0, 0, testSize, testSize), img.Bounds())
	center := img.RGBAAt(testSize/2, testSize/2)
	assert.Greater(t, center.R, uint8(200))
	assert.Equal(t, center.R, center.G)

	corner := img.RGBAAt(0, 0)
	assert.Equal(t, uint8(0), corner.R)
	assert.Equal(t, uint8(255), corner.A)
}

func TestSoftwareRenderUnlitQuadIsDark(t *testing.T) {
	img := renderOnce(t, quadScene(testCamera()))
	assert.Less(t, img.RGBAAt(testSize/2, testSize/2).R, uint8(5))
}

func TestSoftwareRenderDepthTest(t *testing.T) {
	s := scene.NewScene("depth", scene.WithCamera(testCamera()), scene.WithLights(sun()))
	// far quad drawn last must not overwrite the near one
	addQuad(s, common.RGBLinear(1, 0, 0), 1)
	addQuad(s, common.RGBLinear(0, 1, 0), 0)

	px := renderOnce(t, s).RGBAAt(testSize/2, testSize/2)
	assert.Greater(t, px.R, uint8(200))
	assert.Equal(t, uint8(0), px.G)
}

func TestSoftwareRenderSkipsDisabledObjects(t *testing.T) {
	s := quadScene(testCamera(), sun())
	for _, obj := range s.Objects() {
		obj.SetEnabled(false)
	}
	assert.Equal(t, uint8(0), renderOnce(t, s).RGBAAt(testSize/2, testSize/2).R)
}

func TestSoftwareRenderBloomSpreadsLight(t *testing.T) {
	bloom := camera.BloomSettings{
		Intensity:                  0.2,
		LowFrequencyBoost:          0.2,
		LowFrequencyBoostCurvature: 1,
		HighPassFrequency:          0.5,
		Prefilter:                  camera.BloomPrefilter{Threshold: 0.4, ThresholdSoftness: 0.5},
		CompositeMode:              camera.BloomAdditive,
	}
	plain := renderOnce(t, quadScene(testCamera(camera.WithHDR(true)), sun()))
	glowing := renderOnce(t, quadScene(testCamera(camera.WithHDR(true), camera.WithBloom(bloom)), sun()))

	// just outside the quad's silhouette
	x, y := testSize/2+12, testSize/2
	assert.Equal(t, uint8(0), plain.RGBAAt(x, y).R)
	assert.Greater(t, glowing.RGBAAt(x, y).R, uint8(0))
}

func TestRenderWithoutCameraPanics(t *testing.T) {
	r, err := NewRenderer(BackendTypeSoftware, nil, WithSize(8, 8))
	require.NoError(t, err)
	s := scene.NewScene("empty")
	assert.PanicsWithValue(t, `renderer: Render: scene "empty" has no camera`, func() { _ = r.Render(s) })
}

func TestImageIsACopy(t *testing.T) {
	r, err := NewRenderer(BackendTypeSoftware, nil, WithSize(8, 8))
	require.NoError(t, err)
	require.NoError(t, r.Render(quadScene(testCamera(), sun())))

	a, _ := r.Image()
	a.Pix[0] = 42
	b, _ := r.Image()
	assert.NotEqual(t, uint8(42), b.Pix[0])
}

func TestResize(t *testing.T) {
	r, err := NewRenderer(BackendTypeSoftware, nil)
	require.NoError(t, err)
	w, h := r.Size()
	assert.Equal(t, DefaultWidth, w)
	assert.Equal(t, DefaultHeight, h)

	r.Resize(16, 32)
	r.Resize(0, 10)
	require.NoError(t, r.Render(quadScene(testCamera(), sun())))
	img, _ := r.Image()
	assert.Equal(t, image.Rect(0, 0, 16, 32), img.Bounds())
}

func TestWGPUBackendRequiresWindow(t *testing.T) {
	assert.Panics(t, func() { _, _ = NewRenderer(BackendTypeWGPU, nil) })
}

func TestParseBackendType(t *testing.T) {
	cases := []struct {
		in      string
		want    RendererBackendType
		wantErr bool
	}{
		{"wgpu", BackendTypeWGPU, false},
		{"Software", BackendTypeSoftware, false},
		{"vulkan", BackendTypeWGPU, true},
	}
	for _, tc := range cases {
		got, err := ParseBackendType(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.want.String(), got.String())
	}
}

func TestBloomMipCount(t *testing.T) {
	assert.Equal(t, 0, bloomMipCount(3, 100))
	assert.Equal(t, 5, bloomMipCount(64, 64))
	assert.Equal(t, maxBloomMips, bloomMipCount(4096, 4096))
}

func TestSpotAttenuationCone(t *testing.T) {
	l := light.NewLight(light.LightTypeSpot, light.WithSpotAngles(0, 0.7853982))
	// straight down the axis (light faces -Z, so the surface is toward -Z)
	assert.InDelta(t, 1, spotAttenuation(l, [3]float32{0, 0, 1}), 1e-5)
	// perpendicular to the axis is outside the cone
	assert.InDelta(t, 0, spotAttenuation(l, [3]float32{1, 0, 0}), 1e-5)
}

func TestRangeAttenuationReachesZero(t *testing.T) {
	assert.InDelta(t, 0, rangeAttenuation(20, 20), 1e-6)
	assert.InDelta(t, 1, rangeAttenuation(1, 1000), 1e-3)
}
