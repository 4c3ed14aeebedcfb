package pinwheel

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/Carmen-Shannon/oxy-pinwheel/config"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/asset"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/camera"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/clock"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/game_object"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/light"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/mesh"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/scene"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/screenshot"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func spinAngle(delta float32) float32 {
	return BladeTurnsPerSecond * 2 * math32.Pi * delta
}

func zAngle(obj game_object.GameObject) float32 {
	return obj.Transform().Rotation.AngleAbout(common.AxisZ)
}

func TestBuildBladeIndices(t *testing.T) {
	meshes := asset.NewStore[mesh.Mesh]()
	m := meshes.MustGet(BuildBlade(meshes, DefaultBladeTemplate(false)))

	assert.Equal(t, []uint32{0, 3, 1, 1, 3, 2}, m.Indices())
	for _, idx := range m.Indices() {
		assert.Less(t, idx, uint32(4))
	}
	assert.Equal(t, 4, m.VertexCount())
	assert.False(t, m.HasUVs())
}

func TestBuildBladeWithUVs(t *testing.T) {
	meshes := asset.NewStore[mesh.Mesh]()
	m := meshes.MustGet(BuildBlade(meshes, DefaultBladeTemplate(true)))
	require.True(t, m.HasUVs())
	assert.Equal(t, [][2]float32{{0, 1}, {0.5, 0}, {1, 0}, {0.5, 1}}, m.UVs())
}

func TestBuildBladeRejectsBrokenTemplates(t *testing.T) {
	cases := []struct {
		name string
		tmpl BladeTemplate
	}{
		{"too few vertices", BladeTemplate{
			Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			Normals:   [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		}},
		{"normal count mismatch", BladeTemplate{
			Positions: DefaultBladeTemplate(false).Positions,
			Normals:   [][3]float32{{0, 0, 1}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r)
				assert.Contains(t, r.(string), "mesh:")
			}()
			BuildBlade(asset.NewStore[mesh.Mesh](), tc.tmpl)
		})
	}
}

func TestBladeIndicesIsACopy(t *testing.T) {
	idx := BladeIndices()
	idx[0] = 9
	assert.Equal(t, uint32(0), BladeIndices()[0])
}

func TestSpawnPinwheelCounts(t *testing.T) {
	s := scene.NewScene("test")
	p := SpawnPinwheel(s, DefaultBladeTemplate(false), common.ShinyMetallicBlue, -5, [2]float32{})

	blades := s.Query(BladeTag)
	require.Len(t, blades, BladesPerPinwheel)
	spots := s.LightsOfType(light.LightTypeSpot)
	require.Len(t, spots, 1)
	assert.Same(t, p.Light, spots[0])
	assert.Equal(t, common.ShinyMetallicBlue, p.Light.Color())

	for i, b := range blades {
		assert.Equal(t, p.Blades[i], b.ID())
		assert.Equal(t, i, b.FanIndex())
		assert.Equal(t, [3]float32{0, 0, -5}, b.Transform().Translation)
		assert.True(t, b.Transform().Rotation.ApproxEqual(common.QuatIdentity(), eps))
		assert.Equal(t, p.Material, b.Material())
	}

	mat := s.Materials().MustGet(p.Material)
	assert.Equal(t, common.ShinyMetallicBlue, mat.BaseColor())
	assert.Equal(t, BladeMetallic, mat.Metallic())
	assert.Equal(t, BladeRoughness, mat.Roughness())
}

func TestSpawnPinwheelCopiesTemplate(t *testing.T) {
	s := scene.NewScene("test")
	tmpl := DefaultBladeTemplate(false)
	SpawnPinwheel(s, tmpl, common.White, 0, [2]float32{})

	blades := s.Query(BladeTag)
	first := s.Meshes().MustGet(blades[0].Mesh())
	second := s.Meshes().MustGet(blades[1].Mesh())
	assert.NotEqual(t, blades[0].Mesh(), blades[1].Mesh())

	// each blade owns its own copy of the template, so editing one mesh leaves its
	// siblings and the template alone
	first.SetPosition(1, [3]float32{9, 9, 9})
	assert.Equal(t, [3]float32{9, 9, 9}, first.Positions()[1])
	assert.Equal(t, [3]float32{0.5, 2, 0}, second.Positions()[1])
	assert.Equal(t, [3]float32{0.5, 2, 0}, tmpl.Positions[1])

	tmpl.Positions[2] = [3]float32{7, 7, 7}
	assert.Equal(t, [3]float32{1, 2, 0}, second.Positions()[2])
}

func TestFanIndexContinuesAcrossPinwheels(t *testing.T) {
	s := scene.NewScene("test")
	a := SpawnPinwheel(s, DefaultBladeTemplate(false), common.ShinyMetallicBlue, -5, [2]float32{})
	b := SpawnPinwheel(s, DefaultBladeTemplate(false), common.CircuitBoardGreen, -3, [2]float32{1, 2})

	assert.Equal(t, 0, a.FirstFanIndex)
	assert.Equal(t, BladesPerPinwheel, b.FirstFanIndex)
	for i, obj := range s.Query(BladeTag) {
		assert.Equal(t, i, obj.FanIndex())
	}
	assert.Equal(t, [3]float32{1, 2, 0}, b.Light.Position())
	assert.Len(t, s.LightsOfType(light.LightTypeSpot), 2)
}

func TestSpawnRig(t *testing.T) {
	s := scene.NewScene("test")
	sun := SpawnDirectionalLight(s)
	assert.Equal(t, common.LEDWhite, sun.Color())
	assert.Equal(t, DirectionalIlluminance, sun.Intensity())
	assert.True(t, sun.CastsShadows())
	assert.Equal(t, [3]float32{0, 0, 5}, sun.Position())
	sunDir := sun.Direction()
	assert.InDeltaSlice(t, []float32{0, 0, -1}, sunDir[:], eps)

	spot := SpawnPointLight(s, common.CircuitBoardGreen, 2, 3)
	assert.Equal(t, light.LightTypeSpot, spot.Type())
	assert.Equal(t, [3]float32{2, 3, 0}, spot.Position())
	assert.Equal(t, SpotIntensity, spot.Intensity())
	assert.Equal(t, SpotRange, spot.Range())
	assert.Equal(t, float32(0), spot.InnerAngle())
	assert.InDelta(t, math32.Pi/4, spot.OuterAngle(), eps)
	assert.True(t, spot.CastsShadows())

	cam := SpawnCamera(s, 720.0/1280.0)
	assert.Same(t, cam, s.Camera())
	assert.Equal(t, [3]float32{0, 0, 10}, cam.Position())
	camFwd := cam.Transform().Forward()
	assert.InDeltaSlice(t, []float32{0, 0, -1}, camFwd[:], eps)
	assert.True(t, cam.HDR())
	assert.Equal(t, camera.TonemappingTonyMcMapface, cam.Tonemapping())
	bloom, ok := cam.Bloom()
	require.True(t, ok)
	assert.Equal(t, Bloom(), bloom)
	assert.Equal(t, camera.BloomAdditive, bloom.CompositeMode)
	assert.Equal(t, common.Black, cam.ClearColor())
}

func TestRotateBladesGatesByElapsedSeconds(t *testing.T) {
	s := scene.NewScene("test")
	// two pinwheels so more than five blades exist
	SpawnPinwheel(s, DefaultBladeTemplate(false), common.White, 0, [2]float32{})
	SpawnPinwheel(s, DefaultBladeTemplate(false), common.White, 0, [2]float32{})

	RotateBlades(s, clock.Fixed{ElapsedSeconds: 2.3, DeltaSeconds: 0.1})

	for _, b := range s.Query(BladeTag) {
		if b.FanIndex() <= 2 {
			assert.InDelta(t, spinAngle(0.1), zAngle(b), eps, "fan index %d", b.FanIndex())
		} else {
			assert.InDelta(t, 0, zAngle(b), eps, "fan index %d", b.FanIndex())
		}
	}
}

func TestRotateBladesAtStartOnlyTurnsFirst(t *testing.T) {
	s := scene.NewScene("test")
	SpawnPinwheel(s, DefaultBladeTemplate(false), common.White, 0, [2]float32{})

	RotateBlades(s, clock.Fixed{ElapsedSeconds: 0, DeltaSeconds: 0.5})

	for _, b := range s.Query(BladeTag) {
		want := float32(0)
		if b.FanIndex() == 0 {
			want = spinAngle(0.5)
		}
		assert.InDelta(t, want, zAngle(b), eps, "fan index %d", b.FanIndex())
	}
}

func TestRotateBladesFollowsFanIndexNotInsertion(t *testing.T) {
	s := scene.NewScene("test")
	for i := range 3 {
		s.Add(game_object.NewGameObject(game_object.WithTags(BladeTag), game_object.WithFanIndex(2-i)))
	}

	RotateBlades(s, clock.Fixed{ElapsedSeconds: 0.9, DeltaSeconds: 0.25})

	for _, b := range s.Query(BladeTag) {
		want := float32(0)
		if b.FanIndex() == 0 {
			want = spinAngle(0.25)
		}
		assert.InDelta(t, want, zAngle(b), eps, "fan index %d", b.FanIndex())
	}
}

func TestRotateBladesAccumulates(t *testing.T) {
	s := scene.NewScene("test")
	SpawnPinwheel(s, DefaultBladeTemplate(false), common.White, 0, [2]float32{})
	for range 3 {
		RotateBlades(s, clock.Fixed{ElapsedSeconds: 10, DeltaSeconds: 0.1})
	}
	for _, b := range s.Query(BladeTag) {
		assert.InDelta(t, spinAngle(0.3), zAngle(b), eps)
		assert.Equal(t, [3]float32{0, 0, 0}, b.Transform().Translation)
	}
}

func TestSwayLightAccumulates(t *testing.T) {
	s := scene.NewScene("test")
	sun := SpawnDirectionalLight(s)
	spot := SpawnPointLight(s, common.White, 0, 0)

	deltas := []float32{0.016, 0.5, 1.2, 0.033, 2.5}
	var sum float32
	for _, d := range deltas {
		SwayLight(s, clock.Fixed{DeltaSeconds: d})
		sum += d
	}

	got := sun.Transform().Rotation.AngleAbout(common.AxisX)
	assert.InDelta(t, common.WrapAngle(LightSwayRate*sum), got, 1e-4)
	assert.Equal(t, [3]float32{0, 0, 5}, sun.Position())
	assert.True(t, spot.Transform().Rotation.ApproxEqual(common.QuatIdentity(), eps))
}

func TestAnimateCameraOrbits(t *testing.T) {
	s := scene.NewScene("test")
	cam := SpawnCamera(s, 1)

	dt := math32.Pi / 2 / CameraOrbitRate
	AnimateCamera(s, clock.Fixed{DeltaSeconds: dt})

	pos := cam.Position()
	assert.InDeltaSlice(t, []float32{10, 0, 0}, pos[:], 1e-4)
	fwd := cam.Transform().Forward()
	assert.InDeltaSlice(t, []float32{-1, 0, 0}, fwd[:], 1e-4)

	AnimateCamera(scene.NewScene("no camera"), clock.Fixed{DeltaSeconds: 1})
}

func TestSystemsFollowFeatures(t *testing.T) {
	assert.Len(t, Systems(config.Features{}), 2)
	assert.Len(t, Systems(config.Features{CameraAnimation: true}), 3)
}

func headlessEngine(t *testing.T, cfg config.Config, opts ...engine.EngineBuilderOption) (engine.Engine, renderer.Renderer) {
	t.Helper()
	r, err := renderer.NewRenderer(renderer.BackendTypeSoftware, nil, renderer.WithSize(18, 32))
	require.NoError(t, err)
	t.Cleanup(r.Release)

	base := []engine.EngineBuilderOption{
		engine.WithScene(scene.NewScene("pinwheel")),
		engine.WithRenderer(r),
		engine.WithClock(clock.NewClock(clock.WithFixedStep(100 * time.Millisecond))),
		engine.WithTickRate(0),
		engine.WithStartupSystems(StartupSystems(cfg, 18.0/32.0)...),
		engine.WithSystems(Systems(cfg.Features)...),
	}
	return engine.NewEngine(append(base, opts...)...), r
}

func TestSceneCardinalityIsStable(t *testing.T) {
	cfg := config.Default()
	e, _ := headlessEngine(t, cfg, engine.WithFrameLimit(40))
	require.NoError(t, e.Run(context.Background()))

	s := e.Scene()
	assert.Len(t, s.Query(BladeTag), BladesPerPinwheel)
	assert.Equal(t, BladesPerPinwheel, s.Count())
	assert.Len(t, s.LightsOfType(light.LightTypeDirectional), 1)
	assert.Len(t, s.LightsOfType(light.LightTypeSpot), 1)
	assert.NotNil(t, s.Camera())
	assert.True(t, s.Sealed())

	// elapsed runs 0.0..3.9: blade 0 turns on all 39 non-zero deltas, blade 3 joins at 3.0s
	// and blade 4 has not started yet
	blades := s.Query(BladeTag)
	assert.InDelta(t, common.WrapAngle(spinAngle(3.9)), zAngle(blades[0]), 1e-3)
	assert.InDelta(t, common.WrapAngle(spinAngle(1.0)), zAngle(blades[3]), 1e-3)
	assert.InDelta(t, 0, zAngle(blades[4]), eps)
}

func TestMultiPinwheelFeature(t *testing.T) {
	cfg := config.Default()
	cfg.Pinwheels = append(cfg.Pinwheels, config.PinwheelConfig{Color: "circuit_board_green", HubDepth: -3})

	e, _ := headlessEngine(t, cfg, engine.WithFrameLimit(1))
	require.NoError(t, e.Run(context.Background()))
	assert.Len(t, e.Scene().Query(BladeTag), BladesPerPinwheel)

	cfg.Features.MultiPinwheel = true
	e, _ = headlessEngine(t, cfg, engine.WithFrameLimit(1))
	require.NoError(t, e.Run(context.Background()))
	assert.Len(t, e.Scene().Query(BladeTag), 2*BladesPerPinwheel)
	assert.Len(t, e.Scene().LightsOfType(light.LightTypeSpot), 2)
}

func TestScreenshotHookWritesEveryFrame(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "screenshots")
	c := screenshot.NewCapturer(screenshot.WithDirectory(dir))

	r, err := renderer.NewRenderer(renderer.BackendTypeSoftware, nil, renderer.WithSize(18, 32))
	require.NoError(t, err)
	defer r.Release()

	cfg := config.Default()
	e := engine.NewEngine(
		engine.WithScene(scene.NewScene("pinwheel")),
		engine.WithRenderer(r),
		engine.WithClock(clock.NewClock(clock.WithFixedStep(100*time.Millisecond))),
		engine.WithTickRate(0),
		engine.WithFrameLimit(3),
		engine.WithStartupSystems(StartupSystems(cfg, 18.0/32.0)...),
		engine.WithSystems(Systems(cfg.Features)...),
		engine.WithPostFrame(ScreenshotHook(c, r, nil)),
	)
	require.NoError(t, e.Run(context.Background()))
	require.NoError(t, c.Close())

	for _, name := range []string{"0.png", "1.png", "2.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	assert.Equal(t, 3, c.Count())
}

func TestScreenshotHookSurfacesCaptureErrors(t *testing.T) {
	c := screenshot.NewCapturer(screenshot.WithDirectory(t.TempDir()))
	require.NoError(t, c.Close())

	cfg := config.Default()
	e, r := headlessEngine(t, cfg)
	hook := ScreenshotHook(c, r, nil)
	require.NoError(t, e.Step())
	assert.ErrorIs(t, hook(e.Scene()), screenshot.ErrClosed)
}
