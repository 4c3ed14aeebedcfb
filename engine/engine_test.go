package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/camera"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/clock"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/light"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headless(t *testing.T, s scene.Scene, opts ...EngineBuilderOption) Engine {
	t.Helper()
	r, err := renderer.NewRenderer(renderer.BackendTypeSoftware, nil, renderer.WithSize(8, 8))
	require.NoError(t, err)
	t.Cleanup(r.Release)

	base := []EngineBuilderOption{
		WithScene(s),
		WithRenderer(r),
		WithClock(clock.NewClock(clock.WithFixedStep(100 * time.Millisecond))),
		WithTickRate(0),
	}
	return NewEngine(append(base, opts...)...)
}

func cameraScene() scene.Scene {
	cam := camera.NewCamera(camera.WithTransform(common.TransformFromXYZ(0, 0, 10).LookingAt([3]float32{}, common.AxisY)))
	return scene.NewScene("test", scene.WithCamera(cam))
}

func TestStartupRunsOnceThenSeals(t *testing.T) {
	s := cameraScene()
	startups := 0
	e := headless(t, s, WithStartupSystems(func(s scene.Scene, c clock.Clock) {
		startups++
		assert.False(t, s.Sealed())
		s.AddLight(light.NewLight(light.LightTypeDirectional))
	}))

	require.NoError(t, e.Step())
	require.NoError(t, e.Step())
	assert.Equal(t, 1, startups)
	assert.True(t, s.Sealed())
	assert.Len(t, s.Lights(), 1)
	assert.Equal(t, uint64(2), e.Frames())
}

func TestFailedStartupIsNotRetried(t *testing.T) {
	s := cameraScene()
	startups := 0
	e := headless(t, s, WithStartupSystems(func(s scene.Scene, c clock.Clock) {
		startups++
		s.AddLight(light.NewLight(light.LightTypeDirectional))
		panic("no gpu")
	}))

	first := e.Step()
	require.Error(t, first)
	assert.Contains(t, first.Error(), "engine: startup panicked: no gpu")

	second := e.Step()
	assert.Equal(t, first, second)
	assert.Equal(t, 1, startups)
	assert.Len(t, s.Lights(), 1)
	assert.Equal(t, uint64(0), e.Frames())

	assert.Equal(t, first, e.Run(context.Background()))
	assert.Equal(t, 1, startups)
}

func TestSystemsRunInOrderAfterClockAdvance(t *testing.T) {
	var order []string
	var elapsed []float32
	e := headless(t, cameraScene(),
		WithSystems(
			func(_ scene.Scene, c clock.Clock) {
				order = append(order, "a")
				elapsed = append(elapsed, c.Elapsed())
			},
			func(scene.Scene, clock.Clock) { order = append(order, "b") },
		),
		WithPostFrame(func(scene.Scene) error {
			order = append(order, "post")
			return nil
		}),
	)

	require.NoError(t, e.Step())
	require.NoError(t, e.Step())
	assert.Equal(t, []string{"a", "b", "post", "a", "b", "post"}, order)
	assert.InDeltaSlice(t, []float32{0, 0.1}, elapsed, 1e-6)
}

func TestRunStopsAtFrameLimit(t *testing.T) {
	frames := 0
	e := headless(t, cameraScene(),
		WithFrameLimit(5),
		WithSystems(func(scene.Scene, clock.Clock) { frames++ }),
	)
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 5, frames)
	assert.Equal(t, uint64(5), e.Frames())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e := headless(t, cameraScene(), WithSystems(func(_ scene.Scene, c clock.Clock) {
		if c.Elapsed() >= 0.3 {
			cancel()
		}
	}))
	require.NoError(t, e.Run(ctx))
	assert.Equal(t, uint64(4), e.Frames())
}

func TestRunStopsOnQuit(t *testing.T) {
	var e Engine
	e = headless(t, cameraScene(), WithSystems(func(scene.Scene, clock.Clock) {
		e.Quit()
		e.Quit()
	}))
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, uint64(1), e.Frames())
}

func TestPanickingFrameBecomesError(t *testing.T) {
	e := headless(t, cameraScene(), WithSystems(func(scene.Scene, clock.Clock) {
		panic("boom")
	}))
	err := e.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, uint64(0), e.Frames())
}

func TestRenderingWithoutCameraFails(t *testing.T) {
	e := headless(t, scene.NewScene("no-camera"))
	err := e.Step()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no camera")
}

func TestPostFrameErrorStopsRun(t *testing.T) {
	sentinel := errors.New("disk full")
	e := headless(t, cameraScene(), WithPostFrame(func(scene.Scene) error { return sentinel }))
	err := e.Run(context.Background())
	assert.ErrorIs(t, err, sentinel)
}

func TestNoRenderer(t *testing.T) {
	e := NewEngine(WithScene(cameraScene()))
	assert.ErrorIs(t, e.Run(context.Background()), ErrNoRenderer)
	assert.ErrorIs(t, e.Step(), ErrNoRenderer)
}

func TestNewEngineRequiresScene(t *testing.T) {
	assert.PanicsWithValue(t, "engine: NewEngine: a scene is required", func() { NewEngine() })
}

func TestResizeUpdatesRendererAndCamera(t *testing.T) {
	s := cameraScene()
	e := headless(t, s).(*engine)
	e.resize(200, 100)
	w, h := e.Renderer().Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
	assert.InDelta(t, 2, s.Camera().Aspect(), 1e-6)

	e.resize(0, 100)
	assert.InDelta(t, 2, s.Camera().Aspect(), 1e-6)
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, time.Duration(0), tickInterval(0))
	assert.Equal(t, 20*time.Millisecond, tickInterval(50))
}
