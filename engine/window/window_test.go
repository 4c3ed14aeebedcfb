package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEngineWindowDefaults(t *testing.T) {
	w := newEngineWindow()
	assert.Equal(t, DefaultWidth, w.Width())
	assert.Equal(t, DefaultHeight, w.Height())
	assert.Equal(t, float32(1), w.ScaleFactor())
	assert.False(t, w.IsRunning())
	assert.False(t, w.ProcessMessages())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
}

func TestPixelSize(t *testing.T) {
	cases := []struct {
		name         string
		w, h         int
		scale        float32
		wantW, wantH int
	}{
		{"identity", 720, 1280, 1, 720, 1280},
		{"retina", 720, 1280, 2, 1440, 2560},
		{"fractional", 720, 1280, 1.25, 900, 1600},
		{"invalid scale", 720, 1280, 0, 720, 1280},
		{"tiny", 1, 1, 0.1, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, h := pixelSize(tc.w, tc.h, tc.scale)
			assert.Equal(t, tc.wantW, w)
			assert.Equal(t, tc.wantH, h)
		})
	}
}

func TestOptionsApplyScale(t *testing.T) {
	w := newEngineWindow(WithTitle("t"), WithSize(100, 200), WithScaleFactor(1.5), WithResizable(false))
	assert.Equal(t, 150, w.Width())
	assert.Equal(t, 300, w.Height())
	assert.False(t, w.resizable)
	assert.Equal(t, "t", w.title)
}

func TestResizedNotifiesOnChange(t *testing.T) {
	w := newEngineWindow()
	calls := 0
	w.SetResizeCallback(func(width, height int) {
		calls++
		assert.Equal(t, 300, width)
		assert.Equal(t, 400, height)
	})
	w.resized(300, 400)
	w.resized(300, 400)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 300, w.Width())
}
