package screenshot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), B: 64, A: 255})
		}
	}
	return img
}

func TestCaptureWritesNumberedPNGs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	c := NewCapturer(WithDirectory(dir))

	for i := range 3 {
		path, err := c.Capture(testFrame(16, 8))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, []string{"0.png", "1.png", "2.png"}[i]), path)
	}
	require.NoError(t, c.Close())
	assert.Equal(t, 3, c.Count())

	f, err := os.Open(filepath.Join(dir, "2.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())
	r, g, _, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(8), r>>8)
	assert.Equal(t, uint32(8), g>>8)
}

func TestCaptureCopiesTheFrame(t *testing.T) {
	dir := t.TempDir()
	c := NewCapturer(WithDirectory(dir), WithWorkers(1))

	frame := testFrame(4, 4)
	_, err := c.Capture(frame)
	require.NoError(t, err)
	// mutating after Capture must not leak into the file
	for i := range frame.Pix {
		frame.Pix[i] = 0
	}
	require.NoError(t, c.Close())

	f, err := os.Open(filepath.Join(dir, "0.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	_, _, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(64), b>>8)
	assert.Equal(t, uint32(255), a>>8)
}

func TestCaptureWebPScaled(t *testing.T) {
	dir := t.TempDir()
	c := NewCapturer(WithDirectory(dir), WithFormat(FormatWebP), WithScale(0.5))

	path, err := c.Capture(testFrame(16, 8))
	require.NoError(t, err)
	assert.Equal(t, "0.webp", filepath.Base(path))
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.True(t, bytes.HasPrefix(data, []byte("RIFF")))
	assert.Equal(t, []byte("WEBP"), data[8:12])
}

func TestScaleImage(t *testing.T) {
	out := scaleImage(testFrame(16, 8), 0.5)
	assert.Equal(t, image.Rect(0, 0, 8, 4), out.Bounds())
	assert.Equal(t, image.Rect(0, 0, 1, 1), scaleImage(testFrame(2, 2), 0.01).Bounds())
}

func TestCaptureAfterClose(t *testing.T) {
	c := NewCapturer(WithDirectory(t.TempDir()))
	require.NoError(t, c.Close())
	_, err := c.Capture(testFrame(2, 2))
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, c.Close())
}

func TestCloseWaitsForConcurrentCaptures(t *testing.T) {
	dir := t.TempDir()
	c := NewCapturer(WithDirectory(dir), WithWorkers(1))
	frame := testFrame(4, 4)

	var (
		mu      sync.Mutex
		written []string
		wg      sync.WaitGroup
	)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				path, err := c.Capture(frame)
				if err != nil {
					assert.ErrorIs(t, err, ErrClosed)
					return
				}
				mu.Lock()
				written = append(written, path)
				mu.Unlock()
			}
		}()
	}
	require.NoError(t, c.Close())
	wg.Wait()

	// every capture accepted before Close is on disk once Close returns
	for _, path := range written {
		assert.FileExists(t, path)
	}
}

func TestWriteFailureSurfaces(t *testing.T) {
	dir := t.TempDir()
	// a directory where the first file should go makes the write fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "0.png"), 0o755))

	c := NewCapturer(WithDirectory(dir))
	_, err := c.Capture(testFrame(2, 2))
	require.NoError(t, err)

	err = c.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "screenshot: write")
}

func TestDirectoryErrorSurfaces(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	c := NewCapturer(WithDirectory(filepath.Join(file, "shots")))
	defer c.Close()
	_, err := c.Capture(testFrame(2, 2))
	assert.Error(t, err)
	assert.Equal(t, 0, c.Count())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("WebP")
	require.NoError(t, err)
	assert.Equal(t, FormatWebP, f)
	assert.Equal(t, "webp", f.Ext())

	f, err = ParseFormat("png")
	require.NoError(t, err)
	assert.Equal(t, "png", f.Ext())

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}
