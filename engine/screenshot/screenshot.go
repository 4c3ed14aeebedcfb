// Package screenshot writes rendered frames to disk as numbered image files.
//
// Capture copies the frame synchronously and hands scaling, encoding and the file write to
// a worker pool, so the frame loop only pays for the copy. Files are named {n}.{ext} with
// n counting up from 0 per Capturer.
package screenshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// ErrClosed is returned by Capture after Close.
var ErrClosed = errors.New("screenshot: capturer is closed")

// Format is the encoding used for written frames.
type Format int

const (
	// FormatPNG writes lossless PNG files.
	FormatPNG Format = iota
	// FormatWebP writes lossless WebP files.
	FormatWebP
)

// Ext returns the file extension without the leading dot.
func (f Format) Ext() string {
	if f == FormatWebP {
		return "webp"
	}
	return "png"
}

// ParseFormat maps a config name to a Format.
//
// Parameters:
//   - s: "png" or "webp" (case-insensitive)
//
// Returns:
//   - Format: the matching format
//   - error: an error if the name is unknown
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	}
	return FormatPNG, fmt.Errorf("screenshot: unknown format %q", s)
}

// capturer is the implementation of the Capturer interface.
type capturer struct {
	mu      sync.Mutex
	pending sync.WaitGroup
	pool    worker.DynamicWorkerPool

	dir     string
	format  Format
	scale   float64
	workers int

	next     int
	dirReady bool
	closed   bool
	err      error
}

// Capturer saves frames asynchronously. It is safe for use from one frame loop; Close
// must be called to flush pending writes.
type Capturer interface {
	// Capture schedules img to be written as the next numbered file.
	// A write failure from an earlier capture is returned here and stops further captures.
	//
	// Parameters:
	//   - img: the frame; it is copied before Capture returns
	//
	// Returns:
	//   - string: the path the frame will be written to
	//   - error: ErrClosed, a directory error, or an earlier write error
	Capture(img image.Image) (string, error)

	// Count returns how many frames have been scheduled.
	Count() int

	// Dir returns the output directory.
	Dir() string

	// Close waits for pending writes and stops the workers.
	//
	// Returns:
	//   - error: the first write error, if any
	Close() error
}

var _ Capturer = &capturer{}

// NewCapturer creates a Capturer. Defaults: directory ./screenshots, PNG, no scaling,
// two workers.
//
// Parameters:
//   - options: functional options to configure the capturer
//
// Returns:
//   - Capturer: the capturer; the output directory is created on first Capture
func NewCapturer(options ...CapturerBuilderOption) Capturer {
	c := &capturer{
		dir:     DefaultDirectory,
		format:  FormatPNG,
		scale:   1,
		workers: 2,
	}
	for _, opt := range options {
		opt(c)
	}
	c.workers = max(c.workers, 1)
	c.pool = worker.NewDynamicWorkerPool(c.workers, c.workers*4, time.Second)
	return c
}

func (c *capturer) Capture(img image.Image) (string, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return "", ErrClosed
	}
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return "", err
	}
	if !c.dirReady {
		if err := os.MkdirAll(c.dir, 0o755); err != nil {
			c.err = fmt.Errorf("screenshot: create %s: %w", c.dir, err)
			c.mu.Unlock()
			return "", c.err
		}
		c.dirReady = true
	}
	n := c.next
	c.next++
	// counted under the lock so Close cannot stop the pool before this task is submitted
	c.pending.Add(1)
	c.mu.Unlock()

	path := filepath.Join(c.dir, fmt.Sprintf("%d.%s", n, c.format.Ext()))
	frame := cloneRGBA(img)

	c.pool.SubmitTask(worker.Task{
		ID: n,
		Do: func() (any, error) {
			defer c.pending.Done()
			err := c.write(path, frame)
			if err != nil {
				c.mu.Lock()
				if c.err == nil {
					c.err = err
				}
				c.mu.Unlock()
				slog.Error("screenshot write failed", "path", path, "err", err)
				return nil, err
			}
			slog.Debug("screenshot saved", "path", path)
			return path, nil
		},
	})
	return path, nil
}

func (c *capturer) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next
}

func (c *capturer) Dir() string {
	return c.dir
}

func (c *capturer) Close() error {
	c.mu.Lock()
	if c.closed {
		err := c.err
		c.mu.Unlock()
		return err
	}
	c.closed = true
	c.mu.Unlock()

	c.pending.Wait()
	c.pool.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// write scales, encodes and writes one frame.
func (c *capturer) write(path string, img *image.RGBA) error {
	var out image.Image = img
	if c.scale > 0 && c.scale != 1 {
		out = scaleImage(img, c.scale)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("screenshot: write %s: %w", path, err)
	}
	switch c.format {
	case FormatWebP:
		err = nativewebp.Encode(f, out, nil)
	default:
		err = png.Encode(f, out)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("screenshot: write %s: %w", path, err)
	}
	return nil
}

// cloneRGBA copies img into a fresh RGBA image anchored at the origin.
func cloneRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// scaleImage resizes img by factor with Catmull-Rom filtering. The result is at least 1×1.
func scaleImage(img *image.RGBA, factor float64) *image.RGBA {
	b := img.Bounds()
	w := max(int(float64(b.Dx())*factor+0.5), 1)
	h := max(int(float64(b.Dy())*factor+0.5), 1)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}
