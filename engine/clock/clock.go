// Package clock provides the frame clock read by per-frame systems.
package clock

import (
	"sync"
	"time"
)

// Clock is the read-only view of frame time handed to per-frame systems.
type Clock interface {
	// Elapsed returns the seconds since the clock started, as of the current frame.
	Elapsed() float32

	// Delta returns the seconds between the previous frame and the current one.
	// It is zero on the first frame.
	Delta() float32
}

// Source is a Clock that the frame loop advances once per frame.
type Source interface {
	Clock

	// Advance moves the clock to the next frame.
	Advance()

	// Frame returns the number of times Advance has been called.
	Frame() uint64
}

type frameClock struct {
	mu *sync.RWMutex

	now       func() time.Time
	fixedStep time.Duration

	start   time.Time
	last    time.Time
	elapsed time.Duration
	delta   time.Duration
	frame   uint64
}

var _ Source = &frameClock{}

// NewClock creates a Source. By default it follows the wall clock; WithFixedStep makes
// every frame advance by the same duration, which is what headless runs and tests use.
//
// Parameters:
//   - options: variadic list of ClockBuilderOption functions
//
// Returns:
//   - Source: the clock
func NewClock(options ...ClockBuilderOption) Source {
	c := &frameClock{
		mu:  &sync.RWMutex{},
		now: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *frameClock) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fixedStep > 0 {
		if c.frame > 0 {
			c.delta = c.fixedStep
			c.elapsed += c.fixedStep
		}
		c.frame++
		return
	}

	t := c.now()
	if c.frame == 0 {
		c.start, c.last = t, t
	}
	c.delta = t.Sub(c.last)
	c.elapsed = t.Sub(c.start)
	c.last = t
	c.frame++
}

func (c *frameClock) Elapsed() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return float32(c.elapsed.Seconds())
}

func (c *frameClock) Delta() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return float32(c.delta.Seconds())
}

func (c *frameClock) Frame() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frame
}

// Fixed is a Clock frozen at an explicit elapsed/delta pair.
type Fixed struct {
	ElapsedSeconds float32
	DeltaSeconds   float32
}

var _ Clock = Fixed{}

// Elapsed implements Clock.
func (f Fixed) Elapsed() float32 { return f.ElapsedSeconds }

// Delta implements Clock.
func (f Fixed) Delta() float32 { return f.DeltaSeconds }
