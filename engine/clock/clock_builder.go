package clock

import "time"

// ClockBuilderOption is a functional option used to configure a Source during construction.
type ClockBuilderOption func(*frameClock)

// WithFixedStep makes every Advance after the first add step to the elapsed time,
// independent of the wall clock.
//
// Parameters:
//   - step: the per-frame delta
//
// Returns:
//   - ClockBuilderOption: a function that sets the fixed step
func WithFixedStep(step time.Duration) ClockBuilderOption {
	return func(c *frameClock) {
		c.fixedStep = step
	}
}

// WithTimeSource replaces the wall clock used when no fixed step is set.
//
// Parameters:
//   - now: returns the current time
//
// Returns:
//   - ClockBuilderOption: a function that sets the time source
func WithTimeSource(now func() time.Time) ClockBuilderOption {
	return func(c *frameClock) {
		c.now = now
	}
}
