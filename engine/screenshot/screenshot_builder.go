package screenshot

// DefaultDirectory is where frames are written when no directory is configured.
const DefaultDirectory = "./screenshots"

// CapturerBuilderOption is a functional option for configuring a capturer.
type CapturerBuilderOption func(*capturer)

// WithDirectory sets the output directory.
//
// Parameters:
//   - dir: the directory; created on first Capture
//
// Returns:
//   - CapturerBuilderOption: option function to apply
func WithDirectory(dir string) CapturerBuilderOption {
	return func(c *capturer) {
		if dir != "" {
			c.dir = dir
		}
	}
}

// WithFormat sets the file encoding.
//
// Parameters:
//   - f: FormatPNG or FormatWebP
//
// Returns:
//   - CapturerBuilderOption: option function to apply
func WithFormat(f Format) CapturerBuilderOption {
	return func(c *capturer) {
		c.format = f
	}
}

// WithScale resizes frames before encoding. 1 (the default) or a non-positive factor
// writes frames at render size.
//
// Parameters:
//   - factor: the size multiplier, e.g. 0.5 for half-size files
//
// Returns:
//   - CapturerBuilderOption: option function to apply
func WithScale(factor float64) CapturerBuilderOption {
	return func(c *capturer) {
		c.scale = factor
	}
}

// WithWorkers sets how many frames may be encoded concurrently.
func WithWorkers(n int) CapturerBuilderOption {
	return func(c *capturer) {
		c.workers = n
	}
}
