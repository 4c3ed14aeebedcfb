// Package config loads the pinwheel scene settings from a TOML file.
//
// Every field has a default, so a missing file or a partial file is valid: values present
// in the file override the defaults and everything else is left alone.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/pelletier/go-toml/v2"
)

// EnvPath names the environment variable that overrides the config file location.
const EnvPath = "PINWHEEL_CONFIG"

// DefaultPath is the config file read when EnvPath is unset.
const DefaultPath = "pinwheel.toml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	Window     WindowConfig     `toml:"window"`
	Render     RenderConfig     `toml:"render"`
	Log        LogConfig        `toml:"log"`
	Features   Features         `toml:"features"`
	Screenshot ScreenshotConfig `toml:"screenshot"`
	Pinwheels  []PinwheelConfig `toml:"pinwheel"`
}

// WindowConfig sizes the platform window. Width and height are logical pixels.
type WindowConfig struct {
	Title       string  `toml:"title"`
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	ScaleFactor float32 `toml:"scale_factor"`
}

// RenderConfig selects the backend and paces the frame loop.
type RenderConfig struct {
	Backend    string  `toml:"backend"`
	VSync      bool    `toml:"vsync"`
	TickRate   float64 `toml:"tick_rate"`   // frames per second, 0 = uncapped
	FrameLimit uint64  `toml:"frame_limit"` // 0 = run until closed
	Profiling  bool    `toml:"profiling"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// Features toggles the optional behaviors of the scene.
type Features struct {
	MultiPinwheel   bool `toml:"multi_pinwheel"`
	CameraAnimation bool `toml:"camera_animation"`
	UVChannel       bool `toml:"uv_channel"`
	Screenshots     bool `toml:"screenshots"`
}

// ScreenshotConfig configures frame capture when Features.Screenshots is on.
type ScreenshotConfig struct {
	Dir     string  `toml:"dir"`
	Format  string  `toml:"format"`
	Scale   float64 `toml:"scale"`
	Workers int     `toml:"workers"`
}

// PinwheelConfig places one pinwheel.
type PinwheelConfig struct {
	// Color is a color name (e.g. "shiny_metallic_blue") or an [r, g, b] array of linear components.
	Color       any        `toml:"color"`
	HubDepth    float32    `toml:"hub_depth"`
	LightOrigin [2]float32 `toml:"light_origin"`
}

// Default returns the configuration used when no file is present: one blue pinwheel at
// depth -5 in a 720×1280 window.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:       "pinwheel",
			Width:       720,
			Height:      1280,
			ScaleFactor: 1,
		},
		Render: RenderConfig{
			Backend:  "wgpu",
			VSync:    true,
			TickRate: 60,
		},
		Log: LogConfig{Level: "info"},
		Screenshot: ScreenshotConfig{
			Dir:     "./screenshots",
			Format:  "png",
			Scale:   1,
			Workers: 2,
		},
		Pinwheels: []PinwheelConfig{
			{Color: "shiny_metallic_blue", HubDepth: -5},
		},
	}
}

// Path returns the config file location: $PINWHEEL_CONFIG when set, otherwise DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads and validates the config at path on top of Default().
// A missing file is not an error and yields the defaults.
//
// Parameters:
//   - path: the TOML file to read
//
// Returns:
//   - Config: the merged configuration
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("config file not found, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err = decode(data)
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of Default() and validates the result. Unknown keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the merged configuration
//   - error: a decode or validation error
func Parse(data []byte) (Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// decode is Parse without the package prefix on its errors.
func decode(data []byte) (Config, error) {
	cfg := Default()
	// an explicit [[pinwheel]] list replaces the default entry rather than appending to it
	cfg.Pinwheels = nil

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("decode: %s", strict.String())
		}
		return cfg, fmt.Errorf("decode: %w", err)
	}
	if cfg.Pinwheels == nil {
		cfg.Pinwheels = Default().Pinwheels
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
//
// Returns:
//   - error: an error wrapping ErrInvalid that lists every problem, or nil
func (c Config) Validate() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c Config) validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.ScaleFactor <= 0 {
		add("window.scale_factor %g must be positive", c.Window.ScaleFactor)
	}
	switch strings.ToLower(c.Render.Backend) {
	case "wgpu", "software":
	default:
		add("unknown render.backend %q", c.Render.Backend)
	}
	if c.Render.TickRate < 0 {
		add("render.tick_rate %g must not be negative", c.Render.TickRate)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		add("%v", err)
	}
	switch strings.ToLower(c.Screenshot.Format) {
	case "png", "webp":
	default:
		add("unknown screenshot.format %q", c.Screenshot.Format)
	}
	if c.Screenshot.Scale <= 0 {
		add("screenshot.scale %g must be positive", c.Screenshot.Scale)
	}
	if c.Screenshot.Workers <= 0 {
		add("screenshot.workers %d must be positive", c.Screenshot.Workers)
	}
	if len(c.Pinwheels) == 0 {
		add("at least one [[pinwheel]] is required")
	}
	for i, p := range c.Pinwheels {
		if _, err := p.ResolveColor(); err != nil {
			add("pinwheel[%d]: %v", i, err)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// ActivePinwheels returns the pinwheels to spawn: all of them with MultiPinwheel on,
// otherwise only the first.
func (c Config) ActivePinwheels() []PinwheelConfig {
	if c.Features.MultiPinwheel || len(c.Pinwheels) <= 1 {
		return c.Pinwheels
	}
	slog.Warn("multi_pinwheel is disabled, ignoring extra pinwheels", "ignored", len(c.Pinwheels)-1)
	return c.Pinwheels[:1]
}

// SlogLevel maps the configured level name to a slog.Level.
//
// Returns:
//   - slog.Level: the level (info when the name is empty)
//   - error: an error if the name is unknown
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log.level %q", l.Level)
}

// ResolveColor turns the configured color into a linear color.
//
// Returns:
//   - common.Color: the color
//   - error: an error if the value is neither a known name nor three numbers
func (p PinwheelConfig) ResolveColor() (common.Color, error) {
	switch v := p.Color.(type) {
	case string:
		return common.ColorByName(v)
	case []any:
		if len(v) != 3 {
			return common.Color{}, fmt.Errorf("color array needs 3 components, got %d", len(v))
		}
		var rgb [3]float32
		for i, c := range v {
			f, ok := toFloat(c)
			if !ok {
				return common.Color{}, fmt.Errorf("color component %d is %T, not a number", i, c)
			}
			rgb[i] = f
		}
		return common.RGBLinear(rgb[0], rgb[1], rgb[2]), nil
	case nil:
		return common.Color{}, errors.New("color is required")
	}
	return common.Color{}, fmt.Errorf("color has unsupported type %T", p.Color)
}

func toFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case int64:
		return float32(n), true
	}
	return 0, false
}
