// Command pinwheel opens a portrait window and animates the pinwheel scene until the window
// is closed, the process is interrupted or the configured frame limit is reached.
//
// Settings are read from pinwheel.toml, or from the file named by $PINWHEEL_CONFIG.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/oxy-pinwheel/config"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/clock"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/scene"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/screenshot"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/window"
	"github.com/Carmen-Shannon/oxy-pinwheel/pinwheel"
)

func main() {
	if err := run(); err != nil {
		slog.Error("pinwheel exited", "err", err)
		os.Exit(1)
	}
}

func run() (err error) {
	// ── Config + logging ────────────────────────────────────────────────
	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	backend, err := renderer.ParseBackendType(cfg.Render.Backend)
	if err != nil {
		return err
	}

	// ── Window ──────────────────────────────────────────────────────────
	var win window.Window
	if backend == renderer.BackendTypeWGPU {
		win, err = window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithSize(cfg.Window.Width, cfg.Window.Height),
			window.WithScaleFactor(cfg.Window.ScaleFactor),
		)
		if err != nil {
			return err
		}
		defer win.Close()
	}

	// ── Renderer ────────────────────────────────────────────────────────
	presentMode := renderer.PresentModeUncapped
	if cfg.Render.VSync {
		presentMode = renderer.PresentModeVSync
	}
	r, err := renderer.NewRenderer(backend, win,
		renderer.WithSize(scaled(cfg.Window.Width, cfg.Window.ScaleFactor), scaled(cfg.Window.Height, cfg.Window.ScaleFactor)),
		renderer.WithPresentMode(presentMode),
	)
	if err != nil {
		return err
	}
	defer r.Release()
	width, height := r.Size()

	// ── Engine ──────────────────────────────────────────────────────────
	opts := []engine.EngineBuilderOption{
		engine.WithScene(scene.NewScene("pinwheel")),
		engine.WithRenderer(r),
		engine.WithClock(clock.NewClock()),
		engine.WithTickRate(cfg.Render.TickRate),
		engine.WithFrameLimit(cfg.Render.FrameLimit),
		engine.WithProfiling(cfg.Render.Profiling),
		engine.WithStartupSystems(pinwheel.StartupSystems(cfg, float32(width)/float32(height))...),
		engine.WithSystems(pinwheel.Systems(cfg.Features)...),
	}
	if win != nil {
		opts = append(opts, engine.WithWindow(win))
	}

	// ── Screenshots ─────────────────────────────────────────────────────
	if cfg.Features.Screenshots {
		format, err := screenshot.ParseFormat(cfg.Screenshot.Format)
		if err != nil {
			return err
		}
		capturer := screenshot.NewCapturer(
			screenshot.WithDirectory(cfg.Screenshot.Dir),
			screenshot.WithFormat(format),
			screenshot.WithScale(cfg.Screenshot.Scale),
			screenshot.WithWorkers(cfg.Screenshot.Workers),
		)
		defer func() {
			err = errors.Join(err, capturer.Close())
		}()

		var offscreen renderer.Renderer
		if backend != renderer.BackendTypeSoftware {
			offscreen, err = renderer.NewRenderer(renderer.BackendTypeSoftware, nil, renderer.WithSize(width, height))
			if err != nil {
				return err
			}
			defer offscreen.Release()
		}
		opts = append(opts, engine.WithPostFrame(pinwheel.ScreenshotHook(capturer, r, offscreen)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return engine.NewEngine(opts...).Run(ctx)
}

// scaled converts a logical size to pixels.
func scaled(logical int, factor float32) int {
	return max(int(float32(logical)*factor+0.5), 1)
}
