package window

import "github.com/Carmen-Shannon/oxy-pinwheel/common"

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar. An empty title keeps the default.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = common.Coalesce(title, w.title)
	}
}

// WithSize sets the logical window size. Non-positive values keep the default.
//
// Parameters:
//   - width: logical width
//   - height: logical height
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.logicalWidth = width
		}
		if height > 0 {
			w.logicalHeight = height
		}
	}
}

// WithScaleFactor multiplies the logical size to get the framebuffer size.
//
// Parameters:
//   - scale: the factor (values <= 0 mean 1)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithScaleFactor(scale float32) WindowBuilderOption {
	return func(w *engineWindow) {
		if scale > 0 {
			w.scaleFactor = scale
		}
	}
}

// WithResizable controls whether the user can resize the window.
func WithResizable(resizable bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.resizable = resizable
	}
}
