package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-bulb/engine/camera"
	"github.com/Carmen-Shannon/oxy-bulb/engine/fractal"
	"github.com/Carmen-Shannon/oxy-bulb/engine/profiler"
	"github.com/Carmen-Shannon/oxy-bulb/engine/recorder"
	"github.com/Carmen-Shannon/oxy-bulb/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithConfig replaces the default configuration.
//
// Parameters:
//   - cfg: the frame loop configuration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg Config) EngineBuilderOption {
	return func(e *engine) {
		e.config = cfg
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: a configured profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow attaches the window the engine runs in. Its input callbacks are wired to the engine.
//
// Parameters:
//   - w: a created Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithCamera replaces the camera built from the configured pose.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithCameraController replaces the default input controller, e.g. to use custom key bindings.
//
// Parameters:
//   - cc: the input controller
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCameraController(cc camera.CameraController) EngineBuilderOption {
	return func(e *engine) {
		e.input = cc
	}
}

// WithController replaces the parameter controller built from the configured tuning.
//
// Parameters:
//   - c: the parameter controller
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithController(c fractal.Controller) EngineBuilderOption {
	return func(e *engine) {
		e.controller = c
	}
}

// WithRecorder replaces the default recorder.
//
// Parameters:
//   - r: the recorder
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRecorder(r recorder.Recorder) EngineBuilderOption {
	return func(e *engine) {
		e.recorder = r
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.SetRenderFrameLimit(fps)
	}
}

// WithClock replaces the time source used for frame timing and recording timestamps.
//
// Parameters:
//   - now: the clock function
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(now func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		if now != nil {
			e.now = now
		}
	}
}
