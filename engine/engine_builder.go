package engine

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rig/engine/uniform"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithSurface sets the surface the engine polls and presents, usually a window.Window.
//
// Parameters:
//   - s: the surface to drive
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSurface(s Surface) EngineBuilderOption {
	return func(e *engine) {
		e.surface = s
	}
}

// WithCamera sets the camera the engine updates each frame.
//
// Parameters:
//   - c: a configured camera with a controller attached
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithSink sets where the camera uniforms are pushed each frame and which program receives them.
//
// Parameters:
//   - sink: the uniform sink
//   - program: the program handle passed to the sink
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSink(sink uniform.Sink, program uniform.Program) EngineBuilderOption {
	return func(e *engine) {
		e.sink = sink
		e.program = program
	}
}

// WithKeyMap replaces the default key bindings.
//
// Parameters:
//   - km: the bindings to poll each frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithKeyMap(km input.KeyMap) EngineBuilderOption {
	return func(e *engine) {
		if km != nil {
			e.keyMap = km
		}
	}
}

// WithStartPose sets the pose the controller is initialized with when the loop starts.
// Defaults to position (0, 1, 20) looking at (0, 0, -1).
//
// Parameters:
//   - position: the initial position
//   - lookAt: the initial look direction
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithStartPose(position, lookAt mgl32.Vec3) EngineBuilderOption {
	return func(e *engine) {
		e.startPosition = position
		e.startLookAt = lookAt
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
//   - p: the profiler ticked each frame when profiling is enabled
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.frameLimit = frameDuration(fps)
	}
}

// WithAnchorFunc sets the gate anchor provider.
//
// Parameters:
//   - fn: called once per frame before the camera update
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithAnchorFunc(fn AnchorFunc) EngineBuilderOption {
	return func(e *engine) {
		e.anchorFunc = fn
	}
}

// WithFrameCallback sets the per-frame callback.
//
// Parameters:
//   - fn: called after the uniforms are pushed, before the swap
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameCallback(fn FrameCallback) EngineBuilderOption {
	return func(e *engine) {
		e.frameCallback = fn
	}
}
