package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rig/engine/uniform"
)

// ErrNoSurface is returned when the engine is run without a surface to sample.
var ErrNoSurface = errors.New("engine: no surface")

// Surface is the part of a window the frame loop drives.
// window.Window satisfies it.
type Surface interface {
	input.Sampler

	// PollEvents processes pending events and reports whether the surface is still open.
	PollEvents() bool

	// SwapBuffers presents the frame.
	SwapBuffers()

	// IsRunning reports whether the surface is still open.
	IsRunning() bool
}

// resizable is implemented by surfaces that report framebuffer size changes.
type resizable interface {
	SetResizeCallback(callback func(width, height int))
}

// AnchorFunc supplies the gate anchor for the next frame.
// Returning ok == false disables the gate for that frame.
type AnchorFunc func() (anchor mgl32.Vec3, radius float32, ok bool)

// FrameCallback is called after the camera uniforms are pushed and before the buffers swap.
// A non-nil error stops the loop and is returned from Run.
type FrameCallback func(out camera.FrameOutput) error

// engine implements the Engine interface.
type engine struct {
	mu *sync.Mutex

	running bool

	quitChannel chan struct{}
	quitOnce    sync.Once

	surface Surface
	camera  camera.Camera
	sink    uniform.Sink
	program uniform.Program
	keyMap  input.KeyMap

	startPosition mgl32.Vec3
	startLookAt   mgl32.Vec3
	initialized   bool

	toggle input.EdgeTrigger

	profiler         *profiler.Profiler
	profilingEnabled bool

	anchorFunc    AnchorFunc
	frameCallback FrameCallback

	frameLimit time.Duration // minimum frame duration; 0 = uncapped
	frames     int
}

// Engine runs the camera rig frame loop.
// Each frame it polls the surface, samples input, advances the view mode on a toggle press,
// updates the camera, pushes its uniforms to the sink and presents.
type Engine interface {
	// Surface returns the surface being driven.
	//
	// Returns:
	//   - Surface: the surface, or nil if none was configured
	Surface() Surface

	// Camera returns the camera updated each frame.
	//
	// Returns:
	//   - camera.Camera: the engine's camera
	Camera() camera.Camera

	// Frames returns the number of frames completed so far.
	Frames() int

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// SetFrameCallback registers the function called each frame after the uniforms are pushed.
	//
	// Parameters:
	//   - callback: function receiving the frame's camera output
	SetFrameCallback(callback FrameCallback)

	// SetAnchorFunc registers the provider of the gate anchor.
	//
	// Parameters:
	//   - fn: the anchor provider, nil disables the gate
	SetAnchorFunc(fn AnchorFunc)

	// Run drives frames until the surface closes, Quit is called or ctx is done.
	// Must be called from the thread that owns the surface.
	//
	// Parameters:
	//   - ctx: cancels the loop between frames
	//
	// Returns:
	//   - error: ctx.Err() on cancellation, the first sink or callback error, or nil on close
	Run(ctx context.Context) error

	// RunFrames drives exactly n frames unless the surface closes first.
	//
	// Parameters:
	//   - n: number of frames to run
	//
	// Returns:
	//   - error: the first sink or callback error
	RunFrames(n int) error

	// Quit stops the loop after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Without WithCamera a default camera and controller are created.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:            &sync.Mutex{},
		quitChannel:   make(chan struct{}),
		keyMap:        input.DefaultKeyMap(),
		startPosition: mgl32.Vec3{0, 1, 20},
		startLookAt:   mgl32.Vec3{0, 0, -1},
	}

	for _, opt := range options {
		opt(e)
	}

	if e.camera == nil {
		e.camera = camera.NewCamera(camera.WithController(camera.NewCameraController()))
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}

	if r, ok := e.surface.(resizable); ok {
		r.SetResizeCallback(func(width, height int) {
			if height > 0 {
				e.camera.SetAspect(float32(width) / float32(height))
			}
		})
	}

	return e
}

func (e *engine) Surface() Surface {
	return e.surface
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Frames() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameLimit = frameDuration(fps)
}

func (e *engine) SetFrameCallback(callback FrameCallback) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameCallback = callback
}

func (e *engine) SetAnchorFunc(fn AnchorFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.anchorFunc = fn
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Run(ctx context.Context) error {
	if err := e.start(); err != nil {
		return err
	}
	defer e.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.quitChannel:
			return nil
		default:
		}
		if !e.surface.IsRunning() {
			return nil
		}
		if err := e.step(); err != nil {
			return err
		}
	}
}

func (e *engine) RunFrames(n int) error {
	if err := e.start(); err != nil {
		return err
	}
	defer e.stop()

	for i := 0; i < n; i++ {
		select {
		case <-e.quitChannel:
			return nil
		default:
		}
		if !e.surface.IsRunning() {
			return nil
		}
		if err := e.step(); err != nil {
			return err
		}
	}
	return nil
}

func (e *engine) start() error {
	if e.surface == nil {
		return ErrNoSurface
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return fmt.Errorf("engine: already running")
	}
	e.running = true
	if !e.initialized {
		if ctrl := e.camera.Controller(); ctrl != nil {
			x, y := e.surface.CursorPos()
			ctrl.Initialize(e.startPosition, e.startLookAt, x, y, e.surface.Time())
			log.Printf("[Engine] camera initialized at %v in %s mode", ctrl.Position(), ctrl.ViewMode())
		}
		e.initialized = true
	}
	return nil
}

func (e *engine) stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = false
}

// step runs one frame. The surface's events are polled first so input reflects this frame.
func (e *engine) step() error {
	e.mu.Lock()
	anchorFunc, frameCallback := e.anchorFunc, e.frameCallback
	profiling, limit := e.profilingEnabled, e.frameLimit
	e.mu.Unlock()

	frameStart := time.Now()

	if !e.surface.PollEvents() {
		return nil
	}

	f := input.Poll(e.surface, e.keyMap)
	if e.toggle.Rising(f.Actions.Has(input.ActionToggleMode)) {
		if ctrl := e.camera.Controller(); ctrl != nil {
			next := ctrl.ViewMode().Next()
			ctrl.SetViewMode(next)
			log.Printf("[Engine] view mode -> %s", next)
		}
	}

	in := camera.FrameInputFrom(f)
	if anchorFunc != nil {
		if a, r, ok := anchorFunc(); ok {
			in.Anchor = &a
			in.AnchorRadius = r
		}
	}

	out := e.camera.Update(in)

	if e.sink != nil {
		if err := e.camera.Push(e.sink, e.program); err != nil {
			log.Printf("[Engine] failed to push camera uniforms: %v", err)
			return err
		}
	}

	if frameCallback != nil {
		if err := frameCallback(out); err != nil {
			log.Printf("[Engine] frame callback failed: %v", err)
			return err
		}
	}

	e.surface.SwapBuffers()

	e.mu.Lock()
	e.frames++
	e.mu.Unlock()

	if profiling {
		e.profiler.Tick()
	}

	if limit > 0 {
		if remaining := limit - time.Since(frameStart); remaining > 0 {
			time.Sleep(remaining)
		}
	}
	return nil
}

// frameDuration converts a frames-per-second cap into a minimum frame duration.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
