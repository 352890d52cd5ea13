package camera

import (
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/uniform"
)

// UniformNames are the shader uniform names Push writes to.
type UniformNames struct {
	View       string
	Projection string
	EyePos     string
	Model      string
	Block      string
}

// DefaultUniformNames matches the lab shaders: "view", "projection", "viewPos", "model", plus a "camera" block.
var DefaultUniformNames = UniformNames{
	View:       "view",
	Projection: "projection",
	EyePos:     "viewPos",
	Model:      "model",
	Block:      "camera",
}

type cameraImpl struct {
	mu *sync.Mutex

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
	last                 FrameOutput

	controller  CameraController
	bodyProgram uniform.Program
	names       UniformNames
}

// Camera defines the interface for the camera system.
// The camera holds the session-constant perspective and derives the view each frame from an
// attached CameraController via Update(). It never mutates controller state beyond that call.
type Camera interface {
	// Fov returns the field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ViewMatrix returns the current view matrix (column-major).
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the projection matrix (column-major).
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4

	// LastFrame returns the controller output of the last Update.
	//
	// Returns:
	//   - FrameOutput: the last frame
	LastFrame() FrameOutput

	// Controller returns the camera's attached controller.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)

	// Update runs the controller for one frame and recomputes the view matrices.
	// Should be called once per frame. If no controller is attached, it returns a zero FrameOutput.
	//
	// Parameters:
	//   - in: the frame input forwarded to the controller
	//
	// Returns:
	//   - FrameOutput: the controller's output
	Update(in FrameInput) FrameOutput

	// Push uploads view, projection and eye position to program, and the body transform to the
	// body program when the last frame produced one. Block-capable sinks also receive the packed
	// GPUCameraUniform.
	//
	// Parameters:
	//   - sink: the uniform sink
	//   - program: the scene program
	//
	// Returns:
	//   - error: the first sink error, wrapped with the uniform name
	Push(sink uniform.Sink, program uniform.Program) error

	// Uniform returns the packed camera block for the last frame.
	//
	// Returns:
	//   - GPUCameraUniform: the block
	Uniform() GPUCameraUniform

	// SetFov sets the field of view in radians and recomputes the projection.
	SetFov(fov float32)

	// SetAspect sets the aspect ratio and recomputes the projection.
	SetAspect(aspect float32)

	// SetNear sets the near plane distance and recomputes the projection.
	SetNear(near float32)

	// SetFar sets the far plane distance and recomputes the projection.
	SetFar(far float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		fov:                  45.0 * (math.Pi / 180.0), // radians
		aspect:               1.0,
		near:                 0.1,
		far:                  100.0,
		viewMatrix:           mgl32.Ident4(),
		viewProjectionMatrix: mgl32.Ident4(),
		names:                DefaultUniformNames,
	}
	for _, option := range options {
		option(c)
	}
	c.names = UniformNames{
		View:       common.Coalesce(c.names.View, DefaultUniformNames.View),
		Projection: common.Coalesce(c.names.Projection, DefaultUniformNames.Projection),
		EyePos:     common.Coalesce(c.names.EyePos, DefaultUniformNames.EyePos),
		Model:      common.Coalesce(c.names.Model, DefaultUniformNames.Model),
		Block:      common.Coalesce(c.names.Block, DefaultUniformNames.Block),
	}
	if c.controller != nil {
		c.viewMatrix = c.controller.ViewMatrix()
		c.last.View = c.viewMatrix
		c.last.Eye = c.controller.Eye()
		c.last.Mode = c.controller.ViewMode()
	}
	c.updateProjection()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) LastFrame() FrameOutput {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}

func (c *cameraImpl) Update(in FrameInput) FrameOutput {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return FrameOutput{}
	}
	c.last = c.controller.Update(in)
	c.viewMatrix = c.last.View
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	return c.last
}

func (c *cameraImpl) Push(sink uniform.Sink, program uniform.Program) error {
	c.mu.Lock()
	view, proj, last, names, bodyProgram := c.viewMatrix, c.projectionMatrix, c.last, c.names, c.bodyProgram
	c.mu.Unlock()

	if err := sink.SetMat4(program, names.View, view); err != nil {
		return fmt.Errorf("failed to set %s: %w", names.View, err)
	}
	if err := sink.SetMat4(program, names.Projection, proj); err != nil {
		return fmt.Errorf("failed to set %s: %w", names.Projection, err)
	}
	if err := sink.SetVec3(program, names.EyePos, last.Eye); err != nil {
		return fmt.Errorf("failed to set %s: %w", names.EyePos, err)
	}
	if last.HasBody && bodyProgram != 0 {
		if err := sink.SetMat4(bodyProgram, names.Model, last.Body); err != nil {
			return fmt.Errorf("failed to set %s: %w", names.Model, err)
		}
	}
	if bs, ok := sink.(uniform.BlockSink); ok {
		block := NewGPUCameraUniform(view, proj, last.Eye)
		if err := bs.SetBlock(program, names.Block, block.Marshal()); err != nil {
			return fmt.Errorf("failed to set %s block: %w", names.Block, err)
		}
	}
	return nil
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return NewGPUCameraUniform(c.viewMatrix, c.projectionMatrix, c.last.Eye)
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateProjection()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateProjection()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateProjection()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateProjection()
}

// updateProjection recalculates the projection and view-projection matrices.
// A non-positive aspect ratio is treated as 1.
// Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	aspect := c.aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projectionMatrix = mgl32.Perspective(c.fov, aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
