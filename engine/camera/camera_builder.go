package camera

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/uniform"
)

type CameraBuilderOption func(*cameraImpl)

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithController attaches a controller to the camera.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}

// WithBodyProgram sets the program that receives the body transform as its "model" uniform
// in third-person modes. Zero (the default) skips the upload.
//
// Parameters:
//   - program: the body shader program
//
// Returns:
//   - CameraBuilderOption: functional option to set the body program
func WithBodyProgram(program uniform.Program) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.bodyProgram = program
	}
}

// WithUniformNames overrides the uniform names used by Push.
//
// Parameters:
//   - names: the uniform names; empty fields keep their defaults
//
// Returns:
//   - CameraBuilderOption: functional option to set uniform names
func WithUniformNames(names UniformNames) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.names = names
	}
}
