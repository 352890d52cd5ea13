package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rig/engine/input"
)

// FrameInput is everything the controller consumes for one frame.
type FrameInput struct {
	// CursorX, CursorY is the absolute cursor position this frame.
	CursorX, CursorY float64
	// Actions holds the logical keys currently down.
	Actions input.ActionSet
	// Time is the monotonic clock reading in seconds.
	Time float64
	// Anchor is the external point used by the gated mode's proximity test. Nil disables the gate.
	Anchor *mgl32.Vec3
	// AnchorRadius overrides the controller's gate radius for this frame when positive.
	AnchorRadius float32
}

// FrameInputFrom adapts a polled input frame.
//
// Parameters:
//   - f: the polled frame
//
// Returns:
//   - FrameInput: the frame without an anchor
func FrameInputFrom(f input.Frame) FrameInput {
	return FrameInput{CursorX: f.CursorX, CursorY: f.CursorY, Actions: f.Actions, Time: f.Time}
}

// FrameOutput is the derived result of one update.
type FrameOutput struct {
	// View is the world-to-eye matrix.
	View mgl32.Mat4
	// Eye is the world-space eye point the view was built from.
	Eye mgl32.Vec3
	// Body is the world transform of the controlled body. Only meaningful when HasBody is set.
	Body mgl32.Mat4
	// HasBody is true in the third-person modes.
	HasBody bool
	// PlayerAnchor is the controlled body position (third-person modes).
	PlayerAnchor mgl32.Vec3
	// Mode is the view mode the frame was derived with.
	Mode ViewMode
	// DeltaTime is the elapsed time applied this frame, in seconds.
	DeltaTime float32
}

// CameraController owns the camera pose and turns per-frame input into an updated pose and view matrix.
// A single tagged ViewMode selects between first-person, free third-person and proximity-gated
// third-person behaviour; all modes share the same angle integration and movement rules.
type CameraController interface {
	// Initialize resets the pose and records the cursor and clock baselines.
	// Angles reset to a horizontal angle of 90 degrees and a vertical angle of 0.
	//
	// Parameters:
	//   - position: initial eye position in world space
	//   - lookAt: initial look direction, used for the view until the first update
	//   - cursorX, cursorY: current cursor position
	//   - now: current clock reading in seconds
	Initialize(position, lookAt mgl32.Vec3, cursorX, cursorY, now float64)

	// Update integrates one frame of input. Should be called exactly once per rendered frame.
	//
	// Parameters:
	//   - in: the frame's input
	//
	// Returns:
	//   - FrameOutput: the derived view (and body transform in third-person modes)
	Update(in FrameInput) FrameOutput

	// ViewMode returns the active view mode.
	//
	// Returns:
	//   - ViewMode: the active mode
	ViewMode() ViewMode

	// SetViewMode selects the view mode used from the next update. The pose is left untouched.
	//
	// Parameters:
	//   - mode: the mode to select
	SetViewMode(mode ViewMode)

	// Position returns the controller position in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// LookDirection returns the normalized look direction.
	//
	// Returns:
	//   - mgl32.Vec3: unit look direction
	LookDirection() mgl32.Vec3

	// Up returns the constant up vector.
	//
	// Returns:
	//   - mgl32.Vec3: (0, 1, 0)
	Up() mgl32.Vec3

	// HorizontalAngle returns the yaw in degrees.
	//
	// Returns:
	//   - float32: yaw in degrees
	HorizontalAngle() float32

	// VerticalAngle returns the pitch in degrees, always within the vertical limit.
	//
	// Returns:
	//   - float32: pitch in degrees
	VerticalAngle() float32

	// PlayerAnchor returns the tracked body position from the last third-person update.
	//
	// Returns:
	//   - mgl32.Vec3: body position
	PlayerAnchor() mgl32.Vec3

	// ViewMatrix returns the view matrix from the last update (or from Initialize).
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// Eye returns the eye point from the last update.
	//
	// Returns:
	//   - mgl32.Vec3: the eye point
	Eye() mgl32.Vec3

	// MovementSpeed returns the normal movement speed in units per second.
	MovementSpeed() float32

	// FastMovementSpeed returns the speed used while the fast modifier is held.
	FastMovementSpeed() float32

	// AngularSpeed returns the mouse-look speed in degrees per cursor unit per second.
	AngularSpeed() float32

	// GateRadius returns the default proximity gate radius.
	GateRadius() float32
}
