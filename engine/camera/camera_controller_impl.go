package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
)

// cameraControllerImpl is the single implementation of CameraController.
// All three view modes share one state block; the mode only picks the pose derivation branch.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	look     mgl32.Vec3
	up       mgl32.Vec3
	eye      mgl32.Vec3

	// Spherical angles in degrees driving look
	horizontal float32
	vertical   float32

	// Baselines for per-frame deltas
	lastCursorX float64
	lastCursorY float64
	lastTime    float64

	mode         ViewMode
	playerAnchor mgl32.Vec3
	view         mgl32.Mat4

	// Tuning
	movementSpeed     float32
	fastMovementSpeed float32
	angularSpeed      float32
	verticalLimit     float32
	eyeHeight         float32
	eyeHeightSet      bool
	followDistance    float32
	bodyOffsetY       float32
	gateRadius        float32
	anglesFromLookAt  bool
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// Default tuning values.
const (
	DefaultMovementSpeed  float32 = 8.0
	DefaultAngularSpeed   float32 = 5.0
	DefaultVerticalLimit  float32 = 85.0
	DefaultFollowDistance float32 = 10.0
	DefaultBodyOffsetY    float32 = -4.0
	DefaultGateRadius     float32 = 2.0
	DefaultHorizontal     float32 = 90.0
)

// NewCameraController creates a controller with default tuning, in first-person mode.
// Call Initialize before the first Update.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:   &sync.Mutex{},
		look: mgl32.Vec3{0, 0, -1},
		up:   common.WorldUp,

		horizontal: DefaultHorizontal,

		mode: ViewModeFirstPerson,
		view: mgl32.Ident4(),

		movementSpeed:  DefaultMovementSpeed,
		angularSpeed:   DefaultAngularSpeed,
		verticalLimit:  DefaultVerticalLimit,
		followDistance: DefaultFollowDistance,
		bodyOffsetY:    DefaultBodyOffsetY,
		gateRadius:     DefaultGateRadius,
	}

	for _, option := range options {
		option(cc)
	}

	cc.movementSpeed = common.Coalesce(cc.movementSpeed, DefaultMovementSpeed)
	cc.fastMovementSpeed = 2 * cc.movementSpeed
	cc.verticalLimit = common.Clamp(common.Coalesce(cc.verticalLimit, DefaultVerticalLimit), 0, 89.9)
	return cc
}

// --- internal helpers ---

// bodyPoint returns the controlled body position for the current pose.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) bodyPoint() mgl32.Vec3 {
	return cc.position.Add(mgl32.Vec3{0, cc.bodyOffsetY, 0})
}

// derive recomputes eye, view and (in third-person modes) the body transform from the pose.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) derive() (body mgl32.Mat4, hasBody bool) {
	switch cc.mode {
	case ViewModeThirdPersonFree, ViewModeThirdPersonGated:
		anchor := cc.bodyPoint()
		cc.eye = anchor.Sub(cc.look.Mul(cc.followDistance))
		cc.view = mgl32.LookAtV(cc.eye, cc.eye.Add(cc.look), cc.up)
		cc.playerAnchor = anchor
		body = mgl32.Translate3D(anchor[0], anchor[1], anchor[2]).
			Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(cc.horizontal)))
		return body, true
	default:
		cc.position[1] = cc.eyeHeight
		cc.eye = cc.position
		cc.view = mgl32.LookAtV(cc.position, cc.position.Add(cc.look), cc.up)
		return mgl32.Ident4(), false
	}
}

// gateAllows reports whether moving the body from `from` by disp is permitted near anchor.
// Displacements that end within radius are refused only while they bring the body closer, so a
// body already inside the radius can always back out.
func gateAllows(from, disp, anchor mgl32.Vec3, radius float32) bool {
	current := from.Sub(anchor).Len()
	projected := from.Add(disp).Sub(anchor).Len()
	return projected > radius || projected >= current
}

// finiteOrZero drops angle deltas that overflowed to ±Inf or became NaN (Inf × 0 at dt = 0).
func finiteOrZero(v float32) float32 {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return v
}

// --- CameraController implementation ---

func (cc *cameraControllerImpl) Initialize(position, lookAt mgl32.Vec3, cursorX, cursorY, now float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cc.position = position
	cc.look = common.SafeNormalize(lookAt, mgl32.Vec3{0, 0, -1})
	cc.horizontal = DefaultHorizontal
	cc.vertical = 0
	if cc.anglesFromLookAt {
		cc.horizontal, cc.vertical = common.DirectionAngles(cc.look)
		cc.vertical = common.Clamp(cc.vertical, -cc.verticalLimit, cc.verticalLimit)
		cc.look = common.SphericalDirection(cc.horizontal, cc.vertical)
	}
	if !cc.eyeHeightSet {
		cc.eyeHeight = position[1]
	}

	cc.lastCursorX = cursorX
	cc.lastCursorY = cursorY
	cc.lastTime = now

	cc.playerAnchor = cc.bodyPoint()
	cc.derive()
}

func (cc *cameraControllerImpl) Update(in FrameInput) FrameOutput {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	dt64 := in.Time - cc.lastTime
	cc.lastTime += dt64
	dt := float32(dt64)

	dx := float32(in.CursorX - cc.lastCursorX)
	dy := float32(in.CursorY - cc.lastCursorY)
	cc.lastCursorX = in.CursorX
	cc.lastCursorY = in.CursorY

	cc.horizontal -= finiteOrZero(dx * cc.angularSpeed * dt)
	cc.vertical -= finiteOrZero(dy * cc.angularSpeed * dt)
	cc.vertical = common.Clamp(cc.vertical, -cc.verticalLimit, cc.verticalLimit)

	cc.look = common.SphericalDirection(cc.horizontal, cc.vertical)
	side := common.SafeNormalize(cc.look.Cross(cc.up), mgl32.Vec3{1, 0, 0})

	speed := cc.movementSpeed
	if in.Actions.Has(input.ActionFast) {
		speed = cc.fastMovementSpeed
	}
	step := speed * dt

	gated := cc.mode == ViewModeThirdPersonGated && in.Anchor != nil
	radius := cc.gateRadius
	if in.AnchorRadius > 0 {
		radius = in.AnchorRadius
	}

	// Displacements are summed before being applied so opposing keys cancel exactly.
	moves := [...]struct {
		action input.Action
		dir    mgl32.Vec3
	}{
		{input.ActionForward, cc.look},
		{input.ActionBack, cc.look.Mul(-1)},
		{input.ActionRight, side},
		{input.ActionLeft, side.Mul(-1)},
	}
	var total mgl32.Vec3
	for _, m := range moves {
		if !in.Actions.Has(m.action) {
			continue
		}
		disp := m.dir.Mul(step)
		if gated && !gateAllows(cc.bodyPoint().Add(total), disp, *in.Anchor, radius) {
			continue
		}
		total = total.Add(disp)
	}
	cc.position = cc.position.Add(total)

	body, hasBody := cc.derive()
	return FrameOutput{
		View:         cc.view,
		Eye:          cc.eye,
		Body:         body,
		HasBody:      hasBody,
		PlayerAnchor: cc.playerAnchor,
		Mode:         cc.mode,
		DeltaTime:    dt,
	}
}

func (cc *cameraControllerImpl) ViewMode() ViewMode {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mode
}

func (cc *cameraControllerImpl) SetViewMode(mode ViewMode) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if mode >= viewModeCount {
		return
	}
	cc.mode = mode
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) LookDirection() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.look
}

func (cc *cameraControllerImpl) Up() mgl32.Vec3 {
	return cc.up
}

func (cc *cameraControllerImpl) HorizontalAngle() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.horizontal
}

func (cc *cameraControllerImpl) VerticalAngle() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.vertical
}

func (cc *cameraControllerImpl) PlayerAnchor() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.playerAnchor
}

func (cc *cameraControllerImpl) ViewMatrix() mgl32.Mat4 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.view
}

func (cc *cameraControllerImpl) Eye() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.eye
}

func (cc *cameraControllerImpl) MovementSpeed() float32 {
	return cc.movementSpeed
}

func (cc *cameraControllerImpl) FastMovementSpeed() float32 {
	return cc.fastMovementSpeed
}

func (cc *cameraControllerImpl) AngularSpeed() float32 {
	return cc.angularSpeed
}

func (cc *cameraControllerImpl) GateRadius() float32 {
	return cc.gateRadius
}
