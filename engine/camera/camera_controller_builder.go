package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithMovementSpeed sets the normal movement speed. The fast speed is always twice this value.
//
// Parameters:
//   - speed: world units per second
//
// Returns:
//   - CameraControllerOption: functional option to set the movement speed
func WithMovementSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.movementSpeed = speed
	}
}

// WithAngularSpeed sets the mouse-look speed.
//
// Parameters:
//   - speed: degrees per cursor unit per second
//
// Returns:
//   - CameraControllerOption: functional option to set the angular speed
func WithAngularSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.angularSpeed = speed
	}
}

// WithVerticalLimit sets the symmetric pitch clamp in degrees. Values are capped below 90.
//
// Parameters:
//   - limit: maximum absolute pitch in degrees
//
// Returns:
//   - CameraControllerOption: functional option to set the pitch clamp
func WithVerticalLimit(limit float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.verticalLimit = limit
	}
}

// WithEyeHeight pins the first-person eye to a fixed Y. Without it the initial position's Y is used.
//
// Parameters:
//   - y: ground-plane eye height
//
// Returns:
//   - CameraControllerOption: functional option to set the eye height
func WithEyeHeight(y float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.eyeHeight = y
		cc.eyeHeightSet = true
	}
}

// WithFollowDistance sets how far behind the body the third-person eye trails.
//
// Parameters:
//   - distance: world units along the look direction
//
// Returns:
//   - CameraControllerOption: functional option to set the follow distance
func WithFollowDistance(distance float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.followDistance = distance
	}
}

// WithBodyOffsetY sets the Y offset from the controller position to the body (and the trailing eye).
//
// Parameters:
//   - offset: world units, negative places the body below the controller position
//
// Returns:
//   - CameraControllerOption: functional option to set the body offset
func WithBodyOffsetY(offset float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.bodyOffsetY = offset
	}
}

// WithGateRadius sets the default proximity gate radius of the gated third-person mode.
//
// Parameters:
//   - radius: world units
//
// Returns:
//   - CameraControllerOption: functional option to set the gate radius
func WithGateRadius(radius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.gateRadius = radius
	}
}

// WithViewMode sets the initial view mode.
//
// Parameters:
//   - mode: the starting mode
//
// Returns:
//   - CameraControllerOption: functional option to set the view mode
func WithViewMode(mode ViewMode) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if mode < viewModeCount {
			cc.mode = mode
		}
	}
}

// WithAnglesFromLookAt derives the starting angles from the look direction passed to Initialize
// instead of resetting them to the forward default, so the first update does not snap the view.
//
// Returns:
//   - CameraControllerOption: functional option enabling angle derivation
func WithAnglesFromLookAt() CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.anglesFromLookAt = true
	}
}
