package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the session-constant up vector shared by every camera in the engine.
var WorldUp = mgl32.Vec3{0, 1, 0}

// Clamp limits v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - T: v limited to [lo, hi]
func Clamp[T ~float32 | ~float64 | ~int](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

// SphericalDirection converts yaw/pitch angles in degrees into a unit direction.
// Zero pitch with a yaw of 90 degrees looks down -Z.
//
// Parameters:
//   - horizontal: yaw in degrees
//   - vertical: pitch in degrees
//
// Returns:
//   - mgl32.Vec3: the normalized direction
func SphericalDirection(horizontal, vertical float32) mgl32.Vec3 {
	theta := float64(horizontal) * math.Pi / 180
	phi := float64(vertical) * math.Pi / 180

	d := mgl32.Vec3{
		float32(math.Cos(phi) * math.Cos(theta)),
		float32(math.Sin(phi)),
		float32(-math.Cos(phi) * math.Sin(theta)),
	}
	return SafeNormalize(d, mgl32.Vec3{0, 0, -1})
}

// DirectionAngles is the inverse of SphericalDirection. The direction does not need to be normalized.
// A zero-length direction yields the default forward angles (90, 0).
//
// Parameters:
//   - d: direction vector
//
// Returns:
//   - horizontal, vertical: yaw and pitch in degrees
func DirectionAngles(d mgl32.Vec3) (horizontal, vertical float32) {
	if d.Len() < 1e-8 {
		return 90, 0
	}
	d = d.Normalize()
	horizontal = mgl32.RadToDeg(float32(math.Atan2(float64(-d[2]), float64(d[0]))))
	vertical = mgl32.RadToDeg(float32(math.Asin(float64(Clamp(d[1], -1, 1)))))
	return horizontal, vertical
}

// SafeNormalize normalizes v, returning fallback when v has (near) zero length.
//
// Parameters:
//   - v: vector to normalize
//   - fallback: value returned for degenerate input
//
// Returns:
//   - mgl32.Vec3: the unit vector or fallback
func SafeNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 1e-8 {
		return fallback
	}
	return v.Normalize()
}
