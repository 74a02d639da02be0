package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AngleAxis returns a rotation of angle radians about axis
// Zero axis yields identity
func AngleAxis(angle float64, axis mgl64.Vec3) mgl64.Quat {
	n := Normalize(axis)
	if n == Zero {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(angle, n)
}

// ToAngleAxis decomposes q into angle in [0, 2π] and unit axis
// Identity returns angle 0 about Right
func ToAngleAxis(q mgl64.Quat) (float64, mgl64.Vec3) {
	q = q.Normalize()
	w := Clamp(q.W, -1, 1)
	angle := 2 * math.Acos(w)
	s := math.Sqrt(1 - w*w)
	if s < 1e-9 {
		return 0, Right
	}
	return angle, q.V.Mul(1 / s)
}

// SlerpUnclamped interpolates a→b along the shortest arc
// t outside [0,1] extrapolates past the endpoints
func SlerpUnclamped(a, b mgl64.Quat, t float64) mgl64.Quat {
	a, b = a.Normalize(), b.Normalize()
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t).Normalize()
}

// SlerpQuat interpolates a→b along the shortest arc with t clamped to [0,1]
func SlerpQuat(a, b mgl64.Quat, t float64) mgl64.Quat {
	return SlerpUnclamped(a, b, Clamp01(t))
}

// LookRotation returns the rotation whose +Z faces forward and whose +Y is as close to up as possible
// Zero forward yields identity; up parallel to forward picks an arbitrary perpendicular
func LookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	f := Normalize(forward)
	if f == Zero {
		return mgl64.QuatIdent()
	}

	r := Normalize(up.Cross(f))
	if r == Zero {
		r = Orthogonal(f)
	}
	u := f.Cross(r)

	m := mgl64.Mat3FromCols(r, u, f)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

// QuatAngle returns the angle in radians between two rotations
func QuatAngle(a, b mgl64.Quat) float64 {
	d := math.Abs(a.Normalize().Dot(b.Normalize()))
	return 2 * math.Acos(Clamp(d, 0, 1))
}

// QuatApproxEqual treats q and -q as the same rotation
func QuatApproxEqual(a, b mgl64.Quat, eps float64) bool {
	return QuatAngle(a, b) <= eps
}
