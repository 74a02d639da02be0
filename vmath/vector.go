package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Local frame basis, +Z forward, +Y up
var (
	Zero    = mgl64.Vec3{0, 0, 0}
	Right   = mgl64.Vec3{1, 0, 0}
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
)

// Distance returns |a - b|
func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// Normalize returns the unit vector of v, zero-safe
// mgl64.Vec3.Normalize yields NaN on a zero vector
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return Zero
	}
	return v.Mul(1 / l)
}

// ProjectOnPlane removes the component of v along normal
func ProjectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	n := Normalize(normal)
	if n == Zero {
		return v
	}
	return v.Sub(n.Mul(v.Dot(n)))
}

// Orthogonal returns a unit vector perpendicular to v
func Orthogonal(v mgl64.Vec3) mgl64.Vec3 {
	n := Normalize(v)
	if n == Zero {
		return Right
	}
	// Cross with the axis least aligned with v
	ref := Right
	if math.Abs(n.X()) > 0.9 {
		ref = Up
	}
	return Normalize(n.Cross(ref))
}

// Slerp rotates a toward b by the clamped fraction t of the angle between them
// Magnitude is interpolated linearly; degenerate inputs fall back to lerp
func Slerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)

	la, lb := a.Len(), b.Len()
	if la < Epsilon || lb < Epsilon {
		return a.Add(b.Sub(a).Mul(t))
	}

	na, nb := a.Mul(1/la), b.Mul(1/lb)
	mag := Lerp(la, lb, t)

	theta := math.Acos(Clamp(na.Dot(nb), -1, 1))
	if theta < Epsilon {
		return Normalize(na.Add(nb.Sub(na).Mul(t))).Mul(mag)
	}

	// Antiparallel: no unique plane, rotate about any perpendicular
	if math.Pi-theta < 1e-6 {
		q := mgl64.QuatRotate(theta*t, Orthogonal(na))
		return q.Rotate(na).Mul(mag)
	}

	s := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / s
	wb := math.Sin(t*theta) / s
	return na.Mul(wa).Add(nb.Mul(wb)).Mul(mag)
}

// Vec3ApproxEqual compares component-wise within the absolute tolerance eps
func Vec3ApproxEqual(a, b mgl64.Vec3, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
