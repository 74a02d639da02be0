package vmath

import (
	"math"
)

// Epsilon is the tolerance below which lengths and angles are treated as zero
const Epsilon = 1e-9

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates a→b by t without clamping
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InverseLerp returns the clamped parameter of v between a and b
// Degenerate range returns 0
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}

// MoveTowards steps current toward target by at most maxDelta
// Never overshoots; negative maxDelta is treated as zero
func MoveTowards(current, target, maxDelta float64) float64 {
	if maxDelta < 0 {
		maxDelta = 0
	}
	diff := target - current
	if math.Abs(diff) <= maxDelta {
		return target
	}
	return current + math.Copysign(maxDelta, diff)
}

// WrapAngle maps radians into (-π, π]
func WrapAngle(rad float64) float64 {
	rad = math.Mod(rad, 2*math.Pi)
	if rad <= -math.Pi {
		rad += 2 * math.Pi
	} else if rad > math.Pi {
		rad -= 2 * math.Pi
	}
	return rad
}

// ApproxEqual compares floats within eps
func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
