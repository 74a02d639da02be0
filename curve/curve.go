// Package curve provides domain-clamped scalar lookups used to tune resistance and feedback
package curve

import (
	"sort"

	"github.com/lixenwraith/archery/vmath"
)

// Evaluator maps an input scalar to an output scalar
type Evaluator interface {
	Evaluate(x float64) float64
}

// Func adapts a plain function to Evaluator
type Func func(x float64) float64

func (f Func) Evaluate(x float64) float64 { return f(x) }

// Constant returns an evaluator yielding v for every input
func Constant(v float64) Evaluator {
	return Func(func(float64) float64 { return v })
}

// Key is a curve control point with Hermite tangents
type Key struct {
	Time       float64
	Value      float64
	InTangent  float64
	OutTangent float64
}

// Curve is a piecewise cubic Hermite spline over sorted keys
// Inputs outside [first, last] are clamped, never extrapolated
type Curve struct {
	keys []Key
}

// New builds a curve from keys with explicit tangents, sorted by time
func New(keys ...Key) *Curve {
	c := &Curve{keys: append([]Key(nil), keys...)}
	sort.SliceStable(c.keys, func(i, j int) bool { return c.keys[i].Time < c.keys[j].Time })
	return c
}

// Linear builds a piecewise linear curve through (time, value) points
func Linear(points ...[2]float64) *Curve {
	keys := make([]Key, len(points))
	for i, p := range points {
		keys[i] = Key{Time: p[0], Value: p[1]}
	}
	c := New(keys...)
	c.linearTangents()
	return c
}

// Smooth builds a curve through (time, value) points with Catmull-Rom style tangents
func Smooth(points ...[2]float64) *Curve {
	keys := make([]Key, len(points))
	for i, p := range points {
		keys[i] = Key{Time: p[0], Value: p[1]}
	}
	c := New(keys...)
	c.smoothTangents()
	return c
}

// Keys returns a copy of the control points
func (c *Curve) Keys() []Key {
	return append([]Key(nil), c.keys...)
}

// Domain returns the input range covered by keys
func (c *Curve) Domain() (lo, hi float64) {
	if len(c.keys) == 0 {
		return 0, 0
	}
	return c.keys[0].Time, c.keys[len(c.keys)-1].Time
}

// Evaluate returns the curve value at x, clamping x into the key domain
// Empty curve returns 0
func (c *Curve) Evaluate(x float64) float64 {
	n := len(c.keys)
	switch n {
	case 0:
		return 0
	case 1:
		return c.keys[0].Value
	}

	first, last := c.keys[0], c.keys[n-1]
	if x <= first.Time {
		return first.Value
	}
	if x >= last.Time {
		return last.Value
	}

	// First key strictly after x
	i := sort.Search(n, func(i int) bool { return c.keys[i].Time > x })
	k0, k1 := c.keys[i-1], c.keys[i]
	return hermite(k0, k1, x)
}

func hermite(k0, k1 Key, x float64) float64 {
	dt := k1.Time - k0.Time
	if dt <= 0 {
		return k1.Value
	}
	s := (x - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	return h00*k0.Value + h10*dt*k0.OutTangent + h01*k1.Value + h11*dt*k1.InTangent
}

func (c *Curve) linearTangents() {
	for i := range c.keys {
		if i > 0 {
			c.keys[i].InTangent = slope(c.keys[i-1], c.keys[i])
		}
		if i < len(c.keys)-1 {
			c.keys[i].OutTangent = slope(c.keys[i], c.keys[i+1])
		}
	}
}

func (c *Curve) smoothTangents() {
	n := len(c.keys)
	for i := range c.keys {
		var m float64
		switch {
		case n < 2:
		case i == 0:
			m = slope(c.keys[0], c.keys[1])
		case i == n-1:
			m = slope(c.keys[n-2], c.keys[n-1])
		default:
			m = slope(c.keys[i-1], c.keys[i+1])
		}
		c.keys[i].InTangent = m
		c.keys[i].OutTangent = m
	}
}

func slope(a, b Key) float64 {
	if b.Time == a.Time {
		return 0
	}
	return (b.Value - a.Value) / (b.Time - a.Time)
}

// Clamped wraps an evaluator so its output never leaves [lo, hi]
func Clamped(e Evaluator, lo, hi float64) Evaluator {
	return Func(func(x float64) float64 {
		return vmath.Clamp(e.Evaluate(x), lo, hi)
	})
}
