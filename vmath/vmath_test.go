package vmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		name                   string
		current, target, delta float64
		want                   float64
	}{
		{"step up", 0, 1, 0.25, 0.25},
		{"step down", 1, 0, 0.25, 0.75},
		{"clamps at target", 0.9, 1, 0.25, 1},
		{"exact remaining", 0.75, 1, 0.25, 1},
		{"negative delta holds", 0.5, 1, -1, 0.5},
		{"already there", 1, 1, 0.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MoveTowards(tt.current, tt.target, tt.delta), 1e-12)
		})
	}
}

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, 0.0, WrapAngle(2*math.Pi), 1e-12)
	assert.InDelta(t, math.Pi, WrapAngle(math.Pi), 1e-12)
	assert.InDelta(t, math.Pi, WrapAngle(-math.Pi), 1e-12)
	assert.InDelta(t, -math.Pi/2, WrapAngle(3*math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi/2, WrapAngle(-3*math.Pi/2), 1e-12)
}

func TestInverseLerp(t *testing.T) {
	assert.Equal(t, 0.0, InverseLerp(1, 1, 5))
	assert.InDelta(t, 0.5, InverseLerp(0, 2, 1), 1e-12)
	assert.Equal(t, 1.0, InverseLerp(0, 2, 4))
}

func TestNormalizeZeroSafe(t *testing.T) {
	assert.Equal(t, Zero, Normalize(Zero))
	assert.InDelta(t, 1.0, Normalize(mgl64.Vec3{3, 4, 0}).Len(), 1e-12)
}

func TestProjectOnPlane(t *testing.T) {
	v := mgl64.Vec3{0.2, -0.1, -0.3}
	p := ProjectOnPlane(v, Right)
	assert.True(t, Vec3ApproxEqual(mgl64.Vec3{0, -0.1, -0.3}, p, 1e-12))

	// Zero normal leaves the vector untouched
	assert.Equal(t, v, ProjectOnPlane(v, Zero))
}

func TestSlerpVector(t *testing.T) {
	a := mgl64.Vec3{1, 0, 0}
	b := mgl64.Vec3{0, 2, 0}

	mid := Slerp(a, b, 0.5)
	assert.InDelta(t, 1.5, mid.Len(), 1e-9)
	assert.InDelta(t, mid.X(), mid.Y(), 1e-9)

	// Clamped outside [0,1]
	assert.True(t, Vec3ApproxEqual(b, Slerp(a, b, 2), 1e-9))
	assert.True(t, Vec3ApproxEqual(a, Slerp(a, b, -1), 1e-9))

	// Antiparallel stays finite with preserved magnitude
	anti := Slerp(Forward, Forward.Mul(-1), 0.5)
	assert.InDelta(t, 1.0, anti.Len(), 1e-9)
	assert.InDelta(t, 0.0, anti.Dot(Forward), 1e-9)
}

func TestAngleAxisRoundTrip(t *testing.T) {
	axis := Normalize(mgl64.Vec3{1, 1, 0})
	q := AngleAxis(math.Pi/3, axis)

	angle, got := ToAngleAxis(q)
	assert.InDelta(t, math.Pi/3, angle, 1e-9)
	assert.True(t, Vec3ApproxEqual(axis, got, 1e-9))

	angle, got = ToAngleAxis(mgl64.QuatIdent())
	assert.Equal(t, 0.0, angle)
	assert.Equal(t, Right, got)
}

func TestLookRotation(t *testing.T) {
	tests := []struct {
		name    string
		forward mgl64.Vec3
		up      mgl64.Vec3
	}{
		{"identity", Forward, Up},
		{"backward", Forward.Mul(-1), Up},
		{"tilted", mgl64.Vec3{0.3, -0.2, 1}, Up},
		{"up parallel", Up, Up},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := LookRotation(tt.forward, tt.up)
			assert.True(t, Vec3ApproxEqual(Normalize(tt.forward), q.Rotate(Forward), 1e-9))
			assert.InDelta(t, 1.0, q.Len(), 1e-9)
		})
	}

	assert.True(t, QuatApproxEqual(mgl64.QuatIdent(), LookRotation(Zero, Up), 1e-12))
}

func TestSlerpUnclampedExtrapolates(t *testing.T) {
	a := mgl64.QuatIdent()
	b := AngleAxis(math.Pi/4, Up)

	assert.InDelta(t, math.Pi/8, QuatAngle(a, SlerpUnclamped(a, b, 0.5)), 1e-9)
	assert.InDelta(t, math.Pi/2, QuatAngle(a, SlerpUnclamped(a, b, 2)), 1e-9)

	// Negated target still takes the short way
	assert.InDelta(t, math.Pi/8, QuatAngle(a, SlerpUnclamped(a, b.Scale(-1), 0.5)), 1e-9)

	// Clamped variant stops at the target
	assert.True(t, QuatApproxEqual(b, SlerpQuat(a, b, 3), 1e-6))
}

func TestPoseComposition(t *testing.T) {
	parent := NewPose(mgl64.Vec3{1, 2, 3}, AngleAxis(math.Pi/2, Up))
	child := NewPose(mgl64.Vec3{0, 0, 1}, AngleAxis(math.Pi/4, Right))

	world := parent.Mul(child)
	// +Z rotated 90° about Y lands on +X
	assert.True(t, Vec3ApproxEqual(mgl64.Vec3{2, 2, 3}, world.Position, 1e-9))

	back := Delta(parent, world)
	require.True(t, back.ApproxEqual(child, 1e-9, 1e-6))

	id := parent.Mul(parent.Inverse())
	assert.True(t, id.ApproxEqual(IdentityPose(), 1e-9, 1e-6))
}

func TestPoseBasis(t *testing.T) {
	p := NewPose(Zero, AngleAxis(math.Pi, Up))
	assert.True(t, Vec3ApproxEqual(Forward.Mul(-1), p.Forward(), 1e-9))
	assert.True(t, Vec3ApproxEqual(Up, p.Up(), 1e-9))
	assert.True(t, Vec3ApproxEqual(Right.Mul(-1), p.Right(), 1e-9))

	v := mgl64.Vec3{1, 2, 3}
	assert.True(t, Vec3ApproxEqual(v, p.InverseTransformVector(p.TransformVector(v)), 1e-9))
}

func TestVec3ApproxEqualAbsolute(t *testing.T) {
	tests := []struct {
		name string
		a, b mgl64.Vec3
		eps  float64
		want bool
	}{
		{"rounding noise against zero", Zero, mgl64.Vec3{0, 0, 1e-16}, 1e-9, true},
		{"identical", mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 2, 3}, 0, true},
		{"large values need an absolute match", mgl64.Vec3{1000, 0, 0}, mgl64.Vec3{1000.5, 0, 0}, 1e-3, false},
		{"each component checked", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 2e-9, 0}, 1e-9, false},
		{"on the boundary", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.5, 0, 0}, 0.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Vec3ApproxEqual(tt.a, tt.b, tt.eps))
			assert.Equal(t, tt.want, Vec3ApproxEqual(tt.b, tt.a, tt.eps))
		})
	}
}
