package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/archery/parameter"
	"github.com/lixenwraith/archery/vmath"
)

// DefaultGravity is the standard downward acceleration in m/s²
var DefaultGravity = mgl64.Vec3{0, parameter.GravityY, 0}

// RigidBody is a point mass with orientation, enough to fly a released arrow
type RigidBody struct {
	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3 // rad/s, axis scaled by rate

	Mass       float64
	Gravity    mgl64.Vec3
	UseGravity bool

	// Continuous inputs accumulated until the next Integrate
	force  mgl64.Vec3
	accel  mgl64.Vec3
	torque mgl64.Vec3
}

// NewRigidBody creates a body at pose with the given mass, gravity enabled
// Non-positive mass is treated as 1
func NewRigidBody(pose vmath.Pose, mass float64) *RigidBody {
	if mass <= 0 {
		mass = 1
	}
	return &RigidBody{
		Position:   pose.Position,
		Rotation:   pose.Rotation.Normalize(),
		Mass:       mass,
		Gravity:    DefaultGravity,
		UseGravity: true,
	}
}

// AddForce implements Body
func (b *RigidBody) AddForce(v mgl64.Vec3, mode ForceMode) {
	switch mode {
	case Force:
		b.force = b.force.Add(v)
	case Acceleration:
		b.accel = b.accel.Add(v)
	case Impulse:
		b.Velocity = b.Velocity.Add(v.Mul(1 / b.Mass))
	case VelocityChange:
		b.Velocity = b.Velocity.Add(v)
	}
}

// AddTorque implements Body, treating inertia as unit mass distribution
func (b *RigidBody) AddTorque(v mgl64.Vec3, mode ForceMode) {
	switch mode {
	case Force, Acceleration:
		b.torque = b.torque.Add(v)
	case Impulse:
		b.AngularVelocity = b.AngularVelocity.Add(v.Mul(1 / b.Mass))
	case VelocityChange:
		b.AngularVelocity = b.AngularVelocity.Add(v)
	}
}

// Integrate performs semi-implicit Euler integration: v = v + a*dt; p = p + v*dt
func (b *RigidBody) Integrate(dt float64) {
	if dt <= 0 {
		return
	}

	a := b.accel.Add(b.force.Mul(1 / b.Mass))
	if b.UseGravity {
		a = a.Add(b.Gravity)
	}
	b.Velocity = b.Velocity.Add(a.Mul(dt))
	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	b.AngularVelocity = b.AngularVelocity.Add(b.torque.Mul(dt))
	if rate := b.AngularVelocity.Len(); rate > vmath.Epsilon {
		spin := vmath.AngleAxis(rate*dt, b.AngularVelocity)
		b.Rotation = spin.Mul(b.Rotation).Normalize()
	}

	b.force, b.accel, b.torque = vmath.Zero, vmath.Zero, vmath.Zero
}

// Pose returns the current world pose
func (b *RigidBody) Pose() vmath.Pose {
	return vmath.Pose{Position: b.Position, Rotation: b.Rotation}
}

// SetPose teleports the body without touching velocity
func (b *RigidBody) SetPose(p vmath.Pose) {
	b.Position = p.Position
	b.Rotation = p.Rotation.Normalize()
}

// Stop zeroes all motion state
func (b *RigidBody) Stop() {
	b.Velocity, b.AngularVelocity = vmath.Zero, vmath.Zero
	b.force, b.accel, b.torque = vmath.Zero, vmath.Zero, vmath.Zero
}
