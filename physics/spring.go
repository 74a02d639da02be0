package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/archery/vmath"
)

// SpringReturn relaxes a pose toward a rest pose with a damped spring
// Velocity is applied per step, not per second: v = v*Damping + (rest-x)*Stiffness*dt; x += v
type SpringReturn struct {
	Stiffness float64
	Damping   float64 // (0,1) for convergence
}

// SpringState carries integrator memory between steps
type SpringState struct {
	Velocity        mgl64.Vec3
	AngularVelocity float64    // radians per step about Axis
	Axis            mgl64.Vec3 // last valid rotation axis, reused once the offset vanishes
}

// Reset zeroes velocities, keeping nothing from the previous motion
func (s *SpringState) Reset() {
	*s = SpringState{}
}

// Step advances one tick and returns the new pose
func (sp SpringReturn) Step(st *SpringState, current, rest vmath.Pose, dt float64) vmath.Pose {
	force := rest.Position.Sub(current.Position).Mul(sp.Stiffness)
	st.Velocity = st.Velocity.Mul(sp.Damping).Add(force.Mul(dt))
	position := current.Position.Add(st.Velocity)

	// Offset such that current = offset * rest
	offset := current.Rotation.Mul(rest.Rotation.Inverse())
	angle, axis := vmath.ToAngleAxis(offset)
	angle = vmath.WrapAngle(angle)
	switch {
	case angle == 0:
		if st.Axis != vmath.Zero {
			axis = st.Axis
		}
	default:
		// Overshoot flips the decomposed axis; keep it continuous so velocity keeps its sign meaning
		if st.Axis != vmath.Zero && axis.Dot(st.Axis) < 0 {
			axis, angle = axis.Mul(-1), -angle
		}
		st.Axis = axis
	}

	st.AngularVelocity = st.AngularVelocity*sp.Damping + angle*sp.Stiffness*dt
	rotation := vmath.AngleAxis(st.AngularVelocity, axis.Mul(-1)).Mul(current.Rotation).Normalize()

	return vmath.Pose{Position: position, Rotation: rotation}
}
