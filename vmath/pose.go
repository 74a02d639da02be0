package vmath

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a rigid transform: position plus unit rotation, relative to a parent frame
// The zero value carries an invalid rotation; use IdentityPose or NewPose
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewPose builds a pose with a normalized rotation
func NewPose(position mgl64.Vec3, rotation mgl64.Quat) Pose {
	return Pose{Position: position, Rotation: rotation.Normalize()}
}

// IdentityPose is the origin with no rotation
func IdentityPose() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// PoseAt is an unrotated pose at position
func PoseAt(position mgl64.Vec3) Pose {
	return Pose{Position: position, Rotation: mgl64.QuatIdent()}
}

// Mul composes p with child, where child is expressed in p's frame
// Result is child expressed in p's parent frame
func (p Pose) Mul(child Pose) Pose {
	return Pose{
		Position: p.Position.Add(p.Rotation.Rotate(child.Position)),
		Rotation: p.Rotation.Mul(child.Rotation).Normalize(),
	}
}

// Inverse returns the pose mapping p's parent frame into p's frame
func (p Pose) Inverse() Pose {
	inv := p.Rotation.Inverse()
	return Pose{
		Position: inv.Rotate(p.Position.Mul(-1)),
		Rotation: inv,
	}
}

// Delta expresses target relative to frame: frame⁻¹ · target
func Delta(frame, target Pose) Pose {
	return frame.Inverse().Mul(target)
}

// TransformPoint maps a local point into the parent frame
func (p Pose) TransformPoint(v mgl64.Vec3) mgl64.Vec3 {
	return p.Position.Add(p.Rotation.Rotate(v))
}

// TransformVector rotates a local direction into the parent frame
func (p Pose) TransformVector(v mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation.Rotate(v)
}

// InverseTransformVector rotates a parent-frame direction into the local frame
func (p Pose) InverseTransformVector(v mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation.Inverse().Rotate(v)
}

func (p Pose) Forward() mgl64.Vec3 { return p.Rotation.Rotate(Forward) }
func (p Pose) Up() mgl64.Vec3      { return p.Rotation.Rotate(Up) }
func (p Pose) Right() mgl64.Vec3   { return p.Rotation.Rotate(Right) }

// ApproxEqual compares position within posEps and rotation angle within rotEps
func (p Pose) ApproxEqual(o Pose, posEps, rotEps float64) bool {
	return Distance(p.Position, o.Position) <= posEps && QuatApproxEqual(p.Rotation, o.Rotation, rotEps)
}
