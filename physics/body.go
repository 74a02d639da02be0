// Package physics holds the minimal rigid-body surface the bow and arrow talk to:
// impulse delivery, a deferred single-slot outbox, and the idle spring integrator
package physics

import "github.com/go-gl/mathgl/mgl64"

// ForceMode selects how AddForce/AddTorque input is interpreted
type ForceMode uint8

const (
	// Force is continuous, scaled by dt and inverse mass at integration
	Force ForceMode = iota
	// Acceleration is continuous, scaled by dt, mass ignored
	Acceleration
	// Impulse is instantaneous, scaled by inverse mass
	Impulse
	// VelocityChange is instantaneous, mass ignored
	VelocityChange
)

func (m ForceMode) String() string {
	switch m {
	case Force:
		return "force"
	case Acceleration:
		return "acceleration"
	case Impulse:
		return "impulse"
	case VelocityChange:
		return "velocity_change"
	default:
		return "unknown"
	}
}

//go:generate go tool mockgen -destination=./mocks/body_mock.go -package=mocks . Body

// Body receives forces and torques from the interaction core
type Body interface {
	AddForce(v mgl64.Vec3, mode ForceMode)
	AddTorque(v mgl64.Vec3, mode ForceMode)
}
