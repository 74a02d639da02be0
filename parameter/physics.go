package parameter

// Idle Spring Return
// Velocities are per step, so both constants are tuned against the frame rate
const (
	// SpringForce pulls the bow back toward rest
	SpringForce = 0.1

	// SpringDamping keeps the fraction of velocity carried into the next step, (0,1) converges
	SpringDamping = 0.95
)

// Arrow Body
const (
	// ArrowMass in kilograms
	ArrowMass = 0.03

	// ArrowLength along local Z in metres
	ArrowLength = 0.7

	// ArrowTailBias pushes the attach point forward from the tail along Z
	ArrowTailBias = 0.1

	// GravityY is the downward acceleration applied to free bodies
	GravityY = -9.81
)
