package physics

import "github.com/go-gl/mathgl/mgl64"

// Kick is a deferred velocity change awaiting the next fixed step
type Kick struct {
	Linear  mgl64.Vec3
	Angular mgl64.Vec3
}

// ApplyTo delivers the kick as instantaneous velocity changes
// Angular is always sent, zero included, so the body sees a matching torque call
func (k Kick) ApplyTo(b Body) {
	b.AddForce(k.Linear, VelocityChange)
	b.AddTorque(k.Angular, VelocityChange)
}

// Outbox holds at most one pending kick
// Post overwrites, Drain empties; both are called from the single frame goroutine
type Outbox struct {
	kick    Kick
	pending bool
}

// Post stores k, replacing any kick not yet drained
func (o *Outbox) Post(k Kick) {
	o.kick = k
	o.pending = true
}

// Drain returns the pending kick and clears the slot
func (o *Outbox) Drain() (Kick, bool) {
	if !o.pending {
		return Kick{}, false
	}
	o.pending = false
	k := o.kick
	o.kick = Kick{}
	return k, true
}

// Pending reports whether a kick awaits draining
func (o *Outbox) Pending() bool {
	return o.pending
}
