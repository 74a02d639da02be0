// Package bow turns a hand grab into a constrained, resisting bow pose and a draw tension
package bow

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/archery/curve"
	"github.com/lixenwraith/archery/interaction"
	"github.com/lixenwraith/archery/parameter"
	"github.com/lixenwraith/archery/physics"
	"github.com/lixenwraith/archery/vmath"
)

var ErrLoaded = errors.New("bow already holds an arrow")

// Launcher receives the launch impulse when the draw ends
type Launcher interface {
	Eject(force mgl64.Vec3)
}

// StretchListener receives the tension after every draw step
type StretchListener interface {
	OnStretch(tension float64) bool
}

// Config is fixed for the lifetime of a bow
type Config struct {
	Rest            vmath.Pose // undrawn pose in the parent frame
	Nock            vmath.Pose // arrow holder in the bow frame
	DrawPlaneNormal mgl64.Vec3 // aim is pulled into the plane orthogonal to this local axis
	RubberAngle     float64    // guide splay while drawn, radians
	LaunchStrength  float64
	Spring          physics.SpringReturn

	TranslationResistance curve.Evaluator // max draw speed at tension
	AimingResistance      curve.Evaluator // aim correction weight at tension, may exceed 1
}

// DefaultConfig returns the tuned bow with rest at the parent origin
func DefaultConfig() Config {
	return Config{
		Rest:                  vmath.IdentityPose(),
		Nock:                  vmath.PoseAt(mgl64.Vec3{0, 0, parameter.NockOffsetZ}),
		DrawPlaneNormal:       vmath.Right,
		RubberAngle:           mgl64.DegToRad(parameter.RubberAngleDegrees),
		LaunchStrength:        parameter.LaunchStrength,
		Spring:                physics.SpringReturn{Stiffness: parameter.SpringForce, Damping: parameter.SpringDamping},
		TranslationResistance: curve.Linear(parameter.TranslationResistanceKeys...),
		AimingResistance:      curve.Linear(parameter.AimingResistanceKeys...),
	}
}

// Bow owns the draw state: grab offset, spring velocities, loaded arrow
// Not safe for concurrent use; all calls come from the frame loop
type Bow struct {
	config Config
	logger *zap.Logger

	parent vmath.Pose // parent frame in world space
	local  vmath.Pose // current pose in the parent frame

	grabbed   bool
	grabDelta vmath.Pose // grab point to bow origin, bow local
	spring    physics.SpringState
	splay     float64

	loaded  Launcher
	stretch StretchListener
	grab    interaction.GrabPointProvider
}

// New creates a bow at rest under the given parent frame
func New(config Config, parent vmath.Pose, logger *zap.Logger) *Bow {
	if config.TranslationResistance == nil {
		config.TranslationResistance = curve.Constant(0)
	}
	if config.AimingResistance == nil {
		config.AimingResistance = curve.Constant(0)
	}
	if config.DrawPlaneNormal == vmath.Zero {
		config.DrawPlaneNormal = vmath.Right
	}
	if config.Rest.Rotation == (mgl64.Quat{}) {
		config.Rest.Rotation = mgl64.QuatIdent()
	}
	if config.Nock.Rotation == (mgl64.Quat{}) {
		config.Nock.Rotation = mgl64.QuatIdent()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bow{
		config: config,
		logger: logger,
		parent: parent,
		local:  config.Rest,
	}
}

// SetStretchListener routes tension after each draw step, nil disables
func (b *Bow) SetStretchListener(l StretchListener) {
	b.stretch = l
}

// BeginDraw captures the grab point's offset to the bow origin and opens the guides
func (b *Bow) BeginDraw(grab, origin vmath.Pose) {
	b.grabDelta = vmath.Pose{
		Position: origin.InverseTransformVector(grab.Position.Sub(origin.Position)),
		Rotation: grab.Rotation.Inverse().Mul(origin.Rotation).Normalize(),
	}
	b.grabbed = true
	b.spring.Reset()
	b.splay = b.config.RubberAngle

	b.logger.Debug("draw begin", zap.Float64("tension", b.Tension()))
}

// UpdateDraw moves the bow toward the grab under draw resistance and aim correction
// Returns the new tension; outside a draw it is a logged no-op
func (b *Bow) UpdateDraw(grab, parent vmath.Pose, dt float64) float64 {
	if !b.grabbed {
		b.logger.Warn("draw update while not grabbed")
		return b.Tension()
	}
	b.parent = parent
	rest := b.config.Rest.Position

	world := parent.Mul(b.local)
	desired := vmath.Pose{
		Position: grab.Position.Sub(world.TransformVector(b.grabDelta.Position)),
		Rotation: grab.Rotation.Mul(b.grabDelta.Rotation).Normalize(),
	}
	desiredLocal := vmath.Delta(parent, desired)

	aim := desiredLocal.Position.Sub(rest)
	current := vmath.Distance(b.local.Position, rest)
	desiredTension := aim.Len()

	// Only drawing out is rate limited
	if desiredTension > current {
		limit := b.config.TranslationResistance.Evaluate(current) * dt
		desiredTension = vmath.MoveTowards(current, desiredTension, limit)
	}

	ideal := vmath.Normalize(vmath.ProjectOnPlane(aim, b.config.DrawPlaneNormal))
	aim = vmath.Normalize(vmath.Slerp(aim, ideal, b.config.AimingResistance.Evaluate(current)))

	position := rest.Add(aim.Mul(desiredTension))
	tension := vmath.Distance(position, rest)

	look := vmath.LookRotation(aim.Mul(-1), desiredLocal.Up())
	rotation := vmath.SlerpUnclamped(desiredLocal.Rotation, look, b.config.AimingResistance.Evaluate(tension))

	b.local = vmath.Pose{Position: position, Rotation: rotation}

	if b.stretch != nil {
		b.stretch.OnStretch(tension)
	}
	return tension
}

// EndDraw closes the guides and launches a loaded arrow along the parent origin direction
// Returns the impulse and whether one was delivered
func (b *Bow) EndDraw() (mgl64.Vec3, bool) {
	if !b.grabbed {
		b.logger.Warn("draw end while not grabbed")
		return vmath.Zero, false
	}
	b.grabbed = false
	b.splay = 0

	if b.loaded == nil {
		b.logger.Debug("draw end", zap.Float64("tension", b.Tension()))
		return vmath.Zero, false
	}

	force := b.LaunchForce()
	arrow := b.loaded
	b.loaded = nil
	arrow.Eject(force)

	b.logger.Info("arrow launched",
		zap.Float64("tension", b.Tension()),
		zap.Float64("speed", force.Len()),
	)
	return force, true
}

// LaunchForce is the impulse a release would deliver now
func (b *Bow) LaunchForce() mgl64.Vec3 {
	world := b.WorldPose()
	direction := vmath.Normalize(b.parent.Position.Sub(world.Position))
	return direction.Mul(b.Tension() * b.config.LaunchStrength)
}

// Idle relaxes the bow toward rest; ignored while grabbed
func (b *Bow) Idle(dt float64) {
	if b.grabbed {
		return
	}
	b.local = b.config.Spring.Step(&b.spring, b.local, b.config.Rest, dt)
}

// Load holds l on the nock until the draw ends
func (b *Bow) Load(l Launcher) error {
	if b.loaded != nil {
		return ErrLoaded
	}
	b.loaded = l
	return nil
}

// Loaded returns the held arrow or nil
func (b *Bow) Loaded() Launcher {
	return b.loaded
}

// Grabbed reports whether a draw is in progress
func (b *Bow) Grabbed() bool {
	return b.grabbed
}

// Tension is the distance of the current pose from rest
func (b *Bow) Tension() float64 {
	return vmath.Distance(b.local.Position, b.config.Rest.Position)
}

// Guides returns the left and right string guide rotations in the bow frame
func (b *Bow) Guides() (left, right mgl64.Quat) {
	return vmath.AngleAxis(-b.splay, vmath.Up), vmath.AngleAxis(b.splay, vmath.Up)
}

// Splay is the current guide angle in radians
func (b *Bow) Splay() float64 {
	return b.splay
}

// NockPose is the arrow holder in world space
func (b *Bow) NockPose() vmath.Pose {
	return b.WorldPose().Mul(b.config.Nock)
}

// WorldPose is the bow origin in world space
func (b *Bow) WorldPose() vmath.Pose {
	return b.parent.Mul(b.local)
}

// LocalPose is the bow pose in its parent frame
func (b *Bow) LocalPose() vmath.Pose {
	return b.local
}

// SetParent moves the parent frame, the bow follows rigidly
func (b *Bow) SetParent(p vmath.Pose) {
	b.parent = p
}

// Parent is the parent frame in world space
func (b *Bow) Parent() vmath.Pose {
	return b.parent
}

// Config returns the configuration the bow was built with
func (b *Bow) Config() Config {
	return b.config
}
