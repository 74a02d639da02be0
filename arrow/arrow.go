// Package arrow tracks one arrow from free, through nocked on a bow, to launched
package arrow

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/archery/interaction"
	"github.com/lixenwraith/archery/parameter"
	"github.com/lixenwraith/archery/physics"
	"github.com/lixenwraith/archery/vmath"
)

var ErrNotFree = errors.New("arrow is not free")

// State is the arrow's place in its lifecycle
// Transitions only move forward: Free, Nocked, Launched
type State uint8

const (
	Free State = iota
	Nocked
	Launched
)

func (s State) String() string {
	switch s {
	case Free:
		return "free"
	case Nocked:
		return "nocked"
	case Launched:
		return "launched"
	default:
		return "unknown"
	}
}

// Config describes the arrow geometry and the surfaces a hand grabs it by
type Config struct {
	Length   float64 // along local Z
	TailBias float64 // attach point offset forward from the tail
	Surfaces []*interaction.Surface
}

// DefaultConfig returns the tuned arrow geometry without surfaces
func DefaultConfig() Config {
	return Config{
		Length:   parameter.ArrowLength,
		TailBias: parameter.ArrowTailBias,
	}
}

// Arrow drives pointer events into its sink while nocked and hands the launch kick to physics
// Not safe for concurrent use; all calls come from the frame loop
type Arrow struct {
	id        uuid.UUID
	config    Config
	transform interaction.PoseTarget
	body      physics.Body
	sink      interaction.PointerSink
	logger    *zap.Logger

	state   State
	grabber interaction.Grabber
	unsubs  []func()
	outbox  physics.Outbox
}

// New creates a free arrow
// transform is read for the attach and cancel poses, body receives the launch kick
func New(config Config, transform interaction.PoseTarget, body physics.Body, sink interaction.PointerSink, logger *zap.Logger) *Arrow {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Arrow{
		id:        interaction.NewID(),
		config:    config,
		transform: transform,
		body:      body,
		sink:      sink,
	}
	a.logger = logger.With(zap.Stringer("arrow", a.id))
	return a
}

// Enable subscribes to selections on the arrow's own surfaces
func (a *Arrow) Enable() {
	if a.unsubs != nil {
		return
	}
	a.unsubs = make([]func(), 0, len(a.config.Surfaces))
	for _, s := range a.config.Surfaces {
		a.unsubs = append(a.unsubs, s.OnSelectingGrabberAdded(a.HandleSelectingGrabberAdded))
	}
}

// Disable drops every selection subscription
func (a *Arrow) Disable() {
	for _, unsub := range a.unsubs {
		unsub()
	}
	a.unsubs = nil
}

// HandleSelectingGrabberAdded remembers the latest grabber to select the arrow
func (a *Arrow) HandleSelectingGrabberAdded(g interaction.Grabber) {
	a.grabber = g
}

// Grabber returns the last grabber to select the arrow, or nil
func (a *Arrow) Grabber() interaction.Grabber {
	return a.grabber
}

// TailPose is the attach point: the tail end pushed toward the head by the bias
// Both offsets follow the arrow's own forward axis
func (a *Arrow) TailPose() vmath.Pose {
	p := a.transform.Pose()
	forward := p.Forward()
	p.Position = p.Position.Sub(forward.Mul(a.config.Length / 2)).Add(forward.Mul(a.config.TailBias))
	return p
}

// Attach nocks the arrow, presenting its tail as a new grab to the sink
func (a *Arrow) Attach() error {
	if a.state != Free {
		return ErrNotFree
	}
	tail := a.TailPose()
	a.emit(interaction.Hover, tail)
	a.emit(interaction.Select, tail)
	a.emit(interaction.Move, tail)
	a.state = Nocked

	a.logger.Debug("arrow nocked", zap.Stringer("state", a.state))
	return nil
}

// Move carries a nocked arrow to the holder pose
func (a *Arrow) Move(holder vmath.Pose) {
	if a.state != Nocked {
		return
	}
	a.emit(interaction.Move, holder)
}

// Eject cancels the grab and queues force as a velocity change for the next fixed step
func (a *Arrow) Eject(force mgl64.Vec3) {
	if a.state != Nocked {
		a.logger.Warn("eject ignored", zap.Stringer("state", a.state))
		return
	}
	a.emit(interaction.Cancel, a.transform.Pose())
	a.outbox.Post(physics.Kick{Linear: force})
	a.state = Launched

	a.logger.Debug("arrow ejected", zap.Float64("speed", force.Len()))
}

// FixedUpdate delivers a pending launch kick once
func (a *Arrow) FixedUpdate(dt float64) {
	kick, ok := a.outbox.Drain()
	if !ok {
		return
	}
	kick.ApplyTo(a.body)
}

// ID is the arrow's pointer identifier
func (a *Arrow) ID() uuid.UUID {
	return a.id
}

// State returns the lifecycle state
func (a *Arrow) State() State {
	return a.state
}

// Pose is the arrow transform in world space
func (a *Arrow) Pose() vmath.Pose {
	return a.transform.Pose()
}

// Pending reports whether a launch kick awaits the physics step
func (a *Arrow) Pending() bool {
	return a.outbox.Pending()
}

func (a *Arrow) emit(kind interaction.PointerEventKind, pose vmath.Pose) {
	if a.sink == nil {
		return
	}
	a.sink.ProcessPointerEvent(interaction.PointerEvent{Identifier: a.id, Kind: kind, Pose: pose})
}
