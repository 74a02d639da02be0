// Package rig couples a bow to the arrows that touch its nock zone and drives the bow from its grab
package rig

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/archery/arrow"
	"github.com/lixenwraith/archery/bow"
	"github.com/lixenwraith/archery/engine"
	"github.com/lixenwraith/archery/interaction"
	"github.com/lixenwraith/archery/vmath"
)

// Nockable is anything the bow can take over from a hand and launch
type Nockable interface {
	bow.Launcher
	Grabber() interaction.Grabber
	State() arrow.State
	Attach() error
	Move(holder vmath.Pose)
}

var (
	_ Nockable           = (*arrow.Arrow)(nil)
	_ engine.Updater     = (*Coordinator)(nil)
	_ engine.LateUpdater = (*Coordinator)(nil)
)

// Coordinator owns the bow's nocked arrow and runs the bow's per-frame step
type Coordinator struct {
	bow         *bow.Bow
	transformer bow.Transformer
	grab        interaction.GrabSource
	surfaces    []*interaction.Surface
	logger      *zap.Logger

	loaded   Nockable
	onLaunch func(Nockable, mgl64.Vec3)
}

// New wires b to grab and the hand-grab surfaces an arrow's grabber is handed over to
func New(b *bow.Bow, grab interaction.GrabSource, surfaces []*interaction.Surface, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	b.Initialize(grab)
	return &Coordinator{
		bow:         b,
		transformer: b,
		grab:        grab,
		surfaces:    surfaces,
		logger:      logger,
	}
}

// OnLaunch sets a callback run after an arrow is ejected
func (c *Coordinator) OnLaunch(fn func(a Nockable, force mgl64.Vec3)) {
	c.onLaunch = fn
}

// OnTriggerEnter handles something entering the nock zone
// Returns true when it nocked an arrow
func (c *Coordinator) OnTriggerEnter(other any) bool {
	if c.loaded != nil {
		c.logger.Debug("nock zone entry ignored, arrow already nocked")
		return false
	}
	a, ok := other.(Nockable)
	if !ok {
		c.logger.Debug("nock zone entry ignored, not an arrow", zap.String("type", fmt.Sprintf("%T", other)))
		return false
	}
	if a.State() != arrow.Free {
		c.logger.Debug("nock zone entry ignored", zap.Stringer("state", a.State()))
		return false
	}

	g := a.Grabber()
	if g == nil || !g.IsSelecting() {
		c.logger.Debug("nock abandoned, arrow not held")
		return false
	}

	for _, s := range c.surfaces {
		if !g.CanInteractWith(s) {
			continue
		}
		// Claim the nock first so a refusal leaves the hand untouched
		if err := c.bow.Load(launchTap{Nockable: a, c: c}); err != nil {
			c.logger.Warn("nock refused", zap.Error(err))
			return false
		}
		c.loaded = a

		// Hand over from arrow to bow; the grab system is trusted to comply
		g.ForceRelease()
		g.ForceSelect(s, true)
		if err := a.Attach(); err != nil {
			c.logger.Warn("arrow attach failed", zap.Error(err))
		}
		c.logger.Info("arrow nocked", zap.String("surface", s.Name))
		return true
	}

	c.logger.Debug("nock abandoned, no bow surface in reach")
	return false
}

// Update runs the bow's draw step while grabbed and its idle spring otherwise
func (c *Coordinator) Update(dt float64) {
	grabbing := c.grab.Grabbing()

	switch {
	case grabbing && !c.bow.Grabbed():
		c.transformer.BeginTransform()
		return
	case grabbing:
		c.transformer.UpdateTransform(dt)
		return
	case c.bow.Grabbed():
		c.transformer.EndTransform()
	}
	c.bow.Idle(dt)
}

// LateUpdate pins a nocked arrow to the bow's holder after the bow has moved
func (c *Coordinator) LateUpdate(dt float64) {
	if c.loaded == nil {
		return
	}
	c.loaded.Move(c.bow.NockPose())
}

// Loaded returns the nocked arrow, or nil
func (c *Coordinator) Loaded() Nockable {
	return c.loaded
}

// Bow returns the coordinated bow
func (c *Coordinator) Bow() *bow.Bow {
	return c.bow
}

func (c *Coordinator) launched(a Nockable, force mgl64.Vec3) {
	c.loaded = nil
	if c.onLaunch != nil {
		c.onLaunch(a, force)
	}
}

// launchTap forwards the bow's eject to the arrow and reports it back
type launchTap struct {
	Nockable
	c *Coordinator
}

func (t launchTap) Eject(force mgl64.Vec3) {
	t.Nockable.Eject(force)
	t.c.launched(t.Nockable, force)
}
