package bow

import (
	"github.com/lixenwraith/archery/interaction"
	"github.com/lixenwraith/archery/vmath"
)

// Transformer is driven by a grab: begin on the first grab point, update while held, end on release
type Transformer interface {
	Initialize(grab interaction.GrabPointProvider)
	BeginTransform()
	UpdateTransform(dt float64)
	EndTransform()
}

var _ Transformer = (*Bow)(nil)

// Initialize sets the grab point source read by the transform calls
func (b *Bow) Initialize(grab interaction.GrabPointProvider) {
	b.grab = grab
}

// BeginTransform starts a draw from grab point 0
func (b *Bow) BeginTransform() {
	p, ok := b.grabPoint()
	if !ok {
		b.logger.Warn("transform begin without grab point")
		return
	}
	b.BeginDraw(p, b.WorldPose())
}

// UpdateTransform steps the draw toward grab point 0
func (b *Bow) UpdateTransform(dt float64) {
	p, ok := b.grabPoint()
	if !ok {
		b.logger.Warn("transform update without grab point")
		return
	}
	b.UpdateDraw(p, b.parent, dt)
}

// EndTransform ends the draw, launching a loaded arrow
func (b *Bow) EndTransform() {
	b.EndDraw()
}

func (b *Bow) grabPoint() (p vmath.Pose, ok bool) {
	if b.grab == nil {
		return p, false
	}
	points := b.grab.GrabPoints()
	if len(points) == 0 {
		return p, false
	}
	return points[0], true
}
