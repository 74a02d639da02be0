package interaction

import (
	"slices"

	"github.com/google/uuid"

	"github.com/lixenwraith/archery/vmath"
)

type grabPoint struct {
	id   uuid.UUID
	pose vmath.Pose
}

// Grabbable collects pointer events into grab points
// With a target it carries the target along with the primary grab point, keeping the offset captured at select
type Grabbable struct {
	target   PoseTarget
	hovering map[uuid.UUID]struct{}
	points   []grabPoint
	offset   vmath.Pose
}

// NewGrabbable creates a grabbable; target may be nil for a passive grab point source
func NewGrabbable(target PoseTarget) *Grabbable {
	return &Grabbable{
		target:   target,
		hovering: make(map[uuid.UUID]struct{}),
	}
}

// ProcessPointerEvent implements PointerSink
func (g *Grabbable) ProcessPointerEvent(ev PointerEvent) {
	switch ev.Kind {
	case Hover:
		g.hovering[ev.Identifier] = struct{}{}

	case Unhover:
		delete(g.hovering, ev.Identifier)

	case Select:
		if g.index(ev.Identifier) >= 0 {
			return
		}
		g.points = append(g.points, grabPoint{id: ev.Identifier, pose: ev.Pose})
		if len(g.points) == 1 {
			g.capture()
		}

	case Move:
		i := g.index(ev.Identifier)
		if i < 0 {
			return
		}
		g.points[i].pose = ev.Pose
		if i == 0 && g.target != nil {
			g.target.SetPose(ev.Pose.Mul(g.offset))
		}

	case Unselect, Cancel:
		if ev.Kind == Cancel {
			delete(g.hovering, ev.Identifier)
		}
		i := g.index(ev.Identifier)
		if i < 0 {
			return
		}
		g.points = slices.Delete(g.points, i, i+1)
		if i == 0 && len(g.points) > 0 {
			g.capture()
		}
	}
}

// GrabPoints implements GrabPointProvider
func (g *Grabbable) GrabPoints() []vmath.Pose {
	poses := make([]vmath.Pose, len(g.points))
	for i, p := range g.points {
		poses[i] = p.pose
	}
	return poses
}

// Grabbing implements GrabSource
func (g *Grabbable) Grabbing() bool {
	return len(g.points) > 0
}

// Selecting reports whether pointer id currently holds the grabbable
func (g *Grabbable) Selecting(id uuid.UUID) bool {
	return g.index(id) >= 0
}

// Hovered reports whether pointer id hovers the grabbable
func (g *Grabbable) Hovered(id uuid.UUID) bool {
	_, ok := g.hovering[id]
	return ok
}

// capture records the target pose relative to the primary grab point
func (g *Grabbable) capture() {
	if g.target == nil || len(g.points) == 0 {
		return
	}
	g.offset = vmath.Delta(g.points[0].pose, g.target.Pose())
}

func (g *Grabbable) index(id uuid.UUID) int {
	for i, p := range g.points {
		if p.id == id {
			return i
		}
	}
	return -1
}
