// Package interaction is the boundary to the grab system: pointer events, grabbers,
// grab surfaces and grabbables that carry poses between them
package interaction

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/archery/vmath"
)

// NewID returns a process-unique identifier, generated once per object at creation
func NewID() uuid.UUID {
	return uuid.New()
}

// PointerEventKind is the lifecycle stage a pointer reports
type PointerEventKind uint8

const (
	Hover PointerEventKind = iota
	Unhover
	Select
	Unselect
	Move
	Cancel
)

func (k PointerEventKind) String() string {
	switch k {
	case Hover:
		return "hover"
	case Unhover:
		return "unhover"
	case Select:
		return "select"
	case Unselect:
		return "unselect"
	case Move:
		return "move"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is one notification from a pointer, keyed by its identifier
type PointerEvent struct {
	Identifier uuid.UUID
	Kind       PointerEventKind
	Pose       vmath.Pose
}

// PointerSink consumes pointer lifecycle events
type PointerSink interface {
	ProcessPointerEvent(ev PointerEvent)
}

// GrabPointProvider exposes the poses currently holding an object, oldest first
type GrabPointProvider interface {
	GrabPoints() []vmath.Pose
}

// GrabSource is a GrabPointProvider that also reports whether any grab is active
type GrabSource interface {
	GrabPointProvider
	Grabbing() bool
}

// PoseTarget is an object whose world pose can be read and written
type PoseTarget interface {
	Pose() vmath.Pose
	SetPose(p vmath.Pose)
}
