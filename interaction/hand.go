package interaction

import (
	"slices"

	"github.com/google/uuid"

	"github.com/lixenwraith/archery/vmath"
)

var _ Grabber = (*Hand)(nil)

// Hand is a simple Grabber driving surfaces through their pointer sinks
// It selects at most one surface at a time
type Hand struct {
	id    uuid.UUID
	pose  vmath.Pose
	reach []*Surface

	selected           *Surface
	allowManualRelease bool
}

// NewHand creates a hand able to interact with the given surfaces
func NewHand(reach ...*Surface) *Hand {
	return &Hand{
		id:    NewID(),
		pose:  vmath.IdentityPose(),
		reach: reach,
	}
}

// ID returns the pointer identifier used in events
func (h *Hand) ID() uuid.UUID { return h.id }

// Pose returns the current hand pose
func (h *Hand) Pose() vmath.Pose { return h.pose }

// Selected returns the surface being held, or nil
func (h *Hand) Selected() *Surface { return h.selected }

// AddReach makes s selectable by this hand
func (h *Hand) AddReach(s *Surface) {
	if !slices.Contains(h.reach, s) {
		h.reach = append(h.reach, s)
	}
}

// MoveTo sets the hand pose and drags the selected surface with it
func (h *Hand) MoveTo(p vmath.Pose) {
	h.pose = p
	if h.selected != nil {
		h.emit(h.selected, Move)
	}
}

// Select grabs s if reachable, dropping any current selection
func (h *Hand) Select(s *Surface) bool {
	if !h.CanInteractWith(s) {
		return false
	}
	h.release()
	h.selectSurface(s, true)
	return true
}

// Release lets go of the current selection unless it was forced without manual release
func (h *Hand) Release() bool {
	if h.selected == nil || !h.allowManualRelease {
		return false
	}
	h.release()
	return true
}

// IsSelecting implements Grabber
func (h *Hand) IsSelecting() bool {
	return h.selected != nil
}

// CanInteractWith implements Grabber
func (h *Hand) CanInteractWith(s *Surface) bool {
	return s != nil && slices.Contains(h.reach, s)
}

// ForceRelease implements Grabber
func (h *Hand) ForceRelease() {
	h.release()
}

// ForceSelect implements Grabber, bypassing reach
func (h *Hand) ForceSelect(s *Surface, allowManualRelease bool) {
	if s == nil {
		return
	}
	h.release()
	h.selectSurface(s, allowManualRelease)
}

func (h *Hand) selectSurface(s *Surface, allowManualRelease bool) {
	h.selected = s
	h.allowManualRelease = allowManualRelease
	h.emit(s, Hover)
	h.emit(s, Select)
	s.NotifySelectingGrabberAdded(h)
}

func (h *Hand) release() {
	if h.selected == nil {
		return
	}
	s := h.selected
	h.selected = nil
	h.emit(s, Unselect)
	h.emit(s, Unhover)
}

func (h *Hand) emit(s *Surface, kind PointerEventKind) {
	if s.Sink == nil {
		return
	}
	s.Sink.ProcessPointerEvent(PointerEvent{Identifier: h.id, Kind: kind, Pose: h.pose})
}
