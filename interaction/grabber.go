package interaction

//go:generate go tool mockgen -destination=./mocks/interaction_mock.go -package=mocks . Grabber,PointerSink

// Grabber is an external actor (a hand) able to select grab surfaces
type Grabber interface {
	IsSelecting() bool
	CanInteractWith(s *Surface) bool
	ForceRelease()
	ForceSelect(s *Surface, allowManualRelease bool)
}
