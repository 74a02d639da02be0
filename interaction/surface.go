package interaction

import "sync"

// Surface is a hand-grab point on an object; selections on it are reported to Sink
// Observers are told when a grabber starts selecting it
type Surface struct {
	Name string
	Sink PointerSink

	mu        sync.Mutex
	nextID    uint64
	observers []surfaceObserver
}

type surfaceObserver struct {
	id uint64
	fn func(Grabber)
}

// NewSurface creates a named surface forwarding pointer events to sink
func NewSurface(name string, sink PointerSink) *Surface {
	return &Surface{Name: name, Sink: sink}
}

// OnSelectingGrabberAdded registers fn and returns its unsubscribe func
// Unsubscribe is idempotent
func (s *Surface) OnSelectingGrabberAdded(fn func(Grabber)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, surfaceObserver{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

// NotifySelectingGrabberAdded informs observers, in subscription order, that g selected the surface
func (s *Surface) NotifySelectingGrabberAdded(g Grabber) {
	s.mu.Lock()
	observers := append([]surfaceObserver(nil), s.observers...)
	s.mu.Unlock()

	for _, o := range observers {
		o.fn(g)
	}
}

// Observers returns the number of live subscriptions
func (s *Surface) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

func (s *Surface) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o.id == id {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}
