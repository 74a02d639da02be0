package engine

import (
	"sort"
	"time"
)

// Timer is a deferred action handle returned by Scheduler.After
type Timer struct {
	due       time.Time
	seq       uint64
	fn        func()
	cancelled bool
	fired     bool
}

// Cancel prevents a pending action from running, returns false if it already ran or was cancelled
func (t *Timer) Cancel() bool {
	if t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// Due returns the time the action becomes runnable
func (t *Timer) Due() time.Time { return t.due }

// Fired reports whether the action has run
func (t *Timer) Fired() bool { return t.fired }

// Scheduler runs deferred actions cooperatively from the frame goroutine
// Nothing runs on its own; RunDue executes whatever is due at the clock's current time
type Scheduler struct {
	clock  TimeProvider
	timers []*Timer // sorted by due, then seq
	seq    uint64
}

// NewScheduler creates a scheduler measuring time on clock
func NewScheduler(clock TimeProvider) *Scheduler {
	return &Scheduler{clock: clock}
}

// After schedules fn to run once d has elapsed on the scheduler clock
// Non-positive d runs on the next RunDue
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{due: s.clock.Now().Add(d), seq: s.seq, fn: fn}

	i := sort.Search(len(s.timers), func(i int) bool {
		return s.timers[i].due.After(t.due)
	})
	s.timers = append(s.timers, nil)
	copy(s.timers[i+1:], s.timers[i:])
	s.timers[i] = t
	return t
}

// RunDue executes due actions in due order and returns how many ran
// Actions scheduled by a running action wait for a later call
func (s *Scheduler) RunDue() int {
	now := s.clock.Now()
	n := sort.Search(len(s.timers), func(i int) bool {
		return s.timers[i].due.After(now)
	})
	if n == 0 {
		return 0
	}

	due := append([]*Timer(nil), s.timers[:n]...)
	s.timers = append(s.timers[:0:0], s.timers[n:]...)

	ran := 0
	for _, t := range due {
		if t.cancelled {
			continue
		}
		t.fired = true
		t.fn()
		ran++
	}
	return ran
}

// Pending returns the number of actions not yet run or cancelled
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}
