package engine

import (
	"sync"
	"time"
)

// ManualClock is a TimeProvider advanced explicitly, for tests and replays
type ManualClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewManualClock creates a clock frozen at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{current: start}
}

// Now returns the current manual time
func (m *ManualClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set jumps to t, backwards included
func (m *ManualClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance moves the clock forward by d
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

// AdvanceSeconds is Advance for float second steps used by the frame loop
func (m *ManualClock) AdvanceSeconds(s float64) {
	m.Advance(time.Duration(s * float64(time.Second)))
}
