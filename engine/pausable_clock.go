package engine

import (
	"sync"
	"time"
)

// PausableClock provides pausable, scalable game time over a real time source
// RealTime stays unscaled and keeps running through pauses
type PausableClock struct {
	mu sync.RWMutex

	source TimeProvider

	// Game time equals anchorGame + (real - anchorReal) * scale
	anchorReal time.Time
	anchorGame time.Time
	scale      float64

	// Pause state
	paused          bool
	pauseStartTime  time.Time     // When current pause started (real time)
	totalPausedTime time.Duration // Cumulative pause duration
}

// NewPausableClock creates a running clock at scale 1 over source
// Nil source uses the monotonic system clock
func NewPausableClock(source TimeProvider) *PausableClock {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	now := source.Now()
	return &PausableClock{
		source:     source,
		anchorReal: now,
		anchorGame: now,
		scale:      1,
	}
}

// Now returns current game time (affected by pause and scale)
func (pc *PausableClock) Now() time.Time {
	now := pc.source.Now()
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.gameAtLocked(now)
}

// RealTime returns the unscaled source time (unaffected by pause)
func (pc *PausableClock) RealTime() time.Time {
	return pc.source.Now()
}

// Unscaled exposes RealTime as a TimeProvider for deferred actions
func (pc *PausableClock) Unscaled() TimeProvider {
	return pc.source
}

// Pause stops game time advancement
func (pc *PausableClock) Pause() {
	now := pc.source.Now()
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.rebaseLocked(now)
	pc.paused = true
	pc.pauseStartTime = now
}

// Resume continues game time advancement
func (pc *PausableClock) Resume() {
	now := pc.source.Now()
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPausedTime += now.Sub(pc.pauseStartTime)
	pc.pauseStartTime = time.Time{}
	pc.anchorReal = now
	pc.paused = false
}

// SetScale changes the game time rate from now on; negative scale is treated as 0
func (pc *PausableClock) SetScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	now := pc.source.Now()
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.rebaseLocked(now)
	pc.scale = scale
}

// Scale returns the current game time rate
func (pc *PausableClock) Scale() float64 {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.scale
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time, the current pause included
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	now := pc.source.Now()
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.paused {
		total += now.Sub(pc.pauseStartTime)
	}
	return total
}

func (pc *PausableClock) gameAtLocked(now time.Time) time.Time {
	if pc.paused {
		now = pc.pauseStartTime
	}
	elapsed := now.Sub(pc.anchorReal)
	return pc.anchorGame.Add(time.Duration(float64(elapsed) * pc.scale))
}

// Paused clocks are already anchored at the pause point
func (pc *PausableClock) rebaseLocked(now time.Time) {
	if pc.paused {
		return
	}
	pc.anchorGame = pc.gameAtLocked(now)
	pc.anchorReal = now
}
