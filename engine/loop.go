package engine

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// FixedUpdater runs in the fixed-rate physics phase
type FixedUpdater interface {
	FixedUpdate(dt float64)
}

// Updater runs once per frame after deferred actions
type Updater interface {
	Update(dt float64)
}

// LateUpdater runs once per frame after every Updater
type LateUpdater interface {
	LateUpdate(dt float64)
}

var ErrNotSystem = errors.New("value implements no frame phase")

// LoopConfig sets phase rates
type LoopConfig struct {
	FixedStep     time.Duration // physics phase step
	MaxFixedSteps int           // per frame cap, backlog beyond it is dropped
	FrameInterval time.Duration // frame ticker period
}

// DefaultLoopConfig is 50 Hz physics under a 60 Hz frame
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		FixedStep:     20 * time.Millisecond,
		MaxFixedSteps: 5,
		FrameInterval: time.Second / 60,
	}
}

// Loop sequences the three frame phases on one goroutine
// Registration order is execution order within a phase
type Loop struct {
	config    LoopConfig
	clock     *PausableClock
	scheduler *Scheduler
	logger    *zap.Logger

	fixed  []FixedUpdater
	update []Updater
	late   []LateUpdater

	accumulator time.Duration
	frames      uint64
	fixedSteps  uint64
}

// NewLoop creates a loop over clock; deferred actions run on the clock's unscaled time
func NewLoop(config LoopConfig, clock *PausableClock, logger *zap.Logger) *Loop {
	if config.FixedStep <= 0 {
		config.FixedStep = DefaultLoopConfig().FixedStep
	}
	if config.MaxFixedSteps <= 0 {
		config.MaxFixedSteps = DefaultLoopConfig().MaxFixedSteps
	}
	if config.FrameInterval <= 0 {
		config.FrameInterval = DefaultLoopConfig().FrameInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		config:    config,
		clock:     clock,
		scheduler: NewScheduler(clock.Unscaled()),
		logger:    logger,
	}
}

// Scheduler returns the deferred action scheduler drained each frame
func (l *Loop) Scheduler() *Scheduler {
	return l.scheduler
}

// Clock returns the game clock
func (l *Loop) Clock() *PausableClock {
	return l.clock
}

// Register adds each system to every phase it implements
func (l *Loop) Register(systems ...any) error {
	for _, s := range systems {
		matched := false
		if f, ok := s.(FixedUpdater); ok {
			l.fixed = append(l.fixed, f)
			matched = true
		}
		if u, ok := s.(Updater); ok {
			l.update = append(l.update, u)
			matched = true
		}
		if lu, ok := s.(LateUpdater); ok {
			l.late = append(l.late, lu)
			matched = true
		}
		if !matched {
			return fmt.Errorf("%w: %T", ErrNotSystem, s)
		}
	}
	return nil
}

// Frame advances one frame of dt game time
// Fixed steps catch up on accumulated time first, then due deferred actions, update and late phases
func (l *Loop) Frame(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	l.frames++

	l.accumulator += dt
	step := l.config.FixedStep
	steps := 0
	for l.accumulator >= step {
		if steps == l.config.MaxFixedSteps {
			l.logger.Warn("fixed step backlog dropped",
				zap.Duration("dropped", l.accumulator),
				zap.Int("steps", steps),
				zap.Uint64("frame", l.frames),
			)
			l.accumulator = 0
			break
		}
		for _, f := range l.fixed {
			f.FixedUpdate(step.Seconds())
		}
		l.accumulator -= step
		l.fixedSteps++
		steps++
	}

	l.scheduler.RunDue()

	secs := dt.Seconds()
	for _, u := range l.update {
		u.Update(secs)
	}
	for _, lu := range l.late {
		lu.LateUpdate(secs)
	}
}

// Alpha returns how far game time sits between fixed steps, in [0,1)
func (l *Loop) Alpha() float64 {
	return float64(l.accumulator) / float64(l.config.FixedStep)
}

// FixedStep returns the physics phase step
func (l *Loop) FixedStep() time.Duration { return l.config.FixedStep }

// Frames returns the number of frames run
func (l *Loop) Frames() uint64 { return l.frames }

// FixedSteps returns the number of physics steps run
func (l *Loop) FixedSteps() uint64 { return l.fixedSteps }
