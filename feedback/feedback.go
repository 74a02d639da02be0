// Package feedback turns a continuous tension signal into rate-limited audio and haptic pulses
package feedback

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/archery/curve"
	"github.com/lixenwraith/archery/engine"
	"github.com/lixenwraith/archery/parameter"
)

// Controller is a bitmask of haptic devices
type Controller uint8

const (
	LTouch Controller = 1 << iota
	RTouch

	Touch = LTouch | RTouch
)

// AudioSink plays fire-and-forget clips
type AudioSink interface {
	PlayOneShot(clip string, pitch, volume float64)
}

// HapticSink drives controller vibration motors; amplitudes are in [0,1]
type HapticSink interface {
	SetVibration(low, high float64, devices Controller)
}

// Config tunes the throttler
type Config struct {
	MinInterval time.Duration   // minimum unscaled time between events
	Clip        string          // audio clip name
	Pitch       curve.Evaluator // tension to pitch
	Step        curve.Evaluator // tension to minimum tension change
	LowGain     float64         // low-frequency motor amplitude per unit pitch
	HighGain    float64         // high-frequency motor amplitude per unit pitch
	Devices     Controller
}

// DefaultConfig returns the tuned stretch feedback on both controllers
func DefaultConfig() Config {
	return Config{
		MinInterval: parameter.TensionStepLength,
		Clip:        parameter.StretchClipName,
		Pitch:       curve.Linear(parameter.StretchPitchKeys...),
		Step:        curve.Linear(parameter.StretchStepKeys...),
		LowGain:     parameter.HapticLowGain,
		HighGain:    parameter.HapticHighGain,
		Devices:     Touch,
	}
}

// Memory is the throttler state, updated only when an event fires
type Memory struct {
	LastTensionStep float64
	LastEventTime   time.Time
	Fired           bool // set by the first event; LastEventTime is meaningless before it
}

// Throttler emits at most one pulse per MinInterval, and only for large enough tension changes
type Throttler struct {
	config    Config
	clock     engine.TimeProvider
	scheduler *engine.Scheduler
	audio     AudioSink
	haptics   HapticSink
	logger    *zap.Logger

	memory Memory
	fired  uint64
}

// NewThrottler wires a throttler; clock must be unscaled and match the scheduler's
// Nil sinks are skipped
func NewThrottler(config Config, clock engine.TimeProvider, scheduler *engine.Scheduler, audio AudioSink, haptics HapticSink, logger *zap.Logger) *Throttler {
	if config.Pitch == nil {
		config.Pitch = curve.Constant(1)
	}
	if config.Step == nil {
		config.Step = curve.Constant(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Throttler{
		config:    config,
		clock:     clock,
		scheduler: scheduler,
		audio:     audio,
		haptics:   haptics,
		logger:    logger,
	}
}

// OnStretch evaluates one tension sample and reports whether an event fired
func (t *Throttler) OnStretch(tension float64) bool {
	if math.Abs(tension-t.memory.LastTensionStep) <= t.config.Step.Evaluate(tension) {
		return false
	}

	now := t.clock.Now()
	if t.memory.Fired && now.Sub(t.memory.LastEventTime) <= t.config.MinInterval {
		return false
	}

	pitch := t.config.Pitch.Evaluate(tension)
	t.playAudio(pitch)
	t.pulseHaptics(pitch)

	t.memory = Memory{LastTensionStep: tension, LastEventTime: now, Fired: true}
	t.fired++

	t.logger.Debug("stretch feedback",
		zap.Float64("tension", tension),
		zap.Float64("pitch", pitch),
	)
	return true
}

// Memory returns a copy of the throttler state
func (t *Throttler) Memory() Memory { return t.memory }

// Fired returns the number of events emitted
func (t *Throttler) Fired() uint64 { return t.fired }

func (t *Throttler) playAudio(pitch float64) {
	if t.audio == nil {
		return
	}
	t.audio.PlayOneShot(t.config.Clip, pitch, 1)
}

// pulseHaptics vibrates for half the interval, then zeroes both motors
// A newer pulse re-arms the same motors; the zeroing is idempotent
func (t *Throttler) pulseHaptics(pitch float64) {
	if t.haptics == nil {
		return
	}
	devices := t.config.Devices
	t.haptics.SetVibration(pitch*t.config.LowGain, pitch*t.config.HighGain, devices)

	if t.scheduler == nil {
		return
	}
	t.scheduler.After(t.config.MinInterval/2, func() {
		t.haptics.SetVibration(0, 0, devices)
	})
}
