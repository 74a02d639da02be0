// Package audio plays the bow's one-shot clips through beep
package audio

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/archery/parameter"
)

var (
	ErrNoBackend   = errors.New("no audio backend")
	ErrUnknownClip = errors.New("unknown clip")
)

// ClipFactory builds a fresh streamer for one playback
type ClipFactory func(rate beep.SampleRate) beep.Streamer

// Player mixes one-shot clips onto the speaker
// Without a backend it runs silent and drops playback requests
type Player struct {
	mu          sync.Mutex
	config      Config
	rate        beep.SampleRate
	mixer       *beep.Mixer
	clips       map[string]ClipFactory
	initialized bool

	silent  atomic.Bool
	muted   atomic.Bool
	played  atomic.Uint64
	dropped atomic.Uint64

	logger *zap.Logger
}

// NewPlayer creates a player with the stretch and release clips registered
func NewPlayer(config Config, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Player{
		config: config,
		rate:   beep.SampleRate(config.SampleRate),
		mixer:  &beep.Mixer{},
		clips:  make(map[string]ClipFactory),
		logger: logger,
	}
	p.muted.Store(!config.Enabled)
	p.Register(ClipStretch, StretchClip)
	p.Register(ClipRelease, ReleaseClip)
	return p
}

// Register adds or replaces a named clip
func (p *Player) Register(name string, factory ClipFactory) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clips[name] = factory
}

// Start opens the speaker; on failure the player stays usable in silent mode
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := p.config.Validate(); err != nil {
		p.silent.Store(true)
		return fmt.Errorf("audio config: %w", err)
	}

	if err := speaker.Init(p.rate, p.rate.N(p.config.BufferSize)); err != nil {
		p.silent.Store(true)
		return fmt.Errorf("%w: %v", ErrNoBackend, err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Info("audio started", zap.Int("sample_rate", p.config.SampleRate))
	return nil
}

// Stop silences every voice and releases the speaker
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// PlayOneShot implements the feedback audio sink
// pitch scales playback rate, volume is linear gain before the master level
func (p *Player) PlayOneShot(clip string, pitch, volume float64) {
	if p.muted.Load() || p.silent.Load() {
		p.dropped.Add(1)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		p.dropped.Add(1)
		return
	}

	s, err := p.voice(clip, pitch, volume)
	if err != nil {
		p.logger.Warn("one-shot dropped", zap.String("clip", clip), zap.Error(err))
		p.dropped.Add(1)
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.played.Add(1)
}

// voice builds the streamer for one playback, caller holds mu
func (p *Player) voice(clip string, pitch, volume float64) (beep.Streamer, error) {
	factory, ok := p.clips[clip]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClip, clip)
	}

	s := factory(p.rate)
	if pitch > 0 && pitch != 1 {
		s = beep.ResampleRatio(parameter.AudioResampleQuality, pitch, s)
	}
	return newVolume(s, volume*p.config.MasterVolume), nil
}

// ToggleMute flips mute and returns the new state
func (p *Player) ToggleMute() bool {
	for {
		cur := p.muted.Load()
		if p.muted.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// IsMuted reports whether playback requests are dropped
func (p *Player) IsMuted() bool { return p.muted.Load() }

// IsSilent reports whether the player runs without a backend
func (p *Player) IsSilent() bool { return p.silent.Load() }

// Played returns the number of voices handed to the mixer
func (p *Player) Played() uint64 { return p.played.Load() }

// Dropped returns the number of requests discarded
func (p *Player) Dropped() uint64 { return p.dropped.Load() }
