package audio

import (
	"fmt"
	"time"

	"github.com/lixenwraith/archery/parameter"
)

// Clip names registered by default
const (
	ClipStretch = parameter.StretchClipName
	ClipRelease = parameter.ReleaseClipName
)

// Config controls the playback device and levels
type Config struct {
	Enabled      bool
	SampleRate   int
	BufferSize   time.Duration
	MasterVolume float64 // [0,1]
}

// DefaultConfig returns audio enabled at 48 kHz with a 100 ms device buffer
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		SampleRate:   parameter.AudioSampleRate,
		BufferSize:   parameter.AudioBufferDuration,
		MasterVolume: parameter.AudioMasterVolume,
	}
}

// Validate rejects values the device cannot use
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate %d must be positive", c.SampleRate)
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("buffer size %v must be positive", c.BufferSize)
	}
	if c.MasterVolume < 0 || c.MasterVolume > 1 {
		return fmt.Errorf("master volume %v outside [0,1]", c.MasterVolume)
	}
	return nil
}
