package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 48000

	// AudioBufferDuration determines output latency
	AudioBufferDuration = 100 * time.Millisecond

	// AudioMasterVolume scales every voice
	AudioMasterVolume = 0.8

	// AudioResampleQuality is the beep resampler quality for pitched voices
	AudioResampleQuality = 4
)

// Stretch Creak
const (
	StretchFrequency    = 95.0
	StretchNoiseMix     = 0.35
	StretchDuration     = 90 * time.Millisecond
	StretchAttack       = 8 * time.Millisecond
	StretchRelease      = 60 * time.Millisecond
	StretchSourceVolume = 0.6
)

// Release Twang
const (
	ReleaseFrequency    = 196.0
	ReleaseOvertone     = 392.0
	ReleaseDuration     = 220 * time.Millisecond
	ReleaseAttack       = 2 * time.Millisecond
	ReleaseDecay        = 200 * time.Millisecond
	ReleaseSourceVolume = 0.5
)
