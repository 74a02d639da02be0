package parameter

import "time"

// Bow Geometry
const (
	// RubberAngleDegrees is the string guide splay while drawn
	RubberAngleDegrees = 60.0

	// NockOffsetZ places the arrow holder behind the grip in the bow frame
	NockOffsetZ = -0.05

	// NockZoneRadius is the proximity at which an arrow tail counts as entering the nock zone
	NockZoneRadius = 0.08

	// LaunchStrength scales tension into launch velocity
	LaunchStrength = 10.0
)

// Draw Resistance
// Curves are (tension, value) keys, tension in metres
var (
	// TranslationResistanceKeys is the maximum draw speed in metres per second at a given tension
	TranslationResistanceKeys = [][2]float64{{0, 2.0}, {0.3, 0.8}, {0.6, 0.2}}

	// AimingResistanceKeys is the pull toward the firing plane at a given tension
	AimingResistanceKeys = [][2]float64{{0, 0}, {0.1, 0.5}, {0.5, 1.0}}
)

// CurveLUTSize is the sample count curves are baked to for per-step evaluation
const CurveLUTSize = 256

// Stretch Feedback
const (
	// StretchClipName is the audio clip played on each stretch event
	StretchClipName = "stretch"

	// ReleaseClipName is the audio clip played on launch
	ReleaseClipName = "release"

	// TensionStepLength is the minimum time between stretch events
	TensionStepLength = 100 * time.Millisecond

	// HapticLowGain scales pitch into the low frequency motor
	HapticLowGain = 0.5

	// HapticHighGain scales pitch into the high frequency motor
	HapticHighGain = 0.2
)

var (
	// StretchPitchKeys maps tension to playback pitch
	StretchPitchKeys = [][2]float64{{0, 0.8}, {0.6, 1.6}}

	// StretchStepKeys is the tension change that must accumulate before the next event
	StretchStepKeys = [][2]float64{{0, 0.02}, {0.6, 0.05}}
)
