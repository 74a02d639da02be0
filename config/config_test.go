package config_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/archery/bow"
	"github.com/lixenwraith/archery/config"
	"github.com/lixenwraith/archery/engine"
	"github.com/lixenwraith/archery/feedback"
	"github.com/lixenwraith/archery/logging"
	"github.com/lixenwraith/archery/vmath"
)

func TestDefaultMatchesPackageDefaults(t *testing.T) {
	doc := config.Default()
	require.NoError(t, doc.Validate())

	want := bow.DefaultConfig()
	got := doc.BowConfig()
	assert.InDelta(t, want.RubberAngle, got.RubberAngle, 1e-12)
	assert.Equal(t, want.LaunchStrength, got.LaunchStrength)
	assert.Equal(t, want.Spring, got.Spring)
	assert.True(t, vmath.Vec3ApproxEqual(want.Nock.Position, got.Nock.Position, 1e-12))
	assert.True(t, vmath.QuatApproxEqual(mgl64.QuatIdent(), got.Rest.Rotation, 1e-12))

	for _, x := range []float64{0, 0.15, 0.3, 0.6, 1} {
		assert.InDelta(t, want.TranslationResistance.Evaluate(x), got.TranslationResistance.Evaluate(x), 1e-12)
		assert.InDelta(t, want.AimingResistance.Evaluate(x), got.AimingResistance.Evaluate(x), 1e-12)
	}

	assert.Equal(t, engine.DefaultLoopConfig(), doc.LoopConfig())
	assert.Equal(t, feedback.DefaultConfig().MinInterval, doc.FeedbackConfig().MinInterval)
	assert.Equal(t, feedback.Touch, doc.FeedbackConfig().Devices)
}

func TestLoadFile(t *testing.T) {
	doc, err := config.Load("testdata/bow.yaml")
	require.NoError(t, err)

	assert.Equal(t, [3]float64{0, 1.2, 0.3}, doc.Bow.Rest.Position)
	assert.Equal(t, 12.0, doc.Bow.LaunchStrength)
	assert.Equal(t, config.Spring{Stiffness: 0.2, Damping: 0.9}, doc.Bow.Spring)
	assert.Equal(t, 80*time.Millisecond, doc.Feedback.MinInterval)
	assert.False(t, doc.Audio.Enabled)
	assert.Equal(t, "127.0.0.1:0", doc.Telemetry.Addr)

	bc := doc.BowConfig()
	assert.InDelta(t, math.Pi/4, bc.RubberAngle, 1e-12)
	assert.InDelta(t, 2.5, bc.TranslationResistance.Evaluate(0), 1e-12)
	assert.InDelta(t, 0.5, bc.AimingResistance.Evaluate(0.2), 1e-12)

	// Keys absent from the file keep their defaults
	assert.Equal(t, 0.8, doc.ArrowConfig().Length)
	assert.Equal(t, config.Default().Arrow.TailBias, doc.ArrowConfig().TailBias)
	assert.Equal(t, config.Default().Loop, doc.Loop)

	assert.Equal(t, logging.Options{Level: "debug", Format: logging.FormatConsole}, doc.LogOptions())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load("testdata/absent.yaml")
	assert.Error(t, err)
}

func TestDecodeEmptyKeepsDefaults(t *testing.T) {
	doc, err := config.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Bow.LaunchStrength, doc.Bow.LaunchStrength)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := config.Decode(strings.NewReader("bow:\n  launch_strenght: 4\n"))
	assert.Error(t, err)
}

func TestDecodeBadCurve(t *testing.T) {
	_, err := config.Decode(strings.NewReader("bow:\n  aiming_resistance: {mode: cubic, keys: [[0, 1]]}\n"))
	assert.Error(t, err)
}

func TestPoseEulerDegrees(t *testing.T) {
	p := config.Pose{Position: [3]float64{1, 2, 3}, Rotation: [3]float64{0, 90, 0}}.Pose()

	assert.Equal(t, mgl64.Vec3{1, 2, 3}, p.Position)
	turned := p.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
	assert.True(t, vmath.Vec3ApproxEqual(mgl64.Vec3{1, 0, 0}, turned, 1e-9), "got %v", turned)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ARCHERY_LAUNCH_STRENGTH", "7.5")
	t.Setenv("ARCHERY_DAMPING", "0.8")
	t.Setenv("ARCHERY_LOG_LEVEL", "warn")
	t.Setenv("ARCHERY_AUDIO_ENABLED", "true")

	doc, err := config.Load("testdata/bow.yaml")
	require.NoError(t, err)

	assert.Equal(t, 7.5, doc.Bow.LaunchStrength)
	assert.Equal(t, 0.8, doc.Bow.Spring.Damping)
	assert.Equal(t, 0.2, doc.Bow.Spring.Stiffness, "unset variables keep file values")
	assert.Equal(t, "warn", doc.Log.Level)
	assert.True(t, doc.Audio.Enabled)
	assert.Equal(t, "127.0.0.1:0", doc.Telemetry.Addr)
}

func TestEnvOverrideParseError(t *testing.T) {
	t.Setenv("ARCHERY_SPRING", "stiff")
	_, err := config.Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Document)
	}{
		{"zero stiffness", func(d *config.Document) { d.Bow.Spring.Stiffness = 0 }},
		{"undamped", func(d *config.Document) { d.Bow.Spring.Damping = 1 }},
		{"negative strength", func(d *config.Document) { d.Bow.LaunchStrength = -1 }},
		{"zero plane normal", func(d *config.Document) { d.Bow.DrawPlaneNormal = [3]float64{} }},
		{"missing curve", func(d *config.Document) { d.Bow.AimingResistance = nil }},
		{"zero arrow length", func(d *config.Document) { d.Arrow.Length = 0 }},
		{"zero interval", func(d *config.Document) { d.Feedback.MinInterval = 0 }},
		{"zero fixed step", func(d *config.Document) { d.Loop.FixedStep = 0 }},
		{"loud audio", func(d *config.Document) { d.Audio.MasterVolume = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := config.Default()
			tt.mutate(&doc)
			assert.ErrorIs(t, doc.Validate(), config.ErrInvalid)
		})
	}

	t.Run("disabled audio skips device checks", func(t *testing.T) {
		doc := config.Default()
		doc.Audio.Enabled = false
		doc.Audio.SampleRate = 0
		assert.NoError(t, doc.Validate())
	})
}
