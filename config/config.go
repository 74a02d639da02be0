// Package config loads the bow rig tuning from YAML with environment overrides
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/archery/arrow"
	"github.com/lixenwraith/archery/audio"
	"github.com/lixenwraith/archery/bow"
	"github.com/lixenwraith/archery/curve"
	"github.com/lixenwraith/archery/engine"
	"github.com/lixenwraith/archery/feedback"
	"github.com/lixenwraith/archery/logging"
	"github.com/lixenwraith/archery/parameter"
	"github.com/lixenwraith/archery/physics"
	"github.com/lixenwraith/archery/vmath"
)

var ErrInvalid = errors.New("invalid configuration")

// Pose is a position plus XYZ euler angles in degrees
type Pose struct {
	Position [3]float64 `yaml:"position"`
	Rotation [3]float64 `yaml:"rotation,omitempty"`
}

// Pose converts to a unit rotation pose
func (p Pose) Pose() vmath.Pose {
	q := mgl64.AnglesToQuat(
		mgl64.DegToRad(p.Rotation[0]),
		mgl64.DegToRad(p.Rotation[1]),
		mgl64.DegToRad(p.Rotation[2]),
		mgl64.XYZ,
	)
	return vmath.NewPose(mgl64.Vec3(p.Position), q)
}

type Spring struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
}

type Bow struct {
	Rest                  Pose         `yaml:"rest"`
	Nock                  Pose         `yaml:"nock"`
	DrawPlaneNormal       [3]float64   `yaml:"draw_plane_normal"`
	RubberAngle           float64      `yaml:"rubber_angle"` // degrees
	LaunchStrength        float64      `yaml:"launch_strength"`
	NockZoneRadius        float64      `yaml:"nock_zone_radius"`
	Spring                Spring       `yaml:"spring"`
	TranslationResistance *curve.Curve `yaml:"translation_resistance"`
	AimingResistance      *curve.Curve `yaml:"aiming_resistance"`
}

type Arrow struct {
	Length   float64 `yaml:"length"`
	TailBias float64 `yaml:"tail_bias"`
	Mass     float64 `yaml:"mass"`
}

type Feedback struct {
	MinInterval time.Duration `yaml:"min_interval"`
	Clip        string        `yaml:"clip"`
	Pitch       *curve.Curve  `yaml:"pitch"`
	Step        *curve.Curve  `yaml:"step"`
	LowGain     float64       `yaml:"low_gain"`
	HighGain    float64       `yaml:"high_gain"`
}

type Audio struct {
	Enabled      bool          `yaml:"enabled"`
	SampleRate   int           `yaml:"sample_rate"`
	Buffer       time.Duration `yaml:"buffer"`
	MasterVolume float64       `yaml:"master_volume"`
}

type Loop struct {
	FixedStep     time.Duration `yaml:"fixed_step"`
	MaxFixedSteps int           `yaml:"max_fixed_steps"`
	FrameInterval time.Duration `yaml:"frame_interval"`
}

type Log struct {
	Level  string   `yaml:"level"`
	Format string   `yaml:"format"`
	Output []string `yaml:"output,omitempty"`
}

type Telemetry struct {
	Addr     string        `yaml:"addr"` // empty disables the server
	Interval time.Duration `yaml:"interval"`
}

// Document is the whole configuration file
type Document struct {
	Bow       Bow       `yaml:"bow"`
	Arrow     Arrow     `yaml:"arrow"`
	Feedback  Feedback  `yaml:"feedback"`
	Audio     Audio     `yaml:"audio"`
	Loop      Loop      `yaml:"loop"`
	Log       Log       `yaml:"log"`
	Telemetry Telemetry `yaml:"telemetry"`
}

// overrides lists the environment variables applied after the file
type overrides struct {
	LaunchStrength float64 `env:"ARCHERY_LAUNCH_STRENGTH"`
	Spring         float64 `env:"ARCHERY_SPRING"`
	Damping        float64 `env:"ARCHERY_DAMPING"`
	LogLevel       string  `env:"ARCHERY_LOG_LEVEL"`
	AudioEnabled   bool    `env:"ARCHERY_AUDIO_ENABLED"`
	TelemetryAddr  string  `env:"ARCHERY_TELEMETRY_ADDR"`
}

// Default returns the tuned configuration
func Default() Document {
	return Document{
		Bow: Bow{
			Rest:                  Pose{},
			Nock:                  Pose{Position: [3]float64{0, 0, parameter.NockOffsetZ}},
			DrawPlaneNormal:       [3]float64{1, 0, 0},
			RubberAngle:           parameter.RubberAngleDegrees,
			LaunchStrength:        parameter.LaunchStrength,
			NockZoneRadius:        parameter.NockZoneRadius,
			Spring:                Spring{Stiffness: parameter.SpringForce, Damping: parameter.SpringDamping},
			TranslationResistance: curve.Linear(parameter.TranslationResistanceKeys...),
			AimingResistance:      curve.Linear(parameter.AimingResistanceKeys...),
		},
		Arrow: Arrow{
			Length:   parameter.ArrowLength,
			TailBias: parameter.ArrowTailBias,
			Mass:     parameter.ArrowMass,
		},
		Feedback: Feedback{
			MinInterval: parameter.TensionStepLength,
			Clip:        parameter.StretchClipName,
			Pitch:       curve.Linear(parameter.StretchPitchKeys...),
			Step:        curve.Linear(parameter.StretchStepKeys...),
			LowGain:     parameter.HapticLowGain,
			HighGain:    parameter.HapticHighGain,
		},
		Audio: Audio{
			Enabled:      true,
			SampleRate:   parameter.AudioSampleRate,
			Buffer:       parameter.AudioBufferDuration,
			MasterVolume: parameter.AudioMasterVolume,
		},
		Loop: Loop{
			FixedStep:     parameter.FixedStepInterval,
			MaxFixedSteps: parameter.MaxFixedStepsPerFrame,
			FrameInterval: parameter.FrameUpdateInterval,
		},
		Log: Log{
			Level:  parameter.LogLevel,
			Format: logging.FormatJSON,
		},
		Telemetry: Telemetry{
			Interval: parameter.TelemetryPublishInterval,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and validates
// An empty path skips the file
func Load(path string) (Document, error) {
	doc := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return doc, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		if doc, err = Decode(f); err != nil {
			return doc, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := doc.ApplyEnv(); err != nil {
		return doc, err
	}
	if err := doc.Validate(); err != nil {
		return doc, err
	}
	return doc, nil
}

// Decode reads a YAML document over the defaults; absent keys keep their default
func Decode(r io.Reader) (Document, error) {
	doc := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return doc, fmt.Errorf("decode config: %w", err)
	}
	return doc, nil
}

// ApplyEnv overwrites fields from ARCHERY_* environment variables that are set
func (d *Document) ApplyEnv() error {
	o := overrides{
		LaunchStrength: d.Bow.LaunchStrength,
		Spring:         d.Bow.Spring.Stiffness,
		Damping:        d.Bow.Spring.Damping,
		LogLevel:       d.Log.Level,
		AudioEnabled:   d.Audio.Enabled,
		TelemetryAddr:  d.Telemetry.Addr,
	}
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	d.Bow.LaunchStrength = o.LaunchStrength
	d.Bow.Spring.Stiffness = o.Spring
	d.Bow.Spring.Damping = o.Damping
	d.Log.Level = o.LogLevel
	d.Audio.Enabled = o.AudioEnabled
	d.Telemetry.Addr = o.TelemetryAddr
	return nil
}

// Validate rejects values that would make the rig diverge or misbehave
func (d Document) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(d.Bow.Spring.Stiffness > 0, "bow.spring.stiffness %v must be positive", d.Bow.Spring.Stiffness)
	check(d.Bow.Spring.Damping > 0 && d.Bow.Spring.Damping < 1, "bow.spring.damping %v outside (0,1)", d.Bow.Spring.Damping)
	check(d.Bow.LaunchStrength >= 0, "bow.launch_strength %v is negative", d.Bow.LaunchStrength)
	check(d.Bow.NockZoneRadius > 0, "bow.nock_zone_radius %v must be positive", d.Bow.NockZoneRadius)
	check(mgl64.Vec3(d.Bow.DrawPlaneNormal).Len() > vmath.Epsilon, "bow.draw_plane_normal is zero")
	check(d.Bow.TranslationResistance != nil, "bow.translation_resistance missing")
	check(d.Bow.AimingResistance != nil, "bow.aiming_resistance missing")
	check(d.Arrow.Length > 0, "arrow.length %v must be positive", d.Arrow.Length)
	check(d.Arrow.Mass > 0, "arrow.mass %v must be positive", d.Arrow.Mass)
	check(d.Feedback.MinInterval > 0, "feedback.min_interval %v must be positive", d.Feedback.MinInterval)
	check(d.Loop.FixedStep > 0, "loop.fixed_step %v must be positive", d.Loop.FixedStep)
	check(d.Loop.MaxFixedSteps > 0, "loop.max_fixed_steps %d must be positive", d.Loop.MaxFixedSteps)
	check(d.Loop.FrameInterval > 0, "loop.frame_interval %v must be positive", d.Loop.FrameInterval)

	if d.Audio.Enabled {
		if err := d.AudioConfig().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("audio: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// BowConfig builds the bow controller configuration
func (d Document) BowConfig() bow.Config {
	return bow.Config{
		Rest:            d.Bow.Rest.Pose(),
		Nock:            d.Bow.Nock.Pose(),
		DrawPlaneNormal: mgl64.Vec3(d.Bow.DrawPlaneNormal),
		RubberAngle:     mgl64.DegToRad(d.Bow.RubberAngle),
		LaunchStrength:  d.Bow.LaunchStrength,
		Spring: physics.SpringReturn{
			Stiffness: d.Bow.Spring.Stiffness,
			Damping:   d.Bow.Spring.Damping,
		},
		TranslationResistance: d.Bow.TranslationResistance,
		AimingResistance:      d.Bow.AimingResistance,
	}
}

// ArrowConfig builds the arrow geometry; surfaces are wired by the caller
func (d Document) ArrowConfig() arrow.Config {
	return arrow.Config{Length: d.Arrow.Length, TailBias: d.Arrow.TailBias}
}

// FeedbackConfig builds the throttler configuration for both controllers
func (d Document) FeedbackConfig() feedback.Config {
	return feedback.Config{
		MinInterval: d.Feedback.MinInterval,
		Clip:        d.Feedback.Clip,
		Pitch:       d.Feedback.Pitch,
		Step:        d.Feedback.Step,
		LowGain:     d.Feedback.LowGain,
		HighGain:    d.Feedback.HighGain,
		Devices:     feedback.Touch,
	}
}

func (d Document) AudioConfig() audio.Config {
	return audio.Config{
		Enabled:      d.Audio.Enabled,
		SampleRate:   d.Audio.SampleRate,
		BufferSize:   d.Audio.Buffer,
		MasterVolume: d.Audio.MasterVolume,
	}
}

func (d Document) LoopConfig() engine.LoopConfig {
	return engine.LoopConfig{
		FixedStep:     d.Loop.FixedStep,
		MaxFixedSteps: d.Loop.MaxFixedSteps,
		FrameInterval: d.Loop.FrameInterval,
	}
}

func (d Document) LogOptions() logging.Options {
	return logging.Options{
		Level:  d.Log.Level,
		Format: d.Log.Format,
		Output: d.Log.Output,
	}
}
