package parameter

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the sandbox frame rate interval (~60 FPS)
	FrameUpdateInterval = time.Second / 60

	// FixedStepInterval is the physics phase step (50 Hz), decoupled from frame rate
	FixedStepInterval = 20 * time.Millisecond

	// MaxFixedStepsPerFrame caps physics catch-up; backlog beyond it is dropped
	MaxFixedStepsPerFrame = 5
)

// Telemetry
const (
	// TelemetryAddr is the listen address the sandbox uses when telemetry is requested without one
	TelemetryAddr = "127.0.0.1:8787"

	// TelemetryPath is the websocket upgrade endpoint
	TelemetryPath = "/ws"

	// TelemetryStatusPath serves the metrics registry as JSON
	TelemetryStatusPath = "/status"

	// TelemetryWriteTimeout bounds a single frame write to one viewer
	TelemetryWriteTimeout = 250 * time.Millisecond

	// TelemetryPublishInterval throttles snapshot broadcast
	TelemetryPublishInterval = 50 * time.Millisecond

	// TelemetryMaxViewers caps concurrent websocket viewers
	TelemetryMaxViewers = 8
)

// Logging
const (
	// LogLevel is the default zap level name
	LogLevel = "info"

	// LogFile is where the sandbox writes logs so the terminal stays clean
	LogFile = "bow-sandbox.log"
)
