package telemetry

import (
	"time"

	"github.com/lixenwraith/archery/parameter"
)

// Config holds telemetry server configuration
type Config struct {
	// Address to bind, empty disables the server
	Addr string

	// Upgrade endpoint
	Path string

	// Metrics endpoint, served only when the hub has a registry
	StatusPath string

	// Connection limits
	MaxViewers int

	// Timing
	WriteTimeout    time.Duration
	PublishInterval time.Duration
}

// DefaultConfig returns a local-only server at the default address
func DefaultConfig() Config {
	return Config{
		Addr:            parameter.TelemetryAddr,
		Path:            parameter.TelemetryPath,
		StatusPath:      parameter.TelemetryStatusPath,
		MaxViewers:      parameter.TelemetryMaxViewers,
		WriteTimeout:    parameter.TelemetryWriteTimeout,
		PublishInterval: parameter.TelemetryPublishInterval,
	}
}
