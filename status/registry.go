// Package status holds live rig metrics written by the frame loop and read by observers
package status

import "sync/atomic"

// Metric names published by the sandbox
const (
	BowTension       = "bow.tension"
	BowSplay         = "bow.splay"
	RigState         = "rig.state"
	RigLaunches      = "rig.launches"
	FeedbackFired    = "feedback.fired"
	AudioPlayed      = "audio.played"
	AudioDropped     = "audio.dropped"
	LoopFrames       = "loop.frames"
	LoopFixedSteps   = "loop.fixed_steps"
	TelemetryViewers = "telemetry.viewers"
)

// Registry groups metrics by kind
// Writers cache the pointers returned by Get and update them lock-free
type Registry struct {
	Counters *MetricMap[atomic.Uint64]
	Gauges   *MetricMap[Gauge]
	Labels   *MetricMap[Label]
}

func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Uint64](),
		Gauges:   NewMetricMap[Gauge](),
		Labels:   NewMetricMap[Label](),
	}
}

// Values flattens every metric into one map keyed by name
func (r *Registry) Values() map[string]any {
	out := make(map[string]any, r.Len())
	r.Counters.Range(func(k string, c *atomic.Uint64) { out[k] = c.Load() })
	r.Gauges.Range(func(k string, g *Gauge) { out[k] = g.Get() })
	r.Labels.Range(func(k string, l *Label) { out[k] = l.Get() })
	return out
}

// Len returns the number of metrics of every kind
func (r *Registry) Len() int {
	return r.Counters.Len() + r.Gauges.Len() + r.Labels.Len()
}
