package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// phaseRecorder appends its phase name to a shared trace
type phaseRecorder struct {
	name  string
	trace *[]string
	dts   []float64
}

func (p *phaseRecorder) FixedUpdate(dt float64) {
	*p.trace = append(*p.trace, p.name+".fixed")
	p.dts = append(p.dts, dt)
}

func (p *phaseRecorder) Update(float64) {
	*p.trace = append(*p.trace, p.name+".update")
}

func (p *phaseRecorder) LateUpdate(float64) {
	*p.trace = append(*p.trace, p.name+".late")
}

type updateOnly struct{ calls int }

func (u *updateOnly) Update(float64) { u.calls++ }

func newTestLoop(t *testing.T, cfg LoopConfig) (*Loop, *ManualClock) {
	t.Helper()
	mc := NewManualClock(epoch)
	return NewLoop(cfg, NewPausableClock(mc), zap.NewNop()), mc
}

func TestPausableClock(t *testing.T) {
	mc := NewManualClock(epoch)
	pc := NewPausableClock(mc)

	mc.Advance(time.Second)
	assert.Equal(t, epoch.Add(time.Second), pc.Now())

	pc.Pause()
	assert.True(t, pc.IsPaused())
	mc.Advance(2 * time.Second)
	assert.Equal(t, epoch.Add(time.Second), pc.Now(), "game time frozen while paused")
	assert.Equal(t, epoch.Add(3*time.Second), pc.RealTime(), "real time keeps running")
	assert.Equal(t, 2*time.Second, pc.TotalPauseDuration())

	// Scale changes while paused apply after resume
	pc.SetScale(0.5)
	mc.Advance(time.Second)
	assert.Equal(t, epoch.Add(time.Second), pc.Now())

	pc.Resume()
	assert.False(t, pc.IsPaused())
	mc.Advance(2 * time.Second)
	assert.Equal(t, epoch.Add(2*time.Second), pc.Now())
	assert.Equal(t, 3*time.Second, pc.TotalPauseDuration())

	pc.SetScale(-1)
	assert.Equal(t, 0.0, pc.Scale())
	mc.Advance(time.Hour)
	assert.Equal(t, epoch.Add(2*time.Second), pc.Now())
	assert.Same(t, TimeProvider(mc), pc.Unscaled())
}

func TestSchedulerRunsInDueOrder(t *testing.T) {
	mc := NewManualClock(epoch)
	s := NewScheduler(mc)

	var order []string
	s.After(50*time.Millisecond, func() { order = append(order, "b") })
	s.After(10*time.Millisecond, func() { order = append(order, "a") })
	s.After(50*time.Millisecond, func() { order = append(order, "c") })
	require.Equal(t, 3, s.Pending())

	assert.Equal(t, 0, s.RunDue())

	mc.Advance(10 * time.Millisecond)
	assert.Equal(t, 1, s.RunDue())

	mc.Advance(40 * time.Millisecond)
	assert.Equal(t, 2, s.RunDue())
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, s.Pending())
}

func TestSchedulerCancel(t *testing.T) {
	mc := NewManualClock(epoch)
	s := NewScheduler(mc)

	ran := false
	timer := s.After(time.Millisecond, func() { ran = true })
	assert.True(t, timer.Cancel())
	assert.False(t, timer.Cancel())
	assert.Equal(t, 0, s.Pending())

	mc.Advance(time.Second)
	assert.Equal(t, 0, s.RunDue())
	assert.False(t, ran)

	done := s.After(0, func() {})
	s.RunDue()
	assert.True(t, done.Fired())
	assert.False(t, done.Cancel(), "fired timers cannot be cancelled")
}

func TestSchedulerNestedScheduleWaits(t *testing.T) {
	mc := NewManualClock(epoch)
	s := NewScheduler(mc)

	inner := 0
	s.After(0, func() {
		s.After(0, func() { inner++ })
	})

	assert.Equal(t, 1, s.RunDue())
	assert.Equal(t, 0, inner)
	assert.Equal(t, 1, s.RunDue())
	assert.Equal(t, 1, inner)
}

func TestLoopPhaseOrder(t *testing.T) {
	loop, _ := newTestLoop(t, LoopConfig{FixedStep: 20 * time.Millisecond, MaxFixedSteps: 5})

	var trace []string
	a := &phaseRecorder{name: "a", trace: &trace}
	b := &phaseRecorder{name: "b", trace: &trace}
	require.NoError(t, loop.Register(a, b))

	loop.Scheduler().After(0, func() { trace = append(trace, "deferred") })
	loop.Frame(45 * time.Millisecond)

	assert.Equal(t, []string{
		"a.fixed", "b.fixed",
		"a.fixed", "b.fixed",
		"deferred",
		"a.update", "b.update",
		"a.late", "b.late",
	}, trace)
	assert.Equal(t, []float64{0.02, 0.02}, a.dts)
	assert.InDelta(t, 0.25, loop.Alpha(), 1e-9)
}

func TestLoopAccumulatesAcrossFrames(t *testing.T) {
	loop, _ := newTestLoop(t, LoopConfig{FixedStep: 20 * time.Millisecond, MaxFixedSteps: 5})

	var trace []string
	r := &phaseRecorder{name: "r", trace: &trace}
	require.NoError(t, loop.Register(r))

	// Short frames still produce a step once enough time accumulates
	loop.Frame(8 * time.Millisecond)
	loop.Frame(8 * time.Millisecond)
	assert.Equal(t, uint64(0), loop.FixedSteps())
	loop.Frame(8 * time.Millisecond)
	assert.Equal(t, uint64(1), loop.FixedSteps())
	assert.Equal(t, uint64(3), loop.Frames())
}

func TestLoopDropsBacklog(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	loop := NewLoop(LoopConfig{FixedStep: 10 * time.Millisecond, MaxFixedSteps: 3},
		NewPausableClock(NewManualClock(epoch)), zap.New(core))

	var trace []string
	require.NoError(t, loop.Register(&phaseRecorder{name: "r", trace: &trace}))

	loop.Frame(time.Second)
	assert.Equal(t, uint64(3), loop.FixedSteps())
	assert.Equal(t, 0.0, loop.Alpha())
	assert.Equal(t, 1, logs.FilterMessage("fixed step backlog dropped").Len())
}

func TestLoopRegisterRejectsNonSystems(t *testing.T) {
	loop, _ := newTestLoop(t, DefaultLoopConfig())

	u := &updateOnly{}
	require.NoError(t, loop.Register(u))
	assert.ErrorIs(t, loop.Register(struct{}{}), ErrNotSystem)

	loop.Frame(0)
	assert.Equal(t, 1, u.calls)
}
