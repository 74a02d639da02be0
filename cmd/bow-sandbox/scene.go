package main

import (
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/archery/arrow"
	"github.com/lixenwraith/archery/audio"
	"github.com/lixenwraith/archery/bow"
	"github.com/lixenwraith/archery/config"
	"github.com/lixenwraith/archery/engine"
	"github.com/lixenwraith/archery/feedback"
	"github.com/lixenwraith/archery/interaction"
	"github.com/lixenwraith/archery/parameter"
	"github.com/lixenwraith/archery/physics"
	"github.com/lixenwraith/archery/rig"
	"github.com/lixenwraith/archery/status"
	"github.com/lixenwraith/archery/telemetry"
	"github.com/lixenwraith/archery/vmath"
)

// Scene layout in metres; the bow faces +Z, the side view shows Z across and Y up
var (
	bowOrigin = mgl64.Vec3{0, 1.0, 0}
	handStart = mgl64.Vec3{0, 1.0, -0.5}
)

// maxShots bounds the arrows kept on screen
const maxShots = 8

// shot is one arrow and the body it flies with
type shot struct {
	arrow  *arrow.Arrow
	body   *physics.RigidBody
	shaft  *interaction.Surface
	landed bool
}

// scene owns the simulated rig; every method runs on the frame goroutine
type scene struct {
	doc    config.Document
	logger *zap.Logger

	loop      *engine.Loop
	bow       *bow.Bow
	bowGrab   *interaction.Grabbable
	bowString *interaction.Surface
	coord     *rig.Coordinator
	hand      *interaction.Hand
	throttler *feedback.Throttler

	audio   feedback.AudioSink
	haptics *hapticMeter
	hub     *telemetry.Hub
	metrics *status.Registry

	shots    []*shot
	launches int

	status   string
	statusAt time.Time
}

// newScene builds the rig on clock; sink and hub may be nil
func newScene(doc config.Document, clock *engine.PausableClock, sink feedback.AudioSink, hub *telemetry.Hub, logger *zap.Logger) (*scene, error) {
	s := &scene{
		doc:     doc,
		logger:  logger,
		loop:    engine.NewLoop(doc.LoopConfig(), clock, logger.Named("loop")),
		audio:   sink,
		haptics: &hapticMeter{logger: logger.Named("haptics")},
		hub:     hub,
		metrics: status.NewRegistry(),
	}

	bowCfg := doc.BowConfig()
	bowCfg.TranslationResistance = doc.Bow.TranslationResistance.Bake(parameter.CurveLUTSize)
	bowCfg.AimingResistance = doc.Bow.AimingResistance.Bake(parameter.CurveLUTSize)
	s.bow = bow.New(bowCfg, vmath.PoseAt(bowOrigin), logger.Named("bow"))
	s.bowGrab = interaction.NewGrabbable(nil)
	s.bowString = interaction.NewSurface("string", s.bowGrab)
	s.coord = rig.New(s.bow, s.bowGrab, []*interaction.Surface{s.bowString}, logger.Named("rig"))
	s.coord.OnLaunch(s.onLaunch)

	fbCfg := doc.FeedbackConfig()
	fbCfg.Pitch = doc.Feedback.Pitch.Bake(parameter.CurveLUTSize)
	fbCfg.Step = doc.Feedback.Step.Bake(parameter.CurveLUTSize)
	s.throttler = feedback.NewThrottler(fbCfg, s.loop.Clock().Unscaled(), s.loop.Scheduler(),
		sink, s.haptics, logger.Named("feedback"))
	s.bow.SetStretchListener(s.throttler)

	s.hand = interaction.NewHand(s.bowString)
	s.hand.MoveTo(vmath.PoseAt(handStart))

	// Phase order: arrow kicks and flight, nock zone, bow draw, nock pinning, metrics, telemetry
	if err := s.loop.Register(flightSystem{s}, nockZone{s}, s.coord, newMetricsTap(s), telemetryTap{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// spawnArrow places a new arrow in an empty hand
func (s *scene) spawnArrow() {
	if s.hand.IsSelecting() {
		return
	}

	pose := vmath.PoseAt(s.hand.Pose().Position)
	body := physics.NewRigidBody(pose, s.doc.Arrow.Mass)
	grab := interaction.NewGrabbable(body)
	shaft := interaction.NewSurface("shaft", grab)

	cfg := s.doc.ArrowConfig()
	cfg.Surfaces = []*interaction.Surface{shaft}
	a := arrow.New(cfg, body, body, grab, s.logger.Named("arrow"))
	a.Enable()

	s.hand.AddReach(shaft)
	s.hand.Select(shaft)
	s.shots = append(s.shots, &shot{arrow: a, body: body, shaft: shaft})
	s.trim()
	s.setStatus("arrow in hand")
}

// trim drops the oldest arrows that are no longer in play
func (s *scene) trim() {
	for len(s.shots) > maxShots {
		i := -1
		for j, sh := range s.shots {
			if sh.arrow.State() != arrow.Nocked && s.hand.Selected() != sh.shaft {
				i = j
				break
			}
		}
		if i < 0 {
			return
		}
		s.shots[i].arrow.Disable()
		s.shots = append(s.shots[:i], s.shots[i+1:]...)
	}
}

// grip selects the string when the hand is at the nock, otherwise takes a new arrow
// With something held it lets go instead
func (s *scene) grip() {
	if s.hand.IsSelecting() {
		if s.hand.Release() {
			s.setStatus("released")
		}
		return
	}
	if vmath.Distance(s.hand.Pose().Position, s.bow.NockPose().Position) <= s.doc.Bow.NockZoneRadius {
		s.hand.Select(s.bowString)
		s.setStatus("string in hand")
		return
	}
	s.spawnArrow()
}

func (s *scene) moveHand(delta mgl64.Vec3) {
	p := s.hand.Pose()
	p.Position = p.Position.Add(delta)
	s.hand.MoveTo(p)
}

func (s *scene) onLaunch(_ rig.Nockable, force mgl64.Vec3) {
	s.launches++
	if s.audio != nil {
		s.audio.PlayOneShot(audio.ClipRelease, 1, 1)
	}
	s.logger.Info("loosed", zap.Float64("speed", force.Len()), zap.Int("launches", s.launches))
	s.setStatus("loosed")

	s.loop.Scheduler().After(parameter.HandReleaseHold, s.spawnArrow)
}

func (s *scene) setStatus(msg string) {
	s.status = msg
	s.statusAt = s.loop.Clock().RealTime()
}

// statusText returns the current message until it times out
func (s *scene) statusText() string {
	if s.status == "" || s.loop.Clock().RealTime().Sub(s.statusAt) > parameter.StatusMessageTimeout {
		return ""
	}
	return s.status
}

// toggleSlowMotion switches the game clock between full rate and SlowMotionScale
func (s *scene) toggleSlowMotion() {
	clock := s.loop.Clock()
	if clock.Scale() < 1 {
		clock.SetScale(1)
		s.setStatus("full speed")
		return
	}
	clock.SetScale(parameter.SlowMotionScale)
	s.setStatus("slow motion")
}

func (s *scene) togglePause() {
	clock := s.loop.Clock()
	if clock.IsPaused() {
		clock.Resume()
		s.setStatus("resumed")
		return
	}
	clock.Pause()
	s.setStatus("paused")
}

func (s *scene) snapshot() telemetry.Snapshot {
	arrows := make([]*arrow.Arrow, len(s.shots))
	for i, sh := range s.shots {
		arrows[i] = sh.arrow
	}
	return telemetry.Capture(s.loop.Frames(), s.coord, arrows...)
}

// renderPosition places a flying arrow between fixed steps, alpha of a step ahead of its body
func (sh *shot) renderPosition(alpha float64, step time.Duration) mgl64.Vec3 {
	if sh.landed || sh.arrow.State() != arrow.Launched {
		return sh.arrow.Pose().Position
	}
	return sh.body.Position.Add(sh.body.Velocity.Mul(alpha * step.Seconds()))
}

// flightSystem applies pending kicks and flies launched arrows until they reach the ground
type flightSystem struct{ s *scene }

func (f flightSystem) FixedUpdate(dt float64) {
	for _, sh := range f.s.shots {
		sh.arrow.FixedUpdate(dt)
		if sh.landed || sh.arrow.State() != arrow.Launched {
			continue
		}
		sh.body.Integrate(dt)
		if sh.body.Position.Y() <= 0 {
			sh.body.Position[1] = 0
			sh.body.Stop()
			sh.landed = true
			f.s.logger.Debug("arrow landed", zap.Stringer("arrow", sh.arrow.ID()), zap.Float64("range", sh.body.Position.Z()))
		}
	}
}

// nockZone reports arrows whose tail reaches the bow's nock as trigger entries
type nockZone struct{ s *scene }

func (n nockZone) Update(dt float64) {
	s := n.s
	if s.coord.Loaded() != nil {
		return
	}
	nock := s.bow.NockPose().Position
	for _, sh := range s.shots {
		if sh.arrow.State() != arrow.Free {
			continue
		}
		if vmath.Distance(sh.arrow.TailPose().Position, nock) > s.doc.Bow.NockZoneRadius {
			continue
		}
		if s.coord.OnTriggerEnter(sh.arrow) {
			s.setStatus("nocked")
			return
		}
	}
}

// playCounter is implemented by sinks that count what they played
type playCounter interface {
	Played() uint64
	Dropped() uint64
}

// metricsTap mirrors rig state into the registry once per frame
type metricsTap struct {
	s *scene

	tension, splay  *status.Gauge
	state           *status.Label
	frames, fixed   *atomic.Uint64
	launches, fired *atomic.Uint64
	played, dropped *atomic.Uint64
}

func newMetricsTap(s *scene) *metricsTap {
	reg := s.metrics
	return &metricsTap{
		s:        s,
		tension:  reg.Gauges.Get(status.BowTension),
		splay:    reg.Gauges.Get(status.BowSplay),
		state:    reg.Labels.Get(status.RigState),
		frames:   reg.Counters.Get(status.LoopFrames),
		fixed:    reg.Counters.Get(status.LoopFixedSteps),
		launches: reg.Counters.Get(status.RigLaunches),
		fired:    reg.Counters.Get(status.FeedbackFired),
		played:   reg.Counters.Get(status.AudioPlayed),
		dropped:  reg.Counters.Get(status.AudioDropped),
	}
}

func (m *metricsTap) LateUpdate(dt float64) {
	s := m.s
	m.tension.Set(s.bow.Tension())
	m.splay.Set(s.bow.Splay())
	m.state.Set(s.rigState())
	m.frames.Store(s.loop.Frames())
	m.fixed.Store(s.loop.FixedSteps())
	m.launches.Store(uint64(s.launches))
	m.fired.Store(s.throttler.Fired())
	if pc, ok := s.audio.(playCounter); ok {
		m.played.Store(pc.Played())
		m.dropped.Store(pc.Dropped())
	}
}

// rigState names what the bow is doing
func (s *scene) rigState() string {
	switch {
	case s.coord.Loaded() != nil && s.bow.Grabbed():
		return "drawing"
	case s.coord.Loaded() != nil:
		return "nocked"
	case s.bow.Grabbed():
		return "string held"
	}
	return "empty"
}

// telemetryTap publishes snapshots at the configured rate
type telemetryTap struct{ s *scene }

func (t telemetryTap) LateUpdate(dt float64) {
	if t.s.hub == nil {
		return
	}
	t.s.hub.Tick(time.Duration(dt*float64(time.Second)), t.s.snapshot)
}

// hapticMeter stands in for controller motors and keeps the last levels for display
type hapticMeter struct {
	low, high float64
	devices   feedback.Controller
	pulses    uint64
	logger    *zap.Logger
}

func (h *hapticMeter) SetVibration(low, high float64, devices feedback.Controller) {
	h.low, h.high, h.devices = low, high, devices
	if low > 0 || high > 0 {
		h.pulses++
		h.logger.Debug("vibration", zap.Float64("low", low), zap.Float64("high", high), zap.Uint8("devices", uint8(devices)))
	}
}
