package bow

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/archery/curve"
	"github.com/lixenwraith/archery/interaction"
	"github.com/lixenwraith/archery/physics"
	"github.com/lixenwraith/archery/vmath"
)

type recordingLauncher struct{ forces []mgl64.Vec3 }

func (r *recordingLauncher) Eject(force mgl64.Vec3) { r.forces = append(r.forces, force) }

type recordingStretch struct{ tensions []float64 }

func (r *recordingStretch) OnStretch(t float64) bool {
	r.tensions = append(r.tensions, t)
	return true
}

// testConfig draws freely along any direction unless a test overrides resistance
func testConfig() Config {
	return Config{
		Rest:                  vmath.IdentityPose(),
		Nock:                  vmath.PoseAt(mgl64.Vec3{0, 0, -0.05}),
		DrawPlaneNormal:       vmath.Right,
		RubberAngle:           mgl64.DegToRad(60),
		LaunchStrength:        10,
		Spring:                physics.SpringReturn{Stiffness: 0.1, Damping: 0.95},
		TranslationResistance: curve.Constant(100),
		AimingResistance:      curve.Constant(0),
	}
}

// drawTo begins at the bow origin and pulls the grab to position in one step
func drawTo(b *Bow, position mgl64.Vec3, dt float64) float64 {
	b.BeginDraw(b.WorldPose(), b.WorldPose())
	return b.UpdateDraw(vmath.NewPose(position, b.WorldPose().Rotation), b.Parent(), dt)
}

func TestLaunchImpulse(t *testing.T) {
	b := New(testConfig(), vmath.IdentityPose(), nil)
	arrow := &recordingLauncher{}
	require.NoError(t, b.Load(arrow))

	tension := drawTo(b, mgl64.Vec3{0, 0, -0.3}, 1)
	assert.InDelta(t, 0.3, tension, 1e-12)
	assert.True(t, vmath.Vec3ApproxEqual(mgl64.Vec3{0, 0, -0.3}, b.LocalPose().Position, 1e-12))

	force, ok := b.EndDraw()
	require.True(t, ok)
	assert.True(t, vmath.Vec3ApproxEqual(mgl64.Vec3{0, 0, 3}, force, 1e-9), "got %v", force)
	require.Len(t, arrow.forces, 1)
	assert.Equal(t, force, arrow.forces[0])
	assert.Nil(t, b.Loaded())
}

func TestLaunchImpulseFollowsParentFrame(t *testing.T) {
	parent := vmath.NewPose(vmath.Zero, vmath.AngleAxis(math.Pi/2, vmath.Up))
	b := New(testConfig(), parent, nil)
	arrow := &recordingLauncher{}
	require.NoError(t, b.Load(arrow))

	b.BeginDraw(vmath.IdentityPose(), b.WorldPose())
	b.UpdateDraw(vmath.PoseAt(mgl64.Vec3{-0.3, 0, 0}), parent, 1)
	assert.True(t, vmath.Vec3ApproxEqual(mgl64.Vec3{0, 0, -0.3}, b.LocalPose().Position, 1e-9))
	assert.True(t, vmath.QuatApproxEqual(mgl64.QuatIdent(), b.LocalPose().Rotation, 1e-6))

	force, ok := b.EndDraw()
	require.True(t, ok)
	assert.True(t, vmath.Vec3ApproxEqual(mgl64.Vec3{3, 0, 0}, force, 1e-9), "got %v", force)
}

func TestGrabOffsetUsesParentFrame(t *testing.T) {
	parent := vmath.PoseAt(mgl64.Vec3{1, 2, 3})
	b := New(testConfig(), parent, nil)

	grab := vmath.PoseAt(mgl64.Vec3{1, 2, 3.2})
	b.BeginDraw(grab, b.WorldPose())
	assert.InDelta(t, 0, b.UpdateDraw(grab, parent, 0.1), 1e-12, "holding still keeps rest")

	grab = vmath.PoseAt(mgl64.Vec3{1, 2, 3.1})
	assert.InDelta(t, 0.1, b.UpdateDraw(grab, parent, 0.1), 1e-9)
	assert.True(t, vmath.Vec3ApproxEqual(mgl64.Vec3{0, 0, -0.1}, b.LocalPose().Position, 1e-9))
	assert.True(t, vmath.Vec3ApproxEqual(mgl64.Vec3{1, 2, 2.9}, b.WorldPose().Position, 1e-9))
}

func TestDrawRateLimited(t *testing.T) {
	cfg := testConfig()
	resistance := curve.Linear([2]float64{0, 2}, [2]float64{1, 1})
	cfg.TranslationResistance = resistance
	b := New(cfg, vmath.IdentityPose(), nil)

	const dt = 0.1
	b.BeginDraw(vmath.IdentityPose(), b.WorldPose())

	old := b.Tension()
	for i := 0; i < 20; i++ {
		next := b.UpdateDraw(vmath.PoseAt(mgl64.Vec3{0, 0, -1}), vmath.IdentityPose(), dt)
		assert.GreaterOrEqual(t, next, 0.0)
		assert.LessOrEqual(t, next-old, resistance.Evaluate(old)*dt+1e-12, "step %d", i)
		if i == 0 {
			assert.InDelta(t, 0.2, next, 1e-12)
		}
		old = next
	}
	assert.InDelta(t, 1.0, old, 1e-9, "reaches the hand eventually")
}

func TestReleaseUnconstrained(t *testing.T) {
	cfg := testConfig()
	cfg.TranslationResistance = curve.Constant(0.5)
	b := New(cfg, vmath.IdentityPose(), nil)

	require.InDelta(t, 0.3, drawTo(b, mgl64.Vec3{0, 0, -0.3}, 1), 1e-12)

	// A draw step this short could only add 0.005, releasing jumps straight back
	got := b.UpdateDraw(vmath.PoseAt(mgl64.Vec3{0, 0, -0.05}), vmath.IdentityPose(), 0.01)
	assert.InDelta(t, 0.05, got, 1e-12)
}

func TestAimPulledIntoDrawPlane(t *testing.T) {
	cfg := testConfig()
	cfg.AimingResistance = curve.Constant(1)
	b := New(cfg, vmath.IdentityPose(), nil)

	tension := drawTo(b, mgl64.Vec3{0.1, 0, -0.3}, 1)
	assert.InDelta(t, math.Sqrt(0.1), tension, 1e-9)

	pos := b.LocalPose().Position
	assert.InDelta(t, 0, pos.X(), 1e-9, "off-plane component removed")
	assert.InDelta(t, -math.Sqrt(0.1), pos.Z(), 1e-9)
	assert.True(t, vmath.QuatApproxEqual(mgl64.QuatIdent(), b.LocalPose().Rotation, 1e-6))
}

func TestTensionNeverNegative(t *testing.T) {
	cfg := testConfig()
	cfg.TranslationResistance = curve.Linear([2]float64{0, 3}, [2]float64{0.6, 0.5})
	cfg.AimingResistance = curve.Linear([2]float64{0, 0}, [2]float64{0.5, 1.2})
	b := New(cfg, vmath.IdentityPose(), nil)
	rng := rand.New(rand.NewSource(7))

	b.BeginDraw(vmath.IdentityPose(), b.WorldPose())
	for i := 0; i < 500; i++ {
		p := mgl64.Vec3{rng.Float64() - 0.5, rng.Float64() - 0.5, -rng.Float64()}
		rot := vmath.AngleAxis(rng.Float64(), mgl64.Vec3{rng.Float64(), rng.Float64(), rng.Float64()})
		tension := b.UpdateDraw(vmath.NewPose(p, rot), vmath.IdentityPose(), 1.0/60)
		require.GreaterOrEqual(t, tension, 0.0)
		require.False(t, math.IsNaN(tension))
		require.InDelta(t, tension, b.Tension(), 1e-9)
	}
}

func TestSecondEndDrawNoImpulse(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	b := New(testConfig(), vmath.IdentityPose(), zap.New(core))
	arrow := &recordingLauncher{}
	require.NoError(t, b.Load(arrow))

	drawTo(b, mgl64.Vec3{0, 0, -0.2}, 1)
	_, ok := b.EndDraw()
	require.True(t, ok)

	force, ok := b.EndDraw()
	assert.False(t, ok)
	assert.Equal(t, vmath.Zero, force)
	assert.Len(t, arrow.forces, 1)
	assert.Equal(t, 1, logs.FilterMessage("draw end while not grabbed").Len())
}

func TestEndDrawWithoutArrow(t *testing.T) {
	b := New(testConfig(), vmath.IdentityPose(), nil)
	drawTo(b, mgl64.Vec3{0, 0, -0.2}, 1)

	_, ok := b.EndDraw()
	assert.False(t, ok)
	assert.False(t, b.Grabbed())
}

func TestUpdateWithoutGrabIgnored(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	b := New(testConfig(), vmath.IdentityPose(), zap.New(core))

	got := b.UpdateDraw(vmath.PoseAt(mgl64.Vec3{0, 0, -1}), vmath.IdentityPose(), 1)
	assert.Equal(t, 0.0, got)
	assert.Equal(t, vmath.IdentityPose(), b.LocalPose())
	assert.Equal(t, 1, logs.FilterMessage("draw update while not grabbed").Len())
}

func TestLoadRefusesSecondArrow(t *testing.T) {
	b := New(testConfig(), vmath.IdentityPose(), nil)
	first, second := &recordingLauncher{}, &recordingLauncher{}

	require.NoError(t, b.Load(first))
	assert.ErrorIs(t, b.Load(second), ErrLoaded)
	assert.Same(t, first, b.Loaded())
}

func TestGuidesSplay(t *testing.T) {
	b := New(testConfig(), vmath.IdentityPose(), nil)
	left, right := b.Guides()
	assert.True(t, vmath.QuatApproxEqual(mgl64.QuatIdent(), left, 1e-9))
	assert.True(t, vmath.QuatApproxEqual(mgl64.QuatIdent(), right, 1e-9))

	b.BeginDraw(vmath.IdentityPose(), b.WorldPose())
	assert.InDelta(t, math.Pi/3, b.Splay(), 1e-12)
	left, right = b.Guides()
	assert.True(t, vmath.QuatApproxEqual(vmath.AngleAxis(math.Pi/3, vmath.Up), right, 1e-9))
	assert.True(t, vmath.QuatApproxEqual(vmath.AngleAxis(-math.Pi/3, vmath.Up), left, 1e-9))
	assert.InDelta(t, 2*math.Pi/3, vmath.QuatAngle(left, right), 1e-6)

	b.EndDraw()
	assert.Equal(t, 0.0, b.Splay())
}

func TestStretchListenerReceivesTension(t *testing.T) {
	b := New(testConfig(), vmath.IdentityPose(), nil)
	rec := &recordingStretch{}
	b.SetStretchListener(rec)

	got := drawTo(b, mgl64.Vec3{0, 0, -0.25}, 1)
	assert.Equal(t, []float64{got}, rec.tensions)
}

func TestIdleReturnsToRest(t *testing.T) {
	b := New(testConfig(), vmath.IdentityPose(), nil)
	drawTo(b, mgl64.Vec3{0, 0, -0.3}, 1)

	// Held bows do not spring back
	b.Idle(1.0 / 60)
	assert.InDelta(t, 0.3, b.Tension(), 1e-12)

	b.EndDraw()
	for i := 0; i < 3000; i++ {
		b.Idle(1.0 / 60)
	}
	assert.Less(t, b.Tension(), 1e-6)
	assert.True(t, b.LocalPose().ApproxEqual(vmath.IdentityPose(), 1e-6, 1e-4))
}

func TestBeginDrawResetsSpring(t *testing.T) {
	b := New(testConfig(), vmath.IdentityPose(), nil)
	drawTo(b, mgl64.Vec3{0, 0, -0.3}, 1)
	b.EndDraw()
	for i := 0; i < 5; i++ {
		b.Idle(1.0 / 60)
	}
	require.NotEqual(t, vmath.Zero, b.spring.Velocity)

	b.BeginDraw(b.WorldPose(), b.WorldPose())
	assert.Equal(t, physics.SpringState{}, b.spring)
}

func TestTransformerDrivenByGrabbable(t *testing.T) {
	b := New(testConfig(), vmath.IdentityPose(), nil)
	arrow := &recordingLauncher{}
	require.NoError(t, b.Load(arrow))

	grab := interaction.NewGrabbable(nil)
	var tr Transformer = b
	tr.Initialize(grab)

	tr.BeginTransform()
	assert.False(t, b.Grabbed(), "no grab point yet")

	id := interaction.NewID()
	grab.ProcessPointerEvent(interaction.PointerEvent{Identifier: id, Kind: interaction.Select, Pose: vmath.IdentityPose()})
	tr.BeginTransform()
	require.True(t, b.Grabbed())

	grab.ProcessPointerEvent(interaction.PointerEvent{Identifier: id, Kind: interaction.Move, Pose: vmath.PoseAt(mgl64.Vec3{0, 0, -0.3})})
	tr.UpdateTransform(1)
	assert.InDelta(t, 0.3, b.Tension(), 1e-12)

	tr.EndTransform()
	require.Len(t, arrow.forces, 1)
	assert.True(t, vmath.Vec3ApproxEqual(mgl64.Vec3{0, 0, 3}, arrow.forces[0], 1e-9))
}

func TestNockPoseFollowsDraw(t *testing.T) {
	b := New(testConfig(), vmath.PoseAt(mgl64.Vec3{0, 1, 0}), nil)
	assert.True(t, vmath.Vec3ApproxEqual(mgl64.Vec3{0, 1, -0.05}, b.NockPose().Position, 1e-12))

	drawTo(b, mgl64.Vec3{0, 1, -0.2}, 1)
	assert.True(t, vmath.Vec3ApproxEqual(mgl64.Vec3{0, 1, -0.25}, b.NockPose().Position, 1e-9))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.InDelta(t, math.Pi/3, cfg.RubberAngle, 1e-12)
	assert.Equal(t, 10.0, cfg.LaunchStrength)
	assert.Equal(t, 0.1, cfg.Spring.Stiffness)
	assert.Equal(t, 0.95, cfg.Spring.Damping)
	assert.Greater(t, cfg.TranslationResistance.Evaluate(0), cfg.TranslationResistance.Evaluate(1))
}
