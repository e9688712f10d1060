package motion

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"gonum.org/v1/gonum/floats/scalar"
)

const tickDT = 0.016

var floorBB = cp.BB{L: -100, B: -1, R: 100, T: 0}

type harness struct {
	t     *testing.T
	world *boxWorld
	clock *ManualClock
	ctrl  *Controller
}

func newHarness(t *testing.T, cfg Config, spawn cp.Vector, solids ...cp.BB) *harness {
	t.Helper()
	h := &harness{t: t, world: &boxWorld{solids: solids}, clock: &ManualClock{}}
	ctrl, err := NewController(cfg, h.world, h.clock, spawn)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	if err := ctrl.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	h.ctrl = ctrl
	return h
}

func (h *harness) tick(in FrameInput) Snapshot {
	h.t.Helper()
	h.clock.Advance(tickDT)
	if err := h.ctrl.Tick(tickDT, in); err != nil {
		h.t.Fatalf("tick: %v", err)
	}
	if h.world.overlapsAny(h.ctrl.Config().Collision.Bounds, h.ctrl.Position()) {
		h.t.Fatalf("actor overlaps geometry at %v", h.ctrl.Position())
	}
	return h.ctrl.Snapshot()
}

func TestWalkAcceleratesToClamp(t *testing.T) {
	h := newHarness(t, DefaultConfig(), cp.Vector{X: 0, Y: 1}, floorBB)
	prev := 0.0
	for i := 1; i <= 10; i++ {
		snap := h.tick(FrameInput{X: 1})
		speed := h.ctrl.State().HorizontalSpeed
		if speed < prev {
			t.Fatalf("tick %d: speed fell from %g to %g", i, prev, speed)
		}
		want := math.Min(90*tickDT*float64(i), 13)
		if !scalar.EqualWithinAbs(speed, want, 1e-9) {
			t.Fatalf("tick %d: expected %g, got %g", i, want, speed)
		}
		if !snap.Grounded || snap.Position.Y != 1 {
			t.Fatalf("tick %d: expected to stay on the floor, got %+v", i, snap)
		}
		prev = speed
	}
	if h.ctrl.State().HorizontalSpeed != 13 {
		t.Fatalf("expected clamp at 13, got %g", h.ctrl.State().HorizontalSpeed)
	}
}

func TestEarlyReleaseRaisesGravity(t *testing.T) {
	cfg := DefaultConfig()
	h := newHarness(t, cfg, cp.Vector{X: 0, Y: 1}, floorBB)

	snap := h.tick(FrameInput{JumpPressed: true})
	if !snap.JumpingThisFrame || h.ctrl.State().VerticalSpeed != cfg.Jump.LaunchSpeed {
		t.Fatalf("expected a launch at %g, got %+v state %+v", cfg.Jump.LaunchSpeed, snap, h.ctrl.State())
	}

	h.tick(FrameInput{JumpReleased: true})
	if !h.ctrl.State().EndedJumpEarly {
		t.Fatalf("expected endedJumpEarly after release")
	}

	for i := 3; i < 200; i++ {
		before := h.ctrl.State()
		snap := h.tick(FrameInput{})
		after := h.ctrl.State()
		if snap.Grounded {
			return
		}
		if !after.EndedJumpEarly {
			t.Fatalf("tick %d: endedJumpEarly cleared before landing", i)
		}
		if before.VerticalSpeed > 0 {
			want := before.VerticalSpeed - after.FallSpeed*cfg.Jump.EarlyReleaseGravityModifier*tickDT
			if !scalar.EqualWithinAbs(after.VerticalSpeed, want, 1e-9) {
				t.Fatalf("tick %d: expected %g, got %g", i, want, after.VerticalSpeed)
			}
		}
	}
	t.Fatalf("never landed")
}

func TestFullJumpWithoutReleaseIsHigher(t *testing.T) {
	peak := func(release bool) float64 {
		h := newHarness(t, DefaultConfig(), cp.Vector{X: 0, Y: 1}, floorBB)
		h.tick(FrameInput{JumpPressed: true})
		h.tick(FrameInput{JumpReleased: release})
		top := h.ctrl.Position().Y
		for i := 0; i < 200; i++ {
			h.tick(FrameInput{})
			top = math.Max(top, h.ctrl.Position().Y)
		}
		return top
	}
	if short, full := peak(true), peak(false); short >= full {
		t.Fatalf("released jump peaked at %g, full jump at %g", short, full)
	}
}

func TestGroundedNeverFalls(t *testing.T) {
	h := newHarness(t, DefaultConfig(), cp.Vector{X: 0, Y: 4}, floorBB)
	for i := 0; i < 300; i++ {
		in := FrameInput{X: math.Sin(float64(i) / 7), JumpPressed: i%40 == 0}
		snap := h.tick(in)
		st := h.ctrl.State()
		if snap.Grounded && !snap.JumpingThisFrame && st.VerticalSpeed < 0 {
			t.Fatalf("tick %d: grounded with vertical speed %g", i, st.VerticalSpeed)
		}
		if math.Abs(st.HorizontalSpeed) > 13 {
			t.Fatalf("tick %d: speed %g beyond clamp", i, st.HorizontalSpeed)
		}
		if st.Apex < 0 || st.Apex > 1 || (snap.Grounded && st.Apex != 0) {
			t.Fatalf("tick %d: apex %g (grounded %v)", i, st.Apex, snap.Grounded)
		}
	}
}

func TestCoyoteJumpAfterGroundVanishes(t *testing.T) {
	cases := []struct {
		name  string
		delay int
		want  bool
	}{
		{"inside", 6, true},
		{"outside", 7, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, DefaultConfig(), cp.Vector{X: 0, Y: 1}, floorBB)
			h.tick(FrameInput{})
			h.tick(FrameInput{})
			// the floor drops away: the next tick leaves the ground
			h.world.solids = nil
			if snap := h.tick(FrameInput{}); snap.Grounded {
				t.Fatalf("expected to be airborne")
			}
			for i := 0; i < c.delay-1; i++ {
				h.tick(FrameInput{})
			}
			snap := h.tick(FrameInput{JumpPressed: true})
			if snap.JumpingThisFrame != c.want {
				t.Fatalf("expected jumping=%v, got %+v", c.want, snap)
			}
		})
	}
}

func TestBufferedJumpFiresOnLanding(t *testing.T) {
	cases := []struct {
		name   string
		height float64
		want   bool
	}{
		{"short_drop", 0.3, true},
		{"long_drop", 10, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, DefaultConfig(), cp.Vector{X: 0, Y: 1 + c.height}, floorBB)
			if snap := h.tick(FrameInput{JumpPressed: true}); snap.Grounded || snap.JumpingThisFrame {
				t.Fatalf("press should only be buffered in the air, got %+v", snap)
			}
			for i := 0; i < 500; i++ {
				snap := h.tick(FrameInput{})
				if !snap.LandingThisFrame {
					continue
				}
				if snap.JumpingThisFrame != c.want {
					t.Fatalf("landing at %gs: expected jumping=%v", snap.Time, c.want)
				}
				return
			}
			t.Fatalf("never landed")
		})
	}
}

func TestCeilingStopsJump(t *testing.T) {
	ceiling := cp.BB{L: -100, B: 3, R: 100, T: 4}
	h := newHarness(t, DefaultConfig(), cp.Vector{X: 0, Y: 1}, floorBB, ceiling)
	h.tick(FrameInput{JumpPressed: true})
	for i := 0; i < 30; i++ {
		h.tick(FrameInput{})
		if top := h.ctrl.Position().Y + 1; top > ceiling.B {
			t.Fatalf("tick %d: head at %g inside ceiling", i, top)
		}
	}
	if h.ctrl.State().VerticalSpeed > 0 {
		t.Fatalf("expected ascent to end under the ceiling")
	}
}

func TestWallBlocksWalk(t *testing.T) {
	wall := cp.BB{L: 2, B: 0, R: 3, T: 10}
	h := newHarness(t, DefaultConfig(), cp.Vector{X: 0, Y: 1}, floorBB, wall)
	for i := 0; i < 60; i++ {
		h.tick(FrameInput{X: 1})
	}
	if right := h.ctrl.Position().X + 0.5; right > wall.L || right < wall.L-0.3 {
		t.Fatalf("expected to rest against the wall, right edge at %g", right)
	}
	if !h.ctrl.Contacts().Right || h.ctrl.State().HorizontalSpeed != 0 {
		t.Fatalf("expected the wall to stop the walk, contacts %+v", h.ctrl.Contacts())
	}
}

func TestFallingWalkStaysPinnedToThinWall(t *testing.T) {
	wall := cp.BB{L: 3, B: 0, R: 3.05, T: 20}
	h := newHarness(t, DefaultConfig(), cp.Vector{X: 1.5, Y: 10}, floorBB, wall)
	for i := 0; i < 180; i++ {
		h.tick(FrameInput{X: 1})
		if right := h.ctrl.Position().X + 0.5; right > wall.L {
			t.Fatalf("tick %d: right edge %g passed the wall at %g", i, right, wall.L)
		}
	}
	if !h.ctrl.Contacts().Down || !h.ctrl.Contacts().Right {
		t.Fatalf("expected to end grounded against the wall, contacts %+v", h.ctrl.Contacts())
	}
	if h.ctrl.State().HorizontalSpeed != 0 {
		t.Fatalf("expected the wall to cancel walk speed, got %g", h.ctrl.State().HorizontalSpeed)
	}
}

func TestTickIgnoredUntilActive(t *testing.T) {
	clock := &ManualClock{}
	ctrl, err := NewController(DefaultConfig(), nil, clock, cp.Vector{X: 0, Y: 5})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	if err := ctrl.Activate(); !errors.Is(err, ErrNoGeometry) {
		t.Fatalf("expected ErrNoGeometry, got %v", err)
	}
	before := ctrl.State()
	for i := 0; i < 5; i++ {
		clock.Advance(tickDT)
		if err := ctrl.Tick(tickDT, FrameInput{X: 1, JumpPressed: true}); err != nil {
			t.Fatalf("inactive tick: %v", err)
		}
	}
	if ctrl.Position() != (cp.Vector{X: 0, Y: 5}) || ctrl.State() != before || ctrl.Snapshot().Tick != 0 {
		t.Fatalf("inactive controller changed state")
	}

	ctrl.SetGeometry(&boxWorld{solids: []cp.BB{floorBB}})
	if err := ctrl.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	clock.Advance(tickDT)
	if err := ctrl.Tick(tickDT, FrameInput{}); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if ctrl.Position().Y >= 5 {
		t.Fatalf("expected the active controller to fall")
	}
}

func TestDegenerateDeltaTimeSkipsTick(t *testing.T) {
	h := newHarness(t, DefaultConfig(), cp.Vector{X: 0, Y: 1}, floorBB)
	before := h.ctrl.State()
	for _, dt := range []float64{0, -0.016, math.NaN(), math.Inf(1)} {
		if err := h.ctrl.Tick(dt, FrameInput{X: 1}); err != nil {
			t.Fatalf("dt=%g: %v", dt, err)
		}
	}
	if h.ctrl.State() != before || h.ctrl.Position() != (cp.Vector{X: 0, Y: 1}) {
		t.Fatalf("degenerate dt changed state")
	}
}

func TestNonFiniteTickIsDiscarded(t *testing.T) {
	h := newHarness(t, DefaultConfig(), cp.Vector{X: 0, Y: 1}, floorBB)
	h.tick(FrameInput{X: 1})
	before, pos := h.ctrl.State(), h.ctrl.Position()

	// a huge dt overflows the displacement
	err := h.ctrl.Tick(math.MaxFloat64, FrameInput{X: 1})
	if !errors.Is(err, ErrNonFinite) {
		t.Fatalf("expected ErrNonFinite, got %v", err)
	}
	if h.ctrl.State() != before || h.ctrl.Position() != pos {
		t.Fatalf("discarded tick leaked into state")
	}
	h.tick(FrameInput{X: 1})
}

func TestNaNAxisIsTreatedAsNeutral(t *testing.T) {
	h := newHarness(t, DefaultConfig(), cp.Vector{X: 0, Y: 1}, floorBB)
	snap := h.tick(FrameInput{X: math.NaN()})
	if snap.Input.X != 0 || h.ctrl.State().HorizontalSpeed != 0 {
		t.Fatalf("expected NaN axis to read as 0, got %+v", snap.Input)
	}
	snap = h.tick(FrameInput{X: 4})
	if snap.Input.X != 1 {
		t.Fatalf("expected axis clamped to 1, got %g", snap.Input.X)
	}
}

func TestReconfigureAndRespawn(t *testing.T) {
	h := newHarness(t, DefaultConfig(), cp.Vector{X: 0, Y: 1}, floorBB)
	for i := 0; i < 20; i++ {
		h.tick(FrameInput{X: 1})
	}

	bad := DefaultConfig()
	bad.Walk.MoveClamp = -1
	if err := h.ctrl.Reconfigure(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if h.ctrl.Config().Walk.MoveClamp != 13 {
		t.Fatalf("invalid reconfigure replaced the config")
	}

	slow := DefaultConfig()
	slow.Walk.MoveClamp = 5
	if err := h.ctrl.Reconfigure(slow); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}
	h.tick(FrameInput{X: 1})
	if h.ctrl.State().HorizontalSpeed != 5 {
		t.Fatalf("expected new clamp, got %g", h.ctrl.State().HorizontalSpeed)
	}

	h.ctrl.Respawn(cp.Vector{X: 3, Y: 1})
	st := h.ctrl.State()
	if h.ctrl.Position() != (cp.Vector{X: 3, Y: 1}) || st.HorizontalSpeed != 0 || !st.EndedJumpEarly {
		t.Fatalf("respawn did not reset: %+v", st)
	}
}

func TestSnapshotVariants(t *testing.T) {
	h := newHarness(t, DefaultConfig(), cp.Vector{X: 0, Y: 1}, floorBB)
	snap := h.tick(FrameInput{})
	if _, ok := snap.AsExtended(); ok || snap.Variant != VariantBase {
		t.Fatalf("base actor reported extended flags")
	}

	cfg := DefaultConfig()
	cfg.Extras = ExtrasConfig{AirJumps: 1, DashSpeed: 20, DashTime: 0.1}
	h = newHarness(t, cfg, cp.Vector{X: 0, Y: 1}, floorBB)
	h.tick(FrameInput{JumpPressed: true})
	h.tick(FrameInput{})
	snap = h.tick(FrameInput{JumpPressed: true})
	ext, ok := snap.AsExtended()
	if !ok || !ext.DoubleJumpingThisFrame || !snap.JumpingThisFrame {
		t.Fatalf("expected a double jump, got %+v %+v", snap, ext)
	}
}

func TestDashKeepsWalkSpeedClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extras = ExtrasConfig{DashSpeed: 30, DashTime: 0.1}
	h := newHarness(t, cfg, cp.Vector{X: 0, Y: 1}, floorBB)
	h.tick(FrameInput{X: 1})
	x0 := h.ctrl.Position().X

	snap := h.tick(FrameInput{X: 1, DashPressed: true})
	ext, _ := snap.AsExtended()
	if !ext.Dashing {
		t.Fatalf("expected dash to start")
	}
	if snap.RawMovement.X <= cfg.Walk.MoveClamp || h.ctrl.State().HorizontalSpeed > cfg.Walk.MoveClamp {
		t.Fatalf("dash should add raw movement only: raw %g walk %g", snap.RawMovement.X, h.ctrl.State().HorizontalSpeed)
	}
	if h.ctrl.Position().X-x0 < 30*tickDT {
		t.Fatalf("dash moved only %g", h.ctrl.Position().X-x0)
	}

	// a dash lasts DashTime and cannot restart while active
	var dashing int
	for i := 0; i < 20; i++ {
		snap := h.tick(FrameInput{X: 1, DashPressed: true})
		if ext, _ := snap.AsExtended(); ext.Dashing {
			dashing++
		}
	}
	if dashing == 20 {
		t.Fatalf("dash never ended")
	}
}

func TestInspect(t *testing.T) {
	h := newHarness(t, DefaultConfig(), cp.Vector{X: 0, Y: 1}, floorBB)
	h.tick(FrameInput{X: 1})
	in := h.ctrl.Inspect()
	if !in.Active || !in.Contacts.Down || in.RayCount != 3 {
		t.Fatalf("unexpected inspection %+v", in)
	}
	if in.Future.Center.X <= in.Bounds.Center.X {
		t.Fatalf("future bounds should lead the actor: %+v", in)
	}
	if in.Rays.Down.Start.Y != 0 {
		t.Fatalf("down fan should sit on the floor, got %v", in.Rays.Down.Start)
	}
}
