package motion

import (
	"math"

	"github.com/milk9111/platformcore/common"
)

// FrameInput is the command for one tick. Edge flags are true for exactly
// one tick per physical press or release.
type FrameInput struct {
	X            float64
	JumpPressed  bool
	JumpReleased bool
	DashPressed  bool
}

func (in FrameInput) normalized() FrameInput {
	if math.IsNaN(in.X) {
		in.X = 0
	}
	in.X = common.Clamp(in.X, -1, 1)
	return in
}

// Sampler turns raw device (or script) state into a FrameInput once per tick.
type Sampler interface {
	Sample() FrameInput
}

type SamplerFunc func() FrameInput

func (f SamplerFunc) Sample() FrameInput { return f() }

// ButtonEdges derives press/release edges from a held button state.
type ButtonEdges struct {
	held bool
}

func (b *ButtonEdges) Update(held bool) (pressed, released bool) {
	pressed = held && !b.held
	released = !held && b.held
	b.held = held
	return pressed, released
}

// Clock is a monotonically increasing game-time source in seconds.
type Clock interface {
	Now() float64
}

// ManualClock is advanced explicitly by the owning loop.
type ManualClock struct {
	now float64
}

func (c *ManualClock) Now() float64 { return c.now }

func (c *ManualClock) Advance(dt float64) {
	if dt > 0 && !math.IsInf(dt, 0) {
		c.now += dt
	}
}
