// Package motion is a frame-stepped kinematic controller for a platformer
// actor. Every Tick probes the surroundings with short rays, integrates walk
// speed and gravity, applies the jump rules (coyote time, jump buffering,
// early release) and sweeps the actor's box to its new position without
// entering solid geometry. World space is y-up.
package motion

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformcore/common"
)

var (
	ErrNonFinite  = errors.New("motion: non-finite state")
	ErrNoGeometry = errors.New("motion: no geometry")
)

// Controller owns one actor's motion. It is not safe for concurrent use; the
// owning loop ticks it once per frame.
type Controller struct {
	cfg      Config
	geometry Geometry
	clock    Clock

	active   bool
	position cp.Vector
	// velocity is the committed delta of the last tick over its dt.
	velocity cp.Vector

	state    State
	contacts Contacts
	snapshot Snapshot
	moved    cp.Vector // desired displacement of the last tick
	tick     uint64

	warnedNonFinite bool
}

// NewController validates cfg and places the actor at spawn. The controller
// ignores ticks until Activate is called. geometry may be nil until then.
func NewController(cfg Config, geometry Geometry, clock Clock, spawn cp.Vector) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = &ManualClock{}
	}
	c := &Controller{
		cfg:      cfg,
		geometry: geometry,
		clock:    clock,
	}
	c.Respawn(spawn)
	return c, nil
}

func (c *Controller) SetGeometry(g Geometry) {
	c.geometry = g
	if g == nil {
		c.active = false
	}
}

// Activate starts ticking. The host calls it once its geometry is ready.
func (c *Controller) Activate() error {
	if c.geometry == nil {
		return ErrNoGeometry
	}
	c.active = true
	return nil
}

func (c *Controller) Deactivate() { c.active = false }

func (c *Controller) Active() bool { return c.active }

func (c *Controller) Config() Config { return c.cfg }

func (c *Controller) Position() cp.Vector { return c.position }

func (c *Controller) State() State { return c.state }

func (c *Controller) Contacts() Contacts { return c.contacts }

func (c *Controller) Snapshot() Snapshot { return c.snapshot }

func (c *Controller) Variant() Variant {
	if c.cfg.Extras.Enabled() {
		return VariantExtended
	}
	return VariantBase
}

// Reconfigure swaps tuning in place. An invalid cfg leaves the old one active.
func (c *Controller) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	if c.state.AirJumpsLeft > cfg.Extras.AirJumps {
		c.state.AirJumpsLeft = cfg.Extras.AirJumps
	}
	if !cfg.Extras.dashEnabled() {
		c.state.DashUsable = false
		c.state.DashTimeLeft = 0
	}
	return nil
}

// Respawn teleports the actor and forgets all motion state.
func (c *Controller) Respawn(position cp.Vector) {
	c.position = position
	c.velocity = cp.Vector{}
	c.state = newState(c.cfg)
	c.contacts = Contacts{}
	c.moved = cp.Vector{}
	c.snapshot = Snapshot{Position: position, Variant: c.Variant()}
}

// Tick advances the actor by dt seconds. Ticks before Activate, and ticks
// with a non-positive or non-finite dt, are skipped. A tick that would
// produce a non-finite state is discarded and reported as ErrNonFinite.
func (c *Controller) Tick(dt float64, raw FrameInput) error {
	if !c.active || !(dt > 0) || math.IsInf(dt, 0) {
		return nil
	}

	cfg := c.cfg
	now := c.clock.Now()
	in := raw.normalized()
	st := c.state

	if in.JumpPressed {
		st.LastJumpPressedTime = now
	}
	if in.X != 0 {
		st.Facing = common.Sign(in.X)
	}

	bounds := cfg.Collision.Bounds.At(c.position)
	fans := CalculateRayFans(bounds, cfg.Collision.RayBuffer)
	contacts := Probe(c.geometry, fans, cfg.Collision.DetectorCount, cfg.Collision.DetectionRayLength, cfg.Collision.GroundLayer).
		withEdges(c.contacts.Down)
	if contacts.LeftGround {
		st.LastGroundedLeaveTime = now
	}
	if contacts.Landed {
		st.CoyoteUsable = true
		st.AirJumpsLeft = cfg.Extras.AirJumps
	}
	if contacts.Down && st.DashTimeLeft <= 0 && cfg.Extras.dashEnabled() {
		st.DashUsable = true
	}

	st.HorizontalSpeed = StepHorizontal(st.HorizontalSpeed, in, contacts, st.Apex, dt, cfg.Walk)
	st.Apex, st.FallSpeed = JumpApex(contacts.Down, c.velocity.Y, st.FallSpeed, cfg.Gravity)
	st.VerticalSpeed = StepVertical(st.VerticalSpeed, contacts.Down, st.EndedJumpEarly, st.FallSpeed, dt, cfg.Gravity, cfg.Jump.EarlyReleaseGravityModifier)

	dashSpeed, dashing := stepDash(&st, in, contacts, dt, cfg.Extras)
	jump := ApplyJump(&st, in, contacts, now, cfg.Jump, cfg.Extras)
	if jump.Jumped && dashing {
		st.DashTimeLeft = 0
		dashSpeed, dashing = 0, false
	}

	rawMovement := cp.Vector{X: st.HorizontalSpeed + dashSpeed, Y: st.VerticalSpeed}
	move := rawMovement.Mult(dt)
	sweep := Sweep(c.geometry, c.position, move, cfg.Collision.Bounds, cfg.Move.SubSteps, cfg.Collision.GroundLayer)
	if sweep.Corner && st.VerticalSpeed < 0 {
		st.VerticalSpeed = 0
	}
	velocity := sweep.Position.Sub(c.position).Mult(1 / dt)

	if !st.finite() || !common.VecFinite(sweep.Position) || !common.VecFinite(velocity) || !common.VecFinite(rawMovement) {
		if !c.warnedNonFinite {
			log.Printf("motion: discarding non-finite tick %d (dt=%g input=%+v)", c.tick+1, dt, raw)
			c.warnedNonFinite = true
		}
		return fmt.Errorf("%w: tick %d", ErrNonFinite, c.tick+1)
	}

	c.tick++
	c.state = st
	c.contacts = contacts
	c.position = sweep.Position
	c.velocity = velocity
	c.moved = move
	c.snapshot = Snapshot{
		Tick:             c.tick,
		Time:             now,
		Position:         sweep.Position,
		Velocity:         velocity,
		RawMovement:      rawMovement,
		Input:            in,
		Grounded:         contacts.Down,
		JumpingThisFrame: jump.Jumped,
		LandingThisFrame: contacts.Landed,
		Variant:          c.Variant(),
		extended: ExtendedFlags{
			DoubleJumpingThisFrame: jump.AirJumped,
			Dashing:                dashing,
		},
	}
	return nil
}

// stepDash starts, continues or ends a dash and returns the extra horizontal
// speed it contributes this tick. Gravity is suspended while dashing.
func stepDash(st *State, in FrameInput, contacts Contacts, dt float64, cfg ExtrasConfig) (float64, bool) {
	if !cfg.dashEnabled() {
		return 0, false
	}
	if st.DashTimeLeft > 0 {
		st.DashTimeLeft = math.Max(0, st.DashTimeLeft-dt)
	}
	if in.DashPressed && st.DashUsable && st.DashTimeLeft <= 0 {
		st.DashUsable = false
		st.DashTimeLeft = cfg.DashTime
		st.DashDirection = st.Facing
	}
	if st.DashTimeLeft <= 0 {
		return 0, false
	}
	if (st.DashDirection > 0 && contacts.Right) || (st.DashDirection < 0 && contacts.Left) {
		st.DashTimeLeft = 0
		return 0, false
	}
	st.VerticalSpeed = 0
	return st.DashDirection * cfg.DashSpeed, true
}
