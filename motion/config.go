package motion

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

var ErrInvalidConfig = errors.New("motion: invalid config")

// Config is the per-actor tuning loaded from prefabs.
type Config struct {
	Collision CollisionConfig `yaml:"collision"`
	Walk      WalkConfig      `yaml:"walk"`
	Gravity   GravityConfig   `yaml:"gravity"`
	Jump      JumpConfig      `yaml:"jump"`
	Move      MoveConfig      `yaml:"move"`
	Extras    ExtrasConfig    `yaml:"extras"`
}

type CollisionConfig struct {
	Bounds             Box       `yaml:"bounds"`
	GroundLayer        LayerMask `yaml:"ground_layer"`
	DetectorCount      int       `yaml:"detector_count"`
	DetectionRayLength float64   `yaml:"detection_ray_length"`
	// RayBuffer insets the ray origins so side rays don't hit the floor.
	RayBuffer float64 `yaml:"ray_buffer"`
}

type WalkConfig struct {
	Acceleration   float64 `yaml:"acceleration"`
	MoveClamp      float64 `yaml:"move_clamp"`
	DeAcceleration float64 `yaml:"de_acceleration"`
	ApexBonus      float64 `yaml:"apex_bonus"`
}

type GravityConfig struct {
	// FallClamp is the terminal vertical speed and is negative.
	FallClamp     float64 `yaml:"fall_clamp"`
	MinFallSpeed  float64 `yaml:"min_fall_speed"`
	MaxFallSpeed  float64 `yaml:"max_fall_speed"`
	ApexThreshold float64 `yaml:"jump_apex_threshold"`
}

type JumpConfig struct {
	// LaunchSpeed is the initial ascent speed of a jump.
	LaunchSpeed                 float64 `yaml:"launch_speed"`
	CoyoteTime                  float64 `yaml:"coyote_time"`
	BufferTime                  float64 `yaml:"buffer_time"`
	EarlyReleaseGravityModifier float64 `yaml:"early_release_gravity_modifier"`
}

type MoveConfig struct {
	// SubSteps trades collision accuracy for overlap queries per blocked tick.
	SubSteps int `yaml:"sub_steps"`
}

// ExtrasConfig enables the extended actor variant. All zero means a base actor.
type ExtrasConfig struct {
	AirJumps  int     `yaml:"air_jumps"`
	DashSpeed float64 `yaml:"dash_speed"`
	DashTime  float64 `yaml:"dash_time"`
}

func (e ExtrasConfig) Enabled() bool {
	return e.AirJumps > 0 || (e.DashSpeed > 0 && e.DashTime > 0)
}

func (e ExtrasConfig) dashEnabled() bool {
	return e.DashSpeed > 0 && e.DashTime > 0
}

func DefaultConfig() Config {
	return Config{
		Collision: CollisionConfig{
			Bounds:             Box{Size: cp.Vector{X: 1, Y: 2}},
			GroundLayer:        LayerGround,
			DetectorCount:      3,
			DetectionRayLength: 0.1,
			RayBuffer:          0.1,
		},
		Walk: WalkConfig{
			Acceleration:   90,
			MoveClamp:      13,
			DeAcceleration: 60,
			ApexBonus:      2,
		},
		Gravity: GravityConfig{
			FallClamp:     -40,
			MinFallSpeed:  80,
			MaxFallSpeed:  120,
			ApexThreshold: 10,
		},
		Jump: JumpConfig{
			LaunchSpeed:                 30,
			CoyoteTime:                  0.1,
			BufferTime:                  0.1,
			EarlyReleaseGravityModifier: 3,
		},
		Move: MoveConfig{SubSteps: 10},
	}
}

// Validate reports every tuning mistake at once. Nothing is clamped.
func (c Config) Validate() error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s %s", ErrInvalidConfig, field, fmt.Sprintf(format, args...)))
	}
	finite := func(field string, v float64) bool {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad(field, "must be finite, got %g", v)
			return false
		}
		return true
	}

	col := c.Collision
	if !(col.Bounds.Size.X > 0) || !(col.Bounds.Size.Y > 0) || math.IsInf(col.Bounds.Size.X, 0) || math.IsInf(col.Bounds.Size.Y, 0) {
		bad("collision.bounds.size", "must be positive, got %v", col.Bounds.Size)
	}
	finite("collision.bounds.center.x", col.Bounds.Center.X)
	finite("collision.bounds.center.y", col.Bounds.Center.Y)
	if col.GroundLayer == 0 {
		bad("collision.ground_layer", "must select at least one layer")
	}
	if col.DetectorCount < 2 {
		bad("collision.detector_count", "must be >= 2, got %d", col.DetectorCount)
	}
	if finite("collision.detection_ray_length", col.DetectionRayLength) && col.DetectionRayLength <= 0 {
		bad("collision.detection_ray_length", "must be positive, got %g", col.DetectionRayLength)
	}
	if finite("collision.ray_buffer", col.RayBuffer) {
		if col.RayBuffer < 0.1 || col.RayBuffer > 0.3 {
			bad("collision.ray_buffer", "must be within [0.1, 0.3], got %g", col.RayBuffer)
		}
		if 2*col.RayBuffer >= math.Min(col.Bounds.Size.X, col.Bounds.Size.Y) {
			bad("collision.ray_buffer", "leaves no edge to probe on bounds %v", col.Bounds.Size)
		}
	}

	w := c.Walk
	if finite("walk.acceleration", w.Acceleration) && w.Acceleration < 0 {
		bad("walk.acceleration", "must be >= 0, got %g", w.Acceleration)
	}
	if finite("walk.move_clamp", w.MoveClamp) && w.MoveClamp <= 0 {
		bad("walk.move_clamp", "must be positive, got %g", w.MoveClamp)
	}
	if finite("walk.de_acceleration", w.DeAcceleration) && w.DeAcceleration < 0 {
		bad("walk.de_acceleration", "must be >= 0, got %g", w.DeAcceleration)
	}
	if finite("walk.apex_bonus", w.ApexBonus) && w.ApexBonus < 0 {
		bad("walk.apex_bonus", "must be >= 0, got %g", w.ApexBonus)
	}

	g := c.Gravity
	if finite("gravity.fall_clamp", g.FallClamp) && g.FallClamp >= 0 {
		bad("gravity.fall_clamp", "must be negative, got %g", g.FallClamp)
	}
	minOK := finite("gravity.min_fall_speed", g.MinFallSpeed)
	maxOK := finite("gravity.max_fall_speed", g.MaxFallSpeed)
	if minOK && g.MinFallSpeed < 0 {
		bad("gravity.min_fall_speed", "must be >= 0, got %g", g.MinFallSpeed)
	}
	if minOK && maxOK && g.MaxFallSpeed < g.MinFallSpeed {
		bad("gravity.max_fall_speed", "must be >= min_fall_speed (%g), got %g", g.MinFallSpeed, g.MaxFallSpeed)
	}
	if finite("gravity.jump_apex_threshold", g.ApexThreshold) && g.ApexThreshold <= 0 {
		bad("gravity.jump_apex_threshold", "must be positive, got %g", g.ApexThreshold)
	}

	j := c.Jump
	if finite("jump.launch_speed", j.LaunchSpeed) && j.LaunchSpeed < 0 {
		bad("jump.launch_speed", "must be >= 0, got %g", j.LaunchSpeed)
	}
	if finite("jump.coyote_time", j.CoyoteTime) && j.CoyoteTime < 0 {
		bad("jump.coyote_time", "must be >= 0, got %g", j.CoyoteTime)
	}
	if finite("jump.buffer_time", j.BufferTime) && j.BufferTime < 0 {
		bad("jump.buffer_time", "must be >= 0, got %g", j.BufferTime)
	}
	if finite("jump.early_release_gravity_modifier", j.EarlyReleaseGravityModifier) && j.EarlyReleaseGravityModifier < 0 {
		bad("jump.early_release_gravity_modifier", "must be >= 0, got %g", j.EarlyReleaseGravityModifier)
	}

	if c.Move.SubSteps < 1 {
		bad("move.sub_steps", "must be >= 1, got %d", c.Move.SubSteps)
	}

	e := c.Extras
	if e.AirJumps < 0 {
		bad("extras.air_jumps", "must be >= 0, got %d", e.AirJumps)
	}
	if finite("extras.dash_speed", e.DashSpeed) && e.DashSpeed < 0 {
		bad("extras.dash_speed", "must be >= 0, got %g", e.DashSpeed)
	}
	if finite("extras.dash_time", e.DashTime) && e.DashTime < 0 {
		bad("extras.dash_time", "must be >= 0, got %g", e.DashTime)
	}

	return errors.Join(errs...)
}
