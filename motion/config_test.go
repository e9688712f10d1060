package motion

import (
	"errors"
	"math"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
}

func TestConfigValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"one_detector", func(c *Config) { c.Collision.DetectorCount = 1 }, "detector_count"},
		{"zero_ray_length", func(c *Config) { c.Collision.DetectionRayLength = 0 }, "detection_ray_length"},
		{"buffer_too_small", func(c *Config) { c.Collision.RayBuffer = 0.05 }, "ray_buffer"},
		{"buffer_too_large", func(c *Config) { c.Collision.RayBuffer = 0.4 }, "ray_buffer"},
		{"buffer_eats_bounds", func(c *Config) { c.Collision.Bounds.Size.X = 0.2 }, "ray_buffer"},
		{"zero_size", func(c *Config) { c.Collision.Bounds.Size.Y = 0 }, "bounds.size"},
		{"no_layer", func(c *Config) { c.Collision.GroundLayer = 0 }, "ground_layer"},
		{"zero_clamp", func(c *Config) { c.Walk.MoveClamp = 0 }, "move_clamp"},
		{"positive_fall_clamp", func(c *Config) { c.Gravity.FallClamp = 10 }, "fall_clamp"},
		{"fall_speeds_swapped", func(c *Config) { c.Gravity.MaxFallSpeed = 10 }, "max_fall_speed"},
		{"zero_apex_threshold", func(c *Config) { c.Gravity.ApexThreshold = 0 }, "jump_apex_threshold"},
		{"nan_acceleration", func(c *Config) { c.Walk.Acceleration = math.NaN() }, "acceleration"},
		{"negative_coyote", func(c *Config) { c.Jump.CoyoteTime = -1 }, "coyote_time"},
		{"zero_sub_steps", func(c *Config) { c.Move.SubSteps = 0 }, "sub_steps"},
		{"negative_air_jumps", func(c *Config) { c.Extras.AirJumps = -1 }, "air_jumps"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), c.field) {
				t.Fatalf("expected error to name %q, got %v", c.field, err)
			}
		})
	}
}

func TestConfigValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Collision.DetectorCount = 0
	cfg.Move.SubSteps = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "detector_count") || !strings.Contains(msg, "sub_steps") {
		t.Fatalf("expected both problems, got %v", err)
	}
}

func TestNewControllerRefusesInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Move.SubSteps = 0
	if _, err := NewController(cfg, &boxWorld{}, nil, cpZero); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigYAML(t *testing.T) {
	src := `
collision:
  bounds:
    size: {x: 0.8, y: 1.6}
  ground_layer: 1
  detector_count: 4
  detection_ray_length: 0.15
  ray_buffer: 0.2
walk: {acceleration: 80, move_clamp: 10, de_acceleration: 50, apex_bonus: 1}
gravity: {fall_clamp: -30, min_fall_speed: 70, max_fall_speed: 110, jump_apex_threshold: 8}
jump: {launch_speed: 25, coyote_time: 0.12, buffer_time: 0.08, early_release_gravity_modifier: 2.5}
move: {sub_steps: 8}
extras: {air_jumps: 1}
`
	var cfg Config
	if err := yaml.Unmarshal([]byte(src), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Collision.Bounds.Size.X != 0.8 || cfg.Collision.DetectorCount != 4 {
		t.Fatalf("collision not decoded: %+v", cfg.Collision)
	}
	if cfg.Jump.LaunchSpeed != 25 || cfg.Move.SubSteps != 8 || !cfg.Extras.Enabled() {
		t.Fatalf("unexpected decode: %+v", cfg)
	}
}
