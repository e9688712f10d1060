package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformcore/dynamics"
	"github.com/milk9111/platformcore/motion"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := LoadSpecInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// LoadSpecInto decodes filename over spec, so fields the file leaves out keep
// whatever spec already held.
func LoadSpecInto[T any](filename string, spec *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

// PlayerSpec describes a controller-driven actor. Bots use the same shape
// with a Script that drives their input.
type PlayerSpec struct {
	Name       string        `yaml:"name"`
	Script     string        `yaml:"script"`
	DebugColor YAMLColor     `yaml:"debug_color"`
	Motion     motion.Config `yaml:"motion"`
}

// LoadPlayerSpec loads an actor prefab on top of the default tuning and
// validates the result.
func LoadPlayerSpec(filename string) (*PlayerSpec, error) {
	spec := PlayerSpec{Motion: motion.DefaultConfig()}
	if err := LoadSpecInto(filename, &spec); err != nil {
		return nil, err
	}
	if err := spec.Motion.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

type CameraSpec struct {
	Name      string    `yaml:"name"`
	Target    string    `yaml:"target"`
	Offset    cp.Vector `yaml:"offset"`
	Frequency float64   `yaml:"frequency"`
	Damping   float64   `yaml:"damping"`
	Response  float64   `yaml:"response"`
}

func (s CameraSpec) Params() dynamics.Params {
	return dynamics.Params{Frequency: s.Frequency, Damping: s.Damping, Response: s.Response}
}

func LoadCameraSpec(filename string) (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Params().Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed color, or fallback when the prefab had none.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
