package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformcore/motion"
	"github.com/milk9111/platformcore/prefabs"
)

// ScriptSubject is what a script may observe about the actor it drives.
type ScriptSubject interface {
	Position() cp.Vector
	Contacts() motion.Contacts
}

// ScriptSampler is a motion.Sampler driven by a tengo script. Each Sample
// runs the script once with the globals tick, now, grounded, x, y, params
// and state; the script sets axis and the held buttons jump and dash.
// state persists between runs.
type ScriptSampler struct {
	path     string
	subject  ScriptSubject
	clock    motion.Clock
	compiled *tengo.Compiled
	params   tengo.Object
	state    *tengo.Map

	jump, dash motion.ButtonEdges
	tick       int
	failing    bool
}

var _ motion.Sampler = (*ScriptSampler)(nil)

// scriptGlobals are declared on every compile. None may share a name with a
// tengo builtin such as time: the compiler rebinds those to the builtin and
// the global is gone, so run only sets names the program still defines.
var scriptGlobals = []struct {
	name string
	zero interface{}
}{
	{"tick", 0},
	{"now", 0.0},
	{"grounded", false},
	{"x", 0.0},
	{"y", 0.0},
	{"params", map[string]interface{}{}},
	{"state", map[string]interface{}{}},
	{"axis", 0.0},
	{"jump", false},
	{"dash", false},
}

func NewScriptSampler(path string, params map[string]interface{}, subject ScriptSubject, clock motion.Clock) (*ScriptSampler, error) {
	if params == nil {
		params = map[string]interface{}{}
	}
	obj, err := tengo.FromInterface(params)
	if err != nil {
		return nil, fmt.Errorf("script %s: params: %w", path, err)
	}

	s := &ScriptSampler{
		path:    path,
		subject: subject,
		clock:   clock,
		params:  obj,
		state:   &tengo.Map{Value: map[string]tengo.Object{}},
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ScriptSampler) Path() string { return s.path }

// Reload recompiles the script from the prefab directory. state survives; on
// error the previous program keeps running.
func (s *ScriptSampler) Reload() error {
	src, err := prefabs.LoadScript(s.path)
	if err != nil {
		return fmt.Errorf("script %s: %w", s.path, err)
	}

	script := tengo.NewScript(src)
	for _, g := range scriptGlobals {
		if err := script.Add(g.name, g.zero); err != nil {
			return fmt.Errorf("script %s: add %s: %w", s.path, g.name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("script %s: compile: %w", s.path, err)
	}
	s.compiled = compiled
	s.failing = false
	return nil
}

func (s *ScriptSampler) Sample() motion.FrameInput {
	s.tick++
	axis, jumpHeld, dashHeld, err := s.run()
	if err != nil {
		if !s.failing {
			log.Printf("ScriptSampler: %s: %v", s.path, err)
			s.failing = true
		}
		axis, jumpHeld, dashHeld = 0, false, false
	} else {
		s.failing = false
	}

	jp, jr := s.jump.Update(jumpHeld)
	dp, _ := s.dash.Update(dashHeld)
	return motion.FrameInput{X: axis, JumpPressed: jp, JumpReleased: jr, DashPressed: dp}
}

func (s *ScriptSampler) run() (float64, bool, bool, error) {
	c := s.compiled
	if c == nil {
		return 0, false, false, fmt.Errorf("not compiled")
	}

	var pos cp.Vector
	grounded := false
	if s.subject != nil {
		pos = s.subject.Position()
		grounded = s.subject.Contacts().Grounded()
	}
	now := 0.0
	if s.clock != nil {
		now = s.clock.Now()
	}

	values := map[string]interface{}{
		"tick":     s.tick,
		"now":      now,
		"grounded": grounded,
		"x":        pos.X,
		"y":        pos.Y,
		"params":   s.params,
		"state":    s.state,
		"axis":     0.0,
		"jump":     false,
		"dash":     false,
	}
	for _, g := range scriptGlobals {
		if !c.IsDefined(g.name) {
			continue
		}
		if err := c.Set(g.name, values[g.name]); err != nil {
			return 0, false, false, err
		}
	}

	if err := c.Run(); err != nil {
		return 0, false, false, err
	}
	return c.Get("axis").Float(), c.Get("jump").Bool(), c.Get("dash").Bool(), nil
}
