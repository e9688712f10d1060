package debugfeed

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformcore/motion"
)

type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func vec(v cp.Vector) Vec { return Vec{X: v.X, Y: v.Y} }

type Box struct {
	Min Vec `json:"min"`
	Max Vec `json:"max"`
}

func box(b motion.Bounds) Box { return Box{Min: vec(b.Min()), Max: vec(b.Max())} }

type Ray struct {
	Origin Vec    `json:"origin"`
	Dir    Vec    `json:"dir"`
	Side   string `json:"side"`
}

type Contacts struct {
	Up    bool `json:"up"`
	Right bool `json:"right"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
}

// Frame is one actor's inspection for one tick as sent to viewers.
type Frame struct {
	Type         string   `json:"type"`
	Tick         uint64   `json:"tick"`
	Time         float64  `json:"time"`
	Actor        string   `json:"actor"`
	Active       bool     `json:"active"`
	Position     Vec      `json:"position"`
	Bounds       Box      `json:"bounds"`
	Future       Box      `json:"future"`
	Displacement Vec      `json:"displacement"`
	RayLength    float64  `json:"rayLength"`
	Rays         []Ray    `json:"rays"`
	Contacts     Contacts `json:"contacts"`
	Grounded     bool     `json:"grounded"`
}

const frameType = "inspect"

// NewFrame flattens an inspection and the matching snapshot.
func NewFrame(actor string, in motion.Inspection, snap motion.Snapshot) Frame {
	f := Frame{
		Type:         frameType,
		Tick:         snap.Tick,
		Time:         snap.Time,
		Actor:        actor,
		Active:       in.Active,
		Position:     vec(in.Position),
		Bounds:       box(in.Bounds),
		Future:       box(in.Future),
		Displacement: vec(in.Displacement),
		RayLength:    in.RayLength,
		Contacts: Contacts{
			Up:    in.Contacts.Up,
			Right: in.Contacts.Right,
			Down:  in.Contacts.Down,
			Left:  in.Contacts.Left,
		},
		Grounded: snap.Grounded,
	}

	fans := []struct {
		side string
		r    motion.RayRange
	}{
		{"up", in.Rays.Up},
		{"right", in.Rays.Right},
		{"down", in.Rays.Down},
		{"left", in.Rays.Left},
	}
	f.Rays = make([]Ray, 0, len(fans)*in.RayCount)
	for _, fan := range fans {
		for i := 0; i < in.RayCount; i++ {
			f.Rays = append(f.Rays, Ray{Origin: vec(fan.r.Point(i, in.RayCount)), Dir: vec(fan.r.Dir), Side: fan.side})
		}
	}
	return f
}
