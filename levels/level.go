package levels

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var ErrMalformed = errors.New("levels: malformed level")

const (
	TileEmpty = '.'
	TileSolid = '#'
)

// Level is a tile grid in world units: one tile is one unit. Rows are listed
// top to bottom, so row 0 is the highest; world space is y-up.
type Level struct {
	Name     string   `json:"name"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Layers   []Layer  `json:"layers"`
	Entities []Entity `json:"entities,omitempty"`
}

type Layer struct {
	Name    string `json:"name"`
	Physics bool   `json:"physics"`
	// Category is the collision category bit shapes on this layer get.
	Category uint     `json:"category"`
	Rows     []string `json:"rows"`
}

// Entity places something in the level. X and Y are world coordinates.
type Entity struct {
	Type  string                 `json:"type"`
	Name  string                 `json:"name,omitempty"`
	X     float64                `json:"x"`
	Y     float64                `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

func (e Entity) Position() cp.Vector { return cp.Vector{X: e.X, Y: e.Y} }

// Rect is a block of solid tiles in grid coordinates (row 0 on top).
type Rect struct {
	X, Y          int
	Width, Height int
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrMalformed, l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer.Rows) != l.Height {
			return fmt.Errorf("%w: layer %d (%s) has %d rows, want %d", ErrMalformed, i, layer.Name, len(layer.Rows), l.Height)
		}
		for y, row := range layer.Rows {
			if len(row) != l.Width {
				return fmt.Errorf("%w: layer %d (%s) row %d has %d tiles, want %d", ErrMalformed, i, layer.Name, y, len(row), l.Width)
			}
			for x := 0; x < len(row); x++ {
				if row[x] != TileEmpty && row[x] != TileSolid {
					return fmt.Errorf("%w: layer %d (%s) unknown tile %q at %d,%d", ErrMalformed, i, layer.Name, row[x], x, y)
				}
			}
		}
		if layer.Physics && layer.Category == 0 {
			return fmt.Errorf("%w: physics layer %d (%s) has no category", ErrMalformed, i, layer.Name)
		}
	}
	return nil
}

// Entity returns the first entity of the given type.
func (l *Level) Entity(typ string) (Entity, bool) {
	for _, e := range l.Entities {
		if e.Type == typ {
			return e, true
		}
	}
	return Entity{}, false
}

func (l *Level) EntitiesOf(typ string) []Entity {
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// Rects merges the solid tiles of a layer into rectangles, growing each one
// as wide as possible and then as tall as possible.
func (l *Level) Rects(layerIdx int) []Rect {
	if layerIdx < 0 || layerIdx >= len(l.Layers) {
		return nil
	}
	layer := l.Layers[layerIdx]
	if len(layer.Rows) != l.Height {
		return nil
	}

	solid := func(x, y int) bool {
		row := layer.Rows[y]
		return x < len(row) && row[x] == TileSolid
	}

	var rects []Rect
	processed := make([]bool, l.Width*l.Height)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			idx := y*l.Width + x
			if processed[idx] {
				continue
			}
			if !solid(x, y) {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < l.Width && !processed[y*l.Width+x+w] && solid(x+w, y) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < l.Height {
				for xi := x; xi < x+w; xi++ {
					if processed[(y+h)*l.Width+xi] || !solid(xi, y+h) {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*l.Width+xx] = true
				}
			}
			rects = append(rects, Rect{X: x, Y: y, Width: w, Height: h})
		}
	}
	return rects
}

// WorldBB converts a grid rectangle to y-up world space.
func (l *Level) WorldBB(r Rect) cp.BB {
	top := float64(l.Height - r.Y)
	return cp.BB{
		L: float64(r.X),
		B: top - float64(r.Height),
		R: float64(r.X + r.Width),
		T: top,
	}
}

func (l *Level) WorldSize() cp.Vector {
	return cp.Vector{X: float64(l.Width), Y: float64(l.Height)}
}
