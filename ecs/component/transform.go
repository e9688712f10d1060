package component

import "github.com/jakecoffman/cp"

// Transform is an entity's world position, y-up, in tile units.
type Transform struct {
	Position cp.Vector
	Facing   float64
}

var TransformComponent = NewComponent[Transform]()
