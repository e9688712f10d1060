package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformcore/dynamics"
)

// Camera follows the entity named TargetName through a second-order filter.
type Camera struct {
	Prefab     string
	TargetName string
	Offset     cp.Vector
	Params     dynamics.Params

	// Filter is built lazily from Params at the target's position.
	Filter   *dynamics.SecondOrder[cp.Vector]
	Position cp.Vector
}

var CameraComponent = NewComponent[Camera]()
