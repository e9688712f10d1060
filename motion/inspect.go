package motion

import "github.com/jakecoffman/cp"

// Inspection is a read-only view of the probe geometry for debug drawing.
type Inspection struct {
	Active    bool
	Position  cp.Vector
	Bounds    Bounds
	Rays      RayFans
	RayCount  int
	RayLength float64
	Contacts  Contacts
	// Displacement is the desired (pre-collision) move of the last tick.
	Displacement cp.Vector
	// Future is where the bounds would be after another tick at the current
	// speeds, ignoring collision.
	Future Bounds
}

func (c *Controller) Inspect() Inspection {
	col := c.cfg.Collision
	bounds := col.Bounds.At(c.position)
	future := bounds
	future.Center = future.Center.Add(c.moved)
	return Inspection{
		Active:       c.active,
		Position:     c.position,
		Bounds:       bounds,
		Rays:         CalculateRayFans(bounds, col.RayBuffer),
		RayCount:     col.DetectorCount,
		RayLength:    col.DetectionRayLength,
		Contacts:     c.contacts,
		Displacement: c.moved,
		Future:       future,
	}
}
