package motion

import "github.com/jakecoffman/cp"

// LayerMask selects geometry categories, matching cp.ShapeFilter categories.
type LayerMask uint

const (
	LayerGround LayerMask = 1 << iota
	LayerPlatform
	LayerHazard

	AllLayers = ^LayerMask(0)
)

// Hit describes a query result. Reference is the obstacle's reference point
// used to deflect the actor off corners.
type Hit struct {
	Point     cp.Vector
	Normal    cp.Vector
	Reference cp.Vector
	Distance  float64
}

// Geometry answers read-only solid-geometry queries for the motion core.
type Geometry interface {
	// Overlap reports whether an axis-aligned box of size centered at center
	// overlaps solid geometry on mask. Touching edges do not overlap.
	Overlap(center, size cp.Vector, mask LayerMask) (Hit, bool)
	// Raycast casts from origin along the unit vector dir for maxDistance.
	Raycast(origin, dir cp.Vector, maxDistance float64, mask LayerMask) (Hit, bool)
}
