package motion

import (
	"math"

	"github.com/jakecoffman/cp"
)

// boxWorld is an in-memory Geometry made of axis-aligned solids.
type boxWorld struct {
	solids []cp.BB
}

func (w *boxWorld) Overlap(center, size cp.Vector, mask LayerMask) (Hit, bool) {
	h := size.Mult(0.5)
	for _, s := range w.solids {
		if center.X-h.X < s.R && center.X+h.X > s.L && center.Y-h.Y < s.T && center.Y+h.Y > s.B {
			return Hit{Point: s.Center(), Reference: s.Center()}, true
		}
	}
	return Hit{}, false
}

func (w *boxWorld) Raycast(origin, dir cp.Vector, maxDistance float64, mask LayerMask) (Hit, bool) {
	delta := dir.Mult(maxDistance)
	best := math.Inf(1)
	var bestSolid cp.BB
	for _, s := range w.solids {
		if ok, t := segmentAABBHit(origin, delta, s); ok && t < best {
			best = t
			bestSolid = s
		}
	}
	if math.IsInf(best, 1) {
		return Hit{}, false
	}
	return Hit{
		Point:     origin.Add(delta.Mult(best)),
		Normal:    dir.Neg(),
		Reference: bestSolid.Center(),
		Distance:  best * maxDistance,
	}, true
}

// overlapsAny reports whether a box at position overlaps any solid.
func (w *boxWorld) overlapsAny(box Box, position cp.Vector) bool {
	b := box.At(position)
	_, hit := w.Overlap(b.Center, b.Size, AllLayers)
	return hit
}

// segmentAABBHit is a slab test of origin+t*delta, t in [0, 1]. Touching an
// edge counts as a hit.
func segmentAABBHit(origin, delta cp.Vector, bb cp.BB) (bool, float64) {
	tmin, tmax := 0.0, 1.0

	if delta.X != 0 {
		t1 := (bb.L - origin.X) / delta.X
		t2 := (bb.R - origin.X) / delta.X
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if origin.X < bb.L || origin.X > bb.R {
		return false, 0
	}

	if delta.Y != 0 {
		t1 := (bb.B - origin.Y) / delta.Y
		t2 := (bb.T - origin.Y) / delta.Y
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if origin.Y < bb.B || origin.Y > bb.T {
		return false, 0
	}

	if tmax >= tmin {
		return true, tmin
	}
	return false, 0
}
