package obj

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformcore/common"
	"github.com/milk9111/platformcore/levels"
	"github.com/milk9111/platformcore/motion"
)

// surfaceEpsilon lets a ray that starts exactly on a surface count as a hit.
const surfaceEpsilon = 1e-9

// Solid is a merged block of level tiles as added to the space.
type Solid struct {
	BB       cp.BB
	Layer    string
	Category motion.LayerMask
}

// CollisionWorld answers motion.Geometry queries against a level's static
// geometry held in a chipmunk space. Nothing in the space is ever stepped;
// it is used for its spatial index and shape queries only.
type CollisionWorld struct {
	level  *levels.Level
	space  *cp.Space
	solids []Solid
}

var _ motion.Geometry = (*CollisionWorld)(nil)

func NewCollisionWorld(level *levels.Level) *CollisionWorld {
	cw := &CollisionWorld{level: level, space: cp.NewSpace()}
	cw.buildStaticShapes()
	return cw
}

func (cw *CollisionWorld) buildStaticShapes() {
	if cw == nil || cw.space == nil || cw.level == nil {
		return
	}

	for layerIdx, layer := range cw.level.Layers {
		if !layer.Physics {
			continue
		}
		for _, r := range cw.level.Rects(layerIdx) {
			cw.addSolid(cw.level.WorldBB(r), layer.Name, motion.LayerMask(layer.Category))
		}
	}

	// keep actors inside the level even where the tiles leave a gap
	w, h := float64(cw.level.Width), float64(cw.level.Height)
	if w > 0 && h > 0 {
		const thickness = 1.0
		bounds := []cp.BB{
			{L: -thickness, B: -thickness, R: w + thickness, T: 0},
			{L: -thickness, B: h, R: w + thickness, T: h + thickness},
			{L: -thickness, B: 0, R: 0, T: h},
			{L: w, B: 0, R: w + thickness, T: h},
		}
		for _, bb := range bounds {
			cw.addSolid(bb, "bounds", motion.LayerGround)
		}
	}

	log.Printf("CollisionWorld: level %q built with %d static shapes", cw.level.Name, len(cw.solids))
}

func (cw *CollisionWorld) addSolid(bb cp.BB, layer string, category motion.LayerMask) {
	shape := cp.NewBox2(cw.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(category), cp.ALL_CATEGORIES))
	shape.UserData = len(cw.solids)
	cw.space.AddShape(shape)
	cw.solids = append(cw.solids, Solid{BB: bb, Layer: layer, Category: category})
}

func queryFilter(mask motion.LayerMask) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
}

// Overlap reports the solid whose surface is nearest to center among those
// the box overlaps. Boxes that only touch do not overlap.
func (cw *CollisionWorld) Overlap(center, size cp.Vector, mask motion.LayerMask) (motion.Hit, bool) {
	if cw == nil || cw.space == nil {
		return motion.Hit{}, false
	}
	bb := cp.NewBBForExtents(center, size.X/2, size.Y/2)

	var (
		hit   motion.Hit
		found bool
	)
	best := math.Inf(1)
	cw.space.BBQuery(bb, queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		sb := shape.BB()
		if !(bb.L < sb.R && bb.R > sb.L && bb.B < sb.T && bb.T > sb.B) {
			return
		}
		info := shape.PointQuery(center)
		if info.Distance < best {
			best = info.Distance
			found = true
			point := info.Point
			if !common.VecFinite(point) {
				point = center
			}
			hit = motion.Hit{
				Point:     point,
				Normal:    info.Gradient,
				Reference: sb.Center(),
				Distance:  info.Distance,
			}
		}
	}, nil)
	return hit, found
}

// Raycast returns the first solid along the ray. An origin lying on a surface
// hits at distance 0 unless the ray points away from that surface.
func (cw *CollisionWorld) Raycast(origin, dir cp.Vector, maxDistance float64, mask motion.LayerMask) (motion.Hit, bool) {
	if cw == nil || cw.space == nil || maxDistance <= 0 {
		return motion.Hit{}, false
	}
	filter := queryFilter(mask)

	if info := cw.space.PointQueryNearest(origin, surfaceEpsilon, filter); info.Shape != nil && info.Gradient.Dot(dir) <= 0 {
		// the query point is not usable at distance 0, the origin is the hit
		return motion.Hit{
			Point:     origin,
			Normal:    info.Gradient,
			Reference: info.Shape.BB().Center(),
		}, true
	}

	// start just off the surface so a ray leaving it does not report it
	start := origin.Add(dir.Mult(surfaceEpsilon))
	end := origin.Add(dir.Mult(maxDistance))
	info := cw.space.SegmentQueryFirst(start, end, 0, filter)
	if info.Shape == nil {
		return motion.Hit{}, false
	}
	return motion.Hit{
		Point:     info.Point,
		Normal:    info.Normal,
		Reference: info.Shape.BB().Center(),
		Distance:  surfaceEpsilon + info.Alpha*(maxDistance-surfaceEpsilon),
	}, true
}

func (cw *CollisionWorld) Solids() []Solid {
	if cw == nil {
		return nil
	}
	return cw.solids
}

func (cw *CollisionWorld) Level() *levels.Level { return cw.level }

// Space exposes the chipmunk space for debug drawing.
func (cw *CollisionWorld) Space() *cp.Space { return cw.space }
