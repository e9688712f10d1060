package motion

import "github.com/jakecoffman/cp"

type SweepResult struct {
	Position cp.Vector
	// Blocked is set when the full displacement would overlap geometry.
	Blocked bool
	// Corner is set when the very first sub-step was blocked, i.e. the actor
	// is pressed against an obstacle rather than approaching it.
	Corner bool
	Nudged bool
}

// Sweep moves box from position by displacement without entering solid
// geometry. When the destination overlaps, it walks subSteps points along the
// path and stops at the last free one. A blocked first step nudges the actor
// away from the obstacle's reference point if that spot is free.
func Sweep(g Geometry, position, displacement cp.Vector, box Box, subSteps int, mask LayerMask) SweepResult {
	furthest := position.Add(displacement)
	hit, blocked := g.Overlap(box.At(furthest).Center, box.Size, mask)
	if !blocked {
		return SweepResult{Position: furthest}
	}

	safe := position
	for i := 1; i < subSteps; i++ {
		try := position.Lerp(furthest, float64(i)/float64(subSteps))
		if _, overlap := g.Overlap(box.At(try).Center, box.Size, mask); !overlap {
			safe = try
			continue
		}

		res := SweepResult{Position: safe, Blocked: true}
		if i == 1 {
			res.Corner = true
			away := box.At(safe).Center.Sub(hit.Reference).Normalize()
			nudged := safe.Add(away.Mult(displacement.Length()))
			if _, overlap := g.Overlap(box.At(nudged).Center, box.Size, mask); !overlap {
				res.Position = nudged
				res.Nudged = true
			}
		}
		return res
	}

	return SweepResult{Position: safe, Blocked: true}
}
