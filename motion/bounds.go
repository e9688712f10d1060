package motion

import "github.com/jakecoffman/cp"

// Box is the actor's collision box relative to its position.
type Box struct {
	Center cp.Vector `yaml:"center"`
	Size   cp.Vector `yaml:"size"`
}

func (b Box) At(position cp.Vector) Bounds {
	return Bounds{Center: position.Add(b.Center), Size: b.Size}
}

// Bounds is an axis-aligned box in world space.
type Bounds struct {
	Center cp.Vector
	Size   cp.Vector
}

func (b Bounds) Extents() cp.Vector { return b.Size.Mult(0.5) }

func (b Bounds) Min() cp.Vector { return b.Center.Sub(b.Extents()) }

func (b Bounds) Max() cp.Vector { return b.Center.Add(b.Extents()) }

func (b Bounds) BB() cp.BB {
	min, max := b.Min(), b.Max()
	return cp.BB{L: min.X, B: min.Y, R: max.X, T: max.Y}
}

// Expand grows (or with a negative amount, shrinks) every side by amount.
func (b Bounds) Expand(amount float64) Bounds {
	return Bounds{Center: b.Center, Size: b.Size.Add(cp.Vector{X: 2 * amount, Y: 2 * amount})}
}

// RayRange is a segment along one face of the bounds. Rays are cast from
// evenly spaced points on it in Dir.
type RayRange struct {
	Start, End cp.Vector
	Dir        cp.Vector
}

// Point returns the i-th of count evenly spaced origins, endpoints included.
func (r RayRange) Point(i, count int) cp.Vector {
	if count < 2 {
		return r.Start.Lerp(r.End, 0.5)
	}
	return r.Start.Lerp(r.End, float64(i)/float64(count-1))
}

type RayFans struct {
	Up, Right, Down, Left RayRange
}

// CalculateRayFans places one range on each face of b, inset by buffer so a
// face's rays do not graze the geometry the neighbouring face rests on.
func CalculateRayFans(b Bounds, buffer float64) RayFans {
	min, max := b.Min(), b.Max()
	return RayFans{
		Down: RayRange{
			Start: cp.Vector{X: min.X + buffer, Y: min.Y},
			End:   cp.Vector{X: max.X - buffer, Y: min.Y},
			Dir:   cp.Vector{X: 0, Y: -1},
		},
		Up: RayRange{
			Start: cp.Vector{X: min.X + buffer, Y: max.Y},
			End:   cp.Vector{X: max.X - buffer, Y: max.Y},
			Dir:   cp.Vector{X: 0, Y: 1},
		},
		Left: RayRange{
			Start: cp.Vector{X: min.X, Y: min.Y + buffer},
			End:   cp.Vector{X: min.X, Y: max.Y - buffer},
			Dir:   cp.Vector{X: -1, Y: 0},
		},
		Right: RayRange{
			Start: cp.Vector{X: max.X, Y: min.Y + buffer},
			End:   cp.Vector{X: max.X, Y: max.Y - buffer},
			Dir:   cp.Vector{X: 1, Y: 0},
		},
	}
}
