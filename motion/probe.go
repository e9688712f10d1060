package motion

// Contacts is the result of one probe pass.
type Contacts struct {
	Up, Right, Down, Left bool

	// Edges relative to the previous tick's Down.
	Landed     bool
	LeftGround bool
}

func (c Contacts) Grounded() bool { return c.Down }

// Probe casts count rays of length from each fan and reports which faces are
// touching geometry on mask.
func Probe(g Geometry, fans RayFans, count int, length float64, mask LayerMask) Contacts {
	return Contacts{
		Up:    detect(g, fans.Up, count, length, mask),
		Right: detect(g, fans.Right, count, length, mask),
		Down:  detect(g, fans.Down, count, length, mask),
		Left:  detect(g, fans.Left, count, length, mask),
	}
}

func detect(g Geometry, r RayRange, count int, length float64, mask LayerMask) bool {
	for i := 0; i < count; i++ {
		if _, ok := g.Raycast(r.Point(i, count), r.Dir, length, mask); ok {
			return true
		}
	}
	return false
}

// withEdges fills the landing and leaving edges against the previous
// grounded state.
func (c Contacts) withEdges(wasGrounded bool) Contacts {
	c.Landed = !wasGrounded && c.Down
	c.LeftGround = wasGrounded && !c.Down
	return c
}
