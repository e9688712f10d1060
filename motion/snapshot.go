package motion

import "github.com/jakecoffman/cp"

type Variant uint8

const (
	VariantBase Variant = iota
	VariantExtended
)

func (v Variant) String() string {
	switch v {
	case VariantBase:
		return "base"
	case VariantExtended:
		return "extended"
	default:
		return "unknown"
	}
}

// ExtendedFlags are the per-tick flags of the extended actor variant.
type ExtendedFlags struct {
	DoubleJumpingThisFrame bool
	Dashing                bool
}

// Snapshot is the read-only projection of one tick for cameras, animation,
// audio and UI. Consumers that care about extended flags ask AsExtended.
type Snapshot struct {
	Tick     uint64
	Time     float64
	Position cp.Vector
	// Velocity is the committed position delta of this tick divided by dt.
	Velocity cp.Vector
	// RawMovement is the desired displacement rate before collision.
	RawMovement cp.Vector
	Input       FrameInput

	Grounded         bool
	JumpingThisFrame bool
	LandingThisFrame bool

	Variant  Variant
	extended ExtendedFlags
}

func (s Snapshot) AsExtended() (ExtendedFlags, bool) {
	if s.Variant != VariantExtended {
		return ExtendedFlags{}, false
	}
	return s.extended, true
}
