package motion

import (
	"math"

	"github.com/milk9111/platformcore/common"
)

// State is the motion state carried across ticks for one actor.
type State struct {
	HorizontalSpeed float64
	VerticalSpeed   float64
	FallSpeed       float64
	Apex            float64

	EndedJumpEarly        bool
	CoyoteUsable          bool
	LastGroundedLeaveTime float64
	LastJumpPressedTime   float64

	// Extended variant.
	AirJumpsLeft  int
	DashUsable    bool
	DashTimeLeft  float64
	DashDirection float64
	Facing        float64
}

func newState(cfg Config) State {
	return State{
		FallSpeed:             cfg.Gravity.MinFallSpeed,
		EndedJumpEarly:        true,
		LastGroundedLeaveTime: math.Inf(-1),
		LastJumpPressedTime:   math.Inf(-1),
		AirJumpsLeft:          cfg.Extras.AirJumps,
		DashUsable:            cfg.Extras.dashEnabled(),
		Facing:                1,
	}
}

// finite reports whether every real-valued field is finite. The time stamps
// may legitimately be -Inf.
func (s State) finite() bool {
	for _, v := range []float64{s.HorizontalSpeed, s.VerticalSpeed, s.FallSpeed, s.Apex, s.DashTimeLeft, s.DashDirection} {
		if !common.IsFinite(v) {
			return false
		}
	}
	return !math.IsNaN(s.LastGroundedLeaveTime) && !math.IsNaN(s.LastJumpPressedTime)
}
