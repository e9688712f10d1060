package motion

import "math"

// CanUseCoyote reports whether a jump press is still honoured after walking
// off a ledge.
func CanUseCoyote(st State, grounded bool, now float64, cfg JumpConfig) bool {
	return st.CoyoteUsable && !grounded && now <= st.LastGroundedLeaveTime+cfg.CoyoteTime
}

// HasBufferedJump reports whether a press shortly before landing should fire
// now that the actor is grounded.
func HasBufferedJump(st State, grounded bool, now float64, cfg JumpConfig) bool {
	return grounded && now <= st.LastJumpPressedTime+cfg.BufferTime
}

type JumpResult struct {
	Jumped     bool
	AirJumped  bool
	EndedEarly bool
}

// ApplyJump runs the jump rules for one tick against st. The press time is
// recorded by the caller before this runs.
func ApplyJump(st *State, in FrameInput, contacts Contacts, now float64, cfg JumpConfig, extras ExtrasConfig) JumpResult {
	var res JumpResult
	grounded := contacts.Down

	switch {
	case (in.JumpPressed && CanUseCoyote(*st, grounded, now, cfg)) || HasBufferedJump(*st, grounded, now, cfg):
		launch(st, cfg)
		res.Jumped = true
	case in.JumpPressed && !grounded && st.AirJumpsLeft > 0 && extras.AirJumps > 0:
		launch(st, cfg)
		st.AirJumpsLeft--
		res.Jumped = true
		res.AirJumped = true
	}

	if !grounded && in.JumpReleased && !st.EndedJumpEarly && st.VerticalSpeed > 0 {
		st.EndedJumpEarly = true
		res.EndedEarly = true
	}

	if contacts.Up && st.VerticalSpeed > 0 {
		st.VerticalSpeed = 0
	}
	return res
}

func launch(st *State, cfg JumpConfig) {
	st.VerticalSpeed = cfg.LaunchSpeed
	st.EndedJumpEarly = false
	st.CoyoteUsable = false
	st.LastGroundedLeaveTime = math.Inf(-1)
}
