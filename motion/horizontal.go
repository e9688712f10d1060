package motion

import "github.com/milk9111/platformcore/common"

// StepHorizontal integrates walk speed for one tick. apex is the apex factor
// in [0, 1] from the previous tick; near the top of a jump it adds a small
// boost in the input direction.
func StepHorizontal(speed float64, in FrameInput, contacts Contacts, apex, dt float64, cfg WalkConfig) float64 {
	if in.X != 0 {
		speed += in.X * cfg.Acceleration * dt
		speed = common.Clamp(speed, -cfg.MoveClamp, cfg.MoveClamp)
		speed += common.Sign(in.X) * cfg.ApexBonus * apex * dt
		// the bonus may not push past the clamp either
		speed = common.Clamp(speed, -cfg.MoveClamp, cfg.MoveClamp)
	} else {
		speed = common.MoveTowards(speed, 0, cfg.DeAcceleration*dt)
	}

	if (speed > 0 && contacts.Right) || (speed < 0 && contacts.Left) {
		speed = 0
	}
	return speed
}
