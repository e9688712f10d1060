package motion

import (
	"math"

	"github.com/milk9111/platformcore/common"
)

// JumpApex returns the apex factor and the fall speed for this tick. On the
// ground the factor is 0 and the fall speed is left alone.
func JumpApex(grounded bool, measuredVY, fallSpeed float64, cfg GravityConfig) (apex, fall float64) {
	if grounded {
		return 0, fallSpeed
	}
	apex = common.InverseLerp(cfg.ApexThreshold, 0, math.Abs(measuredVY))
	return apex, common.Lerp(cfg.MinFallSpeed, cfg.MaxFallSpeed, apex)
}

// StepVertical applies gravity for one tick. A grounded actor never keeps a
// downward speed; an airborne one accelerates down to cfg.FallClamp.
func StepVertical(speed float64, grounded, endedJumpEarly bool, fallSpeed, dt float64, cfg GravityConfig, earlyReleaseModifier float64) float64 {
	if grounded {
		if speed < 0 {
			speed = 0
		}
		return speed
	}

	fall := fallSpeed
	if endedJumpEarly && speed > 0 {
		fall *= earlyReleaseModifier
	}
	speed -= fall * dt
	if speed < cfg.FallClamp {
		speed = cfg.FallClamp
	}
	return speed
}
