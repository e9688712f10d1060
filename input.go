package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformcore/motion"
)

// stickDeadzone is how far the left stick must lean before it counts as
// horizontal input.
const stickDeadzone = 0.3

// KeyboardSampler reads the keyboard and the first gamepad once per tick.
// Edges are derived from held state so a press is seen exactly once even if
// ebiten skips a frame.
type KeyboardSampler struct {
	jump motion.ButtonEdges
	dash motion.ButtonEdges
}

var _ motion.Sampler = (*KeyboardSampler)(nil)

func NewKeyboardSampler() *KeyboardSampler {
	return &KeyboardSampler{}
}

func (k *KeyboardSampler) Sample() motion.FrameInput {
	var moveX float64
	// Keyboard D/A or arrows
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}

	jumpHeld := ebiten.IsKeyPressed(ebiten.KeySpace)
	dashHeld := ebiten.IsKeyPressed(ebiten.KeyShiftLeft)

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -stickDeadzone {
			moveX = -1
		} else if leftX > stickDeadzone {
			moveX = 1
		}

		// A jumps, X dashes (standard mapping)
		jumpHeld = jumpHeld || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		dashHeld = dashHeld || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightLeft)
	}

	in := motion.FrameInput{X: moveX}
	in.JumpPressed, in.JumpReleased = k.jump.Update(jumpHeld)
	in.DashPressed, _ = k.dash.Update(dashHeld)
	return in
}
