package system

import "github.com/milk9111/platformcore/motion"

var zeroInput motion.FrameInput

// Replay feeds a fixed sequence of inputs, one per Sample, then zero input.
type Replay struct {
	Inputs []motion.FrameInput
	next   int
}

func (r *Replay) Sample() motion.FrameInput {
	if r == nil || r.next >= len(r.Inputs) {
		return zeroInput
	}
	in := r.Inputs[r.next]
	r.next++
	return in
}

// Held describes one tick of held buttons for NewReplay.
type Held struct {
	X    float64
	Jump bool
	Dash bool
}

// NewReplay derives press and release edges from held button states.
func NewReplay(held ...Held) *Replay {
	var jump, dash motion.ButtonEdges
	inputs := make([]motion.FrameInput, 0, len(held)+1)
	for _, h := range held {
		jp, jr := jump.Update(h.Jump)
		dp, _ := dash.Update(h.Dash)
		inputs = append(inputs, motion.FrameInput{X: h.X, JumpPressed: jp, JumpReleased: jr, DashPressed: dp})
	}
	// release whatever is still down on the tick after the last
	if _, jr := jump.Update(false); jr {
		inputs = append(inputs, motion.FrameInput{JumpReleased: true})
	}
	return &Replay{Inputs: inputs}
}
