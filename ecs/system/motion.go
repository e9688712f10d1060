package system

import (
	"log"

	"github.com/milk9111/platformcore/ecs"
	"github.com/milk9111/platformcore/ecs/component"
)

// MotionSystem samples each actor once and ticks its controller with the
// world step, then mirrors the committed position into the transform.
type MotionSystem struct {
	dashing map[ecs.Entity]bool
}

func NewMotionSystem() *MotionSystem {
	return &MotionSystem{dashing: make(map[ecs.Entity]bool)}
}

func (s *MotionSystem) Update(w *ecs.World) {
	dt := w.DT()
	if dt <= 0 {
		return
	}

	seen := make(map[ecs.Entity]bool, len(s.dashing))
	ecs.ForEach2(w, component.ActorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, actor *component.Actor, transform *component.Transform) {
		ctrl := actor.Controller
		if ctrl == nil {
			return
		}
		seen[e] = true

		in := zeroInput
		if actor.Sampler != nil {
			in = actor.Sampler.Sample()
		}

		if err := ctrl.Tick(dt, in); err != nil {
			log.Printf("MotionSystem: entity %s tick failed: %v", e, err)
			w.Events().Push(ecs.Event{Kind: ecs.EventTickFailed, Entity: e, Time: w.Now(), Err: err})
			return
		}
		if !ctrl.Active() {
			return
		}

		snap := ctrl.Snapshot()
		transform.Position = snap.Position
		transform.Facing = ctrl.State().Facing

		push := func(kind ecs.EventKind) {
			w.Events().Push(ecs.Event{Kind: kind, Entity: e, Time: snap.Time})
		}
		if snap.LandingThisFrame {
			push(ecs.EventLanded)
		}
		if snap.JumpingThisFrame {
			push(ecs.EventJumped)
		}
		if ext, ok := snap.AsExtended(); ok {
			if ext.DoubleJumpingThisFrame {
				push(ecs.EventAirJumped)
			}
			if ext.Dashing && !s.dashing[e] {
				push(ecs.EventDashed)
			}
			s.dashing[e] = ext.Dashing
		} else {
			delete(s.dashing, e)
		}
	})

	for e := range s.dashing {
		if !seen[e] {
			delete(s.dashing, e)
		}
	}
}

// Tracked reports how many actors carry dash edge state.
func (s *MotionSystem) Tracked() int {
	return len(s.dashing)
}
