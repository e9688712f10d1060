package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformcore/ecs"
	"github.com/milk9111/platformcore/ecs/component"
	"github.com/milk9111/platformcore/motion"
	"github.com/milk9111/platformcore/prefabs"
)

// SamplerFactory builds an actor's input source once its controller exists.
type SamplerFactory func(ctrl *motion.Controller) (motion.Sampler, error)

// NewActor spawns a controller-driven entity from the PlayerSpec loaded from the
// prefab file. The controller uses the world clock and is active immediately.
func NewActor(w *ecs.World, name, prefab string, spec *prefabs.PlayerSpec, geometry motion.Geometry, spawn cp.Vector, sampler SamplerFactory) (ecs.Entity, error) {
	ctrl, err := motion.NewController(spec.Motion, geometry, w.Clock(), spawn)
	if err != nil {
		return 0, fmt.Errorf("%s: controller: %w", name, err)
	}
	if err := ctrl.Activate(); err != nil {
		return 0, fmt.Errorf("%s: activate: %w", name, err)
	}

	actor := &component.Actor{Prefab: prefab, Controller: ctrl}
	if sampler != nil {
		if actor.Sampler, err = sampler(ctrl); err != nil {
			return 0, fmt.Errorf("%s: sampler: %w", name, err)
		}
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
		return 0, fmt.Errorf("%s: add name: %w", name, err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: spawn, Facing: 1}); err != nil {
		return 0, fmt.Errorf("%s: add transform: %w", name, err)
	}
	if err := ecs.Add(w, e, component.ActorComponent.Kind(), actor); err != nil {
		return 0, fmt.Errorf("%s: add actor: %w", name, err)
	}
	if err := ecs.Add(w, e, component.TraceComponent.Kind(), &component.Trace{Label: name}); err != nil {
		return 0, fmt.Errorf("%s: add trace: %w", name, err)
	}
	return e, nil
}
