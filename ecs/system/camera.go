package system

import (
	"log"

	"github.com/milk9111/platformcore/dynamics"
	"github.com/milk9111/platformcore/ecs"
	"github.com/milk9111/platformcore/ecs/component"
)

// CameraSystem eases each camera toward its target's transform through a
// second-order filter.
type CameraSystem struct {
	targets map[ecs.Entity]ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{targets: make(map[ecs.Entity]ecs.Entity)}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	dt := w.DT()
	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, cam *component.Camera, transform *component.Transform) {
		target, ok := cs.targets[e]
		if !ok || !ecs.IsAlive(w, target) {
			target, ok = FindByName(w, cam.TargetName)
			if !ok {
				return
			}
			cs.targets[e] = target
		}

		targetTransform, ok := ecs.Get(w, target, component.TransformComponent.Kind())
		if !ok {
			return
		}
		goal := targetTransform.Position.Add(cam.Offset)

		if cam.Filter == nil {
			filter, err := dynamics.New(cam.Params, goal)
			if err != nil {
				log.Printf("CameraSystem: entity %s: %v", e, err)
				return
			}
			cam.Filter = filter
		} else if err := cam.Filter.Retune(cam.Params); err != nil {
			log.Printf("CameraSystem: entity %s retune: %v", e, err)
		}

		cam.Position = cam.Filter.Update(dt, goal)
		transform.Position = cam.Position
	})
}

// FindByName returns the live entity whose Name component matches name.
func FindByName(w *ecs.World, name string) (ecs.Entity, bool) {
	if name == "" {
		return 0, false
	}
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if !found.Valid() && n.Value == name {
			found = e
		}
	})
	return found, found.Valid()
}
