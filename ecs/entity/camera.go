package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformcore/ecs"
	"github.com/milk9111/platformcore/ecs/component"
	"github.com/milk9111/platformcore/prefabs"
)

const cameraPrefab = "camera.yaml"

// NewCamera spawns a camera from camera.yaml. A non-empty target overrides
// the prefab's.
func NewCamera(w *ecs.World, name string, spawn cp.Vector, target string) (ecs.Entity, error) {
	spec, err := prefabs.LoadCameraSpec(cameraPrefab)
	if err != nil {
		return 0, fmt.Errorf("camera: load spec: %w", err)
	}
	if target == "" {
		target = spec.Target
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
		return 0, fmt.Errorf("camera: add name: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: spawn}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Prefab:     cameraPrefab,
		TargetName: target,
		Offset:     spec.Offset,
		Params:     spec.Params(),
		Position:   spawn,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera: %w", err)
	}
	return e, nil
}
