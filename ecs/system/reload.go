package system

import (
	"log"

	"github.com/milk9111/platformcore/ecs"
	"github.com/milk9111/platformcore/ecs/component"
	"github.com/milk9111/platformcore/prefabs"
)

// ChangeSource yields prefab edits without blocking; *prefabs.Watcher is
// the production one.
type ChangeSource interface {
	Pending() []prefabs.Change
}

// ReloadSystem applies prefab edits at the start of a step. A spec that fails
// to load or validate is logged and the running tuning is kept.
type ReloadSystem struct {
	src ChangeSource
}

func NewReloadSystem(src ChangeSource) *ReloadSystem {
	return &ReloadSystem{src: src}
}

func (rs *ReloadSystem) Update(w *ecs.World) {
	if rs.src == nil {
		return
	}
	for _, change := range rs.src.Pending() {
		switch change.Kind {
		case prefabs.ChangeSpec:
			reloadActors(w, change.Name)
			reloadCameras(w, change.Name)
		case prefabs.ChangeScript:
			reloadScripts(w, change.Name)
		}
	}
}

func reloadActors(w *ecs.World, name string) {
	var users []*component.Actor
	ecs.ForEach(w, component.ActorComponent.Kind(), func(_ ecs.Entity, a *component.Actor) {
		if a.Prefab == name && a.Controller != nil {
			users = append(users, a)
		}
	})
	if len(users) == 0 {
		return
	}

	spec, err := prefabs.LoadPlayerSpec(name)
	if err != nil {
		log.Printf("ReloadSystem: %v", err)
		return
	}
	for _, a := range users {
		if err := a.Controller.Reconfigure(spec.Motion); err != nil {
			log.Printf("ReloadSystem: %s: %v", name, err)
			return
		}
	}
	log.Printf("ReloadSystem: %s applied to %d actors", name, len(users))
}

func reloadCameras(w *ecs.World, name string) {
	var users []*component.Camera
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, c *component.Camera) {
		if c.Prefab == name {
			users = append(users, c)
		}
	})
	if len(users) == 0 {
		return
	}

	spec, err := prefabs.LoadCameraSpec(name)
	if err != nil {
		log.Printf("ReloadSystem: %v", err)
		return
	}
	for _, c := range users {
		// the camera system retunes from the current output
		c.Params = spec.Params()
		c.Offset = spec.Offset
	}
	log.Printf("ReloadSystem: %s applied to %d cameras", name, len(users))
}

func reloadScripts(w *ecs.World, name string) {
	key := prefabs.ScriptKey(name)
	ecs.ForEach(w, component.ActorComponent.Kind(), func(e ecs.Entity, a *component.Actor) {
		s, ok := a.Sampler.(*ScriptSampler)
		if !ok || prefabs.ScriptKey(s.Path()) != key {
			return
		}
		if err := s.Reload(); err != nil {
			log.Printf("ReloadSystem: entity %s: %v", e, err)
			return
		}
		log.Printf("ReloadSystem: entity %s reloaded %s", e, key)
	})
}
