package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformcore/ecs"
	"github.com/milk9111/platformcore/ecs/component"
	"github.com/milk9111/platformcore/ecs/system"
	"github.com/milk9111/platformcore/motion"
	"github.com/milk9111/platformcore/prefabs"
)

const botPrefab = "bot.yaml"

// NewBot spawns a scripted actor from bot.yaml. A "script" prop overrides
// the prefab's script; every prop is visible to the script as params.
func NewBot(w *ecs.World, name string, geometry motion.Geometry, spawn cp.Vector, props map[string]interface{}) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec(botPrefab)
	if err != nil {
		return 0, fmt.Errorf("bot: load spec: %w", err)
	}

	script := spec.Script
	if s, ok := props["script"].(string); ok && s != "" {
		script = s
	}
	if script == "" {
		return 0, fmt.Errorf("bot: %s has no script", name)
	}

	e, err := NewActor(w, name, botPrefab, spec, geometry, spawn, func(ctrl *motion.Controller) (motion.Sampler, error) {
		return system.NewScriptSampler(script, props, ctrl, w.Clock())
	})
	if err != nil {
		return 0, fmt.Errorf("bot: %w", err)
	}
	if err := ecs.Add(w, e, component.BotTagComponent.Kind(), &component.BotTag{}); err != nil {
		return 0, fmt.Errorf("bot: add bot tag: %w", err)
	}
	return e, nil
}
