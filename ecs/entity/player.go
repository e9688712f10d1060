package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformcore/ecs"
	"github.com/milk9111/platformcore/ecs/component"
	"github.com/milk9111/platformcore/motion"
	"github.com/milk9111/platformcore/prefabs"
)

const playerPrefab = "player.yaml"

// NewPlayer spawns the player from player.yaml. input may be nil for a
// player that stands still.
func NewPlayer(w *ecs.World, name string, geometry motion.Geometry, spawn cp.Vector, input motion.Sampler) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec(playerPrefab)
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}

	var factory SamplerFactory
	if input != nil {
		factory = func(*motion.Controller) (motion.Sampler, error) { return input, nil }
	}
	e, err := NewActor(w, name, playerPrefab, spec, geometry, spawn, factory)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	return e, nil
}
