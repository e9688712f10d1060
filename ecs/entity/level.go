package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/platformcore/ecs"
	"github.com/milk9111/platformcore/levels"
	"github.com/milk9111/platformcore/motion"
)

// BuildLevel spawns every entity the level places. input drives the player.
// Unknown entity types are logged and skipped.
func BuildLevel(w *ecs.World, lvl *levels.Level, geometry motion.Geometry, input motion.Sampler) error {
	for i, ent := range lvl.Entities {
		name := ent.Name
		if name == "" {
			name = fmt.Sprintf("%s_%d", ent.Type, i)
		}

		var err error
		switch ent.Type {
		case "player":
			_, err = NewPlayer(w, name, geometry, ent.Position(), input)
		case "bot":
			_, err = NewBot(w, name, geometry, ent.Position(), ent.Props)
		case "camera":
			target, _ := ent.Props["target"].(string)
			_, err = NewCamera(w, name, ent.Position(), target)
		default:
			log.Printf("BuildLevel: %s: unknown entity type %q", lvl.Name, ent.Type)
			continue
		}
		if err != nil {
			return fmt.Errorf("level %s: %w", lvl.Name, err)
		}
	}
	return nil
}
