package component

import "github.com/milk9111/platformcore/motion"

// Actor is a controller-driven body. Sampler is polled once per step. Prefab
// is the prefab file the controller was tuned from.
type Actor struct {
	Prefab     string
	Controller *motion.Controller
	Sampler    motion.Sampler
}

var ActorComponent = NewComponent[Actor]()
