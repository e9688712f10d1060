package ecs

import (
	"math"

	"github.com/milk9111/platformcore/ecs/component"
	"github.com/milk9111/platformcore/motion"
)

// World owns entities, component stores, the game clock and system order.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*sparseSet
	scheduler Scheduler
	events    EventQueue

	clock motion.ManualClock
	dt    float64
	ticks uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*sparseSet)}
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Step advances the game clock by dt and runs every system once. Events
// pushed during the previous step are dropped first so hosts can drain the
// current step's events after Step returns.
func (w *World) Step(dt float64) {
	if w == nil {
		return
	}
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	w.events.flush()
	w.clock.Advance(dt)
	w.dt = dt
	w.ticks++
	w.scheduler.Update(w)
}

// Clock is the world game clock. It only moves inside Step.
func (w *World) Clock() motion.Clock {
	return &w.clock
}

func (w *World) Now() float64 { return w.clock.Now() }

// DT is the step size of the step in progress.
func (w *World) DT() float64 { return w.dt }

func (w *World) Ticks() uint64 { return w.ticks }

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *sparseSet {
	s := w.stores[id]
	if s == nil && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*sparseSet)
		}
		s = &sparseSet{}
		w.stores[id] = s
	}
	return s
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. It reports false when e
// was not alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities lists the live entities in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}
