package system

import (
	"github.com/milk9111/platformcore/debugfeed"
	"github.com/milk9111/platformcore/ecs"
	"github.com/milk9111/platformcore/ecs/component"
)

// Publisher receives inspection frames; *debugfeed.Hub is the production
// one.
type Publisher interface {
	Publish(frame debugfeed.Frame)
}

// FeedSystem publishes every actor's inspection each step.
type FeedSystem struct {
	pub Publisher
}

func NewFeedSystem(pub Publisher) *FeedSystem {
	return &FeedSystem{pub: pub}
}

func (fs *FeedSystem) Update(w *ecs.World) {
	if fs.pub == nil {
		return
	}
	ecs.ForEach(w, component.ActorComponent.Kind(), func(e ecs.Entity, actor *component.Actor) {
		if actor.Controller == nil {
			return
		}
		name := e.String()
		if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok {
			name = n.Value
		}
		fs.pub.Publish(debugfeed.NewFrame(name, actor.Controller.Inspect(), actor.Controller.Snapshot()))
	})
}
