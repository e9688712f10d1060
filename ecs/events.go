package ecs

// EventKind names a gameplay edge raised by a system.
type EventKind string

const (
	EventJumped     EventKind = "jumped"
	EventAirJumped  EventKind = "air_jumped"
	EventLanded     EventKind = "landed"
	EventDashed     EventKind = "dashed"
	EventTickFailed EventKind = "tick_failed"
)

// Event is raised during a step and readable until the next step begins.
type Event struct {
	Kind   EventKind
	Entity Entity
	Time   float64
	Err    error
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
