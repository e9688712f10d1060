package system

import (
	"log"

	"github.com/milk9111/platformcore/ecs"
	"github.com/milk9111/platformcore/ecs/component"
	"github.com/milk9111/platformcore/telemetry"
)

// TraceSystem appends one row per traced actor per step and flushes every
// FlushEvery steps.
type TraceSystem struct {
	writer     *telemetry.TraceWriter
	FlushEvery int
	steps      int
}

func NewTraceSystem(writer *telemetry.TraceWriter) *TraceSystem {
	return &TraceSystem{writer: writer, FlushEvery: 60}
}

func (ts *TraceSystem) Update(w *ecs.World) {
	if ts.writer == nil {
		return
	}
	ecs.ForEach2(w, component.ActorComponent.Kind(), component.TraceComponent.Kind(), func(e ecs.Entity, actor *component.Actor, trace *component.Trace) {
		if actor.Controller == nil || !actor.Controller.Active() {
			return
		}
		label := trace.Label
		if label == "" {
			label = e.String()
		}
		ts.writer.Append(telemetry.RowFromSnapshot(label, actor.Controller.Snapshot()))
	})

	ts.steps++
	if ts.FlushEvery > 0 && ts.steps%ts.FlushEvery == 0 {
		if err := ts.Flush(); err != nil {
			log.Printf("TraceSystem: %v", err)
		}
	}
}

func (ts *TraceSystem) Flush() error {
	return ts.writer.Flush()
}

// Rows is the number of rows written so far.
func (ts *TraceSystem) Rows() int {
	return ts.writer.Written()
}
