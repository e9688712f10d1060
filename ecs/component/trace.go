package component

// Trace marks an actor whose snapshots are written to the telemetry trace.
type Trace struct {
	Label string
}

var TraceComponent = NewComponent[Trace]()
