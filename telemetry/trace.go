package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/milk9111/platformcore/motion"
)

// TraceRow is one actor snapshot as written to the trace CSV.
type TraceRow struct {
	Tick     uint64  `csv:"tick"`
	Time     float64 `csv:"time"`
	Actor    string  `csv:"actor"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	VX       float64 `csv:"vx"`
	VY       float64 `csv:"vy"`
	RawX     float64 `csv:"raw_x"`
	RawY     float64 `csv:"raw_y"`
	InputX   float64 `csv:"input_x"`
	Grounded bool    `csv:"grounded"`
	Jumping  bool    `csv:"jumping"`
	Landing  bool    `csv:"landing"`
	AirJump  bool    `csv:"air_jump"`
	Dashing  bool    `csv:"dashing"`
	Variant  string  `csv:"variant"`
}

// RowFromSnapshot flattens a snapshot for the actor labelled actor.
func RowFromSnapshot(actor string, s motion.Snapshot) TraceRow {
	row := TraceRow{
		Tick:     s.Tick,
		Time:     s.Time,
		Actor:    actor,
		X:        s.Position.X,
		Y:        s.Position.Y,
		VX:       s.Velocity.X,
		VY:       s.Velocity.Y,
		RawX:     s.RawMovement.X,
		RawY:     s.RawMovement.Y,
		InputX:   s.Input.X,
		Grounded: s.Grounded,
		Jumping:  s.JumpingThisFrame,
		Landing:  s.LandingThisFrame,
		Variant:  s.Variant.String(),
	}
	if ext, ok := s.AsExtended(); ok {
		row.AirJump = ext.DoubleJumpingThisFrame
		row.Dashing = ext.Dashing
	}
	return row
}

// TraceWriter batches rows and writes them as CSV on Flush. The header is
// written with the first batch only.
type TraceWriter struct {
	out           io.Writer
	pending       []TraceRow
	headerWritten bool
	written       int
}

func NewTraceWriter(out io.Writer) *TraceWriter {
	return &TraceWriter{out: out}
}

func (tw *TraceWriter) Append(row TraceRow) {
	if tw == nil {
		return
	}
	tw.pending = append(tw.pending, row)
}

// Flush writes pending rows. A nil writer is a no-op so callers can run
// without a trace.
func (tw *TraceWriter) Flush() error {
	if tw == nil || tw.out == nil || len(tw.pending) == 0 {
		return nil
	}

	if !tw.headerWritten {
		if err := gocsv.Marshal(tw.pending, tw.out); err != nil {
			return fmt.Errorf("telemetry: write trace: %w", err)
		}
		tw.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(tw.pending, tw.out); err != nil {
			return fmt.Errorf("telemetry: write trace: %w", err)
		}
	}

	tw.written += len(tw.pending)
	tw.pending = tw.pending[:0]
	return nil
}

// Written is the number of rows flushed so far.
func (tw *TraceWriter) Written() int {
	if tw == nil {
		return 0
	}
	return tw.written
}
