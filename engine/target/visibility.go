package target

import (
	"log"

	"github.com/strafekit/aimassist/engine/geom"
)

// resolveVisibility runs the line-of-sight test for one tracked target and
// updates its Visible flag and pending trace handle.
//
// Synchronous mode blocks on a single trace. Asynchronous mode pipelines: a
// target that was visible last frame has a trace in flight, whose result is
// polled now; a fresh trace is only issued while the target stays visible.
// The handle is cleared whenever no trace is left pending.
func resolveVisibility(tracer Tracer, t *Tracked, from, to geom.Vec3, params TraceParams, async bool) {
	if async && t.Visible {
		// A pipelined trace was expected. Its absence, or a result that has
		// not arrived, is a failed query: conservatively invisible.
		if t.TraceHandle == NoTrace {
			log.Printf("aimassist: visibility trace missing for shape %d", t.ShapeID)
			t.Visible = false
			return
		}
		blocked, ready := tracer.Poll(t.TraceHandle)
		t.TraceHandle = NoTrace
		if !ready {
			log.Printf("aimassist: visibility trace not ready for shape %d", t.ShapeID)
			t.Visible = false
			return
		}
		t.Visible = !blocked
		if t.Visible {
			t.TraceHandle = tracer.LineTraceAsync(from, to, ChannelVisibility, params)
		}
		return
	}

	t.Visible = !tracer.LineTrace(from, to, ChannelVisibility, params)
	if async && t.Visible {
		t.TraceHandle = tracer.LineTraceAsync(from, to, ChannelVisibility, params)
	} else {
		t.TraceHandle = NoTrace
	}
}
