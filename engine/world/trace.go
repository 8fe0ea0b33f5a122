package world

import (
	"math"

	"github.com/google/uuid"

	"github.com/strafekit/aimassist/engine/geom"
	"github.com/strafekit/aimassist/engine/target"
)

// segmentHitsBox runs a slab test of the segment from->to against an AABB,
// accepting hits with parameter t in (0, 1].
func segmentHitsBox(from, to geom.Vec3, b geom.Box3) bool {
	dir := to.Sub(from)
	tMin, tMax := 0.0, 1.0
	for axis := 0; axis < 3; axis++ {
		var o, d, lo, hi float64
		switch axis {
		case 0:
			o, d, lo, hi = from.X, dir.X, b.Min.X, b.Max.X
		case 1:
			o, d, lo, hi = from.Y, dir.Y, b.Min.Y, b.Max.Y
		default:
			o, d, lo, hi = from.Z, dir.Z, b.Min.Z, b.Max.Z
		}
		if math.Abs(d) < 1e-12 {
			if o < lo || o > hi {
				return false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return tMax > 0
}

// LineTrace implements target.Tracer. Static blockers and sight-blocking
// actor shapes occlude the segment; ignored actors never do.
func (w *World) LineTrace(from, to geom.Vec3, channel target.Channel, params target.TraceParams) bool {
	if channel != target.ChannelVisibility {
		return false
	}
	for _, b := range w.blockers {
		if segmentHitsBox(from, to, b) {
			return true
		}
	}
	for _, id := range w.order {
		if params.Ignore[id] {
			continue
		}
		a := w.actors[id]
		if a.Shape == nil || !a.BlocksSight {
			continue
		}
		if segmentHitsBox(from, to, shapeBounds(a.Shape)) {
			return true
		}
	}
	return false
}

type traceRequest struct {
	handle   target.TraceHandle
	from, to geom.Vec3
	channel  target.Channel
	params   target.TraceParams
}

// traceQueue resolves visibility traces with exactly one step of latency:
// requests queued during a frame are evaluated by the next Step, and their
// results survive until the step after that.
type traceQueue struct {
	pending []traceRequest
	results map[target.TraceHandle]bool
}

// LineTraceAsync implements target.Tracer.
func (w *World) LineTraceAsync(from, to geom.Vec3, channel target.Channel, params target.TraceParams) target.TraceHandle {
	// Copy the ignore set: the caller may reuse its map next frame.
	ignore := make(map[target.ActorID]bool, len(params.Ignore))
	for id := range params.Ignore {
		ignore[id] = true
	}
	params.Ignore = ignore

	h := uuid.New()
	w.traces.pending = append(w.traces.pending, traceRequest{
		handle: h, from: from, to: to, channel: channel, params: params,
	})
	return h
}

// Poll implements target.Tracer.
func (w *World) Poll(h target.TraceHandle) (blocked, ready bool) {
	if b, ok := w.traces.results[h]; ok {
		delete(w.traces.results, h)
		return b, true
	}
	return false, false
}

func (q *traceQueue) resolve(w *World) {
	// Unpolled results from the previous step are dropped now.
	q.results = make(map[target.TraceHandle]bool, len(q.pending))
	for _, r := range q.pending {
		q.results[r.handle] = w.LineTrace(r.from, r.to, r.channel, r.params)
	}
	q.pending = q.pending[:0]
}
