// Package target implements the per-frame target discovery, filtering,
// scoring and visibility pipeline behind gamepad aim assist.
package target

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/strafekit/aimassist/engine/geom"
)

// ActorID identifies a world actor. Zero means "no actor".
type ActorID uint64

// ShapeID identifies a targetable shape. Zero means "no shape".
type ShapeID uint64

var shapeCounter uint64

// NewShapeID generates a unique shape ID.
func NewShapeID() ShapeID {
	return ShapeID(atomic.AddUint64(&shapeCounter, 1))
}

// Channel selects which collision responses a spatial query tests against.
type Channel uint8

const (
	// ChannelAimAssist is the overlap channel targetable shapes respond to.
	ChannelAimAssist Channel = iota
	// ChannelVisibility is the blocking channel line-of-sight tests run on.
	ChannelVisibility
)

// ShapeKind enumerates the supported target shape primitives.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapeCapsule
)

// Shape is a targetable collision primitive owned by a world actor. The
// pipeline never owns a Shape's lifetime; it holds the ID and re-resolves
// liveness through the Scene each frame.
type Shape struct {
	ID    ShapeID
	Owner ActorID
	Kind  ShapeKind

	// Origin is the shape center in the transform's local space.
	Origin geom.Vec3

	HalfExtents geom.Vec3 // box
	Radius      float64   // sphere, capsule
	HalfHeight  float64   // capsule, along local up

	Transform geom.Transform

	// Smoothed, when set, overrides Transform for scoring. An articulated
	// body's primary capsule snaps with replication; its visual mesh pose
	// does not.
	Smoothed *geom.Transform
}

// WorldTransform returns the transform scoring should project through.
func (s *Shape) WorldTransform() geom.Transform {
	if s.Smoothed != nil {
		return *s.Smoothed
	}
	return s.Transform
}

// Location returns the shape center in world space.
func (s *Shape) Location() geom.Vec3 {
	return s.WorldTransform().TransformPoint(s.Origin)
}

// VisibilityPoint returns the point line-of-sight tests aim for: the upper
// portion of the shape, where a body's eyes sit.
func (s *Shape) VisibilityPoint() geom.Vec3 {
	tr := s.WorldTransform()
	switch s.Kind {
	case ShapeCapsule:
		return tr.TransformPoint(s.Origin.Add(geom.V3(0, 0, s.HalfHeight*0.75)))
	case ShapeBox:
		return tr.TransformPoint(s.Origin.Add(geom.V3(0, 0, s.HalfExtents.Z*0.75)))
	default:
		return tr.TransformPoint(s.Origin)
	}
}

// Degenerate reports whether the shape has no usable volume.
func (s *Shape) Degenerate() bool {
	switch s.Kind {
	case ShapeBox:
		return s.HalfExtents.X <= 0 || s.HalfExtents.Y <= 0 || s.HalfExtents.Z <= 0
	case ShapeSphere:
		return s.Radius <= 0
	case ShapeCapsule:
		return s.Radius <= 0 || s.HalfHeight <= 0
	}
	return true
}

// Options is what a targetable entity reports about itself each frame. It is
// consumed immediately into a Tracked entry and never stored.
type Options struct {
	Shape  *Shape
	Active bool
	Tags   []string
}

// Provider is the capability interface any discoverable actor or
// sub-component may implement to offer itself as an assist target.
type Provider interface {
	GatherTargetOptions() Options
}

// Candidate is one spatial query result: the actor hit and, when it exposes
// the capability, its target provider.
type Candidate struct {
	Actor    ActorID
	Provider Provider
}

// Scene is the world-query collaborator: spatial overlaps plus the
// team/health/class/attachment lookups the filter needs.
type Scene interface {
	// Overlap runs an oriented-box overlap on a channel and returns every
	// actor whose shapes intersect the volume, excluding ignored actors.
	// The returned slice is owned by the caller, which may filter it in
	// place; implementations must hand out a fresh slice per call.
	Overlap(center geom.Vec3, orient geom.Rotator, halfExtents geom.Vec3, channel Channel, ignore map[ActorID]bool) []Candidate
	// ResolveShape checks a shape handle for liveness.
	ResolveShape(id ShapeID) (*Shape, bool)

	TeamOf(id ActorID) int
	DeadOrDying(id ActorID) bool
	KindOf(id ActorID) string
	AttachmentsOf(id ActorID) []ActorID
}

// TraceHandle identifies a pending asynchronous visibility trace.
type TraceHandle = uuid.UUID

// NoTrace is the zero handle.
var NoTrace = uuid.Nil

// TraceParams carries the ignore set and collision-complexity flag for a
// line trace.
type TraceParams struct {
	Ignore  map[ActorID]bool
	Complex bool
}

// Tracer is the line-of-sight collaborator. The async pair is a pipelined
// request/poll API: Poll returns ready=false while the result is not yet
// available, which callers must treat as a failed query rather than block.
type Tracer interface {
	// LineTrace returns true when something blocks the segment.
	LineTrace(from, to geom.Vec3, channel Channel, params TraceParams) bool
	LineTraceAsync(from, to geom.Vec3, channel Channel, params TraceParams) TraceHandle
	Poll(h TraceHandle) (blocked, ready bool)
}

// Owner identifies the assisted player for exclusion purposes.
type Owner struct {
	Actor      ActorID
	Instigator ActorID
}
