// Package world is a self-contained reference scene: an actor registry with
// targetable shapes, static blocking geometry and a deterministic line
// tracer. It backs the demo and exercises the target pipeline end to end
// without a full game behind it.
package world

import (
	"sync/atomic"

	"github.com/strafekit/aimassist/engine/geom"
	"github.com/strafekit/aimassist/engine/target"
)

var actorCounter uint64

// NewActorID generates a unique actor ID.
func NewActorID() target.ActorID {
	return target.ActorID(atomic.AddUint64(&actorCounter, 1))
}

// Actor is one registered world entity. An actor may carry a targetable
// shape, belong to a team, and be attached to a parent actor (a turret on a
// vehicle, a player on a mount).
type Actor struct {
	ID   target.ActorID
	Team int
	Kind string
	Tags []string

	Health float64
	Dying  bool

	// Targetable gates discovery without touching health: a spectating or
	// protected actor stays alive but invisible to the assist.
	Targetable bool

	// BlocksSight makes the shape's bounds opaque to visibility traces.
	BlocksSight bool

	Shape *target.Shape

	parent      target.ActorID
	attachments []target.ActorID

	// Patrol state, integrated by World.Step.
	velocity    geom.Vec3
	patrolFrom  geom.Vec3
	patrolTo    geom.Vec3
	patrolSpeed float64
	patrolFwd   bool
}

// GatherTargetOptions implements target.Provider.
func (a *Actor) GatherTargetOptions() target.Options {
	return target.Options{
		Shape:  a.Shape,
		Active: a.Targetable,
		Tags:   a.Tags,
	}
}

// Location returns the actor's shape location, or zero for shapeless actors.
func (a *Actor) Location() geom.Vec3 {
	if a.Shape == nil {
		return geom.Vec3{}
	}
	return a.Shape.Location()
}

// SetVelocity gives the actor a constant velocity until changed.
func (a *Actor) SetVelocity(v geom.Vec3) {
	a.velocity = v
	a.patrolSpeed = 0
}

// Patrol makes the actor walk back and forth between two points.
func (a *Actor) Patrol(from, to geom.Vec3, speed float64) {
	a.patrolFrom = from
	a.patrolTo = to
	a.patrolSpeed = speed
	a.patrolFwd = true
	a.velocity = geom.Vec3{}
}

// World owns all actors and static blockers. It implements target.Scene;
// the tracer half lives in trace.go. Not safe for concurrent mutation; the
// game loop owns it.
type World struct {
	actors map[target.ActorID]*Actor
	order  []target.ActorID // insertion order, for deterministic queries
	shapes map[target.ShapeID]target.ActorID

	blockers []geom.Box3

	traces traceQueue
}

// New creates an empty world.
func New() *World {
	return &World{
		actors: make(map[target.ActorID]*Actor),
		shapes: make(map[target.ShapeID]target.ActorID),
	}
}

// Spawn registers an actor carrying the given shape. The shape may be nil
// for pure attachment actors.
func (w *World) Spawn(team int, kind string, shape *target.Shape) *Actor {
	a := &Actor{
		ID:         NewActorID(),
		Team:       team,
		Kind:       kind,
		Health:     100,
		Targetable: shape != nil,
	}
	if shape != nil {
		shape.ID = target.NewShapeID()
		shape.Owner = a.ID
		a.Shape = shape
		a.BlocksSight = true
		w.shapes[shape.ID] = a.ID
	}
	w.actors[a.ID] = a
	w.order = append(w.order, a.ID)
	return a
}

// SpawnCapsule registers a standing capsule actor at a location.
func (w *World) SpawnCapsule(team int, kind string, loc geom.Vec3, radius, halfHeight float64) *Actor {
	return w.Spawn(team, kind, &target.Shape{
		Kind:       target.ShapeCapsule,
		Radius:     radius,
		HalfHeight: halfHeight,
		Transform:  geom.Transform{Location: loc},
	})
}

// Remove unregisters an actor and releases its shape handle.
func (w *World) Remove(id target.ActorID) {
	a, ok := w.actors[id]
	if !ok {
		return
	}
	if a.Shape != nil {
		delete(w.shapes, a.Shape.ID)
	}
	if p, ok := w.actors[a.parent]; ok {
		p.attachments = removeID(p.attachments, id)
	}
	for _, child := range a.attachments {
		if c, ok := w.actors[child]; ok {
			c.parent = 0
		}
	}
	delete(w.actors, id)
	w.order = removeID(w.order, id)
}

func removeID(ids []target.ActorID, id target.ActorID) []target.ActorID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Attach links child to parent for the filter's attachment exclusions.
func (w *World) Attach(parent, child target.ActorID) {
	p, ok := w.actors[parent]
	c, ok2 := w.actors[child]
	if !ok || !ok2 {
		return
	}
	c.parent = parent
	p.attachments = append(p.attachments, child)
}

// Actor looks up a registered actor.
func (w *World) Actor(id target.ActorID) (*Actor, bool) {
	a, ok := w.actors[id]
	return a, ok
}

// ActorIDs returns all registered actors in spawn order. The slice is owned
// by the world; treat it as read-only.
func (w *World) ActorIDs() []target.ActorID {
	return w.order
}

// AddBlocker registers a static axis-aligned box that blocks visibility.
func (w *World) AddBlocker(b geom.Box3) {
	w.blockers = append(w.blockers, b)
}

// Step integrates actor movement and resolves queued async traces. Call once
// per simulation tick.
func (w *World) Step(dt float64) {
	for _, id := range w.order {
		a := w.actors[id]
		if a.Shape == nil {
			continue
		}
		switch {
		case a.patrolSpeed > 0:
			dest := a.patrolTo
			if !a.patrolFwd {
				dest = a.patrolFrom
			}
			loc := a.Shape.Transform.Location
			delta := dest.Sub(loc)
			step := a.patrolSpeed * dt
			if delta.Len() <= step {
				a.Shape.Transform.Location = dest
				a.patrolFwd = !a.patrolFwd
			} else {
				a.Shape.Transform.Location = loc.Add(delta.Normalize().Scale(step))
			}
		case !a.velocity.IsNearlyZero():
			a.Shape.Transform.Location = a.Shape.Transform.Location.Add(a.velocity.Scale(dt))
		}
	}
	w.traces.resolve(w)
}

// shapeBounds returns the world-space AABB of an actor shape.
func shapeBounds(s *target.Shape) geom.Box3 {
	loc := s.Location()
	switch s.Kind {
	case target.ShapeSphere:
		return geom.Box3Centered(loc, geom.V3(s.Radius, s.Radius, s.Radius))
	case target.ShapeCapsule:
		return geom.Box3Centered(loc, geom.V3(s.Radius, s.Radius, s.HalfHeight))
	default:
		// Conservative for oriented boxes: a cube of the largest extent.
		m := s.HalfExtents.X
		if s.HalfExtents.Y > m {
			m = s.HalfExtents.Y
		}
		if s.HalfExtents.Z > m {
			m = s.HalfExtents.Z
		}
		return geom.Box3Centered(loc, geom.V3(m, m, m))
	}
}

// Overlap implements target.Scene. The oriented query volume is widened to
// its world AABB; at discovery range the extra breadth only admits
// candidates the reticle test rejects anyway.
func (w *World) Overlap(center geom.Vec3, orient geom.Rotator, halfExtents geom.Vec3, channel target.Channel, ignore map[target.ActorID]bool) []target.Candidate {
	if channel != target.ChannelAimAssist {
		return nil
	}
	query := orientedBounds(center, orient, halfExtents)
	var out []target.Candidate
	for _, id := range w.order {
		if ignore[id] {
			continue
		}
		a := w.actors[id]
		if a.Shape == nil {
			continue
		}
		if query.Intersects(shapeBounds(a.Shape)) {
			out = append(out, target.Candidate{Actor: id, Provider: a})
		}
	}
	return out
}

// orientedBounds returns the world AABB of an oriented box.
func orientedBounds(center geom.Vec3, orient geom.Rotator, halfExtents geom.Vec3) geom.Box3 {
	fwd, right, up := orient.Axes()
	local := geom.Box3Centered(geom.Vec3{}, halfExtents)
	b := geom.Box3{Min: center, Max: center}
	for _, c := range local.Corners() {
		p := center.Add(fwd.Scale(c.X)).Add(right.Scale(c.Y)).Add(up.Scale(c.Z))
		b.Min = geom.V3(min(b.Min.X, p.X), min(b.Min.Y, p.Y), min(b.Min.Z, p.Z))
		b.Max = geom.V3(max(b.Max.X, p.X), max(b.Max.Y, p.Y), max(b.Max.Z, p.Z))
	}
	return b
}

// ResolveShape implements target.Scene.
func (w *World) ResolveShape(id target.ShapeID) (*target.Shape, bool) {
	owner, ok := w.shapes[id]
	if !ok {
		return nil, false
	}
	a, ok := w.actors[owner]
	if !ok || a.Shape == nil {
		return nil, false
	}
	return a.Shape, true
}

// TeamOf implements target.Scene.
func (w *World) TeamOf(id target.ActorID) int {
	if a, ok := w.actors[id]; ok {
		return a.Team
	}
	return -1
}

// DeadOrDying implements target.Scene.
func (w *World) DeadOrDying(id target.ActorID) bool {
	a, ok := w.actors[id]
	if !ok {
		return true
	}
	return a.Dying || a.Health <= 0
}

// KindOf implements target.Scene.
func (w *World) KindOf(id target.ActorID) string {
	if a, ok := w.actors[id]; ok {
		return a.Kind
	}
	return ""
}

// AttachmentsOf implements target.Scene.
func (w *World) AttachmentsOf(id target.ActorID) []target.ActorID {
	a, ok := w.actors[id]
	if !ok {
		return nil
	}
	out := a.attachments
	if a.parent != 0 {
		out = append(append([]target.ActorID(nil), out...), a.parent)
	}
	return out
}
