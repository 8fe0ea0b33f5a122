package target

import "github.com/strafekit/aimassist/engine/geom"

// Tracked is the per-target state that persists across frames. Entries are
// rebuilt every frame from fresh discovery results; the temporal fields
// (AssistTime, AssistWeight, Visible, TraceHandle) and the previous location
// are carried forward when the same shape was tracked last frame.
type Tracked struct {
	ShapeID ShapeID

	Location      geom.Vec3
	MovementDelta geom.Vec3 // shape displacement since last frame
	ScreenBounds  geom.Box2
	ViewDistance  float64
	SortScore     float64

	AssistTime   float64
	AssistWeight float64

	Visible           bool
	UnderInnerReticle bool
	UnderOuterReticle bool

	TraceHandle TraceHandle
}

// carryOver copies the temporal fields from last frame's entry and derives
// the per-frame movement delta.
func (t *Tracked) carryOver(prev *Tracked) {
	t.AssistTime = prev.AssistTime
	t.AssistWeight = prev.AssistWeight
	t.Visible = prev.Visible
	t.TraceHandle = prev.TraceHandle
	t.MovementDelta = t.Location.Sub(prev.Location)
}

// Cache is the double-buffered target store: two slots form a ping-pong
// buffer, flipped before each frame's write, so "previous" and "current"
// always name the two most recent frames. Accessed only by the owning
// controller on the tick thread.
type Cache struct {
	buffers [2][]Tracked
	index   [2]map[ShapeID]int
	active  int
}

// Swap flips the active slot and clears it for this frame's writes.
func (c *Cache) Swap() {
	c.active ^= 1
	c.buffers[c.active] = c.buffers[c.active][:0]
	c.index[c.active] = nil
}

// Previous looks up last frame's entry for a shape. Absence means the shape
// is newly tracked this frame.
func (c *Cache) Previous(id ShapeID) (*Tracked, bool) {
	prev := c.active ^ 1
	if c.index[prev] == nil {
		return nil, false
	}
	i, ok := c.index[prev][id]
	if !ok {
		return nil, false
	}
	return &c.buffers[prev][i], true
}

// Store writes this frame's tracked set into the active slot.
func (c *Cache) Store(ts []Tracked) {
	buf := c.buffers[c.active][:0]
	idx := make(map[ShapeID]int, len(ts))
	for _, t := range ts {
		idx[t.ShapeID] = len(buf)
		buf = append(buf, t)
	}
	c.buffers[c.active] = buf
	c.index[c.active] = idx
}

// Current returns this frame's tracked set. The slice aliases the cache and
// is valid until the next Swap.
func (c *Cache) Current() []Tracked {
	return c.buffers[c.active]
}
