package geom

import "math"

// Box2 is a 2D axis-aligned box. A freshly constructed empty box is invalid
// until at least one point is included.
type Box2 struct {
	Min, Max Vec2
}

// EmptyBox2 returns an inverted box ready to accumulate points.
func EmptyBox2() Box2 {
	return Box2{
		Min: Vec2{math.Inf(1), math.Inf(1)},
		Max: Vec2{math.Inf(-1), math.Inf(-1)},
	}
}

func (b Box2) IsValid() bool { return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y }

// Include grows the box to contain p.
func (b Box2) Include(p Vec2) Box2 {
	return Box2{
		Min: Vec2{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y)},
		Max: Vec2{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y)},
	}
}

func (b Box2) Center() Vec2 {
	return Vec2{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

func (b Box2) Intersects(o Box2) bool {
	if !b.IsValid() || !o.IsValid() {
		return false
	}
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

func (b Box2) Contains(p Vec2) bool {
	return b.IsValid() &&
		p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Box2Centered builds a box around a center point with the given full extents.
func Box2Centered(center Vec2, width, height float64) Box2 {
	return Box2{
		Min: Vec2{center.X - width/2, center.Y - height/2},
		Max: Vec2{center.X + width/2, center.Y + height/2},
	}
}

// Box3 is a 3D axis-aligned bounding box.
type Box3 struct {
	Min, Max Vec3
}

func (b Box3) Center() Vec3 {
	return Vec3{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2, (b.Min.Z + b.Max.Z) / 2}
}

// Corners returns the eight vertices of the box.
func (b Box3) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
}

func (b Box3) Intersects(o Box3) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// Box3Centered builds a box around a center point from half extents.
func Box3Centered(center, halfExtents Vec3) Box3 {
	return Box3{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}
