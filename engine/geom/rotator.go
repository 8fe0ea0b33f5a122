package geom

import "math"

const DegToRad = math.Pi / 180
const RadToDeg = 180 / math.Pi

// Rotator is an orientation in degrees. Positive yaw turns right (toward +Y),
// positive pitch looks up (toward +Z). Roll winds around the forward axis.
type Rotator struct {
	Pitch, Yaw, Roll float64
}

func (r Rotator) Add(o Rotator) Rotator {
	return Rotator{r.Pitch + o.Pitch, r.Yaw + o.Yaw, r.Roll + o.Roll}
}

func (r Rotator) Sub(o Rotator) Rotator {
	return Rotator{r.Pitch - o.Pitch, r.Yaw - o.Yaw, r.Roll - o.Roll}
}

func (r Rotator) Scale(s float64) Rotator {
	return Rotator{r.Pitch * s, r.Yaw * s, r.Roll * s}
}

// Normalize wraps each axis into [-180, 180).
func (r Rotator) Normalize() Rotator {
	return Rotator{
		NormalizeDegrees(r.Pitch),
		NormalizeDegrees(r.Yaw),
		NormalizeDegrees(r.Roll),
	}
}

// Forward returns the unit vector the rotator points along.
func (r Rotator) Forward() Vec3 {
	cp := math.Cos(r.Pitch * DegToRad)
	sp := math.Sin(r.Pitch * DegToRad)
	cy := math.Cos(r.Yaw * DegToRad)
	sy := math.Sin(r.Yaw * DegToRad)
	return Vec3{cp * cy, cp * sy, sp}
}

// Axes returns the forward, right and up basis vectors.
func (r Rotator) Axes() (forward, right, up Vec3) {
	forward = r.Forward()
	cy := math.Cos(r.Yaw * DegToRad)
	sy := math.Sin(r.Yaw * DegToRad)
	flatRight := Vec3{-sy, cy, 0}
	up = forward.Cross(flatRight)
	right = flatRight
	if r.Roll != 0 {
		cr := math.Cos(r.Roll * DegToRad)
		sr := math.Sin(r.Roll * DegToRad)
		right = flatRight.Scale(cr).Add(up.Scale(sr))
		up = up.Scale(cr).Sub(flatRight.Scale(sr))
	}
	return forward, right, up
}

// NormalizeDegrees wraps an angle into [-180, 180).
func NormalizeDegrees(a float64) float64 {
	a = math.Mod(a+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}

// Transform is a rigid placement: a location plus a rotator.
type Transform struct {
	Location Vec3
	Rotation Rotator
}

// TransformPoint maps a point from local space into world space.
func (t Transform) TransformPoint(p Vec3) Vec3 {
	f, r, u := t.Rotation.Axes()
	return t.Location.Add(f.Scale(p.X)).Add(r.Scale(p.Y)).Add(u.Scale(p.Z))
}

// InverseTransformPoint maps a world-space point into local space. Local X is
// "ahead of", local Y "to the right of" and local Z "above" the transform.
func (t Transform) InverseTransformPoint(p Vec3) Vec3 {
	f, r, u := t.Rotation.Axes()
	d := p.Sub(t.Location)
	return Vec3{d.Dot(f), d.Dot(r), d.Dot(u)}
}
