package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, -180},
		{-180, -180},
		{190, -170},
		{-190, 170},
		{360, 0},
		{540, -180},
		{-720, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeDegrees(tt.in), 1e-9, "NormalizeDegrees(%v)", tt.in)
	}
}

func TestRotatorForward(t *testing.T) {
	f := Rotator{}.Forward()
	assert.InDelta(t, 1, f.X, 1e-9)
	assert.InDelta(t, 0, f.Y, 1e-9)
	assert.InDelta(t, 0, f.Z, 1e-9)

	// 90 degrees yaw points along +Y (right).
	f = Rotator{Yaw: 90}.Forward()
	assert.InDelta(t, 0, f.X, 1e-9)
	assert.InDelta(t, 1, f.Y, 1e-9)

	// Positive pitch looks up.
	f = Rotator{Pitch: 90}.Forward()
	assert.InDelta(t, 1, f.Z, 1e-9)
}

func TestRotatorAxesOrthonormal(t *testing.T) {
	r := Rotator{Pitch: 25, Yaw: -140, Roll: 10}
	f, rt, up := r.Axes()
	assert.InDelta(t, 1, f.Len(), 1e-9)
	assert.InDelta(t, 1, rt.Len(), 1e-9)
	assert.InDelta(t, 1, up.Len(), 1e-9)
	assert.InDelta(t, 0, f.Dot(rt), 1e-9)
	assert.InDelta(t, 0, f.Dot(up), 1e-9)
	assert.InDelta(t, 0, rt.Dot(up), 1e-9)
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{
		Location: V3(10, -4, 2),
		Rotation: Rotator{Pitch: 15, Yaw: 75},
	}
	p := V3(3, 1, -2)
	world := tr.TransformPoint(p)
	back := tr.InverseTransformPoint(world)
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
	assert.InDelta(t, p.Z, back.Z, 1e-9)
}

func TestInverseTransformLocalAxes(t *testing.T) {
	tr := Transform{Location: V3(5, 5, 0), Rotation: Rotator{Yaw: 90}}
	// A point ahead of the transform (along +Y in world) has positive local X.
	local := tr.InverseTransformPoint(V3(5, 15, 0))
	assert.InDelta(t, 10, local.X, 1e-9)
	assert.InDelta(t, 0, local.Y, 1e-9)
}

func TestMat4InvertRoundTrip(t *testing.T) {
	view := Mat4LookAt(V3(2, 3, 4), V3(10, 0, 0), V3(0, 0, 1))
	inv := Mat4Invert(view)
	id := view.Mul(inv)
	want := Mat4Identity()
	for i := range id {
		assert.InDelta(t, want[i], id[i], 1e-9, "element %d", i)
	}
}

func TestPerspectiveDepthSign(t *testing.T) {
	eye := V3(0, 0, 0)
	view := Mat4LookAt(eye, V3(1, 0, 0), V3(0, 0, 1))
	proj := Mat4Perspective(90*DegToRad, 16.0/9.0, 0.1, 1000)
	vp := proj.Mul(view)

	ahead := vp.MulVec4(Vec4{10, 0, 0, 1})
	require.Greater(t, ahead.W, 0.0)

	behind := vp.MulVec4(Vec4{-10, 0, 0, 1})
	require.Less(t, behind.W, 0.0)
}

func TestMat4LookAtBasis(t *testing.T) {
	// X-forward eye at the origin: world right (+Y) must land on view +X,
	// world up (+Z) on view +Y, and the look direction on view -Z.
	view := Mat4LookAt(V3(0, 0, 0), V3(1, 0, 0), V3(0, 0, 1))

	right := view.TransformPoint(V3(0, 10, 0))
	assert.InDelta(t, 10, right.X, 1e-9)
	assert.InDelta(t, 0, right.Y, 1e-9)

	up := view.TransformPoint(V3(0, 0, 10))
	assert.InDelta(t, 10, up.Y, 1e-9)
	assert.InDelta(t, 0, up.X, 1e-9)

	ahead := view.TransformPoint(V3(10, 0, 0))
	assert.InDelta(t, -10, ahead.Z, 1e-9)
}

func TestInterpTo(t *testing.T) {
	// Zero rate snaps.
	assert.Equal(t, 5.0, InterpTo(1, 5, 0.016, 0))

	// Constant-rate approach never overshoots.
	cur := 0.0
	for i := 0; i < 200; i++ {
		cur = InterpTo(cur, 1, 0.016, 10)
		assert.LessOrEqual(t, cur, 1.0)
	}
	assert.InDelta(t, 1.0, cur, 1e-6)
}

func TestBox2Accumulate(t *testing.T) {
	b := EmptyBox2()
	assert.False(t, b.IsValid())
	b = b.Include(V2(3, 4)).Include(V2(-1, 10))
	require.True(t, b.IsValid())
	assert.Equal(t, V2(-1, 4), b.Min)
	assert.Equal(t, V2(3, 10), b.Max)

	assert.True(t, b.Intersects(Box2Centered(V2(0, 5), 2, 2)))
	assert.False(t, b.Intersects(Box2Centered(V2(50, 50), 2, 2)))
	assert.False(t, EmptyBox2().Intersects(b))
}
