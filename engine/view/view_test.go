package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strafekit/aimassist/engine/geom"
)

type fakePlayer struct {
	eyeLoc  geom.Vec3
	eyeRot  geom.Rotator
	bodyLoc geom.Vec3
	w, h    float64
	fov     float64
	team    int

	noEye    bool
	noBody   bool
	noScreen bool
}

func (f *fakePlayer) EyePose() (geom.Vec3, geom.Rotator, bool) {
	return f.eyeLoc, f.eyeRot, !f.noEye
}
func (f *fakePlayer) BodyLocation() (geom.Vec3, bool) { return f.bodyLoc, !f.noBody }
func (f *fakePlayer) ControlRotation() geom.Rotator   { return f.eyeRot }
func (f *fakePlayer) ScreenSize() (float64, float64, bool) {
	return f.w, f.h, !f.noScreen
}
func (f *fakePlayer) FOVAngle() float64 { return f.fov }
func (f *fakePlayer) TeamID() int       { return f.team }

func newFakePlayer() *fakePlayer {
	return &fakePlayer{w: 1920, h: 1080, fov: 90, team: 1}
}

func TestUpdateInvalidContexts(t *testing.T) {
	var vs ViewState

	vs.Update(nil)
	assert.False(t, vs.IsValid())
	assert.Equal(t, TeamNone, vs.Team)

	p := newFakePlayer()
	p.noBody = true
	vs.Update(p)
	assert.False(t, vs.IsValid())

	p.noBody = false
	p.noScreen = true
	vs.Update(p)
	assert.False(t, vs.IsValid())
}

func TestUpdateMovementDelta(t *testing.T) {
	var vs ViewState
	p := newFakePlayer()

	vs.Update(p)
	require.True(t, vs.IsValid())
	assert.True(t, vs.MovementDelta.IsNearlyZero(), "first frame has no delta")

	p.bodyLoc = geom.V3(10, 5, 0)
	vs.Update(p)
	assert.InDelta(t, 10, vs.MovementDelta.X, 1e-9)
	assert.InDelta(t, 5, vs.MovementDelta.Y, 1e-9)
}

func TestProjectPointCentered(t *testing.T) {
	var vs ViewState
	p := newFakePlayer()
	vs.Update(p)
	require.True(t, vs.IsValid())

	// A point straight ahead projects to the screen center.
	s, ok := vs.ProjectPoint(geom.V3(500, 0, 0))
	require.True(t, ok)
	assert.InDelta(t, 960, s.X, 1e-6)
	assert.InDelta(t, 540, s.Y, 1e-6)

	// A point to the right lands right of center, one above lands higher.
	s, ok = vs.ProjectPoint(geom.V3(500, 100, 0))
	require.True(t, ok)
	assert.Greater(t, s.X, 960.0)

	s, ok = vs.ProjectPoint(geom.V3(500, 0, 100))
	require.True(t, ok)
	assert.Less(t, s.Y, 540.0)
}

func TestProjectPointBehindCamera(t *testing.T) {
	var vs ViewState
	vs.Update(newFakePlayer())

	_, ok := vs.ProjectPoint(geom.V3(-500, 0, 0))
	assert.False(t, ok)
}

func TestProjectPointOffScreen(t *testing.T) {
	var vs ViewState
	vs.Update(newFakePlayer())

	// Far to the side at close range: ahead of the camera but off screen.
	_, ok := vs.ProjectPoint(geom.V3(10, 500, 0))
	assert.False(t, ok)
}

func TestReticleBoxCentered(t *testing.T) {
	var vs ViewState
	vs.Update(newFakePlayer())

	box := vs.ReticleBox(100, 60, 1000)
	require.True(t, box.IsValid())
	c := box.Center()
	assert.InDelta(t, 960, c.X, 1e-6)
	assert.InDelta(t, 540, c.Y, 1e-6)
	assert.Greater(t, box.Max.X-box.Min.X, box.Max.Y-box.Min.Y, "wider than tall")
}

func TestReticleBoxShrinksWithFOV(t *testing.T) {
	var vs ViewState
	p := newFakePlayer()
	vs.Update(p)
	wide := vs.ReticleBox(100, 100, 1000)

	p.fov = 45 // zoomed in: same world rect covers more screen
	vs.Update(p)
	zoomed := vs.ReticleBox(100, 100, 1000)

	require.True(t, wide.IsValid())
	require.True(t, zoomed.IsValid())
	assert.Greater(t, zoomed.Max.X-zoomed.Min.X, wide.Max.X-wide.Min.X)
}

func TestProjectShapes(t *testing.T) {
	var vs ViewState
	vs.Update(newFakePlayer())

	tr := geom.Transform{Location: geom.V3(500, 0, 0)}

	box := vs.ProjectBoxShape(tr, geom.Vec3{}, geom.V3(20, 20, 40))
	require.True(t, box.IsValid())
	assert.True(t, box.Contains(geom.V2(960, 540)))

	sphere := vs.ProjectSphereShape(tr, geom.Vec3{}, 30)
	require.True(t, sphere.IsValid())

	capsule := vs.ProjectCapsuleShape(tr, geom.Vec3{}, 30, 90)
	require.True(t, capsule.IsValid())
	// The capsule spans farther vertically than its sphere of equal radius.
	assert.Greater(t, capsule.Max.Y-capsule.Min.Y, sphere.Max.Y-sphere.Min.Y)
}

func TestFOVScale(t *testing.T) {
	var vs ViewState
	p := newFakePlayer()
	vs.Update(p)
	assert.InDelta(t, 1.0, vs.FOVScale(), 1e-9)

	p.fov = 45
	vs.Update(p)
	assert.Less(t, vs.FOVScale(), 1.0)
}
