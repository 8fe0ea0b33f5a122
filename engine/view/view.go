// Package view holds the per-frame camera/player snapshot the aim-assist
// pipeline projects targets through.
package view

import (
	"math"

	"github.com/strafekit/aimassist/engine/geom"
)

// TeamNone marks a player with no team affiliation.
const TeamNone = -1

// Near/far clip planes for the assist projection. Targets past the far plane
// are out of assist range long before they stop projecting.
const (
	nearClip = 1.0
	farClip  = 1e6
)

// Player exposes the view context the snapshot is built from: eye pose,
// possessed body, local display surface and team. Implemented by the game's
// player controller.
type Player interface {
	// EyePose returns the camera location and rotation.
	EyePose() (geom.Vec3, geom.Rotator, bool)
	// BodyLocation returns the possessed body's world location.
	BodyLocation() (geom.Vec3, bool)
	// ControlRotation returns the player's current control rotation.
	ControlRotation() geom.Rotator
	// ScreenSize returns the local display surface in pixels.
	ScreenSize() (w, h float64, ok bool)
	// FOVAngle returns the horizontal field of view in degrees.
	FOVAngle() float64
	// TeamID returns the player's team, or TeamNone.
	TeamID() int
}

// ViewState is the per-frame snapshot. Recompute with Update once per frame
// before running the target pipeline; all fields are zeroed when the player
// context is unavailable.
type ViewState struct {
	Proj     geom.Mat4
	ViewProj geom.Mat4

	ScreenRect      geom.Box2
	ViewTransform   geom.Transform
	ViewForward     geom.Vec3
	PlayerTransform geom.Transform

	// MovementDelta is the body displacement since the previous valid frame.
	MovementDelta geom.Vec3

	Team int

	fovDeg  float64
	valid   bool
	hasPrev bool
	prevLoc geom.Vec3
}

func (vs *ViewState) IsValid() bool { return vs.valid }

// FOVDegrees returns the horizontal field of view of the last valid update.
func (vs *ViewState) FOVDegrees() float64 { return vs.fovDeg }

// Reset clears the snapshot to defaults and marks it invalid.
func (vs *ViewState) Reset() {
	*vs = ViewState{
		Proj:     geom.Mat4Identity(),
		ViewProj: geom.Mat4Identity(),
		Team:     TeamNone,
	}
}

// Update rebuilds the snapshot from the player context. A missing context,
// body or display surface invalidates the snapshot for the frame.
func (vs *ViewState) Update(p Player) {
	if p == nil {
		vs.Reset()
		return
	}
	eyeLoc, eyeRot, ok := p.EyePose()
	if !ok {
		vs.Reset()
		return
	}
	bodyLoc, ok := p.BodyLocation()
	if !ok {
		vs.Reset()
		return
	}
	w, h, ok := p.ScreenSize()
	if !ok || w <= 0 || h <= 0 {
		vs.Reset()
		return
	}

	vs.fovDeg = geom.Clamp(p.FOVAngle(), 5, 170)
	aspect := w / h
	// Horizontal FOV drives the projection; derive the vertical angle.
	fovY := 2 * math.Atan(math.Tan(vs.fovDeg*geom.DegToRad/2)/aspect)
	vs.Proj = geom.Mat4Perspective(fovY, aspect, nearClip, farClip)

	_, _, up := eyeRot.Axes()
	fwd := eyeRot.Forward()
	viewMat := geom.Mat4LookAt(eyeLoc, eyeLoc.Add(fwd), up)
	vs.ViewProj = vs.Proj.Mul(viewMat)

	vs.ScreenRect = geom.Box2{Min: geom.V2(0, 0), Max: geom.V2(w, h)}
	vs.ViewTransform = geom.Transform{Location: eyeLoc, Rotation: eyeRot}
	vs.ViewForward = fwd
	vs.PlayerTransform = geom.Transform{Location: bodyLoc, Rotation: p.ControlRotation()}

	if vs.hasPrev {
		vs.MovementDelta = bodyLoc.Sub(vs.prevLoc)
	} else {
		vs.MovementDelta = geom.Vec3{}
	}
	vs.prevLoc = bodyLoc
	vs.hasPrev = true

	vs.Team = p.TeamID()
	vs.valid = true
}

// FOVScale normalizes distance/rate values against a 90 degree reference FOV
// so assist strength feels the same when zoomed.
func (vs *ViewState) FOVScale() float64 {
	if !vs.valid {
		return 1
	}
	return math.Tan(vs.fovDeg*geom.DegToRad/2) / math.Tan(45*geom.DegToRad)
}

// ProjectPoint maps a world point onto the screen. Points behind the camera
// or outside the constrained view rectangle do not project.
func (vs *ViewState) ProjectPoint(world geom.Vec3) (geom.Vec2, bool) {
	if !vs.valid {
		return geom.Vec2{}, false
	}
	clip := vs.ViewProj.MulVec4(geom.Vec4{X: world.X, Y: world.Y, Z: world.Z, W: 1})
	if clip.W <= 1e-6 {
		return geom.Vec2{}, false
	}
	ndcX := clip.X / clip.W
	ndcY := clip.Y / clip.W
	s := geom.V2(
		(ndcX*0.5+0.5)*vs.ScreenRect.Max.X,
		(1-(ndcY*0.5+0.5))*vs.ScreenRect.Max.Y,
	)
	if !vs.ScreenRect.Contains(s) {
		return geom.Vec2{}, false
	}
	return s, true
}

// ReticleBox projects a rectangle of the given world size, held at depth in
// front of the eye and facing the camera, into screen space. This keeps
// reticle zones consistent across fields of view.
func (vs *ViewState) ReticleBox(width, height, depth float64) geom.Box2 {
	box := geom.EmptyBox2()
	if !vs.valid {
		return box
	}
	fwd, right, up := vs.ViewTransform.Rotation.Axes()
	center := vs.ViewTransform.Location.Add(fwd.Scale(depth))
	for _, sx := range [2]float64{-0.5, 0.5} {
		for _, sy := range [2]float64{-0.5, 0.5} {
			corner := center.Add(right.Scale(sx * width)).Add(up.Scale(sy * height))
			if s, ok := vs.ProjectPoint(corner); ok {
				box = box.Include(s)
			}
		}
	}
	return box
}

// ProjectBounds projects a world-space AABB into a screen-space box,
// accumulating whichever corners land on screen.
func (vs *ViewState) ProjectBounds(b geom.Box3) geom.Box2 {
	box := geom.EmptyBox2()
	for _, c := range b.Corners() {
		if s, ok := vs.ProjectPoint(c); ok {
			box = box.Include(s)
		}
	}
	return box
}

// ProjectBoxShape projects an oriented box of the given half extents, centered
// on origin in the transform's local space.
func (vs *ViewState) ProjectBoxShape(tr geom.Transform, origin, halfExtents geom.Vec3) geom.Box2 {
	box := geom.EmptyBox2()
	for _, sx := range [2]float64{-1, 1} {
		for _, sy := range [2]float64{-1, 1} {
			for _, sz := range [2]float64{-1, 1} {
				local := origin.Add(geom.V3(sx*halfExtents.X, sy*halfExtents.Y, sz*halfExtents.Z))
				if s, ok := vs.ProjectPoint(tr.TransformPoint(local)); ok {
					box = box.Include(s)
				}
			}
		}
	}
	return box
}

// ProjectSphereShape projects a sphere by its center and the four extremal
// points facing the camera.
func (vs *ViewState) ProjectSphereShape(tr geom.Transform, origin geom.Vec3, radius float64) geom.Box2 {
	center := tr.TransformPoint(origin)
	return vs.projectFacingDisc(geom.EmptyBox2(), center, radius)
}

// ProjectCapsuleShape projects a capsule whose axis runs along the transform's
// up vector, as the two hemisphere end discs.
func (vs *ViewState) ProjectCapsuleShape(tr geom.Transform, origin geom.Vec3, radius, halfHeight float64) geom.Box2 {
	axisOffset := halfHeight - radius
	if axisOffset < 0 {
		axisOffset = 0
	}
	top := tr.TransformPoint(origin.Add(geom.V3(0, 0, axisOffset)))
	bottom := tr.TransformPoint(origin.Sub(geom.V3(0, 0, axisOffset)))
	box := vs.projectFacingDisc(geom.EmptyBox2(), top, radius)
	return vs.projectFacingDisc(box, bottom, radius)
}

func (vs *ViewState) projectFacingDisc(box geom.Box2, center geom.Vec3, radius float64) geom.Box2 {
	_, right, up := vs.ViewTransform.Rotation.Axes()
	points := [5]geom.Vec3{
		center,
		center.Add(right.Scale(radius)),
		center.Sub(right.Scale(radius)),
		center.Add(up.Scale(radius)),
		center.Sub(up.Scale(radius)),
	}
	for _, p := range points {
		if s, ok := vs.ProjectPoint(p); ok {
			box = box.Include(s)
		}
	}
	return box
}
