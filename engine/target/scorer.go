package target

import (
	"github.com/strafekit/aimassist/engine/geom"
	"github.com/strafekit/aimassist/engine/view"
)

// reticleSet holds the frame's screen-space reticle boxes.
type reticleSet struct {
	targeting   geom.Box2
	innerAssist geom.Box2
	outerAssist geom.Box2
}

// projectShape maps a shape to its screen-space bounding box.
func projectShape(vs *view.ViewState, shape *Shape) geom.Box2 {
	tr := shape.WorldTransform()
	switch shape.Kind {
	case ShapeBox:
		return vs.ProjectBoxShape(tr, shape.Origin, shape.HalfExtents)
	case ShapeSphere:
		return vs.ProjectSphereShape(tr, shape.Origin, shape.Radius)
	case ShapeCapsule:
		return vs.ProjectCapsuleShape(tr, shape.Origin, shape.Radius, shape.HalfHeight)
	}
	return geom.EmptyBox2()
}

// malformedShape reports shapes the scorer cannot project: unknown kinds and
// degenerate volumes.
func malformedShape(s *Shape) bool {
	return s.Kind > ShapeCapsule || s.Degenerate()
}

// scoreCandidate turns an admitted candidate into a Tracked entry: screen
// bounds, reticle membership flags and the sort score. carriedWeight is last
// frame's assist weight for the same shape, zero for new targets. Returns
// false when the candidate cannot be scored this frame.
func scoreCandidate(vs *view.ViewState, shape *Shape, reticles reticleSet, cfg SearchConfig, carriedWeight float64) (Tracked, bool) {
	if malformedShape(shape) {
		return Tracked{}, false
	}

	loc := shape.Location()
	offset := loc.Sub(vs.ViewTransform.Location)
	dist := offset.Len()
	if dist < 1e-6 {
		return Tracked{}, false
	}
	viewDot := offset.Scale(1 / dist).Dot(vs.ViewForward)
	if viewDot <= 0 {
		return Tracked{}, false
	}

	bounds := projectShape(vs, shape)
	if !bounds.IsValid() || !bounds.Intersects(reticles.targeting) {
		return Tracked{}, false
	}

	score := cfg.ScoreAssistWeight*carriedWeight +
		cfg.ScoreViewDot*viewDot -
		cfg.ScoreViewDotOffset +
		cfg.ScoreViewDistance*(cfg.TargetRange-dist)

	return Tracked{
		ShapeID:           shape.ID,
		Location:          loc,
		ScreenBounds:      bounds,
		ViewDistance:      dist,
		SortScore:         score,
		UnderInnerReticle: bounds.Intersects(reticles.innerAssist),
		UnderOuterReticle: bounds.Intersects(reticles.outerAssist),
	}, true
}
