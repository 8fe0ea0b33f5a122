package target

import (
	"log"
	"sort"

	"github.com/strafekit/aimassist/engine/geom"
	"github.com/strafekit/aimassist/engine/view"
)

// SearchConfig is the discovery/scoring half of the assist settings: reticle
// geometry, range, retention cap and scoring coefficients. Reticle sizes are
// world units at ReticleDepth, so zones scale naturally with FOV.
type SearchConfig struct {
	TargetingReticleWidth  float64
	TargetingReticleHeight float64
	InnerReticleWidth      float64
	InnerReticleHeight     float64
	OuterReticleWidth      float64
	OuterReticleHeight     float64
	ReticleDepth           float64

	TargetRange float64
	MaxTargets  int

	ScoreAssistWeight  float64
	ScoreViewDot       float64
	ScoreViewDotOffset float64
	ScoreViewDistance  float64

	AsyncVisibility bool
}

// Manager runs the per-frame pipeline: overlap query, capability gathering,
// admission filter, scoring, cache carry-over, top-N retention and
// visibility resolution. It owns the double-buffered target cache.
type Manager struct {
	Scene  Scene
	Tracer Tracer

	cache Cache

	// Shapes already reported as malformed, so a persistent bad shape
	// warns once instead of every frame.
	warnedMalformed map[ShapeID]bool
}

func NewManager(scene Scene, tracer Tracer) *Manager {
	return &Manager{Scene: scene, Tracer: tracer}
}

// Reticles returns this frame's screen-space reticle boxes, for debug draw.
func (m *Manager) Reticles(vs *view.ViewState, cfg SearchConfig) (targeting, inner, outer geom.Box2) {
	targeting = vs.ReticleBox(cfg.TargetingReticleWidth, cfg.TargetingReticleHeight, cfg.ReticleDepth)
	inner = vs.ReticleBox(cfg.InnerReticleWidth, cfg.InnerReticleHeight, cfg.ReticleDepth)
	outer = vs.ReticleBox(cfg.OuterReticleWidth, cfg.OuterReticleHeight, cfg.ReticleDepth)
	return targeting, inner, outer
}

// Current returns the tracked set written by the last Update.
func (m *Manager) Current() []Tracked {
	return m.cache.Current()
}

// Update runs the full discovery pipeline for one frame and returns the new
// tracked set. The slice aliases the cache; callers mutate the temporal
// fields in place (weight update) and must not retain it across frames. An
// invalid view state or a missing scene skips the frame.
func (m *Manager) Update(vs *view.ViewState, own Owner, filter FilterConfig, cfg SearchConfig) []Tracked {
	if m == nil || m.Scene == nil || m.Tracer == nil || !vs.IsValid() {
		return nil
	}

	targeting, inner, outer := m.Reticles(vs, cfg)
	reticles := reticleSet{targeting: targeting, innerAssist: inner, outerAssist: outer}

	m.cache.Swap()

	candidates := m.discover(vs, own, cfg)
	tracked := make([]Tracked, 0, len(candidates))
	for _, cand := range candidates {
		opts := cand.Provider.GatherTargetOptions()
		if !PassesFilter(m.Scene, opts, vs, own, filter, cfg.TargetRange) {
			continue
		}
		if malformedShape(opts.Shape) {
			m.warnMalformed(opts.Shape)
			continue
		}
		// Carried weight feeds the score, so already-assisted targets win
		// ties against fresh ones.
		var prevWeight float64
		prev, hadPrev := m.cache.Previous(opts.Shape.ID)
		if hadPrev {
			prevWeight = prev.AssistWeight
		}
		t, ok := scoreCandidate(vs, opts.Shape, reticles, cfg, prevWeight)
		if !ok {
			continue
		}
		if hadPrev {
			t.carryOver(prev)
		}
		tracked = append(tracked, t)
	}

	if cfg.MaxTargets > 0 && len(tracked) > cfg.MaxTargets {
		sort.Slice(tracked, func(i, j int) bool {
			return tracked[i].SortScore > tracked[j].SortScore
		})
		// Traces pending on truncated targets are simply abandoned.
		tracked = tracked[:cfg.MaxTargets]
	}

	from := vs.ViewTransform.Location
	for i := range tracked {
		t := &tracked[i]
		shape, alive := m.Scene.ResolveShape(t.ShapeID)
		if !alive {
			t.Visible = false
			t.TraceHandle = NoTrace
			continue
		}
		params := TraceParams{
			Ignore:  traceIgnores(m.Scene, shape.Owner, own, filter),
			Complex: filter.TraceComplex,
		}
		resolveVisibility(m.Tracer, t, from, shape.VisibilityPoint(), params, cfg.AsyncVisibility)
	}

	m.cache.Store(tracked)
	return m.cache.Current()
}

func (m *Manager) warnMalformed(shape *Shape) {
	if m.warnedMalformed[shape.ID] {
		return
	}
	if m.warnedMalformed == nil {
		m.warnedMalformed = make(map[ShapeID]bool)
	}
	m.warnedMalformed[shape.ID] = true
	log.Printf("aimassist: dropping malformed target shape %d (kind %d)", shape.ID, shape.Kind)
}

// discover runs the spatial overlap: a box volume pushed out along the view
// forward axis, sized from the targeting reticle extrapolated to full range.
func (m *Manager) discover(vs *view.ViewState, own Owner, cfg SearchConfig) []Candidate {
	depth := cfg.ReticleDepth
	if depth <= 0 {
		depth = 1
	}
	spread := cfg.TargetRange / depth
	halfExtents := geom.V3(
		cfg.TargetRange/2,
		cfg.TargetingReticleWidth/2*spread,
		cfg.TargetingReticleHeight/2*spread,
	)
	center := vs.ViewTransform.Location.Add(vs.ViewForward.Scale(cfg.TargetRange / 2))

	ignore := map[ActorID]bool{}
	if own.Actor != 0 {
		ignore[own.Actor] = true
	}
	raw := m.Scene.Overlap(center, vs.ViewTransform.Rotation, halfExtents, ChannelAimAssist, ignore)

	out := raw[:0]
	for _, c := range raw {
		if c.Provider != nil {
			out = append(out, c)
		}
	}
	return out
}
