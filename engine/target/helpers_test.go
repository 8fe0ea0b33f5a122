package target

import (
	"github.com/google/uuid"

	"github.com/strafekit/aimassist/engine/geom"
	"github.com/strafekit/aimassist/engine/view"
)

// testPlayer satisfies view.Player for pipeline tests: eye at origin looking
// down +X on a 1920x1080 screen with a 90 degree FOV.
type testPlayer struct {
	loc  geom.Vec3
	rot  geom.Rotator
	team int
}

func (p *testPlayer) EyePose() (geom.Vec3, geom.Rotator, bool) { return p.loc, p.rot, true }
func (p *testPlayer) BodyLocation() (geom.Vec3, bool)          { return p.loc, true }
func (p *testPlayer) ControlRotation() geom.Rotator            { return p.rot }
func (p *testPlayer) ScreenSize() (float64, float64, bool)     { return 1920, 1080, true }
func (p *testPlayer) FOVAngle() float64                        { return 90 }
func (p *testPlayer) TeamID() int                              { return p.team }

func testViewState(team int) *view.ViewState {
	vs := &view.ViewState{}
	vs.Update(&testPlayer{team: team})
	return vs
}

type fakeActor struct {
	id     ActorID
	team   int
	dead   bool
	kind   string
	tags   []string
	joined []ActorID

	shape  *Shape
	active bool
}

func (a *fakeActor) GatherTargetOptions() Options {
	return Options{Shape: a.shape, Active: a.active, Tags: a.tags}
}

type fakeScene struct {
	actors []*fakeActor
	shapes map[ShapeID]*Shape
}

func newFakeScene() *fakeScene {
	return &fakeScene{shapes: make(map[ShapeID]*Shape)}
}

// addCapsule registers an enemy-style actor with a capsule shape at loc.
func (s *fakeScene) addCapsule(team int, loc geom.Vec3) *fakeActor {
	a := &fakeActor{
		id:     ActorID(len(s.actors) + 1),
		team:   team,
		kind:   "soldier",
		active: true,
	}
	a.shape = &Shape{
		ID:         NewShapeID(),
		Owner:      a.id,
		Kind:       ShapeCapsule,
		Radius:     35,
		HalfHeight: 90,
		Transform:  geom.Transform{Location: loc},
	}
	s.actors = append(s.actors, a)
	s.shapes[a.shape.ID] = a.shape
	return a
}

func (s *fakeScene) find(id ActorID) *fakeActor {
	for _, a := range s.actors {
		if a.id == id {
			return a
		}
	}
	return nil
}

func (s *fakeScene) Overlap(center geom.Vec3, orient geom.Rotator, halfExtents geom.Vec3, channel Channel, ignore map[ActorID]bool) []Candidate {
	var out []Candidate
	for _, a := range s.actors {
		if ignore[a.id] {
			continue
		}
		out = append(out, Candidate{Actor: a.id, Provider: a})
	}
	return out
}

func (s *fakeScene) ResolveShape(id ShapeID) (*Shape, bool) {
	sh, ok := s.shapes[id]
	return sh, ok
}

func (s *fakeScene) TeamOf(id ActorID) int {
	if a := s.find(id); a != nil {
		return a.team
	}
	return view.TeamNone
}

func (s *fakeScene) DeadOrDying(id ActorID) bool {
	a := s.find(id)
	return a != nil && a.dead
}

func (s *fakeScene) KindOf(id ActorID) string {
	if a := s.find(id); a != nil {
		return a.kind
	}
	return ""
}

func (s *fakeScene) AttachmentsOf(id ActorID) []ActorID {
	if a := s.find(id); a != nil {
		return a.joined
	}
	return nil
}

type asyncResult struct {
	blocked bool
	ready   bool
}

// fakeTracer answers sync traces from a single flag and hands out async
// handles whose results become ready according to the same flag, unless
// dropResults simulates a desynced query.
type fakeTracer struct {
	blocked     bool
	dropResults bool

	pending map[TraceHandle]asyncResult

	syncCalls  int
	asyncCalls int
}

func newFakeTracer() *fakeTracer {
	return &fakeTracer{pending: make(map[TraceHandle]asyncResult)}
}

func (f *fakeTracer) LineTrace(from, to geom.Vec3, channel Channel, params TraceParams) bool {
	f.syncCalls++
	return f.blocked
}

func (f *fakeTracer) LineTraceAsync(from, to geom.Vec3, channel Channel, params TraceParams) TraceHandle {
	f.asyncCalls++
	h := uuid.New()
	if !f.dropResults {
		f.pending[h] = asyncResult{blocked: f.blocked, ready: true}
	}
	return h
}

func (f *fakeTracer) Poll(h TraceHandle) (bool, bool) {
	r, ok := f.pending[h]
	if !ok {
		return false, false
	}
	delete(f.pending, h)
	return r.blocked, r.ready
}

func testSearchConfig() SearchConfig {
	return SearchConfig{
		TargetingReticleWidth:  1200,
		TargetingReticleHeight: 675,
		InnerReticleWidth:      20,
		InnerReticleHeight:     20,
		OuterReticleWidth:      80,
		OuterReticleHeight:     80,
		ReticleDepth:           3000,
		TargetRange:            10000,
		MaxTargets:             6,
		ScoreAssistWeight:      10,
		ScoreViewDot:           50,
		ScoreViewDotOffset:     40,
		ScoreViewDistance:      0.0025,
	}
}
