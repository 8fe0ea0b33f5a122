package target

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strafekit/aimassist/engine/geom"
)

func TestPassesFilter(t *testing.T) {
	scene := newFakeScene()
	enemy := scene.addCapsule(2, geom.V3(1000, 0, 0))
	vs := testViewState(1)
	own := Owner{Actor: 100, Instigator: 101}
	cfg := FilterConfig{ExcludeDeadOrDying: true}

	opts := enemy.GatherTargetOptions()
	assert.True(t, PassesFilter(scene, opts, vs, own, cfg, 10000))

	t.Run("inactive or shapeless", func(t *testing.T) {
		assert.False(t, PassesFilter(scene, Options{Shape: enemy.shape}, vs, own, cfg, 10000))
		assert.False(t, PassesFilter(scene, Options{Active: true}, vs, own, cfg, 10000))
	})

	t.Run("self and instigator", func(t *testing.T) {
		selfScene := newFakeScene()
		me := selfScene.addCapsule(2, geom.V3(1000, 0, 0))
		o := Owner{Actor: me.id}
		assert.False(t, PassesFilter(selfScene, me.GatherTargetOptions(), vs, o, cfg, 10000))
		o = Owner{Actor: 100, Instigator: me.id}
		assert.False(t, PassesFilter(selfScene, me.GatherTargetOptions(), vs, o, cfg, 10000))
	})

	t.Run("out of range along forward", func(t *testing.T) {
		assert.False(t, PassesFilter(scene, opts, vs, own, cfg, 500),
			"target at 1000 units filtered by a 500 unit range")
	})

	t.Run("behind the player", func(t *testing.T) {
		behindScene := newFakeScene()
		b := behindScene.addCapsule(2, geom.V3(-1000, 0, 0))
		assert.False(t, PassesFilter(behindScene, b.GatherTargetOptions(), vs, own, cfg, 10000))
	})

	t.Run("same team", func(t *testing.T) {
		friendScene := newFakeScene()
		f := friendScene.addCapsule(1, geom.V3(1000, 0, 0))
		fopts := f.GatherTargetOptions()
		assert.False(t, PassesFilter(friendScene, fopts, vs, own, cfg, 10000))

		include := cfg
		include.IncludeSameTeam = true
		assert.True(t, PassesFilter(friendScene, fopts, vs, own, include, 10000))
	})

	t.Run("dead or dying", func(t *testing.T) {
		enemy.dead = true
		assert.False(t, PassesFilter(scene, opts, vs, own, cfg, 10000))

		allow := cfg
		allow.ExcludeDeadOrDying = false
		assert.True(t, PassesFilter(scene, opts, vs, own, allow, 10000))
		enemy.dead = false
	})

	t.Run("tag exclusion", func(t *testing.T) {
		enemy.tags = []string{"assist.ignore"}
		tagged := cfg
		tagged.ExclusionTags = map[string]bool{"assist.ignore": true}
		assert.False(t, PassesFilter(scene, enemy.GatherTargetOptions(), vs, own, tagged, 10000))
		enemy.tags = nil
	})

	t.Run("kind exclusion", func(t *testing.T) {
		kinds := cfg
		kinds.ExcludedKinds = map[string]bool{"soldier": true}
		assert.False(t, PassesFilter(scene, opts, vs, own, kinds, 10000))
	})
}

func TestTraceIgnores(t *testing.T) {
	scene := newFakeScene()
	enemy := scene.addCapsule(2, geom.V3(1000, 0, 0))
	requester := scene.addCapsule(1, geom.V3(0, 0, 0))
	requester.joined = []ActorID{50, 51}

	own := Owner{Actor: requester.id, Instigator: 60}
	cfg := FilterConfig{
		ExcludeRequester:              true,
		ExcludeAllAttachedToRequester: true,
		ExcludeInstigator:             true,
	}

	ignore := traceIgnores(scene, enemy.id, own, cfg)
	assert.True(t, ignore[enemy.id], "candidate body always ignored")
	assert.True(t, ignore[requester.id])
	assert.True(t, ignore[ActorID(50)])
	assert.True(t, ignore[ActorID(51)])
	assert.True(t, ignore[ActorID(60)])

	// Without the flags only the candidate is ignored.
	ignore = traceIgnores(scene, enemy.id, own, FilterConfig{})
	assert.Len(t, ignore, 1)
}
