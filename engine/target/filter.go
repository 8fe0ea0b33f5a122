package target

import (
	"github.com/strafekit/aimassist/engine/view"
)

// FilterConfig is the externally owned admission policy. The pipeline reads
// it and never mutates it.
type FilterConfig struct {
	// IncludeSameTeam admits candidates on the owner's team.
	IncludeSameTeam bool
	// ExcludeDeadOrDying drops candidates flagged dead or dying.
	ExcludeDeadOrDying bool

	ExcludeInstigator              bool
	ExcludeAllAttachedToInstigator bool
	ExcludeRequester               bool
	ExcludeAllAttachedToRequester  bool

	// ExclusionTags drops candidates carrying any of these tags.
	ExclusionTags map[string]bool
	// ExcludedKinds drops candidates whose actor kind matches.
	ExcludedKinds map[string]bool

	// TraceComplex requests complex collision for visibility traces.
	TraceComplex bool
}

// PassesFilter is the admission test for a discovered candidate. It rejects
// inactive or shapeless candidates, the owner and its instigator, anything
// behind the player or beyond acceptableRange along view-forward, same-team
// candidates unless included, dead/dying candidates when excluded, and
// tag/kind exclusions.
func PassesFilter(scene Scene, opts Options, vs *view.ViewState, own Owner, cfg FilterConfig, acceptableRange float64) bool {
	if !opts.Active || opts.Shape == nil {
		return false
	}
	shape := opts.Shape
	if shape.Owner == own.Actor {
		return false
	}
	if own.Instigator != 0 && shape.Owner == own.Instigator {
		return false
	}

	offset := shape.Location().Sub(vs.ViewTransform.Location)
	along := offset.Dot(vs.ViewForward)
	if along <= 0 || along > acceptableRange {
		return false
	}

	if !cfg.IncludeSameTeam && vs.Team != view.TeamNone && scene.TeamOf(shape.Owner) == vs.Team {
		return false
	}
	if cfg.ExcludeDeadOrDying && scene.DeadOrDying(shape.Owner) {
		return false
	}
	for _, tag := range opts.Tags {
		if cfg.ExclusionTags[tag] {
			return false
		}
	}
	if cfg.ExcludedKinds[scene.KindOf(shape.Owner)] {
		return false
	}
	return true
}

// traceIgnores builds the actor set a visibility trace skips: the candidate's
// own body plus whatever the requester/instigator attachment rules exclude.
func traceIgnores(scene Scene, candidate ActorID, own Owner, cfg FilterConfig) map[ActorID]bool {
	ignore := map[ActorID]bool{candidate: true}
	if own.Actor != 0 && cfg.ExcludeRequester {
		ignore[own.Actor] = true
		if cfg.ExcludeAllAttachedToRequester {
			for _, id := range scene.AttachmentsOf(own.Actor) {
				ignore[id] = true
			}
		}
	}
	if own.Instigator != 0 && cfg.ExcludeInstigator {
		ignore[own.Instigator] = true
		if cfg.ExcludeAllAttachedToInstigator {
			for _, id := range scene.AttachmentsOf(own.Instigator) {
				ignore[id] = true
			}
		}
	}
	return ignore
}
