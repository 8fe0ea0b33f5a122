package aim

import (
	"math"

	"github.com/strafekit/aimassist/engine/geom"
	"github.com/strafekit/aimassist/engine/target"
	"github.com/strafekit/aimassist/engine/view"
)

// TargetingMode selects the strength column: hip fire or aim-down-sights.
type TargetingMode uint8

const (
	ModeHipFire TargetingMode = iota
	ModeADS
)

// Input is the raw per-frame stick sample. Look.X > 0 turns right, Look.Y > 0
// looks up; Move.X > 0 strafes right, Move.Y > 0 moves forward.
type Input struct {
	Look geom.Vec2
	Move geom.Vec2
}

// Strengths below this are treated as no assist.
const minAssistStrength = 1e-4

// Controller runs the aim-assist pipeline once per input tick and shapes the
// look stick accordingly. All state lives on the instance; construction-time
// fields replace any global toggles.
type Controller struct {
	Player  view.Player
	Manager *target.Manager

	Settings    *AssistSettings
	Filter      target.FilterConfig
	Sensitivity PlayerSettings
	Owner       target.Owner

	Mode    TargetingMode
	Enabled bool

	viewState view.ViewState

	// Last applied strengths, the anchors for rate-limited interpolation.
	lastPull float64
	lastSlow float64
}

func NewController(player view.Player, manager *target.Manager, settings *AssistSettings) *Controller {
	return &Controller{
		Player:      player,
		Manager:     manager,
		Settings:    settings,
		Sensitivity: DefaultPlayerSettings(),
		Enabled:     true,
	}
}

// ViewState exposes the frame snapshot for debug rendering.
func (c *Controller) ViewState() *view.ViewState { return &c.viewState }

// Targets exposes the current tracked set for debug rendering.
func (c *Controller) Targets() []target.Tracked {
	if c.Manager == nil {
		return nil
	}
	return c.Manager.Current()
}

// PullStrength returns the last applied pull strength.
func (c *Controller) PullStrength() float64 { return c.lastPull }

// SlowStrength returns the last applied slow strength.
func (c *Controller) SlowStrength() float64 { return c.lastSlow }

// Update runs one frame of the pipeline and returns the adjusted look stick,
// each axis clamped to [-1, 1]. Failures degrade to the unmodified input.
func (c *Controller) Update(in Input, dt float64) geom.Vec2 {
	if dt <= 0 {
		return in.Look
	}
	c.viewState.Update(c.Player)
	if !c.Enabled || c.Settings == nil || !c.viewState.IsValid() {
		return in.Look
	}

	targets := c.Manager.Update(&c.viewState, c.Owner, c.Filter, c.Settings.Search)
	c.updateWeights(targets, dt)
	return c.rotationalVelocity(in, dt, targets)
}

// updateWeights advances each target's assist time (growing only while under
// the outer reticle and visible), maps it through the weight curve and
// renormalizes so simultaneous targets never assist past a combined weight
// of one.
func (c *Controller) updateWeights(targets []target.Tracked, dt float64) {
	curve := c.Settings.WeightCurve
	maxTime := curve.MaxTime()
	total := 0.0
	for i := range targets {
		t := &targets[i]
		if t.UnderOuterReticle && t.Visible {
			t.AssistTime += dt
		} else {
			t.AssistTime -= dt
		}
		t.AssistTime = geom.Clamp(t.AssistTime, 0, maxTime)
		t.AssistWeight = curve.Value(t.AssistTime)
		total += t.AssistWeight
	}
	if total > 0 {
		for i := range targets {
			targets[i].AssistWeight /= total
		}
	}
}

// rotationToTarget computes, in player-local space, the yaw/pitch delta that
// compensates for the target's motion relative to the player since last
// frame. Targets beside or behind the player contribute nothing.
func rotationToTarget(playerTr geom.Transform, playerDelta geom.Vec3, t *target.Tracked) geom.Rotator {
	now := playerTr.InverseTransformPoint(t.Location)
	if now.X <= 0 {
		return geom.Rotator{}
	}
	prevWorld := t.Location.Sub(t.MovementDelta).Add(playerDelta)
	prev := playerTr.InverseTransformPoint(prevWorld)

	nowLen := now.Len()
	prevLen := prev.Len()
	if nowLen < 1e-6 || prevLen < 1e-6 {
		return geom.Rotator{}
	}

	yaw := math.Atan2(now.Y, now.X) - math.Atan2(prev.Y, prev.X)
	pitch := math.Asin(geom.Clamp(now.Z/nowLen, -1, 1)) - math.Asin(geom.Clamp(prev.Z/prevLen, -1, 1))
	return geom.Rotator{
		Pitch: pitch * geom.RadToDeg,
		Yaw:   geom.NormalizeDegrees(yaw * geom.RadToDeg),
	}
}

// strength table lookup: reticle zone by targeting mode.
func (c *Controller) pullStrengthFor(t *target.Tracked) float64 {
	s := c.Settings
	if t.UnderInnerReticle {
		if c.Mode == ModeADS {
			return s.PullInnerStrengthADS
		}
		return s.PullInnerStrengthHip
	}
	if c.Mode == ModeADS {
		return s.PullOuterStrengthADS
	}
	return s.PullOuterStrengthHip
}

func (c *Controller) slowStrengthFor(t *target.Tracked) float64 {
	s := c.Settings
	if t.UnderInnerReticle {
		if c.Mode == ModeADS {
			return s.SlowInnerStrengthADS
		}
		return s.SlowInnerStrengthHip
	}
	if c.Mode == ModeADS {
		return s.SlowOuterStrengthADS
	}
	return s.SlowOuterStrengthHip
}

func (c *Controller) sensitivity() float64 {
	if c.Mode == ModeADS {
		return c.Sensitivity.ADSSensitivity
	}
	return c.Sensitivity.HipSensitivity
}

// lookRates returns the base yaw/pitch look rates in degrees per second for
// the current stick deflection. Radial blending equalizes diagonal feel by
// interpolating between the yaw and pitch rates by stick angle.
func (c *Controller) lookRates(look geom.Vec2) geom.Vec2 {
	sens := c.sensitivity()
	yawRate := c.Sensitivity.BaseYawRate * sens
	pitchRate := c.Sensitivity.BasePitchRate * sens
	if c.Settings.UseRadialLookRates && (look.X != 0 || look.Y != 0) {
		angle := math.Atan2(math.Abs(look.Y), math.Abs(look.X)) / (math.Pi / 2)
		radial := geom.Lerp(yawRate, pitchRate, angle)
		return geom.V2(radial, radial)
	}
	return geom.V2(yawRate, pitchRate)
}

// interpStrength rate-limits a strength toward its new value with the faster
// ramp-in rate when growing and the slower ramp-out rate when shrinking.
func interpStrength(last, next, dt, inRate, outRate float64) float64 {
	rate := outRate
	if next > last {
		rate = inRate
	}
	return geom.InterpTo(last, next, dt, rate)
}

// rotationalVelocity is the control law: aggregate the weighted rotation
// needed to track targets, smooth pull/slow strengths, gate on deadzones,
// and blend the pull into the player's own look rates.
func (c *Controller) rotationalVelocity(in Input, dt float64, targets []target.Tracked) geom.Vec2 {
	s := c.Settings
	vs := &c.viewState

	var rotationNeeded geom.Rotator
	pullTarget, slowTarget := 0.0, 0.0
	for i := range targets {
		t := &targets[i]
		if !t.UnderOuterReticle || !t.Visible {
			continue
		}
		rot := rotationToTarget(vs.PlayerTransform, vs.MovementDelta, t)
		rotationNeeded = rotationNeeded.Add(rot.Scale(t.AssistWeight))
		pullTarget += c.pullStrengthFor(t) * t.AssistWeight
		slowTarget += c.slowStrengthFor(t) * t.AssistWeight
	}

	sens := c.sensitivity()
	pullTarget *= s.StrengthScale * sens
	slowTarget *= s.StrengthScale * sens

	c.lastPull = interpStrength(c.lastPull, pullTarget, dt, s.PullLerpInRate, s.PullLerpOutRate)
	c.lastSlow = interpStrength(c.lastSlow, slowTarget, dt, s.SlowLerpInRate, s.SlowLerpOutRate)

	lookActive := !s.RequireInput || in.Look.LenSq() > c.Sensitivity.LookDeadzone*c.Sensitivity.LookDeadzone
	moveActive := !s.RequireInput || in.Move.LenSq() > c.Sensitivity.MoveDeadzone*c.Sensitivity.MoveDeadzone
	anyInput := !s.RequireInput || lookActive || moveActive

	// Output velocity in degrees per second: X yaw, Y pitch.
	var velocity geom.Vec2
	pullApplied, slowApplied := false, false

	if s.ApplyPull && c.lastPull > minAssistStrength && anyInput {
		pullApplied = true
		pullRot := rotationNeeded.Scale(c.lastPull)
		if !lookActive && moveActive && s.ApplyStrafePullScale {
			// Running past a target without looking: scale the pull by how
			// hard the player strafes so it never feels magnetic.
			pullRot = pullRot.Scale(math.Abs(in.Move.X))
		}
		if s.PullMaxRotationRate > 0 {
			maxStep := s.PullMaxRotationRate * vs.FOVScale() * dt
			pullRot.Yaw = geom.Clamp(pullRot.Yaw, -maxStep, maxStep)
			pullRot.Pitch = geom.Clamp(pullRot.Pitch, -maxStep, maxStep)
		}
		// Whatever the pull consumed no longer needs slowing for.
		rotationNeeded = rotationNeeded.Sub(pullRot)
		velocity.X += pullRot.Yaw / dt
		velocity.Y += pullRot.Pitch / dt
	}

	lookRates := c.lookRates(in.Look)

	if s.ApplySlowing && lookActive && c.lastSlow > minAssistStrength {
		slowApplied = true
		slowYaw := lookRates.X * (1 - c.lastSlow)
		slowPitch := lookRates.Y * (1 - c.lastSlow)
		if s.UseDynamicSlow {
			// Boost the slowed rate by the rotation still needed, but only
			// when it agrees with the player's stick: never fight them.
			// Each axis decides independently.
			if boost := sign(in.Look.X) * rotationNeeded.Yaw / dt; boost > 0 {
				slowYaw += boost
			}
			if boost := sign(in.Look.Y) * rotationNeeded.Pitch / dt; boost > 0 {
				slowPitch += boost
			}
		}
		minRate := s.SlowMinRotationRate * vs.FOVScale()
		slowYaw = geom.Clamp(slowYaw, minRate, lookRates.X)
		slowPitch = geom.Clamp(slowPitch, minRate, lookRates.Y)
		velocity.X += in.Look.X * slowYaw
		velocity.Y += in.Look.Y * slowPitch
	} else {
		velocity.X += in.Look.X * lookRates.X
		velocity.Y += in.Look.Y * lookRates.Y
	}

	// With no assist in play the velocity is lookInput*lookRates exactly,
	// which converts back to the raw input. Return it untouched rather than
	// round-tripping through the division.
	if !pullApplied && !slowApplied {
		return in.Look
	}

	// Back to a stick-equivalent value against the unslowed base rates. A
	// zero base rate leaves that axis untouched.
	out := in.Look
	if lookRates.X > 0 {
		out.X = geom.Clamp(velocity.X/lookRates.X, -1, 1)
	}
	if lookRates.Y > 0 {
		out.Y = geom.Clamp(velocity.Y/lookRates.Y, -1, 1)
	}
	return out
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
