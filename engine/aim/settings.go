// Package aim turns the weighted target set into a modified look-stick input:
// a pull toward targets and a sensitivity slow while hovering over them.
package aim

import (
	"errors"
	"log"
	"sync"

	"gonum.org/v1/gonum/interp"

	"github.com/strafekit/aimassist/engine/geom"
	"github.com/strafekit/aimassist/engine/target"
)

// CurvePoint is one knot of the assist weight curve.
type CurvePoint struct {
	Time   float64
	Weight float64
}

// WeightCurve maps accumulated assist time to a raw assist weight through a
// monotonic piecewise-linear curve. A nil curve is a misconfiguration: it
// evaluates to zero (assist effectively disabled) and complains once.
type WeightCurve struct {
	line    interp.PiecewiseLinear
	maxTime float64
}

var missingCurveOnce sync.Once

func warnMissingCurve() {
	missingCurveOnce.Do(func() {
		log.Printf("aimassist: no target weight curve configured, assist weights are zero")
	})
}

// NewWeightCurve fits a curve through the given knots. Knots must be sorted
// by strictly increasing time; at least two are required.
func NewWeightCurve(points ...CurvePoint) (*WeightCurve, error) {
	if len(points) < 2 {
		return nil, errors.New("weight curve needs at least two points")
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		if i > 0 && p.Time <= points[i-1].Time {
			return nil, errors.New("weight curve times must be strictly increasing")
		}
		xs[i] = p.Time
		ys[i] = p.Weight
	}
	var c WeightCurve
	if err := c.line.Fit(xs, ys); err != nil {
		return nil, err
	}
	c.maxTime = xs[len(xs)-1]
	return &c, nil
}

// MaxTime returns the time at which the curve saturates; assist time is
// clamped to [0, MaxTime].
func (c *WeightCurve) MaxTime() float64 {
	if c == nil {
		warnMissingCurve()
		return 0
	}
	return c.maxTime
}

// Value evaluates the curve, clamped to [0, 1].
func (c *WeightCurve) Value(t float64) float64 {
	if c == nil {
		warnMissingCurve()
		return 0
	}
	return geom.Clamp(c.line.Predict(geom.Clamp(t, 0, c.maxTime)), 0, 1)
}

// AssistSettings is the externally owned tuning block: reticle geometry and
// scoring (Search), the weight curve, the pull/slow strength table keyed by
// reticle zone and targeting mode, interpolation rates and feature toggles.
// Immutable per frame; the pipeline never writes it.
type AssistSettings struct {
	Search target.SearchConfig

	WeightCurve *WeightCurve

	PullInnerStrengthHip float64
	PullOuterStrengthHip float64
	PullInnerStrengthADS float64
	PullOuterStrengthADS float64

	// Asymmetric smoothing: strengths ramp in fast and bleed out slow.
	// A rate of zero snaps immediately.
	PullLerpInRate  float64
	PullLerpOutRate float64

	// PullMaxRotationRate caps the pull in degrees per second, scaled by
	// FOV. Zero leaves the pull uncapped.
	PullMaxRotationRate float64

	SlowInnerStrengthHip float64
	SlowOuterStrengthHip float64
	SlowInnerStrengthADS float64
	SlowOuterStrengthADS float64

	SlowLerpInRate  float64
	SlowLerpOutRate float64

	// SlowMinRotationRate floors the slowed look rate in degrees per
	// second, scaled by FOV.
	SlowMinRotationRate float64

	// StrengthScale globally scales pull and slow strength.
	StrengthScale float64

	ApplyPull            bool
	ApplyStrafePullScale bool
	ApplySlowing         bool
	UseDynamicSlow       bool
	UseRadialLookRates   bool
	RequireInput         bool
}

// DefaultSettings returns a tuned baseline.
func DefaultSettings() *AssistSettings {
	curve, err := NewWeightCurve(CurvePoint{0, 0}, CurvePoint{0.25, 1})
	if err != nil {
		panic(err)
	}
	return &AssistSettings{
		Search: target.SearchConfig{
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
		},
		WeightCurve: curve,

		PullInnerStrengthHip: 0.6,
		PullOuterStrengthHip: 0.5,
		PullInnerStrengthADS: 0.7,
		PullOuterStrengthADS: 0.4,
		PullLerpInRate:       60,
		PullLerpOutRate:      4,
		PullMaxRotationRate:  0,

		SlowInnerStrengthHip: 0.6,
		SlowOuterStrengthHip: 0.5,
		SlowInnerStrengthADS: 0.7,
		SlowOuterStrengthADS: 0.4,
		SlowLerpInRate:       60,
		SlowLerpOutRate:      4,
		SlowMinRotationRate:  0,

		StrengthScale: 1,

		ApplyPull:            true,
		ApplyStrafePullScale: true,
		ApplySlowing:         true,
		UseDynamicSlow:       true,
		UseRadialLookRates:   true,
		RequireInput:         true,
	}
}

// PlayerSettings are the per-player scalars from the local player's input
// preferences: stick deadzones, sensitivity presets and base look rates in
// degrees per second.
type PlayerSettings struct {
	LookDeadzone float64
	MoveDeadzone float64

	HipSensitivity float64
	ADSSensitivity float64

	BaseYawRate   float64
	BasePitchRate float64
}

// DefaultPlayerSettings returns a common gamepad preset.
func DefaultPlayerSettings() PlayerSettings {
	return PlayerSettings{
		LookDeadzone:   0.25,
		MoveDeadzone:   0.25,
		HipSensitivity: 1,
		ADSSensitivity: 0.5,
		BaseYawRate:    300,
		BasePitchRate:  165,
	}
}
