// Package input samples gamepad sticks into the per-frame stick state the
// assist controller consumes. A keyboard fallback keeps the demo usable
// without a pad.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/strafekit/aimassist/engine/geom"
)

// Standard-layout axis indices, per ebiten's standard gamepad mapping.
const (
	axisMoveX = ebiten.StandardGamepadAxisLeftStickHorizontal
	axisMoveY = ebiten.StandardGamepadAxisLeftStickVertical
	axisLookX = ebiten.StandardGamepadAxisRightStickHorizontal
	axisLookY = ebiten.StandardGamepadAxisRightStickVertical
)

// StickState is one frame of raw stick input. Look follows the aim
// convention: X positive turns right, Y positive looks up. Move.X is strafe
// right, Move.Y is forward.
type StickState struct {
	Look geom.Vec2
	Move geom.Vec2

	// Edge-triggered demo controls.
	ToggleADS    bool
	ToggleAssist bool
	ToggleDebug  bool

	gamepads []ebiten.GamepadID
	pad      ebiten.GamepadID
	hasPad   bool
}

func NewStickState() *StickState {
	return &StickState{}
}

// Update samples the first connected standard gamepad, falling back to
// keyboard when none is present. Call once per frame.
func (s *StickState) Update() {
	s.gamepads = ebiten.AppendGamepadIDs(s.gamepads[:0])
	s.hasPad = false
	for _, id := range s.gamepads {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			s.pad, s.hasPad = id, true
			break
		}
	}

	if s.hasPad {
		// The pad reports Y positive downward on both sticks.
		s.Move = geom.V2(
			ebiten.StandardGamepadAxisValue(s.pad, axisMoveX),
			-ebiten.StandardGamepadAxisValue(s.pad, axisMoveY),
		)
		s.Look = geom.V2(
			ebiten.StandardGamepadAxisValue(s.pad, axisLookX),
			-ebiten.StandardGamepadAxisValue(s.pad, axisLookY),
		)
		s.ToggleADS = inpututil.IsStandardGamepadButtonJustPressed(s.pad, ebiten.StandardGamepadButtonRightStick)
		s.ToggleAssist = inpututil.IsStandardGamepadButtonJustPressed(s.pad, ebiten.StandardGamepadButtonCenterLeft)
		s.ToggleDebug = inpututil.IsStandardGamepadButtonJustPressed(s.pad, ebiten.StandardGamepadButtonCenterRight)
		return
	}

	s.Move = geom.V2(
		keyAxis(ebiten.KeyD, ebiten.KeyA),
		keyAxis(ebiten.KeyW, ebiten.KeyS),
	)
	s.Look = geom.V2(
		keyAxis(ebiten.KeyArrowRight, ebiten.KeyArrowLeft),
		keyAxis(ebiten.KeyArrowUp, ebiten.KeyArrowDown),
	)
	s.ToggleADS = inpututil.IsKeyJustPressed(ebiten.KeyShift)
	s.ToggleAssist = inpututil.IsKeyJustPressed(ebiten.KeyF1)
	s.ToggleDebug = inpututil.IsKeyJustPressed(ebiten.KeyF2)
}

// HasGamepad reports whether a standard-layout pad was sampled this frame.
func (s *StickState) HasGamepad() bool { return s.hasPad }

func keyAxis(pos, neg ebiten.Key) float64 {
	v := 0.0
	if ebiten.IsKeyPressed(pos) {
		v += 1
	}
	if ebiten.IsKeyPressed(neg) {
		v -= 1
	}
	return v
}
