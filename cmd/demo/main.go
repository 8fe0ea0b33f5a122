// Demo: a minimal first-person arena wired through the assist pipeline.
// Right stick (or arrow keys) looks, left stick (or WASD) moves. Hostile
// capsules patrol in front of the player; one wall occludes part of the
// arena to show the visibility pipeline.
package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/strafekit/aimassist/engine/aim"
	"github.com/strafekit/aimassist/engine/debugdraw"
	"github.com/strafekit/aimassist/engine/geom"
	"github.com/strafekit/aimassist/engine/input"
	"github.com/strafekit/aimassist/engine/sim"
	"github.com/strafekit/aimassist/engine/target"
	"github.com/strafekit/aimassist/engine/world"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	TickRate     = 60.0

	eyeHeight = 160.0
	moveSpeed = 600.0

	hipFOV = 90.0
	adsFOV = 55.0
)

// demoPlayer is the locally controlled pawn. It satisfies view.Player.
type demoPlayer struct {
	loc geom.Vec3
	rot geom.Rotator
	ads bool
}

func (p *demoPlayer) EyePose() (geom.Vec3, geom.Rotator, bool) {
	return p.loc.Add(geom.V3(0, 0, eyeHeight)), p.rot, true
}
func (p *demoPlayer) BodyLocation() (geom.Vec3, bool) { return p.loc, true }
func (p *demoPlayer) ControlRotation() geom.Rotator   { return p.rot }
func (p *demoPlayer) ScreenSize() (float64, float64, bool) {
	return ScreenWidth, ScreenHeight, true
}
func (p *demoPlayer) FOVAngle() float64 {
	if p.ads {
		return adsFOV
	}
	return hipFOV
}
func (p *demoPlayer) TeamID() int { return 1 }

type Game struct {
	arena      *world.World
	player     *demoPlayer
	sticks     *input.StickState
	controller *aim.Controller
	overlay    *debugdraw.Overlay
	loop       *sim.Loop

	showDebug bool
}

func NewGame() *Game {
	arena := world.New()
	player := &demoPlayer{loc: geom.V3(0, 0, 0)}

	// Hostiles patrolling across the player's view at a few depths.
	a := arena.SpawnCapsule(2, "soldier", geom.V3(1500, -400, 0), 35, 90)
	a.Patrol(geom.V3(1500, -400, 0), geom.V3(1500, 400, 0), 160)
	b := arena.SpawnCapsule(2, "soldier", geom.V3(3000, 600, 0), 35, 90)
	b.Patrol(geom.V3(3000, 600, 0), geom.V3(3000, -600, 0), 220)
	arena.SpawnCapsule(2, "soldier", geom.V3(5000, 0, 0), 35, 90)

	// A friendly, a corpse and a tagged objective, to show the filter at work.
	arena.SpawnCapsule(1, "soldier", geom.V3(2000, -800, 0), 35, 90)
	dead := arena.SpawnCapsule(2, "soldier", geom.V3(2200, 800, 0), 35, 90)
	dead.Health = 0
	objective := arena.SpawnCapsule(2, "objective", geom.V3(2600, 0, 0), 60, 120)
	objective.Tags = []string{"NoAimAssist"}

	// A wall the left patroller walks behind.
	arena.AddBlocker(geom.Box3{
		Min: geom.V3(1190, 120, -10),
		Max: geom.V3(1210, 500, 260),
	})

	settings := aim.DefaultSettings()
	settings.Search.AsyncVisibility = true

	controller := aim.NewController(player, target.NewManager(arena, arena), settings)
	controller.Filter = target.FilterConfig{
		ExcludeDeadOrDying: true,
		ExcludeRequester:   true,
		ExclusionTags:      map[string]bool{"NoAimAssist": true},
	}

	return &Game{
		arena:      arena,
		player:     player,
		sticks:     input.NewStickState(),
		controller: controller,
		overlay:    debugdraw.New(),
		loop:       sim.NewLoop(TickRate),
		showDebug:  true,
	}
}

func (g *Game) Update() error {
	g.sticks.Update()
	if g.sticks.ToggleADS {
		g.player.ads = !g.player.ads
		g.controller.Mode = aim.ModeHipFire
		if g.player.ads {
			g.controller.Mode = aim.ModeADS
		}
	}
	if g.sticks.ToggleAssist {
		g.controller.Enabled = !g.controller.Enabled
	}
	if g.sticks.ToggleDebug {
		g.showDebug = !g.showDebug
	}

	g.loop.Update(g.tick)
	return nil
}

func (g *Game) tick(dt float64) {
	g.arena.Step(dt)

	look := g.controller.Update(aim.Input{Look: g.sticks.Look, Move: g.sticks.Move}, dt)

	// Integrate the adjusted stick exactly the way the assist models it:
	// stick deflection times base look rate.
	sens := g.controller.Sensitivity.HipSensitivity
	if g.player.ads {
		sens = g.controller.Sensitivity.ADSSensitivity
	}
	g.player.rot.Yaw += look.X * g.controller.Sensitivity.BaseYawRate * sens * dt
	g.player.rot.Pitch += look.Y * g.controller.Sensitivity.BasePitchRate * sens * dt
	g.player.rot.Pitch = geom.Clamp(g.player.rot.Pitch, -85, 85)
	g.player.rot = g.player.rot.Normalize()

	// Planar movement in the yaw frame.
	move := g.sticks.Move
	if move.LenSq() > 1 {
		l := move.Len()
		move = geom.V2(move.X/l, move.Y/l)
	}
	yawOnly := geom.Rotator{Yaw: g.player.rot.Yaw}
	fwd, right, _ := yawOnly.Axes()
	g.player.loc = g.player.loc.
		Add(fwd.Scale(move.Y * moveSpeed * dt)).
		Add(right.Scale(move.X * moveSpeed * dt))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{24, 28, 36, 255})
	vector.DrawFilledRect(screen, 0, ScreenHeight/2, ScreenWidth, ScreenHeight/2,
		color.RGBA{34, 40, 30, 255}, false)

	vs := g.controller.ViewState()
	if vs.IsValid() {
		// Every shape in the arena, tracked or not.
		for _, id := range g.arena.ActorIDs() {
			a, _ := g.arena.Actor(id)
			if a.Shape == nil {
				continue
			}
			box := vs.ProjectCapsuleShape(a.Shape.WorldTransform(), a.Shape.Origin,
				a.Shape.Radius, a.Shape.HalfHeight)
			if !box.IsValid() {
				continue
			}
			col := color.RGBA{170, 60, 60, 255}
			if a.Team == g.player.TeamID() {
				col = color.RGBA{60, 110, 170, 255}
			}
			if g.arena.DeadOrDying(id) {
				col = color.RGBA{90, 90, 90, 255}
			}
			vector.DrawFilledRect(screen,
				float32(box.Min.X), float32(box.Min.Y),
				float32(box.Max.X-box.Min.X), float32(box.Max.Y-box.Min.Y),
				col, false)
		}
	}

	// Crosshair.
	vector.DrawFilledRect(screen, ScreenWidth/2-1, ScreenHeight/2-6, 2, 12, color.White, false)
	vector.DrawFilledRect(screen, ScreenWidth/2-6, ScreenHeight/2-1, 12, 2, color.White, false)

	if g.showDebug {
		g.overlay.Draw(screen, g.controller)
	}

	mode := "hip"
	if g.player.ads {
		mode = "ads"
	}
	assist := "on"
	if !g.controller.Enabled {
		assist = "off"
	}
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("assist %s [F1]  debug [F2]  %s [shift]  arrows look, wasd move", assist, mode),
		10, 8)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func main() {
	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Aim Assist Demo")
	if err := ebiten.RunGame(NewGame()); err != nil {
		log.Fatal(err)
	}
}
