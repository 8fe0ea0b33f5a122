// Package debugdraw renders the assist pipeline's internals onto an ebiten
// screen: reticle boxes, tracked target bounds colored by visibility, and a
// per-target stat readout. Purely observational; it never feeds back into
// the pipeline.
package debugdraw

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/strafekit/aimassist/engine/aim"
	"github.com/strafekit/aimassist/engine/geom"
)

var (
	colTargeting = color.RGBA{80, 80, 80, 255}
	colOuter     = color.RGBA{200, 200, 80, 255}
	colInner     = color.RGBA{80, 200, 200, 255}
	colVisible   = color.RGBA{80, 220, 80, 255}
	colOccluded  = color.RGBA{220, 80, 80, 255}
	colTopPick   = color.RGBA{255, 255, 255, 255}
	colPullBar   = color.RGBA{80, 160, 240, 255}
	colSlowBar   = color.RGBA{240, 160, 80, 255}
)

// Overlay draws assist debug state.
type Overlay struct {
	face text.Face
}

func New() *Overlay {
	return &Overlay{face: text.NewGoXFace(basicfont.Face7x13)}
}

// Draw renders reticles, target boxes and stats for the controller's last
// frame.
func (o *Overlay) Draw(screen *ebiten.Image, c *aim.Controller) {
	vs := c.ViewState()
	if vs == nil || !vs.IsValid() {
		return
	}
	targeting, inner, outer := c.Manager.Reticles(vs, c.Settings.Search)
	strokeBox(screen, targeting, colTargeting)
	strokeBox(screen, outer, colOuter)
	strokeBox(screen, inner, colInner)

	for i, t := range c.Targets() {
		col := colOccluded
		if t.Visible {
			col = colVisible
		}
		if i == 0 {
			col = colTopPick
		}
		strokeBox(screen, t.ScreenBounds, col)

		label := fmt.Sprintf("w=%.2f t=%.2fs s=%.0f d=%.0f",
			t.AssistWeight, t.AssistTime, t.SortScore, t.ViewDistance)
		o.printAt(screen, label, t.ScreenBounds.Min.X, t.ScreenBounds.Min.Y-16, col)
	}

	o.drawStats(screen, c)
}

func (o *Overlay) drawStats(screen *ebiten.Image, c *aim.Controller) {
	o.printAt(screen, fmt.Sprintf("targets: %d", len(c.Targets())), 10, 30, color.White)
	o.printAt(screen, fmt.Sprintf("fov scale: %.3f", c.ViewState().FOVScale()), 10, 46, color.White)

	// Strength bars normalize against a full-strength assist of 1.
	strengthBar(screen, 10, 66, c.PullStrength(), colPullBar)
	o.printAt(screen, fmt.Sprintf("pull %.3f", c.PullStrength()), 120, 62, color.White)
	strengthBar(screen, 10, 82, c.SlowStrength(), colSlowBar)
	o.printAt(screen, fmt.Sprintf("slow %.3f", c.SlowStrength()), 120, 78, color.White)
}

func (o *Overlay) printAt(screen *ebiten.Image, s string, x, y float64, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, s, o.face, op)
}

func strengthBar(screen *ebiten.Image, x, y float32, v float64, col color.Color) {
	vector.StrokeRect(screen, x, y, 100, 8, 1, color.RGBA{120, 120, 120, 255}, false)
	w := float32(geom.Clamp(v, 0, 1)) * 100
	if w > 0 {
		vector.DrawFilledRect(screen, x, y, w, 8, col, false)
	}
}

func strokeBox(screen *ebiten.Image, b geom.Box2, col color.Color) {
	if !b.IsValid() {
		return
	}
	vector.StrokeRect(screen,
		float32(b.Min.X), float32(b.Min.Y),
		float32(b.Max.X-b.Min.X), float32(b.Max.Y-b.Min.Y),
		1, col, false)
}
