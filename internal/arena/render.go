package arena

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-arena/internal/collision"
	"github.com/vovakirdan/tui-arena/internal/core"
	"github.com/vovakirdan/tui-arena/internal/geom"
)

// viewport maps world coordinates onto the screen cells inside the frame.
type viewport struct {
	inner  core.Rect
	extent geom.Box
}

func (v viewport) cell(p geom.Vec2) (int, int) {
	x := v.inner.X + int(math.Floor((p.X-v.extent.X)/v.extent.W*float64(v.inner.W)))
	y := v.inner.Y + int(math.Floor((p.Y-v.extent.Y)/v.extent.H*float64(v.inner.H)))
	return core.Clamp(x, v.inner.X, v.inner.Right()-1), core.Clamp(y, v.inner.Y, v.inner.Bottom()-1)
}

func (v viewport) rect(b geom.Box) core.Rect {
	x0, y0 := v.cell(geom.V(b.X, b.Y))
	x1, y1 := v.cell(geom.V(b.Right(), b.Bottom()))
	return core.NewRect(x0, y0, x1-x0+1, y1-y0+1)
}

func teamColor(t Team) core.Color {
	switch t {
	case Red:
		return core.ColorTeamRed
	case Blue:
		return core.ColorTeamBlue
	default:
		return core.ColorNeutral
	}
}

// Render draws the arena, a one-line header and a one-line footer.
func (w *World) Render(dst *core.Screen) {
	if dst.Width() < 4 || dst.Height() < 5 {
		return
	}
	frame := core.NewRect(0, 1, dst.Width(), dst.Height()-2)
	dst.DrawBox(frame, core.ColorFrame)
	vp := viewport{
		inner:  frame.Inset(1),
		extent: w.extent,
	}

	for _, m := range w.mines.units {
		x, y := vp.cell(m.pos)
		if m.elevation > 0 {
			dst.SetColor(x, y, 'v', core.ColorFrame)
		} else {
			dst.SetColor(x, y, '*', core.ColorMine)
		}
	}
	for _, s := range w.shields.units {
		w.drawDisc(dst, vp, s.pos, s.size*s.scale/2, '░', core.ColorShield)
	}
	for c := range w.shapes.set.All() {
		w.drawPoints(dst, vp, c, '◆', core.ColorNeutral)
	}
	for _, s := range w.sentries.units {
		x, y := vp.cell(s.pos)
		dst.SetColor(x, y, 'S', teamColor(s.team))
	}
	for c := range w.tanks.set.All() {
		u := c.Entity().(*Unit)
		w.drawPoints(dst, vp, c, '+', teamColor(u.team))
		x, y := vp.cell(u.pos)
		glyph := 'T'
		if u.Poisoned() {
			glyph = 'P'
		}
		dst.SetColor(x, y, glyph, teamColor(u.team))
	}
	for _, d := range w.drones.units {
		x, y := vp.cell(d.pos)
		dst.SetColor(x, y, 'o', teamColor(d.team))
	}
	for _, c := range w.crashers.units {
		x, y := vp.cell(c.pos)
		dst.SetColor(x, y, '•', core.ColorShot)
	}
	for _, b := range w.bullets.units {
		x, y := vp.cell(b.pos)
		dst.SetColor(x, y, '·', teamColor(b.team))
	}

	if w.overlay && w.resolver != nil {
		w.resolver.Index().Walk(func(bounds geom.Box, _ int) {
			dst.DrawOutline(vp.rect(bounds), '·', core.ColorFrame)
		})
	}

	st := w.Stats()
	state := ""
	if w.paused {
		state = "  [PAUSED]"
	}
	header := fmt.Sprintf(" %s  frame %d  t=%.1fs  alive %d%s", w.script.Title, w.frame, w.elapsed, w.Alive(), state)
	dst.DrawText(0, 0, header, core.ColorHUD)
	footer := fmt.Sprintf(" indexed %d  sensors %d  cand %d  tests %d  hits %d  pairs %d  nodes %d",
		st.Indexed, st.Sensors, st.Candidates, st.Tests, st.Dispatches, st.Suppressed, st.Nodes)
	dst.DrawText(0, dst.Height()-1, footer, core.ColorFrame)
}

// drawPoints marks a polygon's vertices.
func (w *World) drawPoints(dst *core.Screen, vp viewport, c *collision.Collider, glyph rune, color core.Color) {
	for _, p := range c.Points() {
		x, y := vp.cell(p)
		dst.SetColor(x, y, glyph, color)
	}
}

// drawDisc fills every cell whose center lies inside the disc.
func (w *World) drawDisc(dst *core.Screen, vp viewport, center geom.Vec2, r float64, glyph rune, color core.Color) {
	area := vp.rect(geom.BoxAround(center, r))
	cellW := vp.extent.W / float64(vp.inner.W)
	cellH := vp.extent.H / float64(vp.inner.H)
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			p := geom.V(
				vp.extent.X+(float64(x-vp.inner.X)+0.5)*cellW,
				vp.extent.Y+(float64(y-vp.inner.Y)+0.5)*cellH,
			)
			if p.DistSq(center) <= r*r {
				dst.SetColor(x, y, glyph, color)
			}
		}
	}
}
