package satellite

import (
	"fmt"
	"math"

	"github.com/vovakirdan/orbital-drift/internal/core"
	"github.com/vovakirdan/orbital-drift/internal/sim"
)

// Heading glyphs for eight 45° sectors, counter-clockwise from straight up.
var headingGlyphs = [8]rune{'↑', '↖', '←', '↙', '↓', '↘', '→', '↗'}

// flameWindow is how long after a burst the exhaust stays visible.
const flameWindow = 0.2

// Render draws the current game state into the provided screen buffer.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Terminal too small", core.ColorYellow)
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Need at least %dx%d", minScreenW, minScreenH), core.ColorGray)
		return
	}
	if g.world == nil {
		return
	}

	g.drawStars(dst)
	g.drawDebris(dst)
	g.drawSatellite(dst)
	g.drawHUD(dst)

	switch {
	case g.gameOver:
		g.drawGameOver(dst)
	case g.paused:
		g.drawPaused(dst)
	}
}

// toScreen maps a world point to a screen cell below the HUD.
func (g *Game) toScreen(p core.Vec2) (int, int) {
	view := g.world.Viewport()
	cols, rows := g.playArea()
	x := int(math.Floor((p.X - view.MinX) / view.Width() * float64(cols)))
	y := hudRows + int(math.Floor((view.MaxY-p.Y)/view.Height()*float64(rows)))
	return x, y
}

// drawStars scatters a fixed star field that scrolls with the camera.
func (g *Game) drawStars(dst *core.Screen) {
	view := g.world.Viewport()
	cols, rows := g.playArea()
	if rows <= 0 {
		return
	}
	cell := view.Height() / float64(rows)
	for row := 0; row < rows; row++ {
		band := int64(math.Floor((view.MaxY - (float64(row)+0.5)*cell) / cell))
		for col := 0; col < cols; col++ {
			h := starHash(int64(col), band)
			if h%41 != 0 {
				continue
			}
			glyph, color := '.', core.ColorDim
			if h%7 == 0 {
				glyph, color = '·', core.ColorGray
			}
			dst.SetColored(col, hudRows+row, glyph, color)
		}
	}
}

func starHash(x, y int64) uint64 {
	h := uint64(x)*0x9E3779B97F4A7C15 ^ uint64(y)*0xC2B2AE3D27D4EB4F
	h ^= h >> 31
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 29
	return h
}

func (g *Game) drawDebris(dst *core.Screen) {
	for _, d := range g.world.Spawner().Active() {
		look := g.settings.Look(d.Name())
		x, y := g.toScreen(d.Position())
		if y < hudRows {
			continue
		}
		dst.SetColored(x, y, look.Glyph, look.Color)
	}
}

func (g *Game) drawSatellite(dst *core.Screen) {
	sat := g.world.Satellite()
	health := g.world.Health()
	x, y := g.toScreen(sat.Position())

	if health.IsDead() {
		dst.SetColored(x, y, 'x', core.ColorRed)
		return
	}

	// Exhaust one cell behind the satellite right after a burst.
	cfg := sat.Config()
	if cd := sat.ThrustCooldownRemaining(g.world.Now()); cd > 0 && cd > cfg.ThrustCooldown-flameWindow {
		cell := g.world.Viewport().Height() / float64(max(g.runtime.ScreenH-hudRows, 1))
		fx, fy := g.toScreen(sat.Position().Sub(sat.Forward().Scale(cell * 1.5)))
		if fy >= hudRows {
			dst.SetColored(fx, fy, '*', core.ColorOrange)
		}
	}

	color := core.ColorBrightWhite
	if health.IsInvincible() && (g.world.Ticks()/8)%2 == 1 {
		color = core.ColorBrightCyan
	}
	dst.SetColored(x, y, headingGlyph(sat.Angle()), color)
}

func headingGlyph(angle float64) rune {
	sector := int(math.Floor((core.WrapDegrees(angle)+22.5)/45)) % 8
	return headingGlyphs[sector]
}

func (g *Game) drawHUD(dst *core.Screen) {
	st := g.world.State()
	w := dst.Width()

	for x := 0; x < w; x++ {
		dst.SetColored(x, 0, ' ', core.ColorDefault)
	}

	x := 1
	dst.DrawTextColored(x, 0, "HP", core.ColorWhite)
	x += 3
	for i := 0; i < st.MaxHP; i++ {
		if i < st.HP {
			dst.SetColored(x+i, 0, '♥', core.ColorBrightRed)
		} else {
			dst.SetColored(x+i, 0, '♡', core.ColorDim)
		}
	}
	x += st.MaxHP + 2

	dst.DrawTextColored(x, 0, "BAT", core.ColorWhite)
	x += 4
	batColor := core.ColorBrightGreen
	switch {
	case st.BatteryRatio < 0.25:
		batColor = core.ColorRed
	case st.BatteryRatio < 0.5:
		batColor = core.ColorYellow
	}
	dst.DrawMeter(x, 0, 8, st.BatteryRatio, batColor, core.ColorDim)
	x += 10

	dst.DrawTextColored(x, 0, "THR", core.ColorWhite)
	x += 4
	ready := 1.0
	if cd := g.world.Satellite().Config().ThrustCooldown; cd > 0 {
		ready = 1 - st.ThrustCooldown/cd
	}
	thrColor := core.ColorDim
	if st.ThrustCooldown == 0 {
		thrColor = core.ColorCyan
	}
	dst.DrawMeter(x, 0, 4, ready, thrColor, core.ColorDim)
	x += 6

	if st.Phase == sim.PhaseInvincible {
		dst.DrawTextColored(x, 0, fmt.Sprintf("SHIELD %.1fs", st.Invincibility), core.ColorBrightCyan)
	}

	score := fmt.Sprintf("SCORE %d", g.currentScore())
	dst.DrawTextColored(w-len(score)-1, 0, score, core.ColorBrightYellow)
}

func (g *Game) drawPaused(dst *core.Screen) {
	g.drawPanel(dst, 24, 5, core.ColorYellow, []panelLine{
		{"PAUSED", core.ColorBrightYellow},
		{"P to resume", core.ColorGray},
	})
}

func (g *Game) drawGameOver(dst *core.Screen) {
	title := "SIGNAL LOST"
	if g.cause == CauseCollision {
		title = "SATELLITE DESTROYED"
	}
	r := g.Report()
	g.drawPanel(dst, 30, 9, core.ColorRed, []panelLine{
		{title, core.ColorBrightRed},
		{"", core.ColorDefault},
		{fmt.Sprintf("Score     %6d", r.Score), core.ColorBrightYellow},
		{fmt.Sprintf("Distance  %6.1f", r.Distance), core.ColorWhite},
		{fmt.Sprintf("Time      %5.1fs", r.Duration), core.ColorWhite},
		{"R restart  B menu", core.ColorGray},
	})
}

type panelLine struct {
	text  string
	color core.Color
}

// drawPanel draws a boxed panel centered on the screen.
func (g *Game) drawPanel(dst *core.Screen, w, h int, border core.Color, lines []panelLine) {
	r := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r, border)
	for i, line := range lines {
		if line.text == "" {
			continue
		}
		dst.DrawTextCentered(r.Y+1+i, line.text, line.color)
	}
}
