package jump

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-jump/internal/core"
)

// cellAspect is how many times taller a terminal cell is than it is wide.
const cellAspect = 2.0

// Visual characters for rendering
const (
	BodyChar     = '█'
	WallChar     = '│'
	BreakingChar = '░'
	FallbackChar = '▒'
	eyeLeft      = '◀'
	eyeRight     = '▶'
)

// glyph is how an appearance token looks in the terminal.
type glyph struct {
	fill  rune
	color core.Color
}

// theme maps appearance tokens to glyphs. Tokens without an entry use fallback.
var theme = map[string]glyph{
	"platform-static":    {'▀', core.ColorGreen},
	"platform-moving":    {'▀', core.ColorCyan},
	"platform-breakable": {'▀', core.ColorOrange},
	"player-left":        {BodyChar, core.ColorYellow},
	"player-right":       {BodyChar, core.ColorYellow},
}

var fallback = glyph{FallbackChar, core.ColorMagenta}

func lookupGlyph(token string) glyph {
	if g, ok := theme[token]; ok {
		return g
	}
	return fallback
}

// viewport maps world pixels to screen cells, letterboxed below the HUD row.
type viewport struct {
	ox, oy int     // top-left cell of the world
	w, h   int     // size in cells
	sx, sy float64 // world pixels per cell
}

func newViewport(screenW, screenH int, worldW, worldH float64) viewport {
	rows := max(1, screenH-1) // first row is the HUD
	cols := max(1, screenW)

	sx := math.Max(worldW/float64(cols), worldH/(cellAspect*float64(rows)))
	sy := sx * cellAspect

	v := viewport{
		sx: sx,
		sy: sy,
		w:  min(cols, int(math.Ceil(worldW/sx))),
		h:  min(rows, int(math.Ceil(worldH/sy))),
	}
	v.ox = (cols - v.w) / 2
	v.oy = 1 + (rows-v.h)/2
	return v
}

// cells converts a world rectangle to a cell rectangle clipped to the viewport.
// Anything visible occupies at least one cell.
func (v viewport) cells(r core.RectF) (core.Rect, bool) {
	x0 := int(math.Floor(r.X / v.sx))
	y0 := int(math.Floor(r.Y / v.sy))
	x1 := max(x0+1, int(math.Ceil(r.Right()/v.sx)))
	y1 := max(y0+1, int(math.Ceil(r.Bottom()/v.sy)))

	x0, x1 = max(x0, 0), min(x1, v.w)
	y0, y1 = max(y0, 0), min(y1, v.h)
	if x0 >= x1 || y0 >= y1 {
		return core.Rect{}, false
	}
	return core.NewRect(v.ox+x0, v.oy+y0, x1-x0, y1-y0), true
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.body == nil {
		return
	}

	v := newViewport(dst.Width(), dst.Height(), g.cfg.World.Width, g.cfg.World.Height)

	// Side walls mark the edges of the world when there is room for them
	if v.ox > 0 {
		dst.DrawVLine(v.ox-1, v.oy, v.h, WallChar, core.ColorGray)
	}
	if v.ox+v.w < dst.Width() {
		dst.DrawVLine(v.ox+v.w, v.oy, v.h, WallChar, core.ColorGray)
	}

	for _, p := range g.field.Platforms() {
		g.drawPlatform(dst, v, p)
	}
	g.drawBody(dst, v)
	g.drawHUD(dst)

	switch {
	case g.phase == PhaseMenu:
		g.drawCenteredMessage(dst, "J U M P", "←/→ to move  |  Enter to start")
	case g.phase == PhaseGameOver:
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Best: %d  |  R to restart", g.lastScore, g.best))
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawPlatform(dst *core.Screen, v viewport, p *Platform) {
	if !p.Visible() {
		return
	}
	r, ok := v.cells(p.Rect())
	if !ok {
		return
	}

	gl := lookupGlyph(p.Appearance)
	fill := gl.fill
	if p.State == StateBreaking {
		fill = BreakingChar
	}
	dst.DrawRectColor(r, fill, gl.color)
}

func (g *Game) drawBody(dst *core.Screen, v viewport) {
	r, ok := v.cells(g.body.Rect())
	if !ok {
		return
	}

	token := g.cfg.Appearance.PlayerRight
	eye, eyeX := eyeRight, r.Right()-1
	if g.body.Facing == FacingLeft {
		token = g.cfg.Appearance.PlayerLeft
		eye, eyeX = eyeLeft, r.X
	}

	gl := lookupGlyph(token)
	dst.DrawRectColor(r, gl.fill, gl.color)
	if r.W > 1 {
		dst.SetColor(eyeX, r.Y, eye, gl.color)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	st := g.State()
	hud := fmt.Sprintf(" Score: %d  Best: %d  Level: %d ", st.Score, st.Best, st.Level)
	dst.DrawTextColor(0, 0, hud, core.ColorWhite)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleW := len([]rune(title))
	subtitleW := len([]rune(subtitle))

	boxW := max(titleW, subtitleW) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-titleW)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-subtitleW)/2, boxY+3, subtitle)
}
