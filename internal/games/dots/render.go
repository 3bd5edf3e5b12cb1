package dots

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-dots/internal/core"
	"github.com/vovakirdan/tui-dots/internal/games/dots/engine"
)

// Visual characters for rendering
const (
	TokenGlyph    = '●'
	SelectedGlyph = '◉'
	LinkHoriz     = '─'
	LinkVert      = '│'
	CursorLeft    = '['
	CursorRight   = ']'
)

// screenColors maps engine colors to screen colors.
var screenColors = map[engine.Color]core.Color{
	engine.ColorRed:     core.ColorRed,
	engine.ColorGreen:   core.ColorGreen,
	engine.ColorYellow:  core.ColorYellow,
	engine.ColorMagenta: core.ColorMagenta,
	engine.ColorBlue:    core.ColorBlue,
	engine.ColorCyan:    core.ColorCyan,
}

func screenColor(c engine.Color) core.Color {
	if sc, ok := screenColors[c]; ok {
		return sc
	}
	return core.ColorWhite
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.view == nil {
		return
	}

	g.renderHUD(dst)
	dst.DrawBoxWithColor(g.layout.frame, core.ColorGray)
	g.renderLinks(dst)
	g.renderTokens(dst)
	g.renderCursor(dst)
	g.renderOverlays(dst)

	dst.DrawTextCenteredWithColor(g.layout.frame.Bottom(), g.Controls(), core.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", g.layout.frame.W, g.layout.frame.Bottom()+1))
}

// renderHUD draws the title, score and remaining moves above the board.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCenteredWithColor(0, g.Title(), core.ColorBrightWhite)

	left := g.layout.frame.X
	right := g.layout.frame.Right()

	dst.DrawText(left, 1, fmt.Sprintf("Score: %d", g.score))

	info := fmt.Sprintf("Loops: %d", g.loops)
	if g.moves >= 0 {
		info = fmt.Sprintf("Moves: %d", g.moves)
	}
	dst.DrawText(core.Max(left, right-len(info)), 1, info)

	if n := len(g.view.snap.Chain); n > 1 {
		chain := fmt.Sprintf("Chain: %d", n-1)
		if g.view.snap.State == engine.StateLooped {
			chain = "Loop!"
		}
		c := screenColor(g.view.snap.Chain[0].Color)
		dst.DrawTextCenteredWithColor(2, chain, c.Bright())
	}
}

// spritePoint returns where a sprite is drawn, and false while it is still
// above the board.
func (g *Game) spritePoint(s *sprite) (int, int, bool) {
	row := int(math.Round(s.row))
	if row >= g.layout.height {
		return 0, 0, false
	}
	x, y := g.layout.point(s.col, row)
	return x, y, true
}

// renderLinks draws a connector from every chained token to the token it
// was reached from.
func (g *Game) renderLinks(dst *core.Screen) {
	for to, from := range g.view.links {
		a, okA := g.view.sprites[from]
		b, okB := g.view.sprites[to]
		if !okA || !okB {
			continue
		}
		ax, ay, okA := g.spritePoint(a)
		bx, by, okB := g.spritePoint(b)
		if !okA || !okB {
			continue
		}
		c := screenColor(a.tok.Color).Bright()

		switch {
		case ay == by:
			for x := core.Min(ax, bx) + 1; x < core.Max(ax, bx); x++ {
				dst.SetWithColor(x, ay, LinkHoriz, c)
			}
		case ax == bx:
			for y := core.Min(ay, by) + 1; y < core.Max(ay, by); y++ {
				dst.SetWithColor(ax, y, LinkVert, c)
			}
		}
	}
}

// renderTokens draws every sprite that has entered the board.
func (g *Game) renderTokens(dst *core.Screen) {
	for _, s := range g.view.sprites {
		x, y, ok := g.spritePoint(s)
		if !ok {
			continue
		}
		glyph := TokenGlyph
		c := screenColor(s.tok.Color)
		if g.view.selected(s.tok.ID) {
			glyph = SelectedGlyph
			c = c.Bright()
		}
		dst.SetWithColor(x, y, glyph, c)
	}
}

// renderCursor brackets the keyboard cursor.
func (g *Game) renderCursor(dst *core.Screen) {
	if g.gameOver || g.fault != nil {
		return
	}
	x, y := g.layout.point(g.cursor.X, g.cursor.Y)
	c := core.ColorWhite
	if g.keyDrag {
		c = core.ColorBrightWhite
	}
	dst.SetWithColor(x-1, y, CursorLeft, c)
	dst.SetWithColor(x+1, y, CursorRight, c)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen) {
	cx, cy := g.layout.frame.Center()

	switch {
	case g.fault != nil:
		g.drawOverlay(dst, cx, cy, core.ColorRed, "INTERNAL ERROR", "The board is inconsistent", "Press R to restart")
	case g.paused:
		g.drawOverlay(dst, cx, cy, core.ColorDefault, "PAUSED", "Press P to resume")
	case g.gameOver:
		g.drawOverlay(dst, cx, cy, core.ColorDefault, "OUT OF MOVES", fmt.Sprintf("Cleared %d", g.score), "Press R to restart")
	}
}

// drawOverlay draws a boxed, centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len([]rune(line)))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBoxWithColor(box, c)

	for i, line := range lines {
		dst.DrawTextWithColor(centerX-len([]rune(line))/2, box.Y+1+i, line, c)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Mouse: drag | Arrows+Space: chain | Esc: drop | P: Pause | Q: Quit"
}
