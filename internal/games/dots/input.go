package dots

import (
	"github.com/vovakirdan/tui-dots/internal/core"
	"github.com/vovakirdan/tui-dots/internal/games/dots/engine"
)

// handlePointer plays the frame's mouse events in order: a press starts a
// chain on the token under the pointer, dragging onto another cell offers
// that token, and releasing finishes the chain. Releasing off the board
// abandons the chain instead.
func (g *Game) handlePointer(events []core.PointerEvent) int {
	cleared := 0
	for _, ev := range events {
		if g.fault != nil || g.gameOver {
			break
		}
		cell, onBoard := g.layout.cellAt(ev.X, ev.Y)

		switch ev.Kind {
		case core.PointerPress:
			if !onBoard || g.view.falling() {
				continue
			}
			if g.keyDrag {
				g.cancel()
				g.keyDrag = false
			}
			g.pointerDown = true
			g.lastCell = cell
			g.cursor = cell
			g.selectAt(cell)

		case core.PointerDrag:
			if !g.pointerDown || !onBoard || cell == g.lastCell {
				continue
			}
			g.lastCell = cell
			g.cursor = cell
			g.selectAt(cell)

		case core.PointerRelease:
			if !g.pointerDown {
				continue
			}
			g.pointerDown = false
			if onBoard {
				cleared += g.finish()
			} else {
				g.cancel()
			}
		}
	}
	return cleared
}

// handleKeys drives the same chain from the keyboard. Space picks up the
// token under the cursor, arrows extend the chain while it is held, and
// Space or Enter releases it.
func (g *Game) handleKeys(in core.InputFrame) int {
	if g.fault != nil || g.gameOver || g.pointerDown {
		return 0
	}

	if in.Has(core.ActionBack) && g.keyDrag {
		g.cancel()
		g.keyDrag = false
		return 0
	}

	dx, dy := 0, 0
	switch {
	case in.Has(core.ActionLeft):
		dx = -1
	case in.Has(core.ActionRight):
		dx = 1
	case in.Has(core.ActionUp):
		dy = 1
	case in.Has(core.ActionDown):
		dy = -1
	}
	if dx != 0 || dy != 0 {
		next := engine.C(
			core.Clamp(g.cursor.X+dx, 0, g.cfg.Board.Width-1),
			core.Clamp(g.cursor.Y+dy, 0, g.cfg.Board.Height-1),
		)
		if next != g.cursor {
			g.cursor = next
			if g.keyDrag {
				g.selectAt(next)
			}
		}
	}

	switch {
	case in.Has(core.ActionSelect) && !g.keyDrag:
		if g.view.falling() {
			return 0
		}
		g.keyDrag = true
		g.selectAt(g.cursor)
	case (in.Has(core.ActionSelect) || in.Has(core.ActionConfirm)) && g.keyDrag:
		g.keyDrag = false
		return g.finish()
	}
	return 0
}
