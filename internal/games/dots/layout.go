package dots

import (
	"github.com/vovakirdan/tui-dots/internal/core"
	"github.com/vovakirdan/tui-dots/internal/games/dots/engine"
)

const (
	cellWidth  = 4 // Columns of text per board column
	cellHeight = 2 // Rows of text per board row
	hudHeight  = 3
)

// layout places the board on the screen. Each token owns a
// cellWidth x cellHeight tile; the token sits one column into the tile's
// first line and the rest of the tile carries connectors.
type layout struct {
	width, height int // Board size in tokens
	frame         core.Rect
	tiles         core.Rect
	fits          bool
}

func newLayout(width, height, screenW, screenH int) layout {
	frameW := width*cellWidth + 1
	frameH := height*cellHeight + 1
	x := (screenW - frameW) / 2
	y := hudHeight
	return layout{
		width:  width,
		height: height,
		frame:  core.NewRect(x, y, frameW, frameH),
		tiles:  core.NewRect(x+1, y+1, width*cellWidth, height*cellHeight),
		fits:   screenW >= frameW && screenH >= y+frameH+1,
	}
}

// point returns the screen position of a token drawn at the given board
// row. Rows at or above the board height land above the frame.
func (l layout) point(col, row int) (int, int) {
	x := l.tiles.X + 1 + col*cellWidth
	y := l.tiles.Y + (l.height-1-row)*cellHeight
	return x, y
}

// cellAt maps a screen position to a board coordinate.
func (l layout) cellAt(x, y int) (engine.Coord, bool) {
	col, row, ok := l.tiles.CellAt(x, y, cellWidth, cellHeight)
	if !ok {
		return engine.Coord{}, false
	}
	return engine.C(col, l.height-1-row), true
}
