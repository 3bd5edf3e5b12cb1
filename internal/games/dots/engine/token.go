// Package engine implements the rules of the dots puzzle: a column-major
// board of colored tokens, the drag-selection chain with loop detection,
// and clearing with refill from the top.
//
// The package has no dependency on rendering, input or timing. Hosts drive
// it through Engine (or Board and Selection directly) and observe changes
// through a Listener.
package engine

import (
	"fmt"
	"strings"
)

// TokenID identifies a token for its whole lifetime. Ids are assigned in
// increasing order by a Board and never reused.
type TokenID int

// Color is a token color.
type Color uint8

const (
	ColorRed Color = iota
	ColorGreen
	ColorYellow
	ColorMagenta
	ColorBlue
	ColorCyan
	ColorCount // Sentinel value for iteration
)

// String returns the color name.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorMagenta:
		return "magenta"
	case ColorBlue:
		return "blue"
	case ColorCyan:
		return "cyan"
	default:
		return "unknown"
	}
}

// Char returns a single letter for ASCII dumps of the board.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorGreen:
		return 'G'
	case ColorYellow:
		return 'Y'
	case ColorMagenta:
		return 'M'
	case ColorBlue:
		return 'B'
	case ColorCyan:
		return 'C'
	default:
		return '?'
	}
}

// ParseColor converts a color name or its initial to a Color.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return ColorRed, true
	case "green", "g":
		return ColorGreen, true
	case "yellow", "y":
		return ColorYellow, true
	case "magenta", "m":
		return ColorMagenta, true
	case "blue", "b":
		return ColorBlue, true
	case "cyan", "c":
		return ColorCyan, true
	default:
		return ColorRed, false
	}
}

// DefaultPalette returns the four colors of the classic game.
func DefaultPalette() []Color {
	return []Color{ColorRed, ColorGreen, ColorYellow, ColorMagenta}
}

// AllColors returns every known color.
func AllColors() []Color {
	colors := make([]Color, 0, ColorCount)
	for c := Color(0); c < ColorCount; c++ {
		colors = append(colors, c)
	}
	return colors
}

// Token is a single colored dot on the board.
type Token struct {
	ID    TokenID
	Color Color
}

// String returns a short description, e.g. "#12/red".
func (t Token) String() string {
	return fmt.Sprintf("#%d/%s", t.ID, t.Color)
}

// Coord is a board position. X is the column, Y the row counted from the
// bottom (row 0 is the oldest token in a column).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Adjacent reports whether two coordinates are 4-directionally adjacent.
func (c Coord) Adjacent(other Coord) bool {
	return c.Manhattan(other) == 1
}
