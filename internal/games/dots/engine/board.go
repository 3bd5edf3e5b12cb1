package engine

import (
	"errors"
	"math/rand"
)

// Board owns the tokens of one game. Columns are stored left to right and
// each column bottom to top, so insertion order is row order and the last
// element of a column is the most recently spawned token.
//
// After every completed operation each column holds exactly Height tokens
// and every id on the board is unique.
type Board struct {
	width   int
	height  int
	columns [][]Token
	index   map[TokenID]Coord // Kept in step with columns on spawn and remove
	palette []Color
	rng     *rand.Rand
	nextID  TokenID
	events  Listener
}

// NewBoard creates a board and fills every column with freshly spawned
// tokens, column by column from left to right, each from bottom to top.
// The same rng seed always yields the same board.
func NewBoard(width, height int, palette []Color, rng *rand.Rand, l Listener) (*Board, error) {
	if width < 1 || height < 1 {
		return nil, errors.New("engine: board dimensions must be positive")
	}
	if len(palette) == 0 {
		return nil, errors.New("engine: palette is empty")
	}
	if rng == nil {
		return nil, errors.New("engine: random source is nil")
	}

	b := &Board{
		width:   width,
		height:  height,
		columns: make([][]Token, width),
		index:   make(map[TokenID]Coord, width*height),
		palette: append([]Color(nil), palette...),
		rng:     rng,
		events:  orNop(l),
	}
	for x := range b.columns {
		b.columns[x] = make([]Token, 0, height)
	}

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if _, err := b.Spawn(x); err != nil {
				return nil, err
			}
		}
	}

	return b, nil
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of tokens in a full column.
func (b *Board) Height() int {
	return b.height
}

// Palette returns a copy of the colors new tokens are drawn from.
func (b *Board) Palette() []Color {
	return append([]Color(nil), b.palette...)
}

// Len returns the number of tokens on the board.
func (b *Board) Len() int {
	return len(b.index)
}

// Spawn appends a new token with a fresh id and a uniformly random palette
// color to the top of column. Spawning into a full column is an invariant
// violation: columns are only short between a removal and its refill.
func (b *Board) Spawn(column int) (Token, error) {
	if column < 0 || column >= b.width {
		return Token{}, columnError("spawn", column, ErrColumnRange)
	}
	if len(b.columns[column]) >= b.height {
		return Token{}, columnError("spawn", column, ErrColumnFull)
	}

	t := Token{
		ID:    b.nextID,
		Color: b.palette[b.rng.Intn(len(b.palette))],
	}
	b.nextID++

	b.index[t.ID] = C(column, len(b.columns[column]))
	b.columns[column] = append(b.columns[column], t)
	b.events.TokenSpawned(t, column)

	return t, nil
}

// Locate returns the position of the token with the given id.
func (b *Board) Locate(id TokenID) (Coord, error) {
	pos, ok := b.index[id]
	if !ok {
		return Coord{}, notFound("locate", id)
	}
	return pos, nil
}

// At returns the token at the given position.
func (b *Board) At(c Coord) (Token, bool) {
	if c.X < 0 || c.X >= b.width || c.Y < 0 || c.Y >= len(b.columns[c.X]) {
		return Token{}, false
	}
	return b.columns[c.X][c.Y], true
}

// Get returns the token with the given id.
func (b *Board) Get(id TokenID) (Token, error) {
	pos, err := b.Locate(id)
	if err != nil {
		return Token{}, err
	}
	return b.columns[pos.X][pos.Y], nil
}

// Remove deletes a token from its column and immediately spawns a
// replacement at the top of the same column. Tokens above the removed one
// drop one row.
func (b *Board) Remove(id TokenID) error {
	pos, ok := b.index[id]
	if !ok {
		return notFound("remove", id)
	}

	col := b.columns[pos.X]
	t := col[pos.Y]
	col = append(col[:pos.Y], col[pos.Y+1:]...)
	b.columns[pos.X] = col

	delete(b.index, id)
	for y := pos.Y; y < len(col); y++ {
		b.index[col[y].ID] = C(pos.X, y)
	}

	b.events.TokenDespawned(t)

	_, err := b.Spawn(pos.X)
	return err
}

// TokensOfColor returns every token of the given color in column-major
// order, rows ascending.
func (b *Board) TokensOfColor(c Color) []Token {
	var tokens []Token
	for _, col := range b.columns {
		for _, t := range col {
			if t.Color == c {
				tokens = append(tokens, t)
			}
		}
	}
	return tokens
}

// Column returns a copy of the tokens in column x, bottom to top.
// Returns nil if x is out of range.
func (b *Board) Column(x int) []Token {
	if x < 0 || x >= b.width {
		return nil
	}
	return append([]Token(nil), b.columns[x]...)
}

// Columns returns a deep copy of the board.
func (b *Board) Columns() [][]Token {
	cols := make([][]Token, b.width)
	for x := range b.columns {
		cols[x] = append([]Token(nil), b.columns[x]...)
	}
	return cols
}
