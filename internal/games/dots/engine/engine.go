package engine

import (
	"math/rand"
	"sync"
)

// Options configures an Engine.
type Options struct {
	// Palette is the set of colors new tokens are drawn from.
	// Empty means DefaultPalette.
	Palette []Color

	// Listener receives board and chain events. May be nil.
	Listener Listener
}

// Snapshot is a copy of the engine state for presentation and tests.
type Snapshot struct {
	Width   int
	Height  int
	Columns [][]Token // Column-major, rows bottom to top
	Chain   []Token   // Selection order
	State   State
}

// Engine ties a Board and its Selection together behind the calls a host
// makes: start a game, feed pointer selections, release, and query.
//
// A single mutex is held for the duration of every call, so an Engine may
// be shared between goroutines. Listeners are invoked with the mutex held
// and must not call back into the Engine.
type Engine struct {
	mu       sync.Mutex
	palette  []Color
	listener Listener
	board    *Board
	sel      *Selection
}

// New creates an engine. Call NewGame before anything else.
func New(opts Options) *Engine {
	palette := opts.Palette
	if len(palette) == 0 {
		palette = DefaultPalette()
	}
	return &Engine{
		palette:  append([]Color(nil), palette...),
		listener: orNop(opts.Listener),
	}
}

// NewGame discards the current board and selection and builds a new board
// from the seed. The same seed, size and palette always give the same board.
func (e *Engine) NewGame(width, height int, seed int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rng := rand.New(rand.NewSource(seed))
	b, err := NewBoard(width, height, e.palette, rng, e.listener)
	if err != nil {
		return err
	}
	e.board = b
	e.sel = NewSelection(b, e.listener)
	return nil
}

// Select offers a token to the current chain. See Selection.Select.
func (e *Engine) Select(id TokenID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sel == nil {
		return ErrNoGame
	}
	return e.sel.Select(id)
}

// FinishSelection ends the selection cycle and clears what the chain
// earned. See Selection.Finish.
func (e *Engine) FinishSelection() (Clear, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sel == nil {
		return Clear{}, ErrNoGame
	}
	return e.sel.Finish()
}

// CancelSelection drops the chain without clearing anything.
func (e *Engine) CancelSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sel != nil {
		e.sel.Cancel()
	}
}

// IsSelected reports whether the token is in the current chain.
func (e *Engine) IsSelected(id TokenID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.sel != nil && e.sel.IsSelected(id)
}

// SelectionLength returns the number of entries in the current chain.
func (e *Engine) SelectionLength() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sel == nil {
		return 0
	}
	return e.sel.Len()
}

// SelectionState returns the phase of the selection state machine.
func (e *Engine) SelectionState() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sel == nil {
		return StateEmpty
	}
	return e.sel.State()
}

// Locate returns the board position of a token.
func (e *Engine) Locate(id TokenID) (Coord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.board == nil {
		return Coord{}, ErrNoGame
	}
	return e.board.Locate(id)
}

// At returns the token at a board position.
func (e *Engine) At(c Coord) (Token, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.board == nil {
		return Token{}, false
	}
	return e.board.At(c)
}

// Snapshot returns a copy of the board and chain.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.board == nil {
		return Snapshot{}
	}
	return Snapshot{
		Width:   e.board.Width(),
		Height:  e.board.Height(),
		Columns: e.board.Columns(),
		Chain:   e.sel.Chain(),
		State:   e.sel.State(),
	}
}
