package dots

import (
	"github.com/vovakirdan/tui-dots/internal/games/dots/engine"
)

// sprite is the on-screen state of one token.
type sprite struct {
	tok    engine.Token
	col    int
	row    float64 // Visual row, bottom = 0; above Height while entering
	target int     // Row the token rests on
}

// boardView mirrors engine events into drawable state. It is the engine's
// listener, so it only records what happened and never calls back into the
// engine; settle reconciles it with a snapshot after each engine call.
type boardView struct {
	height  int
	speed   float64
	sprites map[engine.TokenID]*sprite
	links   map[engine.TokenID]engine.TokenID // to -> from
	entered map[int]int                       // Spawns per column since the last settle
	snap    engine.Snapshot
}

func newBoardView(height int, speed float64) *boardView {
	if speed <= 0 {
		speed = 1
	}
	return &boardView{
		height:  height,
		speed:   speed,
		sprites: make(map[engine.TokenID]*sprite),
		links:   make(map[engine.TokenID]engine.TokenID),
		entered: make(map[int]int),
	}
}

// TokenSpawned stacks new tokens above the top of their column.
func (v *boardView) TokenSpawned(t engine.Token, column int) {
	start := v.height + v.entered[column]
	v.entered[column]++
	v.sprites[t.ID] = &sprite{tok: t, col: column, row: float64(start), target: start}
}

// TokenDespawned drops the sprite and every connector touching it.
func (v *boardView) TokenDespawned(t engine.Token) {
	delete(v.sprites, t.ID)
	delete(v.links, t.ID)
	for to, from := range v.links {
		if from == t.ID {
			delete(v.links, to)
		}
	}
}

func (v *boardView) TokensConnected(from, to engine.Token) {
	v.links[to.ID] = from.ID
}

func (v *boardView) TokenDisconnected(t engine.Token) {
	delete(v.links, t.ID)
}

// settle points every sprite at its board row. Tokens whose row dropped
// fall from where they are drawn now.
func (v *boardView) settle(snap engine.Snapshot) {
	v.snap = snap
	for x, col := range snap.Columns {
		for y, tok := range col {
			s, ok := v.sprites[tok.ID]
			if !ok {
				s = &sprite{tok: tok, row: float64(y)}
				v.sprites[tok.ID] = s
			}
			s.col = x
			s.target = y
		}
	}
	clear(v.entered)
}

// animate moves falling sprites one tick closer to their rows.
func (v *boardView) animate() {
	for _, s := range v.sprites {
		if s.row <= float64(s.target) {
			continue
		}
		s.row -= v.speed
		if s.row < float64(s.target) {
			s.row = float64(s.target)
		}
	}
}

// falling reports whether any sprite is still moving.
func (v *boardView) falling() bool {
	for _, s := range v.sprites {
		if s.row > float64(s.target) {
			return true
		}
	}
	return false
}

// selected reports whether the token is part of the last settled chain.
func (v *boardView) selected(id engine.TokenID) bool {
	for _, t := range v.snap.Chain {
		if t.ID == id {
			return true
		}
	}
	return false
}

// link returns the token the chain reached id from.
func (v *boardView) link(id engine.TokenID) (engine.TokenID, bool) {
	from, ok := v.links[id]
	return from, ok
}
