package engine

import (
	"math/rand"
	"testing"
)

type eventKind string

const (
	evSpawn      eventKind = "spawn"
	evDespawn    eventKind = "despawn"
	evConnect    eventKind = "connect"
	evDisconnect eventKind = "disconnect"
)

type event struct {
	Kind   eventKind
	From   TokenID // Token for single-token events
	To     TokenID // Second token for connect, -1 otherwise
	Column int     // Spawn column, -1 otherwise
}

// recorder collects listener events in order.
type recorder struct {
	events []event
}

func (r *recorder) TokenSpawned(t Token, column int) {
	r.events = append(r.events, event{Kind: evSpawn, From: t.ID, To: -1, Column: column})
}

func (r *recorder) TokenDespawned(t Token) {
	r.events = append(r.events, event{Kind: evDespawn, From: t.ID, To: -1, Column: -1})
}

func (r *recorder) TokensConnected(from, to Token) {
	r.events = append(r.events, event{Kind: evConnect, From: from.ID, To: to.ID, Column: -1})
}

func (r *recorder) TokenDisconnected(t Token) {
	r.events = append(r.events, event{Kind: evDisconnect, From: t.ID, To: -1, Column: -1})
}

func (r *recorder) reset() {
	r.events = nil
}

func (r *recorder) count(kind eventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// newTestBoard builds a board with a seeded source and a recorder attached.
func newTestBoard(t *testing.T, w, h int, seed int64) (*Board, *recorder) {
	t.Helper()
	rec := &recorder{}
	b, err := NewBoard(w, h, DefaultPalette(), rand.New(rand.NewSource(seed)), rec)
	if err != nil {
		t.Fatalf("NewBoard() failed: %v", err)
	}
	return b, rec
}

// fill paints every token on the board with c.
func fill(b *Board, c Color) {
	for x := range b.columns {
		for y := range b.columns[x] {
			b.columns[x][y].Color = c
		}
	}
}

// paint sets the color of the tokens at the given coordinates and returns them.
func paint(t *testing.T, b *Board, c Color, coords ...Coord) []Token {
	t.Helper()
	tokens := make([]Token, 0, len(coords))
	for _, pos := range coords {
		if _, ok := b.At(pos); !ok {
			t.Fatalf("paint: no token at %v", pos)
		}
		b.columns[pos.X][pos.Y].Color = c
		tokens = append(tokens, b.columns[pos.X][pos.Y])
	}
	return tokens
}

// onBoard reports whether a token with the id is anywhere on the board.
func onBoard(b *Board, id TokenID) bool {
	for _, col := range b.columns {
		for _, tok := range col {
			if tok.ID == id {
				return true
			}
		}
	}
	return false
}

// checkInvariants verifies full columns, unique ids and a consistent index.
func checkInvariants(t *testing.T, b *Board) {
	t.Helper()

	seen := make(map[TokenID]bool)
	for x, col := range b.columns {
		if len(col) != b.height {
			t.Errorf("column %d has %d tokens, want %d", x, len(col), b.height)
		}
		for y, tok := range col {
			if seen[tok.ID] {
				t.Errorf("duplicate token id %d", tok.ID)
			}
			seen[tok.ID] = true

			pos, err := b.Locate(tok.ID)
			if err != nil {
				t.Errorf("Locate(%d) failed: %v", tok.ID, err)
				continue
			}
			if pos != C(x, y) {
				t.Errorf("Locate(%d) = %v, want %v", tok.ID, pos, C(x, y))
			}
		}
	}

	if len(b.index) != len(seen) {
		t.Errorf("index has %d entries, board has %d tokens", len(b.index), len(seen))
	}
}
