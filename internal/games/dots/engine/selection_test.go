package engine

import (
	"errors"
	"math/rand"
	"testing"
)

// selectAt selects the tokens at the given coordinates in order.
func selectAt(t *testing.T, b *Board, s *Selection, coords ...Coord) {
	t.Helper()
	for _, pos := range coords {
		tok, ok := b.At(pos)
		if !ok {
			t.Fatalf("no token at %v", pos)
		}
		if err := s.Select(tok.ID); err != nil {
			t.Fatalf("Select(%v) failed: %v", pos, err)
		}
	}
}

func snapshotColumns(b *Board) [][]Token {
	return b.Columns()
}

func sameColumns(a, b [][]Token) bool {
	if len(a) != len(b) {
		return false
	}
	for x := range a {
		if len(a[x]) != len(b[x]) {
			return false
		}
		for y := range a[x] {
			if a[x][y] != b[x][y] {
				return false
			}
		}
	}
	return true
}

func TestSelectFirstTokenAlwaysAccepted(t *testing.T) {
	b, rec := newTestBoard(t, 4, 4, 1)
	s := NewSelection(b, rec)
	rec.reset()

	if s.State() != StateEmpty {
		t.Fatalf("initial state = %v, want empty", s.State())
	}

	selectAt(t, b, s, C(3, 3))

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if s.State() != StateChaining {
		t.Errorf("state = %v, want chaining", s.State())
	}
	if len(rec.events) != 0 {
		t.Errorf("first selection emitted events: %+v", rec.events)
	}
}

func TestSelectAppendsAdjacentSameColor(t *testing.T) {
	b, rec := newTestBoard(t, 4, 4, 1)
	fill(b, ColorGreen)
	red := paint(t, b, ColorRed, C(0, 0), C(0, 1), C(1, 1))
	s := NewSelection(b, rec)
	rec.reset()

	selectAt(t, b, s, C(0, 0), C(0, 1), C(1, 1))

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	chain := s.Chain()
	for i := range red {
		if chain[i] != red[i] {
			t.Errorf("chain[%d] = %v, want %v", i, chain[i], red[i])
		}
		if !s.IsSelected(red[i].ID) {
			t.Errorf("IsSelected(%d) = false", red[i].ID)
		}
	}

	want := []event{
		{Kind: evConnect, From: red[0].ID, To: red[1].ID, Column: -1},
		{Kind: evConnect, From: red[1].ID, To: red[2].ID, Column: -1},
	}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %+v, want %+v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, rec.events[i], want[i])
		}
	}
}

func TestSelectRejectsInvalidMoves(t *testing.T) {
	b, rec := newTestBoard(t, 4, 4, 1)
	fill(b, ColorGreen)
	paint(t, b, ColorRed, C(1, 1), C(2, 2), C(3, 1), C(1, 3))
	paint(t, b, ColorYellow, C(1, 2))
	s := NewSelection(b, rec)

	selectAt(t, b, s, C(1, 1))
	before := snapshotColumns(b)
	rec.reset()

	tests := []struct {
		name string
		pos  Coord
	}{
		{"different color neighbour", C(1, 2)},
		{"diagonal same color", C(2, 2)},
		{"distant same color in row", C(3, 1)},
		{"distant same color in column", C(1, 3)},
		{"same token again", C(1, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			selectAt(t, b, s, tc.pos)
			if s.Len() != 1 {
				t.Errorf("Len() = %d after rejected move, want 1", s.Len())
			}
		})
	}

	if len(rec.events) != 0 {
		t.Errorf("rejected moves emitted events: %+v", rec.events)
	}
	if !sameColumns(before, snapshotColumns(b)) {
		t.Error("rejected moves changed the board")
	}
}

func TestSelectUnknownTokenIsInvariantViolation(t *testing.T) {
	b, _ := newTestBoard(t, 3, 3, 1)
	s := NewSelection(b, nil)

	if err := s.Select(TokenID(500)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Select(500) on empty chain: err = %v, want ErrNotFound", err)
	}

	selectAt(t, b, s, C(0, 0))
	if err := s.Select(TokenID(500)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Select(500) on chain: err = %v, want ErrNotFound", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSelectBacktrack(t *testing.T) {
	b, rec := newTestBoard(t, 4, 4, 1)
	fill(b, ColorRed)
	s := NewSelection(b, rec)

	a, _ := b.At(C(0, 0))
	bTok, _ := b.At(C(0, 1))

	selectAt(t, b, s, C(0, 0), C(0, 1))
	rec.reset()

	selectAt(t, b, s, C(0, 0))

	if s.Len() != 1 {
		t.Fatalf("Len() = %d after backtrack, want 1", s.Len())
	}
	if s.IsSelected(bTok.ID) {
		t.Error("popped token is still selected")
	}
	if !s.IsSelected(a.ID) {
		t.Error("first token lost after backtrack")
	}
	if len(rec.events) != 1 || rec.events[0].Kind != evDisconnect || rec.events[0].From != bTok.ID {
		t.Errorf("events = %+v, want single disconnect of %d", rec.events, bTok.ID)
	}
}

func TestSelectBacktrackMidChain(t *testing.T) {
	b, rec := newTestBoard(t, 4, 4, 1)
	fill(b, ColorRed)
	s := NewSelection(b, rec)

	selectAt(t, b, s, C(0, 0), C(0, 1), C(0, 2), C(1, 2))
	rec.reset()

	// Second-to-last is (0,2): pops (1,2), then (0,1) pops (0,2)
	selectAt(t, b, s, C(0, 2))
	selectAt(t, b, s, C(0, 1))

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if rec.count(evDisconnect) != 2 {
		t.Errorf("disconnect events = %d, want 2", rec.count(evDisconnect))
	}
}

func TestSelectClosesLoop(t *testing.T) {
	b, rec := newTestBoard(t, 4, 4, 1)
	fill(b, ColorGreen)
	red := paint(t, b, ColorRed, C(0, 0), C(0, 1), C(1, 1), C(1, 0))
	s := NewSelection(b, rec)

	selectAt(t, b, s, C(0, 0), C(0, 1), C(1, 1), C(1, 0))
	if s.State() != StateChaining {
		t.Fatalf("state = %v before closing, want chaining", s.State())
	}
	rec.reset()

	selectAt(t, b, s, C(0, 0))

	if s.State() != StateLooped {
		t.Fatalf("state = %v, want looped", s.State())
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
	want := event{Kind: evConnect, From: red[3].ID, To: red[0].ID, Column: -1}
	if len(rec.events) != 1 || rec.events[0] != want {
		t.Errorf("events = %+v, want %+v", rec.events, want)
	}
}

func TestSelectIgnoredOnceLooped(t *testing.T) {
	b, rec := newTestBoard(t, 4, 4, 1)
	fill(b, ColorRed)
	s := NewSelection(b, rec)

	selectAt(t, b, s, C(0, 0), C(0, 1), C(1, 1), C(1, 0), C(0, 0))
	rec.reset()

	// (2,0) is adjacent to (1,0) and red, but the loop is closed
	selectAt(t, b, s, C(2, 0))
	selectAt(t, b, s, C(1, 2))

	if s.Len() != 5 || s.State() != StateLooped {
		t.Errorf("Len() = %d state = %v, want 5 looped", s.Len(), s.State())
	}
	if len(rec.events) != 0 {
		t.Errorf("events after loop = %+v", rec.events)
	}
}

func TestSelectBacktrackOpensLoop(t *testing.T) {
	b, rec := newTestBoard(t, 4, 4, 1)
	fill(b, ColorRed)
	s := NewSelection(b, rec)

	selectAt(t, b, s, C(0, 0), C(0, 1), C(1, 1), C(1, 0), C(0, 0))
	first, _ := b.At(C(0, 0))
	rec.reset()

	selectAt(t, b, s, C(1, 0))

	if s.State() != StateChaining || s.Len() != 4 {
		t.Errorf("state = %v len = %d, want chaining 4", s.State(), s.Len())
	}
	if len(rec.events) != 1 || rec.events[0].Kind != evDisconnect || rec.events[0].From != first.ID {
		t.Errorf("events = %+v, want disconnect of first token", rec.events)
	}
}

func TestSelectEarlierTokenDoesNotCloseLoop(t *testing.T) {
	b, _ := newTestBoard(t, 4, 4, 1)
	fill(b, ColorRed)
	s := NewSelection(b, nil)

	// (0,1) is adjacent to (1,1) but is neither first nor second-to-last
	selectAt(t, b, s, C(0, 0), C(0, 1), C(0, 2), C(1, 2), C(1, 1))
	selectAt(t, b, s, C(0, 1))

	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
	if s.State() != StateChaining {
		t.Errorf("state = %v, want chaining", s.State())
	}
}

func TestLoopCannotCloseAtLengthTwo(t *testing.T) {
	b, _ := newTestBoard(t, 3, 3, 1)
	fill(b, ColorRed)
	s := NewSelection(b, nil)

	selectAt(t, b, s, C(0, 0), C(1, 0), C(0, 0))

	if s.State() == StateLooped {
		t.Error("two-token chain closed a loop")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (backtrack)", s.Len())
	}
}

func TestFinishStraightChain(t *testing.T) {
	b, rec := newTestBoard(t, 6, 6, 9)
	fill(b, ColorGreen)
	chain := paint(t, b, ColorRed, C(0, 0), C(0, 1), C(1, 1), C(1, 0))
	other := paint(t, b, ColorRed, C(4, 4))[0]
	s := NewSelection(b, rec)

	selectAt(t, b, s, C(0, 0), C(0, 1), C(1, 1), C(1, 0))
	before := make(map[TokenID]bool)
	for _, col := range b.Columns() {
		for _, tok := range col {
			before[tok.ID] = true
		}
	}
	rec.reset()

	res, err := s.Finish()
	if err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}

	if res.Loop {
		t.Error("straight chain reported as loop")
	}
	if len(res.Tokens) != 4 {
		t.Errorf("cleared %d tokens, want 4", len(res.Tokens))
	}
	for _, tok := range chain {
		if onBoard(b, tok.ID) {
			t.Errorf("chain token %v still on board", tok)
		}
	}
	if !onBoard(b, other.ID) {
		t.Error("red token outside the chain was cleared")
	}
	if s.Len() != 0 || s.State() != StateEmpty {
		t.Errorf("selection not reset: len %d state %v", s.Len(), s.State())
	}

	fresh := 0
	for _, col := range b.Columns() {
		for _, tok := range col {
			if !before[tok.ID] {
				fresh++
			}
		}
	}
	if fresh != 4 {
		t.Errorf("%d new tokens on board, want 4", fresh)
	}
	if rec.count(evDespawn) != 4 || rec.count(evSpawn) != 4 {
		t.Errorf("despawn/spawn events = %d/%d, want 4/4", rec.count(evDespawn), rec.count(evSpawn))
	}
	checkInvariants(t, b)
}

func TestFinishSquareLoop(t *testing.T) {
	b, _ := newTestBoard(t, 6, 6, 9)
	fill(b, ColorGreen)
	loop := paint(t, b, ColorRed, C(0, 0), C(0, 1), C(1, 1), C(1, 0))
	s := NewSelection(b, nil)

	selectAt(t, b, s, C(0, 0), C(0, 1), C(1, 1), C(1, 0), C(0, 0))

	res, err := s.Finish()
	if err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}
	if !res.Loop || res.Color != ColorRed {
		t.Errorf("res = %+v, want red loop", res)
	}
	for _, tok := range loop {
		if onBoard(b, tok.ID) {
			t.Errorf("loop token %v still on board", tok)
		}
	}

	// Ids 36..39 are the four refills
	for id := TokenID(36); id < 40; id++ {
		if !onBoard(b, id) {
			t.Errorf("expected new token %d on board", id)
		}
	}
	checkInvariants(t, b)
}

func TestFinishLoopClearsWholeColor(t *testing.T) {
	b, _ := newTestBoard(t, 6, 6, 9)
	fill(b, ColorGreen)
	red := paint(t, b, ColorRed, C(0, 0), C(0, 1), C(1, 1), C(1, 0), C(3, 5), C(5, 2))
	s := NewSelection(b, nil)

	selectAt(t, b, s, C(0, 0), C(0, 1), C(1, 1), C(1, 0), C(0, 0))

	res, err := s.Finish()
	if err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}
	if len(res.Tokens) != 6 {
		t.Errorf("cleared %d tokens, want 6", len(res.Tokens))
	}
	for _, tok := range red {
		if onBoard(b, tok.ID) {
			t.Errorf("red token %v still on board", tok)
		}
	}
	checkInvariants(t, b)
}

func TestFinishNoOp(t *testing.T) {
	tests := []struct {
		name   string
		coords []Coord
	}{
		{"empty selection", nil},
		{"single token", []Coord{C(2, 2)}},
		{"backtracked to single token", []Coord{C(2, 2), C(2, 3), C(2, 2)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, rec := newTestBoard(t, 5, 5, 4)
			fill(b, ColorRed)
			s := NewSelection(b, rec)
			selectAt(t, b, s, tc.coords...)
			before := snapshotColumns(b)
			rec.reset()

			res, err := s.Finish()
			if err != nil {
				t.Fatalf("Finish() failed: %v", err)
			}
			if len(res.Tokens) != 0 {
				t.Errorf("no-op release cleared %d tokens", len(res.Tokens))
			}
			if !sameColumns(before, snapshotColumns(b)) {
				t.Error("no-op release changed the board")
			}
			if len(rec.events) != 0 {
				t.Errorf("no-op release emitted events: %+v", rec.events)
			}
			if s.Len() != 0 {
				t.Errorf("Len() = %d after release, want 0", s.Len())
			}
		})
	}
}

func TestCancelKeepsBoard(t *testing.T) {
	b, rec := newTestBoard(t, 4, 4, 2)
	fill(b, ColorRed)
	s := NewSelection(b, rec)

	selectAt(t, b, s, C(0, 0), C(1, 0), C(2, 0))
	chain := s.Chain()
	before := snapshotColumns(b)
	rec.reset()

	s.Cancel()

	if s.Len() != 0 {
		t.Errorf("Len() = %d after cancel, want 0", s.Len())
	}
	if !sameColumns(before, snapshotColumns(b)) {
		t.Error("cancel changed the board")
	}
	want := []TokenID{chain[2].ID, chain[1].ID}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %+v, want disconnects of %v", rec.events, want)
	}
	for i, id := range want {
		if rec.events[i].Kind != evDisconnect || rec.events[i].From != id {
			t.Errorf("event %d = %+v, want disconnect of %d", i, rec.events[i], id)
		}
	}
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	b, _ := newTestBoard(t, 5, 5, 77)
	s := NewSelection(b, nil)
	rng := rand.New(rand.NewSource(99))

	removed := make(map[TokenID]bool)
	for step := 0; step < 500; step++ {
		if rng.Intn(6) == 0 {
			res, err := s.Finish()
			if err != nil {
				t.Fatalf("step %d: Finish() failed: %v", step, err)
			}
			for _, tok := range res.Tokens {
				removed[tok.ID] = true
			}
			checkInvariants(t, b)
			continue
		}

		pos := C(rng.Intn(5), rng.Intn(5))
		tok, _ := b.At(pos)
		if err := s.Select(tok.ID); err != nil {
			t.Fatalf("step %d: Select(%v) failed: %v", step, pos, err)
		}

		chain := s.Chain()
		for i := 1; i < len(chain); i++ {
			if chain[i].Color != chain[0].Color {
				t.Fatalf("step %d: mixed colors in chain %v", step, chain)
			}
		}
	}

	for id := range removed {
		if _, err := b.Locate(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("removed token %d: Locate err = %v, want ErrNotFound", id, err)
		}
	}
}
