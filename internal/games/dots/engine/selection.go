package engine

// State is the phase of the selection state machine.
type State int

const (
	StateEmpty    State = iota // No token selected
	StateChaining              // One or more tokens selected, no loop
	StateLooped                // Last selected token is the first one again
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateChaining:
		return "chaining"
	case StateLooped:
		return "looped"
	default:
		return "unknown"
	}
}

// Clear describes what a finished selection removed from the board.
type Clear struct {
	Tokens []Token // Removed tokens in removal order, empty for a no-op release
	Loop   bool    // Whether a closed loop cleared the whole color
	Color  Color   // Colour of the chain, meaningful when Tokens is not empty
}

// Selection is the in-progress drag chain over a Board. Order is selection
// order. Invalid moves are ignored silently since they are ordinary pointer
// noise while dragging.
type Selection struct {
	board  *Board
	chain  []Token
	events Listener
}

// NewSelection creates an empty selection over b.
func NewSelection(b *Board, l Listener) *Selection {
	return &Selection{
		board:  b,
		events: orNop(l),
	}
}

// State returns the current state of the chain.
func (s *Selection) State() State {
	switch {
	case len(s.chain) == 0:
		return StateEmpty
	case s.looped():
		return StateLooped
	default:
		return StateChaining
	}
}

func (s *Selection) looped() bool {
	n := len(s.chain)
	return n >= 2 && s.chain[0].ID == s.chain[n-1].ID
}

// Select offers the token with the given id to the chain.
//
// With two or more tokens selected, re-selecting the second-to-last token
// drops the last one; once a loop is closed nothing more can be added;
// selecting the first token closes a loop. Otherwise the token is appended
// when it is 4-directionally adjacent to the last token, has its color and
// is not in the chain yet. The first token is always accepted.
//
// Rejected moves return nil. An error means id is not on the board.
func (s *Selection) Select(id TokenID) error {
	t, err := s.board.Get(id)
	if err != nil {
		return err
	}

	n := len(s.chain)
	if n == 0 {
		s.chain = append(s.chain, t)
		return nil
	}

	if n >= 2 {
		if s.chain[n-2].ID == id {
			popped := s.chain[n-1]
			s.chain = s.chain[:n-1]
			s.events.TokenDisconnected(popped)
			return nil
		}
		if s.looped() {
			return nil
		}
		if s.chain[0].ID == id {
			last := s.chain[n-1]
			s.chain = append(s.chain, t)
			s.events.TokensConnected(last, t)
			return nil
		}
	}

	last := s.chain[n-1]
	lastPos, err := s.board.Locate(last.ID)
	if err != nil {
		return err
	}
	pos, err := s.board.Locate(id)
	if err != nil {
		return err
	}

	if !lastPos.Adjacent(pos) || t.Color != last.Color || s.IsSelected(id) {
		return nil
	}

	s.chain = append(s.chain, t)
	s.events.TokensConnected(last, t)
	return nil
}

// Finish ends the selection cycle. A chain of two or more tokens is
// removed from the board, each replaced by a new token at the top of its
// column. A closed loop instead removes every token of the chain's color.
// The chain is empty afterwards in every case, including on error.
func (s *Selection) Finish() (Clear, error) {
	chain := s.chain
	s.chain = nil

	if len(chain) <= 1 {
		return Clear{}, nil
	}

	result := Clear{Color: chain[0].Color}
	if chain[0].ID == chain[len(chain)-1].ID {
		result.Loop = true
		chain = s.board.TokensOfColor(chain[0].Color)
	}

	result.Tokens = make([]Token, 0, len(chain))
	for _, t := range chain {
		if err := s.board.Remove(t.ID); err != nil {
			return result, err
		}
		result.Tokens = append(result.Tokens, t)
	}

	return result, nil
}

// Cancel abandons the chain without touching the board. Every link is
// reported as disconnected, last first.
func (s *Selection) Cancel() {
	for n := len(s.chain); n > 1; n-- {
		s.events.TokenDisconnected(s.chain[n-1])
	}
	s.chain = nil
}

// IsSelected reports whether the token is part of the chain.
func (s *Selection) IsSelected(id TokenID) bool {
	for _, t := range s.chain {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of entries in the chain. A closed loop counts its
// first token twice.
func (s *Selection) Len() int {
	return len(s.chain)
}

// Chain returns a copy of the chain in selection order.
func (s *Selection) Chain() []Token {
	return append([]Token(nil), s.chain...)
}
