package dots

import "github.com/vovakirdan/tui-dots/internal/games/dots/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StateFault       GameStateType = "fault"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Seed      int64
	Score     int
	Moves     int // -1 when unlimited
	Loops     int
	Board     string         // Engine board as letters, top row first
	Chain     []engine.Coord // Chain positions in selection order
	Selection engine.State
	Falling   bool
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.fault != nil:
		state = StateFault
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:  g.tick,
		Mode:  string(g.mode),
		Seed:  g.seed,
		Score: g.score,
		Moves: g.moves,
		Loops: g.loops,
		State: state,
	}
	if g.eng == nil {
		return snap
	}

	es := g.eng.Snapshot()
	snap.Board = es.ASCII()
	snap.Selection = es.State
	snap.Falling = g.view.falling()
	for _, t := range es.Chain {
		pos, err := g.eng.Locate(t.ID)
		if err != nil {
			continue
		}
		snap.Chain = append(snap.Chain, pos)
	}
	return snap
}
