// Package dots is the playable host around the dots engine: it maps pointer
// and keyboard input to selections, animates tokens falling into place,
// draws the chain and keeps the score.
package dots

import (
	"github.com/vovakirdan/tui-dots/internal/config"
	"github.com/vovakirdan/tui-dots/internal/core"
	"github.com/vovakirdan/tui-dots/internal/games/dots/engine"
	"github.com/vovakirdan/tui-dots/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic" // Limited number of clearing moves
	ModeZen     Mode = "zen"     // Play until you quit
)

// Package-level settings applied on the next Reset.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset ("easy", "normal", "hard", "fixed").
// Unknown names clear the preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game implements registry.Game for dots.
type Game struct {
	mode   Mode
	preset config.DifficultyPreset // Overrides the package preset when set
	cfg    config.DotsConfig
	seed   int64
	tick   uint64

	eng    *engine.Engine
	view   *boardView
	layout layout

	score int
	moves int // Remaining moves in classic mode, -1 when unlimited
	loops int // Closed loops so far

	// Keyboard cursor in board coordinates
	cursor  engine.Coord
	keyDrag bool

	// Pointer gesture
	pointerDown bool
	lastCell    engine.Coord

	screenW  int
	screenH  int
	gameOver bool
	paused   bool
	tooSmall bool
	fault    error // Engine invariant violation, halts the game
}

// New creates a classic mode game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewZen creates a zen mode game without a move budget.
func NewZen() *Game {
	return &Game{mode: ModeZen}
}

func init() {
	registry.Register("dots", func() registry.Game {
		return New()
	})
	registry.Register("dots_zen", func() registry.Game {
		return NewZen()
	})
}

var (
	_ registry.Resizer   = (*Game)(nil)
	_ registry.Presetter = (*Game)(nil)
	_ registry.Endless   = (*Game)(nil)
)

// Endless reports whether the game runs without a move budget. Such rounds
// only end when the player leaves.
func (g *Game) Endless() bool {
	return g.mode == ModeZen
}

// SetPreset picks a difficulty for this game only, taking effect on the
// next Reset. Sessions sharing a process use this instead of
// SetDifficultyPreset.
func (g *Game) SetPreset(preset string) {
	g.preset = config.ParsePreset(preset)
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeZen {
		return "dots_zen"
	}
	return "dots"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeZen {
		return "Dots (Zen)"
	}
	return "Dots"
}

// Reset loads the configuration and deals a new board from cfg.Seed.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadDots(configPath)
	if err != nil {
		logger.Warn("config rejected, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultDotsConfig()
	}
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyDotsPreset(&cfg, preset)
	}
	palette, err := cfg.Colors()
	if err != nil {
		logger.Warn("palette rejected, using defaults", "palette", cfg.Palette, "err", err)
		palette = engine.DefaultPalette()
	}

	g.cfg = cfg
	g.seed = rc.Seed
	g.tick = 0
	g.score = 0
	g.loops = 0
	g.moves = -1
	if g.mode == ModeClassic && cfg.Session.Moves > 0 {
		g.moves = cfg.Session.Moves
	}
	g.gameOver = false
	g.paused = false
	g.fault = nil
	g.keyDrag = false
	g.pointerDown = false

	g.view = newBoardView(cfg.Board.Height, cfg.Animation.FallSpeed)
	g.eng = engine.New(engine.Options{
		Palette:  palette,
		Listener: engine.Listeners{g.view, newLogListener(logger)},
	})
	if err := g.eng.NewGame(cfg.Board.Width, cfg.Board.Height, rc.Seed); err != nil {
		g.halt("new game", err)
		return
	}
	g.view.settle(g.eng.Snapshot())

	g.cursor = engine.C(cfg.Board.Width/2, cfg.Board.Height/2)
	g.Resize(rc.ScreenW, rc.ScreenH)

	logger.Debug("game started", "mode", g.mode, "seed", rc.Seed,
		"board", cfg.Board, "palette", cfg.Palette, "moves", g.moves)
}

// Resize recomputes the layout for a new terminal size without touching
// the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.layout = newLayout(g.cfg.Board.Width, g.cfg.Board.Height, w, h)
	g.tooSmall = !g.layout.fits
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.fault != nil || g.eng == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
		if g.paused {
			g.abortGesture()
		}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.view.animate()

	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	cleared := g.handlePointer(in.Pointer)
	cleared += g.handleKeys(in)

	return core.StepResult{State: g.State(), Cleared: cleared}
}

// finish releases the chain and books the result.
func (g *Game) finish() int {
	res, err := g.eng.FinishSelection()
	g.view.settle(g.eng.Snapshot())
	if err != nil {
		g.halt("finish selection", err)
		return 0
	}
	if len(res.Tokens) == 0 {
		return 0
	}

	g.score += len(res.Tokens)
	if res.Loop {
		g.loops++
	}
	logger.Debug("chain cleared", "tokens", len(res.Tokens), "loop", res.Loop,
		"color", res.Color, "score", g.score)

	if g.moves > 0 {
		g.moves--
		if g.moves == 0 {
			g.gameOver = true
			logger.Debug("out of moves", "score", g.score)
		}
	}
	return len(res.Tokens)
}

// cancel drops the chain without clearing.
func (g *Game) cancel() {
	g.eng.CancelSelection()
	g.view.settle(g.eng.Snapshot())
}

// abortGesture cancels any drag in progress.
func (g *Game) abortGesture() {
	if g.pointerDown || g.keyDrag {
		g.cancel()
	}
	g.pointerDown = false
	g.keyDrag = false
}

// selectAt offers the token at c to the chain.
func (g *Game) selectAt(c engine.Coord) {
	tok, ok := g.eng.At(c)
	if !ok {
		return
	}
	err := g.eng.Select(tok.ID)
	g.view.settle(g.eng.Snapshot())
	if err != nil {
		g.halt("select", err)
	}
}

// halt stops the game after an engine invariant violation.
func (g *Game) halt(op string, err error) {
	g.fault = err
	g.pointerDown = false
	g.keyDrag = false
	logger.Error("engine fault", "op", op, "err", err, "seed", g.seed, "tick", g.tick)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.fault != nil,
		Paused:   g.paused || g.tooSmall,
		Faulted:  g.fault != nil,
	}
}

// Err returns the engine fault that halted the game, if any.
func (g *Game) Err() error {
	return g.fault
}
