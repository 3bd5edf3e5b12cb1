package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dots/internal/core"
	"github.com/vovakirdan/tui-dots/internal/registry"
	"github.com/vovakirdan/tui-dots/internal/storage"
)

// Model is the Bubble Tea model for running a single game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over

	// Set for games hosted inside a session: Back may leave the game and
	// screenshots stay off, since the screen belongs to a remote user.
	embedded   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		m.config = resizeGame(m.game, m.screen, m.config, msg, m.gameState)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.embedded {
		// Back reaches the game while a round is live, where it drops the chain.
		idle := m.gameState.GameOver || m.gameState.Paused
		if idle && m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack {
			m.scoreSaved = saveLeftRound(m.store, m.game, m.config, m.gameState, m.scoreSaved)
			m.backToMenu = true
			return m, nil
		}
	} else if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.scoreSaved = saveLeftRound(m.store, m.game, m.config, m.gameState, m.scoreSaved)
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.scoreSaved = saveFinalScore(m.store, m.game, m.config, m.gameState, m.scoreSaved)

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the board as plain text to
// ~/.dots/screenshots/<game>_<seed>_<time>.txt. Failures are ignored; the
// game goes on either way.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	m.game.Render(m.screen)
	_ = writeScreenshot(filepath.Join(home, ".dots", "screenshots"), m.game.ID(), m.config.Seed, m.screen, time.Now())
}

func writeScreenshot(dir, gameID string, seed int64, screen *core.Screen, at time.Time) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("%s_%d_%s.txt", gameID, seed, at.Format("20060102_150405"))
	return os.WriteFile(filepath.Join(dir, name), []byte(screen.String()+"\n"), 0o600)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if a hosted game asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// resizeGame applies a window size to the screen and the game. Games that
// cannot follow a resize are restarted unless they are already over.
func resizeGame(game registry.Game, screen *core.Screen, cfg core.RuntimeConfig, msg tea.WindowSizeMsg, state core.GameState) core.RuntimeConfig {
	cfg.ScreenW = msg.Width
	cfg.ScreenH = msg.Height
	screen.Resize(msg.Width, msg.Height)

	if r, ok := game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !state.GameOver {
		game.Reset(cfg)
	}
	return cfg
}

// saveFinalScore records the score once per game over. It returns the new
// saved flag.
func saveFinalScore(store *storage.Store, game registry.Game, cfg core.RuntimeConfig, state core.GameState, saved bool) bool {
	if !state.GameOver || saved {
		return saved
	}
	recordScore(store, game, cfg, state)
	return true
}

// saveLeftRound records the round the player walks away from, for games
// that never end on their own. Rounds with an ending only count once over.
func saveLeftRound(store *storage.Store, game registry.Game, cfg core.RuntimeConfig, state core.GameState, saved bool) bool {
	if saved {
		return saved
	}
	if e, ok := game.(registry.Endless); !ok || !e.Endless() {
		return saved
	}
	recordScore(store, game, cfg, state)
	return true
}

// recordScore stores a result. Empty rounds and rounds halted by an
// internal error are left out of the scoreboard.
func recordScore(store *storage.Store, game registry.Game, cfg core.RuntimeConfig, state core.GameState) {
	if store == nil || state.Score <= 0 || state.Faulted {
		return
	}
	_, _ = store.SaveScore(game.ID(), state.Score, cfg.Seed)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Drag events while a button is held
	)

	_, err := p.Run()
	return err
}
