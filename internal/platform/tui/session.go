package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-dots/internal/core"
	"github.com/vovakirdan/tui-dots/internal/registry"
	"github.com/vovakirdan/tui-dots/internal/storage"
)

// SessionModel drives one remote player through menu, mode picker,
// scoreboard and game, and back to the menu.
type SessionModel struct {
	store     *storage.Store
	config    core.RuntimeConfig
	username  string
	sessionID string
	logger    *log.Logger

	menu      MenuModel
	modeMenu  *DotsModeModel
	scores    *ScoreboardModel
	gameModel *Model
	quitting  bool
}

// NewSessionModel creates a session for username. Its events are discarded
// until a logger is attached with WithLogger.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string) SessionModel {
	id := uuid.NewString()
	return SessionModel{
		store:     store,
		config:    cfg,
		username:  username,
		sessionID: id,
		logger:    log.New(io.Discard),
		menu:      NewMenuModel(store, cfg),
	}
}

// WithLogger returns the session logging through l, tagged with the
// session id and user.
func (m SessionModel) WithLogger(l *log.Logger) SessionModel {
	m.logger = l.With("session", m.sessionID, "user", m.username)
	return m
}

// ID returns the session id.
func (m SessionModel) ID() string {
	return m.sessionID
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes the message to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scores != nil:
		return m.updateScores(msg)
	case m.modeMenu != nil:
		return m.updateModeMenu(msg)
	}
	return m.updateMenu(msg)
}

// Sub-screens end themselves with tea.Quit; the session keeps their state
// and drops that command so the program stays up.

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		return m.quit()
	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.scores = &sb
		return m, sb.Init()
	case m.menu.Selected() != nil:
		picker := NewDotsModeModel(m.config.ScreenW, m.config.ScreenH)
		m.modeMenu = &picker
		return m, picker.Init()
	}
	return m, cmd
}

func (m SessionModel) updateModeMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.modeMenu.Update(msg)
	picker := next.(DotsModeModel)
	m.modeMenu = &picker

	switch {
	case picker.IsQuitting():
		return m.quit()
	case picker.WantsBack():
		return m.backToMenu()
	}

	sel := picker.Selected()
	if sel == nil {
		return m, cmd
	}
	return m.startGame(*sel)
}

// startGame builds the chosen mode with its own preset, so sessions never
// share difficulty state.
func (m SessionModel) startGame(sel DotsSelection) (tea.Model, tea.Cmd) {
	game, err := registry.Create(sel.GameID)
	if err != nil {
		m.logger.Error("cannot create game", "game", sel.GameID, "error", err)
		return m.backToMenu()
	}
	sel.Apply(game)

	gm := NewModel(game, m.store, m.config)
	gm.embedded = true
	m.config.Seed = 0 // Later rounds get a fresh board
	m.gameModel = &gm
	m.modeMenu = nil
	m.logger.Info("game started", "game", sel.GameID, "preset", sel.Preset, "seed", gm.config.Seed)
	return m, gm.Init()
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	sb := next.(ScoreboardModel)
	m.scores = &sb

	switch {
	case sb.IsQuitting():
		return m.quit()
	case sb.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	gm := next.(Model)
	m.gameModel = &gm

	switch {
	case gm.BackToMenu():
		m.logger.Info("game left", "game", gm.game.ID(), "score", gm.gameState.Score)
		return m.backToMenu()
	case gm.IsQuitting():
		m.logger.Info("game left", "game", gm.game.ID(), "score", gm.gameState.Score)
		return m.quit()
	}
	return m, cmd
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// backToMenu drops any sub-screen and shows a fresh menu.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.gameModel = nil
	m.modeMenu = nil
	m.scores = nil
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scores != nil:
		return m.scores.View()
	case m.modeMenu != nil:
		return m.modeMenu.View()
	}
	return m.menu.View()
}
