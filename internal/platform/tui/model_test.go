package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dots/internal/core"
	_ "github.com/vovakirdan/tui-dots/internal/games/dots"
	"github.com/vovakirdan/tui-dots/internal/storage"
)

// stubGame records the platform calls it receives.
type stubGame struct {
	resets  int
	resized [2]int
	state   core.GameState
	preset  string
}

func (g *stubGame) ID() string                           { return "stub" }
func (g *stubGame) Title() string                        { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             { g.resets++ }
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{State: g.state} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return g.state }
func (g *stubGame) SetPreset(p string)                   { g.preset = p }

// resizingGame also follows resizes in place.
type resizingGame struct {
	stubGame
}

func (g *resizingGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestResizeGame(t *testing.T) {
	msg := tea.WindowSizeMsg{Width: 100, Height: 40}

	t.Run("resizer keeps the game", func(t *testing.T) {
		g := &resizingGame{}
		screen := core.NewScreen(80, 24)
		cfg := resizeGame(g, screen, core.DefaultConfig(), msg, core.GameState{})

		if g.resets != 0 {
			t.Errorf("game reset %d times", g.resets)
		}
		if g.resized != [2]int{100, 40} {
			t.Errorf("resized to %v", g.resized)
		}
		if cfg.ScreenW != 100 || cfg.ScreenH != 40 || screen.Width() != 100 {
			t.Errorf("config %dx%d, screen width %d", cfg.ScreenW, cfg.ScreenH, screen.Width())
		}
	})

	t.Run("plain game restarts", func(t *testing.T) {
		g := &stubGame{}
		resizeGame(g, core.NewScreen(80, 24), core.DefaultConfig(), msg, core.GameState{})
		if g.resets != 1 {
			t.Errorf("game reset %d times, expected 1", g.resets)
		}
	})

	t.Run("finished game is left alone", func(t *testing.T) {
		g := &stubGame{}
		resizeGame(g, core.NewScreen(80, 24), core.DefaultConfig(), msg, core.GameState{GameOver: true})
		if g.resets != 0 {
			t.Errorf("game reset %d times, expected 0", g.resets)
		}
	})
}

func TestSaveFinalScore(t *testing.T) {
	store := openStore(t)
	g := &stubGame{}
	cfg := core.RuntimeConfig{Seed: 77}

	if saveFinalScore(store, g, cfg, core.GameState{Score: 9}, false) {
		t.Error("score saved while the game is running")
	}

	over := core.GameState{Score: 9, GameOver: true}
	if !saveFinalScore(store, g, cfg, over, false) {
		t.Fatal("saved flag not set at game over")
	}
	// A second tick after game over must not store a duplicate.
	saveFinalScore(store, g, cfg, over, true)

	scores, err := store.AllScores("stub")
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 {
		t.Fatalf("got %d scores, expected 1", len(scores))
	}
	if scores[0].Score != 9 || scores[0].Seed != 77 {
		t.Errorf("saved %+v, expected score 9 seed 77", scores[0])
	}
}

func TestSaveFinalScoreSkipsZero(t *testing.T) {
	store := openStore(t)
	g := &stubGame{}

	if !saveFinalScore(store, g, core.RuntimeConfig{}, core.GameState{GameOver: true}, false) {
		t.Error("saved flag not set")
	}
	scores, err := store.AllScores("stub")
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 0 {
		t.Errorf("zero score stored: %+v", scores)
	}
}

func TestDotsSelectionApply(t *testing.T) {
	g := &stubGame{}
	DotsSelection{GameID: "dots", Preset: "hard"}.Apply(g)
	if g.preset != "hard" {
		t.Errorf("preset = %q, expected hard", g.preset)
	}
}

func TestDotsModeModel(t *testing.T) {
	m := NewDotsModeModel(80, 24)
	press := func(action MenuAction) {
		next, _ := m.handleKey(action)
		m = next.(DotsModeModel)
	}

	press(MenuActionDown)
	press(MenuActionDown)
	press(MenuActionRight) // normal -> hard
	press(MenuActionUp)
	press(MenuActionSelect)

	sel := m.Selected()
	if sel == nil {
		t.Fatal("no selection")
	}
	if sel.GameID != "dots_zen" || sel.Preset != "hard" {
		t.Errorf("selection = %+v, expected dots_zen/hard", *sel)
	}
}

func TestSessionFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
	var model tea.Model = NewSessionModel(nil, cfg, "tester")

	send := func(msg tea.Msg) {
		model, _ = model.Update(msg)
	}
	session := func() SessionModel { return model.(SessionModel) }

	if session().sessionID == "" {
		t.Fatal("session id not assigned")
	}

	send(tea.KeyMsg{Type: tea.KeyEnter})
	if session().modeMenu == nil {
		t.Fatal("mode menu not shown after picking a game")
	}

	send(tea.KeyMsg{Type: tea.KeyEsc})
	if session().modeMenu != nil {
		t.Fatal("back did not return to the menu")
	}

	send(tea.KeyMsg{Type: tea.KeyEnter})
	send(tea.KeyMsg{Type: tea.KeyEnter})
	gm := session().gameModel
	if gm == nil {
		t.Fatal("game not started")
	}
	if gm.game.ID() != "dots" {
		t.Errorf("started %q, expected dots", gm.game.ID())
	}

	send(tea.KeyMsg{Type: tea.KeyTab})
	if session().gameModel == nil {
		t.Error("tab left the game")
	}
}

func TestSessionScoreboard(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 30}
	var model tea.Model = NewSessionModel(openStore(t), cfg, "tester")

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.(SessionModel).scores == nil {
		t.Fatal("scoreboard not shown")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s := model.(SessionModel)
	if s.scores != nil || s.quitting {
		t.Error("back did not return to the menu")
	}
}

func TestScoreboardShowsSeeds(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("dots_zen", 12, 9001); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveScore("dots_zen", 30, 4242); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(store, 100, 30)
	var zen int
	for i, g := range m.modes {
		if g.ID == "dots_zen" {
			zen = i
		}
	}
	for m.tab != zen {
		m.switchTab(1)
	}

	if len(m.scores) != 2 || m.scores[0].Seed != 4242 {
		t.Fatalf("scores = %+v, expected best first with seed 4242", m.scores)
	}
	if m.stats == nil || m.stats.BestSeed != 4242 {
		t.Fatalf("stats = %+v", m.stats)
	}
	if view := m.View(); !strings.Contains(view, "--seed 4242") {
		t.Errorf("view does not offer the best seed:\n%s", view)
	}
}

func TestMenuEntries(t *testing.T) {
	var model tea.Model = NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	m := model.(MenuModel)

	for _, item := range m.items {
		if strings.HasSuffix(item.GameID, "_zen") {
			t.Errorf("alternate mode %q listed in the main menu", item.GameID)
		}
	}
	if last := m.items[len(m.items)-1]; last.kind != entryQuit {
		t.Errorf("last entry = %q, expected Quit", last.Title)
	}

	// Up from the top wraps to Quit, one more Up lands on High Scores.
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(MenuModel)
	if !m.WantsScoreboard() || m.Selected() != nil || m.IsQuitting() {
		t.Errorf("scoreboard=%v selected=%v quitting=%v", m.WantsScoreboard(), m.Selected(), m.IsQuitting())
	}
}

func TestSessionGameBackNeedsPause(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 5}
	var model tea.Model = NewSessionModel(nil, cfg, "tester")
	send := func(msg tea.Msg) {
		model, _ = model.Update(msg)
	}
	inGame := func() bool { return model.(SessionModel).gameModel != nil }

	send(tea.KeyMsg{Type: tea.KeyEnter})
	send(tea.KeyMsg{Type: tea.KeyEnter})
	if !inGame() {
		t.Fatal("game not started")
	}
	if !model.(SessionModel).gameModel.embedded {
		t.Error("session game not marked as hosted")
	}

	send(tea.KeyMsg{Type: tea.KeyEsc})
	send(TickMsg{})
	if !inGame() {
		t.Fatal("esc left a live game")
	}

	send(runeKey("p"))
	send(TickMsg{})
	send(tea.KeyMsg{Type: tea.KeyEsc})
	if inGame() {
		t.Error("esc on a paused game did not return to the menu")
	}
	if model.(SessionModel).quitting {
		t.Error("session quit instead of showing the menu")
	}
}

func TestSessionNewSeedPerRound(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 5}
	s := NewSessionModel(nil, cfg, "tester")

	next, _ := s.startGame(DotsSelection{GameID: "dots", Preset: "normal"})
	s = next.(SessionModel)
	if got := s.gameModel.config.Seed; got != 5 {
		t.Errorf("first round seed = %d, expected 5", got)
	}

	next, _ = s.backToMenu()
	next, _ = next.(SessionModel).startGame(DotsSelection{GameID: "dots", Preset: "normal"})
	if got := next.(SessionModel).gameModel.config.Seed; got == 5 || got == 0 {
		t.Errorf("second round seed = %d, expected a fresh one", got)
	}
}

func TestWriteScreenshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	screen := core.NewScreen(3, 1)
	screen.DrawText(0, 0, "R-B")
	at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	if err := writeScreenshot(dir, "dots", 42, screen, at); err != nil {
		t.Fatalf("writeScreenshot: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "dots_42_20261018_093000.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "R-B\n" {
		t.Errorf("screenshot = %q", data)
	}
}

// zenStub plays like an endless mode with a score already on the board.
type zenStub struct {
	stubGame
}

func (g *zenStub) ID() string    { return "dots_zen" }
func (g *zenStub) Endless() bool { return true }

func TestQuittingEndlessRoundSavesScore(t *testing.T) {
	store := openStore(t)
	g := &zenStub{stubGame{state: core.GameState{Score: 50}}}

	var model tea.Model = NewModel(g, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7})
	model, _ = model.Update(TickMsg{})
	model, _ = model.Update(runeKey("q"))
	if !model.(Model).IsQuitting() {
		t.Fatal("q did not quit")
	}

	scores, err := store.AllScores("dots_zen")
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Score != 50 || scores[0].Seed != 7 {
		t.Errorf("scores = %+v, expected one entry of 50 with seed 7", scores)
	}
}

func TestLeavingHostedEndlessRoundSavesOnce(t *testing.T) {
	store := openStore(t)
	g := &zenStub{stubGame{state: core.GameState{Score: 12, Paused: true}}}

	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 3})
	m.embedded = true
	var model tea.Model = m
	model, _ = model.Update(TickMsg{})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !model.(Model).BackToMenu() {
		t.Fatal("esc on a paused round did not leave")
	}
	// A quit arriving after the back must not store the round again.
	model.(Model).handleKey(runeKey("q"))

	scores, err := store.AllScores("dots_zen")
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 {
		t.Errorf("got %d scores, expected 1", len(scores))
	}
}

func TestQuittingClassicRoundSavesNothing(t *testing.T) {
	store := openStore(t)
	g := &stubGame{state: core.GameState{Score: 50}}

	var model tea.Model = NewModel(g, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7})
	model, _ = model.Update(TickMsg{})
	model.Update(runeKey("q"))

	scores, err := store.AllScores("stub")
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 0 {
		t.Errorf("unfinished round stored: %+v", scores)
	}
}

func TestFaultedRoundNotSaved(t *testing.T) {
	store := openStore(t)
	over := core.GameState{Score: 30, GameOver: true, Faulted: true}

	if !saveFinalScore(store, &stubGame{}, core.RuntimeConfig{Seed: 1}, over, false) {
		t.Error("saved flag not set for a faulted round")
	}
	if !saveLeftRound(store, &zenStub{}, core.RuntimeConfig{Seed: 1}, over, false) {
		t.Error("saved flag not set for a faulted endless round")
	}

	for _, id := range []string{"stub", "dots_zen"} {
		scores, err := store.AllScores(id)
		if err != nil {
			t.Fatal(err)
		}
		if len(scores) != 0 {
			t.Errorf("%s: faulted round stored: %+v", id, scores)
		}
	}
}
