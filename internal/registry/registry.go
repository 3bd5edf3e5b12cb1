// Package registry holds the game modes the platform can run. Modes
// register a factory from init(), so the CLI, menus and SSH server find
// them without importing each game.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-dots/internal/core"
)

// ErrUnknownGame is returned by Create for an id nobody registered.
var ErrUnknownGame = errors.New("unknown game")

// Game is one playable mode. Games hold pure logic: the platform owns
// input mapping, timing and terminal output.
type Game interface {
	// ID names the mode in CLI arguments and the score store.
	ID() string
	Title() string

	// Reset starts a fresh round for the screen size and seed in cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick, applying the input collected since the last.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen buffer.
	Render(dst *core.Screen)

	State() core.GameState
}

// Resizer is implemented by games that can follow a terminal resize
// without starting over.
type Resizer interface {
	Resize(w, h int)
}

// Presetter is implemented by games with a selectable difficulty preset.
type Presetter interface {
	SetPreset(name string)
}

// Endless is implemented by games that may never reach game over. The
// platform records their score when the player leaves the round.
type Endless interface {
	Endless() bool
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a mode. Registering an id twice is a programming error and
// panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered mode sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	infos := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		infos = append(infos, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(infos, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return infos
}

// Create returns a new instance of the mode.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
