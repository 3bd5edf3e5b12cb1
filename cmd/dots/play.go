package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dots/internal/config"
	"github.com/vovakirdan/tui-dots/internal/core"
	"github.com/vovakirdan/tui-dots/internal/games/dots"
	"github.com/vovakirdan/tui-dots/internal/platform/tui"
	"github.com/vovakirdan/tui-dots/internal/registry"
	"github.com/vovakirdan/tui-dots/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play dots",
	Long: `Start a game. Without a mode, a picker offers classic or zen and a
difficulty.

Controls:
  Mouse drag     - Chain dots, release to clear
  Arrows/WASD    - Move the cursor
  Space          - Start or end a keyboard chain
  Enter          - Clear the chain
  Esc/B          - Drop the chain
  P              - Pause
  R              - Restart (after game over)
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - 3 colors, 40 moves
  normal - settings from the config file
  hard   - 5 colors, 20 moves
  fixed  - config file untouched

Examples:
  dots play
  dots play dots --difficulty hard
  dots play dots_zen --seed 42
  dots play dots --config ./my-dots.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) {
	checkDifficulty()
	cfg := terminalConfig()

	var sel *tui.DotsSelection
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'dots list' to see the game modes.")
			os.Exit(1)
		}
	} else {
		var quit bool
		var err error
		sel, quit, err = tui.RunDotsModeSelector(cfg)
		if err != nil {
			fail("%v", err)
		}
		if quit || sel == nil {
			return
		}
		gameID = sel.GameID
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}
	configureGame(game, sel)

	store := openStore()
	runErr := tui.Run(game, store, cfg)
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

// checkDifficulty rejects an unknown --difficulty value.
func checkDifficulty() {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		fail("unknown difficulty %q (expected easy, normal, hard or fixed)", flagDifficulty)
	}
}

// configureGame applies --config and --difficulty, then the picker's
// choice. A --difficulty flag beats the picker.
func configureGame(game registry.Game, sel *tui.DotsSelection) {
	dots.SetConfigPath(flagConfig)
	dots.SetDifficultyPreset(flagDifficulty)
	if sel != nil && flagDifficulty == "" {
		sel.Apply(game)
	}
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	closeDebugLog()
	os.Exit(1)
}
