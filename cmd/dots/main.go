// dots is a terminal puzzle: drag across same-colored dots to clear them,
// close a loop to clear every dot of that color.
//
// Usage:
//
//	dots list              - List game modes
//	dots play [mode]       - Play (dots or dots_zen; asks when omitted)
//	dots menu              - Start menu to pick modes interactively
//	dots serve             - Start SSH server for remote play
//	dots scores [mode]     - Show high scores
//	dots board             - Print the opening board for a seed
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 30)
//	--seed <value>  - Set board seed for a reproducible game
//	--db <path>     - Set database path (default: ~/.dots/scores.db)
//	--debug         - Write a debug log to ~/.dots/debug.log
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-dots/internal/games/dots"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dots",
	Short: "Dots - connect colored dots in your terminal",
	Long: `Dots is a terminal puzzle. Drag across neighbouring dots of one color
to clear them; new dots fall in from the top. Join a chain back to its
first dot to close a loop and clear every dot of that color.

Available commands:
  list     - Show the game modes
  play     - Play directly
  menu     - Interactive menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  board    - Print the opening board for a seed

Examples:
  dots play
  dots play dots_zen --seed 42
  dots menu
  dots serve --ssh :2222
  dots board --seed 42 --width 8 --height 8`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setupDebugLog(flagDebug)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeDebugLog()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Board seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dots/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write a debug log to ~/.dots/debug.log")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
}
