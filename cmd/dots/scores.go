package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dots/internal/registry"
	"github.com/vovakirdan/tui-dots/internal/storage"
)

var (
	flagClear bool
	flagLimit int
	flagAll   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top scores for a game mode (default: dots). Each entry
carries the board seed, so 'dots play --seed N' replays the same opening.

Examples:
  dots scores
  dots scores dots_zen --limit 20
  dots scores dots --clear
  dots scores --all`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded score for the mode")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "Summarize every mode instead")
}

func runScores(_ *cobra.Command, args []string) {
	if flagAll {
		runSummary()
		return
	}

	gameID := "dots"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'dots list' to see the game modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagClear {
		n, err := store.ClearScores(gameID)
		if err != nil {
			store.Close()
			fail("clearing scores: %v", err)
		}
		fmt.Printf("Removed %d scores for %s.\n", n, title)
		return
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'dots play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-20s  %s\n", "Rank", "Score", "Seed", "Date")
	fmt.Printf("  %-4s  %-8s  %-20s  %s\n", "----", "-----", "----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-20d  %s\n", i+1, entry.Score, entry.Seed, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d (seed %d)  Games: %d  Average: %.1f\n",
			stats.HighScore, stats.BestSeed, stats.GamesCount, stats.AvgScore)
	}
}

func runSummary() {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	all, err := store.GetAllGamesStats()
	if err != nil {
		store.Close()
		fail("retrieving stats: %v", err)
	}
	printSummary(os.Stdout, all)
}

// printSummary writes one line per played mode, ordered by mode id.
func printSummary(w io.Writer, all map[string]*storage.GameStats) {
	if len(all) == 0 {
		fmt.Fprintln(w, "No games played yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "  %-10s  %-6s  %-6s  %-8s  %s\n", "Mode", "Games", "Best", "Average", "Best seed")
	for _, id := range ids {
		st := all[id]
		fmt.Fprintf(w, "  %-10s  %-6d  %-6d  %-8.1f  %d\n", id, st.GamesCount, st.HighScore, st.AvgScore, st.BestSeed)
	}
}
