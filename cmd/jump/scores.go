package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jump/internal/games/jump"
	"github.com/vovakirdan/tui-jump/internal/storage"
)

var (
	flagLimit int
	flagClear bool
	flagRunID string
	flagAll   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best runs with their level, length and player,
followed by totals over all runs.

Examples:
  jump scores
  jump scores --limit 25
  jump scores --limit 0       # Every recorded run
  jump scores --run 6f1c...   # Details of one run
  jump scores --all           # Totals for every game in the database
  jump scores --clear         # Delete the run history`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of runs to show (0 for all)")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show a single run by its ID")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "Show totals for every game")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening run database: %v", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearRuns(jump.ID); err != nil {
			fatal("clearing runs: %v", err)
		}
		fmt.Println("Run history cleared.")
	case flagRunID != "":
		printRun(store, flagRunID)
	case flagAll:
		printAllStats(store)
	default:
		printTopRuns(store)
	}
}

func printTopRuns(store *storage.Store) {
	var runs []storage.Run
	var err error
	if flagLimit > 0 {
		runs, err = store.TopRuns(jump.ID, flagLimit)
	} else {
		runs, err = store.AllRuns(jump.ID)
	}
	if err != nil {
		fatal("retrieving runs: %v", err)
	}

	fmt.Println("High Scores - Jump")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'jump play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-5s  %-10s  %s\n", "Rank", "Score", "Level", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-10s  %s\n", "----", "-----", "-----", "------", "----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-10s  %s\n", i+1, r.Score, r.Level, player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(jump.ID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Best: %d   Runs: %d   Average: %.0f   Max level: %d\n",
		stats.HighScore, stats.RunsCount, stats.AvgScore, stats.MaxLevel)
}

func printRun(store *storage.Store, runID string) {
	run, err := store.RunByID(runID)
	if err != nil {
		fatal("retrieving run: %v", err)
	}
	if run == nil {
		fatal("no run with ID %q", runID)
	}

	fmt.Printf("Run    %s\n", run.RunID)
	fmt.Printf("Game   %s\n", run.GameID)
	fmt.Printf("Score  %d\n", run.Score)
	fmt.Printf("Level  %d\n", run.Level)
	fmt.Printf("Ticks  %d\n", run.Ticks)
	fmt.Printf("Seed   %d\n", run.Seed)
	fmt.Printf("Player %s\n", run.Player)
	fmt.Printf("Date   %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
}

func printAllStats(store *storage.Store) {
	all, err := store.GetAllGamesStats()
	if err != nil {
		fatal("retrieving stats: %v", err)
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-10s  %-6s  %-8s  %-8s  %s\n", "Game", "Runs", "Best", "Average", "Last played")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-10s  %-6d  %-8d  %-8.0f  %s\n", id, s.RunsCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02"))
	}
}
