package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jump/internal/games/jump"
	"github.com/vovakirdan/tui-jump/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the main menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
Left/Right on the difficulty row changes the preset.
After a run you return to the menu with Esc.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  jump menu
  jump menu --fps 30
  jump menu --db ./jump.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	base, preset := loadGameConfig()

	logger, closeLog := newLogger(true)
	defer closeLog()

	store := openStore()
	keeper := openBest()
	sink := openAudio()

	cfg := runtimeConfig()
	opts := tui.Options{Store: store, Best: keeper, Audio: sink, Logger: logger}

	// Menu loop
	for {
		best := keeper.Load()
		if store != nil {
			if high, err := store.HighScore(jump.ID); err == nil {
				best = max(best, high)
			}
		}

		menuResult, err := tui.RunMenu(cfg, preset, best)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config
		preset = menuResult.Difficulty

		if menuResult.Choice == tui.ChoiceQuit {
			break
		}

		if menuResult.Choice == tui.ChoiceScores {
			goBack, sbErr := tui.RunScoreboard(store, jump.ID, "Jump", cfg.TickRate, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		logger.Debug("run started", "difficulty", preset, "seed", cfg.Seed)
		goBack, runErr := tui.Run(tui.NewGame(base, preset), cfg, opts)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		}
		if !goBack {
			break
		}

		// Fresh seed for every later run
		cfg.Seed = time.Now().UnixNano()
	}

	// Cleanup
	sink.Close()
	if store != nil {
		store.Close()
	}
}
