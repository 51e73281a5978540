package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jump/internal/games/jump"
	"github.com/vovakirdan/tui-jump/internal/platform/tui"
	"github.com/vovakirdan/tui-jump/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Start playing right away in the terminal.

Controls:
  A/D, Left/Right  - Move
  Space/Enter      - Start
  P                - Pause
  M                - Mute
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at level 0, progresses as you climb
  normal - Start at level 1, progresses as you climb
  hard   - Start at level 3, progresses as you climb
  fixed  - No progression, stays at the config's initial level

Examples:
  jump play
  jump play --difficulty hard
  jump play --config ./my-jump.yaml
  jump play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := jump.ID
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'jump list' to see available games.")
		os.Exit(1)
	}

	// Fail on a broken config before the screen is taken over
	loadGameConfig()
	jump.SetConfigPath(flagConfig)
	jump.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		fatal("creating game: %v", err)
	}

	logger, closeLog := newLogger(true)
	defer closeLog()

	store := openStore()
	sink := openAudio()

	_, runErr := tui.Run(game, runtimeConfig(), tui.Options{
		Store:  store,
		Best:   openBest(),
		Audio:  sink,
		Logger: logger,
	})

	// Close resources before potential exit
	sink.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fatal("running game: %v", runErr)
	}
}
