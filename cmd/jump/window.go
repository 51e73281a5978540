package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jump/internal/platform/tui"
	"github.com/vovakirdan/tui-jump/internal/platform/window"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play with the same rules and scores as
the terminal version. The window shows the world at its configured size.

Controls:
  A/D, Left/Right  - Move
  Space/Enter      - Start
  P                - Pause
  M                - Mute
  R                - Restart (after game over)
  Q/Esc            - Quit

Examples:
  jump window
  jump window --scale 0.8 --difficulty normal`,
	Run: runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window pixels per world pixel")
}

func runWindow(_ *cobra.Command, _ []string) {
	base, preset := loadGameConfig()

	logger, closeLog := newLogger(false)
	defer closeLog()

	store := openStore()
	sink := openAudio()

	cfg := runtimeConfig()
	err := window.Run(tui.NewGame(base, preset), cfg, window.Options{
		Store:  store,
		Best:   openBest(),
		Audio:  sink,
		Logger: logger,
		Scale:  flagScale,
	})

	sink.Close()
	if store != nil {
		store.Close()
	}

	if err != nil {
		fatal("%v", err)
	}
}
