// jump is an endless vertical platformer for the terminal.
//
// Usage:
//
//	jump play               - Play in the terminal
//	jump menu               - Start menu with difficulty picker and high scores
//	jump window             - Play in a desktop window
//	jump serve              - Start SSH server for remote play
//	jump scores             - Show the best runs
//	jump config             - Print the effective configuration
//	jump list               - List available games
//
// Global flags:
//
//	--fps <rate>            - Set tick rate (default: 60)
//	--seed <value>          - Set RNG seed for reproducible gameplay
//	--db <path>             - Set database path (default: ~/.arcade/jump.db)
//	--config <path>         - Load a custom YAML or TOML config
//	--difficulty <preset>   - easy, normal, hard or fixed
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-jump/internal/audio"
	"github.com/vovakirdan/tui-jump/internal/bestscore"
	"github.com/vovakirdan/tui-jump/internal/config"
	"github.com/vovakirdan/tui-jump/internal/core"
	"github.com/vovakirdan/tui-jump/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagNoSound    bool
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jump",
	Short: "Jump - an endless platformer in your terminal",
	Long: `Jump is an endless vertical platformer. Bounce from platform to
platform, climb as high as you can and do not fall off the screen.

Available commands:
  play     - Play in the terminal
  menu     - Menu with difficulty picker and high scores
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View the best runs
  config   - Print the effective configuration
  list     - Show all available games

Examples:
  jump play
  jump play --difficulty hard
  jump menu
  jump window --scale 0.8
  jump serve --ssh :2222
  jump scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagNoSound, "no-sound", false, "Disable sound effects")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging (to ~/.arcade/jump.log in terminal modes)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadGameConfig loads the config and difficulty from the global flags.
func loadGameConfig() (config.JumpConfig, config.DifficultyPreset) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fatal("%v", err)
	}
	cfg, err := config.LoadJump(flagConfig)
	if err != nil {
		fatal("%v", err)
	}
	return cfg, preset
}

// runtimeConfig sizes the simulation to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
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

// newLogger returns the command logger. Terminal modes own the screen, so
// they only log with --verbose, to a file.
func newLogger(terminal bool) (*log.Logger, func()) {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	opts := log.Options{ReportTimestamp: true, Prefix: "jump", Level: level}

	if !terminal {
		return log.NewWithOptions(os.Stderr, opts), func() {}
	}
	if !flagVerbose {
		return log.New(io.Discard), func() {}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "jump.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	return log.NewWithOptions(f, opts), func() { f.Close() }
}

// openStore opens the run history. Play continues without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		return nil
	}
	return store
}

// openBest opens the best score file.
func openBest() *bestscore.Keeper {
	keeper, err := bestscore.Open(bestscore.AppName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: best score will not be kept: %v\n", err)
	}
	return keeper
}

// openAudio starts the speaker, or returns a silent sink.
func openAudio() audio.Sink {
	if flagNoSound {
		return &audio.Nop{}
	}
	sm := audio.NewSoundManager()
	if err := sm.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
		return &audio.Nop{}
	}
	return sm
}
