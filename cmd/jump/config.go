package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jump/internal/config"
	"github.com/vovakirdan/tui-jump/internal/games/jump"
)

var (
	flagFormat   string
	flagDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a run would use, after the search order
(--config, ~/.arcade/configs, ./configs, built-in defaults) and the
difficulty preset have been applied.

The output is a complete config file and can be saved and edited.

Examples:
  jump config > ~/.arcade/configs/jump.yaml
  jump config --format toml
  jump config --defaults
  jump config --difficulty fixed`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or toml")
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults, ignoring config files")
}

func runConfig(_ *cobra.Command, _ []string) {
	var cfg config.JumpConfig
	if flagDefaults {
		// The embedded file keeps its comments
		if data := config.GetDefaultYAML(jump.ID); data != nil && flagFormat == "yaml" {
			os.Stdout.Write(data)
			return
		}
		cfg = config.DefaultJumpConfig()
	} else {
		var preset config.DifficultyPreset
		cfg, preset = loadGameConfig()
		if flagDifficulty != "" {
			config.ApplyJumpPreset(&cfg, preset)
		}
	}

	data, err := config.EncodeJump(cfg, flagFormat)
	if err != nil {
		fatal("%v", err)
	}
	os.Stdout.Write(data)
}
