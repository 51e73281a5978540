package config

import (
	_ "embed"
)

//go:embed defaults/jump.yaml
var defaultJumpYAML []byte

// DefaultJumpConfig returns the default jump configuration.
func DefaultJumpConfig() JumpConfig {
	return JumpConfig{
		World: WorldConfig{
			Width:  450,
			Height: 800,
		},
		Platforms: PlatformsConfig{
			Width:       70,
			Height:      20,
			MovingSpeed: 3.5,
			BreakFuse:   15,
		},
		Generation: GenerationConfig{
			MaxJumpHeight:  60,
			MinXGap:        50,
			MinYGap:        30,
			StartCount:     15,
			ReachMargin:    0.9,
			AvoidOverlap:   false,
			OverlapRetries: 5,
			Lookahead:      0,
			SeedWeights: SeedWeights{
				Static:    9,
				Moving:    1,
				Breakable: 1,
			},
		},
		Camera: CameraConfig{
			TriggerLine:   300,
			NearDeathBand: 100,
		},
		Player: PlayerConfig{
			StartX: 225,
			StartY: 400,
			Width:  80,
			Height: 80,
			StepX:  6.5,
		},
		Physics: PhysicsConfig{
			Gravity:     0.3,
			JumpImpulse: -9.0,
			FootHeight:  5,
		},
		Difficulty: DifficultyConfig{
			Enabled:         true,
			InitialLevel:    0,
			LevelScore:      1000,
			GapFactor:       0.75,
			GapGrowth:       0.1,
			BaseBatch:       5,
			MinBatch:        2,
			BatchStepLevels: 2,
			Breakable:       ChanceConfig{Base: 10, Step: 3, Max: 40},
			Moving:          ChanceConfig{Base: 15, Step: 2, Max: 30},
		},
		Appearance: AppearanceConfig{
			Static:      "platform-static",
			Moving:      "platform-moving",
			Breakable:   "platform-breakable",
			PlayerLeft:  "player-left",
			PlayerRight: "player-right",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "jump":
		return defaultJumpYAML
	default:
		return nil
	}
}
