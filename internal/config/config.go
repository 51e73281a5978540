// Package config provides YAML/TOML game configuration loading and
// difficulty management for the jump game.
package config

import (
	"errors"
	"fmt"
)

// JumpConfig contains all configuration for the jump game.
// Values are fixed for the lifetime of a run.
type JumpConfig struct {
	World      WorldConfig      `yaml:"world" toml:"world"`
	Platforms  PlatformsConfig  `yaml:"platforms" toml:"platforms"`
	Generation GenerationConfig `yaml:"generation" toml:"generation"`
	Camera     CameraConfig     `yaml:"camera" toml:"camera"`
	Player     PlayerConfig     `yaml:"player" toml:"player"`
	Physics    PhysicsConfig    `yaml:"physics" toml:"physics"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
	Appearance AppearanceConfig `yaml:"appearance" toml:"appearance"`
}

// WorldConfig is the size of the simulated screen in world pixels.
type WorldConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PlatformsConfig defines platform geometry and behavior.
type PlatformsConfig struct {
	Width       float64 `yaml:"width" toml:"width"`
	Height      float64 `yaml:"height" toml:"height"`
	MovingSpeed float64 `yaml:"moving_speed" toml:"moving_speed"`
	BreakFuse   int     `yaml:"break_fuse" toml:"break_fuse"` // ticks between landing and removal
}

// GenerationConfig drives platform placement.
type GenerationConfig struct {
	MaxJumpHeight  float64     `yaml:"max_jump_height" toml:"max_jump_height"`
	MinXGap        float64     `yaml:"min_x_gap" toml:"min_x_gap"`
	MinYGap        float64     `yaml:"min_y_gap" toml:"min_y_gap"`
	StartCount     int         `yaml:"start_count" toml:"start_count"`
	ReachMargin    float64     `yaml:"reach_margin" toml:"reach_margin"` // fraction of the body's peak rise a gap may use
	AvoidOverlap   bool        `yaml:"avoid_overlap" toml:"avoid_overlap"`
	OverlapRetries int         `yaml:"overlap_retries" toml:"overlap_retries"`
	Lookahead      float64     `yaml:"lookahead" toml:"lookahead"` // skip generation while the top is this far above the screen; 0 = every scroll
	SeedWeights    SeedWeights `yaml:"seed_weights" toml:"seed_weights"`
}

// SeedWeights are the relative odds of each kind when the field is seeded.
type SeedWeights struct {
	Static    int `yaml:"static" toml:"static"`
	Moving    int `yaml:"moving" toml:"moving"`
	Breakable int `yaml:"breakable" toml:"breakable"`
}

// Total returns the sum of all weights.
func (w SeedWeights) Total() int {
	return w.Static + w.Moving + w.Breakable
}

// CameraConfig defines the scroll trigger and the near-death band.
type CameraConfig struct {
	TriggerLine   float64 `yaml:"trigger_line" toml:"trigger_line"`
	NearDeathBand float64 `yaml:"near_death_band" toml:"near_death_band"`
}

// PlayerConfig defines the body start position and movement.
type PlayerConfig struct {
	StartX float64 `yaml:"start_x" toml:"start_x"`
	StartY float64 `yaml:"start_y" toml:"start_y"` // feet line
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	StepX  float64 `yaml:"step_x" toml:"step_x"`
}

// PhysicsConfig defines vertical motion.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity" toml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse" toml:"jump_impulse"` // negative = up
	FootHeight  float64 `yaml:"foot_height" toml:"foot_height"`
}

// DifficultyConfig defines the score-driven difficulty curve.
type DifficultyConfig struct {
	Enabled         bool         `yaml:"enabled" toml:"enabled"`
	InitialLevel    int          `yaml:"initial_level" toml:"initial_level"`
	LevelScore      int          `yaml:"level_score" toml:"level_score"` // score per level
	GapFactor       float64      `yaml:"gap_factor" toml:"gap_factor"`
	GapGrowth       float64      `yaml:"gap_growth" toml:"gap_growth"`
	BaseBatch       int          `yaml:"base_batch" toml:"base_batch"`
	MinBatch        int          `yaml:"min_batch" toml:"min_batch"`
	BatchStepLevels int          `yaml:"batch_step_levels" toml:"batch_step_levels"`
	Breakable       ChanceConfig `yaml:"breakable" toml:"breakable"`
	Moving          ChanceConfig `yaml:"moving" toml:"moving"`
}

// ChanceConfig is a percentage that grows linearly with level up to a cap.
type ChanceConfig struct {
	Base int `yaml:"base" toml:"base"`
	Step int `yaml:"step" toml:"step"`
	Max  int `yaml:"max" toml:"max"`
}

// AppearanceConfig binds appearance tokens to platform kinds and body facings.
type AppearanceConfig struct {
	Static      string `yaml:"static" toml:"static"`
	Moving      string `yaml:"moving" toml:"moving"`
	Breakable   string `yaml:"breakable" toml:"breakable"`
	PlayerLeft  string `yaml:"player_left" toml:"player_left"`
	PlayerRight string `yaml:"player_right" toml:"player_right"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. An empty name means easy.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyEasy, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the starting level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 1
	case DifficultyHard:
		return 3
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyJumpPreset modifies the config based on a difficulty preset.
func ApplyJumpPreset(cfg *JumpConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

// Validate reports configuration values the simulation cannot run with.
func (c JumpConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, errors.New("world size must be positive"))
	}
	if c.Platforms.Width <= 0 || c.Platforms.Height <= 0 {
		errs = append(errs, errors.New("platform size must be positive"))
	}
	if c.Platforms.Width > c.World.Width {
		errs = append(errs, errors.New("platform wider than world"))
	}
	if c.Platforms.BreakFuse < 0 {
		errs = append(errs, errors.New("platforms.break_fuse must not be negative"))
	}
	if c.Physics.Gravity <= 0 {
		errs = append(errs, errors.New("physics.gravity must be positive"))
	}
	if c.Physics.JumpImpulse >= 0 {
		errs = append(errs, errors.New("physics.jump_impulse must be negative"))
	}
	if c.Physics.FootHeight <= 0 || c.Physics.FootHeight > c.Platforms.Height {
		errs = append(errs, errors.New("physics.foot_height must be in (0, platforms.height]"))
	}
	if c.Generation.StartCount < 1 {
		errs = append(errs, errors.New("generation.start_count must be at least 1"))
	}
	if c.Generation.SeedWeights.Total() <= 0 {
		errs = append(errs, errors.New("generation.seed_weights must not all be zero"))
	}
	if c.Difficulty.LevelScore <= 0 {
		errs = append(errs, errors.New("difficulty.level_score must be positive"))
	}
	if c.Difficulty.MinBatch < 1 {
		errs = append(errs, errors.New("difficulty.min_batch must be at least 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid jump config: %w", errors.Join(errs...))
	}
	return nil
}
