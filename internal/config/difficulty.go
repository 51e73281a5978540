package config

// DifficultyManager derives generation parameters from the score.
// All values are step functions of the integer level.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel int
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	if cfg.LevelScore <= 0 {
		cfg.LevelScore = 1000
	}
	if cfg.MinBatch < 1 {
		cfg.MinBatch = 1
	}
	if cfg.BatchStepLevels < 1 {
		cfg.BatchStepLevels = 1
	}
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: max(0, cfg.InitialLevel),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// InitialLevel returns the level a run starts at.
func (d *DifficultyManager) InitialLevel() int {
	return d.initialLevel
}

// Level returns the difficulty level for a score.
func (d *DifficultyManager) Level(score int) int {
	if !d.IsEnabled() || score <= 0 {
		return d.initialLevel
	}
	return d.initialLevel + score/d.cfg.LevelScore
}

// BatchSize returns how many platforms are generated per scroll at a level.
// Non-increasing in level and never below MinBatch.
func (d *DifficultyManager) BatchSize(level int) int {
	return max(d.cfg.MinBatch, d.cfg.BaseBatch-level/d.cfg.BatchStepLevels)
}

// Chances returns the breakable and moving percentages at a level.
func (d *DifficultyManager) Chances(level int) (breakable, moving int) {
	return d.cfg.Breakable.at(level), d.cfg.Moving.at(level)
}

// Gap returns the vertical distance between generated platforms at a level.
func (d *DifficultyManager) Gap(level int, maxJumpHeight float64) float64 {
	return d.cfg.GapFactor * maxJumpHeight * (1 + d.cfg.GapGrowth*float64(level))
}

func (c ChanceConfig) at(level int) int {
	v := c.Base + c.Step*level
	if c.Max > 0 {
		v = min(v, c.Max)
	}
	return max(0, v)
}
