package jump

import (
	"math"
	"math/rand"
	"slices"

	"github.com/vovakirdan/tui-jump/internal/config"
)

// Field owns the live platforms: seeding, per-tick update and pruning,
// the score-driven difficulty curve and generation above the topmost platform.
type Field struct {
	cfg        config.JumpConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	platforms  []*Platform
	level      int
	batchSize  int
	maxGap     float64
	appearance [3]string // indexed by Kind
}

// NewField creates an empty field. All randomness comes from rng.
func NewField(cfg config.JumpConfig, rng *rand.Rand) *Field {
	f := &Field{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rng,
	}

	margin := cfg.Generation.ReachMargin
	if margin <= 0 || margin > 1 {
		margin = 1
	}
	f.maxGap = PeakRise(cfg.Physics.Gravity, cfg.Physics.JumpImpulse) * margin

	f.level = f.difficulty.InitialLevel()
	f.batchSize = f.difficulty.BatchSize(f.level)
	f.SetAppearance(cfg.Appearance.Static, cfg.Appearance.Moving, cfg.Appearance.Breakable)
	return f
}

// Platforms returns the live platforms in insertion order.
func (f *Field) Platforms() []*Platform {
	return f.platforms
}

// Len returns the number of live platforms.
func (f *Field) Len() int {
	return len(f.platforms)
}

// Level returns the current difficulty level.
func (f *Field) Level() int {
	return f.level
}

// BatchSize returns how many platforms the next Generate call should add.
func (f *Field) BatchSize() int {
	return f.batchSize
}

// Initialize replaces the field with n platforms: a static one under the body
// at (bodyX, feetY), then n-1 spread evenly from the bottom of the screen upward.
func (f *Field) Initialize(n int, bodyX, feetY float64) {
	f.platforms = f.platforms[:0]

	w := f.cfg.Platforms.Width
	startX := bodyX + f.cfg.Player.Width/2 - w/2
	startX = math.Max(0, math.Min(startX, f.cfg.World.Width-w))
	f.add(KindStatic, startX, feetY)

	h := f.cfg.World.Height
	spacing := h / float64(max(n, 1))
	for i := 1; i < n; i++ {
		y := h - float64(i)*spacing
		x := f.randomX()
		f.add(f.seedKind(), x, y)
	}

	f.level = f.difficulty.InitialLevel()
	f.batchSize = f.difficulty.BatchSize(f.level)
}

// Update advances every platform and drops the ones that were removed.
func (f *Field) Update() {
	for _, p := range f.platforms {
		p.Update()
	}
	f.platforms = slices.DeleteFunc(f.platforms, func(p *Platform) bool {
		return p.State == StateRemoved
	})
}

// Scroll moves every platform down by amount.
func (f *Field) Scroll(amount float64) {
	for _, p := range f.platforms {
		p.Y += amount
	}
}

// PruneBelowScreen drops platforms whose top is below the screen.
func (f *Field) PruneBelowScreen() {
	h := f.cfg.World.Height
	f.platforms = slices.DeleteFunc(f.platforms, func(p *Platform) bool {
		return p.Y > h
	})
}

// UpdateDifficulty recomputes the level for score and reports whether it changed.
func (f *Field) UpdateDifficulty(score int) bool {
	level := f.difficulty.Level(score)
	if level == f.level {
		return false
	}
	f.level = level
	f.batchSize = f.difficulty.BatchSize(level)
	return true
}

// Gap returns the vertical spacing used by Generate at the current level.
// It never exceeds what a single jump can clear.
func (f *Field) Gap() float64 {
	gap := f.difficulty.Gap(f.level, f.cfg.Generation.MaxJumpHeight)
	if f.maxGap > 0 {
		gap = math.Min(gap, f.maxGap)
	}
	return gap
}

// Generate stacks count platforms above the topmost one.
// The first of each batch is always static.
func (f *Field) Generate(count int) {
	y := f.TopY()
	gap := f.Gap()
	breakable, moving := f.difficulty.Chances(f.level)

	for i := 0; i < count; i++ {
		y -= gap
		x := f.placeX(y)

		kind := KindStatic
		if i > 0 {
			r := f.rng.Intn(100)
			switch {
			case r < breakable:
				kind = KindBreakable
			case r < breakable+moving:
				kind = KindMoving
			}
		}
		f.add(kind, x, y)
	}
}

// TopY returns the smallest platform Y, or the screen height when empty.
func (f *Field) TopY() float64 {
	top := f.cfg.World.Height
	for _, p := range f.platforms {
		top = math.Min(top, p.Y)
	}
	return top
}

// IsOverlapping reports whether a platform at (x, y) would crowd an existing one.
// Generate only consults it when generation.avoid_overlap is set.
func (f *Field) IsOverlapping(x, y float64) bool {
	maxDX := f.cfg.Platforms.Width - f.cfg.Generation.MinXGap
	for _, p := range f.platforms {
		if math.Abs(p.X-x) < maxDX && math.Abs(p.Y-y) < f.cfg.Generation.MinYGap {
			return true
		}
	}
	return false
}

// SetAppearance rebinds the appearance tokens of every kind.
// Empty moving or breakable tokens fall back to the static one.
func (f *Field) SetAppearance(static, moving, breakable string) {
	if moving == "" {
		moving = static
	}
	if breakable == "" {
		breakable = static
	}
	f.appearance = [3]string{KindStatic: static, KindMoving: moving, KindBreakable: breakable}

	for _, p := range f.platforms {
		p.Appearance = f.appearance[p.Kind]
	}
}

func (f *Field) add(kind Kind, x, y float64) {
	p := NewPlatform(kind, x, y, f.cfg.Platforms, f.cfg.World.Width)
	p.Appearance = f.appearance[kind]
	f.platforms = append(f.platforms, p)
}

func (f *Field) randomX() float64 {
	return f.rng.Float64() * (f.cfg.World.Width - f.cfg.Platforms.Width)
}

func (f *Field) placeX(y float64) float64 {
	x := f.randomX()
	if !f.cfg.Generation.AvoidOverlap {
		return x
	}
	for i := 0; i < f.cfg.Generation.OverlapRetries && f.IsOverlapping(x, y); i++ {
		x = f.randomX()
	}
	return x
}

func (f *Field) seedKind() Kind {
	w := f.cfg.Generation.SeedWeights
	total := w.Total()
	if total <= 0 {
		return KindStatic
	}
	r := f.rng.Intn(total)
	switch {
	case r < w.Static:
		return KindStatic
	case r < w.Static+w.Moving:
		return KindMoving
	default:
		return KindBreakable
	}
}
