// Package jump implements an endless vertical platformer.
// The body bounces automatically between platforms while the world scrolls
// upward; static, moving and breakable platforms are generated above the
// player with difficulty tied to the score. A run ends when the body falls
// below the screen.
package jump

import (
	"math/rand"

	"github.com/vovakirdan/tui-jump/internal/config"
	"github.com/vovakirdan/tui-jump/internal/core"
	"github.com/vovakirdan/tui-jump/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "jump"

// Phase is the session state.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Game implements the jump simulation loop.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.JumpConfig
	fixed   *config.JumpConfig // set by NewWithConfig, bypasses loading

	rng   *rand.Rand
	body  *Body
	field *Field

	phase     Phase
	paused    bool
	scrolled  float64 // total pixels scrolled this run
	score     int
	best      int
	lastScore int
	tickCount int
	runStart  int  // tickCount when the current run began
	nearDeath bool // armed until the body enters the bottom band while falling
	events    []core.Event
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
// Unknown names fall back to the config's own difficulty.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// New creates a game that loads its configuration on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game that always runs with cfg.
func NewWithConfig(cfg config.JumpConfig) *Game {
	return &Game{fixed: &cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Jump"
}

// Reset builds a fresh world and returns to the start screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.body = NewBody(g.cfg)
	g.field = NewField(g.cfg, g.rng)
	g.field.Initialize(g.cfg.Generation.StartCount, g.cfg.Player.StartX, g.cfg.Player.StartY)

	g.phase = PhaseMenu
	g.paused = false
	g.scrolled = 0
	g.score = 0
	g.best = max(0, runtime.BestScore)
	g.lastScore = 0
	g.tickCount = 0
	g.runStart = 0
	g.nearDeath = true
	g.events = nil
}

func (g *Game) loadConfig() config.JumpConfig {
	if g.fixed != nil {
		return *g.fixed
	}

	cfg, err := config.LoadJump(configPath)
	if err != nil {
		cfg = config.DefaultJumpConfig()
	}
	if difficultyPreset != "" {
		config.ApplyJumpPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	switch g.phase {
	case PhaseMenu:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) ||
			in.Has(core.ActionLeft) || in.Has(core.ActionRight) {
			g.phase = PhasePlaying
		}
		return g.result()

	case PhaseGameOver:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.phase = PhasePlaying
			g.lastScore = 0
		}
		return g.result()

	case PhasePlaying:
		if in.Has(core.ActionPause) {
			g.paused = !g.paused
		}
		if g.paused {
			return g.result()
		}
		g.tick(in)
	}

	return g.result()
}

// tick runs one playing tick. The order of the phases is fixed: input and
// auto-jump before integration, camera work after platforms have updated.
func (g *Game) tick(in core.InputFrame) {
	g.tickCount++

	if in.Has(core.ActionLeft) {
		g.body.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		g.body.MoveRight()
	}

	if g.body.Jump() {
		g.emit(g.event(core.EventJump))
	}

	if landing, ok := g.body.Integrate(g.field.Platforms()); ok {
		g.emit(g.event(core.EventLanded))
		if landing.BreakStarted {
			g.emit(g.event(core.EventBreakStarted))
		}
		g.nearDeath = true
	}

	g.field.Update()

	if g.field.UpdateDifficulty(g.score) {
		e := g.event(core.EventLevelUp)
		e.Level = g.field.Level()
		g.emit(e)
	}

	g.followBody()

	h := g.cfg.World.Height
	if g.nearDeath && g.body.VelocityY > 0 && g.body.Y > h-g.cfg.Camera.NearDeathBand && g.body.Y <= h {
		g.nearDeath = false
		g.emit(g.event(core.EventNearDeath))
	}

	if g.body.Y > h {
		g.endRun()
	}
}

// followBody scrolls the world when the body rises above the trigger line.
// It returns the scroll amount.
func (g *Game) followBody() float64 {
	trigger := g.cfg.Camera.TriggerLine
	if g.body.Y >= trigger {
		return 0
	}

	delta := trigger - g.body.Y
	g.body.Y = trigger
	g.field.Scroll(delta)

	g.scrolled += delta
	g.score = int(g.scrolled)
	g.best = max(g.best, g.score)

	g.field.PruneBelowScreen()
	if look := g.cfg.Generation.Lookahead; look <= 0 || g.field.TopY() > -look {
		g.field.Generate(g.field.BatchSize())
	}
	return delta
}

// endRun records the finished run and rebuilds the world for the next one.
func (g *Game) endRun() {
	g.emit(core.Event{
		Kind:  core.EventGameOver,
		Score: g.score,
		Best:  g.best,
		Level: g.field.Level(),
		Ticks: g.tickCount - g.runStart,
	})

	g.lastScore = g.score
	g.runStart = g.tickCount
	g.scrolled = 0
	g.score = 0
	g.body.Reset(g.cfg.Player.StartX, g.cfg.Player.StartY)
	g.field.Initialize(g.cfg.Generation.StartCount, g.cfg.Player.StartX, g.cfg.Player.StartY)
	g.nearDeath = true
	g.phase = PhaseGameOver
}

// event returns an event of the given kind carrying the current score.
func (g *Game) event(kind core.EventKind) core.Event {
	return core.Event{Kind: kind, Score: g.score}
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// State returns the current game state.
// After a run ends the score of that run is reported until the next one starts.
func (g *Game) State() core.GameState {
	score := g.score
	if g.phase == PhaseGameOver {
		score = g.lastScore
	}
	level := 0
	if g.field != nil {
		level = g.field.Level()
	}
	return core.GameState{
		Score:    score,
		Best:     g.best,
		Level:    level,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.paused,
	}
}

// Phase returns the session phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Ticks returns the number of playing ticks simulated since Reset.
func (g *Game) Ticks() int {
	return g.tickCount
}

// Config returns the configuration the current world was built with.
func (g *Game) Config() config.JumpConfig {
	return g.cfg
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
