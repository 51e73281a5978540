// Package window runs the jump game in a desktop window using ebiten.
// It draws from jump.Game.Snapshot and shares the run recording rules of the
// terminal runner.
package window

import (
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-jump/internal/audio"
	"github.com/vovakirdan/tui-jump/internal/core"
	"github.com/vovakirdan/tui-jump/internal/games/jump"
	"github.com/vovakirdan/tui-jump/internal/storage"
)

// BestKeeper persists the best score between sessions.
type BestKeeper interface {
	Load() int
	Save(best int) error
}

// Options are the collaborators of a window session. Every field is optional.
type Options struct {
	Store  *storage.Store
	Best   BestKeeper
	Audio  audio.Sink
	Logger *log.Logger
	Scale  float64 // window pixels per world pixel, 1 when zero
}

// binding maps keyboard keys to an action. Held bindings are level-triggered,
// the rest fire once per key press.
type binding struct {
	keys   []ebiten.Key
	action core.Action
	held   bool
}

var bindings = []binding{
	{[]ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, core.ActionLeft, true},
	{[]ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}, core.ActionRight, true},
	{[]ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp}, core.ActionJump, false},
	{[]ebiten.Key{ebiten.KeyEnter}, core.ActionConfirm, false},
	{[]ebiten.Key{ebiten.KeyP}, core.ActionPause, false},
	{[]ebiten.Key{ebiten.KeyR}, core.ActionRestart, false},
	{[]ebiten.Key{ebiten.KeyM}, core.ActionMute, false},
	{[]ebiten.Key{ebiten.KeyQ, ebiten.KeyEscape}, core.ActionQuit, false},
}

// Runner adapts a jump game to ebiten.Game.
type Runner struct {
	game      *jump.Game
	opts      Options
	config    core.RuntimeConfig
	frame     core.InputFrame
	savedBest int
	quitting  bool
}

// NewRunner resets the game and prepares it for the window loop.
func NewRunner(game *jump.Game, cfg core.RuntimeConfig, opts Options) *Runner {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if opts.Audio == nil {
		opts.Audio = &audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Best != nil {
		cfg.BestScore = max(cfg.BestScore, opts.Best.Load())
	}

	game.Reset(cfg)
	return &Runner{
		game:      game,
		opts:      opts,
		config:    cfg,
		frame:     core.NewInputFrame(),
		savedBest: cfg.BestScore,
	}
}

// Update reads the keyboard and advances the game by one tick.
func (r *Runner) Update() error {
	for _, b := range bindings {
		for _, k := range b.keys {
			if (b.held && ebiten.IsKeyPressed(k)) || (!b.held && inpututil.IsKeyJustPressed(k)) {
				r.frame.Set(b.action)
				break
			}
		}
	}

	r.step()
	if r.quitting {
		return ebiten.Termination
	}
	return nil
}

// step applies the pending input frame. It holds everything Update does
// apart from reading devices.
func (r *Runner) step() {
	defer r.frame.Clear()

	if r.frame.Has(core.ActionQuit) {
		r.quitting = true
		return
	}
	if r.frame.Has(core.ActionMute) {
		muted := r.opts.Audio.ToggleMute()
		r.opts.Logger.Debug("audio toggled", "muted", muted)
	}

	result := r.game.Step(r.frame)
	audio.PlayAll(r.opts.Audio, result.Events)
	for _, e := range result.Events {
		if e.Kind == core.EventGameOver {
			r.finishRun(e)
		}
	}
}

// finishRun records a run that just ended.
func (r *Runner) finishRun(e core.Event) {
	r.opts.Logger.Info("run finished", "score", e.Score, "best", e.Best, "level", e.Level)

	if r.opts.Store != nil && e.Score > 0 {
		_, err := r.opts.Store.SaveRun(storage.Run{
			GameID: r.game.ID(),
			Score:  e.Score,
			Level:  e.Level,
			Seed:   r.config.Seed,
			Ticks:  e.Ticks,
			Player: "window",
		})
		if err != nil {
			r.opts.Logger.Warn("cannot save run", "err", err)
		}
	}

	if r.opts.Best != nil && e.Best > r.savedBest {
		if err := r.opts.Best.Save(e.Best); err != nil {
			r.opts.Logger.Warn("cannot save best score", "err", err)
			return
		}
		r.savedBest = e.Best
	}
}

// Draw paints the current snapshot in world coordinates.
func (r *Runner) Draw(screen *ebiten.Image) {
	s := r.game.Snapshot()
	screen.Fill(background)

	trigger := float32(s.TriggerLine)
	vector.StrokeLine(screen, 0, trigger, float32(s.Width), trigger, 1, guide, false)

	for _, p := range s.Platforms {
		fillRect(screen, p.Rect, platformColor(p))
	}
	fillRect(screen, s.Body.Rect, colorFor(s.Body.Appearance))

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d  Best: %d  Lv %d", s.Score, s.Best, s.Level), 6, 4)
	if msg := banner(s); msg != "" {
		ebitenutil.DebugPrintAt(screen, msg, 6, int(s.Height/2))
	}
}

// Layout keeps the logical screen at the world size; ebiten scales it to the window.
func (r *Runner) Layout(_, _ int) (int, int) {
	cfg := r.game.Config()
	return int(cfg.World.Width), int(cfg.World.Height)
}

func fillRect(dst *ebiten.Image, rect core.RectF, c color.Color) {
	vector.DrawFilledRect(dst, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H), c, false)
}

// banner is the message shown over the world in the current phase.
func banner(s jump.Snapshot) string {
	switch {
	case s.Phase == jump.PhaseMenu:
		return "JUMP  -  press Space to start"
	case s.Phase == jump.PhaseGameOver:
		return fmt.Sprintf("GAME OVER  score %d  -  R to retry", s.Score)
	case s.Paused:
		return "PAUSED  -  P to resume"
	}
	return ""
}

// Run opens a window and plays until it is closed or the player quits.
func Run(game *jump.Game, cfg core.RuntimeConfig, opts Options) error {
	r := NewRunner(game, cfg, opts)

	w, h := r.Layout(0, 0)
	ebiten.SetWindowSize(int(float64(w)*r.opts.Scale), int(float64(h)*r.opts.Scale))
	ebiten.SetWindowTitle("Jump")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(r.config.TickRate)

	if err := ebiten.RunGame(r); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
