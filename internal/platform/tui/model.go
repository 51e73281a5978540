package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-jump/internal/audio"
	"github.com/vovakirdan/tui-jump/internal/core"
	"github.com/vovakirdan/tui-jump/internal/registry"
	"github.com/vovakirdan/tui-jump/internal/storage"
)

// BestKeeper persists the best score between sessions.
type BestKeeper interface {
	Load() int
	Save(best int) error
}

// Options are the collaborators of a play session. Every field is optional.
type Options struct {
	Store  *storage.Store
	Best   BestKeeper
	Audio  audio.Sink
	Logger *log.Logger
	Player string // recorded with each run, empty for local play
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	hold       lateralHold
	gameState  core.GameState
	savedBest  int
	quitting   bool
	back       bool // left with Back rather than Quit
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if opts.Audio == nil {
		opts.Audio = &audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Best != nil {
		cfg.BestScore = max(cfg.BestScore, opts.Best.Load())
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		hold:       newLateralHold(cfg.TickRate / 12),
		savedBest:  cfg.BestScore,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		m.back = true
		return m, tea.Quit

	case action == core.ActionMute:
		muted := m.opts.Audio.ToggleMute()
		m.opts.Logger.Debug("sound toggled", "muted", muted)

	case action == core.ActionLeft || action == core.ActionRight:
		m.hold.press(action)
		m.inputFrame.Set(action)

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
// The game scales its world to the screen, so no reset is needed.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.inputFrame.Has(core.ActionLeft) && !m.inputFrame.Has(core.ActionRight) {
		m.hold.apply(&m.inputFrame)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	audio.PlayAll(m.opts.Audio, result.Events)
	for _, e := range result.Events {
		if e.Kind == core.EventGameOver {
			m.finishRun(e)
			m.hold.release()
		}
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// finishRun records a run that just ended. The game emits one game over
// event per run, so every run is saved exactly once.
func (m *Model) finishRun(e core.Event) {
	m.opts.Logger.Info("run finished", "game", m.game.ID(), "score", e.Score, "best", e.Best, "level", e.Level)

	if m.opts.Store != nil && e.Score > 0 {
		_, err := m.opts.Store.SaveRun(storage.Run{
			GameID: m.game.ID(),
			Score:  e.Score,
			Level:  e.Level,
			Seed:   m.config.Seed,
			Ticks:  e.Ticks,
			Player: m.opts.Player,
		})
		if err != nil {
			m.opts.Logger.Warn("cannot save run", "err", err)
		}
	}

	if m.opts.Best != nil && e.Best > m.savedBest {
		if err := m.opts.Best.Save(e.Best); err != nil {
			m.opts.Logger.Warn("cannot save best score", "err", err)
			return
		}
		m.savedBest = e.Best
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.opts.Logger.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last state reported by the game.
func (m Model) State() core.GameState {
	return m.gameState
}

// WantsMenu reports whether the player left with Back.
func (m Model) WantsMenu() bool {
	return m.back
}

// Run starts the Bubble Tea program with the given model.
// It reports whether the player asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (bool, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.WantsMenu(), nil
	}
	return false, nil
}
