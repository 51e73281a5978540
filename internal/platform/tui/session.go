package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-jump/internal/config"
	"github.com/vovakirdan/tui-jump/internal/core"
	"github.com/vovakirdan/tui-jump/internal/games/jump"
	"github.com/vovakirdan/tui-jump/internal/storage"
)

// NewGame builds a jump game from a base config with preset applied on top.
// An empty preset keeps the config's own difficulty.
func NewGame(base config.JumpConfig, preset config.DifficultyPreset) *jump.Game {
	cfg := base
	if preset != "" {
		config.ApplyJumpPreset(&cfg, preset)
	}
	return jump.NewWithConfig(cfg)
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel runs the whole menu -> game -> menu flow inside one program.
// It is the top-level model of an SSH session.
type SessionModel struct {
	base       config.JumpConfig
	preset     config.DifficultyPreset
	runtime    core.RuntimeConfig
	opts       Options
	screen     sessionScreen
	menu       MenuModel
	game       Model
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session starting at the main menu.
func NewSessionModel(base config.JumpConfig, preset config.DifficultyPreset, runtime core.RuntimeConfig, opts Options) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	m := SessionModel{
		base:    base,
		preset:  preset,
		runtime: runtime,
		opts:    opts,
	}
	m.menu = NewMenuModel(runtime, preset, m.best())
	return m
}

// best returns the best score on record for this session.
func (m SessionModel) best() int {
	best := m.runtime.BestScore
	if m.opts.Best != nil {
		best = max(best, m.opts.Best.Load())
	}
	if m.opts.Store != nil {
		if high, err := m.opts.Store.HighScore(jump.ID); err == nil {
			best = max(best, high)
		}
	}
	return best
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		m.preset = m.menu.Difficulty()
		rc := m.runtime
		rc.BestScore = m.best()
		rc.Seed = 0 // NewModel picks a time-based seed
		m.game = NewModel(NewGame(m.base, m.preset), rc, m.opts)
		m.screen = screenGame
		m.opts.Logger.Debug("run started", "difficulty", m.preset, "player", m.opts.Player)
		return m, m.game.Init()

	case ChoiceScores:
		m.scoreboard = NewScoreboardModel(m.opts.Store, jump.ID, "Jump", m.runtime.TickRate, m.runtime.ScreenW, m.runtime.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = gm
	}

	if m.game.WantsMenu() {
		return m, m.toMenu()
	}
	if m.game.quitting {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sm
	}

	if m.scoreboard.IsGoingBack() {
		return m, m.toMenu()
	}
	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// toMenu switches back to a fresh main menu. Pending game ticks are dropped
// because only the game screen handles TickMsg.
func (m *SessionModel) toMenu() tea.Cmd {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.runtime, m.preset, m.best())
	return m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}
