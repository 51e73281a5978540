package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-jump/internal/config"
	"github.com/vovakirdan/tui-jump/internal/core"
	"github.com/vovakirdan/tui-jump/internal/storage"
)

// recordingGame remembers the frames it was stepped with.
type recordingGame struct {
	frames []core.InputFrame
	events []core.Event // returned by the next Step
	resets int
}

func (g *recordingGame) ID() string               { return "recording" }
func (g *recordingGame) Title() string            { return "Recording" }
func (g *recordingGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *recordingGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "recording") }
func (g *recordingGame) State() core.GameState    { return core.GameState{} }

func (g *recordingGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	events := g.events
	g.events = nil
	return core.StepResult{Events: events}
}

type memoryKeeper struct {
	best  int
	saves int
	err   error
}

func (k *memoryKeeper) Load() int { return k.best }

func (k *memoryKeeper) Save(best int) error {
	if k.err != nil {
		return k.err
	}
	k.best = best
	k.saves++
	return nil
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func TestModelHoldsLateralInput(t *testing.T) {
	g := &recordingGame{}
	m := NewModel(g, testRuntime(), Options{})
	m.Init()

	m = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	for i := 0; i < 10; i++ {
		m = step(t, m, TickMsg{})
	}

	// The pressed tick plus five held ticks at 60 ticks per second
	held := 0
	for _, f := range g.frames {
		if f.Has(core.ActionLeft) {
			held++
		}
	}
	if held != 6 {
		t.Errorf("Left held for %d ticks, expected 6", held)
	}
	if g.resets != 1 {
		t.Errorf("Init should reset the game once, got %d", g.resets)
	}
}

func TestModelForwardsActions(t *testing.T) {
	g := &recordingGame{}
	m := NewModel(g, testRuntime(), Options{})

	m = step(t, m, runeKey("r"))
	m = step(t, m, runeKey("p"))
	m = step(t, m, TickMsg{})
	m = step(t, m, TickMsg{})

	if len(g.frames) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(g.frames))
	}
	if !g.frames[0].Has(core.ActionRestart) || !g.frames[0].Has(core.ActionPause) {
		t.Error("first frame should carry Restart and Pause")
	}
	if len(g.frames[1].Actions) != 0 {
		t.Error("input should be cleared after each tick")
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m := NewModel(&recordingGame{}, testRuntime(), Options{})

	back, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !back.(Model).WantsMenu() || cmd == nil {
		t.Error("Esc should leave for the menu")
	}
	if back.(Model).View() != "" {
		t.Error("a model that left should render nothing")
	}

	quit, _ := m.Update(runeKey("q"))
	if quit.(Model).WantsMenu() || !quit.(Model).quitting {
		t.Error("q should quit, not go back")
	}
}

func TestModelMuteToggle(t *testing.T) {
	m := NewModel(&recordingGame{}, testRuntime(), Options{})
	m = step(t, m, runeKey("m"))

	// The second toggle unmutes, so the first one muted
	if m.opts.Audio.ToggleMute() {
		t.Error("m should have muted the sink")
	}
}

func TestModelRecordsRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	keeper := &memoryKeeper{best: 300}
	g := &recordingGame{}
	m := NewModel(g, testRuntime(), Options{Store: store, Best: keeper, Player: "tester"})

	g.events = []core.Event{{Kind: core.EventGameOver, Score: 450, Best: 450, Level: 0, Ticks: 900}}
	m = step(t, m, TickMsg{})

	runs, err := store.TopRuns("recording", 10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 450 || runs[0].Ticks != 900 || runs[0].Player != "tester" || runs[0].Seed != 7 {
		t.Errorf("unexpected runs: %+v", runs)
	}
	if keeper.best != 450 || keeper.saves != 1 {
		t.Errorf("best not persisted: %+v", keeper)
	}

	// A worse run is recorded but does not touch the best score
	g.events = []core.Event{{Kind: core.EventGameOver, Score: 100, Best: 450}}
	m = step(t, m, TickMsg{})

	runs, _ = store.TopRuns("recording", 10)
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
	if keeper.saves != 1 {
		t.Errorf("best saved %d times, expected once", keeper.saves)
	}

	// Zero-score runs are not worth keeping
	g.events = []core.Event{{Kind: core.EventGameOver, Score: 0, Best: 450}}
	step(t, m, TickMsg{})
	runs, _ = store.TopRuns("recording", 10)
	if len(runs) != 2 {
		t.Errorf("zero score should not be recorded, got %d runs", len(runs))
	}
}

func TestModelBestSaveFailure(t *testing.T) {
	keeper := &memoryKeeper{err: errors.New("disk full")}
	g := &recordingGame{}
	m := NewModel(g, testRuntime(), Options{Best: keeper})

	g.events = []core.Event{{Kind: core.EventGameOver, Score: 10, Best: 10}}
	m = step(t, m, TickMsg{})

	if m.savedBest != 0 {
		t.Error("failed save should not count as saved")
	}
}

func TestModelSeedsBestFromKeeper(t *testing.T) {
	m := NewModel(&recordingGame{}, testRuntime(), Options{Best: &memoryKeeper{best: 999}})
	if m.config.BestScore != 999 {
		t.Errorf("BestScore = %d, expected 999 from the keeper", m.config.BestScore)
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(&recordingGame{}, testRuntime(), Options{})
	if !strings.Contains(m.View(), "recording") {
		t.Error("View should render the game")
	}
}

func TestNewGameAppliesPreset(t *testing.T) {
	g := NewGame(config.DefaultJumpConfig(), config.DifficultyHard)
	g.Reset(testRuntime())

	if g.State().Level != 3 {
		t.Errorf("hard preset should start at level 3, got %d", g.State().Level)
	}
	if !g.Config().Difficulty.Enabled {
		t.Error("hard preset should keep progression")
	}

	fixed := NewGame(config.DefaultJumpConfig(), config.DifficultyFixed)
	fixed.Reset(testRuntime())
	if fixed.Config().Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}
