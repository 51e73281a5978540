package jump

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-jump/internal/config"
	"github.com/vovakirdan/tui-jump/internal/core"
	"github.com/vovakirdan/tui-jump/internal/registry"
)

func newTestGame(seed int64) *Game {
	g := NewWithConfig(config.DefaultJumpConfig())
	g.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	})
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func startedGame(seed int64) *Game {
	g := newTestGame(seed)
	g.Step(input(core.ActionConfirm))
	return g
}

func countEvents(events []core.Event, kind core.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestGameStartsInMenu(t *testing.T) {
	g := newTestGame(1)

	if g.Phase() != PhaseMenu {
		t.Fatalf("Phase() = %v, expected menu", g.Phase())
	}

	g.Step(input())
	g.Step(input(core.ActionPause))
	if g.Phase() != PhaseMenu || g.Ticks() != 0 || g.paused {
		t.Error("menu should ignore everything but start keys")
	}

	res := g.Step(input(core.ActionLeft))
	if g.Phase() != PhasePlaying {
		t.Errorf("Left should start play, phase %v", g.Phase())
	}
	if len(res.Events) != 0 {
		t.Errorf("starting should not simulate, got events %v", res.Events)
	}
}

func TestFirstTickAutoJumps(t *testing.T) {
	g := startedGame(1)

	res := g.Step(input())
	if !res.Has(core.EventJump) {
		t.Error("grounded body should auto-jump on the first tick")
	}
	if !g.body.Airborne {
		t.Error("body should be airborne after the first tick")
	}
	if g.body.Y >= 400 {
		t.Errorf("body should rise, Y = %v", g.body.Y)
	}
}

func TestHorizontalInputMovesBody(t *testing.T) {
	g := startedGame(1)
	x := g.body.X

	g.Step(input(core.ActionLeft))
	if g.body.X != x-6.5 || g.body.Facing != FacingLeft {
		t.Errorf("Left: X = %v facing %v", g.body.X, g.body.Facing)
	}

	g.Step(input(core.ActionRight))
	if g.body.X != x || g.body.Facing != FacingRight {
		t.Errorf("Right: X = %v facing %v", g.body.X, g.body.Facing)
	}
}

func TestScoreScroll(t *testing.T) {
	g := startedGame(1)
	g.field.platforms = nil
	g.field.add(KindStatic, 0, 500)
	g.field.add(KindStatic, 300, 600)
	low, high := g.field.Platforms()[0], g.field.Platforms()[1]

	// Gravity cancels the velocity, so the body stays at 250 this tick
	g.body.Y = 250
	g.body.Airborne = true
	g.body.VelocityY = -0.3

	res := g.Step(input())

	if g.body.Y != 300 {
		t.Errorf("body Y = %v, expected pinned to 300", g.body.Y)
	}
	if res.State.Score != 50 {
		t.Errorf("Score = %d, expected 50", res.State.Score)
	}
	if res.State.Best != 50 {
		t.Errorf("Best = %d, expected 50", res.State.Best)
	}
	if low.Y != 550 || high.Y != 650 {
		t.Errorf("platforms at %v/%v, expected 550/650", low.Y, high.Y)
	}
	if g.field.Len() != 2+5 {
		t.Errorf("Len() = %d, expected one batch of 5 generated", g.field.Len())
	}
}

func TestScrollGenerationLookahead(t *testing.T) {
	tests := []struct {
		name      string
		lookahead float64
		generated bool
	}{
		{"every scroll", 0, true},
		{"top far above the screen", 800, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultJumpConfig()
			cfg.Generation.Lookahead = tc.lookahead
			g := NewWithConfig(cfg)
			g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
			g.Step(input(core.ActionConfirm))

			g.field.platforms = nil
			g.field.add(KindStatic, 0, 500)
			g.field.add(KindStatic, 300, -900)
			g.body.Y = 250
			g.body.Airborne = true
			g.body.VelocityY = -0.3

			res := g.Step(input())
			if res.State.Score != 50 {
				t.Fatalf("Score = %d, expected a scroll of 50", res.State.Score)
			}

			want := 2
			if tc.generated {
				want += g.field.BatchSize()
			}
			if g.field.Len() != want {
				t.Errorf("Len() = %d, expected %d", g.field.Len(), want)
			}
		})
	}
}

func TestEventsCarryScore(t *testing.T) {
	g := startedGame(1)
	g.score = 120

	res := g.Step(input())
	if countEvents(res.Events, core.EventJump) != 1 {
		t.Fatalf("expected the auto-jump, got %+v", res.Events)
	}
	for _, e := range res.Events {
		if e.Score != 120 {
			t.Errorf("%v event score = %d, expected 120", e.Kind, e.Score)
		}
	}

	g.events = nil
	g.emit(core.Event{Kind: core.EventGameOver, Best: 120})
	if g.events[0].Score != 0 {
		t.Errorf("explicit zero score rewritten to %d", g.events[0].Score)
	}
}

func TestScoreMonotonicWhileRising(t *testing.T) {
	g := startedGame(3)
	prev := 0
	for i := 0; i < 600; i++ {
		res := g.Step(input())
		if res.State.GameOver {
			break
		}
		if res.State.Score < prev {
			t.Fatalf("score decreased from %d to %d at tick %d", prev, res.State.Score, i)
		}
		prev = res.State.Score
	}
}

func TestGameOverReset(t *testing.T) {
	g := startedGame(1)
	g.field.platforms = nil
	g.scrolled, g.score, g.best = 1234.5, 1234, 1234

	g.body.Y = 801
	g.body.Airborne = true
	g.body.VelocityY = -0.3

	res := g.Step(input())

	if countEvents(res.Events, core.EventGameOver) != 1 {
		t.Fatalf("expected one game over event, got %v", res.Events)
	}
	for _, e := range res.Events {
		if e.Kind == core.EventGameOver && (e.Score != 1234 || e.Best != 1234 || e.Level != 1 || e.Ticks != 1) {
			t.Errorf("game over event = %+v", e)
		}
	}
	if !res.State.GameOver || res.State.Score != 1234 {
		t.Errorf("state after fall = %+v, expected game over with last score", res.State)
	}
	if g.score != 0 || g.scrolled != 0 {
		t.Errorf("score not reset: %d / %v", g.score, g.scrolled)
	}
	if g.body.X != 225 || g.body.Y != 400 || g.body.Airborne {
		t.Errorf("body not reset: %+v", g.body)
	}
	if g.field.Len() != 15 {
		t.Errorf("field has %d platforms, expected 15", g.field.Len())
	}

	// Simulation waits for a restart
	g.Step(input(core.ActionLeft))
	if g.Phase() != PhaseGameOver || g.body.X != 225 {
		t.Error("game over phase should not simulate")
	}

	res = g.Step(input(core.ActionRestart))
	if g.Phase() != PhasePlaying || res.State.GameOver || res.State.Score != 0 {
		t.Errorf("restart should begin a new run, state %+v", res.State)
	}
	if res.State.Best != 1234 {
		t.Errorf("best should survive the restart, got %d", res.State.Best)
	}
}

func TestNearDeathFiresOnce(t *testing.T) {
	g := startedGame(1)
	g.field.platforms = nil

	g.body.Y = 690
	g.body.Airborne = true
	g.body.VelocityY = 5

	nearDeath := 0
	for i := 0; i < 100 && g.Phase() == PhasePlaying; i++ {
		res := g.Step(input())
		nearDeath += countEvents(res.Events, core.EventNearDeath)
	}
	if g.Phase() != PhaseGameOver {
		t.Fatal("body should have fallen off the screen")
	}
	if nearDeath != 1 {
		t.Errorf("near-death events = %d, expected 1", nearDeath)
	}
}

func TestLevelUpEvent(t *testing.T) {
	g := startedGame(1)
	g.scrolled, g.score = 1000, 1000

	res := g.Step(input())
	found := false
	for _, e := range res.Events {
		if e.Kind == core.EventLevelUp {
			found = true
			if e.Level != 1 {
				t.Errorf("level-up event level = %d, expected 1", e.Level)
			}
		}
	}
	if !found {
		t.Error("expected a level-up event")
	}
	if res.State.Level != 1 {
		t.Errorf("State().Level = %d, expected 1", res.State.Level)
	}
}

func TestGamePause(t *testing.T) {
	g := startedGame(1)
	g.Step(input())

	g.Step(input(core.ActionPause))
	if !g.paused {
		t.Fatal("game should be paused")
	}

	y, ticks := g.body.Y, g.Ticks()
	g.Step(input(core.ActionLeft))
	if g.body.Y != y || g.Ticks() != ticks {
		t.Error("paused game must not simulate")
	}

	g.Step(input(core.ActionPause))
	if g.paused {
		t.Error("game should be unpaused")
	}
}

func TestBestScoreSeeded(t *testing.T) {
	g := NewWithConfig(config.DefaultJumpConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1, BestScore: 4321})

	if g.State().Best != 4321 {
		t.Errorf("Best = %d, expected persisted 4321", g.State().Best)
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 3000)
	for i := range inputs {
		switch {
		case i%200 < 40:
			inputs[i] = input(core.ActionLeft)
		case i%200 < 70:
			inputs[i] = input(core.ActionRight)
		case i%500 == 499:
			inputs[i] = input(core.ActionConfirm)
		default:
			inputs[i] = input()
		}
	}

	run := func() (*Game, []core.Event) {
		g := startedGame(12345)
		var events []core.Event
		for _, in := range inputs {
			res := g.Step(in)
			events = append(events, res.Events...)
		}
		return g, events
	}

	g1, e1 := run()
	g2, e2 := run()

	if !reflect.DeepEqual(e1, e2) {
		t.Error("event streams differ between identical runs")
	}
	if !reflect.DeepEqual(g1.Snapshot(), g2.Snapshot()) {
		t.Error("final snapshots differ between identical runs")
	}
	if g1.Ticks() != g2.Ticks() {
		t.Errorf("tick counts differ: %d vs %d", g1.Ticks(), g2.Ticks())
	}
}

func TestGameReset(t *testing.T) {
	g := startedGame(42)
	for i := 0; i < 50; i++ {
		g.Step(input(core.ActionRight))
	}

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 42})

	if g.score != 0 || g.Ticks() != 0 || g.paused || g.Phase() != PhaseMenu {
		t.Error("Reset should return to a fresh menu state")
	}
	if g.field.Len() != 15 {
		t.Errorf("field has %d platforms after reset", g.field.Len())
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(1)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if !strings.Contains(screen.String(), "J U M P") {
		t.Error("menu should show the title box")
	}

	g.Step(input(core.ActionConfirm))
	g.Step(input())
	g.Render(screen)

	out := screen.String()
	if !strings.ContainsRune(out, BodyChar) {
		t.Error("body not drawn")
	}
	if !strings.ContainsRune(out, '▀') {
		t.Error("platforms not drawn")
	}
	if strings.Contains(out, "J U M P") {
		t.Error("menu box should disappear once playing")
	}
}

func TestRenderFallbackGlyph(t *testing.T) {
	g := newTestGame(1)
	g.Step(input(core.ActionConfirm))
	g.field.SetAppearance("missing-token", "", "")

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.ContainsRune(screen.String(), FallbackChar) {
		t.Error("unknown appearance tokens should render with the fallback glyph")
	}
	if lookupGlyph("nope") != fallback {
		t.Error("lookupGlyph should return the fallback")
	}
}

func TestViewport(t *testing.T) {
	v := newViewport(80, 24, 450, 800)

	if v.w != 26 || v.h != 23 {
		t.Errorf("viewport size = %dx%d, expected 26x23", v.w, v.h)
	}
	if v.ox != 27 || v.oy != 1 {
		t.Errorf("viewport origin = (%d, %d), expected (27, 1)", v.ox, v.oy)
	}

	if _, ok := v.cells(core.NewRectF(-200, 0, 70, 20)); ok {
		t.Error("rect left of the world should be clipped away")
	}
	r, ok := v.cells(core.NewRectF(0, 0, 1, 1))
	if !ok || r.W != 1 || r.H != 1 {
		t.Errorf("tiny rect should occupy one cell, got %+v", r)
	}
}

func TestSnapshot(t *testing.T) {
	g := startedGame(1)
	g.Step(input())

	s := g.Snapshot()
	if s.Phase != PhasePlaying || s.Width != 450 || s.Height != 800 {
		t.Errorf("snapshot header = %+v", s)
	}
	if len(s.Platforms) != g.field.Len() {
		t.Errorf("snapshot has %d platforms, field %d", len(s.Platforms), g.field.Len())
	}
	if s.Body.Rect != g.body.Rect() || s.Body.Appearance != "player-right" {
		t.Errorf("snapshot body = %+v", s.Body)
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatal("jump should register itself")
	}
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "Jump" {
		t.Errorf("Title() = %q", g.Title())
	}
}
