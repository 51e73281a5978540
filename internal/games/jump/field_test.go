package jump

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-jump/internal/config"
)

func newTestField(seed int64) *Field {
	return NewField(config.DefaultJumpConfig(), rand.New(rand.NewSource(seed)))
}

func TestFieldInitialize(t *testing.T) {
	f := newTestField(1)
	f.Initialize(15, 225, 400)

	if f.Len() != 15 {
		t.Fatalf("Len() = %d, expected 15", f.Len())
	}

	start := f.Platforms()[0]
	if start.Kind != KindStatic {
		t.Errorf("start platform kind = %v, expected static", start.Kind)
	}
	// Centred under an 80 wide body at x=225
	if start.X != 230 || start.Y != 400 {
		t.Errorf("start platform at (%v, %v), expected (230, 400)", start.X, start.Y)
	}

	spacing := 800.0 / 15
	for i, p := range f.Platforms()[1:] {
		want := 800 - float64(i+1)*spacing
		if math.Abs(p.Y-want) > 1e-9 {
			t.Errorf("platform %d at y=%v, expected %v", i+1, p.Y, want)
		}
		if p.X < 0 || p.X > 450-70 {
			t.Errorf("platform %d x=%v outside [0, 380]", i+1, p.X)
		}
	}

	if f.Level() != 0 || f.BatchSize() != 5 {
		t.Errorf("Level/BatchSize = %d/%d, expected 0/5", f.Level(), f.BatchSize())
	}
}

func TestFieldInitializeResetsDifficulty(t *testing.T) {
	f := newTestField(1)
	f.Initialize(15, 225, 400)
	f.UpdateDifficulty(9000)

	f.Initialize(15, 225, 400)
	if f.Level() != 0 || f.BatchSize() != 5 {
		t.Errorf("Initialize should reset difficulty, got level %d batch %d", f.Level(), f.BatchSize())
	}
}

func TestFieldSeedSkewsStatic(t *testing.T) {
	f := newTestField(7)

	counts := map[Kind]int{}
	for i := 0; i < 200; i++ {
		f.Initialize(15, 225, 400)
		for _, p := range f.Platforms()[1:] {
			counts[p.Kind]++
		}
	}
	if counts[KindStatic] <= counts[KindMoving]+counts[KindBreakable] {
		t.Errorf("seeded field should be mostly static, got %v", counts)
	}
}

func TestFieldDeterministic(t *testing.T) {
	a := newTestField(99)
	b := newTestField(99)
	a.Initialize(15, 225, 400)
	b.Initialize(15, 225, 400)
	a.Generate(5)
	b.Generate(5)

	if a.Len() != b.Len() {
		t.Fatalf("lengths differ: %d vs %d", a.Len(), b.Len())
	}
	for i := range a.Platforms() {
		pa, pb := a.Platforms()[i], b.Platforms()[i]
		if pa.X != pb.X || pa.Y != pb.Y || pa.Kind != pb.Kind {
			t.Fatalf("platform %d differs: %+v vs %+v", i, pa, pb)
		}
	}
}

func TestGenerateGapBound(t *testing.T) {
	cfg := config.DefaultJumpConfig()
	rise := PeakRise(cfg.Physics.Gravity, cfg.Physics.JumpImpulse)

	for level := 0; level <= 30; level++ {
		f := newTestField(int64(level))
		f.Initialize(15, 225, 400)
		f.UpdateDifficulty(level * 1000)
		if f.Level() != level {
			t.Fatalf("Level() = %d, expected %d", f.Level(), level)
		}

		before := f.Len()
		top := f.TopY()
		f.Generate(f.BatchSize())

		bound := 0.75 * 60 * (1 + 0.1*float64(level))
		prev := top
		for i, p := range f.Platforms()[before:] {
			gap := prev - p.Y
			if gap <= 0 || gap > bound+1e-9 {
				t.Fatalf("level %d platform %d: gap %v outside (0, %v]", level, i, gap, bound)
			}
			if gap > rise {
				t.Fatalf("level %d platform %d: gap %v exceeds jump rise %v", level, i, gap, rise)
			}
			if i == 0 && p.Kind != KindStatic {
				t.Fatalf("level %d: first platform of a batch is %v, expected static", level, p.Kind)
			}
			prev = p.Y
		}
	}
}

func TestGenerateFromEmptyField(t *testing.T) {
	f := newTestField(3)
	f.Generate(3)

	if f.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", f.Len())
	}
	for i, p := range f.Platforms() {
		want := 800 - 45*float64(i+1)
		if math.Abs(p.Y-want) > 1e-9 {
			t.Errorf("platform %d at y=%v, expected %v", i, p.Y, want)
		}
	}
}

func TestGenerateKindMix(t *testing.T) {
	f := newTestField(11)
	f.UpdateDifficulty(10000) // level 10: 40% breakable, 30% moving

	counts := map[Kind]int{}
	for i := 0; i < 2000; i++ {
		before := f.Len()
		f.Generate(5)
		for _, p := range f.Platforms()[before+1:] {
			counts[p.Kind]++
		}
	}

	total := float64(counts[KindStatic] + counts[KindMoving] + counts[KindBreakable])
	check := func(kind Kind, want float64) {
		got := float64(counts[kind]) / total
		if math.Abs(got-want) > 0.03 {
			t.Errorf("%v share = %.3f, expected about %.2f", kind, got, want)
		}
	}
	check(KindBreakable, 0.40)
	check(KindMoving, 0.30)
	check(KindStatic, 0.30)
}

func TestFieldUpdatePurgesRemoved(t *testing.T) {
	f := newTestField(1)
	f.add(KindStatic, 0, 100)
	f.add(KindBreakable, 100, 200)
	f.add(KindMoving, 200, 300)

	f.Platforms()[1].StartBreaking()
	for i := 0; i < 14; i++ {
		f.Update()
	}
	if f.Len() != 3 {
		t.Fatalf("Len() = %d before the fuse ran out, expected 3", f.Len())
	}

	f.Update()
	if f.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2 after removal", f.Len())
	}
	for _, p := range f.Platforms() {
		if p.Kind == KindBreakable {
			t.Error("removed platform still in the field")
		}
	}
}

func TestFieldScrollAndPrune(t *testing.T) {
	f := newTestField(1)
	f.add(KindStatic, 0, 650)
	f.add(KindStatic, 0, 700)
	f.add(KindStatic, 0, 760)

	f.Scroll(100)
	ys := []float64{750, 800, 860}
	for i, p := range f.Platforms() {
		if p.Y != ys[i] {
			t.Errorf("platform %d at y=%v, expected %v", i, p.Y, ys[i])
		}
	}

	f.PruneBelowScreen()
	if f.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2 (y == height stays)", f.Len())
	}
	if f.Platforms()[1].Y != 800 {
		t.Error("platform exactly at the bottom edge should stay")
	}
}

func TestUpdateDifficulty(t *testing.T) {
	f := newTestField(1)

	if f.UpdateDifficulty(999) {
		t.Error("level should not change below 1000")
	}
	if !f.UpdateDifficulty(1000) || f.Level() != 1 {
		t.Errorf("expected level 1, got %d", f.Level())
	}
	if f.UpdateDifficulty(1500) {
		t.Error("level should not change within the same thousand")
	}

	prev := f.BatchSize()
	for score := 0; score < 40000; score += 500 {
		f.UpdateDifficulty(score)
		if f.BatchSize() > prev && score > 1000 {
			t.Fatalf("batch size grew at score %d", score)
		}
		if f.BatchSize() < 2 {
			t.Fatalf("batch size %d below floor", f.BatchSize())
		}
		prev = f.BatchSize()
	}
}

func TestUpdateDifficultyFixed(t *testing.T) {
	cfg := config.DefaultJumpConfig()
	config.ApplyJumpPreset(&cfg, config.DifficultyFixed)
	f := NewField(cfg, rand.New(rand.NewSource(1)))

	if f.UpdateDifficulty(50000) || f.Level() != 0 {
		t.Errorf("fixed difficulty should not progress, level %d", f.Level())
	}
}

func TestIsOverlapping(t *testing.T) {
	f := newTestField(1)
	f.add(KindStatic, 100, 100)

	tests := []struct {
		x, y float64
		want bool
	}{
		{110, 110, true},
		{100, 100, true},
		{130, 100, false},
		{100, 140, false},
		{85, 75, true},
	}
	for _, tc := range tests {
		if got := f.IsOverlapping(tc.x, tc.y); got != tc.want {
			t.Errorf("IsOverlapping(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestGenerateAvoidOverlap(t *testing.T) {
	cfg := config.DefaultJumpConfig()
	cfg.Generation.AvoidOverlap = true
	cfg.Generation.OverlapRetries = 50
	cfg.Generation.MinYGap = 60 // consecutive platforms are 45 apart, so each checks its predecessor

	f := NewField(cfg, rand.New(rand.NewSource(5)))
	for i := 0; i < 100; i++ {
		f.Generate(5)
	}

	ps := f.Platforms()
	for i := 1; i < len(ps); i++ {
		for j := 0; j < i; j++ {
			dx := math.Abs(ps[i].X - ps[j].X)
			dy := math.Abs(ps[i].Y - ps[j].Y)
			if dx < 20 && dy < 60 {
				t.Fatalf("platforms %d and %d crowd each other: dx=%v dy=%v", j, i, dx, dy)
			}
		}
	}
}

func TestSetAppearance(t *testing.T) {
	f := newTestField(1)
	f.add(KindStatic, 0, 0)
	f.add(KindMoving, 0, 50)
	f.add(KindBreakable, 0, 100)

	if f.Platforms()[1].Appearance != "platform-moving" {
		t.Errorf("default moving token = %q", f.Platforms()[1].Appearance)
	}

	f.SetAppearance("stone", "", "")
	for _, p := range f.Platforms() {
		if p.Appearance != "stone" {
			t.Errorf("%v platform token = %q, expected fallback to stone", p.Kind, p.Appearance)
		}
	}

	f.SetAppearance("stone", "cloud", "glass")
	f.add(KindBreakable, 0, 150)
	want := []string{"stone", "cloud", "glass", "glass"}
	for i, p := range f.Platforms() {
		if p.Appearance != want[i] {
			t.Errorf("platform %d token = %q, expected %q", i, p.Appearance, want[i])
		}
	}
}
