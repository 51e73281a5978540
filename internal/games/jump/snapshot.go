package jump

import "github.com/vovakirdan/tui-jump/internal/core"

// PlatformView is the presentation data of one platform.
type PlatformView struct {
	Rect       core.RectF
	Kind       Kind
	State      State
	Appearance string
}

// BodyView is the presentation data of the body.
type BodyView struct {
	Rect       core.RectF
	Facing     Facing
	Airborne   bool
	Appearance string
}

// Snapshot is a copy of everything a presentation sink needs for one frame.
// Coordinates are world pixels.
type Snapshot struct {
	Phase       Phase
	Paused      bool
	Score       int
	Best        int
	Level       int
	Width       float64
	Height      float64
	TriggerLine float64
	Body        BodyView
	Platforms   []PlatformView
}

// Snapshot copies the current world for rendering outside the terminal.
func (g *Game) Snapshot() Snapshot {
	st := g.State()
	s := Snapshot{
		Phase:       g.phase,
		Paused:      g.paused,
		Score:       st.Score,
		Best:        st.Best,
		Level:       st.Level,
		Width:       g.cfg.World.Width,
		Height:      g.cfg.World.Height,
		TriggerLine: g.cfg.Camera.TriggerLine,
	}
	if g.body == nil {
		return s
	}

	appearance := g.cfg.Appearance.PlayerRight
	if g.body.Facing == FacingLeft {
		appearance = g.cfg.Appearance.PlayerLeft
	}
	s.Body = BodyView{
		Rect:       g.body.Rect(),
		Facing:     g.body.Facing,
		Airborne:   g.body.Airborne,
		Appearance: appearance,
	}

	s.Platforms = make([]PlatformView, 0, g.field.Len())
	for _, p := range g.field.Platforms() {
		if !p.Visible() {
			continue
		}
		s.Platforms = append(s.Platforms, PlatformView{
			Rect:       p.Rect(),
			Kind:       p.Kind,
			State:      p.State,
			Appearance: p.Appearance,
		})
	}
	return s
}
