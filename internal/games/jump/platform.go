package jump

import (
	"github.com/vovakirdan/tui-jump/internal/config"
	"github.com/vovakirdan/tui-jump/internal/core"
)

// Kind is the behavioral variant of a platform.
type Kind int

const (
	KindStatic Kind = iota
	KindMoving
	KindBreakable
)

// String returns the kind name used in logs and snapshots.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindMoving:
		return "moving"
	case KindBreakable:
		return "breakable"
	default:
		return "unknown"
	}
}

// State is the lifecycle stage of a platform.
type State int

const (
	StateIntact State = iota
	StateBreaking
	StateRemoved
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIntact:
		return "intact"
	case StateBreaking:
		return "breaking"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Platform is a rectangle the body can land on.
// X, Y is the top-left corner; Y is the landing surface.
type Platform struct {
	X, Y       float64
	W, H       float64
	Kind       Kind
	State      State
	Fuse       int // ticks left while Breaking
	Speed      float64
	Dir        float64 // +1 right, -1 left
	Appearance string

	screenW   float64
	fuseTicks int
}

// NewPlatform creates an intact platform of the given kind.
func NewPlatform(kind Kind, x, y float64, cfg config.PlatformsConfig, screenW float64) *Platform {
	p := &Platform{
		X:         x,
		Y:         y,
		W:         cfg.Width,
		H:         cfg.Height,
		Kind:      kind,
		State:     StateIntact,
		Dir:       1,
		screenW:   screenW,
		fuseTicks: cfg.BreakFuse,
	}
	if kind == KindMoving {
		p.Speed = cfg.MovingSpeed
	}
	return p
}

// Update advances the platform by one tick.
func (p *Platform) Update() {
	if p.State == StateRemoved {
		return
	}

	switch p.Kind {
	case KindStatic:
	case KindMoving:
		p.X += p.Speed * p.Dir
		// Reflect off the edges; the edge itself is a legal position
		if p.X <= 0 {
			p.Dir = 1
		} else if p.X+p.W >= p.screenW {
			p.Dir = -1
		}
	case KindBreakable:
		if p.State != StateBreaking {
			return
		}
		if p.Fuse > 0 {
			p.Fuse--
		}
		if p.Fuse == 0 {
			p.State = StateRemoved
		}
	}
}

// StartBreaking lights the fuse of an intact breakable platform.
// Any other call is ignored.
func (p *Platform) StartBreaking() bool {
	if p.Kind != KindBreakable || p.State != StateIntact {
		return false
	}
	p.State = StateBreaking
	p.Fuse = p.fuseTicks
	return true
}

// Collidable reports whether the body can land on the platform.
// A breaking platform still holds until its fuse runs out.
func (p *Platform) Collidable() bool {
	return p.State != StateRemoved
}

// Visible reports whether the platform should be drawn.
func (p *Platform) Visible() bool {
	return p.State != StateRemoved
}

// Rect returns the platform's world rectangle.
func (p *Platform) Rect() core.RectF {
	return core.NewRectF(p.X, p.Y, p.W, p.H)
}
