package jump

import (
	"math"

	"github.com/vovakirdan/tui-jump/internal/config"
	"github.com/vovakirdan/tui-jump/internal/core"
)

// Facing is the horizontal direction the body last moved in.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

// Body is the player-controlled rectangle.
// Y is the feet line: the body occupies [Y-H, Y) vertically.
type Body struct {
	X, Y      float64
	W, H      float64
	VelocityY float64
	Airborne  bool
	Facing    Facing

	gravity     float64
	jumpImpulse float64
	stepX       float64
	footHeight  float64
	screenW     float64
}

// Landing describes a touchdown found by Integrate.
type Landing struct {
	Platform     *Platform
	BreakStarted bool
}

// NewBody creates a grounded body at the configured start position.
func NewBody(cfg config.JumpConfig) *Body {
	b := &Body{
		W:           cfg.Player.Width,
		H:           cfg.Player.Height,
		gravity:     cfg.Physics.Gravity,
		jumpImpulse: cfg.Physics.JumpImpulse,
		stepX:       cfg.Player.StepX,
		footHeight:  cfg.Physics.FootHeight,
		screenW:     cfg.World.Width,
	}
	b.Reset(cfg.Player.StartX, cfg.Player.StartY)
	return b
}

// Reset repositions the body and puts it at rest on the ground.
func (b *Body) Reset(x, y float64) {
	b.X = x
	b.Y = y
	b.VelocityY = 0
	b.Airborne = false
	b.Facing = FacingRight
}

// MoveRight steps right, wrapping to the left edge past the screen.
func (b *Body) MoveRight() {
	b.MoveHorizontal(1)
}

// MoveLeft steps left, wrapping to the right edge past the screen.
func (b *Body) MoveLeft() {
	b.MoveHorizontal(-1)
}

// MoveHorizontal steps in the sign of dir. Zero is a no-op.
func (b *Body) MoveHorizontal(dir int) {
	switch {
	case dir > 0:
		b.X += b.stepX
		b.Facing = FacingRight
		if b.X > b.screenW {
			b.X = -b.W
		}
	case dir < 0:
		b.X -= b.stepX
		b.Facing = FacingLeft
		if b.X < -b.W {
			b.X = b.screenW
		}
	}
}

// Jump launches a grounded body. It reports whether the jump happened.
func (b *Body) Jump() bool {
	if b.Airborne {
		return false
	}
	b.VelocityY = b.jumpImpulse
	b.Airborne = true
	return true
}

// Integrate applies gravity and moves the body for one tick.
// Movement is split into substeps so thin platforms are not skipped at speed;
// the first platform hit in slice order ends the tick.
func (b *Body) Integrate(platforms []*Platform) (Landing, bool) {
	if !b.Airborne {
		return Landing{}, false
	}

	b.VelocityY += b.gravity
	steps := max(1, core.Round(math.Abs(b.VelocityY)))
	dy := b.VelocityY / float64(steps)

	for i := 0; i < steps; i++ {
		b.Y += dy
		for _, p := range platforms {
			wasIntact := p.State == StateIntact
			if b.CheckPlatformCollision(p) {
				return Landing{
					Platform:     p,
					BreakStarted: p.Kind == KindBreakable && wasIntact,
				}, true
			}
		}
	}
	return Landing{}, false
}

// CheckPlatformCollision lands the body on p when its foot overlaps p
// while not moving up. Breakable platforms start breaking on landing.
func (b *Body) CheckPlatformCollision(p *Platform) bool {
	if b.VelocityY < 0 || !p.Collidable() {
		return false
	}
	if !b.FootRect().Intersects(p.Rect()) {
		return false
	}

	b.Y = p.Y
	b.VelocityY = 0
	b.Airborne = false
	if p.Kind == KindBreakable {
		p.StartBreaking()
	}
	return true
}

// FootRect is the thin strip just above the feet line used for landing.
func (b *Body) FootRect() core.RectF {
	return core.NewRectF(b.X, b.Y-b.footHeight, b.W, b.footHeight)
}

// Rect returns the full body rectangle.
func (b *Body) Rect() core.RectF {
	return core.NewRectF(b.X, b.Y-b.H, b.W, b.H)
}

// PeakRise returns how far a jump lifts the feet line under the discrete integrator.
func PeakRise(gravity, jumpImpulse float64) float64 {
	if gravity <= 0 || jumpImpulse >= 0 {
		return 0
	}
	rise := 0.0
	for v := jumpImpulse + gravity; v < 0; v += gravity {
		rise -= v
	}
	return rise
}
