package window

import (
	"image/color"

	"github.com/vovakirdan/tui-jump/internal/games/jump"
)

var (
	background = color.RGBA{248, 244, 228, 255}
	guide      = color.RGBA{220, 214, 196, 255}
	fallback   = color.RGBA{200, 0, 200, 255}
)

// tokenColors maps appearance tokens to fill colours.
var tokenColors = map[string]color.RGBA{
	"platform-static":    {96, 170, 60, 255},
	"platform-moving":    {60, 140, 210, 255},
	"platform-breakable": {170, 110, 50, 255},
	"player-left":        {230, 190, 40, 255},
	"player-right":       {230, 190, 40, 255},
}

// colorFor returns the colour of an appearance token, or a loud fallback.
func colorFor(token string) color.RGBA {
	if c, ok := tokenColors[token]; ok {
		return c
	}
	return fallback
}

// platformColor fades a breaking platform to half opacity.
func platformColor(p jump.PlatformView) color.RGBA {
	c := colorFor(p.Appearance)
	if p.State == jump.StateBreaking {
		// premultiplied alpha
		c = color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A / 2}
	}
	return c
}
