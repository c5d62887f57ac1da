package jumper

import (
	"fmt"
	"math"

	"github.com/vovakirdan/combo-jump/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	ObstacleChar = '▓'
	CoinChar     = '●'
	GroundChar   = '═'
)

// viewport maps world units onto screen cells. Row 0 holds the HUD and the
// ground line sits one row above the bottom.
type viewport struct {
	sx, sy float64
	ground int
}

func newViewport(f Frame, dst *core.Screen) viewport {
	ground := dst.Height() - 2
	return viewport{
		sx:     float64(dst.Width()) / f.WorldW,
		sy:     float64(max(ground-1, 1)) / f.WorldH,
		ground: ground,
	}
}

// rect converts a world box to screen cells, never smaller than one cell.
func (v viewport) rect(b core.Box) core.Rect {
	x0 := int(math.Floor(b.X * v.sx))
	x1 := max(int(math.Ceil(b.MaxX()*v.sx)), x0+1)
	bottom := v.ground - int(math.Floor(b.Y*v.sy))
	top := min(v.ground-int(math.Ceil(b.MaxY()*v.sy)), bottom-1)
	return core.NewRect(x0, top, x1-x0, bottom-top)
}

func (v viewport) point(x, y float64) (int, int) {
	return int(x * v.sx), v.ground - int(y*v.sy)
}

// Render draws the current run to the screen.
func (g *Game) Render(dst *core.Screen) {
	RenderFrame(dst, g.Frame())
}

// RenderFrame draws a frame projection to the screen.
func RenderFrame(dst *core.Screen, f Frame) {
	dst.Clear()
	if dst.Height() < 4 || dst.Width() < 10 || f.WorldW <= 0 || f.WorldH <= 0 {
		dst.DrawText(0, 0, "too small")
		return
	}
	v := newViewport(f, dst)

	dst.DrawHLine(0, v.ground, dst.Width(), GroundChar, core.ColorGray)

	for _, o := range f.Obstacles {
		fillClipped(dst, v.rect(o.Box), ObstacleChar, o.Color)
	}
	for _, c := range f.Coins {
		fillClipped(dst, v.rect(c.Box), CoinChar, c.Color)
	}
	fillClipped(dst, v.rect(f.Player.Box), PlayerChar, playerColor(f.Player))

	for _, t := range f.Texts {
		x, y := v.point(t.X, t.Y)
		color := core.ColorBrightRed
		if t.Positive {
			color = core.ColorBrightGreen
		}
		// Keep texts inside the play area, below the HUD
		x = core.Clamp(x-len(t.Text)/2, 0, max(dst.Width()-len(t.Text), 0))
		y = core.Clamp(y, 1, v.ground-1)
		dst.DrawTextColor(x, y, t.Text, color)
	}

	drawHUD(dst, f.HUD)

	if f.Paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if f.GameOver {
		drawCenteredMessage(dst, "TIME UP", fmt.Sprintf("Score: %d", f.HUD.Score))
	}
}

func playerColor(p PlayerView) core.Color {
	switch {
	case p.Hit:
		return core.ColorBrightRed
	case p.Collected:
		return core.ColorBrightGreen
	case p.Powered:
		return core.ColorYellow
	default:
		return core.ColorCyan
	}
}

// fillClipped fills r but never draws over the HUD row.
func fillClipped(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	if r.Y < 1 {
		r.H -= 1 - r.Y
		r.Y = 1
	}
	if r.H <= 0 {
		return
	}
	dst.DrawRect(r, ch, c)
}

func drawHUD(dst *core.Screen, h HUD) {
	left := fmt.Sprintf(" Score: %d  Combo: x%d ", h.Score, h.Combo)
	dst.DrawText(1, 0, left)

	timeColor := core.ColorWhite
	if h.TimeRemaining <= 10 {
		timeColor = core.ColorBrightRed
	}
	right := fmt.Sprintf(" Time: %ds ", int(math.Ceil(h.TimeRemaining)))
	dst.DrawTextColor(dst.Width()-len(right)-1, 0, right, timeColor)

	if h.Boosted {
		dst.DrawTextColor(len(left)+2, 0, "BOOST", core.ColorBlue)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}
