package artillery

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/artillery/internal/core"
	"github.com/vovakirdan/artillery/internal/games/artillery/engine"
)

// Visual characters for rendering
const (
	GroundChar = '▀'
	CannonChar = '█'
	BallChar   = '●'
	TrailChar  = '·'
	AboveChar  = '^' // ball is above the visible sky
)

// Minimum playable terminal size.
const (
	MinScreenW = 40
	MinScreenH = 12
)

// layout maps world coordinates onto the screen. Row 0 is the HUD, the last
// row is the status line and the ground sits just above it.
type layout struct {
	w, h      int
	groundRow int
	x         core.Span // world x onto columns
	y         core.Span // world height onto rows above the ground
}

func newLayout(dst *core.Screen, f engine.Field, height float64) layout {
	ground := dst.Height() - 2
	return layout{
		w:         dst.Width(),
		h:         dst.Height(),
		groundRow: ground,
		x:         core.Span{Lo: f.XLower, Hi: f.XUpper, Cells: dst.Width()},
		y:         core.Span{Lo: 0, Hi: height, Cells: ground - 1},
	}
}

// col converts a world x into a screen column.
func (l layout) col(x float64) int {
	return l.x.Cell(x)
}

// row converts a world height into a screen row. ok is false above the sky.
func (l layout) row(y float64) (int, bool) {
	r := l.groundRow - 1 - l.y.Cell(y)
	return r, r >= 1
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}
	if g.match == nil {
		return
	}

	l := newLayout(dst, g.match.Field(), g.cfg.Field.Height)

	dst.DrawHLine(0, l.groundRow, l.w, GroundChar)
	g.drawTrail(dst, l)
	for i, p := range g.match.Players() {
		g.drawCannon(dst, l, p, i == g.match.CurrentPlayerIndex() && !g.gameOver)
	}
	g.drawBall(dst, l)
	g.drawHUD(dst, l)
	g.drawStatus(dst, l)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver && g.winner >= 0 {
		p := g.match.Players()[g.winner]
		drawCenteredMessage(dst,
			fmt.Sprintf("%s WINS", strings.ToUpper(colorName(p.Color()))),
			fmt.Sprintf("%s  |  Press R to restart", g.scoreLine()))
	}
}

func (g *Game) drawTrail(dst *core.Screen, l layout) {
	for _, pt := range g.trail {
		r, ok := l.row(pt.y)
		if !ok {
			continue
		}
		dst.SetColored(l.col(pt.x), r, TrailChar, core.ColorGray)
	}
}

func (g *Game) drawBall(dst *core.Screen, l layout) {
	p, ok := g.turns.InFlight()
	if !ok {
		return
	}
	c := colorFor(g.match.CurrentPlayer().Color())
	if r, ok := l.row(p.Y()); ok {
		dst.SetColored(l.col(p.X()), r, BallChar, c)
	} else {
		dst.SetColored(l.col(p.X()), 1, AboveChar, c)
	}
}

// drawCannon draws a cannon resting on the ground, with a barrel showing
// the pending aim for the player whose turn it is.
func (g *Game) drawCannon(dst *core.Screen, l layout, p *engine.Player, active bool) {
	c := colorFor(p.Color())
	width := l.x.Length(g.match.CannonSize())
	left := l.col(p.X()) - width/2
	rows := l.y.Length(g.match.CannonSize())
	for dy := 1; dy <= rows; dy++ {
		for dx := 0; dx < width; dx++ {
			dst.SetColored(left+dx, l.groundRow-dy, CannonChar, c)
		}
	}

	if !active {
		return
	}
	launch := p.LaunchAngle(g.pending[g.match.CurrentPlayerIndex()].Angle)
	glyph, dx, dy := barrel(launch)
	top := l.groundRow - rows - 1
	cx := l.col(p.X())
	dst.SetColored(cx+dx, top+dy, glyph, c)
}

// barrel picks a glyph and offset for a launch angle in degrees.
func barrel(angle float64) (rune, int, int) {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	switch {
	case a < 22.5 || a >= 337.5:
		return '─', 1, 1
	case a < 67.5:
		return '/', 1, 0
	case a < 112.5:
		return '│', 0, 0
	case a < 157.5:
		return '\\', -1, 0
	case a < 202.5:
		return '─', -1, 1
	case a < 247.5:
		return '/', -1, 1
	case a < 292.5:
		return '│', 0, 1
	default:
		return '\\', 1, 1
	}
}

func (g *Game) scoreLine() string {
	ps := g.match.Players()
	return fmt.Sprintf("%s %d : %d %s",
		colorName(ps[0].Color()), ps[0].Score(), ps[1].Score(), colorName(ps[1].Color()))
}

func (g *Game) drawHUD(dst *core.Screen, l layout) {
	ps := g.match.Players()
	left := fmt.Sprintf(" %s %d", colorName(ps[0].Color()), ps[0].Score())
	right := fmt.Sprintf("%d %s ", ps[1].Score(), colorName(ps[1].Color()))
	dst.DrawTextColored(0, 0, left, colorFor(ps[0].Color()))
	dst.DrawTextColored(l.w-len(right), 0, right, colorFor(ps[1].Color()))

	center := fmt.Sprintf("Round %d  Wind %s", g.match.Round(), windGauge(g.match.Wind(), g.match.Config().MaxWind))
	if g.cfg.Gameplay.WinScore > 0 {
		center += fmt.Sprintf("  First to %d", g.cfg.Gameplay.WinScore)
	}
	dst.DrawTextCentered(0, center)
}

// windGauge renders wind as arrows pointing downwind plus its strength.
func windGauge(wind, maxWind float64) string {
	const maxArrows = 5
	n := 0
	if maxWind > 0 {
		n = int(math.Ceil(math.Abs(wind) / maxWind * maxArrows))
	}
	n = core.Clamp(n, 0, maxArrows)
	switch {
	case n == 0:
		return "calm"
	case wind < 0:
		return fmt.Sprintf("%s %.1f", strings.Repeat("<", n), math.Abs(wind))
	default:
		return fmt.Sprintf("%.1f %s", wind, strings.Repeat(">", n))
	}
}

func (g *Game) drawStatus(dst *core.Screen, l layout) {
	y := l.h - 1
	if g.gameOver {
		dst.DrawTextCentered(y, g.message)
		return
	}
	cur := g.match.CurrentPlayer()
	var text string
	if _, flying := g.turns.InFlight(); flying {
		text = fmt.Sprintf("%s fires...", colorName(cur.Color()))
	} else {
		aim := g.PendingAim()
		text = fmt.Sprintf("%s to fire  angle %.0f  velocity %.0f", colorName(cur.Color()), aim.Angle, aim.Velocity)
	}
	if g.message != "" {
		text = g.message + "  |  " + text
	}
	dst.DrawTextColored(1, y, text, colorFor(cur.Color()))
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// colorFor maps a player color tag onto a screen color. Unknown tags are
// drawn white.
func colorFor(tag string) core.Color {
	if c, ok := core.ParseColor(tag); ok {
		return c
	}
	return core.ColorWhite
}

// colorName capitalizes a color tag for display.
func colorName(tag string) string {
	if tag == "" {
		return tag
	}
	return strings.ToUpper(tag[:1]) + tag[1:]
}
