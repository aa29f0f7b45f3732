package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tui-flap/internal/config"
	"github.com/vovakirdan/tui-flap/internal/core"
	"github.com/vovakirdan/tui-flap/internal/sim"
)

// groundHeight is the ground band drawn above the field's bottom edge, in units.
const groundHeight = 75

// Glyphs used by the renderer.
const (
	glyphObstacle = '█'
	glyphBody     = '█'
	glyphGround   = '▒'
	glyphGrass    = '▀'
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Renderer draws snapshots onto a cell screen, stretching the field's unit
// coordinates to whatever size the screen has.
type Renderer struct {
	body config.BodyConfig
}

// NewRenderer creates a renderer for sessions using cfg.
func NewRenderer(cfg config.FlapConfig) Renderer {
	return Renderer{body: cfg.Body}
}

// Draw renders one frame. The screen is cleared first.
func (r Renderer) Draw(s *core.Screen, snap sim.Snapshot, paused bool) {
	s.Clear()
	if s.Width() == 0 || s.Height() == 0 || snap.FieldW <= 0 || snap.FieldH <= 0 {
		return
	}
	v := viewport{sx: float64(s.Width()) / snap.FieldW, sy: float64(s.Height()) / snap.FieldH}

	field := core.NewRect(0, 0, snap.FieldW, snap.FieldH)
	for _, rect := range snap.Pair.Rects() {
		if !rect.Intersects(field) {
			continue
		}
		x0, y0, x1, y1 := v.rect(rect)
		s.FillRect(x0, y0, x1, y1, glyphObstacle, core.ColorGreen)
	}

	groundTop := v.y(snap.FieldH - groundHeight)
	s.DrawHLine(0, groundTop, s.Width(), glyphGrass, core.ColorBrightGreen)
	s.FillRect(0, groundTop+1, s.Width(), s.Height(), glyphGround, core.ColorOrange)

	r.drawBody(s, v, snap)

	s.DrawText(1, 0, fmt.Sprintf("Score: %d", snap.Score), core.ColorBrightYellow)

	mid := s.Height() / 2
	switch {
	case snap.Mode == sim.ModeGameOver:
		detail := fmt.Sprintf("score %d - %s", snap.Score, snap.Cause)
		w := runewidth.StringWidth(detail) + 4
		s.FillRect((s.Width()-w)/2, mid-2, (s.Width()-w)/2+w, mid+3, ' ', core.ColorDefault)
		s.DrawBox((s.Width()-w)/2, mid-2, w, 5, core.ColorRed)
		drawCentered(s, mid-1, "GAME OVER", core.ColorRed)
		drawCentered(s, mid, detail, core.ColorWhite)
		drawCentered(s, mid+1, "tap to restart", core.ColorGray)
	case paused:
		drawCentered(s, mid, "PAUSED", core.ColorCyan)
	}
}

// drawBody fills the body's sprite box and puts a beak on its right edge
// that follows the tilt.
func (r Renderer) drawBody(s *core.Screen, v viewport, snap sim.Snapshot) {
	x0, y0, x1, y1 := v.rect(core.NewRect(snap.BodyX, snap.BodyY, r.body.Width, r.body.Height))
	s.FillRect(x0, y0, x1, y1, glyphBody, core.ColorBrightYellow)
	s.Set(x1, (y0+y1-1)/2, beak(snap.Rotation), core.ColorOrange)
}

// beak picks a glyph for the body's rotation in radians.
func beak(rotation float64) rune {
	switch {
	case rotation < -0.15:
		return '/'
	case rotation > 0.15:
		return '\\'
	default:
		return '>'
	}
}

// drawCentered writes text centered on row y, measuring display width.
func drawCentered(s *core.Screen, y int, text string, c core.Color) {
	x := (s.Width() - runewidth.StringWidth(text)) / 2
	s.DrawText(max(x, 0), y, text, c)
}

// centerText pads text on the left so it is centered within width.
func centerText(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// viewport scales field units to cells.
type viewport struct {
	sx, sy float64
}

func (v viewport) x(u float64) int { return int(math.Round(u * v.sx)) }
func (v viewport) y(u float64) int { return int(math.Round(u * v.sy)) }

// rect converts a unit rectangle to a half-open cell range at least one cell
// in each direction.
func (v viewport) rect(r core.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = v.x(r.X), v.y(r.Y)
	x1, y1 = v.x(r.Right()), v.y(r.Bottom())
	return x0, y0, max(x1, x0+1), max(y1, y0+1)
}
