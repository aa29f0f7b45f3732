// Package gui is a windowed frontend for the flap simulation built on Ebiten.
// The logical screen is the field itself, one pixel per unit.
package gui

import (
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flap/internal/config"
	"github.com/vovakirdan/tui-flap/internal/core"
	"github.com/vovakirdan/tui-flap/internal/sim"
)

// groundHeight is the ground band drawn above the field's bottom edge.
const groundHeight = 75

var (
	colorSky      = color.RGBA{R: 0x70, G: 0xc5, B: 0xce, A: 0xff}
	colorObstacle = color.RGBA{R: 0x5e, G: 0xa5, B: 0x2e, A: 0xff}
	colorGround   = color.RGBA{R: 0xde, G: 0xd8, B: 0x95, A: 0xff}
	colorBody     = color.RGBA{R: 0xf8, G: 0xd0, B: 0x30, A: 0xff}
	colorBeak     = color.RGBA{R: 0xf0, G: 0x80, B: 0x30, A: 0xff}
	colorShade    = color.RGBA{A: 0x90}
)

// Game implements ebiten.Game around one session.
type Game struct {
	session *sim.Session
	clock   *sim.WallClock
	cfg     config.FlapConfig
	logger  *log.Logger
	body    *ebiten.Image
	paused  bool
}

// New creates a game for cfg. seed drives the obstacle offsets.
func New(cfg config.FlapConfig, seed int64, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		session: sim.New(cfg, seed),
		clock:   sim.NewWallClock(),
		cfg:     cfg,
		logger:  logger,
	}
}

// Update implements ebiten.Game. Ebiten calls it at a fixed rate, but the
// step size is still measured from the wall clock.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		if !g.paused {
			g.clock.Reset()
		}
	}
	if g.paused {
		return nil
	}

	if tapped() {
		g.log(g.session.Tap())
	}
	g.log(g.session.Step(g.clock.Tick()))
	return nil
}

// tapped reports a tap from the keyboard, the mouse or a touch screen.
func tapped() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyUp) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}

func (g *Game) log(res sim.StepResult) {
	for _, e := range res.Events {
		switch e.Kind {
		case sim.EventCrashed:
			g.logger.Debug("crashed", "score", e.Score, "cause", e.Cause)
		case sim.EventScored, sim.EventRestarted:
			g.logger.Debug(e.Kind.String(), "score", e.Score)
		}
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.session.Snapshot()
	screen.Fill(colorSky)

	field := core.NewRect(0, 0, snap.FieldW, snap.FieldH)
	for _, r := range snap.Pair.Rects() {
		if !r.Intersects(field) {
			continue
		}
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), colorObstacle, false)
	}

	vector.FillRect(screen, 0, float32(snap.FieldH-groundHeight), float32(snap.FieldW), groundHeight, colorGround, false)

	g.drawBody(screen, snap)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", snap.Score), 8, 8)

	switch {
	case snap.Mode == sim.ModeGameOver:
		g.drawBanner(screen, "GAME OVER", fmt.Sprintf("score %d - %s", snap.Score, snap.Cause), "tap to restart")
	case g.paused:
		g.drawBanner(screen, "PAUSED")
	}
}

// drawBody draws the sprite box rotated around its centre by the tilt.
func (g *Game) drawBody(screen *ebiten.Image, snap sim.Snapshot) {
	w, h := g.cfg.Body.Width, g.cfg.Body.Height
	if g.body == nil {
		g.body = ebiten.NewImage(int(w), int(h))
		g.body.Fill(colorBody)
		vector.FillRect(g.body, float32(w*0.75), float32(h*0.4), float32(w*0.25), float32(h*0.25), colorBeak, false)
		vector.DrawFilledCircle(g.body, float32(w*0.65), float32(h*0.25), float32(h*0.1), color.Black, true)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(snap.Rotation)
	op.GeoM.Translate(snap.BodyX+w/2, snap.BodyY+h/2)
	screen.DrawImage(g.body, op)
}

// drawBanner shades a strip across the middle of the field and prints lines
// centered on it. The debug font is 6x16 pixels per glyph.
func (g *Game) drawBanner(screen *ebiten.Image, lines ...string) {
	fw, fh := g.cfg.Field.Width, g.cfg.Field.Height
	top := fh/2 - float64(len(lines))*8 - 8
	vector.FillRect(screen, 0, float32(top), float32(fw), float32(len(lines)*16+16), colorShade, false)

	for i, line := range lines {
		x := int(fw)/2 - len(line)*3
		ebitenutil.DebugPrintAt(screen, line, x, int(top)+8+i*16)
	}
}

// Layout implements ebiten.Game. The logical screen is the field.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.cfg.Field.Width), int(g.cfg.Field.Height)
}

// Run opens a window sized to the field and blocks until it is closed.
func Run(cfg config.FlapConfig, seed int64, logger *log.Logger) error {
	ebiten.SetWindowSize(int(cfg.Field.Width), int(cfg.Field.Height))
	ebiten.SetWindowTitle("flap")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(New(cfg, seed, logger)); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}
