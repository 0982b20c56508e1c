package scrollstage

import (
	"errors"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures a window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Background fills the window before the page is drawn.
	Background Color
	// ShowHUD draws the frame rate, scroll and activation overlay.
	ShowHUD bool
	// Debug enables engine debug logging to stderr.
	Debug bool
	// Config holds the engine tunables.
	Config Config
	// Layout, when set, is called with the new window size before the
	// engine sees a resize, so responsive layouts are settled by the time
	// context groups are re-evaluated. Page.Layout fits here.
	Layout func(Size)
	// Script, when set, replays injected scroll and resize events.
	Script *TestRunner
}

// Run mounts groups under root in a resizable Ebitengine window and drives
// the engine until the window closes. The window's scroll offset comes from
// the mouse wheel, arrow and page keys, and dragging.
func Run(root *Target, groups []*ContextGroup, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1024
	}
	if cfg.Height <= 0 {
		cfg.Height = 768
	}
	if cfg.Title == "" {
		cfg.Title = "scrollstage"
	}

	size := Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}
	if cfg.Layout != nil {
		cfg.Layout(size)
	}
	viewport := NewManualViewport(size.Width, size.Height)
	scroll := NewManualScroll()
	engine := NewEngine(viewport, scroll, cfg.Config)
	engine.SetDebugMode(cfg.Debug)
	if cfg.Script != nil {
		engine.SetTestRunner(cfg.Script)
	}

	teardown, err := engine.Mount(root, groups)
	if err != nil {
		return err
	}
	defer teardown()

	g := &game{
		cfg:      cfg,
		root:     root,
		engine:   engine,
		viewport: viewport,
		scroll:   scroll,
		input:    newScrollInput(scroll),
	}
	g.updateScrollMax()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// game implements ebiten.Game on top of an Engine.
type game struct {
	cfg      RunConfig
	root     *Target
	engine   *Engine
	viewport *ManualViewport
	scroll   *ManualScroll
	input    *scrollInput
	hud      hud

	whitePixel *ebiten.Image
}

func (g *game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.input.update(g.viewport.Size().Height, dt)
	g.scroll.Update(float32(dt))
	g.engine.Update(dt)
	g.updateScrollMax()
	if g.cfg.ShowHUD {
		g.hud.update(g.engine, dt)
	}
	return nil
}

// updateScrollMax bounds scrolling to the document height plus the distance
// active pins hold their element in place.
func (g *game) updateScrollMax() {
	limit := 1.0
	for _, m := range g.engine.Mounts() {
		limit = math.Max(limit, m.ScrollLimit(g.viewport.Size().Height))
	}
	g.scroll.SetMax(limit)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := Size{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	if size != g.viewport.Size() {
		if g.cfg.Layout != nil {
			g.cfg.Layout(size)
		}
		g.viewport.SetSize(size.Width, size.Height)
	}
	return outsideWidth, outsideHeight
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.whitePixel == nil {
		g.whitePixel = ebiten.NewImage(1, 1)
		g.whitePixel.Fill(colorToRGBA(ColorWhite))
	}
	if g.cfg.Background.A > 0 {
		screen.Fill(colorToRGBA(g.cfg.Background))
	}
	bounds := screen.Bounds()
	view := Rect{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}
	offset := g.scroll.Offset()

	var walk func(t *Target)
	walk = func(t *Target) {
		if t.IsDisposed() {
			return
		}
		g.drawTarget(screen, t, view, offset)
		for _, c := range t.children {
			walk(c)
		}
	}
	walk(g.root)

	if g.cfg.ShowHUD {
		g.hud.draw(screen)
	}
}

func (g *game) drawTarget(screen *ebiten.Image, t *Target, view Rect, offset float64) {
	if t.Color.A <= 0 {
		return
	}
	r, alpha := t.ScreenRect(offset)
	if alpha <= 0 || r.Width <= 0 || r.Height <= 0 || !r.Intersects(view) {
		return
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	if t.Rotation != 0 {
		op.GeoM.Translate(-r.Width/2, -r.Height/2)
		op.GeoM.Rotate(t.Rotation * math.Pi / 180)
		op.GeoM.Translate(r.Width/2, r.Height/2)
	}
	op.GeoM.Translate(r.X, r.Y)
	a := t.Color.A * alpha
	op.ColorScale.Scale(float32(t.Color.R*a), float32(t.Color.G*a), float32(t.Color.B*a), float32(a))
	screen.DrawImage(g.whitePixel, &op)

	// The debug font cannot fade, so labels only show once mostly visible.
	if t.Label != "" && alpha >= 0.5 {
		ebitenutil.DebugPrintAt(screen, t.Label, int(r.X)+12, int(r.Y)+12)
	}
}

func colorToRGBA(c Color) color.RGBA {
	to8 := func(v float64) uint8 { return uint8(clamp01(v)*255 + 0.5) }
	a := clamp01(c.A)
	return color.RGBA{to8(c.R * a), to8(c.G * a), to8(c.B * a), to8(a)}
}
