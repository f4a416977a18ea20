//go:build ebiten

package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"biomes/internal/core"
	"biomes/internal/logger"
	"biomes/internal/render"
	"biomes/internal/ui"
	"biomes/internal/world"
)

// Game adapts a World to the ebiten.Game interface.
type Game struct {
	world   *world.World
	painter *render.TilePainter
	boat    *render.BoatSprite
	overlay *ui.Overlay
	hud     *ui.HUD

	opts    Options
	showHUD bool
}

// New constructs a Game for the provided world.
func New(w *world.World, opts Options) *Game {
	g := &Game{
		world:   w,
		painter: render.NewTilePainter(w.Grid()),
		boat:    render.NewBoatSprite(opts.BoatSize, w.Config().TrailFrames),
		overlay: ui.NewOverlay(w),
		opts:    opts,
	}
	if opts.HUDWidth > 0 {
		g.hud = ui.NewHUD(w, opts.HUDWidth)
		g.showHUD = true
	}
	return g
}

// Reset rebuilds the world from its current configuration.
func (g *Game) Reset() {
	if err := g.world.Reset(); err != nil {
		logger.Log.WithError(err).Error("reset failed")
		return
	}
	g.painter.Reset()
}

// Update handles per-frame logic and advances the world by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) && g.hud != nil {
		g.showHUD = !g.showHUD
	}

	g.overlay.Update()
	if g.showHUD {
		g.hud.Update(g.hudOffset())
	}

	dir := core.DirectionFromKeys(
		ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
	)
	g.world.Step(dir)
	return nil
}

// Draw renders the tiles, the boat and the optional overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Draw(screen, g.world.Grid())
	b := g.world.Boat()
	x, y := g.world.BoatScreen()
	g.boat.Draw(screen, x, y, b.Heading(), b.Afloat(), b.TrailFrame())
	g.overlay.Draw(screen)
	if g.showHUD {
		g.hud.Draw(screen, g.hudOffset(), 1)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.world.Size()
	return s.W, s.H
}

func (g *Game) hudOffset() int {
	return g.world.Size().W - g.opts.HUDWidth
}
