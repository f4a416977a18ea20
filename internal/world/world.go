// Package world advances the boat and the tile grid in lockstep and exposes
// the state frontends draw.
package world

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"biomes/internal/config"
	"biomes/internal/core"
	"biomes/internal/logger"
	"biomes/internal/nav"
	"biomes/internal/telemetry"
	"biomes/internal/terrain"
	"biomes/internal/tiles"
)

// World owns one terrain generator, the tile grid and the boat.
type World struct {
	cfg      config.Config
	viewport core.Size

	gen  *terrain.Generator
	grid *tiles.Grid
	boat *nav.Boat

	steps  uint64
	tracer trace.Tracer
}

// New validates cfg and builds a world sized for viewport.
func New(cfg config.Config, viewport core.Size) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{cfg: cfg, viewport: viewport, tracer: telemetry.Tracer("world")}
	if err := w.build(); err != nil {
		return nil, err
	}
	logger.Log.WithFields(map[string]any{
		"viewport": fmt.Sprintf("%dx%d", viewport.W, viewport.H),
		"tiles":    len(w.grid.Tiles()),
		"noise":    cfg.Noise,
		"seed":     cfg.Seed,
	}).Info("world ready")
	return w, nil
}

func (w *World) build() error {
	gen, err := terrain.New(w.cfg)
	if err != nil {
		return err
	}
	grid, err := tiles.New(w.viewport, w.cfg.TileSize, gen)
	if err != nil {
		return fmt.Errorf("world: %w", err)
	}
	cx, cy := w.centre()
	w.gen = gen
	w.grid = grid
	w.boat = nav.NewBoat(gen, nav.Options{
		Speed:       w.cfg.BoatSpeed,
		SeaLevel:    w.cfg.SeaLevel,
		TrailFrames: w.cfg.TrailFrames,
		TrailPeriod: w.cfg.TrailPeriod,
		X:           cx,
		Y:           cy,
	})
	w.steps = 0
	return nil
}

// Step runs one logical tick: try to move the boat, scroll the tiles by the
// opposite of an accepted displacement and advance the wake animation. It
// reports whether the boat moved.
func (w *World) Step(dir core.Direction) bool {
	moved := w.boat.Move(dir)
	if moved {
		dx, dy := dir.Delta(w.boat.Speed())
		w.grid.Scroll(-dx, -dy)
	}
	w.boat.Tick()
	w.steps++
	return moved
}

// Reset rebuilds the grid and the boat from the current configuration.
func (w *World) Reset() error {
	if err := w.build(); err != nil {
		return err
	}
	logger.Log.Info("world reset")
	return nil
}

// Name identifies the world on HUD titles.
func (w *World) Name() string { return "biomes" }

// Size returns the viewport the grid covers.
func (w *World) Size() core.Size { return w.viewport }

// Config returns the active configuration, including HUD edits.
func (w *World) Config() config.Config { return w.cfg }

// Grid exposes the tile cache for drawing.
func (w *World) Grid() *tiles.Grid { return w.grid }

// Boat exposes the navigation model.
func (w *World) Boat() *nav.Boat { return w.boat }

// Terrain returns the generator shared by tiles and navigation.
func (w *World) Terrain() *terrain.Generator { return w.gen }

// Steps counts ticks since construction or the last reset.
func (w *World) Steps() uint64 { return w.steps }

// BoatScreen returns where the boat is drawn. The boat stays at the
// viewport centre while the world scrolls beneath it.
func (w *World) BoatScreen() (x, y float64) { return w.centre() }

// Band names the biome under the boat.
func (w *World) Band() string {
	x, y := w.boat.Position()
	return w.gen.Band(x, y)
}

// ScreenToWorld converts a viewport point to world coordinates.
func (w *World) ScreenToWorld(sx, sy float64) (x, y float64) {
	bx, by := w.boat.Position()
	cx, cy := w.centre()
	return sx + bx - cx, sy + by - cy
}

func (w *World) centre() (float64, float64) {
	return float64(w.viewport.W) / 2, float64(w.viewport.H) / 2
}

// reconfigure validates next and applies it. Terrain changes rebuild the
// generator and re-render every tile so drawing and collision agree.
func (w *World) reconfigure(key string, next config.Config) bool {
	if err := next.Validate(); err != nil {
		logger.Log.WithError(err).WithField("key", key).Warn("parameter rejected")
		return false
	}
	prev := w.cfg
	w.cfg = next
	w.boat.SetSpeed(next.BoatSpeed)
	w.boat.SetSeaLevel(next.SeaLevel)
	if !terrainChanged(prev, next) {
		return true
	}

	_, span := w.tracer.Start(context.Background(), "world.reconfigure",
		trace.WithAttributes(attribute.String("key", key)))
	defer span.End()
	gen, err := terrain.New(next)
	if err != nil {
		span.RecordError(err)
		logger.Log.WithError(err).WithField("key", key).Warn("terrain rebuild failed")
		w.cfg = prev
		w.boat.SetSpeed(prev.BoatSpeed)
		w.boat.SetSeaLevel(prev.SeaLevel)
		return false
	}
	w.gen = gen
	w.boat.SetSampler(gen)
	w.grid.SetRenderer(gen)
	logger.Log.WithFields(map[string]any{
		"key":         key,
		"regenerated": w.grid.Regenerated(),
	}).Debug("terrain rebuilt")
	return true
}

func terrainChanged(a, b config.Config) bool {
	return a.Fractal() != b.Fractal() || a.Noise != b.Noise || a.Seed != b.Seed || a.Ramp != b.Ramp
}
