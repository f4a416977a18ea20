// Package tiles keeps a fixed ring of rendered tiles around the viewport and
// recycles the ones that scroll off one edge onto the opposite edge.
package tiles

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"biomes/internal/core"
	"biomes/internal/logger"
	"biomes/internal/telemetry"
)

// Renderer fills a size*size RGBA buffer for the tile at map coordinates.
type Renderer interface {
	RenderTile(pix []byte, mapX, mapY, size int)
}

// Tile is one cached square of the world.
type Tile struct {
	MapX, MapY int
	// X, Y is the exact screen position. PX, PY is the whole pixel the tile
	// is drawn at; neighbouring tiles always differ by exactly the tile size.
	X, Y   float64
	PX, PY int
	Pix    []byte
	// Gen increments every time Pix is re-rendered.
	Gen uint64
}

// Grid owns the tiles covering the viewport plus a one tile margin.
//
// Tile positions are derived from one grid-wide offset, the screen position
// of map tile (0, 0), split into whole pixels and a fraction in [0, 1).
type Grid struct {
	size     int
	ring     core.Ring
	tiles    []Tile
	renderer Renderer

	offX, offY   int
	fracX, fracY float64
	minX, minY   int

	regenerated uint64
	tracer      trace.Tracer
}

// New allocates and synchronously renders a grid for viewport.
func New(viewport core.Size, tileSize int, r Renderer) (*Grid, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("tiles: tile size must be positive, got %d", tileSize)
	}
	if viewport.W <= 0 || viewport.H <= 0 {
		return nil, fmt.Errorf("tiles: viewport must be positive, got %dx%d", viewport.W, viewport.H)
	}
	if r == nil {
		return nil, fmt.Errorf("tiles: renderer is required")
	}
	cols := ceilDiv(viewport.W, tileSize) + 2
	rows := ceilDiv(viewport.H, tileSize) + 2
	g := &Grid{
		size:     tileSize,
		ring:     core.NewRing(cols, rows),
		tiles:    make([]Tile, cols*rows),
		renderer: r,
		minX:     -1,
		minY:     -1,
		tracer:   telemetry.Tracer("tiles"),
	}

	_, span := g.tracer.Start(context.Background(), "tiles.init",
		trace.WithAttributes(attribute.Int("cols", cols), attribute.Int("rows", rows), attribute.Int("tile_size", tileSize)))
	defer span.End()

	pixLen := tileSize * tileSize * 4
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			mx, my := x-1, y-1
			t := &g.tiles[g.ring.Index(mx, my)]
			t.MapX, t.MapY = mx, my
			g.place(t)
			t.Pix = make([]byte, pixLen)
			g.render(t)
		}
	}
	logger.Log.WithFields(map[string]any{
		"cols": cols, "rows": rows, "tile_size": tileSize,
	}).Debug("tile grid initialized")
	return g, nil
}

// Dims returns the number of tile columns and rows.
func (g *Grid) Dims() (cols, rows int) { return g.ring.W, g.ring.H }

// TileSize returns the tile edge length in pixels.
func (g *Grid) TileSize() int { return g.size }

// Tiles exposes the tiles for rendering. Callers must not modify them.
func (g *Grid) Tiles() []Tile { return g.tiles }

// Regenerated reports how many tile renders happened since construction,
// including the initial fill.
func (g *Grid) Regenerated() uint64 { return g.regenerated }

// Scroll moves every tile by (dx, dy) and re-renders the tiles that wrapped
// to the opposite edge. It returns the number of re-rendered tiles.
// Non-finite offsets are ignored.
func (g *Grid) Scroll(dx, dy float64) int {
	if !finite(dx) || !finite(dy) {
		return 0
	}
	cols, rows := g.ring.W, g.ring.H
	g.offX, g.fracX = advance(g.offX, g.fracX, dx)
	g.offY, g.fracY = advance(g.offY, g.fracY, dy)
	g.minX = shiftWindow(g.minX, g.offX, g.fracX, g.size)
	g.minY = shiftWindow(g.minY, g.offY, g.fracY, g.size)

	wrapped := 0
	for i := range g.tiles {
		t := &g.tiles[i]
		mx := g.minX + floorMod(i%cols-g.minX, cols)
		my := g.minY + floorMod(i/cols-g.minY, rows)
		moved := mx != t.MapX || my != t.MapY
		t.MapX, t.MapY = mx, my
		g.place(t)
		if moved {
			g.render(t)
			wrapped++
		}
	}
	if wrapped > 0 {
		logger.Log.WithFields(map[string]any{
			"dx": dx, "dy": dy, "wrapped": wrapped, "min_x": g.minX, "min_y": g.minY,
		}).Trace("tiles wrapped")
	}
	return wrapped
}

// place derives the screen position of t from the grid offset.
func (g *Grid) place(t *Tile) {
	t.PX = g.offX + t.MapX*g.size
	t.PY = g.offY + t.MapY*g.size
	t.X = float64(t.PX) + g.fracX
	t.Y = float64(t.PY) + g.fracY
}

// advance adds d to the offset whole+frac and renormalizes frac into [0, 1).
func advance(whole int, frac, d float64) (int, float64) {
	f := frac + d
	fl := math.Floor(f)
	whole += int(fl)
	frac = f - fl
	if frac >= 1 {
		whole++
		frac = 0
	}
	return whole, frac
}

// shiftWindow returns the first map coordinate of the window along one
// axis. The leading tile is kept within [-2*size, 0] of the screen edge: past
// -2*size it wraps to the far end, past 0 the far tile wraps to the front.
func shiftWindow(first, off int, frac float64, size int) int {
	lead := off + first*size
	if lead < -2*size {
		return first + ceilDiv(-2*size-lead, size)
	}
	limit := 0
	if frac > 0 {
		limit = -1
	}
	if lead > limit {
		return first - ceilDiv(lead-limit, size)
	}
	return first
}

// SetRenderer swaps the renderer and re-renders every tile with it.
func (g *Grid) SetRenderer(r Renderer) {
	if r == nil {
		return
	}
	g.renderer = r
	g.RegenerateAll()
}

// RegenerateAll re-renders every tile in place.
func (g *Grid) RegenerateAll() {
	for i := range g.tiles {
		g.render(&g.tiles[i])
	}
	logger.Log.WithField("tiles", len(g.tiles)).Debug("tile grid regenerated")
}

// TileAt returns the tile under screen point (sx, sy).
func (g *Grid) TileAt(sx, sy float64) (*Tile, bool) {
	if len(g.tiles) == 0 {
		return nil, false
	}
	// Every tile shares one lattice, so any tile anchors the lookup.
	ref := &g.tiles[0]
	size := float64(g.size)
	mx := ref.MapX + int(math.Floor((sx-ref.X)/size))
	my := ref.MapY + int(math.Floor((sy-ref.Y)/size))
	t := &g.tiles[g.ring.Index(mx, my)]
	if t.MapX != mx || t.MapY != my {
		return nil, false
	}
	return t, true
}

// PixelAt returns the rendered colour under screen point (sx, sy). ok is
// false outside the grid's extent.
func (g *Grid) PixelAt(sx, sy float64) (color.RGBA, bool) {
	t, ok := g.TileAt(sx, sy)
	if !ok {
		return color.RGBA{}, false
	}
	px := clampInt(int(math.Floor(sx-t.X)), 0, g.size-1)
	py := clampInt(int(math.Floor(sy-t.Y)), 0, g.size-1)
	base := (py*g.size + px) * 4
	return color.RGBA{R: t.Pix[base], G: t.Pix[base+1], B: t.Pix[base+2], A: t.Pix[base+3]}, true
}

func (g *Grid) render(t *Tile) {
	_, span := g.tracer.Start(context.Background(), "tiles.regenerate",
		trace.WithAttributes(attribute.Int("map_x", t.MapX), attribute.Int("map_y", t.MapY)))
	g.renderer.RenderTile(t.Pix, t.MapX, t.MapY, g.size)
	span.End()
	t.Gen++
	g.regenerated++
}

func floorMod(a, n int) int {
	return (a%n + n) % n
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
