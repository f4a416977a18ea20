// Package snapshot renders a rectangular block of map tiles to an image
// offline, spreading tiles over a bounded worker pool.
package snapshot

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"biomes/internal/logger"
	"biomes/internal/telemetry"
	"biomes/internal/terrain"
)

// Region selects map tiles [MinX, MinX+Cols) x [MinY, MinY+Rows).
type Region struct {
	MinX, MinY int
	Cols, Rows int
}

// Options controls a render.
type Options struct {
	TileSize int
	SeaLevel float64
	Workers  int
}

// Result is a rendered region plus water statistics.
type Result struct {
	Image   *image.RGBA
	Water   int64
	Total   int64
	Tiles   int
	Elapsed time.Duration
}

// WaterFraction is the share of pixels at or below sea level.
func (r Result) WaterFraction() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Water) / float64(r.Total)
}

// Render draws region with gen. Workers render tiles into disjoint parts of
// the output image.
func Render(ctx context.Context, gen *terrain.Generator, region Region, opts Options) (Result, error) {
	if region.Cols <= 0 || region.Rows <= 0 {
		return Result{}, fmt.Errorf("snapshot: region must be non-empty, got %dx%d", region.Cols, region.Rows)
	}
	if opts.TileSize <= 0 {
		return Result{}, fmt.Errorf("snapshot: tile size must be positive, got %d", opts.TileSize)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, span := telemetry.Tracer("snapshot").Start(ctx, "snapshot.render")
	defer span.End()
	span.SetAttributes(
		attribute.Int("cols", region.Cols),
		attribute.Int("rows", region.Rows),
		attribute.Int("workers", workers),
	)

	size := opts.TileSize
	img := image.NewRGBA(image.Rect(0, 0, region.Cols*size, region.Rows*size))
	var water atomic.Int64
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for ty := 0; ty < region.Rows; ty++ {
		for tx := 0; tx < region.Cols; tx++ {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				water.Add(renderTile(img, gen, region.MinX+tx, region.MinY+ty, tx*size, ty*size, size, opts.SeaLevel))
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return Result{}, fmt.Errorf("snapshot: %w", err)
	}
	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return Result{}, fmt.Errorf("snapshot: %w", err)
	}

	res := Result{
		Image:   img,
		Water:   water.Load(),
		Total:   int64(img.Rect.Dx() * img.Rect.Dy()),
		Tiles:   region.Cols * region.Rows,
		Elapsed: time.Since(start),
	}
	logger.Log.WithFields(map[string]any{
		"tiles":   res.Tiles,
		"workers": workers,
		"water":   fmt.Sprintf("%.3f", res.WaterFraction()),
		"elapsed": res.Elapsed,
	}).Debug("snapshot rendered")
	return res, nil
}

// renderTile writes map tile (mapX, mapY) at image offset (ox, oy) and
// returns the number of water pixels.
func renderTile(img *image.RGBA, gen *terrain.Generator, mapX, mapY, ox, oy, size int, seaLevel float64) int64 {
	ramp := gen.Ramp()
	var water int64
	for py := 0; py < size; py++ {
		wy := float64(mapY*size + py)
		row := img.PixOffset(ox, oy+py)
		for px := 0; px < size; px++ {
			e := gen.Elevation(float64(mapX*size+px), wy)
			if e <= seaLevel {
				water++
			}
			c := ramp.Classify(e)
			i := row + px*4
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
	return water
}

// Encode writes res as PNG.
func Encode(w io.Writer, res Result) error {
	if res.Image == nil {
		return fmt.Errorf("snapshot: nothing rendered")
	}
	return png.Encode(w, res.Image)
}
