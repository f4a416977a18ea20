// Package terrain binds a noise source, fBm parameters and a colour ramp
// into the elevation field shared by tile rendering and navigation.
package terrain

import (
	"fmt"
	"image/color"

	"biomes/internal/config"
	"biomes/pkg/biome"
	"biomes/pkg/noise"
)

// Generator samples elevation and renders tile pixels. It is immutable
// after construction; parameter changes build a new Generator.
type Generator struct {
	src     noise.Source
	fractal noise.Fractal
	ramp    *biome.Ramp
}

// New builds a generator from a validated configuration.
func New(cfg config.Config) (*Generator, error) {
	src, err := noise.New(cfg.Noise, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("terrain: %w", err)
	}
	ramp, err := cfg.BuildRamp()
	if err != nil {
		return nil, fmt.Errorf("terrain: %w", err)
	}
	return NewWith(src, cfg.Fractal(), ramp), nil
}

// NewWith builds a generator from explicit parts.
func NewWith(src noise.Source, f noise.Fractal, ramp *biome.Ramp) *Generator {
	if ramp == nil {
		ramp = biome.DefaultRamp()
	}
	return &Generator{src: src, fractal: f, ramp: ramp}
}

// Fractal returns the fBm parameters in use.
func (g *Generator) Fractal() noise.Fractal { return g.fractal }

// Ramp returns the colour ramp in use.
func (g *Generator) Ramp() *biome.Ramp { return g.ramp }

// Elevation returns the clamped elevation at world position (x, y).
func (g *Generator) Elevation(x, y float64) float64 {
	v := g.fractal.Sample(g.src, x, y)
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// Color classifies the elevation at world position (x, y).
func (g *Generator) Color(x, y float64) color.RGBA {
	return g.ramp.Classify(g.Elevation(x, y))
}

// Band names the biome at world position (x, y).
func (g *Generator) Band(x, y float64) string {
	return g.ramp.Band(g.Elevation(x, y))
}

// RenderTile fills pix (RGBA, size*size*4 bytes) with the tile at map
// coordinates (mapX, mapY). Pixel (px, py) samples world position
// (mapX*size+px, mapY*size+py).
func (g *Generator) RenderTile(pix []byte, mapX, mapY, size int) {
	if len(pix) < size*size*4 {
		return
	}
	ox := float64(mapX * size)
	oy := float64(mapY * size)
	for y := 0; y < size; y++ {
		wy := oy + float64(y)
		row := y * size * 4
		for x := 0; x < size; x++ {
			c := g.Color(ox+float64(x), wy)
			base := row + x*4
			pix[base+0] = c.R
			pix[base+1] = c.G
			pix[base+2] = c.B
			pix[base+3] = c.A
		}
	}
}
