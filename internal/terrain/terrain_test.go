package terrain

import (
	"slices"
	"testing"

	"biomes/internal/config"
	"biomes/pkg/biome"
	"biomes/pkg/noise"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	cfg := config.Default()
	cfg.Octaves = 4
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestRenderTileIsPureInMapCoordinates(t *testing.T) {
	g := newTestGenerator(t)
	const size = 16
	a := make([]byte, size*size*4)
	b := make([]byte, size*size*4)
	g.RenderTile(a, 5, -3, size)
	g.RenderTile(b, 5, -3, size)
	if !slices.Equal(a, b) {
		t.Fatal("rendering the same map coordinate twice must produce identical pixels")
	}
	g.RenderTile(b, 400, 250, size)
	if slices.Equal(a, b) {
		t.Fatal("different map coordinates should produce different pixels")
	}
}

func TestRenderTileSamplesWorldPixels(t *testing.T) {
	g := newTestGenerator(t)
	const size = 8
	pix := make([]byte, size*size*4)
	g.RenderTile(pix, -2, 7, size)
	for _, p := range [][2]int{{0, 0}, {3, 5}, {7, 7}} {
		want := g.Color(float64(-2*size+p[0]), float64(7*size+p[1]))
		base := (p[1]*size + p[0]) * 4
		got := [4]byte{pix[base], pix[base+1], pix[base+2], pix[base+3]}
		if got != [4]byte{want.R, want.G, want.B, want.A} {
			t.Fatalf("pixel %v = %v, want %v", p, got, want)
		}
	}
}

func TestRenderTileIgnoresShortBuffers(t *testing.T) {
	g := newTestGenerator(t)
	pix := make([]byte, 10)
	g.RenderTile(pix, 0, 0, 8)
	if !slices.Equal(pix, make([]byte, 10)) {
		t.Fatal("short buffer must be left untouched")
	}
}

func TestElevationMatchesFractal(t *testing.T) {
	cfg := config.Default()
	g, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		x, y := float64(i*37), float64(-i*53)
		want := noise.FBm(noise.NewSimplex(0), x, y, cfg.NoiseScale, cfg.Octaves, cfg.Lacunarity, cfg.Persistence)
		if got := g.Elevation(x, y); got != want {
			t.Fatalf("Elevation(%g, %g) = %g, want %g", x, y, got, want)
		}
	}
}

type constSource float64

func (c constSource) Noise2D(float64, float64) float64 { return float64(c) }

func TestZeroOctavesGivesFlatShore(t *testing.T) {
	f := noise.DefaultFractal()
	f.Octaves = 0
	g := NewWith(constSource(0.7), f, nil)
	if g.Elevation(123, 456) != 0 {
		t.Fatal("zero octaves must produce elevation 0")
	}
	if got, want := g.Color(1, 1), biome.DefaultRamp().Classify(0); got != want {
		t.Fatalf("Color = %v, want shore %v", got, want)
	}
	if g.Band(1, 1) != "shore" {
		t.Fatalf("Band = %q, want shore", g.Band(1, 1))
	}
}

func TestNewRejectsUnknownSource(t *testing.T) {
	cfg := config.Default()
	cfg.Noise = "worley"
	if _, err := New(cfg); err == nil {
		t.Fatal("expected an error for an unknown noise source")
	}
}
