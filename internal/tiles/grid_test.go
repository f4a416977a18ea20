package tiles

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"biomes/internal/core"
)

// stampRenderer writes the map coordinates into every pixel so tests can
// tell tiles apart without running the noise field.
type stampRenderer struct {
	calls int
}

func (s *stampRenderer) RenderTile(pix []byte, mapX, mapY, size int) {
	s.calls++
	for i := 0; i < size*size; i++ {
		pix[i*4+0] = byte(mapX)
		pix[i*4+1] = byte(mapY)
		pix[i*4+2] = byte(i)
		pix[i*4+3] = 255
	}
}

func newGrid(t *testing.T, w, h, size int) (*Grid, *stampRenderer) {
	t.Helper()
	r := &stampRenderer{}
	g, err := New(core.Size{W: w, H: h}, size, r)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, r
}

func TestNewFullHDGrid(t *testing.T) {
	g, r := newGrid(t, 1920, 1080, 64)
	cols, rows := g.Dims()
	if cols != 32 || rows != 19 {
		t.Fatalf("dims = %dx%d, want 32x19", cols, rows)
	}
	if len(g.Tiles()) != 608 || r.calls != 608 {
		t.Fatalf("expected 608 tiles rendered once each, got %d tiles %d renders", len(g.Tiles()), r.calls)
	}
	seen := map[[2]int]bool{}
	for _, tile := range g.Tiles() {
		key := [2]int{tile.MapX, tile.MapY}
		if seen[key] {
			t.Fatalf("duplicate map coordinate %v", key)
		}
		seen[key] = true
		if tile.MapX < -1 || tile.MapX > 30 || tile.MapY < -1 || tile.MapY > 17 {
			t.Fatalf("map coordinate %v outside [-1,30]x[-1,17]", key)
		}
		if tile.X != float64(tile.MapX*64) || tile.Y != float64(tile.MapY*64) {
			t.Fatalf("tile %v placed at (%g,%g)", key, tile.X, tile.Y)
		}
		if tile.Gen != 1 {
			t.Fatalf("tile %v rendered %d times, want 1", key, tile.Gen)
		}
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	r := &stampRenderer{}
	if _, err := New(core.Size{W: 100, H: 100}, 0, r); err == nil {
		t.Fatal("expected error for zero tile size")
	}
	if _, err := New(core.Size{W: 0, H: 100}, 16, r); err == nil {
		t.Fatal("expected error for empty viewport")
	}
	if _, err := New(core.Size{W: 100, H: 100}, 16, nil); err == nil {
		t.Fatal("expected error for missing renderer")
	}
}

func TestScrollWithoutWrapRendersNothing(t *testing.T) {
	g, r := newGrid(t, 256, 128, 64)
	before := r.calls
	if n := g.Scroll(-10, 20); n != 0 {
		t.Fatalf("expected no wraps, got %d", n)
	}
	if r.calls != before {
		t.Fatalf("expected no renders, got %d", r.calls-before)
	}
	for _, tile := range g.Tiles() {
		if tile.X != float64(tile.MapX*64)-10 || tile.Y != float64(tile.MapY*64)+20 {
			t.Fatalf("tile (%d,%d) at (%g,%g) after scroll", tile.MapX, tile.MapY, tile.X, tile.Y)
		}
	}
}

func TestScrollLeftWrapsOneColumn(t *testing.T) {
	g, r := newGrid(t, 256, 128, 64)
	cols, rows := g.Dims()
	before := r.calls

	// The left column starts at -64 and wraps once it passes -128.
	if n := g.Scroll(-64, 0); n != 0 {
		t.Fatalf("expected no wrap at the threshold, got %d", n)
	}
	n := g.Scroll(-1, 0)
	if n != rows {
		t.Fatalf("expected one column (%d tiles) to wrap, got %d", rows, n)
	}
	if r.calls-before != rows {
		t.Fatalf("expected %d renders, got %d", rows, r.calls-before)
	}
	for _, tile := range g.Tiles() {
		if tile.MapX == -1 {
			t.Fatal("column -1 should have wrapped")
		}
		if tile.MapX == cols-1 && tile.X != float64((cols-2)*64)-1 {
			t.Fatalf("wrapped tile at x=%g, want %d", tile.X, (cols-2)*64-1)
		}
	}
}

func TestScrollDiagonalWrapsCornerOnce(t *testing.T) {
	g, r := newGrid(t, 128, 128, 32)
	cols, rows := g.Dims()
	g.Scroll(-64, -64)
	before := r.calls
	n := g.Scroll(-1, -1)
	if want := cols + rows - 1; n != want {
		t.Fatalf("expected %d wrapped tiles, got %d", want, n)
	}
	if r.calls-before != n {
		t.Fatalf("each wrapped tile must render exactly once, got %d renders for %d tiles", r.calls-before, n)
	}
}

func TestWrappedTileMatchesFreshTile(t *testing.T) {
	g, _ := newGrid(t, 256, 192, 64)
	cols, _ := g.Dims()
	g.Scroll(-65, 0)

	var wrapped *Tile
	for i := range g.Tiles() {
		tile := &g.Tiles()[i]
		if tile.MapX == cols-1 && tile.MapY == 0 {
			wrapped = tile
		}
	}
	if wrapped == nil {
		t.Fatal("expected tile (cols-1, 0) after wrapping")
	}
	fresh := make([]byte, len(wrapped.Pix))
	(&stampRenderer{}).RenderTile(fresh, cols-1, 0, 64)
	if !slices.Equal(wrapped.Pix, fresh) {
		t.Fatal("wrapped tile pixels differ from a fresh render at the same map coordinate")
	}
}

func TestScrollPreservesTilingUnderRandomMotion(t *testing.T) {
	const size = 16
	g, r := newGrid(t, 100, 70, size)
	cols, rows := g.Dims()
	rng := rand.New(rand.NewSource(7))

	for step := 0; step < 2000; step++ {
		dx := float64(rng.Intn(81)-40) / 4
		dy := float64(rng.Intn(81)-40) / 4
		if step%97 == 0 {
			dx *= 9
		}
		before := r.calls
		n := g.Scroll(dx, dy)
		if r.calls-before != n {
			t.Fatalf("step %d: %d renders for %d wrapped tiles", step, r.calls-before, n)
		}
		assertTiling(t, g, cols, rows, size, 100, 70)
	}
}

func assertTiling(t *testing.T, g *Grid, cols, rows, size, vw, vh int) {
	t.Helper()
	tiles := g.Tiles()
	minX, minY := tiles[0].MapX, tiles[0].MapY
	for _, tile := range tiles {
		minX = min(minX, tile.MapX)
		minY = min(minY, tile.MapY)
	}
	var origin *Tile
	seen := map[[2]int]bool{}
	for i := range tiles {
		tile := &tiles[i]
		dx, dy := tile.MapX-minX, tile.MapY-minY
		if dx >= cols || dy >= rows {
			t.Fatalf("map coordinates not a contiguous %dx%d window: (%d,%d) from (%d,%d)", cols, rows, tile.MapX, tile.MapY, minX, minY)
		}
		seen[[2]int{dx, dy}] = true
		if dx == 0 && dy == 0 {
			origin = tile
		}
		if g.ring.Index(tile.MapX, tile.MapY) != i {
			t.Fatalf("tile (%d,%d) stored in slot %d", tile.MapX, tile.MapY, i)
		}
	}
	if len(seen) != cols*rows {
		t.Fatalf("expected %d distinct map coordinates, got %d", cols*rows, len(seen))
	}
	for _, tile := range tiles {
		wantX := origin.PX + (tile.MapX-minX)*size
		wantY := origin.PY + (tile.MapY-minY)*size
		if tile.PX != wantX || tile.PY != wantY {
			t.Fatalf("tile (%d,%d) drawn at (%d,%d), adjacency expects (%d,%d)", tile.MapX, tile.MapY, tile.PX, tile.PY, wantX, wantY)
		}
		if tile.X < float64(tile.PX) || tile.X > float64(tile.PX+1) || tile.Y < float64(tile.PY) || tile.Y > float64(tile.PY+1) {
			t.Fatalf("tile (%d,%d) at (%g,%g) drawn at pixel (%d,%d)", tile.MapX, tile.MapY, tile.X, tile.Y, tile.PX, tile.PY)
		}
	}
	if origin.X > 0 || origin.Y > 0 {
		t.Fatalf("grid starts at (%g,%g), leaving a gap at the top-left", origin.X, origin.Y)
	}
	if origin.X+float64(cols*size) < float64(vw) || origin.Y+float64(rows*size) < float64(vh) {
		t.Fatalf("grid from (%g,%g) does not reach viewport edge %dx%d", origin.X, origin.Y, vw, vh)
	}
}

func TestScrollFractionalStepsKeepPixelAdjacency(t *testing.T) {
	const size = 64
	g, _ := newGrid(t, 1920, 1080, size)
	cols, rows := g.Dims()
	for step := 0; step < 500; step++ {
		g.Scroll(-0.1, 0.3)
		assertTiling(t, g, cols, rows, size, 1920, 1080)
	}

	rng := rand.New(rand.NewSource(11))
	for step := 0; step < 2000; step++ {
		dx := rng.Float64()*20 - 10
		dy := rng.Float64()*6.6 - 3.3
		g.Scroll(dx, dy)
		assertTiling(t, g, cols, rows, size, 1920, 1080)
	}
}

func TestScrollHugeOffsetTerminates(t *testing.T) {
	const size = 64
	g, r := newGrid(t, 320, 240, size)
	cols, rows := g.Dims()
	before := r.calls
	n := g.Scroll(-1e17, 0)
	if n != cols*rows || r.calls-before != n {
		t.Fatalf("expected every tile re-rendered once, got %d wraps and %d renders", n, r.calls-before)
	}
	assertTiling(t, g, cols, rows, size, 320, 240)

	if n := g.Scroll(math.NaN(), math.Inf(1)); n != 0 {
		t.Fatalf("non-finite scroll wrapped %d tiles", n)
	}
	assertTiling(t, g, cols, rows, size, 320, 240)
}

func TestPixelAtFindsTileUnderPoint(t *testing.T) {
	g, _ := newGrid(t, 128, 128, 32)
	g.Scroll(-40, 10)

	// Screen x=0 is world x=40 -> map column 1, local x 8.
	c, ok := g.PixelAt(0, 0)
	if !ok {
		t.Fatal("expected a pixel at the origin")
	}
	// Screen y=0 is world y=-10 -> map row -1, local y 22.
	if c.R != byte(1) || c.G != byte(0xff) {
		t.Fatalf("pixel came from tile (%d,%d), want (1,-1)", int8(c.R), int8(c.G))
	}
	if want := byte((22*32 + 8) % 256); c.B != want {
		t.Fatalf("pixel index %d, want %d", c.B, want)
	}
	if _, ok := g.PixelAt(10000, 0); ok {
		t.Fatal("expected no pixel far outside the grid")
	}
}

func TestRegenerateAllAndSetRenderer(t *testing.T) {
	g, r := newGrid(t, 64, 64, 32)
	total := len(g.Tiles())
	g.RegenerateAll()
	if r.calls != 2*total {
		t.Fatalf("expected %d renders, got %d", 2*total, r.calls)
	}
	other := &stampRenderer{}
	g.SetRenderer(other)
	if other.calls != total {
		t.Fatalf("new renderer should render every tile once, got %d", other.calls)
	}
	if g.Regenerated() != uint64(3*total) {
		t.Fatalf("Regenerated() = %d, want %d", g.Regenerated(), 3*total)
	}
	for _, tile := range g.Tiles() {
		if tile.Gen != 3 {
			t.Fatalf("tile gen = %d, want 3", tile.Gen)
		}
	}
}
