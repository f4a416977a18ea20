package ui

import (
	"testing"
	"time"

	"biomes/internal/core"
	"biomes/internal/tiles"
)

type blankRenderer struct{}

func (blankRenderer) RenderTile([]byte, int, int, int) {}

func TestRegenTrackerFadesWrappedTiles(t *testing.T) {
	g, err := tiles.New(core.Size{W: 64, H: 64}, 16, blankRenderer{})
	if err != nil {
		t.Fatal(err)
	}
	clock := time.Unix(100, 0)
	r := regenTracker{window: time.Second, now: func() time.Time { return clock }}
	r.observe(g)
	for i := range g.Tiles() {
		if r.fade(i) != 0 {
			t.Fatalf("slot %d highlighted before any wrap", i)
		}
	}

	g.Scroll(-17, 0)
	r.observe(g)
	lit := 0
	for i, tile := range g.Tiles() {
		if r.fade(i) == 1 {
			lit++
			if tile.MapX != 5 {
				t.Fatalf("slot %d (map x %d) highlighted but did not wrap", i, tile.MapX)
			}
		}
	}
	_, rows := g.Dims()
	if lit != rows {
		t.Fatalf("highlighted %d slots, want %d", lit, rows)
	}

	clock = clock.Add(500 * time.Millisecond)
	for i, tile := range g.Tiles() {
		if tile.MapX == 5 && r.fade(i) != 0.5 {
			t.Fatalf("fade after half the window = %g, want 0.5", r.fade(i))
		}
	}
	clock = clock.Add(time.Second)
	for i := range g.Tiles() {
		if r.fade(i) != 0 {
			t.Fatal("highlight should expire after the window")
		}
	}
	if r.fade(-1) != 0 || r.fade(1000) != 0 {
		t.Fatal("out of range slots must not highlight")
	}
}
