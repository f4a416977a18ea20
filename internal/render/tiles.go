//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"biomes/internal/tiles"
)

// TilePainter keeps one GPU image per tile slot and re-uploads a slot only
// when its tile was re-rendered.
type TilePainter struct {
	size   int
	images []*ebiten.Image
	gens   []uint64
}

// NewTilePainter allocates images for every slot of g.
func NewTilePainter(g *tiles.Grid) *TilePainter {
	p := &TilePainter{}
	p.ensure(g)
	return p
}

func (p *TilePainter) ensure(g *tiles.Grid) {
	n := len(g.Tiles())
	if p.size == g.TileSize() && len(p.images) == n {
		return
	}
	for _, img := range p.images {
		img.Deallocate()
	}
	p.size = g.TileSize()
	p.images = make([]*ebiten.Image, n)
	p.gens = make([]uint64, n)
	for i := range p.images {
		p.images[i] = ebiten.NewImage(p.size, p.size)
	}
}

// Draw blits every tile at its screen position.
func (p *TilePainter) Draw(screen *ebiten.Image, g *tiles.Grid) {
	p.ensure(g)
	for i := range g.Tiles() {
		t := &g.Tiles()[i]
		if p.gens[i] != t.Gen {
			p.images[i].WritePixels(t.Pix)
			p.gens[i] = t.Gen
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(t.PX), float64(t.PY))
		screen.DrawImage(p.images[i], op)
	}
}

// Reset forces every slot to re-upload on the next Draw.
func (p *TilePainter) Reset() {
	for i := range p.gens {
		p.gens[i] = 0
	}
}
