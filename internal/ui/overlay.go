//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"biomes/internal/tiles"
)

type gridProvider interface {
	Grid() *tiles.Grid
}

// Overlay draws optional debugging visuals on top of the map.
type Overlay struct {
	src        gridProvider
	showBorder bool
	showRegen  bool

	regen regenTracker
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(src gridProvider) *Overlay {
	return &Overlay{src: src, regen: regenTracker{window: time.Second, now: time.Now}}
}

// Update toggles layers and records which tiles were re-rendered.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showBorder = !o.showBorder
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showRegen = !o.showRegen
	}
	o.regen.observe(o.src.Grid())
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	g := o.src.Grid()
	size := float32(g.TileSize())
	if o.showRegen {
		for i, t := range g.Tiles() {
			fade := o.regen.fade(i)
			if fade <= 0 {
				continue
			}
			col := color.RGBA{R: 255, G: 80, B: 40, A: uint8(110 * fade)}
			vector.DrawFilledRect(screen, float32(t.PX), float32(t.PY), size, size, col, false)
		}
	}
	if o.showBorder {
		face := basicfont.Face7x13
		for _, t := range g.Tiles() {
			vector.StrokeRect(screen, float32(t.PX), float32(t.PY), size, size, 1, color.RGBA{R: 255, G: 255, B: 255, A: 90}, false)
			label := fmt.Sprintf("%d,%d", t.MapX, t.MapY)
			text.Draw(screen, label, face, t.PX+3, t.PY+14, color.RGBA{R: 255, G: 255, B: 255, A: 200})
		}
	}
}
