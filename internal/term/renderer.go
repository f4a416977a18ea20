package term

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"biomes/internal/render"
	"biomes/internal/world"
)

// halfBlock draws the top half of a cell in the foreground colour and the
// bottom half in the background colour.
const halfBlock = '▀'

// Renderer draws the world with one terminal cell per cell*2cell world pixels.
type Renderer struct {
	screen *Screen
	cell   int
}

// NewRenderer creates a renderer sampling every cell world pixels.
func NewRenderer(screen *Screen, cell int) *Renderer {
	if cell <= 0 {
		cell = 1
	}
	return &Renderer{screen: screen, cell: cell}
}

// Render draws the map, the boat and the status line, then shows the frame.
func (r *Renderer) Render(w *world.World) {
	r.screen.Clear()
	cols, rows := r.screen.Size()
	mapRows := rows - 1
	step := float64(r.cell)
	half := step / 2

	for cy := 0; cy < mapRows; cy++ {
		for cx := 0; cx < cols; cx++ {
			sx := float64(cx)*step + half
			top, okTop := w.Grid().PixelAt(sx, float64(2*cy)*step+half)
			bottom, okBottom := w.Grid().PixelAt(sx, float64(2*cy+1)*step+half)
			if !okTop && !okBottom {
				continue
			}
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			r.screen.SetContent(cx, cy, halfBlock, style)
		}
	}

	bx, by := r.BoatCell(w)
	if bx >= 0 && bx < cols && by >= 0 && by < mapRows {
		sx, sy := w.BoatScreen()
		under, _ := w.Grid().PixelAt(sx, sy)
		style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(rgb(under)).Bold(true)
		if !w.Boat().Afloat() {
			style = style.Foreground(tcell.ColorRed)
		}
		r.screen.SetContent(bx, by, render.ArrowRune(w.Boat().Heading()), style)
	}

	if mapRows >= 0 {
		r.drawText(0, mapRows, r.Status(w), tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack))
	}
	r.screen.Show()
}

// BoatCell returns the terminal cell the boat is drawn in.
func (r *Renderer) BoatCell(w *world.World) (x, y int) {
	sx, sy := w.BoatScreen()
	return int(sx) / r.cell, int(sy) / (2 * r.cell)
}

// Status formats the one line readout under the map.
func (r *Renderer) Status(w *world.World) string {
	b := w.Boat()
	x, y := b.Position()
	return fmt.Sprintf("x=%.0f y=%.0f %s %s  heading %.0f  elev %.3f  [arrows] steer [r] reset [q] quit",
		x, y, b.State(), w.Band(), b.Heading(), b.Elevation())
}

func (r *Renderer) drawText(x, y int, msg string, style tcell.Style) {
	cols, _ := r.screen.Size()
	for _, ch := range msg {
		if x >= cols {
			return
		}
		r.screen.SetContent(x, y, ch, style)
		x++
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
