//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"biomes/internal/core"
	"biomes/internal/logger"
)

// Source is the world surface the HUD and overlay read from.
type Source interface {
	Name() string
	Size() core.Size
	Parameters() core.ParameterSnapshot
}

var (
	panelColor   = color.RGBA{R: 16, G: 16, B: 20, A: 220}
	headingColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	readoutColor = color.RGBA{R: 180, G: 200, B: 220, A: 255}
	labelColor   = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor   = color.RGBA{R: 140, G: 140, B: 150, A: 255}
	buttonColor  = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonIdle   = color.RGBA{R: 32, G: 34, B: 40, A: 255}
)

// HUD shows the boat readout and +/- controls for the tunable parameters in
// a panel along the right edge of the map.
type HUD struct {
	src    Source
	width  int
	title  string
	panel  *ebiten.Image
	snap   core.ParameterSnapshot
	rows   []control
	ints   core.IntParameterSetter
	floats core.FloatParameterSetter
	offset int
}

// NewHUD builds a HUD of the given panel width for src.
func NewHUD(src Source, width int) *HUD {
	h := &HUD{src: src, width: max(width, 0), title: buildTitle(src)}
	if p, ok := src.(core.ParameterControlsProvider); ok {
		for _, def := range p.ParameterControls() {
			h.rows = append(h.rows, newControl(def))
		}
		layoutControls(h.rows, h.width)
	}
	h.ints, _ = src.(core.IntParameterSetter)
	h.floats, _ = src.(core.FloatParameterSetter)
	return h
}

// Update reloads the parameter snapshot and applies a click on a +/- button.
// panelX is the screen x of the panel's left edge.
func (h *HUD) Update(panelX int) {
	if h == nil {
		return
	}
	h.offset = panelX
	h.snap = h.src.Parameters()
	for i := range h.rows {
		h.rows[i].load(h.snap)
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if i, dir, ok := hitTest(h.rows, mx-h.offset, my); ok {
		h.click(&h.rows[i], dir)
	}
}

func (h *HUD) click(c *control, dir int) {
	v, ok := c.next(dir)
	if !ok || !h.settable(c) {
		return
	}
	var accepted bool
	switch c.def.Type {
	case core.ParamTypeInt:
		accepted = h.ints.SetIntParameter(c.def.Key, int(v))
	case core.ParamTypeFloat:
		accepted = h.floats.SetFloatParameter(c.def.Key, v)
	}
	if !accepted {
		logger.Log.WithField("key", c.def.Key).WithField("value", v).Debug("parameter change refused")
		return
	}
	c.assign(v)
}

func (h *HUD) settable(c *control) bool {
	switch c.def.Type {
	case core.ParamTypeInt:
		return h.ints != nil
	case core.ParamTypeFloat:
		return h.floats != nil
	}
	return false
}

// Draw paints the panel at screen x offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.src.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		if h.panel != nil {
			h.panel.Deallocate()
		}
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)
	h.drawReadout()
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(src Source) string {
	if src == nil || src.Name() == "" {
		return "Controls"
	}
	name := []rune(src.Name())
	if name[0] >= 'a' && name[0] <= 'z' {
		name[0] -= 'a' - 'A'
	}
	return string(name) + " Controls"
}

func (h *HUD) drawReadout() {
	face := basicfont.Face7x13
	y := hudMargin + hudLine
	text.Draw(h.panel, "Boat", face, hudMargin, y, headingColor)
	for _, key := range readoutKeys {
		p, ok := h.snap.Lookup(key)
		if !ok {
			continue
		}
		y += hudLine
		value := p.Value
		if p.Type == core.ParamTypeFloat {
			if f, err := strconv.ParseFloat(p.Value, 64); err == nil {
				value = strconv.FormatFloat(f, 'f', 2, 64)
			}
		}
		text.Draw(h.panel, p.Label+": "+value, face, hudMargin, y, readoutColor)
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	titleY := controlsTop - hudLine/2
	text.Draw(h.panel, h.title, face, hudMargin, titleY, headingColor)
	if len(h.rows) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, hudMargin, titleY+hudRow, mutedColor)
		return
	}
	for i := range h.rows {
		c := &h.rows[i]
		baseline := c.top + hudRow/2 + 4
		text.Draw(h.panel, c.def.Label, face, hudMargin, baseline, labelColor)
		valueColor := labelColor
		if !c.valid {
			valueColor = mutedColor
		}
		w := text.BoundString(face, c.text).Dx()
		text.Draw(h.panel, c.text, face, c.minus.Min.X-hudGap-w, baseline, valueColor)

		for _, b := range []struct {
			rect  image.Rectangle
			label string
			dir   int
		}{{c.minus, "-", -1}, {c.plus, "+", 1}} {
			_, ok := c.next(b.dir)
			h.drawButton(b.rect, b.label, ok && h.settable(c))
		}
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, labelColor
	if !enabled {
		bg, fg = buttonIdle, mutedColor
	}
	vector.DrawFilledRect(h.panel, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)
	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()+b.Dy())/2
	text.Draw(h.panel, label, face, x, y, fg)
}
