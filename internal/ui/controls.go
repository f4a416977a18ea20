package ui

import (
	"image"
	"math"
	"strconv"

	"biomes/internal/core"
)

// readoutKeys are shown as plain text above the controls.
var readoutKeys = []string{"x", "y", "state", "band", "elevation", "heading", "regenerated"}

const (
	hudMargin = 10
	hudLine   = 15
	hudRow    = 32
	hudButton = 22
	hudGap    = 4
)

// controlsTop is the y of the first control row: the readout block, its
// heading and the controls title sit above it.
var controlsTop = hudMargin + (len(readoutKeys)+3)*hudLine

// control is one adjustable HUD row.
type control struct {
	def   core.ParameterControl
	text  string
	i     int
	f     float64
	valid bool

	top         int
	minus, plus image.Rectangle
}

func newControl(def core.ParameterControl) control {
	return control{def: def, text: "--"}
}

// load refreshes the displayed value from snap. A missing or unparsable
// parameter leaves the control unavailable.
func (c *control) load(snap core.ParameterSnapshot) {
	c.valid = false
	c.text = "--"
	p, ok := snap.Lookup(c.def.Key)
	if !ok {
		return
	}
	switch c.def.Type {
	case core.ParamTypeInt:
		if v, err := strconv.Atoi(p.Value); err == nil {
			c.assign(float64(v))
		}
	case core.ParamTypeFloat:
		if v, err := strconv.ParseFloat(p.Value, 64); err == nil {
			c.assign(v)
		}
	}
}

// assign stores an accepted value.
func (c *control) assign(v float64) {
	c.valid = true
	if c.def.Type == core.ParamTypeInt {
		c.i = int(math.Round(v))
		c.f = float64(c.i)
		c.text = strconv.Itoa(c.i)
		return
	}
	c.f = v
	c.text = formatFloat(c.def, v)
}

// next returns the value one click in direction requests. ok is false when
// the click would change nothing.
func (c *control) next(direction int) (float64, bool) {
	if !c.valid || direction == 0 {
		return 0, false
	}
	switch c.def.Type {
	case core.ParamTypeInt:
		t, ok := intTarget(c, direction)
		return float64(t), ok && t != c.i
	case core.ParamTypeFloat:
		t, ok := floatTarget(c, direction)
		return t, ok && math.Abs(t-c.f) >= 1e-9
	}
	return 0, false
}

// intTarget returns the clamped value one step away. ok is false when the
// unclamped step already lies outside the bounds.
func intTarget(c *control, direction int) (int, bool) {
	step := int(math.Round(c.def.Step))
	if step <= 0 {
		step = 1
	}
	raw := c.i + direction*step
	target := int(math.Round(c.def.Clamp(float64(raw))))
	if target != raw && target == c.i {
		return target, false
	}
	return target, true
}

func floatTarget(c *control, direction int) (float64, bool) {
	step := c.def.Step
	if step <= 0 {
		step = 0.05
	}
	raw := c.f + float64(direction)*step
	// Snap to the step grid.
	raw = math.Round(raw/step) * step
	target := c.def.Clamp(raw)
	if target != raw && math.Abs(target-c.f) < 1e-9 {
		return target, false
	}
	return target, true
}

func formatFloat(def core.ParameterControl, value float64) string {
	step := def.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// layoutControls stacks the rows from controlsTop down, with the +/- buttons
// right-aligned inside a panel of the given width.
func layoutControls(cs []control, width int) {
	for i := range cs {
		top := controlsTop + i*hudRow
		y := top + (hudRow-hudButton)/2
		plus := image.Rect(width-hudMargin-hudButton, y, width-hudMargin, y+hudButton)
		cs[i].top = top
		cs[i].plus = plus
		cs[i].minus = plus.Sub(image.Pt(hudButton+hudGap, 0))
	}
}

// hitTest finds the button under panel point (x, y). dir is -1 for minus
// and +1 for plus.
func hitTest(cs []control, x, y int) (index, dir int, ok bool) {
	p := image.Pt(x, y)
	for i := range cs {
		switch {
		case p.In(cs[i].minus):
			return i, -1, true
		case p.In(cs[i].plus):
			return i, 1, true
		}
	}
	return 0, 0, false
}
