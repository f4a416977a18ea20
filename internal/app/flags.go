package app

import (
	"flag"

	"biomes/internal/core"
)

// Options holds the window parameters of the graphical frontend.
type Options struct {
	Width      int
	Height     int
	Fullscreen bool
	TPS        int
	HUDWidth   int
	BoatSize   int
}

// NewOptions returns Options populated with sensible defaults.
func NewOptions() *Options {
	return &Options{Width: 1280, Height: 720, TPS: 60, HUDWidth: 260, BoatSize: 28}
}

// Bind attaches the options to the provided FlagSet.
func (o *Options) Bind(fs *flag.FlagSet) {
	fs.IntVar(&o.Width, "width", o.Width, "viewport width in pixels")
	fs.IntVar(&o.Height, "height", o.Height, "viewport height in pixels")
	fs.BoolVar(&o.Fullscreen, "fullscreen", o.Fullscreen, "start in fullscreen")
	fs.IntVar(&o.TPS, "tps", o.TPS, "ticks per second")
	fs.IntVar(&o.HUDWidth, "hud-width", o.HUDWidth, "parameter panel width, 0 disables the HUD")
	fs.IntVar(&o.BoatSize, "boat-size", o.BoatSize, "boat sprite edge in pixels")
}

// Viewport returns the configured viewport size, falling back to defaults
// for non-positive dimensions.
func (o *Options) Viewport() core.Size {
	def := NewOptions()
	w, h := o.Width, o.Height
	if w <= 0 {
		w = def.Width
	}
	if h <= 0 {
		h = def.Height
	}
	return core.Size{W: w, H: h}
}
