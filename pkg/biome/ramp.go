// Package biome maps scalar elevation values to terrain colours.
package biome

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Anchor pins a colour to a breakpoint on the elevation axis.
type Anchor struct {
	At    float64
	Name  string
	Color color.RGBA
}

// Ramp is an immutable piecewise-linear colour ramp over [-1, 1].
type Ramp struct {
	anchors []Anchor
}

var defaultAnchors = []struct {
	at   float64
	name string
	hex  string
}{
	{-1.00, "deep", "#000080"},
	{-0.25, "shallow", "#0000FF"},
	{0.00, "shore", "#0080FF"},
	{0.05, "sand", "#F0F040"},
	{0.10, "grass", "#11772D"},
	{0.50, "dirt", "#855439"},
	{0.85, "rock", "#808080"},
	{0.95, "mountain", "#C0C0C0"},
	{1.00, "snow", "#FFFFFF"},
}

var defaultRamp = buildDefaultRamp()

// DefaultRamp returns the standard nine-colour terrain ramp. The returned
// value is shared; Ramp has no mutators.
func DefaultRamp() *Ramp { return defaultRamp }

func buildDefaultRamp() *Ramp {
	anchors := make([]Anchor, len(defaultAnchors))
	for i, a := range defaultAnchors {
		anchors[i] = Anchor{At: a.at, Name: a.name, Color: mustHex(a.hex)}
	}
	r, err := NewRamp(anchors)
	if err != nil {
		panic(err)
	}
	return r
}

// NewRamp validates anchors and returns a ramp owning a copy of them.
func NewRamp(anchors []Anchor) (*Ramp, error) {
	if len(anchors) < 2 {
		return nil, fmt.Errorf("ramp needs at least 2 anchors, got %d", len(anchors))
	}
	for i := 1; i < len(anchors); i++ {
		if anchors[i].At <= anchors[i-1].At {
			return nil, fmt.Errorf("ramp anchors must be strictly increasing: %g follows %g", anchors[i].At, anchors[i-1].At)
		}
	}
	if first := anchors[0].At; first > -1 {
		return nil, fmt.Errorf("ramp must start at or below -1, starts at %g", first)
	}
	if last := anchors[len(anchors)-1].At; last < 1 {
		return nil, fmt.Errorf("ramp must end at or above 1, ends at %g", last)
	}
	own := make([]Anchor, len(anchors))
	copy(own, anchors)
	return &Ramp{anchors: own}, nil
}

// Anchors returns a copy of the ramp's anchors.
func (r *Ramp) Anchors() []Anchor {
	out := make([]Anchor, len(r.anchors))
	copy(out, r.anchors)
	return out
}

// Classify returns the colour for value, clamped to [-1, 1]. Between two
// anchors the channels are interpolated linearly and truncated to 8 bits.
func (r *Ramp) Classify(value float64) color.RGBA {
	i := r.segment(value)
	a, b := r.anchors[i], r.anchors[i+1]
	t := (clamp(value) - a.At) / (b.At - a.At)
	return color.RGBA{
		R: lerp(a.Color.R, b.Color.R, t),
		G: lerp(a.Color.G, b.Color.G, t),
		B: lerp(a.Color.B, b.Color.B, t),
		A: 255,
	}
}

// Band names the anchor whose segment contains value.
func (r *Ramp) Band(value float64) string {
	return r.anchors[r.segment(value)].Name
}

// segment returns the index of the lower anchor of the segment holding
// value. Values at or past the last interior breakpoint use the final
// segment so the top anchor is reachable.
func (r *Ramp) segment(value float64) int {
	v := clamp(value)
	last := len(r.anchors) - 2
	for i := 0; i < last; i++ {
		if v < r.anchors[i+1].At {
			return i
		}
	}
	return last
}

// ParseRamp reads a ramp from "at:#rrggbb[:name],..." entries.
func ParseRamp(spec string) (*Ramp, error) {
	var anchors []Anchor
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("invalid ramp entry %q: want at:#hex[:name]", entry)
		}
		at, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ramp breakpoint in %q: %w", entry, err)
		}
		col, err := parseHex(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid ramp colour in %q: %w", entry, err)
		}
		name := strconv.Itoa(len(anchors))
		if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
			name = strings.TrimSpace(parts[2])
		}
		anchors = append(anchors, Anchor{At: at, Name: name, Color: col})
	}
	return NewRamp(anchors)
}

func parseHex(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func mustHex(s string) color.RGBA {
	c, err := parseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8((float64(b)-float64(a))*t + float64(a))
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
