package render

import (
	"image/color"
	"math"
)

// Boat sprite colours.
var (
	HullColor  = color.RGBA{R: 139, G: 90, B: 43, A: 255}
	DeckColor  = color.RGBA{R: 222, G: 184, B: 135, A: 255}
	WakeColor  = color.RGBA{R: 235, G: 245, B: 255, A: 200}
	ArrowColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// HullRGBA draws a size*size boat pointing up: a tapered hull outline with a
// lighter deck. Pixels outside the hull are transparent.
func HullRGBA(size int) []byte {
	if size <= 0 {
		return nil
	}
	buf := make([]byte, size*size*4)
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		// Width grows from the bow to the beam, then stays flat to the stern.
		t := float64(y) / float64(size)
		half := float64(size) * 0.32
		if t < 0.45 {
			half *= math.Sqrt(t / 0.45)
		}
		for x := 0; x < size; x++ {
			d := math.Abs(float64(x) - c)
			if d > half || y < 1 || y >= size-1 {
				continue
			}
			col := HullColor
			if d < half-1.5 && y > 2 && y < size-3 {
				col = DeckColor
			}
			setRGBA(buf, y*size+x, col)
		}
	}
	return buf
}

// WakeRGBA draws frame of a frames-long wake animation behind a boat
// pointing up. Successive frames push the foam arcs further astern.
func WakeRGBA(size, frame, frames int) []byte {
	if size <= 0 {
		return nil
	}
	buf := make([]byte, size*size*4)
	if frames <= 0 {
		frames = 1
	}
	frame = ((frame % frames) + frames) % frames
	cx := float64(size-1) / 2
	stern := float64(size) * 0.55
	phase := float64(frame) / float64(frames)
	for ring := 0; ring < 2; ring++ {
		r := float64(size) * (0.15 + 0.2*(phase+float64(ring))/2)
		alpha := 1 - (phase+float64(ring))/2
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dx := float64(x) - cx
				dy := float64(y) - stern
				if dy < 0 {
					continue
				}
				if math.Abs(math.Hypot(dx, dy)-r) > 0.75 {
					continue
				}
				col := WakeColor
				col.A = uint8(float64(col.A) * alpha)
				setRGBA(buf, y*size+x, col)
			}
		}
	}
	return buf
}

// ArrowRune picks a glyph for a compass heading in degrees.
func ArrowRune(heading float64) rune {
	arrows := [...]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}
	idx := int(math.Round(heading/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return arrows[idx]
}

func setRGBA(buf []byte, i int, c color.RGBA) {
	base := i * 4
	buf[base+0] = c.R
	buf[base+1] = c.G
	buf[base+2] = c.B
	buf[base+3] = c.A
}
