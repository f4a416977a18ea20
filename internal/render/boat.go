//go:build ebiten

package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// BoatSprite draws the boat hull and its animated wake.
type BoatSprite struct {
	size int
	hull *ebiten.Image
	wake []*ebiten.Image
}

// NewBoatSprite builds the hull and frames wake images of the given size.
func NewBoatSprite(size, frames int) *BoatSprite {
	if size <= 0 {
		size = 24
	}
	if frames <= 0 {
		frames = 1
	}
	s := &BoatSprite{size: size, hull: ebiten.NewImage(size, size)}
	s.hull.WritePixels(HullRGBA(size))
	s.wake = make([]*ebiten.Image, frames)
	for i := range s.wake {
		img := ebiten.NewImage(size, size)
		img.WritePixels(WakeRGBA(size, i, frames))
		s.wake[i] = img
	}
	return s
}

// Draw paints the boat centred on (x, y) facing heading degrees clockwise
// from up. The wake is only drawn while afloat.
func (s *BoatSprite) Draw(screen *ebiten.Image, x, y, heading float64, afloat bool, frame int) {
	theta := heading * math.Pi / 180
	if afloat && len(s.wake) > 0 {
		w := s.wake[((frame%len(s.wake))+len(s.wake))%len(s.wake)]
		screen.DrawImage(w, s.placement(x, y, theta))
	}
	screen.DrawImage(s.hull, s.placement(x, y, theta))
	if !afloat {
		vector.StrokeCircle(screen, float32(x), float32(y), float32(s.size)*0.6, 1.5, ArrowColor, true)
	}
}

func (s *BoatSprite) placement(x, y, theta float64) *ebiten.DrawImageOptions {
	half := float64(s.size) / 2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-half, -half)
	op.GeoM.Rotate(theta)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	return op
}
