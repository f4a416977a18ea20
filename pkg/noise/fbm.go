package noise

import "math"

// Source is a 2D coherent noise field with output in [-1, 1].
type Source interface {
	Noise2D(x, y float64) float64
}

// Fractal holds the parameters of a fractal Brownian motion sum.
type Fractal struct {
	Scale       float64
	Octaves     int
	Lacunarity  float64
	Persistence float64
}

// DefaultFractal returns the parameters used for terrain elevation.
func DefaultFractal() Fractal {
	return Fractal{Scale: 0.001, Octaves: 8, Lacunarity: 2.0, Persistence: 0.5}
}

// Sample evaluates the fractal sum of src at (x, y).
func (f Fractal) Sample(src Source, x, y float64) float64 {
	return FBm(src, x, y, f.Scale, f.Octaves, f.Lacunarity, f.Persistence)
}

// FBm sums octaves layers of src. Layer i is sampled at scale*lacunarity^i
// and weighted by persistence^i; the sum is divided by the total weight so
// the result stays inside the source's range. Zero or negative octaves
// yield 0. Summation stops at the first layer whose frequency, sample
// coordinates or weight would no longer be finite.
func FBm(src Source, x, y, scale float64, octaves int, lacunarity, persistence float64) float64 {
	if octaves <= 0 {
		return 0
	}
	var (
		total     float64
		weight    float64
		frequency = scale
		amplitude = 1.0
	)
	for i := 0; i < octaves; i++ {
		sx, sy := x*frequency, y*frequency
		if !finite(sx) || !finite(sy) || !finite(weight+amplitude) {
			break
		}
		total += src.Noise2D(sx, sy) * amplitude
		weight += amplitude
		frequency *= lacunarity
		amplitude *= persistence
	}
	if weight == 0 || !finite(total) {
		return 0
	}
	return clamp(total/weight, -1, 1)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
