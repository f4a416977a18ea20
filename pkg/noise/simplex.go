// Package noise provides deterministic coherent noise and fractal sums of it.
package noise

import "biomes/pkg/core"

// referencePerm is Ken Perlin's reference permutation of 0..255.
var referencePerm = [256]uint8{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

const (
	f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
	g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
)

// Simplex is 2D simplex noise over a fixed permutation table. It holds no
// mutable state, so one value can be shared by every caller.
type Simplex struct {
	perm [512]uint8
}

var reference = NewSimplex(0)

// NewSimplex builds a simplex noise source. Seed 0 selects the reference
// permutation; any other seed shuffles a permutation deterministically.
func NewSimplex(seed int64) *Simplex {
	base := referencePerm[:]
	if seed != 0 {
		base = core.NewRNG(seed).Permutation(256)
	}
	s := &Simplex{}
	for i := range s.perm {
		s.perm[i] = base[i&255]
	}
	return s
}

// Noise evaluates the reference simplex noise at (x, y). The result is in
// [-1, 1] and identical for identical input.
func Noise(x, y float64) float64 {
	return reference.Noise2D(x, y)
}

// Noise2D implements Source.
func (s *Simplex) Noise2D(x, y float64) float64 {
	// Skew into simplex cell space.
	sk := (x + y) * f2
	i := fastFloor(x + sk)
	j := fastFloor(y + sk)

	t := float64(i+j) * g2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	// Lower or upper triangle of the cell.
	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	y2 := y0 - 1.0 + 2.0*g2

	ii := i & 255
	jj := j & 255

	var n0, n1, n2 float64
	if t0 := 0.5 - x0*x0 - y0*y0; t0 > 0 {
		t0 *= t0
		n0 = t0 * t0 * grad2(s.perm[ii+int(s.perm[jj])], x0, y0)
	}
	if t1 := 0.5 - x1*x1 - y1*y1; t1 > 0 {
		t1 *= t1
		n1 = t1 * t1 * grad2(s.perm[ii+i1+int(s.perm[jj+j1])], x1, y1)
	}
	if t2 := 0.5 - x2*x2 - y2*y2; t2 > 0 {
		t2 *= t2
		n2 = t2 * t2 * grad2(s.perm[ii+1+int(s.perm[jj+1])], x2, y2)
	}

	return clamp(40.0*(n0+n1+n2), -1, 1)
}

// grad2 dots (x, y) with one of 8 gradient directions picked by hash.
func grad2(hash uint8, x, y float64) float64 {
	h := hash & 7
	u, v := x, y
	if h >= 4 {
		u, v = y, x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + 2.0*v
}

func fastFloor(x float64) int {
	xi := int(x)
	if float64(xi) > x {
		return xi - 1
	}
	return xi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
