package noise

import (
	"math"
	"slices"
	"testing"
)

func TestReferencePermutationIsComplete(t *testing.T) {
	seen := make(map[uint8]bool, 256)
	for _, v := range referencePerm {
		if seen[v] {
			t.Fatalf("value %d appears twice in the permutation", v)
		}
		seen[v] = true
	}
	if len(seen) != 256 {
		t.Fatalf("expected 256 distinct values, got %d", len(seen))
	}
}

func TestNoiseDeterministic(t *testing.T) {
	other := NewSimplex(0)
	for i := 0; i < 500; i++ {
		x := float64(i)*0.37 - 90
		y := float64(i)*0.53 + 12
		a := Noise(x, y)
		b := Noise(x, y)
		c := other.Noise2D(x, y)
		if math.Float64bits(a) != math.Float64bits(b) || math.Float64bits(a) != math.Float64bits(c) {
			t.Fatalf("Noise not deterministic at (%f, %f): %v %v %v", x, y, a, b, c)
		}
	}
}

func TestNoiseRangeAndVariation(t *testing.T) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < 20000; i++ {
		x := float64(i)*0.071 - 700
		y := float64(i%137)*0.19 - 13
		v := Noise(x, y)
		if v < -1 || v > 1 {
			t.Fatalf("Noise(%f, %f) = %f out of range", x, y, v)
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 0.5 {
		t.Fatalf("expected noise to vary, got span [%f, %f]", lo, hi)
	}
}

func TestNoiseZeroOnLatticeOrigin(t *testing.T) {
	// Every corner contribution vanishes at a simplex vertex.
	if v := Noise(0, 0); v != 0 {
		t.Fatalf("expected 0 at the origin, got %f", v)
	}
}

func TestNoiseContinuity(t *testing.T) {
	prev := Noise(0.1, 3.3)
	maxDiff := 0.0
	for i := 1; i < 2000; i++ {
		v := Noise(0.1+float64(i)*0.001, 3.3)
		maxDiff = math.Max(maxDiff, math.Abs(v-prev))
		prev = v
	}
	if maxDiff > 0.05 {
		t.Fatalf("adjacent samples differ by %f, expected a continuous field", maxDiff)
	}
}

func TestSeededSimplexDiffersFromReference(t *testing.T) {
	seeded := NewSimplex(1234)
	again := NewSimplex(1234)
	same := 0
	for i := 0; i < 100; i++ {
		x := float64(i)*0.61 + 0.25
		y := float64(i)*0.29 + 0.75
		if seeded.Noise2D(x, y) != again.Noise2D(x, y) {
			t.Fatalf("seeded simplex not deterministic at (%f, %f)", x, y)
		}
		if seeded.Noise2D(x, y) == Noise(x, y) {
			same++
		}
	}
	if same > 30 {
		t.Fatalf("seeded table produced %d/100 values identical to the reference", same)
	}
}

func TestFBmStaysInRange(t *testing.T) {
	for octaves := 1; octaves <= 12; octaves++ {
		for i := 0; i < 400; i++ {
			x := float64(i)*13.7 - 2000
			y := float64(i)*7.3 + 500
			v := FBm(reference, x, y, 0.002, octaves, 2.0, 0.5)
			if v < -1 || v > 1 {
				t.Fatalf("FBm octaves=%d at (%f, %f) = %f out of range", octaves, x, y, v)
			}
		}
	}
}

type constSource float64

func (c constSource) Noise2D(float64, float64) float64 { return float64(c) }

func TestFBmNormalizesByTotalAmplitude(t *testing.T) {
	tests := []struct {
		name        string
		octaves     int
		persistence float64
	}{
		{"single", 1, 0.5},
		{"default", 8, 0.5},
		{"flat weights", 16, 1.0},
		{"heavy tail", 24, 0.9},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FBm(constSource(1), 3, 4, 0.01, tc.octaves, 2, tc.persistence)
			if math.Abs(got-1) > 1e-12 {
				t.Fatalf("expected saturated source to stay at 1, got %f", got)
			}
		})
	}
}

func TestFBmStaysFiniteWhenWeightsOverflow(t *testing.T) {
	tests := []struct {
		name        string
		octaves     int
		lacunarity  float64
		persistence float64
	}{
		{"growing persistence", 1100, 2, 2},
		{"huge persistence", 8, 2, 1e300},
		{"huge lacunarity", 8, 1e300, 0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, p := range [][2]float64{{123.4, 567.8}, {-9000.5, 42.25}, {0.3, -0.7}} {
				v := FBm(reference, p[0], p[1], 0.001, tc.octaves, tc.lacunarity, tc.persistence)
				if math.IsNaN(v) || v < -1 || v > 1 {
					t.Fatalf("FBm at %v = %v, want a value in [-1, 1]", p, v)
				}
			}
		})
	}
}

func TestFBmZeroOctaves(t *testing.T) {
	if v := FBm(constSource(1), 10, 10, 0.001, 0, 2, 0.5); v != 0 {
		t.Fatalf("expected 0 for zero octaves, got %f", v)
	}
	if v := FBm(constSource(1), 10, 10, 0.001, -3, 2, 0.5); v != 0 {
		t.Fatalf("expected 0 for negative octaves, got %f", v)
	}
}

func TestFractalSampleMatchesFBm(t *testing.T) {
	f := DefaultFractal()
	for i := 0; i < 50; i++ {
		x, y := float64(i)*31, float64(i)*-17
		if f.Sample(reference, x, y) != FBm(reference, x, y, f.Scale, f.Octaves, f.Lacunarity, f.Persistence) {
			t.Fatalf("Sample disagrees with FBm at (%f, %f)", x, y)
		}
	}
}

func TestRegistry(t *testing.T) {
	names := Names()
	for _, want := range []string{"opensimplex", "perlin", "simplex"} {
		if !slices.Contains(names, want) {
			t.Fatalf("expected %q to be registered, got %v", want, names)
		}
	}
	if _, err := New("worley", 0); err == nil {
		t.Fatal("expected an error for an unknown source")
	}
	for _, name := range names {
		src, err := New(name, 42)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		for i := 0; i < 200; i++ {
			x, y := float64(i)*0.13, float64(i)*0.29
			v := src.Noise2D(x, y)
			if v < -1 || v > 1 {
				t.Fatalf("%s: Noise2D(%f, %f) = %f out of range", name, x, y, v)
			}
			if v != src.Noise2D(x, y) {
				t.Fatalf("%s: not deterministic at (%f, %f)", name, x, y)
			}
		}
	}
}
