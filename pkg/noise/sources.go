package noise

import (
	"fmt"
	"sort"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Factory constructs a Source from a seed.
type Factory func(seed int64) Source

// DefaultSource names the source used when none is configured.
const DefaultSource = "simplex"

var sources = map[string]Factory{}

// Register adds a source factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sources[name] = f
}

// New constructs the named source.
func New(name string, seed int64) (Source, error) {
	f, ok := sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown noise source %q (known: %v)", name, Names())
	}
	return f(seed), nil
}

// Names lists registered sources in sorted order.
func Names() []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenSimplex adapts opensimplex-go to Source.
type OpenSimplex struct {
	n opensimplex.Noise
}

// NewOpenSimplex returns an OpenSimplex source for seed.
func NewOpenSimplex(seed int64) *OpenSimplex {
	return &OpenSimplex{n: opensimplex.New(seed)}
}

// Noise2D implements Source.
func (o *OpenSimplex) Noise2D(x, y float64) float64 {
	return clamp(o.n.Eval2(x, y), -1, 1)
}

// Perlin adapts a single octave of go-perlin to Source. Octaves are summed
// by FBm, not by the library.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin returns a Perlin source for seed.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(2, 2, 1, seed)}
}

// Noise2D implements Source.
func (p *Perlin) Noise2D(x, y float64) float64 {
	return clamp(p.p.Noise2D(x, y), -1, 1)
}

func init() {
	Register("simplex", func(seed int64) Source { return NewSimplex(seed) })
	Register("opensimplex", func(seed int64) Source { return NewOpenSimplex(seed) })
	Register("perlin", func(seed int64) Source { return NewPerlin(seed) })
}
