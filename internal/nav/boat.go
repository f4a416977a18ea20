// Package nav models the boat: steering input, the sea-level collision test
// and the grounded/afloat state machine.
package nav

import (
	"biomes/internal/core"
)

// Sampler answers elevation queries at world positions.
type Sampler interface {
	Elevation(x, y float64) float64
}

// State is the boat's navigation state.
type State uint8

const (
	// Grounded boats may move anywhere until they first touch water.
	Grounded State = iota
	// Afloat boats only move onto positions below sea level.
	Afloat
)

func (s State) String() string {
	if s == Afloat {
		return "afloat"
	}
	return "grounded"
}

// Options configures a new Boat.
type Options struct {
	Speed       float64
	SeaLevel    float64
	TrailFrames int
	TrailPeriod int
	X, Y        float64
}

// DefaultOptions mirrors the default configuration.
func DefaultOptions() Options {
	return Options{
		Speed:       4,
		SeaLevel:    0.05,
		TrailFrames: 5,
		TrailPeriod: 10,
	}
}

// Boat holds the player's world position and animation state.
type Boat struct {
	sampler Sampler
	opts    Options

	x, y    float64
	state   State
	heading float64

	tick  int
	frame int
}

// NewBoat places a grounded boat at the configured start position.
func NewBoat(s Sampler, opts Options) *Boat {
	if opts.TrailPeriod <= 0 {
		opts.TrailPeriod = 1
	}
	return &Boat{sampler: s, opts: opts, x: opts.X, y: opts.Y}
}

// Move attempts one step in dir. It returns false and leaves the boat
// unchanged when dir has no effective direction or the target is land for
// an afloat boat. Opposing keys cancel before sampling, so Up+Down or
// Left+Right alone is no effective direction: nothing is sampled and the
// heading is kept.
func (b *Boat) Move(dir core.Direction) bool {
	dir = dir.Normalize()
	if dir == 0 {
		return false
	}
	dx, dy := dir.Delta(b.opts.Speed)
	nx, ny := b.x+dx, b.y+dy
	elev := b.sampler.Elevation(nx, ny)

	switch b.state {
	case Afloat:
		if elev >= b.opts.SeaLevel {
			return false
		}
	case Grounded:
		if elev <= b.opts.SeaLevel {
			b.state = Afloat
		}
	}
	b.x, b.y = nx, ny
	if angle, ok := dir.Heading(); ok {
		b.heading = angle
	}
	return true
}

// Tick advances the wake animation by one frame.
func (b *Boat) Tick() {
	if b.opts.TrailFrames <= 0 {
		b.frame = 0
		return
	}
	b.tick++
	if b.tick >= b.opts.TrailPeriod {
		b.tick = 0
		b.frame = (b.frame + 1) % b.opts.TrailFrames
	}
}

// Position returns the boat's world position.
func (b *Boat) Position() (x, y float64) { return b.x, b.y }

// State returns the navigation state.
func (b *Boat) State() State { return b.state }

// Afloat reports whether the boat has reached water.
func (b *Boat) Afloat() bool { return b.state == Afloat }

// Heading returns the facing angle in degrees, clockwise from up.
func (b *Boat) Heading() float64 { return b.heading }

// TrailFrame returns the current wake animation frame.
func (b *Boat) TrailFrame() int { return b.frame }

// Speed returns the displacement per axis for one step.
func (b *Boat) Speed() float64 { return b.opts.Speed }

// SeaLevel returns the elevation threshold separating water from land.
func (b *Boat) SeaLevel() float64 { return b.opts.SeaLevel }

// SetSpeed changes the step length. Non-positive values are ignored.
func (b *Boat) SetSpeed(v float64) {
	if v > 0 {
		b.opts.Speed = v
	}
}

// SetSeaLevel changes the collision threshold.
func (b *Boat) SetSeaLevel(v float64) { b.opts.SeaLevel = v }

// SetSampler swaps the elevation source after a terrain rebuild.
func (b *Boat) SetSampler(s Sampler) {
	if s != nil {
		b.sampler = s
	}
}

// Elevation samples the terrain under the boat.
func (b *Boat) Elevation() float64 { return b.sampler.Elevation(b.x, b.y) }
