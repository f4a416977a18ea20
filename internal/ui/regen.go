package ui

import (
	"time"

	"biomes/internal/tiles"
)

// regenTracker remembers when each tile slot last changed generation.
type regenTracker struct {
	window time.Duration
	now    func() time.Time

	gens    []uint64
	changed []time.Time
}

func (r *regenTracker) observe(g *tiles.Grid) {
	ts := g.Tiles()
	if len(r.gens) != len(ts) {
		r.gens = make([]uint64, len(ts))
		r.changed = make([]time.Time, len(ts))
		for i := range ts {
			r.gens[i] = ts[i].Gen
		}
		return
	}
	now := r.now()
	for i := range ts {
		if ts[i].Gen != r.gens[i] {
			r.gens[i] = ts[i].Gen
			r.changed[i] = now
		}
	}
}

// fade returns 1 for a slot that changed just now, falling to 0 once the
// window has passed.
func (r *regenTracker) fade(i int) float64 {
	if i < 0 || i >= len(r.changed) || r.changed[i].IsZero() || r.window <= 0 {
		return 0
	}
	age := r.now().Sub(r.changed[i])
	if age >= r.window {
		return 0
	}
	return 1 - float64(age)/float64(r.window)
}
