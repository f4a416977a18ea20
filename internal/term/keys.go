package term

import (
	"time"

	"biomes/internal/core"
)

// Terminals report key presses and auto-repeats but never releases, so a
// key counts as held until hold has passed since its last press.
type heldKeys struct {
	hold time.Duration
	last [4]time.Time
}

var keyBits = [4]core.Direction{core.DirUp, core.DirRight, core.DirDown, core.DirLeft}

func (h *heldKeys) press(d core.Direction, at time.Time) {
	for i, bit := range keyBits {
		if d&bit != 0 {
			h.last[i] = at
		}
	}
}

func (h *heldKeys) direction(now time.Time) core.Direction {
	var d core.Direction
	for i, bit := range keyBits {
		if !h.last[i].IsZero() && now.Sub(h.last[i]) < h.hold {
			d |= bit
		}
	}
	return d
}

func (h *heldKeys) release() {
	h.last = [4]time.Time{}
}
