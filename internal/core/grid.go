package core

// Ring addresses a fixed W x H block of slots with unbounded integer
// coordinates. Any W x H window of consecutive coordinates maps onto every
// slot exactly once.
type Ring struct {
	W, H int
}

// NewRing returns a ring of the given dimensions; non-positive sizes become 1.
func NewRing(w, h int) Ring {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return Ring{W: w, H: h}
}

// Len is the number of slots.
func (r Ring) Len() int { return r.W * r.H }

// Wrap applies toroidal wrapping to the provided coordinates.
func (r Ring) Wrap(x, y int) (int, int) {
	x = (x%r.W + r.W) % r.W
	y = (y%r.H + r.H) % r.H
	return x, y
}

// Index returns the linear slot index for coordinates (x, y) after wrapping.
func (r Ring) Index(x, y int) int {
	x, y = r.Wrap(x, y)
	return y*r.W + x
}
