package core

// Size describes viewport or grid dimensions.
type Size struct {
	W int
	H int
}

// Direction is a bitmask of held movement keys.
type Direction uint8

const (
	DirUp    Direction = 1
	DirRight Direction = 2
	DirDown  Direction = 4
	DirLeft  Direction = 8

	dirMask = DirUp | DirRight | DirDown | DirLeft
)

// headings maps a normalized direction to its compass angle in degrees,
// clockwise from up.
var headings = [16]struct {
	angle float64
	ok    bool
}{
	DirUp:              {0, true},
	DirUp | DirRight:   {45, true},
	DirRight:           {90, true},
	DirDown | DirRight: {135, true},
	DirDown:            {180, true},
	DirDown | DirLeft:  {-135, true},
	DirLeft:            {-90, true},
	DirUp | DirLeft:    {-45, true},
}

// Normalize drops unknown bits and cancels opposing pairs.
func (d Direction) Normalize() Direction {
	d &= dirMask
	if d&DirUp != 0 && d&DirDown != 0 {
		d &^= DirUp | DirDown
	}
	if d&DirLeft != 0 && d&DirRight != 0 {
		d &^= DirLeft | DirRight
	}
	return d
}

// Delta returns the displacement for one step at speed. Each active axis
// moves by the full speed, so diagonals cover speed*sqrt(2).
func (d Direction) Delta(speed float64) (dx, dy float64) {
	d = d.Normalize()
	if d&DirUp != 0 {
		dy -= speed
	}
	if d&DirDown != 0 {
		dy += speed
	}
	if d&DirRight != 0 {
		dx += speed
	}
	if d&DirLeft != 0 {
		dx -= speed
	}
	return dx, dy
}

// Heading reports the compass angle for d. ok is false when d has no
// effective direction.
func (d Direction) Heading() (angle float64, ok bool) {
	h := headings[d.Normalize()]
	return h.angle, h.ok
}

// String renders the direction as compass letters, e.g. "NE".
func (d Direction) String() string {
	d = d.Normalize()
	s := ""
	if d&DirUp != 0 {
		s += "N"
	}
	if d&DirDown != 0 {
		s += "S"
	}
	if d&DirRight != 0 {
		s += "E"
	}
	if d&DirLeft != 0 {
		s += "W"
	}
	if s == "" {
		return "-"
	}
	return s
}

// DirectionFromKeys builds a direction from held key states.
func DirectionFromKeys(up, right, down, left bool) Direction {
	var d Direction
	if up {
		d |= DirUp
	}
	if right {
		d |= DirRight
	}
	if down {
		d |= DirDown
	}
	if left {
		d |= DirLeft
	}
	return d
}
