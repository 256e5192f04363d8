package movement

// Direction is a cardinal facing on the tile grid.
type Direction int

const (
	DirDown Direction = iota
	DirUp
	DirLeft
	DirRight
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirDown:
		return "down"
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the unit tile offset for the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirDown:
		return 0, 1
	case DirUp:
		return 0, -1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// DirectionTowards returns the facing for a displacement vector. The
// dominant axis wins; horizontal is chosen only when |dx| is strictly
// greater than |dy|, so equal magnitudes resolve to the vertical axis.
func DirectionTowards(dx, dy float64) Direction {
	adx, ady := dx, dy
	if adx < 0 {
		adx = -adx
	}
	if ady < 0 {
		ady = -ady
	}
	if adx > ady {
		if dx < 0 {
			return DirLeft
		}
		return DirRight
	}
	if dy < 0 {
		return DirUp
	}
	return DirDown
}
