package world

// Direction represents one of the six hex neighbor directions
type Direction int

// Direction constants, in neighbor enumeration order
const (
	West Direction = iota
	East
	NorthWest
	NorthEast
	SouthWest
	SouthEast
)

// Offset tables for odd-r offset coordinates. Odd rows sit half a cell to
// the right, so the diagonal neighbors shift with row parity.
var (
	evenRowOffsets = [6]Position{
		{Col: -1, Row: 0},
		{Col: 1, Row: 0},
		{Col: -1, Row: -1},
		{Col: 0, Row: -1},
		{Col: -1, Row: 1},
		{Col: 0, Row: 1},
	}
	oddRowOffsets = [6]Position{
		{Col: -1, Row: 0},
		{Col: 1, Row: 0},
		{Col: 0, Row: -1},
		{Col: 1, Row: -1},
		{Col: 0, Row: 1},
		{Col: 1, Row: 1},
	}
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{West, East, NorthWest, NorthEast, SouthWest, SouthEast}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case West:
		return "West"
	case East:
		return "East"
	case NorthWest:
		return "NorthWest"
	case NorthEast:
		return "NorthEast"
	case SouthWest:
		return "SouthWest"
	case SouthEast:
		return "SouthEast"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is one of the six hex directions
func (d Direction) IsValid() bool {
	return d >= West && d <= SouthEast
}

// Delta returns the column and row offsets for this direction from a cell in the given row
func (d Direction) Delta(row int) (colDelta, rowDelta int) {
	if !d.IsValid() {
		return 0, 0
	}
	off := evenRowOffsets[d]
	if row&1 == 1 {
		off = oddRowOffsets[d]
	}
	return off.Col, off.Row
}
