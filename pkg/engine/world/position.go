package world

import "fmt"

// Position is a logical (column, row) cell address. Row 0 is the ceiling.
type Position struct {
	Col int
	Row int
}

// NoPosition is returned by operations that did not place anything.
var NoPosition = Position{Col: -1, Row: -1}

// String returns the position as "(col,row)"
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Step returns the adjacent position in the given direction
func (p Position) Step(dir Direction) Position {
	dc, dr := dir.Delta(p.Row)
	return Position{Col: p.Col + dc, Row: p.Row + dr}
}

// Neighbors returns the six adjacent positions in direction order.
// No bounds checking is done; callers filter.
func (p Position) Neighbors() [6]Position {
	var result [6]Position
	for i, dir := range AllDirections() {
		result[i] = p.Step(dir)
	}
	return result
}
