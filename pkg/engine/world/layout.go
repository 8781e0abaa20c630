package world

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Layout maps logical positions to world space. World Y grows downward from
// Origin, which is the center of cell (0,0).
type Layout struct {
	Origin    r2.Vec
	CellSize  float64 // horizontal distance between cell centers
	RowHeight float64 // vertical distance between row centers
}

// DefaultLayout returns a unit layout with hex-packed row spacing
func DefaultLayout() Layout {
	return Layout{
		CellSize:  1,
		RowHeight: math.Sqrt(3) / 2,
	}
}

// RowOffset returns the horizontal offset of a row in cells: 0 for even rows, 0.5 for odd
func RowOffset(row int) float64 {
	if row&1 == 1 {
		return 0.5
	}
	return 0
}

// ToWorld returns the world-space center of a logical position
func (l Layout) ToWorld(pos Position) r2.Vec {
	return r2.Vec{
		X: l.Origin.X + (float64(pos.Col)+RowOffset(pos.Row))*l.CellSize,
		Y: l.Origin.Y + float64(pos.Row)*l.RowHeight,
	}
}

// ToGrid returns the logical position whose center is nearest on each axis to p.
// It is the exact inverse of ToWorld for integer positions.
func (l Layout) ToGrid(p r2.Vec) Position {
	row := int(math.Round((p.Y - l.Origin.Y) / l.RowHeight))
	col := int(math.Round((p.X-l.Origin.X)/l.CellSize - RowOffset(row)))
	return Position{Col: col, Row: row}
}

// Distance returns the Euclidean distance between two world points
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}
