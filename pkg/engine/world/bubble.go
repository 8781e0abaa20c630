// Package world provides the hex grid store: positions, neighbor tables,
// the world-space layout and the sparse row-major grid of bubbles.
// These are engine-level constructs with no knowledge of matching rules.
package world

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Bubble is a single grid occupant.
type Bubble struct {
	Color Color

	// Attached is false while the bubble is in flight and true once it
	// belongs to the grid.
	Attached bool

	// World is the bubble's current world-space position. The grid keeps it
	// in sync with the logical position on placement and after row inserts.
	World r2.Vec
}

// NewBubble creates a new unattached bubble of the given color
func NewBubble(c Color) *Bubble {
	return &Bubble{Color: c}
}
