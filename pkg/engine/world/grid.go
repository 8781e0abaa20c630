package world

import (
	"github.com/zyedidia/generic/mapset"
	"gonum.org/v1/gonum/spatial/r2"
)

// Grid is the sparse, row-major store of bubbles. Rows are unbounded
// downward; the logical width is fixed.
type Grid struct {
	rows   [][]*Bubble
	width  int
	layout Layout
}

// NewGrid creates an empty grid with the given logical width
func NewGrid(width int, layout Layout) *Grid {
	g := &Grid{}
	g.Build(width, layout)
	return g
}

// Build resets the grid to an empty state with the given width and layout
func (g *Grid) Build(width int, layout Layout) {
	if width <= 0 {
		panic("Grid width must be positive")
	}
	if layout.CellSize <= 0 || layout.RowHeight <= 0 {
		panic("Grid layout spacing must be positive")
	}

	g.width = width
	g.layout = layout
	g.rows = nil
}

// Width returns the logical width of the grid
func (g *Grid) Width() int {
	return g.width
}

// Rows returns the number of rows currently held in storage
func (g *Grid) Rows() int {
	return len(g.rows)
}

// Layout returns the world-space layout of the grid
func (g *Grid) Layout() Layout {
	return g.layout
}

// IsValidColumn checks if a column is within the logical width
func (g *Grid) IsValidColumn(col int) bool {
	return col >= 0 && col < g.width
}

// InBounds checks if a position is a legal placement target: valid column and row >= 0
func (g *Grid) InBounds(pos Position) bool {
	return pos.Row >= 0 && g.IsValidColumn(pos.Col)
}

// Get returns the bubble at the given position, or nil if the slot is empty
// or outside storage
func (g *Grid) Get(pos Position) *Bubble {
	if pos.Row < 0 || pos.Row >= len(g.rows) {
		return nil
	}
	row := g.rows[pos.Row]
	if pos.Col < 0 || pos.Col >= len(row) {
		return nil
	}
	return row[pos.Col]
}

// IsEmpty reports whether the slot holds no bubble. Positions above the
// ceiling (row < 0) are solid and never empty.
func (g *Grid) IsEmpty(pos Position) bool {
	if pos.Row < 0 {
		return false
	}
	return g.Get(pos) == nil
}

// Set stores b (or nil) at the given position, growing storage as needed.
// Negative rows and columns are ignored.
func (g *Grid) Set(pos Position, b *Bubble) {
	if pos.Row < 0 || pos.Col < 0 {
		return
	}
	for len(g.rows) <= pos.Row {
		g.rows = append(g.rows, make([]*Bubble, g.width))
	}
	row := g.rows[pos.Row]
	for len(row) <= pos.Col {
		row = append(row, nil)
	}
	row[pos.Col] = b
	g.rows[pos.Row] = row
}

// Place attaches b at the given position and snaps its world position to the slot
func (g *Grid) Place(pos Position, b *Bubble) {
	if b == nil {
		return
	}
	b.Attached = true
	b.World = g.GridToWorld(pos)
	g.Set(pos, b)
}

// Remove clears the slot and returns the bubble that was there, if any
func (g *Grid) Remove(pos Position) *Bubble {
	b := g.Get(pos)
	if b != nil {
		g.Set(pos, nil)
	}
	return b
}

// Move relocates the bubble at from into the empty slot to.
// Returns false if from is empty or to is occupied.
func (g *Grid) Move(from, to Position) bool {
	b := g.Get(from)
	if b == nil || !g.IsEmpty(to) {
		return false
	}
	g.Set(from, nil)
	g.Place(to, b)
	return true
}

// Neighbors returns the six positions adjacent to pos, unfiltered
func (g *Grid) Neighbors(pos Position) [6]Position {
	return pos.Neighbors()
}

// GridToWorld returns the world-space center of a logical position
func (g *Grid) GridToWorld(pos Position) r2.Vec {
	return g.layout.ToWorld(pos)
}

// WorldToGrid returns the logical position nearest to a world point
func (g *Grid) WorldToGrid(p r2.Vec) Position {
	return g.layout.ToGrid(p)
}

// ForEach calls fn for every bubble in row-major order
func (g *Grid) ForEach(fn func(pos Position, b *Bubble)) {
	for r, row := range g.rows {
		for c, b := range row {
			if b != nil {
				fn(Position{Col: c, Row: r}, b)
			}
		}
	}
}

// Count returns the number of bubbles on the grid
func (g *Grid) Count() int {
	n := 0
	g.ForEach(func(Position, *Bubble) {
		n++
	})
	return n
}

// IsCleared returns true if no bubble remains anywhere on the grid
func (g *Grid) IsCleared() bool {
	for _, row := range g.rows {
		for _, b := range row {
			if b != nil {
				return false
			}
		}
	}
	return true
}

// AvailableColors returns the colors currently present, in enumeration order
func (g *Grid) AvailableColors() []Color {
	present := mapset.New[Color]()
	g.ForEach(func(_ Position, b *Bubble) {
		present.Put(b.Color)
	})

	var colors []Color
	for _, c := range AllColors() {
		if present.Has(c) {
			colors = append(colors, c)
		}
	}
	return colors
}

// LowestRow returns the highest row index holding a bubble, or -1 if the grid is empty
func (g *Grid) LowestRow() int {
	for r := len(g.rows) - 1; r >= 0; r-- {
		for _, b := range g.rows[r] {
			if b != nil {
				return r
			}
		}
	}
	return -1
}

// InsertRowTop inserts row at index 0. Every existing row's index grows by one.
func (g *Grid) InsertRowTop(row []*Bubble) {
	stored := make([]*Bubble, g.width)
	copy(stored, row)
	g.rows = append([][]*Bubble{stored}, g.rows...)
}

// Shift moves every bubble's world position vertically by dy without
// touching logical positions
func (g *Grid) Shift(dy float64) {
	g.ForEach(func(_ Position, b *Bubble) {
		b.World.Y += dy
	})
}

// SyncWorldPositions snaps every bubble's world position to its logical slot
func (g *Grid) SyncWorldPositions() {
	g.ForEach(func(pos Position, b *Bubble) {
		b.World = g.GridToWorld(pos)
	})
}

// Clear removes every bubble from the grid
func (g *Grid) Clear() {
	g.rows = nil
}
