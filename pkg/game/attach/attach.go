// Package attach snaps a free-flying projectile into the grid cell it should occupy.
package attach

import (
	"math"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
	"gonum.org/v1/gonum/spatial/r2"

	"hexpop/pkg/engine/world"
)

// DefaultMaxRing is how many neighbor rings are searched for an empty slot
// before falling back to the snapped cell
const DefaultMaxRing = 3

// Resolver finds attachment positions on a grid
type Resolver struct {
	grid    *world.Grid
	maxRing int
}

// NewResolver creates a resolver for the given grid. maxRing < 1 uses DefaultMaxRing.
func NewResolver(g *world.Grid, maxRing int) *Resolver {
	if maxRing < 1 {
		maxRing = DefaultMaxRing
	}
	return &Resolver{grid: g, maxRing: maxRing}
}

// FindAttachPosition returns the cell a projectile at point should snap into.
//
// The point is snapped to the nearest cell with its column clamped into the
// grid. An empty snapped cell wins outright. Otherwise the nearest empty
// in-bounds neighbor wins, ties going to the earlier neighbor in enumeration
// order. If the whole first ring is full, wider rings are searched the same
// way; if they are full too, the snapped cell is returned even though it is
// occupied.
func (r *Resolver) FindAttachPosition(point r2.Vec) world.Position {
	candidate := r.grid.WorldToGrid(point)
	candidate.Col = r.clampColumn(candidate.Col)

	if r.grid.IsEmpty(candidate) {
		return candidate
	}

	nbrs := candidate.Neighbors()
	if best, ok := r.nearestEmpty(nbrs[:], point); ok {
		return best
	}

	if best, ok := r.searchRings(candidate, point); ok {
		return best
	}

	return candidate
}

// Attach resolves the attachment position for b and places it there.
// It is a no-op returning (NoPosition, false) if b is already attached or
// the resolved slot is still occupied.
func (r *Resolver) Attach(b *world.Bubble, point r2.Vec) (world.Position, bool) {
	if b == nil || b.Attached {
		return world.NoPosition, false
	}

	pos := r.FindAttachPosition(point)
	if !r.grid.IsEmpty(pos) {
		return world.NoPosition, false
	}

	r.grid.Place(pos, b)
	return pos, true
}

func (r *Resolver) clampColumn(col int) int {
	if col < 0 {
		return 0
	}
	if col >= r.grid.Width() {
		return r.grid.Width() - 1
	}
	return col
}

// nearestEmpty returns the empty in-bounds candidate closest to point.
// Strict comparison keeps the earliest candidate on ties.
func (r *Resolver) nearestEmpty(candidates []world.Position, point r2.Vec) (world.Position, bool) {
	best := world.NoPosition
	bestDist := math.Inf(1)
	for _, pos := range candidates {
		if !r.grid.InBounds(pos) || !r.grid.IsEmpty(pos) {
			continue
		}
		d := world.Distance(r.grid.GridToWorld(pos), point)
		if d < bestDist {
			best = pos
			bestDist = d
		}
	}
	return best, best != world.NoPosition
}

type ringStep struct {
	pos   world.Position
	depth int
}

// searchRings walks outward from center breadth-first, one ring at a time,
// from ring 2 up to maxRing, and returns the nearest empty slot of the first
// ring that has one.
func (r *Resolver) searchRings(center world.Position, point r2.Vec) (world.Position, bool) {
	visited := mapset.New[world.Position]()
	visited.Put(center)
	frontier := queue.New[ringStep]()
	frontier.Enqueue(ringStep{pos: center})

	var ring []world.Position
	depth := 0

	for !frontier.Empty() {
		step := frontier.Dequeue()
		if step.depth != depth {
			if depth >= 2 {
				if best, ok := r.nearestEmpty(ring, point); ok {
					return best, true
				}
			}
			ring = ring[:0]
			depth = step.depth
		}
		ring = append(ring, step.pos)

		if step.depth >= r.maxRing {
			continue
		}
		for _, n := range step.pos.Neighbors() {
			if visited.Has(n) || !r.grid.InBounds(n) {
				continue
			}
			visited.Put(n)
			frontier.Enqueue(ringStep{pos: n, depth: step.depth + 1})
		}
	}

	if depth >= 2 {
		return r.nearestEmpty(ring, point)
	}
	return world.NoPosition, false
}
