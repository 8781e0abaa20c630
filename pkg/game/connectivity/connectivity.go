// Package connectivity implements the breadth-first searches over the hex
// grid: same-color flood fill from a seed, reachability from the ceiling row
// and the floating cells left over.
//
// Every traversal keeps its own visited set, so traversals never leave state
// behind on the grid and read-only traversals may run side by side.
package connectivity

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"hexpop/pkg/engine/world"
)

// Predicate decides whether an occupied cell joins a traversal
type Predicate func(b *world.Bubble) bool

// AnyColor accepts every bubble
func AnyColor(*world.Bubble) bool {
	return true
}

// MatchColor accepts bubbles of the given color only
func MatchColor(c world.Color) Predicate {
	return func(b *world.Bubble) bool {
		return b.Color == c
	}
}

// FloodFill returns every occupied cell reachable from seed through occupied
// neighbors accepted by match, in breadth-first discovery order. The seed is
// included when it is occupied and accepted. A nil match accepts any color.
func FloodFill(g *world.Grid, seed world.Position, match Predicate) []world.Position {
	return traverse(g, []world.Position{seed}, match)
}

// traverse runs a breadth-first search from seeds in order. Results are in
// discovery order: the order cells entered the queue.
func traverse(g *world.Grid, seeds []world.Position, match Predicate) []world.Position {
	if match == nil {
		match = AnyColor
	}

	accept := func(pos world.Position) bool {
		b := g.Get(pos)
		return b != nil && match(b)
	}

	var found []world.Position
	visited := mapset.New[world.Position]()
	frontier := queue.New[world.Position]()

	for _, seed := range seeds {
		if visited.Has(seed) || !accept(seed) {
			continue
		}
		visited.Put(seed)
		found = append(found, seed)
		frontier.Enqueue(seed)
	}

	for !frontier.Empty() {
		current := frontier.Dequeue()
		for _, n := range current.Neighbors() {
			if visited.Has(n) || !accept(n) {
				continue
			}
			visited.Put(n)
			found = append(found, n)
			frontier.Enqueue(n)
		}
	}

	return found
}

// Reachable is the ordered result of a reachability search with constant-time membership.
type Reachable struct {
	Order []world.Position
	set   mapset.Set[world.Position]
}

func newReachable(order []world.Position) Reachable {
	set := mapset.New[world.Position]()
	for _, pos := range order {
		set.Put(pos)
	}
	return Reachable{Order: order, set: set}
}

// Has reports whether pos is part of the reachable set
func (r Reachable) Has(pos world.Position) bool {
	return r.set.Has(pos)
}

// Len returns the number of reachable cells
func (r Reachable) Len() int {
	return len(r.Order)
}

// ConnectedToTop returns every cell structurally reachable from the ceiling:
// the search is seeded with each occupied row-0 cell left to right and
// crosses any color.
func ConnectedToTop(g *world.Grid) Reachable {
	var seeds []world.Position
	for col := 0; col < g.Width(); col++ {
		pos := world.Position{Col: col, Row: 0}
		if g.Get(pos) != nil {
			seeds = append(seeds, pos)
		}
	}
	return newReachable(traverse(g, seeds, AnyColor))
}

// FloatingCells returns every occupied cell not reachable from the ceiling,
// in row-major order
func FloatingCells(g *world.Grid) []world.Position {
	connected := ConnectedToTop(g)
	var floating []world.Position
	g.ForEach(func(pos world.Position, _ *world.Bubble) {
		if !connected.Has(pos) {
			floating = append(floating, pos)
		}
	})
	return floating
}

// IsAdjacentToConnected returns true if any of the six neighbors of pos is in connected
func IsAdjacentToConnected(pos world.Position, connected Reachable) bool {
	for _, n := range pos.Neighbors() {
		if connected.Has(n) {
			return true
		}
	}
	return false
}
