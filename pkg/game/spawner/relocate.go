package spawner

import (
	"math"

	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/connectivity"
)

// Relocate reattaches floating bubbles to the structure hanging from the
// ceiling, one move per iteration, until nothing floats, nothing can move,
// or the iteration limit is hit. Returns the number of moves made.
//
// Each iteration first tries to slide a floating bubble into one of its own
// empty neighbors that touches the connected structure. Failing that, it
// forces the floating bubble nearest to any free slot around the structure
// into that slot.
func (s *Spawner) Relocate() int {
	moves := 0
	for i := 0; i < s.cfg.RelocationLimit; i++ {
		floating := connectivity.FloatingCells(s.grid)
		if len(floating) == 0 {
			return moves
		}
		connected := connectivity.ConnectedToTop(s.grid)

		if s.moveToNeighbor(floating, connected) {
			moves++
			continue
		}
		if s.forceMove(floating, connected) {
			moves++
			continue
		}

		s.logger.Warn("relocation stuck", "floating", len(floating), "connected", connected.Len())
		return moves
	}

	if n := len(connectivity.FloatingCells(s.grid)); n > 0 {
		s.logger.Warn("relocation limit reached", "floating", n, "limit", s.cfg.RelocationLimit)
	}
	return moves
}

// freeSlot reports whether pos can receive a relocated bubble
func (s *Spawner) freeSlot(pos world.Position) bool {
	return s.grid.InBounds(pos) && s.grid.IsEmpty(pos)
}

func (s *Spawner) moveToNeighbor(floating []world.Position, connected connectivity.Reachable) bool {
	for _, from := range floating {
		b := s.grid.Get(from)
		if b == nil {
			continue
		}

		best := world.NoPosition
		bestDist := math.Inf(1)
		for _, n := range from.Neighbors() {
			if !s.freeSlot(n) || !connectivity.IsAdjacentToConnected(n, connected) {
				continue
			}
			if d := world.Distance(s.grid.GridToWorld(n), b.World); d < bestDist {
				best, bestDist = n, d
			}
		}

		if best != world.NoPosition {
			s.logger.Debug("relocated floating bubble", "from", from, "to", best)
			return s.grid.Move(from, best)
		}
	}
	return false
}

func (s *Spawner) forceMove(floating []world.Position, connected connectivity.Reachable) bool {
	bestFrom, bestTo := world.NoPosition, world.NoPosition
	bestDist := math.Inf(1)

	for _, c := range connected.Order {
		for _, n := range c.Neighbors() {
			if !s.freeSlot(n) {
				continue
			}
			target := s.grid.GridToWorld(n)
			for _, from := range floating {
				b := s.grid.Get(from)
				if b == nil {
					continue
				}
				if d := world.Distance(target, b.World); d < bestDist {
					bestFrom, bestTo, bestDist = from, n, d
				}
			}
		}
	}

	if bestTo == world.NoPosition {
		return false
	}
	s.logger.Debug("force relocated floating bubble", "from", bestFrom, "to", bestTo)
	return s.grid.Move(bestFrom, bestTo)
}
