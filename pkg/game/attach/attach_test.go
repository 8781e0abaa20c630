package attach

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/generator"
)

func pos(col, row int) world.Position {
	return world.Position{Col: col, Row: row}
}

func TestFindAttachPosition_EmptyCandidate(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(), "R . . R")
	r := NewResolver(g, 0)
	point := g.GridToWorld(pos(2, 1))
	if got := r.FindAttachPosition(point); got != pos(2, 1) {
		t.Errorf("FindAttachPosition = %v, want (2,1)", got)
	}
}

func TestFindAttachPosition_NearestEmptyNeighbor(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(), "R R R R")
	r := NewResolver(g, 0)
	point := r2.Add(g.GridToWorld(pos(1, 0)), r2.Vec{X: 0.1, Y: 0.3})
	if got := r.FindAttachPosition(point); got != pos(1, 1) {
		t.Errorf("FindAttachPosition = %v, want (1,1)", got)
	}
}

func TestFindAttachPosition_TieUsesEnumerationOrder(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(), "R R R R")
	r := NewResolver(g, 0)
	// Equidistant from (0,1) and (1,1); SouthWest enumerates first.
	if got := r.FindAttachPosition(g.GridToWorld(pos(1, 0))); got != pos(0, 1) {
		t.Errorf("FindAttachPosition = %v, want (0,1)", got)
	}
}

func TestFindAttachPosition_ClampsColumn(t *testing.T) {
	g := world.NewGrid(5, world.DefaultLayout())
	r := NewResolver(g, 0)
	tests := []struct {
		point r2.Vec
		want  world.Position
	}{
		{r2.Vec{X: 40, Y: 0}, pos(4, 0)},
		{r2.Vec{X: -12, Y: 0}, pos(0, 0)},
	}
	for _, tt := range tests {
		if got := r.FindAttachPosition(tt.point); got != tt.want {
			t.Errorf("FindAttachPosition(%v) = %v, want %v", tt.point, got, tt.want)
		}
	}
}

func TestFindAttachPosition_AboveCeiling(t *testing.T) {
	g := world.NewGrid(5, world.DefaultLayout())
	r := NewResolver(g, 0)
	point := r2.Add(g.GridToWorld(pos(2, 0)), r2.Vec{X: 0.05, Y: -0.9})
	got := r.FindAttachPosition(point)
	if got.Row < 0 {
		t.Fatalf("FindAttachPosition = %v, attached above the ceiling", got)
	}
	if got.Row != 0 {
		t.Errorf("FindAttachPosition = %v, want a row 0 slot", got)
	}
}

func TestFindAttachPosition_WidensToSecondRing(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(),
		"R R R R R R",
		"B B B B B B",
	)
	r := NewResolver(g, 3)
	if got := r.FindAttachPosition(g.GridToWorld(pos(2, 0))); got != pos(2, 2) {
		t.Errorf("FindAttachPosition = %v, want (2,2)", got)
	}
}

func TestAttach_FullNeighborhoodIsNoOp(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(),
		"R R R",
		"R R R",
		"R R R",
		"R R R",
	)
	r := NewResolver(g, 1)
	b := world.NewBubble(world.Blue)
	got, ok := r.Attach(b, g.GridToWorld(pos(1, 0)))
	if ok || got != world.NoPosition {
		t.Errorf("Attach = %v, %v; want NoPosition, false", got, ok)
	}
	if b.Attached {
		t.Error("bubble marked attached after a failed attach")
	}
	if g.Count() != 12 {
		t.Errorf("Count() = %d, want 12 (nothing overwritten)", g.Count())
	}
}

func TestAttach_PlacesAndMarks(t *testing.T) {
	g := world.NewGrid(4, world.DefaultLayout())
	r := NewResolver(g, 0)
	b := world.NewBubble(world.Green)
	got, ok := r.Attach(b, g.GridToWorld(pos(3, 0)))
	if !ok || got != pos(3, 0) {
		t.Fatalf("Attach = %v, %v; want (3,0), true", got, ok)
	}
	if !b.Attached || g.Get(got) != b {
		t.Error("Attach did not place the bubble")
	}
}

func TestAttach_AlreadyAttachedIsNoOp(t *testing.T) {
	g := world.NewGrid(4, world.DefaultLayout())
	r := NewResolver(g, 0)
	b := world.NewBubble(world.Green)
	if _, ok := r.Attach(b, g.GridToWorld(pos(0, 0))); !ok {
		t.Fatal("first Attach failed")
	}
	got, ok := r.Attach(b, g.GridToWorld(pos(2, 0)))
	if ok || got != world.NoPosition {
		t.Errorf("second Attach = %v, %v; want NoPosition, false", got, ok)
	}
	if g.Count() != 1 {
		t.Errorf("Count() = %d, want 1", g.Count())
	}
}
