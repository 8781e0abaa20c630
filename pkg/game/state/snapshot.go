package state

import (
	"gonum.org/v1/gonum/spatial/r2"

	"hexpop/pkg/engine/world"
)

// BubbleView is a copy of one bubble for rendering
type BubbleView struct {
	Pos   world.Position
	Color world.Color
	World r2.Vec
}

// Snapshot is a consistent copy of everything a renderer draws
type Snapshot struct {
	Width      int
	Rows       int // storage rows, including empty trailing ones
	LowestRow  int // deepest occupied row, -1 when empty
	Layout     world.Layout
	Bubbles    []BubbleView
	Colors     []world.Color // colors still on the board
	Score      int
	Pops       int
	ShotsLeft  int
	Status     Status
	Destroying bool
	LoseLineY  float64
	Messages   []string
}

// Snapshot copies the current board state under the game lock
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Snapshot{
		Width:      g.grid.Width(),
		Rows:       g.grid.Rows(),
		LowestRow:  g.grid.LowestRow(),
		Layout:     g.grid.Layout(),
		Bubbles:    make([]BubbleView, 0, g.grid.Count()),
		Colors:     g.grid.AvailableColors(),
		Score:      g.score.Total(),
		Pops:       g.score.Pops(),
		ShotsLeft:  g.spawner.ShotsLeft(),
		Status:     g.status,
		Destroying: g.scheduler.IsDestroying(),
		LoseLineY:  float64(g.cfg.LoseLineY()),
		Messages:   append([]string(nil), g.messages...),
	}
	g.grid.ForEach(func(pos world.Position, b *world.Bubble) {
		s.Bubbles = append(s.Bubbles, BubbleView{Pos: pos, Color: b.Color, World: b.World})
	})
	return s
}
