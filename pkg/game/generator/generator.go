package generator

import (
	"hexpop/pkg/engine/world"
)

// GridGenerator fills the initial rows of a grid
type GridGenerator interface {
	Fill(g *world.Grid, rows int)
	Name() string
}
