// Package gameplay turns player intents into shots: aiming, tracing a shot
// across the board and handing the landing point to the game.
package gameplay

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/config"
)

// MaxAngle is the steepest aim allowed either side of straight up, in radians
const MaxAngle = 80 * math.Pi / 180

// maxTraceSteps bounds a single trace regardless of configuration
const maxTraceSteps = 100000

// Shot is the result of tracing a launch
type Shot struct {
	Point   r2.Vec   // where the shot came to rest
	Path    []r2.Vec // origin, every bounce point, then Point
	Bounces int
	OK      bool // false if the shot bounced too often and was discarded
}

// Launcher traces shots from a fixed origin below the grid. Shots bounce off
// the side walls and stop on touching a bubble or the ceiling.
type Launcher struct {
	layout world.Layout
	cfg    config.LauncherConfig
	origin r2.Vec
	minX   float64
	maxX   float64
}

// NewLauncher creates a launcher for a grid of the given width and layout
func NewLauncher(layout world.Layout, width int, cfg config.LauncherConfig) *Launcher {
	if cfg.Step <= 0 {
		cfg.Step = 0.1
	}
	minX := layout.Origin.X
	maxX := layout.Origin.X + (float64(width)-0.5)*layout.CellSize
	return &Launcher{
		layout: layout,
		cfg:    cfg,
		minX:   minX,
		maxX:   maxX,
		origin: r2.Vec{
			X: (minX + maxX) / 2,
			Y: layout.Origin.Y + cfg.Row*layout.RowHeight,
		},
	}
}

// Origin returns the launch point
func (l *Launcher) Origin() r2.Vec {
	return l.origin
}

// Walls returns the leftmost and rightmost x a bubble center can reach
func (l *Launcher) Walls() (minX, maxX float64) {
	return l.minX, l.maxX
}

// ClampAngle limits an aim angle to [-MaxAngle, MaxAngle]
func ClampAngle(angle float64) float64 {
	return math.Max(-MaxAngle, math.Min(MaxAngle, angle))
}

// Direction returns the unit vector for an aim angle measured from straight
// up, positive to the right. World y grows downward.
func Direction(angle float64) r2.Vec {
	return r2.Vec{X: math.Sin(angle), Y: -math.Cos(angle)}
}

// Trace follows a shot fired at angle across g
func (l *Launcher) Trace(g *world.Grid, angle float64) Shot {
	dir := Direction(ClampAngle(angle))
	p := l.origin
	shot := Shot{Path: []r2.Vec{p}}
	ceiling := l.layout.Origin.Y

	for i := 0; i < maxTraceSteps; i++ {
		p = r2.Add(p, r2.Scale(l.cfg.Step, dir))

		switch {
		case p.X < l.minX:
			p.X = 2*l.minX - p.X
			dir.X = -dir.X
			shot.Bounces++
			shot.Path = append(shot.Path, p)
		case p.X > l.maxX:
			p.X = 2*l.maxX - p.X
			dir.X = -dir.X
			shot.Bounces++
			shot.Path = append(shot.Path, p)
		}
		if shot.Bounces > l.cfg.MaxBounces {
			shot.Point = p
			return shot
		}

		if p.Y <= ceiling {
			p.Y = ceiling
			return l.land(shot, p)
		}
		if l.touches(g, p) {
			return l.land(shot, p)
		}
	}
	return shot
}

func (l *Launcher) land(shot Shot, p r2.Vec) Shot {
	shot.Point = p
	shot.Path = append(shot.Path, p)
	shot.OK = true
	return shot
}

// touches reports whether a bubble centered at p overlaps any bubble on g
func (l *Launcher) touches(g *world.Grid, p r2.Vec) bool {
	cell := g.WorldToGrid(p)
	if l.overlaps(g.Get(cell), p) {
		return true
	}
	for _, n := range cell.Neighbors() {
		if l.overlaps(g.Get(n), p) {
			return true
		}
	}
	return false
}

func (l *Launcher) overlaps(b *world.Bubble, p r2.Vec) bool {
	return b != nil && world.Distance(b.World, p) < l.layout.CellSize
}
