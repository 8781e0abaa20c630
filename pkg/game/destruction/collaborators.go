package destruction

import (
	"gonum.org/v1/gonum/spatial/r2"

	"hexpop/pkg/engine/world"
)

// Scoring computes and accumulates points. Calls arrive in strict combo order.
type Scoring interface {
	ScoreForMatchBubble(index int) int
	ScoreForFloatingBubble(index, base int) int
	AddScore(points int)
}

// Effects plays fire-and-forget feedback for removed bubbles
type Effects interface {
	PlayPop(at r2.Vec, c world.Color)
	PlayPopup(points int, at r2.Vec, combo int)
}

// Outcome is the owner of game state. IsActive gates every win/lose check.
type Outcome interface {
	IsActive() bool
	GridCleared()
	LoseLineBreached()
}

// LoseLine reports whether a world Y coordinate is past the lose threshold
type LoseLine interface {
	IsPastLoseLine(y float64) bool
}

// LoseLineY is a LoseLine at a fixed world Y; positions at or below it breach.
type LoseLineY float64

// IsPastLoseLine implements LoseLine
func (l LoseLineY) IsPastLoseLine(y float64) bool {
	return y >= float64(l)
}

// LoseLineBreached returns true if any bubble on the grid is past the lose line
func LoseLineBreached(g *world.Grid, line LoseLine) bool {
	if line == nil {
		return false
	}
	breached := false
	g.ForEach(func(_ world.Position, b *world.Bubble) {
		if !breached && line.IsPastLoseLine(b.World.Y) {
			breached = true
		}
	})
	return breached
}

type nopScoring struct{}

func (nopScoring) ScoreForMatchBubble(int) int         { return 0 }
func (nopScoring) ScoreForFloatingBubble(int, int) int { return 0 }
func (nopScoring) AddScore(int)                        {}

type nopEffects struct{}

func (nopEffects) PlayPop(r2.Vec, world.Color) {}
func (nopEffects) PlayPopup(int, r2.Vec, int)  {}

type alwaysActive struct{}

func (alwaysActive) IsActive() bool    { return true }
func (alwaysActive) GridCleared()      {}
func (alwaysActive) LoseLineBreached() {}
