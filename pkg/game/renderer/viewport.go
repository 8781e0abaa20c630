package renderer

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"hexpop/pkg/game/gameplay"
)

// Viewport maps world coordinates to screen pixels
type Viewport struct {
	Scale   float64 // pixels per world unit
	OffsetX float64
	OffsetY float64
}

// Fit returns the largest viewport that shows the board from the ceiling
// down to the launcher inside a w by h screen. top and bottom are reserved
// pixel bands for text.
func Fit(v gameplay.View, w, h int, margin, top, bottom float64) Viewport {
	cell := v.Layout.CellSize
	if cell <= 0 {
		cell = 1
	}
	// One cell of padding around the outermost bubble centers
	worldW := v.MaxX - v.MinX + cell
	worldH := v.Origin.Y - v.Layout.Origin.Y + cell

	availW := float64(w) - 2*margin
	availH := float64(h) - top - bottom
	scale := math.Max(1, math.Min(availW/worldW, availH/worldH))

	return Viewport{
		Scale:   scale,
		OffsetX: (float64(w)-worldW*scale)/2 - (v.MinX-cell/2)*scale,
		OffsetY: top - (v.Layout.Origin.Y-cell/2)*scale,
	}
}

// ToScreen converts a world point to screen pixels
func (vp Viewport) ToScreen(p r2.Vec) (x, y float64) {
	return p.X*vp.Scale + vp.OffsetX, p.Y*vp.Scale + vp.OffsetY
}

// ToWorld converts screen pixels back to a world point
func (vp Viewport) ToWorld(x, y float64) r2.Vec {
	return r2.Vec{X: (x - vp.OffsetX) / vp.Scale, Y: (y - vp.OffsetY) / vp.Scale}
}
