// Package palette maps bubble colors to display colors shared by every
// rendering backend.
package palette

import (
	"fmt"
	"image/color"

	"hexpop/pkg/engine/world"
)

var rgba = map[world.Color]color.RGBA{
	world.Red:    {R: 0xe5, G: 0x39, B: 0x35, A: 0xff},
	world.Blue:   {R: 0x1e, G: 0x88, B: 0xe5, A: 0xff},
	world.Green:  {R: 0x43, G: 0xa0, B: 0x47, A: 0xff},
	world.Yellow: {R: 0xfd, G: 0xd8, B: 0x35, A: 0xff},
	world.Purple: {R: 0x8e, G: 0x24, B: 0xaa, A: 0xff},
	world.Cyan:   {R: 0x00, G: 0xac, B: 0xc1, A: 0xff},
}

// Background colors
var (
	Background = color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff}
	Board      = color.RGBA{R: 0x0f, G: 0x0f, B: 0x1a, A: 0xff}
	LoseLine   = color.RGBA{R: 0xff, G: 0x52, B: 0x52, A: 0xff}
	Aim        = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	Text       = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

// RGBA returns the display color of a bubble color. Unknown colors are gray.
func RGBA(c world.Color) color.RGBA {
	if col, ok := rgba[c]; ok {
		return col
	}
	return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
}

// Hex returns the display color as #rrggbb
func Hex(c world.Color) string {
	col := RGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)
}
