package generator

import (
	"fmt"
	"strings"

	"hexpop/pkg/engine/world"
)

// colorLetters maps the one-letter pattern codes to colors
var colorLetters = map[string]world.Color{
	"R": world.Red,
	"B": world.Blue,
	"G": world.Green,
	"Y": world.Yellow,
	"P": world.Purple,
	"C": world.Cyan,
}

// Letter returns the one-letter pattern code for a color
func Letter(c world.Color) string {
	for letter, lc := range colorLetters {
		if lc == c {
			return letter
		}
	}
	return "?"
}

// PatternGenerator fills rows from fixed text rows. Each row is a
// whitespace-separated list of color letters; "." marks an empty slot.
type PatternGenerator struct {
	Rows []string
}

// Name returns the name of this generator
func (p *PatternGenerator) Name() string {
	return "Pattern"
}

// Fill places the first rows pattern rows; rows <= 0 places all of them.
// Columns outside the grid width are skipped.
func (p *PatternGenerator) Fill(g *world.Grid, rows int) {
	if rows <= 0 || rows > len(p.Rows) {
		rows = len(p.Rows)
	}
	for r := 0; r < rows; r++ {
		for c, token := range strings.Fields(p.Rows[r]) {
			color, ok := colorLetters[strings.ToUpper(token)]
			if !ok || !g.IsValidColumn(c) {
				continue
			}
			g.Place(world.Position{Col: c, Row: r}, world.NewBubble(color))
		}
	}
}

// Validate checks that every token is a known color letter or "."
func (p *PatternGenerator) Validate() error {
	for r, line := range p.Rows {
		for c, token := range strings.Fields(line) {
			if token == "." {
				continue
			}
			if _, ok := colorLetters[strings.ToUpper(token)]; !ok {
				return fmt.Errorf("pattern row %d column %d: unknown color %q", r, c, token)
			}
		}
	}
	return nil
}

// FromPattern builds a grid sized to the widest pattern row and fills it
func FromPattern(layout world.Layout, rows ...string) (*world.Grid, error) {
	p := &PatternGenerator{Rows: rows}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	width := 0
	for _, line := range rows {
		if n := len(strings.Fields(line)); n > width {
			width = n
		}
	}
	if width == 0 {
		return nil, fmt.Errorf("pattern has no columns")
	}
	g := world.NewGrid(width, layout)
	p.Fill(g, 0)
	return g, nil
}

// MustPattern is like FromPattern but panics on error. Intended for fixtures.
func MustPattern(layout world.Layout, rows ...string) *world.Grid {
	g, err := FromPattern(layout, rows...)
	if err != nil {
		panic(err)
	}
	return g
}

// Dump renders the grid as pattern rows, the inverse of FromPattern
func Dump(g *world.Grid) []string {
	lines := make([]string, 0, g.Rows())
	for r := 0; r < g.Rows(); r++ {
		tokens := make([]string, g.Width())
		for c := range tokens {
			b := g.Get(world.Position{Col: c, Row: r})
			if b == nil {
				tokens[c] = "."
				continue
			}
			tokens[c] = Letter(b.Color)
		}
		lines = append(lines, strings.Join(tokens, " "))
	}
	return lines
}
