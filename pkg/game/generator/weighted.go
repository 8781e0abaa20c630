// Package generator provides initial grid fills: weighted random rows for
// play and fixed patterns for fixtures and puzzle layouts.
package generator

import (
	"math/rand"

	"hexpop/pkg/engine/world"
)

// WeightedGenerator fills rows with colors drawn from a weighted palette
type WeightedGenerator struct {
	Rand    *rand.Rand
	Colors  []world.Color
	Weights []float64 // parallel to Colors; missing or non-positive weights count as 1
}

// NewWeighted creates a weighted generator. An empty palette uses every color.
func NewWeighted(rng *rand.Rand, colors []world.Color, weights []float64) *WeightedGenerator {
	if len(colors) == 0 {
		colors = world.AllColors()
	}
	return &WeightedGenerator{Rand: rng, Colors: colors, Weights: weights}
}

// Name returns the name of this generator
func (w *WeightedGenerator) Name() string {
	return "Weighted"
}

// Fill places a bubble in every column of rows 0..rows-1
func (w *WeightedGenerator) Fill(g *world.Grid, rows int) {
	for row := 0; row < rows; row++ {
		for col := 0; col < g.Width(); col++ {
			g.Place(world.Position{Col: col, Row: row}, world.NewBubble(w.Draw()))
		}
	}
}

// Draw returns one color drawn according to the weights
func (w *WeightedGenerator) Draw() world.Color {
	total := 0.0
	for i := range w.Colors {
		total += w.weight(i)
	}

	pick := w.Rand.Float64() * total
	for i, c := range w.Colors {
		pick -= w.weight(i)
		if pick < 0 {
			return c
		}
	}
	return w.Colors[len(w.Colors)-1]
}

func (w *WeightedGenerator) weight(i int) float64 {
	if i >= len(w.Weights) || w.Weights[i] <= 0 {
		return 1
	}
	return w.Weights[i]
}

// Uniform draws one color uniformly from colors; an empty slice falls back
// to the full enumeration
func Uniform(rng *rand.Rand, colors []world.Color) world.Color {
	if len(colors) == 0 {
		colors = world.AllColors()
	}
	return colors[rng.Intn(len(colors))]
}
