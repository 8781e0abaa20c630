package gameplay

import (
	"math/rand"

	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/generator"
)

// Queue holds the bubble about to be fired and the one after it. Colors are
// drawn from those still on the board so every shot can match something.
type Queue struct {
	rng     *rand.Rand
	current world.Color
	next    world.Color
}

// NewQueue creates a queue with both slots drawn from colors
func NewQueue(rng *rand.Rand, colors []world.Color) *Queue {
	q := &Queue{rng: rng}
	q.Refill(colors)
	return q
}

// Current returns the color that will be fired next
func (q *Queue) Current() world.Color {
	return q.current
}

// Next returns the color after the current one
func (q *Queue) Next() world.Color {
	return q.next
}

// Advance moves the next color up and draws a new one. A color that has left
// the board is redrawn.
func (q *Queue) Advance(available []world.Color) {
	q.current = q.next
	if len(available) > 0 && !contains(available, q.current) {
		q.current = generator.Uniform(q.rng, available)
	}
	q.next = generator.Uniform(q.rng, available)
}

// Ensure redraws any slot whose color has left the board
func (q *Queue) Ensure(available []world.Color) {
	if len(available) == 0 {
		return
	}
	if !contains(available, q.current) {
		q.current = generator.Uniform(q.rng, available)
	}
	if !contains(available, q.next) {
		q.next = generator.Uniform(q.rng, available)
	}
}

// Refill redraws both slots
func (q *Queue) Refill(available []world.Color) {
	q.current = generator.Uniform(q.rng, available)
	q.next = generator.Uniform(q.rng, available)
}

// Swap exchanges the current and next colors
func (q *Queue) Swap() {
	q.current, q.next = q.next, q.current
}

func contains(colors []world.Color, c world.Color) bool {
	for _, have := range colors {
		if have == c {
			return true
		}
	}
	return false
}
