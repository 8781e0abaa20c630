// Package scoring provides the default point policy for popped bubbles.
//
// Match bubbles score linearly with their combo index. Floating bubbles
// continue the combo with a steeper exponential curve seeded from the value
// of the last match bubble.
package scoring

import "math"

// Config holds the point policy parameters
type Config struct {
	MatchBase      int     `yaml:"match_base"`      // points for the first bubble of a match
	MatchStep      int     `yaml:"match_step"`      // extra points per combo index
	FloatingGrowth float64 `yaml:"floating_growth"` // per-index multiplier for floating bubbles
}

// DefaultConfig returns the stock point policy
func DefaultConfig() Config {
	return Config{
		MatchBase:      10,
		MatchStep:      5,
		FloatingGrowth: 1.5,
	}
}

// Tracker computes point values and keeps the running total
type Tracker struct {
	cfg   Config
	total int
	pops  int
}

// NewTracker creates a tracker with the given policy
func NewTracker(cfg Config) *Tracker {
	if cfg.FloatingGrowth < 1 {
		cfg.FloatingGrowth = 1
	}
	return &Tracker{cfg: cfg}
}

// ScoreForMatchBubble returns the points for the match bubble at combo index
func (t *Tracker) ScoreForMatchBubble(index int) int {
	if index < 0 {
		index = 0
	}
	return t.cfg.MatchBase + index*t.cfg.MatchStep
}

// ScoreForFloatingBubble returns the points for a floating bubble at combo
// index, continuing from base, the last match bubble's points
func (t *Tracker) ScoreForFloatingBubble(index, base int) int {
	if base <= 0 {
		base = t.ScoreForMatchBubble(0)
	}
	if index < 0 {
		index = 0
	}
	return int(math.Round(float64(base) * math.Pow(t.cfg.FloatingGrowth, float64(index))))
}

// AddScore adds points to the running total
func (t *Tracker) AddScore(points int) {
	t.total += points
	t.pops++
}

// Total returns the running total
func (t *Tracker) Total() int {
	return t.total
}

// Pops returns how many scored bubbles have been added
func (t *Tracker) Pops() int {
	return t.pops
}

// Reset clears the running total
func (t *Tracker) Reset() {
	t.total = 0
	t.pops = 0
}
