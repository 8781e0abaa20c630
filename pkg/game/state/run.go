package state

import (
	"context"
	"time"
)

// DefaultTick is the Run interval used when none is given
const DefaultTick = time.Second / 60

// Run steps the game with real elapsed time every interval until ctx is
// done. It returns the context's error.
func (g *Game) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultTick
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			g.Step(now.Sub(last).Seconds())
			last = now
		}
	}
}
