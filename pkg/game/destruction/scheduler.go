// Package destruction removes matched and floating bubbles one at a time,
// with a geometrically decaying delay between removals.
//
// The scheduler is a state machine advanced by Step(dt); it never sleeps and
// never reads a clock, so callers decide whether time is real or simulated.
package destruction

import (
	"log/slog"
	"math"

	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/connectivity"
)

// Config holds the removal pacing
type Config struct {
	BaseDelay       float64 `yaml:"base_delay"`       // seconds before the first removal
	DecayMultiplier float64 `yaml:"decay_multiplier"` // applied to the delay after each removal
	DelayFloor      float64 `yaml:"delay_floor"`      // the delay never decays below this
}

// DefaultConfig returns the stock pacing
func DefaultConfig() Config {
	return Config{
		BaseDelay:       0.15,
		DecayMultiplier: 0.85,
		DelayFloor:      0.03,
	}
}

// State is the scheduler state
type State int

// Scheduler states
const (
	Idle State = iota
	Destroying
)

// String returns the name of the state
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Destroying:
		return "Destroying"
	default:
		return "Unknown"
	}
}

type phase int

const (
	phaseMatch phase = iota
	phaseFloating
)

// pendingPop remembers the bubble as well as its slot so a removal still
// finds the right bubble if positions shifted since the episode began.
type pendingPop struct {
	pos    world.Position
	bubble *world.Bubble
}

// Episode summarizes one destruction episode
type Episode struct {
	Matched  int // match bubbles removed
	Floating int // floating bubbles removed
	Points   int // total points awarded
}

// Deps are the collaborators of a Scheduler. Nil members get no-op defaults.
type Deps struct {
	Scoring  Scoring
	Effects  Effects
	Outcome  Outcome
	LoseLine LoseLine
	Logger   *slog.Logger
}

// Scheduler drives destruction episodes over a grid
type Scheduler struct {
	grid     *world.Grid
	cfg      Config
	scoring  Scoring
	effects  Effects
	outcome  Outcome
	loseLine LoseLine
	logger   *slog.Logger

	onShotConsumed func()

	state     State
	phase     phase
	pending   []pendingPop
	delay     float64
	remaining float64
	combo     int
	lastMatch int
	episode   Episode
}

// NewScheduler creates an idle scheduler for the grid
func NewScheduler(g *world.Grid, cfg Config, deps Deps) *Scheduler {
	s := &Scheduler{
		grid:     g,
		cfg:      cfg,
		scoring:  deps.Scoring,
		effects:  deps.Effects,
		outcome:  deps.Outcome,
		loseLine: deps.LoseLine,
		logger:   deps.Logger,
	}
	if s.scoring == nil {
		s.scoring = nopScoring{}
	}
	if s.effects == nil {
		s.effects = nopEffects{}
	}
	if s.outcome == nil {
		s.outcome = alwaysActive{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// OnShotConsumed sets the callback fired when an episode ends without a win or loss
func (s *Scheduler) OnShotConsumed(fn func()) {
	s.onShotConsumed = fn
}

// State returns the current state
func (s *Scheduler) State() State {
	return s.state
}

// IsDestroying reports whether an episode is in progress
func (s *Scheduler) IsDestroying() bool {
	return s.state == Destroying
}

// Pending returns how many removals are queued in the current phase
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// CurrentDelay returns the delay that will precede the next removal
func (s *Scheduler) CurrentDelay() float64 {
	return s.delay
}

// LastEpisode returns the summary of the current or most recent episode
func (s *Scheduler) LastEpisode() Episode {
	return s.episode
}

// Start begins an episode removing match in order. Returns false if an
// episode is already running.
func (s *Scheduler) Start(match []world.Position) bool {
	if s.state == Destroying {
		return false
	}

	s.state = Destroying
	s.phase = phaseMatch
	s.pending = s.collect(match)
	s.delay = s.cfg.BaseDelay
	s.remaining = s.cfg.BaseDelay
	s.combo = 0
	s.lastMatch = 0
	s.episode = Episode{}

	s.logger.Debug("destruction started", "match", len(match), "delay", s.delay)
	return true
}

// Cancel abandons a running episode. No outcome or shot signal fires.
func (s *Scheduler) Cancel() {
	if s.state != Destroying {
		return
	}
	s.logger.Debug("destruction cancelled", "pending", len(s.pending))
	s.state = Idle
	s.pending = nil
}

// Step advances the episode by dt seconds, performing every removal whose
// delay has elapsed. Phase changes and the final outcome checks happen as
// soon as a phase runs out of removals.
func (s *Scheduler) Step(dt float64) {
	if s.state != Destroying {
		return
	}
	if dt > 0 {
		s.remaining -= dt
	}

	for s.state == Destroying {
		if len(s.pending) == 0 {
			s.advance()
			continue
		}
		if s.remaining > 0 {
			return
		}

		next := s.pending[0]
		s.pending = s.pending[1:]
		s.pop(next)

		s.delay = math.Max(s.delay*s.cfg.DecayMultiplier, s.cfg.DelayFloor)
		s.remaining += s.delay
	}
}

// advance moves from the match phase to the floating phase, or finishes
func (s *Scheduler) advance() {
	if s.phase == phaseMatch {
		s.phase = phaseFloating
		s.pending = s.collect(connectivity.FloatingCells(s.grid))
		s.logger.Debug("floating phase", "floating", len(s.pending), "delay", s.delay)
		return
	}
	s.finish()
}

func (s *Scheduler) collect(positions []world.Position) []pendingPop {
	pending := make([]pendingPop, 0, len(positions))
	for _, pos := range positions {
		if b := s.grid.Get(pos); b != nil {
			pending = append(pending, pendingPop{pos: pos, bubble: b})
		}
	}
	return pending
}

func (s *Scheduler) pop(p pendingPop) {
	pos, ok := s.locate(p)
	if !ok {
		return
	}
	b := s.grid.Remove(pos)
	s.effects.PlayPop(b.World, b.Color)

	var points int
	if s.phase == phaseMatch {
		points = s.scoring.ScoreForMatchBubble(s.combo)
		s.lastMatch = points
		s.episode.Matched++
	} else {
		points = s.scoring.ScoreForFloatingBubble(s.combo, s.lastMatch)
		s.episode.Floating++
	}
	s.scoring.AddScore(points)
	s.effects.PlayPopup(points, b.World, s.combo)

	s.episode.Points += points
	s.combo++
}

// locate returns where the pending bubble sits now. A bubble that left the
// grid in the meantime is skipped.
func (s *Scheduler) locate(p pendingPop) (world.Position, bool) {
	if s.grid.Get(p.pos) == p.bubble {
		return p.pos, true
	}
	found, ok := world.NoPosition, false
	s.grid.ForEach(func(pos world.Position, b *world.Bubble) {
		if !ok && b == p.bubble {
			found, ok = pos, true
		}
	})
	return found, ok
}

func (s *Scheduler) finish() {
	s.state = Idle
	s.pending = nil

	s.logger.Info("destruction finished",
		"matched", s.episode.Matched,
		"floating", s.episode.Floating,
		"points", s.episode.Points)

	if !s.outcome.IsActive() {
		return
	}
	if s.grid.IsCleared() {
		s.logger.Info("grid cleared")
		s.outcome.GridCleared()
		return
	}
	if LoseLineBreached(s.grid, s.loseLine) {
		s.logger.Info("lose line breached")
		s.outcome.LoseLineBreached()
		return
	}
	if s.onShotConsumed != nil {
		s.onShotConsumed()
	}
}
