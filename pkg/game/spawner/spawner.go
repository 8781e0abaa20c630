// Package spawner pushes new rows in at the ceiling and relocates any
// fragments the push leaves floating.
package spawner

import (
	"log/slog"
	"math/rand"

	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/destruction"
	"hexpop/pkg/game/generator"
)

// Mode selects what triggers a new row
type Mode string

// Spawn modes
const (
	ModeShots Mode = "shots" // a row after every ShotsPerRow consumed shots
	ModeTimed Mode = "timed" // a row every SurvivalInterval seconds
)

// DefaultRelocationLimit bounds the relocation loop
const DefaultRelocationLimit = 100

// Config holds row spawning parameters
type Config struct {
	Mode             Mode    `yaml:"mode"`
	ShotsPerRow      int     `yaml:"shots_per_row"`
	SurvivalInterval float64 `yaml:"survival_interval"`
	RelocationLimit  int     `yaml:"relocation_limit"`
}

// DefaultConfig returns the stock spawning parameters
func DefaultConfig() Config {
	return Config{
		Mode:             ModeShots,
		ShotsPerRow:      5,
		SurvivalInterval: 8,
		RelocationLimit:  DefaultRelocationLimit,
	}
}

// Listener is notified after every row insertion
type Listener interface {
	RowSpawned()
}

// Deps are the collaborators of a Spawner
type Deps struct {
	Rand     *rand.Rand
	Outcome  destruction.Outcome
	LoseLine destruction.LoseLine
	Listener Listener

	// Busy reports whether row insertion must wait, e.g. while bubbles are
	// still being destroyed
	Busy func() bool

	Logger *slog.Logger
}

// Spawner owns the shot budget and row insertion for a grid
type Spawner struct {
	grid     *world.Grid
	cfg      Config
	rng      *rand.Rand
	outcome  destruction.Outcome
	loseLine destruction.LoseLine
	listener Listener
	busy     func() bool
	logger   *slog.Logger

	shotsLeft int
	elapsed   float64
	spawned   int
}

// New creates a spawner with a full shot budget
func New(g *world.Grid, cfg Config, deps Deps) *Spawner {
	if cfg.ShotsPerRow < 1 {
		cfg.ShotsPerRow = 1
	}
	if cfg.RelocationLimit < 1 {
		cfg.RelocationLimit = DefaultRelocationLimit
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeShots
	}

	s := &Spawner{
		grid:     g,
		cfg:      cfg,
		rng:      deps.Rand,
		outcome:  deps.Outcome,
		loseLine: deps.LoseLine,
		listener: deps.Listener,
		busy:     deps.Busy,
		logger:   deps.Logger,
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(1))
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.Reset()
	return s
}

// Reset restores the full shot budget and restarts the survival timer
func (s *Spawner) Reset() {
	s.shotsLeft = s.cfg.ShotsPerRow
	s.elapsed = 0
}

// ShotsLeft returns how many shots remain before the next row
func (s *Spawner) ShotsLeft() int {
	return s.shotsLeft
}

// RowsSpawned returns how many rows have been inserted
func (s *Spawner) RowsSpawned() int {
	return s.spawned
}

// Mode returns the configured spawn mode
func (s *Spawner) Mode() Mode {
	return s.cfg.Mode
}

// FillInitial clears the grid, fills its first rows with gen and restores
// the shot budget
func (s *Spawner) FillInitial(gen generator.GridGenerator, rows int) {
	s.grid.Clear()
	gen.Fill(s.grid, rows)
	s.grid.SyncWorldPositions()
	s.Reset()
	s.spawned = 0
	s.logger.Info("grid filled", "generator", gen.Name(), "rows", rows, "bubbles", s.grid.Count())
}

// ConsumeShot spends one shot of the budget. When the budget runs out a row
// is spawned and the budget is refilled. A row that cannot spawn yet stays
// due with the budget at zero. Returns true if a row was spawned.
// In timed mode shots are not counted.
func (s *Spawner) ConsumeShot() bool {
	if s.cfg.Mode != ModeShots {
		return false
	}
	if s.shotsLeft > 0 {
		s.shotsLeft--
	}
	if s.shotsLeft > 0 {
		return false
	}
	return s.spawnDueRow()
}

// Step retries a due row in shots mode and advances the survival timer in
// timed mode. A due row waits while the spawner is busy. Returns true if a
// row was spawned.
func (s *Spawner) Step(dt float64) bool {
	switch s.cfg.Mode {
	case ModeShots:
		if s.shotsLeft > 0 || s.isBusy() {
			return false
		}
		return s.spawnDueRow()
	case ModeTimed:
		if s.cfg.SurvivalInterval <= 0 {
			return false
		}
	default:
		return false
	}
	s.elapsed += dt
	if s.elapsed < s.cfg.SurvivalInterval || s.isBusy() {
		return false
	}
	s.elapsed -= s.cfg.SurvivalInterval
	if s.elapsed > s.cfg.SurvivalInterval {
		s.elapsed = 0
	}
	return s.SpawnRowAtTop()
}

// spawnDueRow spawns the row the spent budget owes and refills the budget
// only if the row went in
func (s *Spawner) spawnDueRow() bool {
	if !s.SpawnRowAtTop() {
		return false
	}
	s.shotsLeft = s.cfg.ShotsPerRow
	return true
}

// SpawnRowAtTop pushes every row down one and fills a new row 0 with colors
// drawn from those still on the grid. Floating fragments are relocated
// afterwards, then the lose line is checked. Returns false without touching
// the grid while busy.
func (s *Spawner) SpawnRowAtTop() bool {
	if s.isBusy() {
		s.logger.Debug("row spawn deferred while busy")
		return false
	}

	s.grid.Shift(s.grid.Layout().RowHeight)

	colors := s.grid.AvailableColors()
	if len(colors) == 0 {
		colors = world.AllColors()
	}

	row := make([]*world.Bubble, s.grid.Width())
	for col := range row {
		b := world.NewBubble(generator.Uniform(s.rng, colors))
		b.Attached = true
		row[col] = b
	}
	s.grid.InsertRowTop(row)
	s.grid.SyncWorldPositions()
	s.spawned++

	moves := s.Relocate()
	s.logger.Info("row spawned", "rows", s.grid.Rows(), "relocated", moves)

	if s.outcome != nil && s.outcome.IsActive() && destruction.LoseLineBreached(s.grid, s.loseLine) {
		s.logger.Info("lose line breached after row spawn")
		s.outcome.LoseLineBreached()
	}
	if s.listener != nil {
		s.listener.RowSpawned()
	}
	return true
}

func (s *Spawner) isBusy() bool {
	return s.busy != nil && s.busy()
}
