// Package state owns a running game: the grid, the collaborators that act
// on it, and the lock that serializes every mutation.
package state

import (
	"errors"
	"log/slog"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/attach"
	"hexpop/pkg/game/config"
	"hexpop/pkg/game/connectivity"
	"hexpop/pkg/game/destruction"
	"hexpop/pkg/game/generator"
	"hexpop/pkg/game/scoring"
	"hexpop/pkg/game/spawner"
)

var (
	// ErrBusy is returned by Fire while a destruction episode is running
	ErrBusy = errors.New("destruction in progress")
	// ErrInactive is returned by Fire once the game is won or lost
	ErrInactive = errors.New("game is not active")
	// ErrNoSlot is returned by Fire when no empty slot exists near the shot
	ErrNoSlot = errors.New("no free slot near shot")
)

// Status is the outcome of the game so far
type Status int

// Game statuses
const (
	Playing Status = iota
	Won
	Lost
)

// String returns the name of the status
func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Options are optional collaborators of a Game
type Options struct {
	Rand      *rand.Rand
	Effects   destruction.Effects
	Listener  spawner.Listener
	Generator generator.GridGenerator // initial fill; defaults to the configured palette
	Logger    *slog.Logger
}

// Game represents one running board
type Game struct {
	mu sync.Mutex

	cfg       *config.Config
	grid      *world.Grid
	resolver  *attach.Resolver
	scheduler *destruction.Scheduler
	spawner   *spawner.Spawner
	score     *scoring.Tracker
	gen       generator.GridGenerator
	rng       *rand.Rand
	logger    *slog.Logger

	status   Status
	shots    int
	messages []string
	listener spawner.Listener
}

// NewGame creates a game from cfg and fills the initial rows
func NewGame(cfg *config.Config, opts Options) *Game {
	g := &Game{
		cfg:      cfg,
		grid:     world.NewGrid(cfg.Grid.Width, cfg.Layout()),
		score:    scoring.NewTracker(cfg.Scoring),
		rng:      opts.Rand,
		logger:   opts.Logger,
		listener: opts.Listener,
		gen:      opts.Generator,
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(1))
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	if g.gen == nil {
		g.gen = generator.NewWeighted(g.rng, cfg.Palette.Colors, cfg.Palette.Weights)
	}

	outcome := gameOutcome{g}
	loseLine := cfg.LoseLineY()

	g.resolver = attach.NewResolver(g.grid, cfg.Attach.MaxRing)
	g.scheduler = destruction.NewScheduler(g.grid, cfg.Destruction, destruction.Deps{
		Scoring:  g.score,
		Effects:  opts.Effects,
		Outcome:  outcome,
		LoseLine: loseLine,
		Logger:   g.logger.With("component", "destruction"),
	})
	g.spawner = spawner.New(g.grid, cfg.Spawner, spawner.Deps{
		Rand:     g.rng,
		Outcome:  outcome,
		LoseLine: loseLine,
		Listener: rowListener{g},
		Busy:     g.scheduler.IsDestroying,
		Logger:   g.logger.With("component", "spawner"),
	})
	g.scheduler.OnShotConsumed(func() { g.spawner.ConsumeShot() })

	g.reset()
	return g
}

// Fire attaches a bubble of color c where a shot stopped at point. A match
// of at least the configured size starts a destruction episode; anything
// smaller spends one shot of the row budget.
func (g *Game) Fire(c world.Color, point r2.Vec) (world.Position, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != Playing {
		return world.NoPosition, ErrInactive
	}
	if g.scheduler.IsDestroying() {
		return world.NoPosition, ErrBusy
	}

	pos, ok := g.resolver.Attach(world.NewBubble(c), point)
	if !ok {
		g.logger.Warn("shot discarded", "point", point, "color", c)
		return world.NoPosition, ErrNoSlot
	}
	g.shots++

	match := connectivity.FloodFill(g.grid, pos, connectivity.MatchColor(c))
	g.logger.Debug("bubble attached", "pos", pos, "color", c, "group", len(match))

	if len(match) >= g.cfg.Match.MinCount {
		g.scheduler.Start(match)
		return pos, nil
	}

	if destruction.LoseLineBreached(g.grid, g.cfg.LoseLineY()) {
		gameOutcome{g}.LoseLineBreached()
		return pos, nil
	}
	g.spawner.ConsumeShot()
	return pos, nil
}

// Step advances the destruction episode by dt seconds, then lets the
// spawner insert a due row or advance its survival timer
func (g *Game) Step(dt float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.scheduler.Step(dt)
	if g.status == Playing {
		g.spawner.Step(dt)
	}
}

// IsDestroying reports whether a destruction episode is running
func (g *Game) IsDestroying() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scheduler.IsDestroying()
}

// Status returns the current outcome
func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Score returns the running point total
func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score.Total()
}

// Config returns the configuration the game was built with
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Reset cancels any running episode and refills the board
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset()
}

func (g *Game) reset() {
	g.scheduler.Cancel()
	g.spawner.FillInitial(g.gen, g.cfg.Grid.InitialRows)
	g.score.Reset()
	g.status = Playing
	g.shots = 0
	g.messages = nil
}

// SpawnRow forces a row insertion now. Returns false while destroying.
func (g *Game) SpawnRow() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status != Playing {
		return false
	}
	return g.spawner.SpawnRowAtTop()
}

// WithGrid runs fn with the grid while holding the game lock. fn must not
// call back into the game.
func (g *Game) WithGrid(fn func(grid *world.Grid)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.grid)
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addMessage(msg)
}

func (g *Game) addMessage(msg string) {
	const maxMessages = 5
	g.messages = append(g.messages, msg)

	// Keep only the last maxMessages
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

// gameOutcome is the game's face towards the scheduler and spawner. Its
// methods run with the game lock already held.
type gameOutcome struct {
	g *Game
}

func (o gameOutcome) IsActive() bool {
	return o.g.status == Playing
}

func (o gameOutcome) GridCleared() {
	if o.g.status != Playing {
		return
	}
	o.g.status = Won
	o.g.logger.Info("game won", "score", o.g.score.Total(), "shots", o.g.shots)
	o.g.addMessage("GRID_CLEARED")
}

func (o gameOutcome) LoseLineBreached() {
	if o.g.status != Playing {
		return
	}
	o.g.status = Lost
	o.g.logger.Info("game lost", "score", o.g.score.Total(), "shots", o.g.shots)
	o.g.addMessage("LOSE_LINE_BREACHED")
}

// rowListener records row insertions and forwards them
type rowListener struct {
	g *Game
}

func (r rowListener) RowSpawned() {
	r.g.addMessage("ROW_SPAWNED")
	if r.g.listener != nil {
		r.g.listener.RowSpawned()
	}
}
