package gameplay

import (
	"errors"
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/state"
)

// DefaultAimStep is how far one aim intent turns the launcher, in radians
const DefaultAimStep = 2 * math.Pi / 180

// ErrShotLost is returned when a shot bounces too often to land
var ErrShotLost = errors.New("shot lost")

// Session is one player at one board: the game, the launcher and the queue
// of bubbles to fire
type Session struct {
	game     *state.Game
	launcher *Launcher
	queue    *Queue
	logger   *slog.Logger

	angle   float64
	aimStep float64

	// OutputDir receives grid dumps and screenshots
	OutputDir string
}

// View is everything a renderer needs for one frame
type View struct {
	state.Snapshot
	Angle      float64
	Origin     r2.Vec
	MinX, MaxX float64
	Current    world.Color
	Next       world.Color
	Aim        Shot
}

// NewSession creates a session for g
func NewSession(g *state.Game, rng *rand.Rand, logger *slog.Logger) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg := g.Config()
	return &Session{
		game:      g,
		launcher:  NewLauncher(cfg.Layout(), cfg.Grid.Width, cfg.Launcher),
		queue:     NewQueue(rng, g.Snapshot().Colors),
		logger:    logger,
		aimStep:   DefaultAimStep,
		OutputDir: ".",
	}
}

// Game returns the session's game
func (s *Session) Game() *state.Game {
	return s.game
}

// Queue returns the bubble queue
func (s *Session) Queue() *Queue {
	return s.queue
}

// Angle returns the current aim angle
func (s *Session) Angle() float64 {
	return s.angle
}

// SetAngle aims the launcher at angle, clamped
func (s *Session) SetAngle(angle float64) {
	s.angle = ClampAngle(angle)
}

// Aim turns the launcher by steps aim steps; negative turns left
func (s *Session) Aim(steps int) {
	s.SetAngle(s.angle + float64(steps)*s.aimStep)
}

// AimAt turns the launcher towards a world point
func (s *Session) AimAt(p r2.Vec) {
	d := r2.Sub(p, s.launcher.Origin())
	if d.Y >= 0 {
		return
	}
	s.SetAngle(math.Atan2(d.X, -d.Y))
}

// Preview traces the current aim without firing
func (s *Session) Preview() Shot {
	var shot Shot
	s.game.WithGrid(func(g *world.Grid) {
		shot = s.launcher.Trace(g, s.angle)
	})
	return shot
}

// Fire launches the current bubble along the current aim
func (s *Session) Fire() (world.Position, error) {
	s.queue.Ensure(s.game.Snapshot().Colors)

	shot := s.Preview()
	if !shot.OK {
		s.logger.Debug("shot lost", "angle", s.angle, "bounces", shot.Bounces)
		return world.NoPosition, ErrShotLost
	}

	pos, err := s.game.Fire(s.queue.Current(), shot.Point)
	if err != nil {
		return pos, err
	}
	s.queue.Advance(s.game.Snapshot().Colors)
	return pos, nil
}

// Reset refills the board and the queue
func (s *Session) Reset() {
	s.game.Reset()
	s.queue.Refill(s.game.Snapshot().Colors)
	s.angle = 0
}

// View captures the current frame
func (s *Session) View() View {
	minX, maxX := s.launcher.Walls()
	return View{
		Snapshot: s.game.Snapshot(),
		Angle:    s.angle,
		Origin:   s.launcher.Origin(),
		MinX:     minX,
		MaxX:     maxX,
		Current:  s.queue.Current(),
		Next:     s.queue.Next(),
		Aim:      s.Preview(),
	}
}
