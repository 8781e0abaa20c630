package gameplay

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	engineinput "hexpop/pkg/engine/input"
	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/config"
	"hexpop/pkg/game/generator"
	"hexpop/pkg/game/state"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testLauncher(width int) *Launcher {
	return NewLauncher(world.DefaultLayout(), width, config.LauncherConfig{Row: 13, Step: 0.05, MaxBounces: 8})
}

func TestTrace_StraightUpEmptyGrid(t *testing.T) {
	l := testLauncher(8)
	g := world.NewGrid(8, world.DefaultLayout())
	shot := l.Trace(g, 0)

	if !shot.OK {
		t.Fatal("shot lost on an empty grid")
	}
	if shot.Point.Y != 0 {
		t.Errorf("landing y = %v, want the ceiling", shot.Point.Y)
	}
	if math.Abs(shot.Point.X-l.Origin().X) > 1e-9 {
		t.Errorf("landing x = %v, want %v", shot.Point.X, l.Origin().X)
	}
	if shot.Bounces != 0 || len(shot.Path) != 2 {
		t.Errorf("bounces, path = %d, %d; want 0, 2", shot.Bounces, len(shot.Path))
	}
}

func TestTrace_StopsBelowBubbles(t *testing.T) {
	l := testLauncher(8)
	g := generator.MustPattern(world.DefaultLayout(), "R R R R R R R R")
	shot := l.Trace(g, 0)

	if !shot.OK {
		t.Fatal("shot lost")
	}
	if got := g.WorldToGrid(shot.Point); got.Row != 1 {
		t.Errorf("shot landed in row %d, want 1", got.Row)
	}
	if shot.Point.Y <= world.DefaultLayout().RowHeight/2 {
		t.Errorf("landing y = %v, want below row 0", shot.Point.Y)
	}
}

func TestTrace_BouncesOffWalls(t *testing.T) {
	l := testLauncher(8)
	g := world.NewGrid(8, world.DefaultLayout())
	shot := l.Trace(g, -1.2)

	if !shot.OK {
		t.Fatal("shot lost")
	}
	if shot.Bounces == 0 {
		t.Error("steep shot did not bounce")
	}
	minX, maxX := l.Walls()
	for _, p := range shot.Path {
		if p.X < minX-1e-9 || p.X > maxX+1e-9 {
			t.Errorf("path point %v outside walls [%v, %v]", p, minX, maxX)
		}
	}
}

func TestTrace_TooManyBounces(t *testing.T) {
	l := NewLauncher(world.DefaultLayout(), 8, config.LauncherConfig{Row: 13, Step: 0.05, MaxBounces: 0})
	shot := l.Trace(world.NewGrid(8, world.DefaultLayout()), -1.3)
	if shot.OK {
		t.Error("shot landed with bounces over the limit")
	}
}

func TestClampAngle(t *testing.T) {
	if got := ClampAngle(3); got != MaxAngle {
		t.Errorf("ClampAngle(3) = %v, want %v", got, MaxAngle)
	}
	if got := ClampAngle(-3); got != -MaxAngle {
		t.Errorf("ClampAngle(-3) = %v, want %v", got, -MaxAngle)
	}
	if got := ClampAngle(0.2); got != 0.2 {
		t.Errorf("ClampAngle(0.2) = %v, want 0.2", got)
	}
}

func TestQueue(t *testing.T) {
	q := NewQueue(rand.New(rand.NewSource(3)), []world.Color{world.Red})
	if q.Current() != world.Red || q.Next() != world.Red {
		t.Fatalf("queue = %v, %v; want red, red", q.Current(), q.Next())
	}

	q.Advance([]world.Color{world.Blue})
	if q.Current() != world.Blue || q.Next() != world.Blue {
		t.Errorf("after Advance: %v, %v; want blue, blue (red left the board)", q.Current(), q.Next())
	}

	q.next = world.Green
	q.Swap()
	if q.Current() != world.Green || q.Next() != world.Blue {
		t.Errorf("after Swap: %v, %v; want green, blue", q.Current(), q.Next())
	}

	q.Ensure([]world.Color{world.Blue})
	if q.Current() != world.Blue {
		t.Errorf("after Ensure: current %v, want blue", q.Current())
	}
	q.Ensure(nil)
	if q.Current() != world.Blue {
		t.Error("Ensure with no colors changed the queue")
	}
}

func newTestSession(t *testing.T, width int, rows ...string) *Session {
	t.Helper()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Grid.Width = width
	cfg.Grid.InitialRows = 0
	g := state.NewGame(cfg, state.Options{
		Generator: &generator.PatternGenerator{Rows: rows},
		Logger:    discardLogger(),
	})
	s := NewSession(g, rand.New(rand.NewSource(9)), discardLogger())
	s.OutputDir = t.TempDir()
	return s
}

func TestSession_FireStraightUp(t *testing.T) {
	s := newTestSession(t, 8, "R B R B R B R B")
	shot := s.Preview()
	pos, err := s.Fire()
	if err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	if want := s.game.Config().Layout().ToGrid(shot.Point); pos.Row != 1 || pos.Col != want.Col {
		t.Errorf("Fire() landed at %v, want %v", pos, want)
	}
	if got := s.game.Snapshot().ShotsLeft; got != s.game.Config().Spawner.ShotsPerRow-1 {
		t.Errorf("ShotsLeft = %d, want one spent", got)
	}
}

func TestSession_AimClamped(t *testing.T) {
	s := newTestSession(t, 8, "R")
	for i := 0; i < 100; i++ {
		s.Aim(-1)
	}
	if s.Angle() != -MaxAngle {
		t.Errorf("Angle() = %v, want %v", s.Angle(), -MaxAngle)
	}
	s.AimAt(world.DefaultLayout().ToWorld(world.Position{Col: 0, Row: 0}))
	if s.Angle() >= 0 {
		t.Errorf("AimAt a point up and left gave angle %v, want negative", s.Angle())
	}
}

func TestProcessIntent(t *testing.T) {
	s := newTestSession(t, 8, "R R B B G G Y Y")

	if ProcessIntent(s, engineinput.Intent{Action: engineinput.ActionAimRight}) {
		t.Fatal("aim intent reported quit")
	}
	if s.Angle() != DefaultAimStep {
		t.Errorf("Angle() = %v, want %v", s.Angle(), DefaultAimStep)
	}

	current, next := s.queue.Current(), s.queue.Next()
	ProcessIntent(s, engineinput.Intent{Action: engineinput.ActionSwap})
	if s.queue.Current() != next || s.queue.Next() != current {
		t.Error("swap intent did not swap the queue")
	}

	ProcessIntent(s, engineinput.Intent{Action: engineinput.ActionSpawnRow})
	if got := len(s.game.Snapshot().Bubbles); got != 16 {
		t.Errorf("bubbles after spawn intent = %d, want 16", got)
	}

	ProcessIntent(s, engineinput.Intent{Action: engineinput.ActionDumpGrid})
	msgs := s.game.Snapshot().Messages
	if len(msgs) == 0 || msgs[len(msgs)-1] != "GRID_DUMPED" {
		t.Errorf("messages after dump = %v, want GRID_DUMPED last", msgs)
	}

	ProcessIntent(s, engineinput.Intent{Action: engineinput.ActionResetLevel})
	if got := len(s.game.Snapshot().Bubbles); got != 8 {
		t.Errorf("bubbles after reset = %d, want 8", got)
	}
	if s.Angle() != 0 {
		t.Errorf("Angle() after reset = %v, want 0", s.Angle())
	}

	if !ProcessIntent(s, engineinput.Intent{Action: engineinput.ActionQuit}) {
		t.Error("quit intent did not report quit")
	}
}

func TestSession_FireWhileBusy(t *testing.T) {
	s := newTestSession(t, 2, "R R")
	s.queue.current = world.Red
	if _, err := s.Fire(); err != nil {
		t.Fatalf("first Fire() error = %v", err)
	}
	if !s.game.IsDestroying() {
		t.Fatal("three reds did not start a destruction episode")
	}
	if _, err := s.Fire(); !errors.Is(err, state.ErrBusy) {
		t.Errorf("second Fire() error = %v, want ErrBusy", err)
	}
}
