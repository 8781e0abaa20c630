package spawner

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/connectivity"
	"hexpop/pkg/game/destruction"
	"hexpop/pkg/game/generator"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeOutcome struct {
	active bool
	lost   int
}

func (f *fakeOutcome) IsActive() bool    { return f.active }
func (f *fakeOutcome) GridCleared()      {}
func (f *fakeOutcome) LoseLineBreached() { f.lost++ }

type countingListener struct {
	rows int
}

func (c *countingListener) RowSpawned() { c.rows++ }

func pos(col, row int) world.Position {
	return world.Position{Col: col, Row: row}
}

func newSpawner(g *world.Grid, cfg Config, line destruction.LoseLine) (*Spawner, *fakeOutcome, *countingListener) {
	outcome := &fakeOutcome{active: true}
	listener := &countingListener{}
	s := New(g, cfg, Deps{
		Rand:     rand.New(rand.NewSource(11)),
		Outcome:  outcome,
		LoseLine: line,
		Listener: listener,
		Logger:   discardLogger(),
	})
	return s, outcome, listener
}

func TestConsumeShot_SpawnsAtZeroAndResets(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(), "R B R B")
	cfg := DefaultConfig()
	cfg.ShotsPerRow = 3
	s, _, listener := newSpawner(g, cfg, destruction.LoseLineY(100))

	if s.ConsumeShot() || s.ShotsLeft() != 2 {
		t.Fatalf("after 1 shot: ShotsLeft() = %d, want 2 and no row", s.ShotsLeft())
	}
	if s.ConsumeShot() || s.ShotsLeft() != 1 {
		t.Fatalf("after 2 shots: ShotsLeft() = %d, want 1 and no row", s.ShotsLeft())
	}
	if !s.ConsumeShot() {
		t.Fatal("third shot did not spawn a row")
	}
	if s.ShotsLeft() != 3 {
		t.Errorf("ShotsLeft() after spawn = %d, want 3", s.ShotsLeft())
	}
	if g.Rows() != 2 || listener.rows != 1 {
		t.Errorf("Rows, RowSpawned = %d, %d; want 2, 1", g.Rows(), listener.rows)
	}
}

func TestFillInitial(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(), "R R R R")
	s, _, _ := newSpawner(g, DefaultConfig(), destruction.LoseLineY(100))
	s.ConsumeShot()
	s.FillInitial(&generator.PatternGenerator{Rows: []string{"B . B .", ". G . G"}}, 0)

	if got := g.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
	if b := g.Get(pos(0, 0)); b == nil || b.Color != world.Blue {
		t.Error("(0,0) not blue after FillInitial")
	}
	if s.ShotsLeft() != DefaultConfig().ShotsPerRow {
		t.Errorf("ShotsLeft() = %d, want a full budget", s.ShotsLeft())
	}
}

func TestSpawnRowAtTop_ShiftsRowsKeepsColumns(t *testing.T) {
	g := world.NewGrid(8, world.DefaultLayout())
	generator.NewWeighted(rand.New(rand.NewSource(5)), nil, nil).Fill(g, 5)

	before := make(map[*world.Bubble]world.Position)
	g.ForEach(func(p world.Position, b *world.Bubble) {
		before[b] = p
	})

	s, _, _ := newSpawner(g, DefaultConfig(), destruction.LoseLineY(100))
	if !s.SpawnRowAtTop() {
		t.Fatal("SpawnRowAtTop returned false")
	}

	g.ForEach(func(p world.Position, b *world.Bubble) {
		old, ok := before[b]
		if !ok {
			if p.Row != 0 {
				t.Errorf("new bubble at %v, want row 0", p)
			}
			return
		}
		if p.Row != old.Row+1 || p.Col != old.Col {
			t.Errorf("bubble moved from %v to %v, want (%d,%d)", old, p, old.Col, old.Row+1)
		}
		if b.World != g.GridToWorld(p) {
			t.Errorf("bubble at %v has stale world position %v", p, b.World)
		}
	})
	if g.Count() != 48 {
		t.Errorf("Count() = %d, want 48", g.Count())
	}
}

func TestSpawnRowAtTop_UsesAvailableColors(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(), "P P C P C P")
	s, _, _ := newSpawner(g, DefaultConfig(), destruction.LoseLineY(100))
	s.SpawnRowAtTop()
	for col := 0; col < g.Width(); col++ {
		b := g.Get(pos(col, 0))
		if b == nil || !b.Attached {
			t.Fatalf("new row slot %d not filled with an attached bubble", col)
		}
		if b.Color != world.Purple && b.Color != world.Cyan {
			t.Errorf("new row color %v not among the colors on the grid", b.Color)
		}
	}
}

func TestSpawnRowAtTop_EmptyGridUsesFullPalette(t *testing.T) {
	g := world.NewGrid(30, world.DefaultLayout())
	s, _, _ := newSpawner(g, DefaultConfig(), destruction.LoseLineY(100))
	s.SpawnRowAtTop()
	if got := g.Count(); got != 30 {
		t.Fatalf("Count() = %d, want 30", got)
	}
	if got := len(g.AvailableColors()); got < 2 {
		t.Errorf("new row uses %d colors, want a spread from the full palette", got)
	}
}

func TestSpawnRowAtTop_DeferredWhileBusy(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(), "R R")
	busy := true
	s := New(g, DefaultConfig(), Deps{Busy: func() bool { return busy }, Logger: discardLogger()})
	if s.SpawnRowAtTop() {
		t.Error("SpawnRowAtTop succeeded while busy")
	}
	if g.Rows() != 1 {
		t.Errorf("Rows() = %d, want 1 (grid untouched)", g.Rows())
	}
	busy = false
	if !s.SpawnRowAtTop() {
		t.Error("SpawnRowAtTop failed once idle")
	}
}

func TestConsumeShot_RowStaysDueWhileBusy(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(), "R B R B")
	cfg := DefaultConfig()
	cfg.ShotsPerRow = 1
	busy := true
	s := New(g, cfg, Deps{Busy: func() bool { return busy }, Logger: discardLogger()})

	if s.ConsumeShot() {
		t.Fatal("ConsumeShot spawned a row while busy")
	}
	if s.ShotsLeft() != 0 || g.Rows() != 1 {
		t.Fatalf("ShotsLeft, Rows = %d, %d; want 0, 1 (row still due)", s.ShotsLeft(), g.Rows())
	}
	if s.Step(0.1) {
		t.Error("Step spawned the due row while busy")
	}

	busy = false
	if !s.Step(0.1) {
		t.Fatal("Step did not spawn the due row once idle")
	}
	if s.ShotsLeft() != 1 || g.Rows() != 2 {
		t.Errorf("ShotsLeft, Rows = %d, %d; want 1, 2", s.ShotsLeft(), g.Rows())
	}
	if s.Step(0.1) {
		t.Error("Step spawned a second row with budget left")
	}
}

func TestSpawnRowAtTop_ChecksLoseLine(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(), "R R", "B B")
	// Row 2 sits at y = 2*sqrt(3)/2, about 1.73.
	s, outcome, listener := newSpawner(g, DefaultConfig(), destruction.LoseLineY(1.5))
	s.SpawnRowAtTop()
	if outcome.lost != 1 {
		t.Errorf("LoseLineBreached fired %d times, want 1", outcome.lost)
	}
	if listener.rows != 1 {
		t.Errorf("RowSpawned fired %d times, want 1 regardless of outcome", listener.rows)
	}
}

func TestStep_TimedMode(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(), "R R")
	cfg := DefaultConfig()
	cfg.Mode = ModeTimed
	cfg.SurvivalInterval = 2
	s, _, listener := newSpawner(g, cfg, destruction.LoseLineY(100))

	if s.ConsumeShot() {
		t.Error("ConsumeShot spawned a row in timed mode")
	}
	s.Step(1.5)
	if listener.rows != 0 {
		t.Fatalf("row spawned after 1.5s, interval is 2s")
	}
	s.Step(0.6)
	if listener.rows != 1 {
		t.Fatalf("RowSpawned = %d after 2.1s, want 1", listener.rows)
	}
	s.Step(2)
	if listener.rows != 2 {
		t.Errorf("RowSpawned = %d after 4.1s, want 2", listener.rows)
	}
}

func TestRelocate_MovesIntoNeighborTouchingStructure(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(),
		"R R R R",
		". . . .",
		". G . .",
	)
	s, _, _ := newSpawner(g, DefaultConfig(), destruction.LoseLineY(100))
	if moves := s.Relocate(); moves != 1 {
		t.Errorf("Relocate() = %d moves, want 1", moves)
	}
	// (0,1) and (1,1) are equidistant; NorthWest enumerates first.
	if b := g.Get(pos(0, 1)); b == nil || b.Color != world.Green {
		t.Errorf("green bubble not relocated to (0,1)")
	}
	if len(connectivity.FloatingCells(g)) != 0 {
		t.Error("floating cells remain after Relocate")
	}
}

func TestRelocate_ForcedWhenNoNeighborFits(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(),
		"R . . . . .",
		". . . . . .",
		". . . . . .",
		". . . . . Y",
	)
	s, _, _ := newSpawner(g, DefaultConfig(), destruction.LoseLineY(100))
	if moves := s.Relocate(); moves != 1 {
		t.Errorf("Relocate() = %d moves, want 1", moves)
	}
	if b := g.Get(pos(1, 0)); b == nil || b.Color != world.Yellow {
		t.Errorf("yellow bubble not force-relocated to (1,0)")
	}
}

func TestRelocate_StuckWithoutStructure(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(),
		". . .",
		". B .",
	)
	s, _, _ := newSpawner(g, DefaultConfig(), destruction.LoseLineY(100))
	if moves := s.Relocate(); moves != 0 {
		t.Errorf("Relocate() = %d moves with nothing connected, want 0", moves)
	}
	if g.Get(pos(1, 1)) == nil {
		t.Error("bubble lost while stuck")
	}
}

func TestRelocate_TerminatesLegally(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 40; trial++ {
		g := world.NewGrid(8, world.DefaultLayout())
		generator.NewWeighted(rng, nil, nil).Fill(g, 7)
		for i := 0; i < 20; i++ {
			p := pos(rng.Intn(8), 1+rng.Intn(6))
			g.Remove(p)
		}
		count := g.Count()
		floating := len(connectivity.FloatingCells(g))

		cfg := DefaultConfig()
		s, _, _ := newSpawner(g, cfg, destruction.LoseLineY(100))
		moves := s.Relocate()

		if moves > cfg.RelocationLimit {
			t.Fatalf("trial %d: %d moves exceeds limit", trial, moves)
		}
		if moves > floating {
			t.Errorf("trial %d: %d moves for %d floating bubbles", trial, moves, floating)
		}
		if got := g.Count(); got != count {
			t.Fatalf("trial %d: Count() = %d, want %d", trial, got, count)
		}
		if left := connectivity.FloatingCells(g); len(left) != 0 {
			t.Errorf("trial %d: floating after Relocate: %v", trial, left)
		}
		g.ForEach(func(p world.Position, b *world.Bubble) {
			if !g.IsValidColumn(p.Col) {
				t.Errorf("trial %d: bubble at %v outside column bounds", trial, p)
			}
			if b.World != g.GridToWorld(p) {
				t.Errorf("trial %d: bubble at %v has stale world position", trial, p)
			}
		})
	}
}
