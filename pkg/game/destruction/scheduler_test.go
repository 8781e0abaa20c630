package destruction

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/generator"
)

type recordingScoring struct {
	calls []string
	added []int
}

func (r *recordingScoring) ScoreForMatchBubble(index int) int {
	r.calls = append(r.calls, fmt.Sprintf("match:%d", index))
	return 10 * (index + 1)
}

func (r *recordingScoring) ScoreForFloatingBubble(index, base int) int {
	r.calls = append(r.calls, fmt.Sprintf("floating:%d:%d", index, base))
	return base * 2
}

func (r *recordingScoring) AddScore(points int) {
	r.added = append(r.added, points)
}

type recordingEffects struct {
	pops    []world.Color
	combos  []int
	popupAt []r2.Vec
}

func (r *recordingEffects) PlayPop(_ r2.Vec, c world.Color) {
	r.pops = append(r.pops, c)
}

func (r *recordingEffects) PlayPopup(_ int, at r2.Vec, combo int) {
	r.combos = append(r.combos, combo)
	r.popupAt = append(r.popupAt, at)
}

type fakeOutcome struct {
	active  bool
	cleared int
	lost    int
}

func (f *fakeOutcome) IsActive() bool    { return f.active }
func (f *fakeOutcome) GridCleared()      { f.cleared++ }
func (f *fakeOutcome) LoseLineBreached() { f.lost++ }

type harness struct {
	grid     *world.Grid
	sched    *Scheduler
	scoring  *recordingScoring
	effects  *recordingEffects
	outcome  *fakeOutcome
	consumed int
}

func newHarness(cfg Config, loseLine LoseLine, rows ...string) *harness {
	h := &harness{
		grid:    generator.MustPattern(world.DefaultLayout(), rows...),
		scoring: &recordingScoring{},
		effects: &recordingEffects{},
		outcome: &fakeOutcome{active: true},
	}
	h.sched = NewScheduler(h.grid, cfg, Deps{
		Scoring:  h.scoring,
		Effects:  h.effects,
		Outcome:  h.outcome,
		LoseLine: loseLine,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	h.sched.OnShotConsumed(func() { h.consumed++ })
	return h
}

func pos(col, row int) world.Position {
	return world.Position{Col: col, Row: row}
}

func farLoseLine() LoseLine {
	return LoseLineY(1000)
}

func TestStep_WaitsBeforeEachRemoval(t *testing.T) {
	h := newHarness(DefaultConfig(), farLoseLine(),
		"R R R B",
	)
	h.sched.Start([]world.Position{pos(0, 0), pos(1, 0), pos(2, 0)})

	h.sched.Step(0.1)
	if got := h.grid.Count(); got != 4 {
		t.Fatalf("Count() after 0.1s = %d, want 4 (base delay not elapsed)", got)
	}
	h.sched.Step(0.1)
	if got := h.grid.Count(); got != 3 {
		t.Fatalf("Count() after 0.2s = %d, want 3", got)
	}
	h.sched.Step(0.08)
	if got := h.grid.Count(); got != 2 {
		t.Fatalf("Count() after 0.28s = %d, want 2", got)
	}
	if !h.sched.IsDestroying() {
		t.Error("IsDestroying() = false with one removal pending")
	}
	h.sched.Step(1)
	if h.sched.IsDestroying() {
		t.Error("IsDestroying() = true after the episode drained")
	}
	if h.consumed != 1 {
		t.Errorf("shot consumed fired %d times, want 1", h.consumed)
	}
}

func TestStep_DelayDecaysToFloor(t *testing.T) {
	cfg := Config{BaseDelay: 0.1, DecayMultiplier: 0.5, DelayFloor: 0.03}
	h := newHarness(cfg, farLoseLine(),
		"R R R R R B",
	)
	h.sched.Start([]world.Position{pos(0, 0), pos(1, 0), pos(2, 0), pos(3, 0), pos(4, 0)})

	want := []float64{0.05, 0.03, 0.03, 0.03}
	for i, w := range want {
		h.sched.Step(h.sched.remaining)
		if got := h.sched.CurrentDelay(); math.Abs(got-w) > 1e-9 {
			t.Errorf("delay after pop %d = %v, want %v", i+1, got, w)
		}
	}
}

func TestStep_FloatingContinuesComboAndDelay(t *testing.T) {
	cfg := Config{BaseDelay: 0.2, DecayMultiplier: 0.5, DelayFloor: 0.01}
	h := newHarness(cfg, farLoseLine(),
		"B B . .",
		". R . .",
		". Y Y .",
	)
	h.sched.Start([]world.Position{pos(1, 1)})
	h.sched.Step(10)

	wantCalls := []string{"match:0", "floating:1:10", "floating:2:10"}
	if fmt.Sprint(h.scoring.calls) != fmt.Sprint(wantCalls) {
		t.Errorf("scoring calls = %v, want %v", h.scoring.calls, wantCalls)
	}
	if fmt.Sprint(h.effects.combos) != "[0 1 2]" {
		t.Errorf("popup combos = %v, want [0 1 2]", h.effects.combos)
	}
	if got := h.sched.CurrentDelay(); math.Abs(got-0.025) > 1e-9 {
		t.Errorf("final delay = %v, want 0.025 (not reset between phases)", got)
	}
	ep := h.sched.LastEpisode()
	if ep.Matched != 1 || ep.Floating != 2 || ep.Points != 50 {
		t.Errorf("LastEpisode() = %+v, want {1 2 50}", ep)
	}
	if h.grid.Count() != 2 {
		t.Errorf("Count() = %d, want 2 (the blue ceiling pair)", h.grid.Count())
	}
}

func TestStep_FloatingWaitsItsOwnDelay(t *testing.T) {
	cfg := Config{BaseDelay: 0.2, DecayMultiplier: 0.5, DelayFloor: 0.01}
	h := newHarness(cfg, farLoseLine(),
		"B B . .",
		". R . .",
		". Y Y .",
	)
	h.sched.Start([]world.Position{pos(1, 1)})
	h.sched.Step(0.2)
	if got := h.grid.Count(); got != 4 {
		t.Fatalf("Count() = %d, want 4 (only the match bubble removed)", got)
	}
	h.sched.Step(0.09)
	if got := h.grid.Count(); got != 4 {
		t.Fatalf("Count() = %d, want 4 (floating delay 0.1 not elapsed)", got)
	}
	h.sched.Step(0.02)
	if got := h.grid.Count(); got != 3 {
		t.Fatalf("Count() = %d, want 3", got)
	}
}

func TestStart_EmptyMatchIsNoOp(t *testing.T) {
	h := newHarness(DefaultConfig(), farLoseLine(), "R B")
	h.sched.Start(nil)
	h.sched.Step(0)
	if h.sched.IsDestroying() {
		t.Error("IsDestroying() = true after an empty episode")
	}
	if h.grid.Count() != 2 || h.consumed != 1 {
		t.Errorf("Count, consumed = %d, %d; want 2, 1", h.grid.Count(), h.consumed)
	}
}

func TestStart_RejectedWhileDestroying(t *testing.T) {
	h := newHarness(DefaultConfig(), farLoseLine(), "R R R")
	if !h.sched.Start([]world.Position{pos(0, 0)}) {
		t.Fatal("first Start returned false")
	}
	if h.sched.Start([]world.Position{pos(1, 0)}) {
		t.Error("second Start returned true while destroying")
	}
}

func TestFinish_GridClearedOnceNeverLose(t *testing.T) {
	// Every bubble sits past a lose line at y = -1.
	h := newHarness(DefaultConfig(), LoseLineY(-1), "G G G")
	h.sched.Start([]world.Position{pos(0, 0), pos(1, 0), pos(2, 0)})
	h.sched.Step(0.15)
	h.sched.Step(10)
	h.sched.Step(10)

	if h.outcome.cleared != 1 {
		t.Errorf("GridCleared fired %d times, want 1", h.outcome.cleared)
	}
	if h.outcome.lost != 0 {
		t.Errorf("LoseLineBreached fired %d times, want 0", h.outcome.lost)
	}
	if h.consumed != 0 {
		t.Errorf("shot consumed fired %d times, want 0", h.consumed)
	}
}

func TestFinish_LoseLineStopsShot(t *testing.T) {
	h := newHarness(DefaultConfig(), LoseLineY(0.5),
		"G G G",
		"R . .",
	)
	h.sched.Start([]world.Position{pos(1, 0), pos(2, 0)})
	h.sched.Step(10)

	if h.outcome.lost != 1 || h.consumed != 0 {
		t.Errorf("lost, consumed = %d, %d; want 1, 0", h.outcome.lost, h.consumed)
	}
}

func TestFinish_InactiveSkipsSignals(t *testing.T) {
	h := newHarness(DefaultConfig(), farLoseLine(), "G G B")
	h.outcome.active = false
	h.sched.Start([]world.Position{pos(0, 0), pos(1, 0)})
	h.sched.Step(10)

	if h.outcome.cleared+h.outcome.lost+h.consumed != 0 {
		t.Errorf("signals fired while inactive: cleared=%d lost=%d consumed=%d",
			h.outcome.cleared, h.outcome.lost, h.consumed)
	}
	if h.sched.IsDestroying() {
		t.Error("IsDestroying() = true after the episode drained")
	}
}

func TestCancel_DropsEpisodeSilently(t *testing.T) {
	h := newHarness(DefaultConfig(), farLoseLine(), "G G G B")
	h.sched.Start([]world.Position{pos(0, 0), pos(1, 0), pos(2, 0)})
	h.sched.Step(0.15)
	h.sched.Cancel()
	h.sched.Step(10)

	if h.grid.Count() != 3 {
		t.Errorf("Count() = %d, want 3 (one removal before cancel)", h.grid.Count())
	}
	if h.consumed != 0 {
		t.Errorf("shot consumed fired %d times after cancel", h.consumed)
	}
}

func TestPop_FollowsBubbleAcrossRowInsert(t *testing.T) {
	h := newHarness(DefaultConfig(), farLoseLine(), "G G B")
	h.sched.Start([]world.Position{pos(0, 0), pos(1, 0)})
	h.grid.InsertRowTop([]*world.Bubble{world.NewBubble(world.Red), world.NewBubble(world.Red), world.NewBubble(world.Red)})
	h.sched.Step(10)

	for col := 0; col < 3; col++ {
		if b := h.grid.Get(pos(col, 0)); b == nil || b.Color != world.Red {
			t.Errorf("new row bubble at (%d,0) removed", col)
		}
	}
	if h.grid.Get(pos(0, 1)) != nil || h.grid.Get(pos(1, 1)) != nil {
		t.Error("matched bubbles not removed from their shifted slots")
	}
}

func TestLoseLineBreached(t *testing.T) {
	g := generator.MustPattern(world.DefaultLayout(), "R", "R", "R")
	if LoseLineBreached(g, LoseLineY(5)) {
		t.Error("LoseLineBreached at y=5 = true, want false")
	}
	if !LoseLineBreached(g, LoseLineY(1.7)) {
		t.Error("LoseLineBreached at y=1.7 = false, want true")
	}
	if LoseLineBreached(g, nil) {
		t.Error("LoseLineBreached with nil line = true, want false")
	}
}
