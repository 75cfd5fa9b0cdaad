package snake

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/AbdelPr0/terminal-arcade/internal/core"
)

func running(body []core.Point, dir Direction, food core.Point) State {
	return State{
		Body:     body,
		Dir:      dir,
		Food:     food,
		Interval: 150 * time.Millisecond,
		Phase:    core.PhaseRunning,
	}
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})
	return g
}

func TestNewStateDefaults(t *testing.T) {
	st := NewState(DefaultSettings())

	if !reflect.DeepEqual(st.Body, []core.Point{{X: 10, Y: 10}}) {
		t.Errorf("Body = %v, expected [{10 10}]", st.Body)
	}
	if st.Food != (core.Point{X: 5, Y: 5}) {
		t.Errorf("Food = %v, expected {5 5}", st.Food)
	}
	if st.Dir != DirRight {
		t.Errorf("Dir = %v, expected right", st.Dir)
	}
	if st.Interval != 150*time.Millisecond {
		t.Errorf("Interval = %v, expected 150ms", st.Interval)
	}
	if st.Phase != core.PhaseNotStarted {
		t.Errorf("Phase = %v, expected not_started", st.Phase)
	}
}

func TestStepEatsFood(t *testing.T) {
	s := DefaultSettings()
	st := running([]core.Point{{X: 5, Y: 5}}, DirRight, core.Point{X: 6, Y: 5})

	next, ev := Step(st, Intent{}, s, rand.New(rand.NewSource(1)))

	want := []core.Point{{X: 6, Y: 5}, {X: 5, Y: 5}}
	if !reflect.DeepEqual(next.Body, want) {
		t.Fatalf("Body = %v, expected %v", next.Body, want)
	}
	if next.Score != 10 {
		t.Errorf("Score = %d, expected 10", next.Score)
	}
	if !ev.Ate || ev.Died {
		t.Errorf("unexpected events %+v", ev)
	}
	if next.Food == (core.Point{X: 6, Y: 5}) {
		t.Error("food was not regenerated")
	}
	for _, p := range next.Body {
		if p == next.Food {
			t.Errorf("food %v spawned on the snake", next.Food)
		}
	}
	if next.Interval != 145*time.Millisecond {
		t.Errorf("Interval = %v, expected 145ms", next.Interval)
	}

	// The input state is untouched
	if len(st.Body) != 1 || st.Score != 0 {
		t.Error("Step mutated its input")
	}
}

func TestStepSpeedFloor(t *testing.T) {
	s := DefaultSettings()
	tests := []struct {
		name string
		from time.Duration
		want time.Duration
	}{
		{"above floor", 100 * time.Millisecond, 95 * time.Millisecond},
		{"clamped to floor", 52 * time.Millisecond, 50 * time.Millisecond},
		{"at floor", 50 * time.Millisecond, 50 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := running([]core.Point{{X: 5, Y: 5}}, DirRight, core.Point{X: 6, Y: 5})
			st.Interval = tc.from
			next, _ := Step(st, Intent{}, s, rand.New(rand.NewSource(1)))
			if next.Interval != tc.want {
				t.Errorf("Interval = %v, expected %v", next.Interval, tc.want)
			}
		})
	}
}

func TestReversalRejected(t *testing.T) {
	s := DefaultSettings()
	st := running([]core.Point{{X: 5, Y: 5}, {X: 4, Y: 5}}, DirRight, core.Point{X: 0, Y: 0})

	pending := Steer(st, Intent{}, DirLeft)
	if pending.Set {
		t.Fatal("reversal should be rejected at intake")
	}

	// Even if it reached the step it is ignored
	next, ev := Step(st, Intent{Dir: DirLeft, Set: true}, s, rand.New(rand.NewSource(1)))
	if next.Dir != DirRight {
		t.Errorf("Dir = %v, expected right", next.Dir)
	}
	if ev.Died || next.Head() != (core.Point{X: 6, Y: 5}) {
		t.Errorf("snake should keep moving right, head = %v", next.Head())
	}
}

func TestSteerLastPressWins(t *testing.T) {
	st := running([]core.Point{{X: 5, Y: 5}}, DirRight, core.Point{})

	pending := Steer(st, Intent{}, DirUp)
	pending = Steer(st, pending, DirDown)
	pending = Steer(st, pending, DirLeft) // rejected, keeps Down

	if !pending.Set || pending.Dir != DirDown {
		t.Errorf("pending = %+v, expected down", pending)
	}
}

func TestWallCollision(t *testing.T) {
	s := DefaultSettings()
	st := running([]core.Point{{X: 19, Y: 10}, {X: 18, Y: 10}}, DirRight, core.Point{X: 0, Y: 0})
	st.Score = 40

	next, ev := Step(st, Intent{}, s, rand.New(rand.NewSource(1)))

	if !ev.Died || next.Phase != core.PhaseGameOver {
		t.Fatalf("expected game over, got phase %v", next.Phase)
	}
	if !reflect.DeepEqual(next.Body, st.Body) || next.Score != 40 {
		t.Error("a fatal move must leave the body and score unchanged")
	}
}

func TestSelfCollisionRule(t *testing.T) {
	// Head at (1,1) moving up with the tail at (2,1); turning right
	// targets the cell the tail is about to leave.
	body := []core.Point{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 1}}
	st := running(body, DirUp, core.Point{X: 10, Y: 10})
	turn := Intent{Dir: DirRight, Set: true}

	t.Run("strict full body", func(t *testing.T) {
		next, ev := Step(st, turn, DefaultSettings(), rand.New(rand.NewSource(1)))
		if !ev.Died || next.Phase != core.PhaseGameOver {
			t.Error("moving into the tail cell should be fatal by default")
		}
	})

	t.Run("tail vacates", func(t *testing.T) {
		s := DefaultSettings()
		s.TailVacates = true
		next, ev := Step(st, turn, s, rand.New(rand.NewSource(1)))
		if ev.Died {
			t.Fatal("tail cell should be free when tail_vacates is on")
		}
		want := []core.Point{{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}}
		if !reflect.DeepEqual(next.Body, want) {
			t.Errorf("Body = %v, expected %v", next.Body, want)
		}
	})

	t.Run("body cell is always fatal", func(t *testing.T) {
		s := DefaultSettings()
		s.TailVacates = true
		long := []core.Point{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 1}, {X: 3, Y: 1}}
		_, ev := Step(running(long, DirUp, core.Point{X: 10, Y: 10}), turn, s, rand.New(rand.NewSource(1)))
		if !ev.Died {
			t.Error("a non-tail body cell must be fatal")
		}
	})
}

func TestWinWhenBoardFull(t *testing.T) {
	s := DefaultSettings()
	s.Width, s.Height = 2, 2
	body := []core.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	st := running(body, DirUp, core.Point{X: 1, Y: 0})

	next, ev := Step(st, Intent{Dir: DirRight, Set: true}, s, rand.New(rand.NewSource(1)))

	if !ev.Won || !next.Won || next.Phase != core.PhaseGameOver {
		t.Fatalf("filling the board should win, got %+v phase %v", ev, next.Phase)
	}
	if next.Food != NoFood {
		t.Errorf("Food = %v, expected none", next.Food)
	}
	if len(next.Body) != 4 {
		t.Errorf("len(Body) = %d, expected 4", len(next.Body))
	}
}

func TestStepLengthAndDistinctness(t *testing.T) {
	s := DefaultSettings()
	s.Width, s.Height = 8, 8
	rng := rand.New(rand.NewSource(7))
	keys := rand.New(rand.NewSource(11))

	st := NewState(s)
	st.Phase = core.PhaseRunning
	for i := 0; i < 5000; i++ {
		var in Intent
		if keys.Intn(3) == 0 {
			in = Steer(st, Intent{}, Direction(keys.Intn(4)))
		}
		next, ev := Step(st, in, s, rng)

		if ev.Moved {
			grew := len(next.Body) - len(st.Body)
			if grew != 0 && grew != 1 {
				t.Fatalf("step %d: length changed by %d", i, grew)
			}
			if (grew == 1) != ev.Ate {
				t.Fatalf("step %d: growth %d disagrees with ate=%v", i, grew, ev.Ate)
			}
		}
		seen := make(map[core.Point]bool, len(next.Body))
		for _, p := range next.Body {
			if seen[p] {
				t.Fatalf("step %d: duplicate cell %v in %v", i, p, next.Body)
			}
			seen[p] = true
		}
		if next.Food != NoFood && seen[next.Food] {
			t.Fatalf("step %d: food on the snake", i)
		}
		if next.Score < st.Score {
			t.Fatalf("step %d: score decreased", i)
		}

		st = next
		if st.Phase == core.PhaseGameOver {
			st = NewState(s)
			st.Phase = core.PhaseRunning
		}
	}
}

func TestSpawnFoodNeverOnBody(t *testing.T) {
	s := DefaultSettings()
	s.Width, s.Height = 5, 4
	rng := rand.New(rand.NewSource(999))
	body := []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 1}}

	for i := 0; i < 200; i++ {
		f := spawnFood(body, s, rng)
		if f == NoFood {
			t.Fatal("free cells remain, food expected")
		}
		if !inBoard(f, s) {
			t.Fatalf("food %v out of bounds", f)
		}
		for _, p := range body {
			if p == f {
				t.Fatalf("food %v on body", f)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, 12345)
	g2 := newTestGame(t, 12345)

	for i := 0; i < 100; i++ {
		input := core.NewInputFrame()
		switch i {
		case 0:
			input.Set(core.ActionRight)
		case 3:
			input.Set(core.ActionDown)
		case 6:
			input.Set(core.ActionLeft)
		}
		g1.Step(input)
		g2.Step(input)
	}

	if !reflect.DeepEqual(g1.Snapshot(), g2.Snapshot()) {
		t.Errorf("snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestWaitsForFirstKey(t *testing.T) {
	g := newTestGame(t, 1)

	before := g.Snapshot()
	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("a session that has not started must not move")
	}

	g.Handle(core.FrameOf(core.ActionUp))
	if g.State().Phase != core.PhaseRunning {
		t.Fatalf("direction key should start the game, phase %v", g.State().Phase)
	}
	g.Step(core.NewInputFrame())
	if head := g.Snapshot().Body[0]; head != (core.Point{X: 10, Y: 9}) {
		t.Errorf("head = %v, expected {10 9}", head)
	}
}

func TestPausedTicksChangeNothing(t *testing.T) {
	g := newTestGame(t, 3)
	g.Handle(core.FrameOf(core.ActionRight))
	g.Step(core.NewInputFrame())

	g.Handle(core.FrameOf(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	before := g.Snapshot()
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("paused session changed on tick")
	}

	// Steering while paused is dropped
	g.Handle(core.FrameOf(core.ActionDown))
	g.Handle(core.FrameOf(core.ActionPause))
	g.Step(core.NewInputFrame())
	if g.Snapshot().Dir != DirRight {
		t.Errorf("Dir = %v, steering during pause should be ignored", g.Snapshot().Dir)
	}
}

func TestRestart(t *testing.T) {
	g := newTestGame(t, 5)
	epoch := g.State().Epoch

	// Restart is ignored before the game starts
	g.Handle(core.FrameOf(core.ActionRestart))
	if g.State().Epoch != epoch {
		t.Error("restart before start should be ignored")
	}

	// Ten moves right from {10,10} leaves the 20-wide board
	g.Handle(core.FrameOf(core.ActionRight))
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.State().GameOver {
		t.Fatalf("expected game over, got %+v", g.Snapshot())
	}

	res := g.Handle(core.FrameOf(core.ActionRestart))
	if res.State.Phase != core.PhaseRunning {
		t.Errorf("restart should yield a running session, got %v", res.State.Phase)
	}
	if res.State.Epoch != epoch+1 {
		t.Errorf("Epoch = %d, expected %d", res.State.Epoch, epoch+1)
	}
	snap := g.Snapshot()
	if snap.Score != 0 || len(snap.Body) != 1 || snap.Body[0] != (core.Point{X: 10, Y: 10}) {
		t.Errorf("restart should rebuild the default session, got %+v", snap)
	}
}

func TestRenderShowsBoard(t *testing.T) {
	g := newTestGame(t, 1)
	screen := core.NewScreen(80, 23)
	g.Render(screen)

	if got := screen.Row(0); got[:6] != " SNAKE" {
		t.Errorf("HUD row = %q", got)
	}
	out := screen.String()
	for _, want := range []string{"┌", "┘", "Press an arrow key to start"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	small := core.NewScreen(30, 10)
	g.Resize(30, 10)
	g.Render(small)
	if !strings.Contains(small.String(), "Window too small") {
		t.Error("expected too-small notice")
	}
}
