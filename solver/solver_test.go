package solver

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deadEndGrid is a 2x2 maze where the first choice from the start (right) is a dead end:
//
//	+---+---+
//	| S     |
//	+   +---+
//	|     X |
//	+---+---+
func deadEndGrid(t *testing.T) *maze.Grid {
	t.Helper()
	g := maze.BuildGrid(2, 2)
	require.NoError(t, g.Carve(maze.Position{Row: 0, Col: 0}, maze.Right))
	require.NoError(t, g.Carve(maze.Position{Row: 0, Col: 0}, maze.Bottom))
	require.NoError(t, g.Carve(maze.Position{Row: 1, Col: 0}, maze.Right))
	g.Cell(maze.Position{Row: 1, Col: 1}).IsTarget = true
	return g
}

type recorder struct {
	sync.Mutex
	steps []Step
}

func (r *recorder) emit(s Step) {
	r.Lock()
	defer r.Unlock()
	r.steps = append(r.steps, s)
}

func (r *recorder) all() []Step {
	r.Lock()
	defer r.Unlock()
	return append([]Step(nil), r.steps...)
}

func pos(row, col int) maze.Position {
	return maze.Position{Row: row, Col: col}
}

func TestSolveLivePathShrinksOnBacktrack(t *testing.T) {
	rec := &recorder{}
	res := Solve(context.Background(), deadEndGrid(t), pos(0, 0), Options{Emit: rec.emit})

	require.Equal(t, Solved, res.Outcome)
	assert.Equal(t, []maze.Position{pos(0, 0), pos(1, 0), pos(1, 1)}, res.Path)
	assert.Equal(t, 5, res.Steps)
	assert.Equal(t, 4, res.Visited)

	steps := rec.all()
	require.Len(t, steps, 5)

	wantPaths := [][]maze.Position{
		{pos(0, 0)},
		{pos(0, 0), pos(0, 1)},
		{pos(0, 0)},
		{pos(0, 0), pos(1, 0)},
		{pos(0, 0), pos(1, 0), pos(1, 1)},
	}
	wantDirs := []maze.Direction{maze.NoDirection, maze.Right, maze.Right, maze.Bottom, maze.Right}
	for i, s := range steps {
		assert.Equal(t, PhaseSearch, s.Phase)
		assert.Equal(t, i, s.Index)
		assert.Equal(t, wantPaths[i], s.Path, "step %d", i)
		assert.Equal(t, wantPaths[i][len(wantPaths[i])-1], s.Player, "player is the top of the stack")
		assert.Equal(t, wantDirs[i], s.Direction, "step %d", i)
	}

	// The dead-end cell leaves the live path on the backtrack step.
	assert.Less(t, len(steps[2].Path), len(steps[1].Path))
	assert.NotContains(t, steps[2].Path, pos(0, 1))
}

func TestSolveGeneratedMazes(t *testing.T) {
	for seed := uint64(0); seed < 25; seed++ {
		cfg := maze.Config{Rows: 8, Cols: 11, CellSize: 10}
		g, err := maze.New(cfg, maze.NewSeededChooser(seed))
		require.NoError(t, err)

		rec := &recorder{}
		res := Solve(context.Background(), g, cfg.Start, Options{Emit: rec.emit})

		require.Equal(t, Solved, res.Outcome, "seed %d", seed)
		assert.Equal(t, cfg.Start, res.Path[0])
		assert.Equal(t, cfg.TargetPosition(), res.Path[len(res.Path)-1])
		assert.LessOrEqual(t, res.Visited, cfg.Rows*cfg.Cols)
		assert.LessOrEqual(t, res.Steps, 2*cfg.Rows*cfg.Cols-1)

		// Consecutive path cells are joined by open walls.
		for i := 1; i < len(res.Path); i++ {
			d, ok := maze.DirectionBetween(res.Path[i-1], res.Path[i])
			require.True(t, ok)
			assert.True(t, g.Passable(res.Path[i-1], d))
		}

		// A cell is pushed at most once: a push is a step whose path grew.
		pushed := map[maze.Position]int{}
		steps := rec.all()
		for i := 1; i < len(steps); i++ {
			if len(steps[i].Path) > len(steps[i-1].Path) {
				pushed[steps[i].Player]++
			}
		}
		for p, n := range pushed {
			assert.Equal(t, 1, n, "cell %s revisited", p)
		}
	}
}

func TestSolveThreeByThreeScenario(t *testing.T) {
	cfg := maze.Config{Rows: 3, Cols: 3, CellSize: 40, Start: pos(0, 0)}
	g, err := maze.New(cfg, maze.NewSeededChooser(2024))
	require.NoError(t, err)
	assert.True(t, g.IsTarget(pos(2, 2)))

	res := Run(context.Background(), g, cfg.Start, Options{})
	require.Equal(t, Solved, res.Outcome)
	assert.Equal(t, pos(0, 0), res.Path[0])
	assert.Equal(t, pos(2, 2), res.Path[len(res.Path)-1])
}

func TestSolveStartIsTarget(t *testing.T) {
	t.Run("1x1", func(t *testing.T) {
		g, err := maze.New(maze.Config{Rows: 1, Cols: 1, CellSize: 1}, nil)
		require.NoError(t, err)

		paused := false
		res := Solve(context.Background(), g, pos(0, 0), Options{
			Pacer: PacerFunc(func(context.Context) error {
				paused = true
				return nil
			}),
		})
		assert.Equal(t, Solved, res.Outcome)
		assert.Equal(t, []maze.Position{pos(0, 0)}, res.Path)
		assert.Equal(t, 1, res.Steps)
		assert.False(t, paused)
	})

	t.Run("start on target cell", func(t *testing.T) {
		cfg := maze.Config{Rows: 3, Cols: 3, CellSize: 1, Start: pos(2, 2)}
		g, err := maze.New(cfg, maze.NewSeededChooser(5))
		require.NoError(t, err)

		res := Solve(context.Background(), g, cfg.Start, Options{})
		assert.Equal(t, Solved, res.Outcome)
		assert.Equal(t, []maze.Position{pos(2, 2)}, res.Path)
	})
}

func TestSolveExhausted(t *testing.T) {
	t.Run("target walled off", func(t *testing.T) {
		g := maze.BuildGrid(2, 2)
		require.NoError(t, g.Carve(pos(0, 0), maze.Right))
		g.Cell(pos(1, 1)).IsTarget = true

		res := Solve(context.Background(), g, pos(0, 0), Options{})
		assert.Equal(t, Exhausted, res.Outcome)
		assert.Empty(t, res.Path)
		assert.Equal(t, 2, res.Visited)
	})

	t.Run("start out of bounds", func(t *testing.T) {
		res := Solve(context.Background(), maze.BuildGrid(2, 2), pos(5, 5), Options{})
		assert.Equal(t, Exhausted, res.Outcome)
	})

	t.Run("reveal skipped", func(t *testing.T) {
		g := maze.BuildGrid(2, 2)
		g.Cell(pos(1, 1)).IsTarget = true

		rec := &recorder{}
		res := Run(context.Background(), g, pos(0, 0), Options{Emit: rec.emit})
		assert.Equal(t, Exhausted, res.Outcome)
		for _, s := range rec.all() {
			assert.Equal(t, PhaseSearch, s.Phase)
		}
	})
}

func TestSolveCancellation(t *testing.T) {
	t.Run("cancelled by pacer", func(t *testing.T) {
		g, err := maze.New(maze.Config{Rows: 10, Cols: 10, CellSize: 1}, maze.NewSeededChooser(3))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		pauses := 0
		rec := &recorder{}
		res := Solve(ctx, g, pos(0, 0), Options{
			Emit: rec.emit,
			Pacer: PacerFunc(func(ctx context.Context) error {
				pauses++
				if pauses == 4 {
					cancel()
				}
				return nil
			}),
		})

		assert.Equal(t, Aborted, res.Outcome)
		assert.Empty(t, res.Path)
		assert.Len(t, rec.all(), 4, "no step after the cancelling pause")
	})

	t.Run("observed during a long pause", func(t *testing.T) {
		g, err := maze.New(maze.Config{Rows: 5, Cols: 5, CellSize: 1}, maze.NewSeededChooser(3))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		first := make(chan struct{})
		var once sync.Once

		done := make(chan Result, 1)
		go func() {
			done <- Solve(ctx, g, pos(0, 0), Options{
				Pacer: Delay(time.Hour),
				Emit:  func(Step) { once.Do(func() { close(first) }) },
			})
		}()

		<-first
		cancel()

		select {
		case res := <-done:
			assert.Equal(t, Aborted, res.Outcome)
		case <-time.After(5 * time.Second):
			t.Fatal("solver did not observe cancellation during the pause")
		}
	})

	t.Run("already cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		rec := &recorder{}
		res := Solve(ctx, deadEndGrid(t), pos(0, 0), Options{Emit: rec.emit})
		assert.Equal(t, Aborted, res.Outcome)
		assert.Empty(t, rec.all())
	})
}

func TestReveal(t *testing.T) {
	path := []maze.Position{pos(0, 0), pos(1, 0), pos(1, 1)}

	t.Run("plays the path in order", func(t *testing.T) {
		rec := &recorder{}
		revealed, outcome := Reveal(context.Background(), path, nil, rec.emit)

		assert.Equal(t, Solved, outcome)
		assert.Equal(t, path, revealed)

		steps := rec.all()
		require.Len(t, steps, 3)
		for i, s := range steps {
			assert.Equal(t, PhaseReveal, s.Phase)
			assert.Equal(t, path[:i+1], s.Path)
			assert.Equal(t, pos(1, 1), s.Player)
		}
	})

	t.Run("aborted mid-reveal", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ticks := 0
		revealed, outcome := Reveal(ctx, path, PacerFunc(func(ctx context.Context) error {
			ticks++
			if ticks == 2 {
				cancel()
				return ctx.Err()
			}
			return nil
		}), nil)

		assert.Equal(t, Aborted, outcome)
		assert.Nil(t, revealed)
	})
}

func TestRun(t *testing.T) {
	rec := &recorder{}
	res := Run(context.Background(), deadEndGrid(t), pos(0, 0), Options{Emit: rec.emit})
	require.Equal(t, Solved, res.Outcome)

	steps := rec.all()
	require.Len(t, steps, 5+3)
	assert.Equal(t, PhaseSearch, steps[4].Phase)
	assert.Equal(t, PhaseReveal, steps[5].Phase)
	assert.Equal(t, res.Path, steps[len(steps)-1].Path)
}

func TestStartSolve(t *testing.T) {
	t.Run("completes", func(t *testing.T) {
		done := make(chan Result, 1)
		rec := &recorder{}
		cancel := StartSolve(context.Background(), deadEndGrid(t), pos(0, 0), rec.emit,
			func(r Result) { done <- r }, Options{})
		defer cancel()

		select {
		case res := <-done:
			assert.Equal(t, Solved, res.Outcome)
		case <-time.After(5 * time.Second):
			t.Fatal("solve did not finish")
		}
		assert.NotEmpty(t, rec.all())
	})

	t.Run("cancel waits for the run", func(t *testing.T) {
		var got Result
		cancel := StartSolve(context.Background(), deadEndGrid(t), pos(0, 0), nil,
			func(r Result) { got = r }, Options{Pacer: Delay(time.Hour)})

		cancel()
		assert.Equal(t, Aborted, got.Outcome)
		assert.Empty(t, got.Path)
	})
}

func TestDelay(t *testing.T) {
	assert.NoError(t, Delay(time.Millisecond).Pause(context.Background()))
	assert.NoError(t, Delay(0).Pause(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Delay(time.Hour).Pause(ctx), context.Canceled)
	assert.ErrorIs(t, NoDelay.Pause(ctx), context.Canceled)
}
