// Package solver runs a step-by-step depth-first search over a generated maze.
//
// The search is deterministic: at every cell the first open, unvisited side in the order
// top, right, bottom, left is taken. Each step is published through an Emitter so a
// presentation layer can animate the live path, which is the current DFS stack and
// therefore shrinks when the search backtracks out of a dead end.
package solver

import (
	"context"
	"fmt"
	"slices"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// Outcome is the terminal state of a run.
type Outcome int

const (
	Solved    Outcome = iota + 1 // target reached
	Aborted                      // cancellation observed
	Exhausted                    // stack emptied without reaching a target
)

func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case Aborted:
		return "aborted"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Phase tells whether a Step comes from the search loop or the reveal playback.
type Phase int

const (
	PhaseSearch Phase = iota + 1
	PhaseReveal
)

func (p Phase) String() string {
	switch p {
	case PhaseSearch:
		return "search"
	case PhaseReveal:
		return "reveal"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Step is a snapshot published after every search iteration and every reveal tick.
type Step struct {
	Phase     Phase           `json:"phase"`
	Index     int             `json:"index"`     // 0-based counter within the phase
	Player    maze.Position   `json:"player"`    // cell the player stands on
	Path      []maze.Position `json:"path"`      // live stack while searching, revealed prefix while revealing
	Direction maze.Direction  `json:"direction"` // side taken by the last push; kept across backtracks
}

// Emitter receives steps. Path slices are owned by the receiver.
type Emitter func(Step)

// Options tunes a run. The zero value runs without delays and drops every step.
type Options struct {
	Pacer       Pacer   // pause between search steps
	RevealPacer Pacer   // pause between reveal ticks
	Emit        Emitter // step sink
}

func (o Options) withDefaults() Options {
	if o.Pacer == nil {
		o.Pacer = NoDelay
	}
	if o.RevealPacer == nil {
		o.RevealPacer = NoDelay
	}
	if o.Emit == nil {
		o.Emit = func(Step) {}
	}
	return o
}

// Result summarises a finished search.
type Result struct {
	Outcome Outcome         `json:"outcome"`
	Path    []maze.Position `json:"path"`    // stack at the moment the target was reached; empty otherwise
	Steps   int             `json:"steps"`   // search iterations performed
	Visited int             `json:"visited"` // distinct cells entered
}

// Solve searches grid from start towards its target cell. Cancellation of ctx is checked
// before every emitted step, during every pause and again right after it, and ends the
// run with Aborted and an empty path. grid is only read.
func Solve(ctx context.Context, grid *maze.Grid, start maze.Position, opts Options) Result {
	opts = opts.withDefaults()
	if !grid.InBound(start) {
		return Result{Outcome: Exhausted}
	}

	visited := map[maze.Position]struct{}{start: {}}
	stack := []maze.Position{start}
	direction := maze.NoDirection
	steps := 0

	aborted := func() Result {
		return Result{Outcome: Aborted, Steps: steps, Visited: len(visited)}
	}

	for len(stack) > 0 {
		current := stack[len(stack)-1]

		if ctx.Err() != nil {
			return aborted()
		}

		opts.Emit(Step{
			Phase:     PhaseSearch,
			Index:     steps,
			Player:    current,
			Path:      slices.Clone(stack),
			Direction: direction,
		})
		steps++

		if grid.IsTarget(current) {
			return Result{Outcome: Solved, Path: slices.Clone(stack), Steps: steps, Visited: len(visited)}
		}

		if err := opts.Pacer.Pause(ctx); err != nil || ctx.Err() != nil {
			return aborted()
		}

		if next, d, ok := firstMove(grid, current, visited); ok {
			visited[next] = struct{}{}
			stack = append(stack, next)
			direction = d
		} else {
			stack = stack[:len(stack)-1]
		}
	}

	return Result{Outcome: Exhausted, Steps: steps, Visited: len(visited)}
}

// firstMove returns the first passable, unvisited neighbour of pos in top, right, bottom, left order.
func firstMove(grid *maze.Grid, pos maze.Position, visited map[maze.Position]struct{}) (maze.Position, maze.Direction, bool) {
	for _, d := range maze.Directions {
		if !grid.Passable(pos, d) {
			continue
		}
		next := pos.Step(d)
		if _, seen := visited[next]; !seen {
			return next, d, true
		}
	}
	return maze.Position{}, maze.NoDirection, false
}

// Reveal replays path one position at a time, pausing with pacer after each tick.
// On cancellation it returns Aborted and drops the partial result.
func Reveal(ctx context.Context, path []maze.Position, pacer Pacer, emit Emitter) ([]maze.Position, Outcome) {
	if pacer == nil {
		pacer = NoDelay
	}
	if emit == nil {
		emit = func(Step) {}
	}

	revealed := make([]maze.Position, 0, len(path))
	for i, pos := range path {
		if ctx.Err() != nil {
			return nil, Aborted
		}

		revealed = append(revealed, pos)
		emit(Step{
			Phase:     PhaseReveal,
			Index:     i,
			Player:    path[len(path)-1],
			Path:      slices.Clone(revealed),
			Direction: maze.NoDirection,
		})

		if err := pacer.Pause(ctx); err != nil {
			return nil, Aborted
		}
	}

	return revealed, Solved
}

// Run performs Solve followed, on success, by Reveal of the found path.
// An abort during the reveal turns the outcome into Aborted with an empty path.
func Run(ctx context.Context, grid *maze.Grid, start maze.Position, opts Options) Result {
	opts = opts.withDefaults()

	res := Solve(ctx, grid, start, opts)
	if res.Outcome != Solved {
		return res
	}

	if _, outcome := Reveal(ctx, res.Path, opts.RevealPacer, opts.Emit); outcome == Aborted {
		res.Outcome = Aborted
		res.Path = nil
	}
	return res
}

// StartSolve runs Run on its own goroutine. onStep receives every step and onDone the
// final result. The returned cancel stops the run and blocks until onDone has returned;
// it must not be called from onStep or onDone.
func StartSolve(ctx context.Context, grid *maze.Grid, start maze.Position, onStep Emitter, onDone func(Result), opts Options) (cancel func()) {
	runCtx, stop := context.WithCancel(ctx)
	done := make(chan struct{})

	opts.Emit = onStep
	go func() {
		defer close(done)
		defer stop()

		res := Run(runCtx, grid, start, opts)
		if onDone != nil {
			onDone(res)
		}
	}()

	return func() {
		stop()
		<-done
	}
}
