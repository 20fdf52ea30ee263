package maze

import (
	"math/rand/v2"
	"time"
)

// Chooser picks uniformly from n candidates. IntN must return a value in [0, n).
type Chooser interface {
	IntN(n int) int
}

// NewChooser returns a Chooser seeded from the clock.
func NewChooser() Chooser {
	return NewSeededChooser(uint64(time.Now().UnixNano()))
}

// NewSeededChooser returns a deterministic Chooser. Equal seeds produce equal mazes.
func NewSeededChooser(seed uint64) Chooser {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// New validates cfg, builds a grid and carves it.
func New(cfg Config, chooser Chooser) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return Generate(BuildGrid(cfg.Rows, cfg.Cols), cfg, chooser)
}

// Generate carves grid in place with the randomized depth-first backtracker and returns it.
// The cell at cfg.Start seeds the carve; the bottom-right cell becomes the target.
func Generate(grid *Grid, cfg Config, chooser Chooser) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if grid.rows != cfg.Rows || grid.cols != cfg.Cols {
		return nil, ErrInvalidDimensions
	}
	if chooser == nil {
		chooser = NewChooser()
	}
	grid.cellSize = cfg.CellSize

	grid.Cell(cfg.Start).Visited = true
	stack := []Position{cfg.Start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		candidates := grid.unvisitedNeighbors(current)

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[chooser.IntN(len(candidates))]
		next := current.Step(d)
		grid.openWall(current, d)
		grid.Cell(next).Visited = true
		stack = append(stack, next)
	}

	grid.Cell(cfg.TargetPosition()).IsTarget = true
	return grid, nil
}

// unvisitedNeighbors lists the sides of pos leading to in-bound cells not yet carved into.
func (g *Grid) unvisitedNeighbors(pos Position) []Direction {
	var result []Direction
	for _, d := range Directions {
		c := g.Cell(pos.Step(d))
		if c != nil && !c.Visited {
			result = append(result, d)
		}
	}
	return result
}
