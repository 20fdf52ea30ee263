/*
Package maze provides the grid model and the randomized depth-first ("recursive backtracker")
generator for rectangular perfect mazes.

A Grid is a fixed-size matrix of Cell values with wall flags on every side. Generate carves
passages by removing wall pairs between neighbours so the passage graph becomes a spanning
tree, then marks the bottom-right cell as the target.

Utility functions cover bounds checks, passability tests and ASCII visualization of the maze.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDimensions = errors.New("maze dimensions must be positive")
	ErrInvalidCellSize   = errors.New("cell size must be positive")
	ErrStartOutOfBounds  = errors.New("start position is out of the maze")
	ErrOutOfBounds       = errors.New("position is out of the maze")
)

// Config describes the maze to build.
type Config struct {
	Rows     int      `json:"rows"`     // Number of rows
	Cols     int      `json:"cols"`     // Number of columns
	CellSize int      `json:"cellSize"` // Rendered size of a cell in pixels
	Start    Position `json:"start"`    // Cell the solver starts from
}

// Validate rejects configurations that cannot produce a maze.
func (c Config) Validate() error {
	if min(c.Rows, c.Cols) <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, c.Rows, c.Cols)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCellSize, c.CellSize)
	}
	if c.Start.Row < 0 || c.Start.Row >= c.Rows || c.Start.Col < 0 || c.Start.Col >= c.Cols {
		return fmt.Errorf("%w: %s in %dx%d", ErrStartOutOfBounds, c.Start, c.Rows, c.Cols)
	}
	return nil
}

// TargetPosition is the bottom-right cell of the configured grid.
func (c Config) TargetPosition() Position {
	return Position{Row: c.Rows - 1, Col: c.Cols - 1}
}

// Grid is a rectangular maze made of cells indexed [row][col].
type Grid struct {
	rows     int
	cols     int
	cellSize int
	cells    [][]*Cell
}

// BuildGrid returns a rows x cols grid of closed cells, built row-major.
func BuildGrid(rows, cols int) *Grid {
	cells := make([][]*Cell, rows)
	for r := range cells {
		cells[r] = make([]*Cell, cols)
		for c := range cells[r] {
			cells[r][c] = NewCell(r, c)
		}
	}

	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: cells,
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// CellSize returns the rendered cell size the grid was generated for.
func (g *Grid) CellSize() int { return g.cellSize }

// Width is the rendered width in pixels.
func (g *Grid) Width() int { return g.cellSize * g.cols }

// Height is the rendered height in pixels.
func (g *Grid) Height() int { return g.cellSize * g.rows }

// InBound checks whether pos lies inside the grid.
func (g *Grid) InBound(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.rows && pos.Col >= 0 && pos.Col < g.cols
}

// Cell returns the cell at pos, or nil if pos is out of bounds.
func (g *Grid) Cell(pos Position) *Cell {
	if !g.InBound(pos) {
		return nil
	}
	return g.cells[pos.Row][pos.Col]
}

// Cells returns every cell in row-major order.
func (g *Grid) Cells() []*Cell {
	out := make([]*Cell, 0, g.rows*g.cols)
	for _, row := range g.cells {
		out = append(out, row...)
	}
	return out
}

// Targets returns the positions of all cells flagged as target.
func (g *Grid) Targets() []Position {
	var out []Position
	for _, row := range g.cells {
		for _, c := range row {
			if c.IsTarget {
				out = append(out, c.Position)
			}
		}
	}
	return out
}

// IsTarget reports whether pos is an in-bounds target cell.
func (g *Grid) IsTarget(pos Position) bool {
	c := g.Cell(pos)
	return c != nil && c.IsTarget
}

// Passable reports whether a step from pos towards d crosses an open wall into an in-bounds cell.
func (g *Grid) Passable(pos Position, d Direction) bool {
	c := g.Cell(pos)
	if c == nil || c.Walls.Has(d) {
		return false
	}
	return g.InBound(pos.Step(d))
}

// openWall removes the wall pair between pos and its neighbour towards d.
func (g *Grid) openWall(pos Position, d Direction) {
	next := pos.Step(d)
	g.cells[pos.Row][pos.Col].Walls.set(d, false)
	g.cells[next.Row][next.Col].Walls.set(d.Opposite(), false)
}

// Carve removes the wall pair between pos and its neighbour towards d.
// It is meant for building fixed layouts by hand; Generate carves on its own.
func (g *Grid) Carve(pos Position, d Direction) error {
	if !g.InBound(pos) || !g.InBound(pos.Step(d)) {
		return fmt.Errorf("%w: cannot carve %s from %s", ErrOutOfBounds, d, pos)
	}
	g.openWall(pos, d)
	return nil
}

// OpenEdges counts the removed wall pairs between adjacent cells.
func (g *Grid) OpenEdges() int {
	open := 0
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			pos := Position{Row: r, Col: c}
			if g.Passable(pos, Right) {
				open++
			}
			if g.Passable(pos, Bottom) {
				open++
			}
		}
	}
	return open
}

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	return g.Render(nil, nil)
}

// Render draws the maze as ASCII. Cells on path are marked with "." and the player with "@".
// The target is marked with "X" unless something else occupies it.
func (g *Grid) Render(player *Position, path []Position) string {
	onPath := make(map[Position]struct{}, len(path))
	for _, p := range path {
		onPath[p] = struct{}{}
	}

	var sb strings.Builder

	// Top boundary
	sb.WriteString("+" + strings.Repeat("---+", g.cols) + "\n")

	for r := 0; r < g.rows; r++ {
		// Cell rows
		sb.WriteString("|")
		for c := 0; c < g.cols; c++ {
			cell := g.cells[r][c]
			mark := " "
			if _, ok := onPath[cell.Position]; ok {
				mark = "."
			} else if cell.IsTarget {
				mark = "X"
			}
			if player != nil && *player == cell.Position {
				mark = "@"
			}
			sb.WriteString(" " + mark + " ")

			if cell.Walls.Right {
				sb.WriteString("|")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")

		// Wall rows
		sb.WriteString("+")
		for c := 0; c < g.cols; c++ {
			if g.cells[r][c].Walls.Bottom {
				sb.WriteString("---+")
			} else {
				sb.WriteString("   +")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
