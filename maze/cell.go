package maze

import "fmt"

// Direction names one side of a cell.
type Direction int

// Directions in the fixed order used for neighbour expansion.
const (
	Top Direction = iota
	Right
	Bottom
	Left
)

// NoDirection marks the absence of a movement signal.
const NoDirection Direction = -1

var (
	// Directions lists every side in expansion order: top, right, bottom, left.
	Directions = [...]Direction{Top, Right, Bottom, Left}

	offsets = map[Direction]Position{
		Top:    {Row: -1, Col: 0},
		Right:  {Row: 0, Col: 1},
		Bottom: {Row: 1, Col: 0},
		Left:   {Row: 0, Col: -1},
	}
)

// String returns the lower-case side name.
func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case NoDirection:
		return "none"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Opposite returns the side facing d on the neighbouring cell.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Offset returns the row/col delta of a single step towards d.
func (d Direction) Offset() Position {
	return offsets[d]
}

// Position identifies a cell in the grid.
type Position struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// Step returns the position one cell away in direction d. The result may be out of bounds.
func (p Position) Step(d Direction) Position {
	o := d.Offset()
	return Position{Row: p.Row + o.Row, Col: p.Col + o.Col}
}

// String formats the position as "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// DirectionBetween reports the side of from that leads to the adjacent cell to.
// ok is false if the two positions are not orthogonal neighbours.
func DirectionBetween(from, to Position) (d Direction, ok bool) {
	switch {
	case to.Row == from.Row-1 && to.Col == from.Col:
		return Top, true
	case to.Row == from.Row+1 && to.Col == from.Col:
		return Bottom, true
	case to.Col == from.Col+1 && to.Row == from.Row:
		return Right, true
	case to.Col == from.Col-1 && to.Row == from.Row:
		return Left, true
	}
	return 0, false
}

// Walls records which sides of a cell are closed. true means a wall is present.
type Walls struct {
	Top    bool `json:"top"`
	Right  bool `json:"right"`
	Bottom bool `json:"bottom"`
	Left   bool `json:"left"`
}

// Has reports whether the wall on side d is present.
func (w Walls) Has(d Direction) bool {
	switch d {
	case Top:
		return w.Top
	case Right:
		return w.Right
	case Bottom:
		return w.Bottom
	case Left:
		return w.Left
	}
	return true
}

// set changes the wall on side d.
func (w *Walls) set(d Direction, present bool) {
	switch d {
	case Top:
		w.Top = present
	case Right:
		w.Right = present
	case Bottom:
		w.Bottom = present
	case Left:
		w.Left = present
	}
}

// Cell represents a single cell in a maze grid.
type Cell struct {
	Position
	Walls    Walls `json:"walls"`
	IsTarget bool  `json:"isTarget"`
	// Visited is carve-time bookkeeping owned by the generator. Solvers keep their own set.
	Visited bool `json:"-"`
}

// NewCell returns a closed cell at (row, col): all four walls, not visited, not the target.
func NewCell(row, col int) *Cell {
	return &Cell{
		Position: Position{Row: row, Col: col},
		Walls: Walls{
			Top:    true,
			Right:  true,
			Bottom: true,
			Left:   true,
		},
	}
}
