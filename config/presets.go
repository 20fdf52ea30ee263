package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/vinom-maze/maze"
)

var ErrUnknownPreset = errors.New("unknown maze preset")

// Size presets offered to the presentation layer. They only adjust dimensions and cell size.
var (
	Small  = maze.Config{Rows: 10, Cols: 10, CellSize: 60}
	Medium = maze.Config{Rows: 15, Cols: 15, CellSize: 40}
	Large  = maze.Config{Rows: 20, Cols: 20, CellSize: 30}

	presets = map[string]maze.Config{
		"small":  Small,
		"medium": Medium,
		"large":  Large,
	}
)

// MazeConfig builds the maze configuration described by the environment.
func (c Config) MazeConfig() maze.Config {
	return maze.Config{
		Rows:     c.MazeRows,
		Cols:     c.MazeCols,
		CellSize: c.CellSize,
		Start:    maze.Position{Row: c.StartRow, Col: c.StartCol},
	}
}

// Preset applies the named preset to base, keeping its start position.
func Preset(name string, base maze.Config) (maze.Config, error) {
	p, ok := presets[strings.ToLower(name)]
	if !ok {
		return base, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	base.Rows = p.Rows
	base.Cols = p.Cols
	base.CellSize = p.CellSize
	return base, nil
}
