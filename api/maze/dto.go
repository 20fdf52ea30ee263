// Package mazeapi provides request and response bodies for the maze endpoints.
package mazeapi

import (
	"github.com/beka-birhanu/vinom-maze/maze"
)

// MazeResponse describes a generated maze for rendering.
type MazeResponse struct {
	Rows     int           `json:"rows"`
	Cols     int           `json:"cols"`
	CellSize int           `json:"cellSize"`
	Start    maze.Position `json:"start"`
	Target   maze.Position `json:"target"`
	WidthPx  int           `json:"widthPx"`
	HeightPx int           `json:"heightPx"`
	Cells    []*maze.Cell  `json:"cells"`
	ASCII    string        `json:"ascii"`
}

// ConfigRequest changes the maze configuration. A preset name wins over explicit fields;
// fields left out keep their current value.
type ConfigRequest struct {
	Preset   string         `json:"preset"`
	Rows     *int           `json:"rows"`
	Cols     *int           `json:"cols"`
	CellSize *int           `json:"cellSize"`
	Start    *maze.Position `json:"start"`
}

func newMazeResponse(grid *maze.Grid, cfg maze.Config) *MazeResponse {
	return &MazeResponse{
		Rows:     grid.Rows(),
		Cols:     grid.Cols(),
		CellSize: grid.CellSize(),
		Start:    cfg.Start,
		Target:   cfg.TargetPosition(),
		WidthPx:  grid.Width(),
		HeightPx: grid.Height(),
		Cells:    grid.Cells(),
		ASCII:    grid.String(),
	}
}

// apply resolves the request against the current configuration.
func (r ConfigRequest) apply(current maze.Config, preset func(string, maze.Config) (maze.Config, error)) (maze.Config, error) {
	if r.Preset != "" {
		return preset(r.Preset, current)
	}

	if r.Rows != nil {
		current.Rows = *r.Rows
	}
	if r.Cols != nil {
		current.Cols = *r.Cols
	}
	if r.CellSize != nil {
		current.CellSize = *r.CellSize
	}
	if r.Start != nil {
		current.Start = *r.Start
	}
	return current, nil
}
