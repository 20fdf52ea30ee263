package main

import (
	"context"
	"fmt"
	"io"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/solver"
	"github.com/spf13/cobra"
)

var (
	rows int
	cols int
	seed uint64

	rootCmd = &cobra.Command{
		Use:   "vinom-maze",
		Short: "Generate mazes and watch a depth-first solver walk them",
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the maze session over HTTP and websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Print a generated maze as ASCII",
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderMaze(cmd.OutOrStdout(), rows, cols, seed)
		},
	}

	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Generate a maze, solve it without delay and print the path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return solveMaze(cmd.OutOrStdout(), rows, cols, seed)
		},
	}
)

func init() {
	for _, c := range []*cobra.Command{renderCmd, solveCmd} {
		c.Flags().IntVar(&rows, "rows", 10, "number of maze rows")
		c.Flags().IntVar(&cols, "cols", 10, "number of maze columns")
		c.Flags().Uint64Var(&seed, "seed", 0, "generator seed, 0 for a random maze")
	}

	rootCmd.AddCommand(serveCmd, renderCmd, solveCmd)
}

// chooserFor returns a seeded chooser, or a clock-seeded one for seed 0.
func chooserFor(seed uint64) maze.Chooser {
	if seed == 0 {
		return maze.NewChooser()
	}
	return maze.NewSeededChooser(seed)
}

func generate(rows, cols int, seed uint64) (*maze.Grid, maze.Config, error) {
	cfg := maze.Config{Rows: rows, Cols: cols, CellSize: 1}
	grid, err := maze.New(cfg, chooserFor(seed))
	if err != nil {
		return nil, cfg, fmt.Errorf("generating maze: %w", err)
	}
	return grid, cfg, nil
}

func renderMaze(w io.Writer, rows, cols int, seed uint64) error {
	grid, _, err := generate(rows, cols, seed)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, grid)
	return err
}

func solveMaze(w io.Writer, rows, cols int, seed uint64) error {
	grid, cfg, err := generate(rows, cols, seed)
	if err != nil {
		return err
	}

	res := solver.Run(context.Background(), grid, cfg.Start, solver.Options{})

	var player *maze.Position
	if len(res.Path) > 0 {
		player = &res.Path[len(res.Path)-1]
	}
	if _, err := fmt.Fprint(w, grid.Render(player, res.Path)); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s in %d steps, visited %d cells, path length %d\n", res.Outcome, res.Steps, res.Visited, len(res.Path))
	return err
}
