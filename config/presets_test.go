package config

import (
	"testing"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/stretchr/testify/assert"
)

func TestPreset(t *testing.T) {
	base := maze.Config{Rows: 3, Cols: 4, CellSize: 5, Start: maze.Position{Row: 1, Col: 1}}

	t.Run("known presets", func(t *testing.T) {
		cases := []struct {
			name string
			want maze.Config
		}{
			{"small", Small},
			{"Medium", Medium},
			{"LARGE", Large},
		}

		for _, tc := range cases {
			got, err := Preset(tc.name, base)
			assert.NoError(t, err)
			assert.Equal(t, tc.want.Rows, got.Rows)
			assert.Equal(t, tc.want.Cols, got.Cols)
			assert.Equal(t, tc.want.CellSize, got.CellSize)
			assert.Equal(t, base.Start, got.Start, "start position is kept")
			assert.NoError(t, got.Validate())
		}
	})

	t.Run("unknown preset", func(t *testing.T) {
		got, err := Preset("huge", base)
		assert.ErrorIs(t, err, ErrUnknownPreset)
		assert.Equal(t, base, got)
	})
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("VINOM_TEST_INT", "12")
	t.Setenv("VINOM_TEST_STR", "abc")

	assert.Equal(t, 12, getEnvAsIntWithDefault("VINOM_TEST_INT", 3))
	assert.Equal(t, 3, getEnvAsIntWithDefault("VINOM_TEST_MISSING", 3))
	assert.Equal(t, "abc", getEnvWithDefault("VINOM_TEST_STR", "x"))
	assert.Equal(t, "x", getEnvWithDefault("VINOM_TEST_MISSING", "x"))
}

func TestMazeConfig(t *testing.T) {
	c := Config{MazeRows: 4, MazeCols: 6, CellSize: 20, StartRow: 1, StartCol: 2}
	assert.Equal(t, maze.Config{Rows: 4, Cols: 6, CellSize: 20, Start: maze.Position{Row: 1, Col: 2}}, c.MazeConfig())
}
