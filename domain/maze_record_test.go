package domain

import (
	"testing"

	"github.com/beka-birhanu/qmaze-api/generator"
	"github.com/beka-birhanu/qmaze-api/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMazeRecordGrid(t *testing.T) {
	g, err := maze.New(3, 3)
	assert.NoError(t, err)
	assert.NoError(t, g.OpenWall(maze.CellPosition{Row: 0, Col: 0}, maze.CellPosition{Row: 0, Col: 1}))
	assert.NoError(t, g.OpenWall(maze.CellPosition{Row: 0, Col: 1}, maze.CellPosition{Row: 1, Col: 1}))
	g.PlaceTargets(
		maze.CellPosition{Row: 0, Col: 0},
		maze.CellPosition{Row: 1, Col: 1},
		maze.CellPosition{Row: 2, Col: 2},
	)

	record := NewMazeRecord(uuid.New(), g, 42, generator.Metrics{ShortestPath: 2, FinishReachable: true}, uuid.Nil)

	rebuilt, err := record.Grid()
	assert.NoError(t, err)
	assert.Equal(t, g.Start, rebuilt.Start)
	assert.Equal(t, g.Finish, rebuilt.Finish)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			assert.Equal(t, *g.Cells[row][col], *rebuilt.Cells[row][col], "cell (%d,%d)", row, col)
		}
	}

	t.Run("corrupt wall layout is rejected", func(t *testing.T) {
		record.Walls = record.Walls[:2]
		_, err := record.Grid()
		assert.ErrorIs(t, err, ErrCorruptWalls)
	})
}
