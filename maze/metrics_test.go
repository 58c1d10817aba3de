package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// corridor carves a single open row through a 1xN grid.
func corridor(t *testing.T, cols int) *Grid {
	t.Helper()
	g, err := New(1, cols)
	assert.NoError(t, err)
	for col := 0; col < cols-1; col++ {
		assert.NoError(t, g.OpenWall(CellPosition{0, col}, CellPosition{0, col + 1}))
	}
	return g
}

func TestShortestPathLength(t *testing.T) {
	t.Run("corridor end to end", func(t *testing.T) {
		g := corridor(t, 5)
		length, err := ShortestPathLength(g, CellPosition{0, 0}, CellPosition{0, 4})
		assert.NoError(t, err)
		assert.Equal(t, 4, length)
	})

	t.Run("same cell is zero", func(t *testing.T) {
		g := corridor(t, 5)
		length, err := ShortestPathLength(g, CellPosition{0, 2}, CellPosition{0, 2})
		assert.NoError(t, err)
		assert.Equal(t, 0, length)
	})

	t.Run("fully walled grid is unreachable", func(t *testing.T) {
		g, err := New(3, 3)
		assert.NoError(t, err)
		_, err = ShortestPathLength(g, CellPosition{0, 0}, CellPosition{2, 2})
		assert.ErrorIs(t, err, ErrUnreachable)
	})

	t.Run("prefers the short way around", func(t *testing.T) {
		// 2x3 grid with an open loop except one closed edge: the path
		// from (0,0) to (1,0) must go the long way.
		g, err := New(2, 3)
		assert.NoError(t, err)
		open := [][2]CellPosition{
			{{0, 0}, {0, 1}}, {{0, 1}, {0, 2}},
			{{0, 2}, {1, 2}}, {{1, 2}, {1, 1}}, {{1, 1}, {1, 0}},
		}
		for _, pair := range open {
			assert.NoError(t, g.OpenWall(pair[0], pair[1]))
		}

		length, err := ShortestPathLength(g, CellPosition{0, 0}, CellPosition{1, 0})
		assert.NoError(t, err)
		assert.Equal(t, 5, length)
	})
}

func TestPathExists(t *testing.T) {
	g := corridor(t, 4)
	assert.True(t, PathExists(g, CellPosition{0, 0}, CellPosition{0, 3}))

	walled, err := New(2, 2)
	assert.NoError(t, err)
	assert.False(t, PathExists(walled, CellPosition{0, 0}, CellPosition{1, 1}))
}

func TestCountDeadEnds(t *testing.T) {
	t.Run("corridor ends are dead ends", func(t *testing.T) {
		g := corridor(t, 5)
		assert.Equal(t, 2, CountDeadEnds(g))
	})

	t.Run("excluded cells are not counted", func(t *testing.T) {
		g := corridor(t, 5)
		assert.Equal(t, 1, CountDeadEnds(g, CellPosition{0, 0}))
		assert.Equal(t, 0, CountDeadEnds(g, CellPosition{0, 0}, CellPosition{0, 4}))
	})

	t.Run("isolated cells are not dead ends", func(t *testing.T) {
		g, err := New(3, 3)
		assert.NoError(t, err)
		assert.Equal(t, 0, CountDeadEnds(g))

		// A single open edge makes both its cells dead ends.
		assert.NoError(t, g.OpenWall(CellPosition{1, 1}, CellPosition{1, 2}))
		assert.Equal(t, 2, CountDeadEnds(g))
	})
}
