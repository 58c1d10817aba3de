package generator

import (
	"testing"

	"github.com/beka-birhanu/qmaze-api/maze"
	"github.com/beka-birhanu/qmaze-api/qlearn"
	"github.com/stretchr/testify/assert"
)

// fastConfig trims the episode count so the test suite stays quick; the
// policies are still good enough to reach their targets on small grids.
func fastConfig(rows, cols, deadEnds int) Config {
	cfg := DefaultConfig(rows, cols)
	cfg.Training.Episodes = 800
	cfg.DeadEnds = deadEnds
	return cfg
}

func pos(row, col int) *maze.CellPosition {
	return &maze.CellPosition{Row: row, Col: col}
}

func TestGenerateRealizesTrainedPaths(t *testing.T) {
	cfg := fastConfig(5, 5, 0)
	cfg.Start = pos(0, 0)
	cfg.Prize = pos(4, 4)
	cfg.Finish = pos(0, 4)

	grid, metrics, err := Generate(5, 5, 42, cfg)
	assert.NoError(t, err)

	// Both trained paths must be realized as open passages.
	assert.True(t, maze.PathExists(grid, grid.Start, grid.Prize))
	assert.True(t, maze.PathExists(grid, grid.Start, grid.Finish))
	assert.True(t, metrics.PrizeReachable)
	assert.True(t, metrics.FinishReachable)

	// Finite shortest path, never shorter than the grid distance.
	length, err := maze.ShortestPathLength(grid, grid.Start, grid.Finish)
	assert.NoError(t, err)
	assert.Equal(t, metrics.ShortestPath, length)
	assert.GreaterOrEqual(t, length, grid.Start.ManhattanDistance(grid.Finish))
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := fastConfig(5, 5, 3)

	first, firstMetrics, err := Generate(5, 5, 1234, cfg)
	assert.NoError(t, err)
	second, secondMetrics, err := Generate(5, 5, 1234, cfg)
	assert.NoError(t, err)

	assert.Equal(t, first.Start, second.Start)
	assert.Equal(t, first.Prize, second.Prize)
	assert.Equal(t, first.Finish, second.Finish)
	assert.Equal(t, firstMetrics, secondMetrics)

	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			assert.Equal(t, *first.Cells[row][col], *second.Cells[row][col],
				"wall state differs at (%d,%d)", row, col)
		}
	}
}

func TestGenerateInvalidTargets(t *testing.T) {
	cfg := fastConfig(4, 4, 0)

	t.Run("prize equals start", func(t *testing.T) {
		bad := cfg
		bad.Start = pos(0, 0)
		bad.Prize = pos(0, 0)
		_, _, err := Generate(4, 4, 1, bad)
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})

	t.Run("finish equals prize", func(t *testing.T) {
		bad := cfg
		bad.Prize = pos(3, 3)
		bad.Finish = pos(3, 3)
		_, _, err := Generate(4, 4, 1, bad)
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})

	t.Run("finish out of bounds", func(t *testing.T) {
		bad := cfg
		bad.Finish = pos(4, 0)
		_, _, err := Generate(4, 4, 1, bad)
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})

	t.Run("grid too small for three targets", func(t *testing.T) {
		_, _, err := Generate(1, 2, 1, fastConfig(1, 2, 0))
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})

	t.Run("invalid dimensions", func(t *testing.T) {
		_, _, err := Generate(0, 5, 1, cfg)
		assert.ErrorIs(t, err, maze.ErrInvalidDimension)
	})
}

func TestGenerateCorridor(t *testing.T) {
	// A 1x5 corridor has exactly one possible route; generation must
	// still connect everything within the caps.
	cfg := fastConfig(1, 5, 0)
	cfg.Start = pos(0, 0)
	cfg.Prize = pos(0, 2)
	cfg.Finish = pos(0, 4)

	grid, metrics, err := Generate(1, 5, 9, cfg)
	assert.NoError(t, err)
	assert.True(t, metrics.PrizeReachable)
	assert.True(t, metrics.FinishReachable)
	assert.Equal(t, 4, metrics.ShortestPath)

	// Every wall along the corridor must be down.
	for col := 0; col < 4; col++ {
		assert.True(t, grid.IsOpen(maze.CellPosition{Row: 0, Col: col}, maze.CellPosition{Row: 0, Col: col + 1}),
			"corridor closed between columns %d and %d", col, col+1)
	}
}

func TestDeadEndInjectionDoesNotDecreaseDeadEnds(t *testing.T) {
	// Statistical property: averaged over seeds, injecting branches must
	// not reduce the dead-end count.
	const seeds = 8

	average := func(deadEnds int) float64 {
		total := 0
		for seed := int64(0); seed < seeds; seed++ {
			_, metrics, err := Generate(6, 6, 100+seed, fastConfig(6, 6, deadEnds))
			assert.NoError(t, err)
			total += metrics.DeadEnds
		}
		return float64(total) / seeds
	}

	withInjection := average(8)
	withoutInjection := average(0)
	assert.GreaterOrEqual(t, withInjection, withoutInjection)
}

func TestInvalidTrainingConfigPropagates(t *testing.T) {
	cfg := fastConfig(4, 4, 0)
	cfg.Training.Alpha = 2
	_, _, err := Generate(4, 4, 1, cfg)
	assert.ErrorIs(t, err, qlearn.ErrBadLearningRate)
}
