package qlearn

import "github.com/beka-birhanu/qmaze-api/maze"

// Table holds the estimated expected reward per (state, action) pair of
// a rows x cols grid. States are cell positions flattened row-major.
type Table struct {
	Rows int
	Cols int

	values [][]float64 // [state][action]
}

// NewTable returns a zero-initialized table for the given grid size.
func NewTable(rows, cols int) *Table {
	values := make([][]float64, rows*cols)
	for i := range values {
		values[i] = make([]float64, maze.NumActions)
	}
	return &Table{
		Rows:   rows,
		Cols:   cols,
		values: values,
	}
}

func (t *Table) state(pos maze.CellPosition) int {
	return pos.Row*t.Cols + pos.Col
}

// Get returns the value of taking the action in the given state.
func (t *Table) Get(pos maze.CellPosition, a maze.Action) float64 {
	return t.values[t.state(pos)][a]
}

// Set overwrites the value of a (state, action) pair.
func (t *Table) Set(pos maze.CellPosition, a maze.Action, value float64) {
	t.values[t.state(pos)][a] = value
}

// MaxValue returns the highest action value of a state, over the whole
// action space. Untrained actions stay at zero.
func (t *Table) MaxValue(pos maze.CellPosition) float64 {
	row := t.values[t.state(pos)]
	best := row[0]
	for _, v := range row[1:] {
		if v > best {
			best = v
		}
	}
	return best
}

// Best returns the highest-valued action among the given candidates.
// Ties break toward the lowest action index, which keeps greedy replay
// deterministic for a given table.
func (t *Table) Best(pos maze.CellPosition, candidates []maze.Action) maze.Action {
	row := t.values[t.state(pos)]
	best := candidates[0]
	for _, a := range candidates[1:] {
		if row[a] > row[best] {
			best = a
		}
	}
	return best
}
