/*
Package maze provides the grid model for rectangular mazes.

It defines the `Grid` structure, composed of `Cell` objects holding wall
configurations. Every cell starts fully walled; passages are carved by
removing walls through OpenWall, which is the single mutation point and
keeps the two sides of a shared wall consistent.

Utility functions enable neighbor detection, openness queries, shortest
path and dead-end metrics, and ASCII visualization of the maze.
*/
package maze

import (
	"errors"
	"strings"
)

// Grid-related errors.
var (
	ErrInvalidDimension = errors.New("invalid maze dimensions")
	ErrNotAdjacent      = errors.New("cells are not adjacent")
)

// Grid is a rectangular maze of cells. Start, Prize and Finish mark the
// designated special cells once PlaceTargets has set them; before that
// they are meaningless and the renderer ignores them.
type Grid struct {
	Rows   int       // Number of rows in the grid
	Cols   int       // Number of columns in the grid
	Cells  [][]*Cell // 2D grid of cells forming the maze
	Start  CellPosition
	Prize  CellPosition
	Finish CellPosition

	hasTargets bool
}

// New initializes a fully walled grid of the given dimensions.
func New(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, ErrInvalidDimension
	}

	cells := make([][]*Cell, rows)
	for i := range cells {
		cells[i] = make([]*Cell, cols)
		for j := range cells[i] {
			cells[i][j] = &Cell{
				NorthWall: true,
				SouthWall: true,
				EastWall:  true,
				WestWall:  true,
			}
		}
	}

	return &Grid{
		Rows:  rows,
		Cols:  cols,
		Cells: cells,
	}, nil
}

// PlaceTargets marks the start, prize and finish cells. Without it the
// zero positions would be indistinguishable from a real placement at
// the top-left corner.
func (g *Grid) PlaceTargets(start, prize, finish CellPosition) {
	g.Start, g.Prize, g.Finish = start, prize, finish
	g.hasTargets = true
}

// InBound reports whether the given row and column fall inside the grid.
func (g *Grid) InBound(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// CellAt returns the cell at the given position, or nil when out of bounds.
func (g *Grid) CellAt(pos CellPosition) *Cell {
	if !g.InBound(pos.Row, pos.Col) {
		return nil
	}
	return g.Cells[pos.Row][pos.Col]
}

// direction resolves the action that moves from a to b. Fails unless the
// two cells are in bounds and exactly one step apart.
func (g *Grid) direction(a, b CellPosition) (Action, error) {
	if !g.InBound(a.Row, a.Col) || !g.InBound(b.Row, b.Col) {
		return 0, ErrNotAdjacent
	}
	for act := Action(0); act < NumActions; act++ {
		if a.Shift(act) == b {
			return act, nil
		}
	}
	return 0, ErrNotAdjacent
}

// OpenWall removes the wall between two adjacent cells on both sides.
// Removing an already open wall is a no-op.
func (g *Grid) OpenWall(a, b CellPosition) error {
	dir, err := g.direction(a, b)
	if err != nil {
		return err
	}

	switch dir {
	case North:
		g.Cells[a.Row][a.Col].NorthWall = false
		g.Cells[b.Row][b.Col].SouthWall = false
	case South:
		g.Cells[a.Row][a.Col].SouthWall = false
		g.Cells[b.Row][b.Col].NorthWall = false
	case East:
		g.Cells[a.Row][a.Col].EastWall = false
		g.Cells[b.Row][b.Col].WestWall = false
	case West:
		g.Cells[a.Row][a.Col].WestWall = false
		g.Cells[b.Row][b.Col].EastWall = false
	}

	return nil
}

// IsOpen reports whether no wall separates two adjacent cells. Returns
// false for non-adjacent or out-of-bounds pairs.
func (g *Grid) IsOpen(a, b CellPosition) bool {
	dir, err := g.direction(a, b)
	if err != nil {
		return false
	}

	switch dir {
	case North:
		return !g.Cells[a.Row][a.Col].NorthWall && !g.Cells[b.Row][b.Col].SouthWall
	case South:
		return !g.Cells[a.Row][a.Col].SouthWall && !g.Cells[b.Row][b.Col].NorthWall
	case East:
		return !g.Cells[a.Row][a.Col].EastWall && !g.Cells[b.Row][b.Col].WestWall
	default:
		return !g.Cells[a.Row][a.Col].WestWall && !g.Cells[b.Row][b.Col].EastWall
	}
}

// Neighbors finds all in-bound moves from a given cell position, in
// fixed action order.
func (g *Grid) Neighbors(pos CellPosition) []Move {
	var result []Move
	for act := Action(0); act < NumActions; act++ {
		to := pos.Shift(act)
		if g.InBound(to.Row, to.Col) {
			result = append(result, Move{From: pos, To: to, Direction: act})
		}
	}
	return result
}

// OpenNeighbors finds the moves from a cell whose connecting wall is down.
func (g *Grid) OpenNeighbors(pos CellPosition) []Move {
	var result []Move
	for _, move := range g.Neighbors(pos) {
		if g.IsOpen(move.From, move.To) {
			result = append(result, move)
		}
	}
	return result
}

// String provides a textual representation of the maze. The start, prize
// and finish cells are marked S, P and F.
func (g *Grid) String() string {
	var output string

	// Top boundary
	output += "+" + strings.Repeat("---+", g.Cols) + "\n"

	for row := 0; row < g.Rows; row++ {
		// Cell rows
		cellRow := "|"
		for col := 0; col < g.Cols; col++ {
			cell := g.Cells[row][col]

			pos := CellPosition{Row: row, Col: col}
			switch {
			case g.hasTargets && pos == g.Start:
				cellRow += " S "
			case g.hasTargets && pos == g.Prize:
				cellRow += " P "
			case g.hasTargets && pos == g.Finish:
				cellRow += " F "
			default:
				cellRow += "   "
			}

			// Add east wall or space
			if cell.EastWall {
				cellRow += "|"
			} else {
				cellRow += " "
			}
		}
		output += cellRow + "\n"

		// Wall rows
		wallRow := "+"
		for col := 0; col < g.Cols; col++ {
			cell := g.Cells[row][col]

			// Add south wall or space
			if cell.SouthWall {
				wallRow += "---+"
			} else {
				wallRow += "   +"
			}
		}
		output += wallRow + "\n"
	}

	return output
}
