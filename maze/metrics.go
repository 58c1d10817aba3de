package maze

import "errors"

// ErrUnreachable is reported when no open path connects two cells. A
// disconnected maze is still a valid maze; callers use this to flag the
// result rather than abort.
var ErrUnreachable = errors.New("no open path between cells")

// ShortestPathLength returns the number of moves on the shortest open
// path between two cells, using BFS over the open-edge graph. All edges
// weigh one.
func ShortestPathLength(g *Grid, from, to CellPosition) (int, error) {
	if !g.InBound(from.Row, from.Col) || !g.InBound(to.Row, to.Col) {
		return 0, ErrUnreachable
	}
	if from == to {
		return 0, nil
	}

	dist := make(map[CellPosition]int, g.Rows*g.Cols)
	dist[from] = 0
	queue := []CellPosition{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, move := range g.OpenNeighbors(current) {
			if _, seen := dist[move.To]; seen {
				continue
			}
			dist[move.To] = dist[current] + 1
			if move.To == to {
				return dist[move.To], nil
			}
			queue = append(queue, move.To)
		}
	}

	return 0, ErrUnreachable
}

// PathExists reports whether an open path connects two cells.
func PathExists(g *Grid, from, to CellPosition) bool {
	_, err := ShortestPathLength(g, from, to)
	return err == nil
}

// CountDeadEnds counts the cells with exactly one open side, skipping
// the excluded positions (normally the start and finish cells).
func CountDeadEnds(g *Grid, exclude ...CellPosition) int {
	skip := make(map[CellPosition]struct{}, len(exclude))
	for _, pos := range exclude {
		skip[pos] = struct{}{}
	}

	count := 0
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			pos := CellPosition{Row: row, Col: col}
			if _, excluded := skip[pos]; excluded {
				continue
			}
			if len(g.OpenNeighbors(pos)) == 1 {
				count++
			}
		}
	}
	return count
}
