package generator

import (
	"math/rand"

	"github.com/beka-birhanu/qmaze-api/maze"
	"github.com/beka-birhanu/qmaze-api/qlearn"
)

// Wander rates of the policy replay: the trunk paths follow the policy
// closely, dead-end branches drift half the time so they fray instead
// of retracing the trunk.
const (
	trunkWander  = 0.2
	branchWander = 0.5
)

// carve replays a learned policy from a cell onto the grid, removing
// the wall of every move taken. With probability wander a random
// in-bound move replaces the greedy one. The walk stops on reaching the
// table's trained target or on the step cap, so a policy with residual
// cycles cannot loop forever.
func carve(g *maze.Grid, from maze.CellPosition, table *qlearn.Table, target maze.CellPosition, wander float64, rng *rand.Rand) {
	maxSteps := g.Rows * g.Cols * 8

	current := from
	for steps := 0; current != target && steps < maxSteps; steps++ {
		moves := g.Neighbors(current)

		var next maze.Move
		if rng.Float64() < wander {
			next = moves[rng.Intn(len(moves))]
		} else {
			actions := make([]maze.Action, len(moves))
			for i, m := range moves {
				actions[i] = m.Direction
			}
			best := table.Best(current, actions)
			for _, m := range moves {
				if m.Direction == best {
					next = m
					break
				}
			}
		}

		// Neighbors only yields in-bound moves, OpenWall cannot fail here.
		_ = g.OpenWall(next.From, next.To)
		current = next.To
	}
}
