/*
Package generator carves mazes out of learned policies.

Two tabular Q-learners are trained on the same grid with mirrored reward
models: one seeks the prize cell and is penalized on the finish cell,
the other seeks the finish cell and is penalized on the prize cell. The
mutual penalty pushes the two learned paths apart. Replaying each greedy
policy from the start cell onto a fully walled grid removes the walls
along the way, which materializes the trained paths as the maze trunk.
Extra replays from random cells graft dead-end branches onto it.

The whole run is driven by one seeded random source, so a fixed
(seed, config) pair reproduces the exact same wall layout.
*/
package generator

import (
	"errors"
	"math"
	"math/rand"

	"github.com/beka-birhanu/qmaze-api/maze"
	"github.com/beka-birhanu/qmaze-api/qlearn"
)

// ErrInvalidTarget is returned when the start, prize and finish cells
// are not three distinct in-bound cells.
var ErrInvalidTarget = errors.New("invalid target cell")

// Config controls the difficulty of a generated maze.
type Config struct {
	Training qlearn.Config // Hyperparameters shared by both learners

	// DeadEnds is the number of extra policy replays from random cells,
	// each of which tends to leave a dead-end branch. Zero disables
	// injection entirely.
	DeadEnds int

	// Fixed special cells. When nil they are placed randomly.
	Start  *maze.CellPosition
	Prize  *maze.CellPosition
	Finish *maze.CellPosition

	// CollectDiagnostics keeps the per-episode step counts of both
	// training runs for reporting.
	CollectDiagnostics bool
}

// DefaultConfig returns the reference difficulty for a rows x cols maze:
// standard training tuning and sqrt(rows*cols) dead-end injections.
func DefaultConfig(rows, cols int) Config {
	return Config{
		Training: qlearn.DefaultConfig(),
		DeadEnds: int(math.Sqrt(float64(rows * cols))),
	}
}

// Metrics reports the measurable difficulty of a generated maze. They
// are computed for validation and reporting only, never fed back into
// generation.
type Metrics struct {
	ShortestPath    int  `json:"shortest_path" bson:"shortestPath"`       // Moves from start to finish; 0 when unreachable
	DeadEnds        int  `json:"dead_ends" bson:"deadEnds"`               // Cells with one open side, start/finish excluded
	PrizeReachable  bool `json:"prize_reachable" bson:"prizeReachable"`   // Open path start -> prize
	FinishReachable bool `json:"finish_reachable" bson:"finishReachable"` // Open path start -> finish
}

// Diagnostics carries the training traces of one generation run.
type Diagnostics struct {
	PrizeEpisodeSteps  []int // Steps per episode of the prize-seeker
	FinishEpisodeSteps []int // Steps per episode of the finish-seeker
}

// Generate trains the two agents and carves a rows x cols maze. It is
// the single entry point of the generation pipeline: everything runs
// sequentially on the caller's goroutine and the returned grid is owned
// by the caller. A disconnected maze is not an error; it comes back
// flagged in the metrics.
func Generate(rows, cols int, seed int64, cfg Config) (*maze.Grid, Metrics, error) {
	grid, metrics, _, err := generate(rows, cols, seed, cfg)
	return grid, metrics, err
}

// GenerateWithDiagnostics is Generate plus the training traces, for
// learning-curve reports.
func GenerateWithDiagnostics(rows, cols int, seed int64, cfg Config) (*maze.Grid, Metrics, *Diagnostics, error) {
	cfg.CollectDiagnostics = true
	return generate(rows, cols, seed, cfg)
}

func generate(rows, cols int, seed int64, cfg Config) (*maze.Grid, Metrics, *Diagnostics, error) {
	grid, err := maze.New(rows, cols)
	if err != nil {
		return nil, Metrics{}, nil, err
	}

	if cfg.Training.Alpha == 0 && cfg.Training.Gamma == 0 {
		cfg.Training = qlearn.DefaultConfig()
	}

	rng := rand.New(rand.NewSource(seed))

	start, prize, finish, err := placeTargets(grid, cfg, rng)
	if err != nil {
		return nil, Metrics{}, nil, err
	}
	grid.PlaceTargets(start, prize, finish)

	// Train the prize-seeker first, then the finish-seeker, off the same
	// random stream. The order is part of the deterministic contract.
	prizeLearner, err := qlearn.NewLearner(rows, cols, cfg.Training, rng)
	if err != nil {
		return nil, Metrics{}, nil, err
	}
	prizeTable := prizeLearner.Train(start, prize, qlearn.NewTargetReward(prize, finish, qlearn.DefaultStepCost))

	finishLearner, err := qlearn.NewLearner(rows, cols, cfg.Training, rng)
	if err != nil {
		return nil, Metrics{}, nil, err
	}
	finishTable := finishLearner.Train(start, finish, qlearn.NewTargetReward(finish, prize, qlearn.DefaultStepCost))

	// Carve the two trunk paths, then graft dead-end branches.
	carve(grid, start, prizeTable, prize, trunkWander, rng)
	carve(grid, start, finishTable, finish, trunkWander, rng)
	injectDeadEnds(grid, cfg.DeadEnds, prizeTable, finishTable, rng)

	metrics := measure(grid, start, prize, finish)

	var diag *Diagnostics
	if cfg.CollectDiagnostics {
		diag = &Diagnostics{
			PrizeEpisodeSteps:  prizeLearner.EpisodeSteps(),
			FinishEpisodeSteps: finishLearner.EpisodeSteps(),
		}
	}

	return grid, metrics, diag, nil
}

// placeTargets resolves the start, prize and finish cells, either from
// the config or by random placement. The three must be distinct
// in-bound cells.
func placeTargets(g *maze.Grid, cfg Config, rng *rand.Rand) (start, prize, finish maze.CellPosition, err error) {
	if g.Rows*g.Cols < 3 {
		return start, prize, finish, ErrInvalidTarget
	}

	pick := func(fixed *maze.CellPosition, taken ...maze.CellPosition) (maze.CellPosition, error) {
		if fixed != nil {
			if !g.InBound(fixed.Row, fixed.Col) {
				return maze.CellPosition{}, ErrInvalidTarget
			}
			for _, t := range taken {
				if *fixed == t {
					return maze.CellPosition{}, ErrInvalidTarget
				}
			}
			return *fixed, nil
		}
		for {
			pos := maze.CellPosition{Row: rng.Intn(g.Rows), Col: rng.Intn(g.Cols)}
			free := true
			for _, t := range taken {
				if pos == t {
					free = false
					break
				}
			}
			if free {
				return pos, nil
			}
		}
	}

	if start, err = pick(cfg.Start); err != nil {
		return
	}
	if prize, err = pick(cfg.Prize, start); err != nil {
		return
	}
	finish, err = pick(cfg.Finish, start, prize)
	return
}

// injectDeadEnds grafts up to count branches onto the maze: each one
// replays a policy from a random untouched cell toward its trained
// target with a high wander rate, alternating between the two tables.
func injectDeadEnds(g *maze.Grid, count int, prizeTable, finishTable *qlearn.Table, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		from, ok := randomBranchCell(g, rng)
		if !ok {
			return
		}
		if i%2 == 0 {
			carve(g, from, prizeTable, g.Prize, branchWander, rng)
		} else {
			carve(g, from, finishTable, g.Finish, branchWander, rng)
		}
	}
}

// randomBranchCell picks a random cell that is not a special cell and
// still has at least one wall to remove. Attempts are bounded so a
// fully open grid cannot stall the generator.
func randomBranchCell(g *maze.Grid, rng *rand.Rand) (maze.CellPosition, bool) {
	maxAttempts := g.Rows * g.Cols * 4
	for attempt := 0; attempt < maxAttempts; attempt++ {
		pos := maze.CellPosition{Row: rng.Intn(g.Rows), Col: rng.Intn(g.Cols)}
		if pos == g.Start || pos == g.Prize || pos == g.Finish {
			continue
		}
		cell := g.CellAt(pos)
		if cell.NorthWall || cell.SouthWall || cell.EastWall || cell.WestWall {
			return pos, true
		}
	}
	return maze.CellPosition{}, false
}

// measure computes the difficulty metrics of the carved maze.
func measure(g *maze.Grid, start, prize, finish maze.CellPosition) Metrics {
	metrics := Metrics{
		DeadEnds:       maze.CountDeadEnds(g, start, finish),
		PrizeReachable: maze.PathExists(g, start, prize),
	}
	if length, err := maze.ShortestPathLength(g, start, finish); err == nil {
		metrics.ShortestPath = length
		metrics.FinishReachable = true
	}
	return metrics
}
