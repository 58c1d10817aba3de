/*
Package qlearn implements a tabular Q-learning engine over the cell
positions of a rectangular grid.

Training uses a logical movement model: an agent may step between any
two adjacent cells regardless of walls, because walls are a product of
the learned policies rather than a constraint on learning. Out-of-bound
actions are masked and never taken. All random draws come from a single
injected source, so a fixed seed reproduces the exact same table.
*/
package qlearn

import (
	"errors"
	"math/rand"

	"github.com/beka-birhanu/qmaze-api/maze"
)

// Training errors.
var (
	ErrBadLearningRate = errors.New("alpha must be in (0, 1]")
	ErrBadDiscount     = errors.New("gamma must be in (0, 1]")
	ErrBadEpsilon      = errors.New("epsilon must be in [0, 1]")
	ErrBadDecay        = errors.New("epsilon decay must be in (0, 1]")
)

// Default training parameters, matching the reference tuning the maze
// generator was calibrated with.
const (
	DefaultEpisodes = 2000
	DefaultAlpha    = 0.1
	DefaultGamma    = 0.9
	DefaultEpsilon  = 0.3
	DefaultStepCost = 0.01
)

// Config carries the hyperparameters of one training run.
type Config struct {
	Episodes     int     // Number of training trials
	MaxSteps     int     // Per-episode step cap; 0 means rows*cols*8
	Alpha        float64 // Learning rate, in (0, 1]
	Gamma        float64 // Discount factor, in (0, 1]
	Epsilon      float64 // Exploration rate, in [0, 1]
	EpsilonDecay float64 // Per-episode multiplier on epsilon; 0 or 1 keeps it constant
	MinEpsilon   float64 // Floor for the decayed epsilon
	RandomStart  bool    // Start each episode at a random cell instead of the fixed start
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		Episodes: DefaultEpisodes,
		Alpha:    DefaultAlpha,
		Gamma:    DefaultGamma,
		Epsilon:  DefaultEpsilon,
	}
}

func (c Config) validate() error {
	if c.Alpha <= 0 || c.Alpha > 1 {
		return ErrBadLearningRate
	}
	if c.Gamma <= 0 || c.Gamma > 1 {
		return ErrBadDiscount
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return ErrBadEpsilon
	}
	if c.EpsilonDecay < 0 || c.EpsilonDecay > 1 {
		return ErrBadDecay
	}
	return nil
}

// Learner trains one Q-table toward one target cell.
type Learner struct {
	rows int
	cols int
	cfg  Config
	rng  *rand.Rand

	episodeSteps []int // Steps taken per episode, kept for diagnostics
}

// NewLearner validates the configuration and returns a learner for a
// rows x cols state space. The random source drives every draw of the
// run and must be owned by the caller.
func NewLearner(rows, cols int, cfg Config, rng *rand.Rand) (*Learner, error) {
	if rows < 1 || cols < 1 {
		return nil, maze.ErrInvalidDimension
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Episodes <= 0 {
		cfg.Episodes = DefaultEpisodes
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = rows * cols * 8
	}
	return &Learner{
		rows: rows,
		cols: cols,
		cfg:  cfg,
		rng:  rng,
	}, nil
}

// Train runs the configured number of episodes from start toward target
// and returns the learned table. The rewarder scores every arrival;
// episodes end on reaching the target or on the step cap.
func (l *Learner) Train(start, target maze.CellPosition, rewarder Rewarder) *Table {
	table := NewTable(l.rows, l.cols)
	l.episodeSteps = make([]int, 0, l.cfg.Episodes)

	epsilon := l.cfg.Epsilon
	for episode := 0; episode < l.cfg.Episodes; episode++ {
		current := start
		if l.cfg.RandomStart {
			current = l.randomState(target)
		}

		steps := 0
		for current != target && steps < l.cfg.MaxSteps {
			action := l.act(table, current, epsilon)
			next := current.Shift(action)
			reward := rewarder.Reward(next)

			// Q(s,a) += alpha * (r + gamma*max Q(s') - Q(s,a))
			old := table.Get(current, action)
			table.Set(current, action, old+l.cfg.Alpha*(reward+l.cfg.Gamma*table.MaxValue(next)-old))

			current = next
			steps++
		}
		l.episodeSteps = append(l.episodeSteps, steps)

		if l.cfg.EpsilonDecay > 0 && l.cfg.EpsilonDecay < 1 {
			epsilon *= l.cfg.EpsilonDecay
			if epsilon < l.cfg.MinEpsilon {
				epsilon = l.cfg.MinEpsilon
			}
		}
	}

	return table
}

// EpisodeSteps returns the step count of each episode of the last
// training run, in order.
func (l *Learner) EpisodeSteps() []int {
	return l.episodeSteps
}

// act draws the next action epsilon-greedily among the in-bound actions
// of the state.
func (l *Learner) act(table *Table, pos maze.CellPosition, epsilon float64) maze.Action {
	valid := l.validActions(pos)
	if l.rng.Float64() < epsilon {
		return valid[l.rng.Intn(len(valid))]
	}
	return table.Best(pos, valid)
}

// validActions lists the actions that keep the agent inside the grid,
// in fixed action order.
func (l *Learner) validActions(pos maze.CellPosition) []maze.Action {
	valid := make([]maze.Action, 0, maze.NumActions)
	for a := maze.Action(0); a < maze.NumActions; a++ {
		next := pos.Shift(a)
		if next.Row >= 0 && next.Row < l.rows && next.Col >= 0 && next.Col < l.cols {
			valid = append(valid, a)
		}
	}
	return valid
}

// randomState picks a uniformly random cell other than the target.
func (l *Learner) randomState(target maze.CellPosition) maze.CellPosition {
	for {
		pos := maze.CellPosition{Row: l.rng.Intn(l.rows), Col: l.rng.Intn(l.cols)}
		if pos != target {
			return pos
		}
	}
}
