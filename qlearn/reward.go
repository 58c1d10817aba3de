package qlearn

import "github.com/beka-birhanu/qmaze-api/maze"

// Rewarder scores the arrival in a cell during training. Implementations
// must be pure: the same cell always yields the same reward.
type Rewarder interface {
	Reward(pos maze.CellPosition) float64
}

// TargetReward is the reward model used by the dual-path trainer: a
// large positive reward on the target cell, a penalty on the opposing
// agent's target, and a small charge per step so shorter paths win.
type TargetReward struct {
	Target  maze.CellPosition // Cell whose arrival is rewarded
	Avoid   maze.CellPosition // Opposing target, arrival is penalized
	Goal    float64           // Reward on reaching Target
	Penalty float64           // Value on reaching Avoid, expressed negative
	Step    float64           // Cost per move, expressed positive
}

// NewTargetReward builds the standard reward model with the default
// goal/avoid magnitudes.
func NewTargetReward(target, avoid maze.CellPosition, step float64) TargetReward {
	return TargetReward{
		Target:  target,
		Avoid:   avoid,
		Goal:    1,
		Penalty: -1,
		Step:    step,
	}
}

// Reward implements Rewarder.
func (r TargetReward) Reward(pos maze.CellPosition) float64 {
	switch pos {
	case r.Target:
		return r.Goal - r.Step
	case r.Avoid:
		return r.Penalty - r.Step
	default:
		return -r.Step
	}
}
