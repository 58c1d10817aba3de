package service

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/qmaze-api/domain"
	"github.com/beka-birhanu/qmaze-api/generator"
	"github.com/beka-birhanu/qmaze-api/service/i"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultCuratorPrefix = "curator"
	challengeQueueKeyFmt = "%s:queue:%dx%d"

	// Dead ends weigh more than raw path length when ranking difficulty:
	// a long open corridor is easier to solve than a shorter maze full
	// of traps.
	deadEndWeight = 2
)

var (
	ErrNoChallenges = errors.New("no mazes queued for these dimensions")
)

// MazeCurator ranks generated mazes by difficulty in a sorted queue and
// serves the hardest pending one on demand. Queues are bucketed by maze
// dimensions so a 5x5 request never receives a 20x20 maze.
type MazeCurator struct {
	sortedQueue i.SortedQueue
	mazeRepo    i.MazeRepo
	logger      *logrus.Entry
	prefix      string
}

// NewMazeCurator creates a curator on top of a sorted queue and the
// maze repository. An empty prefix falls back to the default.
func NewMazeCurator(sortedQueue i.SortedQueue, mazeRepo i.MazeRepo, logger *logrus.Entry, prefix string) (*MazeCurator, error) {
	if prefix == "" {
		prefix = defaultCuratorPrefix
	}

	return &MazeCurator{
		sortedQueue: sortedQueue,
		mazeRepo:    mazeRepo,
		logger:      logger,
		prefix:      prefix,
	}, nil
}

// Add indexes a generated maze under its difficulty score. The queue
// pops lowest scores first, so the score is the negated difficulty.
func (c *MazeCurator) Add(ctx context.Context, record *dmn.MazeRecord) error {
	key := c.queueKey(record.Rows, record.Cols)
	score := -difficultyScore(record.Metrics)
	err := c.sortedQueue.Enqueue(ctx, key, score, record.ID.String())
	if err != nil {
		c.logger.Errorf("Failed to enqueue maze %s: %s", record.ID, err)
		return err
	}

	c.logger.Infof("Maze queued: ID=%s difficulty=%.0f pending=%d",
		record.ID, -score, c.sortedQueue.Count(ctx, key))
	return nil
}

// Next pops the hardest pending maze of the given dimensions.
func (c *MazeCurator) Next(ctx context.Context, rows, cols int) (*dmn.MazeRecord, error) {
	members, err := c.sortedQueue.DequeTops(ctx, c.queueKey(rows, cols), 1)
	if err != nil {
		c.logger.Errorf("obtaining challenge lock: %s", err)
		return nil, err
	}
	if len(members) == 0 {
		return nil, ErrNoChallenges
	}

	id, err := uuid.Parse(members[0])
	if err != nil {
		c.logger.Warnf("Non-UUID value in queue: %s", members[0])
		return nil, ErrNoChallenges
	}

	return c.mazeRepo.ByID(id)
}

func (c *MazeCurator) queueKey(rows, cols int) string {
	return fmt.Sprintf(challengeQueueKeyFmt, c.prefix, rows, cols)
}

// difficultyScore condenses maze metrics into one ranking value. An
// unreachable finish scores zero: it should never win a challenge slot.
func difficultyScore(m generator.Metrics) float64 {
	if !m.FinishReachable {
		return 0
	}
	return float64(m.ShortestPath + deadEndWeight*m.DeadEnds)
}
