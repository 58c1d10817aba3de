package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	dmn "github.com/beka-birhanu/qmaze-api/domain"
	"github.com/beka-birhanu/qmaze-api/generator"
	"github.com/beka-birhanu/qmaze-api/logging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeSortedQueue is an in-memory stand-in for the Redis sorted queue.
type fakeSortedQueue struct {
	queues     map[string][]scoredMember
	countCalls int
}

type scoredMember struct {
	score  float64
	member string
}

func newFakeSortedQueue() *fakeSortedQueue {
	return &fakeSortedQueue{queues: make(map[string][]scoredMember)}
}

func (q *fakeSortedQueue) Enqueue(_ context.Context, key string, score float64, member string) error {
	q.queues[key] = append(q.queues[key], scoredMember{score: score, member: member})
	sort.SliceStable(q.queues[key], func(i, j int) bool {
		return q.queues[key][i].score < q.queues[key][j].score
	})
	return nil
}

func (q *fakeSortedQueue) DequeTops(_ context.Context, key string, amount int64) ([]string, error) {
	members := q.queues[key]
	if int64(len(members)) < amount {
		return nil, nil
	}
	var tops []string
	for _, m := range members[:amount] {
		tops = append(tops, m.member)
	}
	q.queues[key] = members[amount:]
	return tops, nil
}

func (q *fakeSortedQueue) Count(_ context.Context, key string) int64 {
	q.countCalls++
	return int64(len(q.queues[key]))
}

// fakeMazeRepo is an in-memory stand-in for the Mongo maze repository.
type fakeMazeRepo struct {
	records map[uuid.UUID]*dmn.MazeRecord
}

func newFakeMazeRepo() *fakeMazeRepo {
	return &fakeMazeRepo{records: make(map[uuid.UUID]*dmn.MazeRecord)}
}

func (r *fakeMazeRepo) Save(record *dmn.MazeRecord) error {
	r.records[record.ID] = record
	return nil
}

func (r *fakeMazeRepo) ByID(id uuid.UUID) (*dmn.MazeRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, errors.New("maze not found")
	}
	return record, nil
}

func queuedRecord(t *testing.T, repo *fakeMazeRepo, rows, cols, path, deadEnds int) *dmn.MazeRecord {
	t.Helper()
	record := &dmn.MazeRecord{
		ID:   uuid.New(),
		Rows: rows,
		Cols: cols,
		Metrics: generator.Metrics{
			ShortestPath:    path,
			DeadEnds:        deadEnds,
			FinishReachable: true,
		},
	}
	assert.NoError(t, repo.Save(record))
	return record
}

func TestMazeCurator(t *testing.T) {
	ctx := context.Background()
	queue := newFakeSortedQueue()
	repo := newFakeMazeRepo()
	curator, err := NewMazeCurator(queue, repo, logging.NewLogger("TEST"), "")
	assert.NoError(t, err)

	easy := queuedRecord(t, repo, 5, 5, 8, 0)
	hard := queuedRecord(t, repo, 5, 5, 12, 6)
	otherSize := queuedRecord(t, repo, 9, 9, 30, 10)

	assert.NoError(t, curator.Add(ctx, easy))
	assert.NoError(t, curator.Add(ctx, hard))
	assert.NoError(t, curator.Add(ctx, otherSize))

	t.Run("reports queue depth on add", func(t *testing.T) {
		assert.Equal(t, 3, queue.countCalls)
	})

	t.Run("hardest of the requested size first", func(t *testing.T) {
		next, err := curator.Next(ctx, 5, 5)
		assert.NoError(t, err)
		assert.Equal(t, hard.ID, next.ID)

		next, err = curator.Next(ctx, 5, 5)
		assert.NoError(t, err)
		assert.Equal(t, easy.ID, next.ID)
	})

	t.Run("sizes do not mix", func(t *testing.T) {
		next, err := curator.Next(ctx, 9, 9)
		assert.NoError(t, err)
		assert.Equal(t, otherSize.ID, next.ID)
	})

	t.Run("empty queue", func(t *testing.T) {
		_, err := curator.Next(ctx, 5, 5)
		assert.ErrorIs(t, err, ErrNoChallenges)
	})
}
