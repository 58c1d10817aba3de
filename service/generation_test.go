package service

import (
	"context"
	"errors"
	"testing"

	dmn "github.com/beka-birhanu/qmaze-api/domain"
	"github.com/beka-birhanu/qmaze-api/logging"
	"github.com/beka-birhanu/qmaze-api/maze"
	"github.com/beka-birhanu/qmaze-api/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeCurator records what was queued without any Redis behind it.
type fakeCurator struct {
	added []*dmn.MazeRecord
}

func (c *fakeCurator) Add(_ context.Context, record *dmn.MazeRecord) error {
	c.added = append(c.added, record)
	return nil
}

func (c *fakeCurator) Next(context.Context, int, int) (*dmn.MazeRecord, error) {
	return nil, ErrNoChallenges
}

// fakeUserRepo is an in-memory stand-in for the Mongo user repository.
type fakeUserRepo struct {
	users map[uuid.UUID]*dmn.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*dmn.User)}
}

func (r *fakeUserRepo) Save(user *dmn.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (r *fakeUserRepo) ByUsername(username string) (*dmn.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

func newGenerationService(t *testing.T) (*MazeGenerationService, *fakeMazeRepo, *fakeCurator, *fakeUserRepo) {
	t.Helper()
	repo := newFakeMazeRepo()
	curator := &fakeCurator{}
	users := newFakeUserRepo()
	svc, err := NewMazeGenerationService(&GenerationConfig{
		MazeRepo: repo,
		Curator:  curator,
		UserRepo: users,
		Logger:   logging.NewLogger("TEST"),
	})
	assert.NoError(t, err)
	return svc, repo, curator, users
}

func TestGenerateBatch(t *testing.T) {
	svc, repo, curator, users := newGenerationService(t)
	by := uuid.New()
	assert.NoError(t, users.Save(&dmn.User{ID: by, Username: "mazesmith"}))

	records, err := svc.Generate(context.Background(), i.GenerateRequest{
		Rows:    4,
		Cols:    4,
		Seed:    7,
		Samples: 3,
		By:      by,
	})
	assert.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Len(t, repo.records, 3)
	assert.Len(t, curator.added, 3)

	for k, record := range records {
		assert.Equal(t, int64(7+k), record.Seed, "sample %d seed", k)
		assert.Equal(t, by, record.CreatedBy)
		assert.Equal(t, 4, record.Rows)
		assert.Equal(t, 4, record.Cols)

		grid, err := record.Grid()
		assert.NoError(t, err)
		assert.True(t, maze.PathExists(grid, grid.Start, grid.Prize))
		assert.True(t, maze.PathExists(grid, grid.Start, grid.Finish))
	}

	// The creator is credited for every persisted maze.
	creator, err := users.ByID(by)
	assert.NoError(t, err)
	assert.Equal(t, 3, creator.MazesCreated)
}

func TestGenerateCreditsAccumulate(t *testing.T) {
	svc, _, _, users := newGenerationService(t)
	by := uuid.New()
	assert.NoError(t, users.Save(&dmn.User{ID: by, Username: "mazesmith"}))

	for round := 0; round < 2; round++ {
		_, err := svc.Generate(context.Background(), i.GenerateRequest{
			Rows: 4,
			Cols: 4,
			Seed: int64(round),
			By:   by,
		})
		assert.NoError(t, err)
	}

	creator, err := users.ByID(by)
	assert.NoError(t, err)
	assert.Equal(t, 2, creator.MazesCreated)
}

func TestGenerateByUnknownUserStillSucceeds(t *testing.T) {
	svc, repo, _, _ := newGenerationService(t)

	records, err := svc.Generate(context.Background(), i.GenerateRequest{
		Rows: 4,
		Cols: 4,
		By:   uuid.New(),
	})
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Len(t, repo.records, 1)
}

func TestGenerateBatchIsReproducible(t *testing.T) {
	svc, _, _, _ := newGenerationService(t)
	req := i.GenerateRequest{Rows: 4, Cols: 4, Seed: 99, Samples: 2}

	first, err := svc.Generate(context.Background(), req)
	assert.NoError(t, err)
	second, err := svc.Generate(context.Background(), req)
	assert.NoError(t, err)

	for k := range first {
		assert.Equal(t, first[k].Walls, second[k].Walls, "sample %d walls", k)
		assert.Equal(t, first[k].Metrics, second[k].Metrics, "sample %d metrics", k)
	}
}

func TestGenerateRejectsOversizedBatch(t *testing.T) {
	svc, repo, _, _ := newGenerationService(t)

	_, err := svc.Generate(context.Background(), i.GenerateRequest{
		Rows:    4,
		Cols:    4,
		Samples: maxSamples + 1,
	})
	assert.ErrorIs(t, err, ErrTooManySamples)
	assert.Empty(t, repo.records)
}

func TestGenerateDefaultsToOneSample(t *testing.T) {
	svc, repo, _, _ := newGenerationService(t)

	records, err := svc.Generate(context.Background(), i.GenerateRequest{
		Rows: 4,
		Cols: 4,
		Seed: 1,
	})
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Len(t, repo.records, 1)
}

func TestGeneratePropagatesCoreErrors(t *testing.T) {
	svc, repo, _, _ := newGenerationService(t)

	_, err := svc.Generate(context.Background(), i.GenerateRequest{
		Rows: 0,
		Cols: 4,
	})
	assert.ErrorIs(t, err, maze.ErrInvalidDimension)
	assert.Empty(t, repo.records)
}
