package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	dmn "github.com/beka-birhanu/qmaze-api/domain"
	"github.com/beka-birhanu/qmaze-api/generator"
	"github.com/beka-birhanu/qmaze-api/report"
	"github.com/beka-birhanu/qmaze-api/service/i"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultSamples = 1
	maxSamples     = 32
)

var (
	ErrTooManySamples = errors.New("too many samples requested")
)

// MazeGenerationService runs the generation pipeline per request:
// train, carve, measure, persist, index. Samples within a request are
// independent (each owns its grid, tables and random source) and fan
// out across goroutines; persistence happens afterwards, in order.
type MazeGenerationService struct {
	mazeRepo i.MazeRepo
	curator  i.Curator
	userRepo i.UserRepo
	logger   *logrus.Entry

	// reportDir, when set, receives a learning-curve HTML chart for the
	// first sample of every request.
	reportDir string
}

// GenerationConfig holds the dependencies of the generation service.
// UserRepo is optional; without it the per-user maze counter is not
// maintained.
type GenerationConfig struct {
	MazeRepo  i.MazeRepo
	Curator   i.Curator
	UserRepo  i.UserRepo
	Logger    *logrus.Entry
	ReportDir string
}

// NewMazeGenerationService wires the generation service.
func NewMazeGenerationService(c *GenerationConfig) (*MazeGenerationService, error) {
	if c.MazeRepo == nil || c.Curator == nil {
		return nil, errors.New("maze repo and curator are required")
	}
	return &MazeGenerationService{
		mazeRepo:  c.MazeRepo,
		curator:   c.Curator,
		userRepo:  c.UserRepo,
		logger:    c.Logger,
		reportDir: c.ReportDir,
	}, nil
}

// Generate produces req.Samples mazes from derived seeds req.Seed+k,
// persists them and queues them for challenges. The returned records
// are in sample order.
func (s *MazeGenerationService) Generate(ctx context.Context, req i.GenerateRequest) ([]*dmn.MazeRecord, error) {
	if req.Samples <= 0 {
		req.Samples = defaultSamples
	}
	if req.Samples > maxSamples {
		return nil, ErrTooManySamples
	}

	cfg := generator.DefaultConfig(req.Rows, req.Cols)
	if req.DeadEnds != nil {
		cfg.DeadEnds = *req.DeadEnds
	}

	records := make([]*dmn.MazeRecord, req.Samples)
	errs := make([]error, req.Samples)
	var firstDiag *generator.Diagnostics

	// Samples share nothing, so they can run in parallel. Each one gets
	// its own seed and generates on its own goroutine.
	var wg sync.WaitGroup
	for k := 0; k < req.Samples; k++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			seed := req.Seed + int64(k)

			if k == 0 && s.reportDir != "" {
				grid, metrics, diag, err := generator.GenerateWithDiagnostics(req.Rows, req.Cols, seed, cfg)
				if err != nil {
					errs[k] = err
					return
				}
				firstDiag = diag
				records[k] = dmn.NewMazeRecord(uuid.New(), grid, seed, metrics, req.By)
				return
			}

			grid, metrics, err := generator.Generate(req.Rows, req.Cols, seed, cfg)
			if err != nil {
				errs[k] = err
				return
			}
			records[k] = dmn.NewMazeRecord(uuid.New(), grid, seed, metrics, req.By)
		}(k)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	for _, record := range records {
		if err := s.mazeRepo.Save(record); err != nil {
			s.logger.Errorf("Failed to persist maze %s: %s", record.ID, err)
			return nil, err
		}
		// A failed enqueue only costs the maze its challenge slot.
		if err := s.curator.Add(ctx, record); err != nil {
			s.logger.Warnf("Maze %s not queued for challenges: %s", record.ID, err)
		}
		s.logger.Infof("Maze generated: ID=%s %dx%d seed=%d path=%d deadEnds=%d",
			record.ID, record.Rows, record.Cols, record.Seed,
			record.Metrics.ShortestPath, record.Metrics.DeadEnds)
	}

	s.creditUser(req.By, len(records))

	if firstDiag != nil {
		path := filepath.Join(s.reportDir, fmt.Sprintf("%dx%d_seed%d.html", req.Rows, req.Cols, req.Seed))
		if err := report.LearningCurve(path, firstDiag.PrizeEpisodeSteps, firstDiag.FinishEpisodeSteps); err != nil {
			s.logger.Warnf("Failed to write learning-curve report: %s", err)
		}
	}

	return records, nil
}

// creditUser bumps the creator's maze counter. The counter is cosmetic,
// so a failed update only warrants a warning.
func (s *MazeGenerationService) creditUser(by uuid.UUID, count int) {
	if s.userRepo == nil || by == uuid.Nil || count == 0 {
		return
	}

	user, err := s.userRepo.ByID(by)
	if err != nil {
		s.logger.Warnf("Maze count not credited, user %s not found: %s", by, err)
		return
	}
	user.MazesCreated += count
	if err := s.userRepo.Save(user); err != nil {
		s.logger.Warnf("Failed to update maze count for user %s: %s", by, err)
	}
}

// ByID retrieves a stored maze.
func (s *MazeGenerationService) ByID(id uuid.UUID) (*dmn.MazeRecord, error) {
	return s.mazeRepo.ByID(id)
}
