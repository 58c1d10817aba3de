package i

import (
	"context"

	dmn "github.com/beka-birhanu/qmaze-api/domain"
	"github.com/google/uuid"
)

// GenerateRequest carries the parameters of one maze generation call.
type GenerateRequest struct {
	Rows     int
	Cols     int
	Seed     int64
	Samples  int  // Number of independent mazes to generate
	DeadEnds *int // Dead-end injection count; nil means the size-based default
	By       uuid.UUID
}

// MazeService is the application boundary of maze generation.
type MazeService interface {
	// Generate produces, persists and indexes Samples mazes. Sample k
	// is generated from seed Seed+k, so batches are reproducible.
	Generate(ctx context.Context, req GenerateRequest) ([]*dmn.MazeRecord, error)

	// ByID retrieves a stored maze.
	ByID(id uuid.UUID) (*dmn.MazeRecord, error)
}

// Curator ranks generated mazes by difficulty and hands out the hardest
// pending ones.
type Curator interface {
	// Add indexes a generated maze under its difficulty score.
	Add(ctx context.Context, record *dmn.MazeRecord) error

	// Next pops the hardest pending maze of the given dimensions.
	Next(ctx context.Context, rows, cols int) (*dmn.MazeRecord, error)
}
