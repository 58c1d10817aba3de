// Package domain holds the persisted entities of the maze service.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/qmaze-api/generator"
	"github.com/beka-birhanu/qmaze-api/maze"
	"github.com/google/uuid"
)

// Wall bits of the per-cell bitmask stored in Mongo.
const (
	wallNorth = 1 << iota
	wallSouth
	wallEast
	wallWest
)

var ErrCorruptWalls = errors.New("stored wall layout does not match dimensions")

// MazeRecord is the BSON version of a generated maze: the complete wall
// state plus everything needed to regenerate or audit it.
type MazeRecord struct {
	ID        uuid.UUID         `bson:"_id" json:"id"`
	Rows      int               `bson:"rows" json:"rows"`
	Cols      int               `bson:"cols" json:"cols"`
	Seed      int64             `bson:"seed" json:"seed"`
	Walls     [][]int           `bson:"walls" json:"walls"` // Per-cell wall bitmask, row-major
	Start     maze.CellPosition `bson:"start" json:"start"`
	Prize     maze.CellPosition `bson:"prize" json:"prize"`
	Finish    maze.CellPosition `bson:"finish" json:"finish"`
	Metrics   generator.Metrics `bson:"metrics" json:"metrics"`
	CreatedBy uuid.UUID         `bson:"createdBy" json:"created_by"`
	CreatedAt time.Time         `bson:"createdAt" json:"created_at"`
}

// NewMazeRecord snapshots a carved grid into its persisted form.
func NewMazeRecord(id uuid.UUID, g *maze.Grid, seed int64, metrics generator.Metrics, createdBy uuid.UUID) *MazeRecord {
	walls := make([][]int, g.Rows)
	for row := 0; row < g.Rows; row++ {
		walls[row] = make([]int, g.Cols)
		for col := 0; col < g.Cols; col++ {
			cell := g.Cells[row][col]
			mask := 0
			if cell.NorthWall {
				mask |= wallNorth
			}
			if cell.SouthWall {
				mask |= wallSouth
			}
			if cell.EastWall {
				mask |= wallEast
			}
			if cell.WestWall {
				mask |= wallWest
			}
			walls[row][col] = mask
		}
	}

	return &MazeRecord{
		ID:        id,
		Rows:      g.Rows,
		Cols:      g.Cols,
		Seed:      seed,
		Walls:     walls,
		Start:     g.Start,
		Prize:     g.Prize,
		Finish:    g.Finish,
		Metrics:   metrics,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
}

// Grid rebuilds the wall state of the record into a grid.
func (r *MazeRecord) Grid() (*maze.Grid, error) {
	g, err := maze.New(r.Rows, r.Cols)
	if err != nil {
		return nil, err
	}
	if len(r.Walls) != r.Rows {
		return nil, ErrCorruptWalls
	}

	for row := 0; row < r.Rows; row++ {
		if len(r.Walls[row]) != r.Cols {
			return nil, ErrCorruptWalls
		}
		for col := 0; col < r.Cols; col++ {
			mask := r.Walls[row][col]
			cell := g.Cells[row][col]
			cell.NorthWall = mask&wallNorth != 0
			cell.SouthWall = mask&wallSouth != 0
			cell.EastWall = mask&wallEast != 0
			cell.WestWall = mask&wallWest != 0
		}
	}

	g.PlaceTargets(r.Start, r.Prize, r.Finish)
	return g, nil
}
