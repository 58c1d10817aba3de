package mazesapi

import (
	"github.com/beka-birhanu/qmaze-api/generator"
	"github.com/beka-birhanu/qmaze-api/maze"
)

// GenerateRequest represents a request to generate one or more mazes.
type GenerateRequest struct {
	Rows     int   `json:"rows" binding:"required,min=1"`
	Cols     int   `json:"cols" binding:"required,min=1"`
	Seed     int64 `json:"seed"`
	Samples  int   `json:"samples"`
	DeadEnds *int  `json:"dead_ends"` // nil keeps the size-based default
}

// MazeResponse represents a single generated or stored maze.
type MazeResponse struct {
	ID      string            `json:"id"`
	Rows    int               `json:"rows"`
	Cols    int               `json:"cols"`
	Seed    int64             `json:"seed"`
	Start   maze.CellPosition `json:"start"`
	Prize   maze.CellPosition `json:"prize"`
	Finish  maze.CellPosition `json:"finish"`
	Walls   [][]int           `json:"walls"`
	Metrics generator.Metrics `json:"metrics"`
	Render  string            `json:"render"` // ASCII drawing of the maze
}

// GenerateResponse wraps the mazes of one generation request.
type GenerateResponse struct {
	Mazes []MazeResponse `json:"mazes"`
}
