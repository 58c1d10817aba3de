// Package mazesapi handles maze generation, retrieval and challenges.
package mazesapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	apiidentity "github.com/beka-birhanu/qmaze-api/api/identity"
	dmn "github.com/beka-birhanu/qmaze-api/domain"
	"github.com/beka-birhanu/qmaze-api/service"
	"github.com/beka-birhanu/qmaze-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const generateTimeout = 2 * time.Minute

// MazeController manages maze operations.
type MazeController struct {
	mazeService i.MazeService
	curator     i.Curator
}

// NewMazeController initializes a MazeController.
func NewMazeController(ms i.MazeService, c i.Curator) (*MazeController, error) {
	return &MazeController{
		mazeService: ms,
		curator:     c,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("/:ID", mc.byID)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("/", mc.generate)
		mazes.GET("/challenge", mc.challenge)
	}
}

// generate handles maze generation requests.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	records, err := mc.mazeService.Generate(timeoutCtx, i.GenerateRequest{
		Rows:     request.Rows,
		Cols:     request.Cols,
		Seed:     request.Seed,
		Samples:  request.Samples,
		DeadEnds: request.DeadEnds,
		By:       callerID(ctx),
	})
	if err != nil {
		if errors.Is(err, service.ErrTooManySamples) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	response := GenerateResponse{Mazes: make([]MazeResponse, 0, len(records))}
	for _, record := range records {
		mazeResponse, err := toMazeResponse(record)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		response.Mazes = append(response.Mazes, mazeResponse)
	}

	ctx.JSON(http.StatusCreated, response)
}

// byID retrieves a stored maze.
func (mc *MazeController) byID(ctx *gin.Context) {
	IDString := ctx.Params.ByName("ID")
	ID, err := uuid.Parse(IDString)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	record, err := mc.mazeService.ByID(ID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "maze not found"})
		return
	}

	response, err := toMazeResponse(record)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// challenge pops the hardest pending maze of the requested dimensions.
func (mc *MazeController) challenge(ctx *gin.Context) {
	rows, err := strconv.Atoi(ctx.DefaultQuery("rows", "10"))
	if err != nil || rows < 1 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid rows"})
		return
	}
	cols, err := strconv.Atoi(ctx.DefaultQuery("cols", "10"))
	if err != nil || cols < 1 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid cols"})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	record, err := mc.curator.Next(timeoutCtx, rows, cols)
	if err != nil {
		if errors.Is(err, service.ErrNoChallenges) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while fetching challenge"})
		return
	}

	response, err := toMazeResponse(record)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// toMazeResponse rebuilds the grid for the ASCII rendering and shapes
// the API response.
func toMazeResponse(record *dmn.MazeRecord) (MazeResponse, error) {
	grid, err := record.Grid()
	if err != nil {
		return MazeResponse{}, err
	}

	return MazeResponse{
		ID:      record.ID.String(),
		Rows:    record.Rows,
		Cols:    record.Cols,
		Seed:    record.Seed,
		Start:   record.Start,
		Prize:   record.Prize,
		Finish:  record.Finish,
		Walls:   record.Walls,
		Metrics: record.Metrics,
		Render:  grid.String(),
	}, nil
}

// callerID extracts the authenticated user's ID from the JWT claims set
// by the authorization middleware. A missing or malformed claim yields
// the zero UUID.
func callerID(ctx *gin.Context) uuid.UUID {
	raw, exists := ctx.Get(apiidentity.ContextUserClaims)
	if !exists {
		return uuid.Nil
	}
	claims, ok := raw.(map[string]interface{})
	if !ok {
		return uuid.Nil
	}
	idString, ok := claims["userID"].(string)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return uuid.Nil
	}
	return id
}
