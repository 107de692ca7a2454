package mazeapi

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/beka-birhanu/qmaze/carver"
	dmn "github.com/beka-birhanu/qmaze/domain"
	"github.com/beka-birhanu/qmaze/maze"
	"github.com/beka-birhanu/qmaze/render"
	"github.com/beka-birhanu/qmaze/service"
	"github.com/beka-birhanu/qmaze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	generateTimeout = 30 * time.Second
	maxBatch        = 100
)

// MazeController serves stored mazes and generates new ones.
type MazeController struct {
	mazeService i.MazeService
}

// NewMazeController initializes a MazeController.
func NewMazeController(ms i.MazeService) (*MazeController, error) {
	if ms == nil {
		return nil, errors.New("nil maze service")
	}
	return &MazeController{
		mazeService: ms,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("/:ID", mc.byID)
		mazes.GET("/:ID/text", mc.text)
		mazes.GET("/:ID/png", mc.png)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/mazes", mc.generate)
	route.GET("/pool/next", mc.next)
}

// generate handles batch generation requests.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Count > maxBatch {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "count exceeds the batch limit"})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx.Request.Context(), generateTimeout)
	defer cancel()
	mazes, err := mc.mazeService.Generate(timeoutCtx, i.GenerateRequest{
		Rows:     request.Rows,
		Cols:     request.Cols,
		Seed:     request.Seed,
		Count:    request.Count,
		Strategy: request.Strategy,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	response := &GenerateResponse{Mazes: make([]*MazeResponse, 0, len(mazes))}
	for _, m := range mazes {
		response.Mazes = append(response.Mazes, toResponse(m))
	}
	ctx.JSON(http.StatusCreated, response)
}

// next pops the oldest pooled maze of the requested size.
func (mc *MazeController) next(ctx *gin.Context) {
	var request NextRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx.Request.Context(), generateTimeout)
	defer cancel()
	m, err := mc.mazeService.Next(timeoutCtx, request.Rows, request.Cols)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(m))
}

// byID returns a stored maze as JSON.
func (mc *MazeController) byID(ctx *gin.Context) {
	m, ok := mc.load(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, toResponse(m))
}

// text returns the ASCII drawing of a stored maze.
func (mc *MazeController) text(ctx *gin.Context) {
	m, ok := mc.load(ctx)
	if !ok {
		return
	}
	ctx.String(http.StatusOK, m.Layout.String())
}

// png returns the image of a stored maze.
func (mc *MazeController) png(ctx *gin.Context) {
	m, ok := mc.load(ctx)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, m.Layout, render.DefaultCellSize); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while drawing maze"})
		return
	}
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (mc *MazeController) load(ctx *gin.Context) (*dmn.Maze, bool) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "malformed id"})
		return nil, false
	}

	m, err := mc.mazeService.ByID(ctx.Request.Context(), ID)
	if err != nil {
		writeError(ctx, err)
		return nil, false
	}
	return m, true
}

func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, dmn.ErrMazeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrInvalidDimension),
		errors.Is(err, service.ErrTooLarge),
		errors.Is(err, carver.ErrUnknownStrategy):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while serving maze"})
	}
}
