package i

import (
	"context"

	dmn "github.com/beka-birhanu/qmaze/domain"
	"github.com/google/uuid"
)

// GenerateRequest describes a batch of mazes to generate.
type GenerateRequest struct {
	Rows     int
	Cols     int
	Seed     int64 // 0 picks a seed from the clock
	Count    int
	Strategy string
}

// MazeService generates, stores and hands out mazes.
type MazeService interface {
	// Generate carves req.Count mazes, stores them and queues their IDs.
	Generate(ctx context.Context, req GenerateRequest) ([]*dmn.Maze, error)

	// Next pops the oldest queued maze of the given size, generating a
	// fresh batch when none is queued.
	Next(ctx context.Context, rows, cols int) (*dmn.Maze, error)

	// ByID returns a stored maze.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Maze, error)
}
