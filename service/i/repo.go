package i

import (
	dmn "github.com/beka-birhanu/qmaze/domain"
	"github.com/google/uuid"
)

// MazeRepo defines the interface for maze persistence operations.
type MazeRepo interface {
	// Save inserts or updates a maze in the repository.
	// If the maze already exists, it updates the record. Otherwise, it creates a new one.
	Save(maze *dmn.Maze) error

	// ByID retrieves a maze by its unique ID.
	// Returns dmn.ErrMazeNotFound if the maze is not found.
	ByID(id uuid.UUID) (*dmn.Maze, error)
}
