// Package domain holds the records the service layer stores and serves.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/qmaze/maze"
	"github.com/google/uuid"
)

var (
	// ErrMazeNotFound is returned by repositories when no maze has the requested ID.
	ErrMazeNotFound = errors.New("maze not found")
)

// Maze represents the BSON version of a generated maze for database storage.
type Maze struct {
	ID        uuid.UUID     `bson:"_id" json:"id"`
	Rows      int           `bson:"rows" json:"rows"`
	Cols      int           `bson:"cols" json:"cols"`
	Seed      int64         `bson:"seed" json:"seed"`
	Index     int           `bson:"index" json:"index"`
	Strategy  string        `bson:"strategy" json:"strategy"`
	Valid     bool          `bson:"valid" json:"valid"`
	Layout    maze.Snapshot `bson:"layout" json:"layout"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}

// MazeConfig holds the parameters for recording a carved grid.
type MazeConfig struct {
	ID       uuid.UUID
	Seed     int64
	Index    int
	Strategy string
	Grid     *maze.Grid
}

// NewMaze snapshots a carved grid into a storable record.
func NewMaze(config MazeConfig) (*Maze, error) {
	if config.Grid == nil {
		return nil, errors.New("nil grid")
	}
	if config.ID == uuid.Nil {
		config.ID = uuid.New()
	}

	return &Maze{
		ID:        config.ID,
		Rows:      config.Grid.Rows(),
		Cols:      config.Grid.Cols(),
		Seed:      config.Seed,
		Index:     config.Index,
		Strategy:  config.Strategy,
		Valid:     config.Grid.IsValid(),
		Layout:    config.Grid.Snapshot(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Grid rebuilds the stored layout.
func (m *Maze) Grid() (*maze.Grid, error) {
	return maze.FromSnapshot(m.Layout)
}
