// Package mazeapi exposes generated mazes over HTTP.
package mazeapi

import (
	dmn "github.com/beka-birhanu/qmaze/domain"
	"github.com/beka-birhanu/qmaze/maze"
)

// GenerateRequest asks for a batch of mazes.
type GenerateRequest struct {
	Rows     int    `json:"rows" binding:"required,min=1"`
	Cols     int    `json:"cols" binding:"required,min=1"`
	Seed     int64  `json:"seed"`
	Count    int    `json:"count" binding:"min=0"`
	Strategy string `json:"strategy"`
}

// NextRequest selects the pool to pop from.
type NextRequest struct {
	Rows int `form:"rows" binding:"required,min=1"`
	Cols int `form:"cols" binding:"required,min=1"`
}

// MazeResponse is the public view of a stored maze.
type MazeResponse struct {
	ID       string        `json:"id"`
	Rows     int           `json:"rows"`
	Cols     int           `json:"cols"`
	Seed     int64         `json:"seed"`
	Index    int           `json:"index"`
	Strategy string        `json:"strategy"`
	Valid    bool          `json:"valid"`
	Layout   maze.Snapshot `json:"layout"`
	Text     string        `json:"text"`
}

// GenerateResponse lists a generated batch.
type GenerateResponse struct {
	Mazes []*MazeResponse `json:"mazes"`
}

func toResponse(m *dmn.Maze) *MazeResponse {
	return &MazeResponse{
		ID:       m.ID.String(),
		Rows:     m.Rows,
		Cols:     m.Cols,
		Seed:     m.Seed,
		Index:    m.Index,
		Strategy: m.Strategy,
		Valid:    m.Valid,
		Layout:   m.Layout,
		Text:     m.Layout.String(),
	}
}
