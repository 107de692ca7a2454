// Package render draws maze snapshots as text and PNG images.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/beka-birhanu/qmaze/maze"
)

// DefaultCellSize is the side of a cell in pixels.
const DefaultCellSize = 32

var (
	wallColor   = color.RGBA{A: 255}
	floorColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	startColor  = color.RGBA{R: 76, G: 175, B: 80, A: 255}
	finishColor = color.RGBA{R: 229, G: 57, B: 53, A: 255}
	prizeColor  = color.RGBA{R: 255, G: 193, B: 7, A: 255}
)

// Text writes the ASCII drawing of s to w.
func Text(w io.Writer, s maze.Snapshot) error {
	_, err := io.WriteString(w, s.String())
	return err
}

// Image draws s with cellSize pixels per cell. Walls are one pixel wide and
// role cells are filled with their color.
func Image(s maze.Snapshot, cellSize int) (*image.RGBA, error) {
	if cellSize < 3 {
		return nil, fmt.Errorf("cell size %d is too small", cellSize)
	}
	if s.Rows <= 0 || s.Cols <= 0 || len(s.Cells) != s.Rows {
		return nil, errors.New("malformed snapshot")
	}

	img := image.NewRGBA(image.Rect(0, 0, s.Cols*cellSize+1, s.Rows*cellSize+1))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: floorColor}, image.Point{}, draw.Src)

	for r, row := range s.Cells {
		if len(row) != s.Cols {
			return nil, errors.New("malformed snapshot")
		}
		for c, cell := range row {
			x0, y0 := c*cellSize, r*cellSize
			x1, y1 := x0+cellSize, y0+cellSize

			if fill, ok := roleColor(cell.Role()); ok {
				draw.Draw(img, image.Rect(x0+1, y0+1, x1, y1), &image.Uniform{C: fill}, image.Point{}, draw.Src)
			}

			if cell.NorthWall {
				hline(img, x0, x1, y0)
			}
			if cell.SouthWall {
				hline(img, x0, x1, y1)
			}
			if cell.WestWall {
				vline(img, x0, y0, y1)
			}
			if cell.EastWall {
				vline(img, x1, y0, y1)
			}
		}
	}
	return img, nil
}

// PNG encodes the drawing of s to w.
func PNG(w io.Writer, s maze.Snapshot, cellSize int) error {
	img, err := Image(s, cellSize)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG writes the drawing of s to path, creating parent directories.
func SavePNG(path string, s maze.Snapshot, cellSize int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := PNG(f, s, cellSize); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// SamplePath returns dir/<rows>X<cols>/<index>.png.
func SamplePath(dir string, rows, cols, index int) string {
	return filepath.Join(dir, fmt.Sprintf("%dX%d", rows, cols), fmt.Sprintf("%d.png", index))
}

func roleColor(role maze.Role) (color.RGBA, bool) {
	switch role {
	case maze.RoleStart:
		return startColor, true
	case maze.RoleFinish:
		return finishColor, true
	case maze.RolePrize:
		return prizeColor, true
	default:
		return color.RGBA{}, false
	}
}

// hline draws the inclusive segment (x0..x1, y).
func hline(img *image.RGBA, x0, x1, y int) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y, wallColor)
	}
}

// vline draws the inclusive segment (x, y0..y1).
func vline(img *image.RGBA, x, y0, y1 int) {
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x, y, wallColor)
	}
}
