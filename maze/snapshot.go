package maze

import "strings"

// Snapshot is a read-only copy of a grid's walls and roles. It carries
// everything a renderer or a store needs without exposing the Grid.
type Snapshot struct {
	Rows   int          `json:"rows" bson:"rows"`
	Cols   int          `json:"cols" bson:"cols"`
	Cells  [][]Cell     `json:"cells" bson:"cells"`
	Start  CellPosition `json:"start" bson:"start"`
	Finish CellPosition `json:"finish" bson:"finish"`
	Prize  CellPosition `json:"prize" bson:"prize"`
}

// Snapshot copies the current wall and role state.
func (g *Grid) Snapshot() Snapshot {
	cells := make([][]Cell, g.rows)
	for r := range g.cells {
		cells[r] = make([]Cell, g.cols)
		copy(cells[r], g.cells[r])
	}
	return Snapshot{
		Rows:   g.rows,
		Cols:   g.cols,
		Cells:  cells,
		Start:  g.roles[RoleStart],
		Finish: g.roles[RoleFinish],
		Prize:  g.roles[RolePrize],
	}
}

// FromSnapshot rebuilds a grid from a snapshot, e.g. one loaded from storage.
func FromSnapshot(s Snapshot) (*Grid, error) {
	g, err := New(s.Rows, s.Cols)
	if err != nil {
		return nil, err
	}
	for r := 0; r < s.Rows && r < len(s.Cells); r++ {
		for c := 0; c < s.Cols && c < len(s.Cells[r]); c++ {
			cell := s.Cells[r][c]
			g.cells[r][c] = cell
			pos := CellPosition{Row: r, Col: c}
			if role := cell.Role(); role != RoleNone {
				g.roles[role] = pos
				g.placed[role] = true
			}
		}
	}
	return g, nil
}

// String draws the maze as ASCII art. S, F and P mark the start, the finish
// and the prize.
// A snapshot whose Cells do not match Rows and Cols draws as an empty string.
func (s Snapshot) String() string {
	if !s.wellFormed() {
		return ""
	}

	var b strings.Builder

	for row := 0; row < s.Rows; row++ {
		// North walls
		for col := 0; col < s.Cols; col++ {
			b.WriteString("+")
			if s.Cells[row][col].NorthWall {
				b.WriteString("---")
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString("+\n")

		// West walls and markers
		for col := 0; col < s.Cols; col++ {
			cell := s.Cells[row][col]
			if cell.WestWall {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
			b.WriteString(marker(cell))
		}
		if s.Cols > 0 && s.Cells[row][s.Cols-1].EastWall {
			b.WriteString("|\n")
		} else {
			b.WriteString(" \n")
		}
	}

	// South boundary
	if s.Rows > 0 {
		last := s.Rows - 1
		for col := 0; col < s.Cols; col++ {
			b.WriteString("+")
			if s.Cells[last][col].SouthWall {
				b.WriteString("---")
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString("+\n")
	}

	return b.String()
}

// wellFormed reports whether Cells holds exactly Rows rows of Cols cells.
func (s Snapshot) wellFormed() bool {
	if s.Rows < 0 || s.Cols < 0 || len(s.Cells) != s.Rows {
		return false
	}
	for _, row := range s.Cells {
		if len(row) != s.Cols {
			return false
		}
	}
	return true
}

func marker(c Cell) string {
	switch c.Role() {
	case RoleStart:
		return " S "
	case RoleFinish:
		return " F "
	case RolePrize:
		return " P "
	default:
		return "   "
	}
}
