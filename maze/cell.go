package maze

import "fmt"

// Role marks one of the three special cells of a maze.
type Role int

const (
	RoleNone Role = iota
	RoleStart
	RoleFinish
	RolePrize
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleStart:
		return "start"
	case RoleFinish:
		return "finish"
	case RolePrize:
		return "prize"
	default:
		return "none"
	}
}

// CellPosition represents the position of a cell in the maze grid.
// Two cells are the same cell iff their positions are equal.
type CellPosition struct {
	Row int `json:"row" bson:"row"` // Row index of the cell
	Col int `json:"col" bson:"col"` // Column index of the cell
}

// String formats the position as "(row, col)".
func (cp CellPosition) String() string {
	return fmt.Sprintf("(%d, %d)", cp.Row, cp.Col)
}

// Cell represents a single cell in a maze grid.
// It includes properties for walls on each side and the role flags.
type Cell struct {
	NorthWall bool `json:"northWall" bson:"northWall"` // NorthWall indicates whether there is a wall on the north side of the cell.
	SouthWall bool `json:"southWall" bson:"southWall"` // SouthWall indicates whether there is a wall on the south side of the cell.
	EastWall  bool `json:"eastWall" bson:"eastWall"`   // EastWall indicates whether there is a wall on the east side of the cell.
	WestWall  bool `json:"westWall" bson:"westWall"`   // WestWall indicates whether there is a wall on the west side of the cell.
	Start     bool `json:"start" bson:"start"`         // Start marks the cell every carved path leads back to.
	Finish    bool `json:"finish" bson:"finish"`       // Finish marks the exit cell.
	Prize     bool `json:"prize" bson:"prize"`         // Prize marks the cell holding the prize.
}

func newCell() Cell {
	return Cell{
		NorthWall: true,
		SouthWall: true,
		EastWall:  true,
		WestWall:  true,
	}
}

// HasWall reports whether the wall on side d is present.
func (c *Cell) HasWall(d Direction) bool {
	switch d {
	case North:
		return c.NorthWall
	case South:
		return c.SouthWall
	case East:
		return c.EastWall
	case West:
		return c.WestWall
	default:
		return true
	}
}

func (c *Cell) setWall(d Direction, present bool) {
	switch d {
	case North:
		c.NorthWall = present
	case South:
		c.SouthWall = present
	case East:
		c.EastWall = present
	case West:
		c.WestWall = present
	}
}

// HasIntactWall reports whether at least one of the four walls is still present.
func (c *Cell) HasIntactWall() bool {
	return c.NorthWall || c.SouthWall || c.EastWall || c.WestWall
}

// Role returns the role held by the cell, RoleNone if it holds none.
func (c *Cell) Role() Role {
	switch {
	case c.Start:
		return RoleStart
	case c.Finish:
		return RoleFinish
	case c.Prize:
		return RolePrize
	default:
		return RoleNone
	}
}

func (c *Cell) setRole(r Role) {
	c.markRole(r, true)
}

func (c *Cell) clearRole(r Role) {
	c.markRole(r, false)
}

func (c *Cell) markRole(r Role, held bool) {
	switch r {
	case RoleStart:
		c.Start = held
	case RoleFinish:
		c.Finish = held
	case RolePrize:
		c.Prize = held
	}
}
