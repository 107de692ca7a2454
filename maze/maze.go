/*
Package maze provides the rectangular grid that mazes are carved into.

A Grid is a rows x cols lattice of Cells. Every cell starts with its four
walls intact; walls are only ever removed in symmetric pairs between two
grid-adjacent cells, and the outer boundary is never opened. Three cells
carry a role: the start, the finish and the prize. A maze is valid when
both the finish and the prize can be reached from the start.

The package also provides the reachability search used to validate a maze
and a read-only Snapshot for renderers and storage.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrInvalidDimension is returned for grids with a non-positive side, and
	// by PlaceRoles when the grid cannot hold three distinct role cells.
	ErrInvalidDimension = errors.New("invalid maze dimensions")
	// ErrRolesNotPlaced is returned by operations that need start, finish and prize.
	ErrRolesNotPlaced = errors.New("maze roles are not placed")
)

// Grid is a rectangular lattice of cells with three role-bearing cells.
type Grid struct {
	rows   int
	cols   int
	cells  [][]Cell
	roles  [4]CellPosition // indexed by Role; RoleNone unused
	placed [4]bool
}

// New allocates a rows x cols grid with every wall present and no roles.
func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, rows, cols)
	}

	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
		for c := range cells[r] {
			cells[r][c] = newCell()
		}
	}

	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: cells,
	}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether pos lies inside the grid.
func (g *Grid) InBounds(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < g.rows && pos.Col >= 0 && pos.Col < g.cols
}

// Cell returns a copy of the cell at pos. It panics if pos is out of bounds.
func (g *Grid) Cell(pos CellPosition) Cell {
	return g.cells[pos.Row][pos.Col]
}

// Neighbor returns the position one step from pos in direction d and whether
// that position is inside the grid.
func (g *Grid) Neighbor(pos CellPosition, d Direction) (CellPosition, bool) {
	next := d.Step(pos)
	return next, g.InBounds(next)
}

// HasWall reports whether the wall of pos on side d is present.
func (g *Grid) HasWall(pos CellPosition, d Direction) bool {
	return g.cells[pos.Row][pos.Col].HasWall(d)
}

// RemoveWall opens the wall of pos on side d together with the facing wall
// of its neighbor. Removing a boundary wall is silently ignored.
func (g *Grid) RemoveWall(pos CellPosition, d Direction) {
	if !g.InBounds(pos) {
		return
	}
	next, ok := g.Neighbor(pos, d)
	if !ok {
		return
	}
	g.cells[pos.Row][pos.Col].setWall(d, false)
	g.cells[next.Row][next.Col].setWall(d.Opposite(), false)
}

// AssignRole marks pos with role and records it for lookup. A role already
// held by another cell moves to pos. Keeping the three roles on distinct
// cells is the caller's responsibility; see PlaceRoles.
func (g *Grid) AssignRole(pos CellPosition, role Role) {
	if role <= RoleNone || role > RolePrize || !g.InBounds(pos) {
		return
	}
	if g.placed[role] {
		old := g.roles[role]
		g.cells[old.Row][old.Col].clearRole(role)
	}
	g.cells[pos.Row][pos.Col].setRole(role)
	g.roles[role] = pos
	g.placed[role] = true
}

// RolePosition returns the cell holding role, and false if none was assigned.
func (g *Grid) RolePosition(role Role) (CellPosition, bool) {
	if role <= RoleNone || role > RolePrize {
		return CellPosition{}, false
	}
	return g.roles[role], g.placed[role]
}

// Start returns the start cell position.
func (g *Grid) Start() CellPosition { return g.roles[RoleStart] }

// Finish returns the finish cell position.
func (g *Grid) Finish() CellPosition { return g.roles[RoleFinish] }

// Prize returns the prize cell position.
func (g *Grid) Prize() CellPosition { return g.roles[RolePrize] }

// RolesPlaced reports whether start, finish and prize are all assigned.
func (g *Grid) RolesPlaced() bool {
	return g.placed[RoleStart] && g.placed[RoleFinish] && g.placed[RolePrize]
}

// PlaceRoles puts start, finish and prize on uniformly random cells, drawing
// again whenever the candidate already holds another role.
func (g *Grid) PlaceRoles(rng *rand.Rand) error {
	if g.rows*g.cols < 3 {
		return fmt.Errorf("%w: %dx%d grid cannot hold three distinct role cells", ErrInvalidDimension, g.rows, g.cols)
	}

	for _, role := range []Role{RoleStart, RoleFinish, RolePrize} {
		g.AssignRole(g.randomFreeCell(rng), role)
	}
	return nil
}

// randomFreeCell draws cells until it finds one with no role.
func (g *Grid) randomFreeCell(rng *rand.Rand) CellPosition {
	for {
		pos := g.RandomCell(rng)
		if g.cells[pos.Row][pos.Col].Role() == RoleNone {
			return pos
		}
	}
}

// RandomCell returns a uniformly random position in the grid.
func (g *Grid) RandomCell(rng *rand.Rand) CellPosition {
	return CellPosition{Row: rng.Intn(g.rows), Col: rng.Intn(g.cols)}
}

// NeighborsReachable returns the adjacent cells with no wall between them and pos.
func (g *Grid) NeighborsReachable(pos CellPosition) []CellPosition {
	var result []CellPosition
	for _, d := range Directions {
		next, ok := g.Neighbor(pos, d)
		if ok && !g.cells[pos.Row][pos.Col].HasWall(d) {
			result = append(result, next)
		}
	}
	return result
}

// Clone returns a deep copy of the grid. Samples carve clones of a template
// so the template itself is never mutated.
func (g *Grid) Clone() *Grid {
	cells := make([][]Cell, g.rows)
	for r := range g.cells {
		cells[r] = make([]Cell, g.cols)
		copy(cells[r], g.cells[r])
	}
	return &Grid{
		rows:   g.rows,
		cols:   g.cols,
		cells:  cells,
		roles:  g.roles,
		placed: g.placed,
	}
}

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	return g.Snapshot().String()
}
