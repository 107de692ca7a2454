package carver

import (
	"github.com/beka-birhanu/qmaze/maze"
)

// move is one step of a random walk.
type move struct {
	from      maze.CellPosition
	to        maze.CellPosition
	direction maze.Direction
}

// CarveWilson turns g into a perfect maze with Wilson's algorithm: loop-erased
// random walks from unvisited cells are grafted onto the visited tree until
// every cell is part of it. The result is a spanning tree, so it is valid.
func (c *Carver) CarveWilson(g *maze.Grid) error {
	if !g.RolesPlaced() {
		return maze.ErrRolesNotPlaced
	}

	visited := map[maze.CellPosition]struct{}{}
	visited[g.Start()] = struct{}{}
	total := g.Rows() * g.Cols()

	for len(visited) < total {
		start := c.randomUnvisitedCell(g, visited)
		exits := c.randomWalk(g, start, visited)

		// Retrace the loop-erased path using the last exit taken from each cell.
		cell := start
		for {
			m := exits[cell]
			g.RemoveWall(m.from, m.direction)
			visited[cell] = struct{}{}
			if _, done := visited[m.to]; done {
				break
			}
			cell = m.to
		}
	}
	return nil
}

// randomUnvisitedCell selects a random position that has not been visited.
func (c *Carver) randomUnvisitedCell(g *maze.Grid, visited map[maze.CellPosition]struct{}) maze.CellPosition {
	for {
		pos := g.RandomCell(c.rng)
		if _, included := visited[pos]; !included {
			return pos
		}
	}
}

// randomWalk walks from start until it hits a visited cell and returns the
// last exit taken from every cell on the way.
func (c *Carver) randomWalk(g *maze.Grid, start maze.CellPosition, visited map[maze.CellPosition]struct{}) map[maze.CellPosition]move {
	exits := make(map[maze.CellPosition]move)
	cell := start

	for {
		neighbors := neighbors(g, cell)
		next := neighbors[c.rng.Intn(len(neighbors))]
		exits[cell] = next
		if _, included := visited[next.to]; included {
			break
		}
		cell = next.to
	}

	return exits
}

// neighbors lists the in-bound moves from pos in direction order.
func neighbors(g *maze.Grid, pos maze.CellPosition) []move {
	result := make([]move, 0, len(maze.Directions))
	for _, d := range maze.Directions {
		if next, ok := g.Neighbor(pos, d); ok {
			result = append(result, move{from: pos, to: next, direction: d})
		}
	}
	return result
}
