package maze

// IsConnected reports whether to can be reached from from through open walls.
// It runs an iterative depth-first search and stops as soon as to is popped.
func (g *Grid) IsConnected(from, to CellPosition) bool {
	if !g.InBounds(from) || !g.InBounds(to) {
		return false
	}

	visited := map[CellPosition]struct{}{}
	stack := []CellPosition{from}

	for len(stack) > 0 {
		cell := pop(&stack)
		if cell == to {
			return true
		}
		if _, seen := visited[cell]; seen {
			continue
		}
		visited[cell] = struct{}{}

		for _, nbr := range g.NeighborsReachable(cell) {
			if _, seen := visited[nbr]; !seen {
				stack = append(stack, nbr)
			}
		}
	}

	return false
}

// IsValid reports whether both the finish and the prize are reachable from the
// start. A grid without all three roles is never valid.
func (g *Grid) IsValid() bool {
	if !g.RolesPlaced() {
		return false
	}
	return g.IsConnected(g.Start(), g.Finish()) && g.IsConnected(g.Start(), g.Prize())
}

// pop removes and returns the last element of a stack of CellPositions.
func pop(s *[]CellPosition) CellPosition {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}
