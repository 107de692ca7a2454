package maze

// Direction is one of the four moves between grid-adjacent cells.
// The numeric order (north, south, east, west) is also the action index
// used by action-value tables.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every direction in action-index order.
var Directions = [4]Direction{North, South, East, West}

var directionNames = [4]string{"North", "South", "East", "West"}

// deltas holds the (row, col) offset of each direction.
var deltas = [4]CellPosition{
	North: {Row: -1, Col: 0},
	South: {Row: 1, Col: 0},
	East:  {Row: 0, Col: 1},
	West:  {Row: 0, Col: -1},
}

// String returns the direction name.
func (d Direction) String() string {
	if d < North || d > West {
		return "Unknown"
	}
	return directionNames[d]
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Step returns the position one move away from pos in direction d.
// The result may lie outside the grid.
func (d Direction) Step(pos CellPosition) CellPosition {
	delta := deltas[d]
	return CellPosition{Row: pos.Row + delta.Row, Col: pos.Col + delta.Col}
}
