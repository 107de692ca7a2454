package qlearn

import (
	"math"
	"math/rand"

	"github.com/beka-birhanu/qmaze/maze"
)

const actionCount = len(maze.Directions)

// Table is a dense action-value table indexed by (row, col, action), with
// actions in maze.Directions order.
type Table struct {
	rows int
	cols int
	data []float64
}

// NewTable returns a zeroed table for a rows x cols grid.
func NewTable(rows, cols int) *Table {
	return &Table{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols*actionCount),
	}
}

// Rows returns the number of grid rows covered by the table.
func (t *Table) Rows() int { return t.rows }

// Cols returns the number of grid columns covered by the table.
func (t *Table) Cols() int { return t.cols }

func (t *Table) index(pos maze.CellPosition, action maze.Direction) int {
	return (pos.Row*t.cols+pos.Col)*actionCount + int(action)
}

// Get returns the value of taking action at pos.
func (t *Table) Get(pos maze.CellPosition, action maze.Direction) float64 {
	return t.data[t.index(pos, action)]
}

// Set stores the value of taking action at pos.
func (t *Table) Set(pos maze.CellPosition, action maze.Direction, value float64) {
	t.data[t.index(pos, action)] = value
}

// Values returns the four action values at pos.
func (t *Table) Values(pos maze.CellPosition) [actionCount]float64 {
	var values [actionCount]float64
	base := t.index(pos, maze.North)
	copy(values[:], t.data[base:base+actionCount])
	return values
}

// MaxValue returns the largest action value at pos.
func (t *Table) MaxValue(pos maze.CellPosition) float64 {
	base := t.index(pos, maze.North)
	max := t.data[base]
	for a := 1; a < actionCount; a++ {
		if t.data[base+a] > max {
			max = t.data[base+a]
		}
	}
	return max
}

// Greedy returns the action with the highest value at pos. Ties are broken
// uniformly at random among every tied action.
func (t *Table) Greedy(rng *rand.Rand, pos maze.CellPosition) maze.Direction {
	values := t.Values(pos)
	best := math.Inf(-1)
	tied := make([]maze.Direction, 0, actionCount)
	for _, action := range maze.Directions {
		v := values[action]
		if v > best {
			best = v
			tied = tied[:0]
			tied = append(tied, action)
		} else if v == best {
			tied = append(tied, action)
		}
	}
	return tied[rng.Intn(len(tied))]
}

// SelectAction picks a uniformly random action with probability epsilon and
// the greedy action otherwise.
func (t *Table) SelectAction(rng *rand.Rand, pos maze.CellPosition, epsilon float64) maze.Direction {
	if rng.Float64() < epsilon {
		return maze.Directions[rng.Intn(actionCount)]
	}
	return t.Greedy(rng, pos)
}

// StateValues returns the best action value of every cell.
func (t *Table) StateValues() [][]float64 {
	values := make([][]float64, t.rows)
	for r := 0; r < t.rows; r++ {
		values[r] = make([]float64, t.cols)
		for c := 0; c < t.cols; c++ {
			values[r][c] = t.MaxValue(maze.CellPosition{Row: r, Col: c})
		}
	}
	return values
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Table{rows: t.rows, cols: t.cols, data: data}
}

// Equal reports whether both tables have the same shape and bit-identical values.
func (t *Table) Equal(other *Table) bool {
	if other == nil || t.rows != other.rows || t.cols != other.cols {
		return false
	}
	for i := range t.data {
		if math.Float64bits(t.data[i]) != math.Float64bits(other.data[i]) {
			return false
		}
	}
	return true
}
