/*
Package carver removes walls from a maze.Grid to turn it into a maze.

The main strategy replays two learned action-value tables: a walk from the
finish and a walk from the prize, each heading back to the start, followed
by floor(sqrt(rows*cols)) shorter dead-end walks from random cells. Every
walk ends at the start, so the carved maze is always valid.

Two policy-free strategies are also available: a pure random wall removal
that stops once the maze is valid, and Wilson's loop-erased random walk
which produces a perfect maze.

Policy walks stop only when they reach the start. Like training, a walk has
no step bound unless Options.MaxSteps is set.
*/
package carver

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/beka-birhanu/qmaze/maze"
	"github.com/beka-birhanu/qmaze/qlearn"
)

const (
	// PathRandomization is the exploration rate of the finish and prize walks.
	PathRandomization = 0.2
	// DeadEndRandomization is the exploration rate of the dead-end walks.
	DeadEndRandomization = 0.5
)

var (
	// ErrStepLimit is returned when a walk exceeds Options.MaxSteps.
	ErrStepLimit = errors.New("carving step limit exceeded")
	// ErrUnknownStrategy is returned by Carve for an unsupported strategy.
	ErrUnknownStrategy = errors.New("unknown carving strategy")
)

// Strategy names a carving algorithm.
type Strategy string

const (
	StrategyQTable Strategy = "qtable"
	StrategyRandom Strategy = "random"
	StrategyWilson Strategy = "wilson"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(name); s {
	case StrategyQTable, StrategyRandom, StrategyWilson:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Options configures a Carver.
type Options struct {
	// MaxSteps caps the action selections of a single walk, retries
	// included. Zero means unbounded.
	MaxSteps int
}

// Carver carves grids using an injected random source.
type Carver struct {
	rng      *rand.Rand
	opts     Options
	deadEnds int
}

// New creates a Carver. A nil opts means no step limit. opts is copied, so
// one Options value may be shared by carvers on different goroutines.
func New(rng *rand.Rand, opts *Options) *Carver {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.MaxSteps < 0 {
		o.MaxSteps = 0
	}
	return &Carver{rng: rng, opts: o}
}

// DeadEnds returns the number of dead-end walks run by the last CarveMaze.
func (c *Carver) DeadEnds() int {
	return c.deadEnds
}

// Carve runs strategy on g. The tables are only used by StrategyQTable.
func (c *Carver) Carve(g *maze.Grid, strategy Strategy, finishTable, prizeTable *qlearn.Table) error {
	switch strategy {
	case StrategyQTable:
		return c.CarveMaze(g, finishTable, prizeTable)
	case StrategyRandom:
		return c.CarveRandom(g)
	case StrategyWilson:
		return c.CarveWilson(g)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// CarveAlongPolicy walks from begin to the start of g, removing the wall in
// front of every step. Each step takes a random action with probability
// randomization and the table's greedy action otherwise; moves off the grid
// are retried from the same cell.
func (c *Carver) CarveAlongPolicy(g *maze.Grid, table *qlearn.Table, begin maze.CellPosition, randomization float64) error {
	if err := checkShape(g, table); err != nil {
		return err
	}
	if !g.InBounds(begin) {
		return fmt.Errorf("%w: %s", qlearn.ErrOutOfBounds, begin)
	}

	target := g.Start()
	current := begin
	steps := 0
	for current != target {
		if c.opts.MaxSteps > 0 && steps >= c.opts.MaxSteps {
			return fmt.Errorf("%w: walk from %s", ErrStepLimit, begin)
		}
		steps++

		action := table.SelectAction(c.rng, current, randomization)
		next, ok := g.Neighbor(current, action)
		if !ok {
			// invalid move
			continue
		}
		g.RemoveWall(current, action)
		current = next
	}
	return nil
}

// CarveMaze carves the finish walk and the prize walk, then adds the
// dead-end walks, alternating between the two tables.
func (c *Carver) CarveMaze(g *maze.Grid, finishTable, prizeTable *qlearn.Table) error {
	c.deadEnds = 0
	if err := checkShape(g, finishTable); err != nil {
		return err
	}
	if err := checkShape(g, prizeTable); err != nil {
		return err
	}

	if err := c.CarveAlongPolicy(g, finishTable, g.Finish(), PathRandomization); err != nil {
		return err
	}
	if err := c.CarveAlongPolicy(g, prizeTable, g.Prize(), PathRandomization); err != nil {
		return err
	}

	n := DeadEndCount(g.Rows(), g.Cols())
	for i := 0; i < n; i++ {
		begin, ok := c.deadEndCell(g)
		if !ok {
			break
		}
		table := finishTable
		if i%2 == 1 {
			table = prizeTable
		}
		if err := c.CarveAlongPolicy(g, table, begin, DeadEndRandomization); err != nil {
			return err
		}
		c.deadEnds++
	}
	return nil
}

// DeadEndCount returns floor(sqrt(rows*cols)).
func DeadEndCount(rows, cols int) int {
	return int(math.Sqrt(float64(rows * cols)))
}

// deadEndCell draws a random cell holding no role and at least one wall.
// It reports false when no such cell exists.
func (c *Carver) deadEndCell(g *maze.Grid) (maze.CellPosition, bool) {
	if !hasDeadEndCandidate(g) {
		return maze.CellPosition{}, false
	}
	for {
		pos := g.RandomCell(c.rng)
		if isDeadEndCandidate(g.Cell(pos)) {
			return pos, true
		}
	}
}

func isDeadEndCandidate(cell maze.Cell) bool {
	return cell.Role() == maze.RoleNone && cell.HasIntactWall()
}

func hasDeadEndCandidate(g *maze.Grid) bool {
	for r := 0; r < g.Rows(); r++ {
		for col := 0; col < g.Cols(); col++ {
			if isDeadEndCandidate(g.Cell(maze.CellPosition{Row: r, Col: col})) {
				return true
			}
		}
	}
	return false
}

// CarveRandom removes a random wall of a random cell until g is valid.
func (c *Carver) CarveRandom(g *maze.Grid) error {
	if !g.RolesPlaced() {
		return maze.ErrRolesNotPlaced
	}
	for !g.IsValid() {
		pos := g.RandomCell(c.rng)
		g.RemoveWall(pos, maze.Directions[c.rng.Intn(len(maze.Directions))])
	}
	return nil
}

func checkShape(g *maze.Grid, table *qlearn.Table) error {
	if table == nil {
		return errors.New("nil action-value table")
	}
	if g.Rows() != table.Rows() || g.Cols() != table.Cols() {
		return fmt.Errorf("%w: grid %dx%d, table %dx%d", qlearn.ErrShapeMismatch, g.Rows(), g.Cols(), table.Rows(), table.Cols())
	}
	if !g.RolesPlaced() {
		return maze.ErrRolesNotPlaced
	}
	return nil
}
