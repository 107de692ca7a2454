// Package qlearn learns the action-value tables that shape carved mazes.
//
// Training treats the grid as fully open: every cell is adjacent to its four
// grid neighbors regardless of walls, since learning happens before any wall
// is carved. Moves off the grid are retried at the same cell without an
// update. An episode only ends when the goal is reached, so with the default
// configuration a run has no step bound; set Config.MaxSteps to cap it.
package qlearn

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/beka-birhanu/qmaze/maze"
)

const (
	defaultAlpha    = 0.1
	defaultGamma    = 0.9
	defaultEpsilon  = 0.3
	defaultEpisodes = 2000

	goalReward  = 1.0
	avoidReward = -1.0
)

var (
	// ErrStepLimit is returned when an episode exceeds Config.MaxSteps.
	ErrStepLimit = errors.New("episode step limit exceeded")
	// ErrOutOfBounds is returned when a training cell lies outside the grid.
	ErrOutOfBounds = errors.New("cell is outside the grid")
	// ErrShapeMismatch is returned when a grid and a learner or table differ in size.
	ErrShapeMismatch = errors.New("grid and table shapes differ")
)

// Config holds the learner hyperparameters.
type Config struct {
	Alpha    float64 // learning rate
	Gamma    float64 // discount factor
	Epsilon  float64 // exploration rate
	Episodes int     // episodes per Train call
	// MaxSteps caps the action selections of a single episode, retries
	// included. Zero means unbounded.
	MaxSteps int
}

// DefaultConfig returns alpha 0.1, gamma 0.9, epsilon 0.3 and 2000 episodes.
func DefaultConfig() Config {
	return Config{
		Alpha:    defaultAlpha,
		Gamma:    defaultGamma,
		Epsilon:  defaultEpsilon,
		Episodes: defaultEpisodes,
	}
}

// Learner runs tabular Q-learning over a rows x cols state space.
type Learner struct {
	cfg  Config
	rows int
	cols int
	rng  *rand.Rand
}

// NewLearner creates a learner for a rows x cols grid. Out of range
// hyperparameters are replaced by their defaults.
func NewLearner(rows, cols int, cfg Config, rng *rand.Rand) (*Learner, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", maze.ErrInvalidDimension, rows, cols)
	}
	if rng == nil {
		return nil, errors.New("nil random source")
	}

	if cfg.Alpha <= 0 || cfg.Alpha > 1 {
		cfg.Alpha = defaultAlpha
	}
	if cfg.Gamma < 0 || cfg.Gamma > 1 {
		cfg.Gamma = defaultGamma
	}
	if cfg.Epsilon < 0 || cfg.Epsilon > 1 {
		cfg.Epsilon = defaultEpsilon
	}
	if cfg.Episodes <= 0 {
		cfg.Episodes = defaultEpisodes
	}
	if cfg.MaxSteps < 0 {
		cfg.MaxSteps = 0
	}

	return &Learner{cfg: cfg, rows: rows, cols: cols, rng: rng}, nil
}

// Config returns the sanitised configuration in use.
func (l *Learner) Config() Config {
	return l.cfg
}

func (l *Learner) inBounds(pos maze.CellPosition) bool {
	return pos.Row >= 0 && pos.Row < l.rows && pos.Col >= 0 && pos.Col < l.cols
}

// Train learns, over Config.Episodes episodes starting at start, a table
// whose greedy policy heads for goal while staying clear of avoid. Every call
// starts from a fresh zeroed table.
func (l *Learner) Train(start, goal, avoid maze.CellPosition) (*Table, error) {
	for _, pos := range []maze.CellPosition{start, goal, avoid} {
		if !l.inBounds(pos) {
			return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
		}
	}

	table := NewTable(l.rows, l.cols)
	for episode := 0; episode < l.cfg.Episodes; episode++ {
		if err := l.runEpisode(table, start, goal, avoid); err != nil {
			return nil, fmt.Errorf("episode %d: %w", episode, err)
		}
	}
	return table, nil
}

func (l *Learner) runEpisode(table *Table, start, goal, avoid maze.CellPosition) error {
	current := start
	steps := 0
	for current != goal {
		if l.cfg.MaxSteps > 0 && steps >= l.cfg.MaxSteps {
			return ErrStepLimit
		}
		steps++

		action := table.SelectAction(l.rng, current, l.cfg.Epsilon)
		next := action.Step(current)
		if !l.inBounds(next) {
			// invalid move
			continue
		}

		reward := 0.0
		if next == goal {
			reward = goalReward
		}
		if next == avoid {
			reward = avoidReward
		}

		old := table.Get(current, action)
		target := reward + l.cfg.Gamma*table.MaxValue(next)
		table.Set(current, action, (1-l.cfg.Alpha)*old+l.cfg.Alpha*target)

		current = next
	}
	return nil
}

// TrainFinishPolicy learns the way back to the start from the finish,
// avoiding the prize.
func (l *Learner) TrainFinishPolicy(g *maze.Grid) (*Table, error) {
	if err := l.checkGrid(g); err != nil {
		return nil, err
	}
	return l.Train(g.Finish(), g.Start(), g.Prize())
}

// TrainPrizePolicy learns the way back to the start from the prize,
// avoiding the finish.
func (l *Learner) TrainPrizePolicy(g *maze.Grid) (*Table, error) {
	if err := l.checkGrid(g); err != nil {
		return nil, err
	}
	return l.Train(g.Prize(), g.Start(), g.Finish())
}

func (l *Learner) checkGrid(g *maze.Grid) error {
	if g.Rows() != l.rows || g.Cols() != l.cols {
		return fmt.Errorf("%w: grid %dx%d, learner %dx%d", ErrShapeMismatch, g.Rows(), g.Cols(), l.rows, l.cols)
	}
	if !g.RolesPlaced() {
		return maze.ErrRolesNotPlaced
	}
	return nil
}
