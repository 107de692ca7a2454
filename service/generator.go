package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/qmaze/carver"
	"github.com/beka-birhanu/qmaze/maze"
	"github.com/beka-birhanu/qmaze/qlearn"
	"github.com/beka-birhanu/qmaze/service/i"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRows     = 4
	defaultCols     = 4
	defaultSeed     = 40
	defaultWorkers  = 4
	defaultStrategy = carver.StrategyQTable

	// golden ratio increment, spreads sample seeds apart
	sampleSeedStep = 0x9E3779B97F4A7C15
)

var (
	// ErrInvalidMaze is returned when a carved sample fails the validity check.
	ErrInvalidMaze = errors.New("carved maze is not valid")
)

// GeneratorOptions configures a Generator.
type GeneratorOptions struct {
	Rows     int
	Cols     int
	Seed     int64
	Strategy carver.Strategy
	Learner  qlearn.Config
	Carver   carver.Options
	Workers  int // samples carved concurrently
}

// Sample is one carved maze of a batch.
type Sample struct {
	Index    int
	Grid     *maze.Grid
	DeadEnds int
}

// Generator owns a template grid with placed roles and, for the qtable
// strategy, the two tables learned on it. Samples carve clones of the
// template, each with its own random source derived from the seed and the
// sample index, so a batch is reproducible regardless of worker count.
type Generator struct {
	logger      i.Logger
	opts        *GeneratorOptions
	template    *maze.Grid
	finishTable *qlearn.Table
	prizeTable  *qlearn.Table
}

// NewGenerator places the roles on a fresh template and trains the tables.
// Training is CPU bound and runs to completion before it returns.
func NewGenerator(logger i.Logger, opts *GeneratorOptions) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("nil logger")
	}
	if opts == nil {
		opts = &GeneratorOptions{
			Rows: defaultRows,
			Cols: defaultCols,
			Seed: defaultSeed,
		}
	}
	// defaults go into a copy, the caller's options stay untouched
	o := *opts
	opts = &o

	if opts.Rows == 0 {
		opts.Rows = defaultRows
	}

	if opts.Cols == 0 {
		opts.Cols = defaultCols
	}

	if opts.Strategy == "" {
		opts.Strategy = defaultStrategy
	}

	if opts.Learner == (qlearn.Config{}) {
		opts.Learner = qlearn.DefaultConfig()
	}

	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}

	if opts.Carver.MaxSteps < 0 {
		opts.Carver.MaxSteps = 0
	}

	if _, err := carver.ParseStrategy(string(opts.Strategy)); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	template, err := maze.New(opts.Rows, opts.Cols)
	if err != nil {
		return nil, err
	}
	if err := template.PlaceRoles(rng); err != nil {
		return nil, err
	}

	gen := &Generator{
		logger:   logger,
		opts:     opts,
		template: template,
	}
	logger.Info(fmt.Sprintf("Template %dx%d: start=%s finish=%s prize=%s",
		opts.Rows, opts.Cols, template.Start(), template.Finish(), template.Prize()))

	if opts.Strategy != carver.StrategyQTable {
		return gen, nil
	}

	learner, err := qlearn.NewLearner(opts.Rows, opts.Cols, opts.Learner, rng)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	gen.finishTable, err = learner.TrainFinishPolicy(template)
	if err != nil {
		logger.Error(fmt.Sprintf("Training finish policy: %s", err))
		return nil, fmt.Errorf("training finish policy: %w", err)
	}
	trainingDuration.WithLabelValues("finish").Observe(time.Since(started).Seconds())

	started = time.Now()
	gen.prizeTable, err = learner.TrainPrizePolicy(template)
	if err != nil {
		logger.Error(fmt.Sprintf("Training prize policy: %s", err))
		return nil, fmt.Errorf("training prize policy: %w", err)
	}
	trainingDuration.WithLabelValues("prize").Observe(time.Since(started).Seconds())

	logger.Info(fmt.Sprintf("Trained both policies over %d episodes each", learner.Config().Episodes))
	return gen, nil
}

// Options returns the options in use, defaults filled in.
func (gen *Generator) Options() GeneratorOptions {
	return *gen.opts
}

// Template returns a copy of the template grid.
func (gen *Generator) Template() *maze.Grid {
	return gen.template.Clone()
}

// Tables returns the learned finish and prize tables, nil for policy-free
// strategies.
func (gen *Generator) Tables() (finish, prize *qlearn.Table) {
	return gen.finishTable, gen.prizeTable
}

// Sample carves sample number index.
func (gen *Generator) Sample(index int) (*Sample, error) {
	strategy := string(gen.opts.Strategy)
	grid := gen.template.Clone()
	c := carver.New(rand.New(rand.NewSource(sampleSeed(gen.opts.Seed, index))), &gen.opts.Carver)

	started := time.Now()
	if err := c.Carve(grid, gen.opts.Strategy, gen.finishTable, gen.prizeTable); err != nil {
		samplesTotal.WithLabelValues(strategy, outcomeError).Inc()
		return nil, fmt.Errorf("sample %d: %w", index, err)
	}
	carveDuration.WithLabelValues(strategy).Observe(time.Since(started).Seconds())

	if !grid.IsValid() {
		samplesTotal.WithLabelValues(strategy, outcomeInvalid).Inc()
		gen.logger.Error(fmt.Sprintf("Sample %d is not valid", index))
		return nil, fmt.Errorf("%w: sample %d", ErrInvalidMaze, index)
	}
	samplesTotal.WithLabelValues(strategy, outcomeValid).Inc()

	return &Sample{Index: index, Grid: grid, DeadEnds: c.DeadEnds()}, nil
}

// Generate carves n samples on up to Options.Workers goroutines and returns
// them in index order. The first failure cancels the remaining samples.
func (gen *Generator) Generate(ctx context.Context, n int) ([]*Sample, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative sample count %d", n)
	}

	samples := make([]*Sample, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(gen.opts.Workers)

	for idx := 0; idx < n; idx++ {
		idx := idx
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sample, err := gen.Sample(idx)
			if err != nil {
				return err
			}
			samples[idx] = sample
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	gen.logger.Info(fmt.Sprintf("Carved %d %dx%d samples with strategy %s", n, gen.opts.Rows, gen.opts.Cols, gen.opts.Strategy))
	return samples, nil
}

func sampleSeed(seed int64, index int) int64 {
	return int64(uint64(seed) ^ (uint64(index+1) * sampleSeedStep))
}
