package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/qmaze/carver"
	dmn "github.com/beka-birhanu/qmaze/domain"
	"github.com/beka-birhanu/qmaze/maze"
	"github.com/beka-birhanu/qmaze/qlearn"
	"github.com/beka-birhanu/qmaze/service/i"
	"github.com/google/uuid"
)

const (
	defaultPrefix     = "qmaze"
	defaultRefillSize = 10
	defaultMaxSide    = 50
	queueDimensionFmt = "%s:pool:%dx%d"
)

var (
	// ErrTooLarge is returned for requests beyond the configured maximum size.
	ErrTooLarge = errors.New("maze dimensions exceed the allowed maximum")
	// ErrPoolExhausted is returned when a refilled pool still yields nothing.
	ErrPoolExhausted = errors.New("maze pool is empty")
)

// PoolOptions configures a MazePool.
type PoolOptions struct {
	Prefix     string
	RefillSize int // mazes generated when Next finds the pool empty
	MaxRows    int
	MaxCols    int
	Workers    int
	Strategy   carver.Strategy
	Learner    qlearn.Config
	Carver     carver.Options
}

// MazePool stores generated mazes and keeps a queue of unserved maze IDs
// per grid size.
type MazePool struct {
	repo        i.MazeRepo
	sortedQueue i.SortedQueue
	logger      i.Logger
	opts        *PoolOptions
	now         func() time.Time
}

// NewMazePool creates a pool backed by repo and sortedQueue.
func NewMazePool(repo i.MazeRepo, sortedQueue i.SortedQueue, logger i.Logger, opts *PoolOptions) (*MazePool, error) {
	if repo == nil || sortedQueue == nil || logger == nil {
		return nil, errors.New("maze pool needs a repo, a sorted queue and a logger")
	}

	if opts == nil {
		opts = &PoolOptions{
			Prefix:     defaultPrefix,
			RefillSize: defaultRefillSize,
		}
	}
	o := *opts
	opts = &o

	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}

	if opts.RefillSize <= 0 {
		opts.RefillSize = defaultRefillSize
	}

	if opts.MaxRows <= 0 {
		opts.MaxRows = defaultMaxSide
	}

	if opts.MaxCols <= 0 {
		opts.MaxCols = defaultMaxSide
	}

	if opts.Strategy == "" {
		opts.Strategy = defaultStrategy
	}

	return &MazePool{
		repo:        repo,
		sortedQueue: sortedQueue,
		logger:      logger,
		opts:        opts,
		now:         time.Now,
	}, nil
}

// Generate carves, stores and queues a batch of mazes.
func (mp *MazePool) Generate(ctx context.Context, req i.GenerateRequest) ([]*dmn.Maze, error) {
	if err := mp.checkDimensions(req.Rows, req.Cols); err != nil {
		return nil, err
	}

	strategy := mp.opts.Strategy
	if req.Strategy != "" {
		s, err := carver.ParseStrategy(req.Strategy)
		if err != nil {
			return nil, err
		}
		strategy = s
	}

	if req.Count <= 0 {
		req.Count = mp.opts.RefillSize
	}

	if req.Seed == 0 {
		req.Seed = mp.now().UnixNano()
	}

	gen, err := NewGenerator(mp.logger, &GeneratorOptions{
		Rows:     req.Rows,
		Cols:     req.Cols,
		Seed:     req.Seed,
		Strategy: strategy,
		Learner:  mp.opts.Learner,
		Carver:   mp.opts.Carver,
		Workers:  mp.opts.Workers,
	})
	if err != nil {
		return nil, err
	}

	samples, err := gen.Generate(ctx, req.Count)
	if err != nil {
		mp.logger.Error(fmt.Sprintf("Generating %dx%d batch: %s", req.Rows, req.Cols, err))
		return nil, err
	}

	key := mp.queueKey(req.Rows, req.Cols)
	base := mp.now().UnixMicro()
	mazes := make([]*dmn.Maze, 0, len(samples))
	for _, sample := range samples {
		m, err := dmn.NewMaze(dmn.MazeConfig{
			ID:       uuid.New(),
			Seed:     req.Seed,
			Index:    sample.Index,
			Strategy: string(strategy),
			Grid:     sample.Grid,
		})
		if err != nil {
			return nil, err
		}

		if err := mp.repo.Save(m); err != nil {
			mp.logger.Error(fmt.Sprintf("Failed to save maze %s: %s", m.ID, err))
			return nil, err
		}

		score := float64(base + int64(sample.Index))
		if err := mp.sortedQueue.Enqueue(ctx, key, score, m.ID.String()); err != nil {
			mp.logger.Error(fmt.Sprintf("Failed to enqueue maze %s: %s", m.ID, err))
			return nil, err
		}
		mazes = append(mazes, m)
	}

	mp.logger.Info(fmt.Sprintf("Pooled %d mazes under %s", len(mazes), key))
	return mazes, nil
}

// Next pops the oldest queued maze of the given size. An empty pool is
// refilled with PoolOptions.RefillSize fresh mazes first.
func (mp *MazePool) Next(ctx context.Context, rows, cols int) (*dmn.Maze, error) {
	if err := mp.checkDimensions(rows, cols); err != nil {
		return nil, err
	}

	key := mp.queueKey(rows, cols)
	ids, err := mp.sortedQueue.Dequeue(ctx, key, 1)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		mp.logger.Info(fmt.Sprintf("Pool %s is empty, refilling", key))
		poolRefills.Inc()
		if _, err := mp.Generate(ctx, i.GenerateRequest{Rows: rows, Cols: cols}); err != nil {
			return nil, err
		}
		if ids, err = mp.sortedQueue.Dequeue(ctx, key, 1); err != nil {
			return nil, err
		}
	}

	if len(ids) == 0 {
		return nil, ErrPoolExhausted
	}

	id, err := uuid.Parse(ids[0])
	if err != nil {
		mp.logger.Warning(fmt.Sprintf("Non-UUID value in queue: %s", ids[0]))
		return nil, err
	}
	return mp.repo.ByID(id)
}

// ByID returns a stored maze.
func (mp *MazePool) ByID(_ context.Context, id uuid.UUID) (*dmn.Maze, error) {
	return mp.repo.ByID(id)
}

// Pending returns the number of queued mazes of the given size.
func (mp *MazePool) Pending(ctx context.Context, rows, cols int) (int64, error) {
	return mp.sortedQueue.Count(ctx, mp.queueKey(rows, cols))
}

func (mp *MazePool) checkDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", maze.ErrInvalidDimension, rows, cols)
	}
	if rows > mp.opts.MaxRows || cols > mp.opts.MaxCols {
		return fmt.Errorf("%w: %dx%d, max %dx%d", ErrTooLarge, rows, cols, mp.opts.MaxRows, mp.opts.MaxCols)
	}
	return nil
}

func (mp *MazePool) queueKey(rows, cols int) string {
	return fmt.Sprintf(queueDimensionFmt, mp.opts.Prefix, rows, cols)
}
