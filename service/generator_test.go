package service

import (
	"context"
	"testing"

	"github.com/beka-birhanu/qmaze/carver"
	"github.com/beka-birhanu/qmaze/maze"
	"github.com/beka-birhanu/qmaze/qlearn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallLearner() qlearn.Config {
	cfg := qlearn.DefaultConfig()
	cfg.Episodes = 200
	return cfg
}

func TestNewGenerator(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		gen, err := NewGenerator(nopLogger{}, &GeneratorOptions{Learner: smallLearner()})
		require.NoError(t, err)

		opts := gen.Options()
		assert.Equal(t, defaultRows, opts.Rows)
		assert.Equal(t, defaultCols, opts.Cols)
		assert.Equal(t, carver.StrategyQTable, opts.Strategy)
		assert.Equal(t, defaultWorkers, opts.Workers)

		finish, prize := gen.Tables()
		assert.NotNil(t, finish)
		assert.NotNil(t, prize)
		assert.True(t, gen.Template().RolesPlaced())
	})

	t.Run("policy-free strategies skip training", func(t *testing.T) {
		gen, err := NewGenerator(nopLogger{}, &GeneratorOptions{Rows: 3, Cols: 3, Strategy: carver.StrategyWilson})
		require.NoError(t, err)
		finish, prize := gen.Tables()
		assert.Nil(t, finish)
		assert.Nil(t, prize)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := NewGenerator(nopLogger{}, &GeneratorOptions{Strategy: "spiral"})
		assert.ErrorIs(t, err, carver.ErrUnknownStrategy)
	})

	t.Run("grid too small for roles", func(t *testing.T) {
		_, err := NewGenerator(nopLogger{}, &GeneratorOptions{Rows: 1, Cols: 2})
		assert.ErrorIs(t, err, maze.ErrInvalidDimension)
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewGenerator(nil, nil)
		assert.Error(t, err)
	})
}

func TestGenerate(t *testing.T) {
	opts := func(workers int) *GeneratorOptions {
		return &GeneratorOptions{Rows: 4, Cols: 4, Seed: 40, Learner: smallLearner(), Workers: workers}
	}

	gen, err := NewGenerator(nopLogger{}, opts(4))
	require.NoError(t, err)
	template := gen.Template()

	samples, err := gen.Generate(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, samples, 10)

	t.Run("every sample is valid", func(t *testing.T) {
		for idx, s := range samples {
			assert.Equal(t, idx, s.Index)
			assert.True(t, s.Grid.IsValid(), "sample %d", idx)
			assert.Equal(t, template.Start(), s.Grid.Start())
			assert.Equal(t, template.Finish(), s.Grid.Finish())
			assert.Equal(t, template.Prize(), s.Grid.Prize())
			assert.Equal(t, carver.DeadEndCount(4, 4), s.DeadEnds)
		}
	})

	t.Run("template is untouched", func(t *testing.T) {
		assert.Equal(t, template.Snapshot(), gen.Template().Snapshot())
		assert.False(t, gen.Template().IsValid())
	})

	t.Run("same seed gives same batch regardless of workers", func(t *testing.T) {
		other, err := NewGenerator(nopLogger{}, opts(1))
		require.NoError(t, err)
		again, err := other.Generate(context.Background(), 10)
		require.NoError(t, err)

		for idx := range samples {
			assert.Equal(t, samples[idx].Grid.Snapshot(), again[idx].Grid.Snapshot(), "sample %d", idx)
		}
	})

	t.Run("sample matches its batch entry", func(t *testing.T) {
		s, err := gen.Sample(3)
		require.NoError(t, err)
		assert.Equal(t, samples[3].Grid.Snapshot(), s.Grid.Snapshot())
	})

	t.Run("zero samples", func(t *testing.T) {
		none, err := gen.Generate(context.Background(), 0)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("negative count", func(t *testing.T) {
		_, err := gen.Generate(context.Background(), -1)
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := gen.Generate(ctx, 5)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGenerateStrategies(t *testing.T) {
	for _, strategy := range []carver.Strategy{carver.StrategyRandom, carver.StrategyWilson} {
		t.Run(string(strategy), func(t *testing.T) {
			gen, err := NewGenerator(nopLogger{}, &GeneratorOptions{Rows: 5, Cols: 5, Seed: 7, Strategy: strategy})
			require.NoError(t, err)

			samples, err := gen.Generate(context.Background(), 4)
			require.NoError(t, err)
			for _, s := range samples {
				assert.True(t, s.Grid.IsValid())
			}
		})
	}
}

func TestSampleSeed(t *testing.T) {
	assert.Equal(t, sampleSeed(40, 0), sampleSeed(40, 0))
	assert.NotEqual(t, sampleSeed(40, 0), sampleSeed(40, 1))
	assert.NotEqual(t, sampleSeed(40, 1), sampleSeed(41, 0))
}

// Run with -race: every worker builds its carver from the same options.
func TestGenerateSharesCarverOptions(t *testing.T) {
	opts := &GeneratorOptions{
		Rows:     4,
		Cols:     4,
		Seed:     3,
		Strategy: carver.StrategyWilson,
		Carver:   carver.Options{MaxSteps: -1},
		Workers:  8,
	}
	gen, err := NewGenerator(nopLogger{}, opts)
	require.NoError(t, err)

	samples, err := gen.Generate(context.Background(), 64)
	require.NoError(t, err)
	for _, s := range samples {
		assert.True(t, s.Grid.IsValid())
	}

	assert.Equal(t, 0, gen.Options().Carver.MaxSteps)
	assert.Equal(t, -1, opts.Carver.MaxSteps)
}

func TestNewGeneratorLeavesOptionsAlone(t *testing.T) {
	opts := &GeneratorOptions{Rows: 3, Cols: 3, Strategy: carver.StrategyRandom}
	gen, err := NewGenerator(nopLogger{}, opts)
	require.NoError(t, err)

	assert.Equal(t, GeneratorOptions{Rows: 3, Cols: 3, Strategy: carver.StrategyRandom}, *opts)
	assert.Equal(t, defaultWorkers, gen.Options().Workers)
	assert.Equal(t, qlearn.DefaultConfig(), gen.Options().Learner)
}
