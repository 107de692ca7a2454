package main

import (
	"fmt"
	"os"

	"github.com/beka-birhanu/qmaze/carver"
	"github.com/beka-birhanu/qmaze/config"
	logger "github.com/beka-birhanu/qmaze/infrastruture/log"
	"github.com/beka-birhanu/qmaze/qlearn"
	"github.com/beka-birhanu/qmaze/render"
	"github.com/beka-birhanu/qmaze/service"
	"github.com/spf13/cobra"
)

var (
	genRows     int
	genCols     int
	genSeed     int64
	genSamples  int
	genStrategy string
	genDraw     bool
	genSave     bool
	genOut      string
	genWorkers  int
	genEpisodes int
	genMaxSteps int
	genCellSize int

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a batch of mazes sharing one template",
		RunE:  runGenerate,
	}
)

func init() {
	flags := generateCmd.Flags()
	flags.IntVar(&genRows, "rows", 4, "number of rows")
	flags.IntVar(&genCols, "cols", 4, "number of columns")
	flags.Int64Var(&genSeed, "seed", 40, "random seed")
	flags.IntVar(&genSamples, "nsample", 10, "number of mazes to carve")
	flags.StringVar(&genStrategy, "strategy", string(carver.StrategyQTable), "carving strategy: qtable, random or wilson")
	flags.BoolVar(&genDraw, "draw", false, "print every maze")
	flags.BoolVar(&genSave, "save", false, "write every maze as a PNG image")
	flags.StringVar(&genOut, "out", "Mazes", "directory for saved images")
	flags.IntVar(&genWorkers, "workers", 4, "mazes carved concurrently")
	flags.IntVar(&genEpisodes, "episodes", qlearn.DefaultConfig().Episodes, "training episodes per policy")
	flags.IntVar(&genMaxSteps, "max-steps", 0, "step cap per episode and per walk, 0 for none")
	flags.IntVar(&genCellSize, "cell-size", render.DefaultCellSize, "cell side in pixels for saved images")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	genLogger, err := logger.New("GENERATOR", config.ColorBlue, os.Stderr)
	if err != nil {
		return err
	}

	strategy, err := carver.ParseStrategy(genStrategy)
	if err != nil {
		return err
	}

	learner := qlearn.DefaultConfig()
	learner.Episodes = genEpisodes
	learner.MaxSteps = genMaxSteps

	gen, err := service.NewGenerator(genLogger, &service.GeneratorOptions{
		Rows:     genRows,
		Cols:     genCols,
		Seed:     genSeed,
		Strategy: strategy,
		Learner:  learner,
		Carver:   carver.Options{MaxSteps: genMaxSteps},
		Workers:  genWorkers,
	})
	if err != nil {
		return err
	}

	samples, err := gen.Generate(cmd.Context(), genSamples)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, s := range samples {
		snapshot := s.Grid.Snapshot()

		if genDraw {
			fmt.Fprintf(out, "Maze %d\n", s.Index)
			if err := render.Text(out, snapshot); err != nil {
				return err
			}
		}

		if genSave {
			path := render.SamplePath(genOut, genRows, genCols, s.Index)
			if err := render.SavePNG(path, snapshot, genCellSize); err != nil {
				return err
			}
			genLogger.Info(fmt.Sprintf("Saved %s", path))
		}
	}

	genLogger.Info(fmt.Sprintf("Generated %d mazes", len(samples)))
	return nil
}
