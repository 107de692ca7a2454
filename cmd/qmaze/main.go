// Command qmaze generates mazes shaped by learned policies, serves them over
// HTTP and issues the tokens that guard the generating endpoints.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qmaze",
	Short: "Generate mazes carved along Q-learning policies",
	Long: `qmaze learns how to walk from the finish and from the prize back to
the start of a grid, then carves mazes by replaying those walks with some
randomness. Every generated maze connects the start to both the finish
and the prize.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(generateCmd, serveCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
