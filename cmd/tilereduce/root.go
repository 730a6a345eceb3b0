// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command tilereduce drives the tile-reduction engine from the command
// line: it generates a synthetic point cloud pair, runs the requested
// reduction, and reports the result (or, for bench, the wall-clock cost
// of the two tile schemes). It exists to give the engine an exercised,
// end-to-end caller.
package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	nx        int
	ny        int
	dimPoint  int
	blockSize int
	scheme    string
	kahan     bool
	logLevel  string
	seed      int64
)

var rootCmd = &cobra.Command{
	Use:   "tilereduce",
	Short: "Block-tiled reductions over point-cloud kernel formulas",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&nx, "nx", 1000, "number of query points (rows of X)")
	rootCmd.PersistentFlags().IntVar(&ny, "ny", 1000, "number of reference points (rows of Y)")
	rootCmd.PersistentFlags().IntVar(&dimPoint, "dim", 3, "point dimension (DIMPOINT)")
	rootCmd.PersistentFlags().IntVar(&blockSize, "block-size", 32, "tile width for the 2D scheme")
	rootCmd.PersistentFlags().StringVar(&scheme, "scheme", "2d", "tile scheme: 1d or 2d")
	rootCmd.PersistentFlags().BoolVar(&kahan, "kahan", false, "use Kahan-compensated summation")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "random seed for the synthetic point cloud")

	rootCmd.AddCommand(sumCmd, softmaxCmd, benchCmd)
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level %q: %v", logLevel, err)
	}
	logrus.SetLevel(level)
}

func randomPoints(rng *rand.Rand, n, dim int) [][]float64 {
	pts := make([][]float64, n)
	for i := range pts {
		row := make([]float64, dim)
		for d := range row {
			row[d] = rng.Float64()*2 - 1
		}
		pts[i] = row
	}
	return pts
}

func timed(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	logrus.Infof("%s took %s", name, elapsed)
	return elapsed
}
