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

package main

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ajroetker/tilereduce/formula"
	"github.com/ajroetker/tilereduce/launch"
	"github.com/ajroetker/tilereduce/reduce"
)

var gaussianBandwidth float64

var sumCmd = &cobra.Command{
	Use:   "sum",
	Short: "Run a Gaussian-kernel weighted-sum reduction",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		rng := rand.New(rand.NewSource(seed))

		x := randomPoints(rng, nx, dimPoint)
		y := randomPoints(rng, ny, dimPoint)
		out := make([][]float64, nx)
		for i := range out {
			out[i] = make([]float64, 1)
		}

		cfg := launch.Config{Scheme: parseScheme(scheme), BlockSize: blockSize, Kahan: kahan}
		desc := reduce.Sum[float64]{}
		eval := formula.GaussianRadial[float64]()
		params := []float64{gaussianBandwidth}

		timed("sum", func() {
			status := launch.Evaluate(desc, eval, x, y, nil, params, out, cfg)
			if status != launch.StatusOK {
				logrus.Fatalf("evaluate failed: %s", status)
			}
		})

		logrus.Infof("gamma[0] = %v", out[0][0])
	},
}

func init() {
	sumCmd.Flags().Float64Var(&gaussianBandwidth, "gamma", 1.0, "inverse squared bandwidth")
}

func parseScheme(s string) launch.Scheme {
	if s == "1d" {
		return launch.Scheme1D
	}
	return launch.Scheme2D
}
