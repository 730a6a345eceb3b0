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

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare the 1D and 2D tile schemes on the same synthetic input",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		rng := rand.New(rand.NewSource(seed))

		x := randomPoints(rng, nx, dimPoint)
		y := randomPoints(rng, ny, dimPoint)

		desc := reduce.Sum[float64]{}
		eval := formula.GaussianRadial[float64]()
		params := []float64{1.0}

		out1D := make([][]float64, nx)
		out2D := make([][]float64, nx)
		for i := range out1D {
			out1D[i] = make([]float64, 1)
			out2D[i] = make([]float64, 1)
		}

		d1 := timed("1d", func() {
			status := launch.Evaluate(desc, eval, x, y, nil, params, out1D, launch.Config{Scheme: launch.Scheme1D})
			if status != launch.StatusOK {
				logrus.Fatalf("1d evaluate failed: %s", status)
			}
		})
		d2 := timed("2d", func() {
			status := launch.Evaluate(desc, eval, x, y, nil, params, out2D, launch.Config{Scheme: launch.Scheme2D, BlockSize: blockSize})
			if status != launch.StatusOK {
				logrus.Fatalf("2d evaluate failed: %s", status)
			}
		})

		logrus.Infof("1d=%s 2d=%s speedup=%.2fx", d1, d2, float64(d1)/float64(d2))
	},
}
