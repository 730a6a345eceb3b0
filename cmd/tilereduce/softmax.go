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
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ajroetker/tilereduce/formula"
	"github.com/ajroetker/tilereduce/launch"
	"github.com/ajroetker/tilereduce/reduce"
)

var softmaxTemperature float64

var softmaxCmd = &cobra.Command{
	Use:   "softmax",
	Short: "Run a numerically-stable log-sum-exp reduction",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		rng := rand.New(rand.NewSource(seed))

		x := randomPoints(rng, nx, dimPoint)
		y := randomPoints(rng, ny, dimPoint)
		out := make([][]float64, nx)
		for i := range out {
			out[i] = make([]float64, 2)
		}

		cfg := launch.Config{Scheme: parseScheme(scheme), BlockSize: blockSize, Kahan: kahan}
		desc := reduce.MaxShiftedExp[float64]{}
		dot := formula.Linear[float64]()
		eval := formula.Evaluator[float64](func(xi, yj, params []float64) float64 {
			return dot(xi, yj, params) / softmaxTemperature
		})

		timed("softmax", func() {
			status := launch.Evaluate(desc, eval, x, y, nil, nil, out, cfg)
			if status != launch.StatusOK {
				logrus.Fatalf("evaluate failed: %s", status)
			}
		})

		m, s := out[0][0], out[0][1]
		logrus.Infof("logsumexp[0] = %v", m+math.Log(s))
	},
}

func init() {
	softmaxCmd.Flags().Float64Var(&softmaxTemperature, "temperature", 1.0, "softmax temperature divisor")
}
