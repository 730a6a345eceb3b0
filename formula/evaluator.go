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

// Package formula provides the device-callable scalar evaluator
// f(x_i, y_j, params) supplied by the (out-of-scope) symbolic-formula
// front end. This package is the minimal stand-in needed to exercise
// the engine end to end: a handful of plain, pure functions — no
// expression templates, no code generation.
package formula

import (
	"math"

	"github.com/ajroetker/tilereduce/hwy"
)

// Evaluator computes the scalar formula value f(x_i, y_j, params) for
// one (i,j) pair. It must be pure and stateless so that
// kernel.Tile1D/Tile2D can call it concurrently from any block goroutine
// without synchronization. xi and yj each have length DIMPOINT.
type Evaluator[T hwy.FloatsNative] func(xi, yj, params []T) T

// Constant returns an evaluator that ignores its inputs and always
// yields c. Useful for an unweighted counting reduction.
func Constant[T hwy.FloatsNative](c T) Evaluator[T] {
	return func(_, _, _ []T) T { return c }
}

// Linear returns the plain dot product x_i · y_j, ignoring params.
func Linear[T hwy.FloatsNative]() Evaluator[T] {
	return func(xi, yj, _ []T) T {
		return Dot(xi, yj)
	}
}

// GaussianRadial returns the radial kernel exp(-params[0] * ||x_i-y_j||²).
// params[0] is the inverse squared bandwidth, broadcast to every (i,j)
// pair.
func GaussianRadial[T hwy.FloatsNative]() Evaluator[T] {
	return func(xi, yj, params []T) T {
		d2 := SquaredDistance(xi, yj)
		return T(math.Exp(-float64(params[0]) * float64(d2)))
	}
}

// Dot computes the dot product of two equal-length vectors, using 4-way
// accumulator unrolling for instruction-level parallelism. DIMPOINT never
// exceeds 3 in practice, so this stays scalar rather than reaching for a
// SIMD lane.
func Dot[T hwy.FloatsNative](a, b []T) T {
	n := min(len(a), len(b))
	var s0, s1, s2, s3 T
	i := 0
	for ; i+4 <= n; i += 4 {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}
	sum := s0 + s1 + s2 + s3
	for ; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// SquaredDistance computes Σ(a[i]-b[i])², the squared Euclidean distance
// between two points, using the same four-accumulator unrolling as Dot.
func SquaredDistance[T hwy.FloatsNative](a, b []T) T {
	n := min(len(a), len(b))
	var s0, s1, s2, s3 T
	i := 0
	for ; i+4 <= n; i += 4 {
		d0 := a[i] - b[i]
		d1 := a[i+1] - b[i+1]
		d2 := a[i+2] - b[i+2]
		d3 := a[i+3] - b[i+3]
		s0 += d0 * d0
		s1 += d1 * d1
		s2 += d2 * d2
		s3 += d3 * d3
	}
	sum := s0 + s1 + s2 + s3
	for ; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
