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

package reduce

import "github.com/ajroetker/tilereduce/hwy"

// Sum is the straight weighted-sum reduction: γ_i = Σ_j f(x_i,y_j)·b_j.
// DIMRED equals DIMVECT.
type Sum[T hwy.FloatsNative] struct{}

func (Sum[T]) Name() string { return "sum" }

func (Sum[T]) AccumDim(dimVect int) int { return dimVect }
func (Sum[T]) OutDim(dimVect int) int   { return dimVect }

// Initialize zeros the accumulator — the neutral element of addition.
func (Sum[T]) Initialize(acc []T) {
	for i := range acc {
		acc[i] = 0
	}
}

// Combine accumulates acc[d] += f * payload[d]. A nil payload is treated
// as the all-ones vector, so Combine(acc, f, nil) reduces to a plain sum
// of f across j.
func (Sum[T]) Combine(acc []T, f T, payload []T) {
	if payload == nil {
		for d := range acc {
			acc[d] += f
		}
		return
	}
	for d := range acc {
		acc[d] += f * payload[d]
	}
}

// CombineKahan is Combine with Kahan compensated summation: the
// compensation is folded into the term being added, not the running
// accumulator, so the common case (no cancellation) costs only two
// extra subtractions over the fast path.
func (Sum[T]) CombineKahan(acc, comp []T, f T, payload []T) {
	for d := range acc {
		var w T = 1
		if payload != nil {
			w = payload[d]
		}
		term := f*w - comp[d]
		sum := acc[d] + term
		comp[d] = (sum - acc[d]) - term
		acc[d] = sum
	}
}

// Merge folds a partial sum into dst elementwise; addition needs no
// more care here than Combine already takes.
func (Sum[T]) Merge(dst, src []T) {
	for d := range dst {
		dst[d] += src[d]
	}
}

// Finalize copies the accumulator to the output row verbatim.
func (Sum[T]) Finalize(acc []T, out []T) {
	copy(out, acc)
}
