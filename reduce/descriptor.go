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

// Package reduce implements the reduction descriptors: the neutral
// element, the pairwise combine (with an optional Kahan
// variant), and the finalize step that writes an accumulator to an
// output row. A descriptor is deliberately data-only and side-effect
// free so that kernel.Tile1D/Tile2D can call it from any worker-pool
// goroutine without synchronization.
package reduce

import "github.com/ajroetker/tilereduce/hwy"

// Descriptor describes one reduction family over scalar precision T.
//
// DIMRED (the accumulator width) cannot be a Go type parameter — Go has
// no array types whose length depends on a generic argument the way a
// C++ template does — so AccumDim/OutDim report it at runtime from the
// payload width DIMVECT, and every method below operates on slices
// rather than fixed-size arrays.
type Descriptor[T hwy.FloatsNative] interface {
	// Name identifies the reduction family for logging/dispatch.
	Name() string

	// AccumDim returns DIMRED for the given payload width DIMVECT.
	AccumDim(dimVect int) int

	// OutDim returns DIMOUT (the per-row output width) for DIMVECT.
	OutDim(dimVect int) int

	// Initialize sets acc (length AccumDim(dimVect)) to the neutral element.
	Initialize(acc []T)

	// Combine folds one (formula value, payload) pair into acc.
	// payload has length dimVect; for sum-type reductions it is the
	// weight vector β_j, for max-shifted-exp it is g_ij (nil means the
	// implicit all-ones payload).
	Combine(acc []T, f T, payload []T)

	// CombineKahan is Combine with compensated summation. comp has at
	// least dimVect entries (the kernels pass AccumDim(dimVect)), one per
	// payload component, and carries the low-order bits lost between calls.
	CombineKahan(acc, comp []T, f T, payload []T)

	// Merge folds src, an accumulator built by an independent partial
	// reduction over some sub-range of j, into dst in place. It is what
	// lets a tile scheme split Ny across multiple grid cells and
	// reconcile their per-cell accumulators afterward rather than
	// requiring every cell to share one running accumulator.
	Merge(dst, src []T)

	// Finalize writes acc (length AccumDim(dimVect)) to out (length
	// OutDim(dimVect)).
	Finalize(acc []T, out []T)
}
