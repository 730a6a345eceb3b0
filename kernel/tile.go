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

// Package kernel implements the two tile-loop reduction schemes on top
// of a workerpool.Pool rather than a CUDA grid. Tile1D puts one logical
// thread per row; Tile2D puts one logical thread-block per grid cell
// and follows it with a second pool dispatch that merges each row's
// per-cell partials, mirroring the block-then-reduce structure of a
// two-kernel-launch accelerator implementation without any real
// cross-goroutine synchronization beyond the pool's own barriers.
package kernel

import (
	"github.com/ajroetker/tilereduce/formula"
	"github.com/ajroetker/tilereduce/hwy"
	"github.com/ajroetker/tilereduce/hwy/contrib/workerpool"
	"github.com/ajroetker/tilereduce/reduce"
)

// Tile1D is the one-thread-per-row scheme: each row i is owned by
// exactly one logical thread, which grid-strides over every j directly
// against the global X/Y/B buffers — no shared-memory staging. It is the
// simplest correct scheme and the reference Tile2D's output is checked
// against.
//
// x has Nx rows of length dimPoint, y has Ny rows of length dimPoint, and
// b, if non-nil, has Ny rows of length dimVect. params is broadcast to
// every (i,j) evaluation. The returned slice has Nx rows of length
// desc.OutDim(dimVect).
func Tile1D[T hwy.FloatsNative](
	pool *workerpool.Pool,
	desc reduce.Descriptor[T],
	eval formula.Evaluator[T],
	x, y [][]T,
	b [][]T,
	params []T,
	kahan bool,
) [][]T {
	nx := len(x)
	ny := len(y)
	dimVect := payloadDim(b)
	accumDim := desc.AccumDim(dimVect)
	outDim := desc.OutDim(dimVect)

	out := make([][]T, nx)
	for i := range out {
		out[i] = make([]T, outDim)
	}

	pool.ParallelForAtomic(nx, func(i int) {
		acc := make([]T, accumDim)
		desc.Initialize(acc)
		var comp []T
		if kahan {
			comp = make([]T, accumDim)
		}
		for j := 0; j < ny; j++ {
			f := eval(x[i], y[j], params)
			payload := payloadRow(b, j)
			if kahan {
				desc.CombineKahan(acc, comp, f, payload)
			} else {
				desc.Combine(acc, f, payload)
			}
		}
		desc.Finalize(acc, out[i])
	})

	return out
}

// Tile2D is the two-dimensional grid scheme: the (Nx, Ny) plane is
// carved into blockSize×blockSize cells, one cell per (block_i, block_j)
// pair, and the pool dispatches one call per cell — the direct
// stand-in for one CUDA thread-block per grid cell. Each cell reduces
// only its own column range into a cell-local accumulator per row; it
// never touches another cell's state, so cells need no
// synchronization among themselves. A second pass then merges, per
// row, the column-block partials left behind by the first pass (via
// desc.Merge) and finalizes — the "inter-block reduction" a real
// multi-block kernel launch would do in a following pass over
// per-block partial sums in global memory.
func Tile2D[T hwy.FloatsNative](
	pool *workerpool.Pool,
	desc reduce.Descriptor[T],
	eval formula.Evaluator[T],
	x, y [][]T,
	b [][]T,
	params []T,
	blockSize int,
	kahan bool,
) [][]T {
	if blockSize <= 0 {
		blockSize = 1
	}
	nx := len(x)
	ny := len(y)
	dimVect := payloadDim(b)
	accumDim := desc.AccumDim(dimVect)
	outDim := desc.OutDim(dimVect)

	out := make([][]T, nx)
	for i := range out {
		out[i] = make([]T, outDim)
	}
	if nx == 0 {
		return out
	}

	numRowBlocks := (nx + blockSize - 1) / blockSize
	numColBlocks := (ny + blockSize - 1) / blockSize
	if numColBlocks == 0 {
		numColBlocks = 1
	}

	// partials[rb][cb] holds one cell-local accumulator per row owned by
	// row-block rb — the per-cell output a real grid launch would leave
	// in global memory for the reduction pass that follows it.
	partials := make([][][][]T, numRowBlocks)
	for rb := range partials {
		partials[rb] = make([][][]T, numColBlocks)
	}

	numCells := numRowBlocks * numColBlocks
	pool.ParallelForAtomic(numCells, func(cell int) {
		rb := cell / numColBlocks
		cb := cell % numColBlocks

		rowStart := rb * blockSize
		rowEnd := min(rowStart+blockSize, nx)
		rows := rowEnd - rowStart

		colStart := cb * blockSize
		colEnd := min(colStart+blockSize, ny)

		cellAccs := make([][]T, rows)
		for r := range cellAccs {
			acc := make([]T, accumDim)
			desc.Initialize(acc)
			cellAccs[r] = acc
		}

		if colEnd > colStart {
			var comps [][]T
			if kahan {
				comps = make([][]T, rows)
				for r := range comps {
					comps[r] = make([]T, accumDim)
				}
			}
			tileY := y[colStart:colEnd]
			for r := 0; r < rows; r++ {
				xi := x[rowStart+r]
				acc := cellAccs[r]
				for t, yj := range tileY {
					j := colStart + t
					f := eval(xi, yj, params)
					payload := payloadRow(b, j)
					if kahan {
						desc.CombineKahan(acc, comps[r], f, payload)
					} else {
						desc.Combine(acc, f, payload)
					}
				}
			}
		}

		partials[rb][cb] = cellAccs
	})

	// Reduction pass: merge every row's column-block partials into one
	// accumulator and finalize it.
	pool.ParallelForAtomic(nx, func(i int) {
		rb := i / blockSize
		r := i - rb*blockSize
		acc := partials[rb][0][r]
		for cb := 1; cb < numColBlocks; cb++ {
			desc.Merge(acc, partials[rb][cb][r])
		}
		desc.Finalize(acc, out[i])
	})

	return out
}

func payloadDim[T any](b [][]T) int {
	if len(b) == 0 {
		return 1
	}
	return len(b[0])
}

func payloadRow[T any](b [][]T, j int) []T {
	if b == nil {
		return nil
	}
	return b[j]
}
