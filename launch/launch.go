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

// Package launch is the single entry point a caller uses to run a
// reduction: it validates shapes and dimensions, stages host data into
// device buffers, dispatches the requested tile scheme, copies the
// result back out, and guarantees every buffer it opened is freed again
// on every return path. Everything below this package speaks in
// slices; everything above it should speak only in terms of Status and
// Config.
package launch

import (
	"fmt"

	"github.com/ajroetker/tilereduce/device"
	"github.com/ajroetker/tilereduce/dims"
	"github.com/ajroetker/tilereduce/formula"
	"github.com/ajroetker/tilereduce/hwy"
	"github.com/ajroetker/tilereduce/hwy/contrib/workerpool"
	"github.com/ajroetker/tilereduce/kernel"
	"github.com/ajroetker/tilereduce/reduce"
)

// Status is a single negative-or-zero status code, mirroring the
// C-style status convention this engine's callers expect rather than a
// richer error type. AsError wraps a non-OK Status in an idiomatic Go
// error for callers that want one.
type Status int

const (
	StatusOK              Status = 0
	StatusUnsupportedDims Status = -1
	StatusInvalidShape    Status = -2
	StatusAllocFailure    Status = -3
	StatusCopyFailure     Status = -4
	StatusLaunchFailure   Status = -5
	StatusSyncFailure     Status = -6
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusUnsupportedDims:
		return "unsupported dimension pair"
	case StatusInvalidShape:
		return "invalid input shape"
	case StatusAllocFailure:
		return "device allocation failed"
	case StatusCopyFailure:
		return "host/device copy failed"
	case StatusLaunchFailure:
		return "kernel launch failed"
	case StatusSyncFailure:
		return "device synchronization failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Scheme selects which tile loop (Tile1D or Tile2D) a launch uses.
type Scheme int

const (
	Scheme1D Scheme = iota
	Scheme2D
)

// Config carries the launch-time knobs that have no bearing on
// correctness, only on how the work is scheduled.
type Config struct {
	// Scheme picks Tile1D or Tile2D.
	Scheme Scheme
	// BlockSize is the tile width for Scheme2D; ignored for Scheme1D.
	BlockSize int
	// Kahan enables compensated summation in the reduction descriptor.
	Kahan bool
	// Pool is the worker pool kernels dispatch across. If nil, a
	// one-shot pool sized to GOMAXPROCS is created and closed internally.
	Pool *workerpool.Pool
}

// Evaluate runs desc/eval over x, y, b, params and writes the per-row
// result into out, which must already have len(x) rows of
// desc.OutDim(dimVect) columns. It returns StatusOK on success, or the
// first failing status otherwise; every device buffer it allocates is
// freed before Evaluate returns, success or failure alike.
func Evaluate[T hwy.FloatsNative](
	desc reduce.Descriptor[T],
	eval formula.Evaluator[T],
	x, y [][]T,
	b [][]T,
	params []T,
	out [][]T,
	cfg Config,
) (status Status) {
	dimPoint := rowWidth(x)
	if dimPoint == 0 {
		dimPoint = rowWidth(y)
	}
	dimVect := 1
	if len(b) > 0 {
		dimVect = rowWidth(b)
	}
	if !dims.IsSupported(dimPoint, dimVect) {
		return StatusUnsupportedDims
	}
	if err := checkShapes(x, y, b, out, desc.OutDim(dimVect)); err != nil {
		return StatusInvalidShape
	}

	nx, ny := len(x), len(y)

	xBuf, err := device.Alloc[T](nx * dimPoint)
	if err != nil {
		return StatusAllocFailure
	}
	defer xBuf.Free()
	yBuf, err := device.Alloc[T](ny * dimPoint)
	if err != nil {
		return StatusAllocFailure
	}
	defer yBuf.Free()

	var bBuf *device.Buffer[T]
	if b != nil {
		bBuf, err = device.Alloc[T](ny * dimVect)
		if err != nil {
			return StatusAllocFailure
		}
		defer bBuf.Free()
	}

	outBuf, err := device.Alloc[T](nx * desc.OutDim(dimVect))
	if err != nil {
		return StatusAllocFailure
	}
	defer outBuf.Free()

	if err := copyRowsIn(xBuf, x); err != nil {
		return StatusCopyFailure
	}
	if err := copyRowsIn(yBuf, y); err != nil {
		return StatusCopyFailure
	}
	if b != nil {
		if err := copyRowsIn(bBuf, b); err != nil {
			return StatusCopyFailure
		}
	}

	pool := cfg.Pool
	if pool == nil {
		pool = workerpool.New(0)
		defer pool.Close()
	}

	rows, status := dispatch(pool, desc, eval, x, y, b, params, cfg)
	if status != StatusOK {
		return status
	}

	if err := copyRowsIn(outBuf, rows); err != nil {
		return StatusCopyFailure
	}
	flat := make([]T, outBuf.Len())
	if err := outBuf.CopyToHost(flat); err != nil {
		return StatusCopyFailure
	}
	result := reshapeRows(flat, nx, desc.OutDim(dimVect))
	for i := range out {
		copy(out[i], result[i])
	}
	return StatusOK
}

// dispatch recovers a panicking kernel (e.g. a malformed descriptor
// indexing past an accumulator) as a sync failure rather than letting it
// unwind through Evaluate's deferred frees, which must still run.
func dispatch[T hwy.FloatsNative](
	pool *workerpool.Pool,
	desc reduce.Descriptor[T],
	eval formula.Evaluator[T],
	x, y, b [][]T,
	params []T,
	cfg Config,
) (rows [][]T, status Status) {
	defer func() {
		if r := recover(); r != nil {
			status = StatusSyncFailure
			rows = nil
		}
	}()

	switch cfg.Scheme {
	case Scheme2D:
		rows = kernel.Tile2D(pool, desc, eval, x, y, b, params, cfg.BlockSize, cfg.Kahan)
	default:
		rows = kernel.Tile1D(pool, desc, eval, x, y, b, params, cfg.Kahan)
	}
	if rows == nil {
		return nil, StatusLaunchFailure
	}
	return rows, StatusOK
}

func rowWidth[T any](rows [][]T) int {
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0])
}

// checkShapes validates row widths and row counts. Nx==0 and Ny==0 are
// both legal (the neutral-element scenario: an empty Y leaves every
// output row at the reduction's neutral element, and an empty X simply
// produces no rows) — only ragged rows and a mismatched out/x row count
// are rejected.
func checkShapes[T any](x, y, b, out [][]T, outDim int) error {
	dp := -1
	if len(x) > 0 {
		dp = len(x[0])
	} else if len(y) > 0 {
		dp = len(y[0])
	}
	for i, row := range x {
		if len(row) != dp {
			return fmt.Errorf("launch: x[%d] has width %d, want %d", i, len(row), dp)
		}
	}
	for j, row := range y {
		if len(row) != dp {
			return fmt.Errorf("launch: y[%d] has width %d, want %d", j, len(row), dp)
		}
	}
	if b != nil {
		if len(b) != len(y) {
			return fmt.Errorf("launch: b has %d rows, want %d", len(b), len(y))
		}
		dv := -1
		if len(b) > 0 {
			dv = len(b[0])
		}
		for j, row := range b {
			if len(row) != dv {
				return fmt.Errorf("launch: b[%d] has width %d, want %d", j, len(row), dv)
			}
		}
	}
	if len(out) != len(x) {
		return fmt.Errorf("launch: out has %d rows, want %d", len(out), len(x))
	}
	for i, row := range out {
		if len(row) != outDim {
			return fmt.Errorf("launch: out[%d] has width %d, want %d", i, len(row), outDim)
		}
	}
	return nil
}

func copyRowsIn[T any](buf *device.Buffer[T], rows [][]T) error {
	if len(rows) == 0 {
		return nil
	}
	width := len(rows[0])
	flat := make([]T, len(rows)*width)
	for i, row := range rows {
		copy(flat[i*width:(i+1)*width], row)
	}
	return buf.CopyFromHost(flat)
}

func reshapeRows[T any](flat []T, n, width int) [][]T {
	rows := make([][]T, n)
	for i := range rows {
		rows[i] = flat[i*width : (i+1)*width]
	}
	return rows
}
