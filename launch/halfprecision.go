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

package launch

import (
	"github.com/ajroetker/tilereduce/formula"
	"github.com/ajroetker/tilereduce/hwy"
	"github.com/ajroetker/tilereduce/reduce"
)

// EvaluateF16 runs Evaluate at float32 precision over Float16-encoded
// inputs, promoting on the way in and demoting on the way out. hwy's own
// Float16/BFloat16 types carry no arithmetic operators of their own (see
// hwy/float16.go) — they are storage formats, not compute types — so
// compute always happens at float32 and the 16-bit encoding is a
// narrowing step applied only at the boundary.
func EvaluateF16(
	desc reduce.Descriptor[float32],
	eval formula.Evaluator[float32],
	x, y [][]hwy.Float16,
	b [][]hwy.Float16,
	params []hwy.Float16,
	out [][]hwy.Float16,
	cfg Config,
) Status {
	x32 := promoteF16Rows(x)
	y32 := promoteF16Rows(y)
	b32 := promoteF16Rows(b)
	params32 := promoteF16(params)
	out32 := make([][]float32, len(out))
	for i, row := range out {
		out32[i] = make([]float32, len(row))
	}

	status := Evaluate(desc, eval, x32, y32, b32, params32, out32, cfg)
	if status != StatusOK {
		return status
	}
	for i, row := range out32 {
		for d, v := range row {
			out[i][d] = hwy.NewFloat16(v)
		}
	}
	return StatusOK
}

// EvaluateBF16 is EvaluateF16's BFloat16 counterpart.
func EvaluateBF16(
	desc reduce.Descriptor[float32],
	eval formula.Evaluator[float32],
	x, y [][]hwy.BFloat16,
	b [][]hwy.BFloat16,
	params []hwy.BFloat16,
	out [][]hwy.BFloat16,
	cfg Config,
) Status {
	x32 := promoteBF16Rows(x)
	y32 := promoteBF16Rows(y)
	b32 := promoteBF16Rows(b)
	params32 := promoteBF16(params)
	out32 := make([][]float32, len(out))
	for i, row := range out {
		out32[i] = make([]float32, len(row))
	}

	status := Evaluate(desc, eval, x32, y32, b32, params32, out32, cfg)
	if status != StatusOK {
		return status
	}
	for i, row := range out32 {
		for d, v := range row {
			out[i][d] = hwy.NewBFloat16(v)
		}
	}
	return StatusOK
}

func promoteF16(row []hwy.Float16) []float32 {
	if row == nil {
		return nil
	}
	out := make([]float32, len(row))
	for i, v := range row {
		out[i] = v.Float32()
	}
	return out
}

func promoteF16Rows(rows [][]hwy.Float16) [][]float32 {
	if rows == nil {
		return nil
	}
	out := make([][]float32, len(rows))
	for i, row := range rows {
		out[i] = promoteF16(row)
	}
	return out
}

func promoteBF16(row []hwy.BFloat16) []float32 {
	if row == nil {
		return nil
	}
	out := make([]float32, len(row))
	for i, v := range row {
		out[i] = v.Float32()
	}
	return out
}

func promoteBF16Rows(rows [][]hwy.BFloat16) [][]float32 {
	if rows == nil {
		return nil
	}
	out := make([][]float32, len(rows))
	for i, row := range rows {
		out[i] = promoteBF16(row)
	}
	return out
}
