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

import (
	"math"

	"github.com/ajroetker/tilereduce/hwy"
)

// MaxShiftedExp is the coupled (max, exp-sum) reduction underlying
// log-sum-exp and softmax:
//
//	m_i = max_j f_ij
//	s_i = Σ_j exp(f_ij − m_i) · g_ij
//
// The accumulator is acc[0]=m, acc[1:]=s (so DIMRED = 1+DIMVECT). Every
// exponentiation argument Combine computes is ≤ 0 by construction, so
// exp can never overflow — this is the numerical-stability property the
// reduction exists for.
type MaxShiftedExp[T hwy.FloatsNative] struct{}

func (MaxShiftedExp[T]) Name() string { return "max_shifted_exp" }

func (MaxShiftedExp[T]) AccumDim(dimVect int) int { return 1 + dimVect }
func (MaxShiftedExp[T]) OutDim(dimVect int) int   { return 1 + dimVect }

// Initialize sets acc[0]=-inf (neutral maximum) and acc[1:]=0. Because
// exp(-inf)*anything is 0, this is the correct identity: combining the
// neutral element with any pair reproduces that pair.
func (MaxShiftedExp[T]) Initialize(acc []T) {
	acc[0] = T(math.Inf(-1))
	for i := 1; i < len(acc); i++ {
		acc[i] = 0
	}
}

// Combine folds one (f_ij, g_ij) pair into acc. payload is g_ij (length
// DIMVECT); nil means the implicit all-ones payload used by plain
// log-sum-exp (as opposed to a weighted/softmax-style reduction).
func (MaxShiftedExp[T]) Combine(acc []T, f T, payload []T) {
	s := acc[1:]
	if acc[0] > f {
		t := T(math.Exp(float64(f - acc[0])))
		for d := range s {
			g := weightAt(payload, d)
			s[d] += g * t
		}
		return
	}
	t := T(math.Exp(float64(acc[0] - f)))
	for d := range s {
		g := weightAt(payload, d)
		s[d] = g + t*s[d]
	}
	acc[0] = f
}

// CombineKahan is Combine with compensated summation applied to the
// branch that performs a running addition (acc[0] > f). The other
// branch replaces s rather than accumulating into it, so there is
// nothing to compensate there beyond rescaling the carried error by the
// same factor t that rescales s itself.
func (MaxShiftedExp[T]) CombineKahan(acc, comp []T, f T, payload []T) {
	s := acc[1:]
	if acc[0] > f {
		t := T(math.Exp(float64(f - acc[0])))
		for d := range s {
			g := weightAt(payload, d)
			term := g*t - comp[d]
			sum := s[d] + term
			comp[d] = (sum - s[d]) - term
			s[d] = sum
		}
		return
	}
	t := T(math.Exp(float64(acc[0] - f)))
	for d := range s {
		g := weightAt(payload, d)
		comp[d] *= t
		s[d] = g + t*s[d]
	}
	acc[0] = f
}

// Merge reconciles two (m, s) pairs built over disjoint column ranges,
// using the same shift to whichever max is larger so that no
// intermediate term overflows. This is Combine's branch structure
// applied at the pair level instead of to a single (f_ij, g_ij)
// observation: src is treated as one already-accumulated event rather
// than a column to fold in.
func (MaxShiftedExp[T]) Merge(dst, src []T) {
	if src[0] == T(math.Inf(-1)) {
		return
	}
	if dst[0] == T(math.Inf(-1)) {
		copy(dst, src)
		return
	}
	ds, ss := dst[1:], src[1:]
	if dst[0] >= src[0] {
		t := T(math.Exp(float64(src[0] - dst[0])))
		for d := range ds {
			ds[d] += ss[d] * t
		}
		return
	}
	t := T(math.Exp(float64(dst[0] - src[0])))
	for d := range ds {
		ds[d] = ss[d] + t*ds[d]
	}
	dst[0] = src[0]
}

// Finalize writes (m, s) verbatim; computing m + log(s) is the caller's
// job.
func (MaxShiftedExp[T]) Finalize(acc []T, out []T) {
	copy(out, acc)
}

func weightAt[T hwy.FloatsNative](payload []T, d int) T {
	if payload == nil {
		return 1
	}
	return payload[d]
}
