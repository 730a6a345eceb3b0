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
	"testing"
)

func logSumExp(t *testing.T, values []float64) float64 {
	t.Helper()
	var m MaxShiftedExp[float64]
	acc := make([]float64, m.AccumDim(1))
	m.Initialize(acc)
	for _, v := range values {
		m.Combine(acc, v, nil)
	}
	out := make([]float64, m.OutDim(1))
	m.Finalize(acc, out)
	return out[0] + math.Log(out[1])
}

func TestMaxShiftedExpMatchesNaiveLogSumExp(t *testing.T) {
	values := []float64{1, 2, 3, -1, 0.5}
	got := logSumExp(t, values)

	var naive float64
	for _, v := range values {
		naive += math.Exp(v)
	}
	want := math.Log(naive)

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("logSumExp = %v, want %v", got, want)
	}
}

// TestMaxShiftedExpOverflowAvoidance confirms that values which would
// overflow a naive exp() are handled correctly because every
// exponentiation argument Combine forms is non-positive by construction.
func TestMaxShiftedExpOverflowAvoidance(t *testing.T) {
	values := []float64{1000, 1001, 999}
	got := logSumExp(t, values)

	// Computed by hand in shifted form: log(e^-1 + e^0 + e^-2) + 1001.
	want := math.Log(math.Exp(-1)+math.Exp(0)+math.Exp(-2)) + 1001
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("logSumExp(overflowing values) = %v, want %v", got, want)
	}
}

// TestMaxShiftedExpOrderInvariance checks that combining the same values
// in a different order yields the same result, since both the running
// max and the running sum are commutative operations.
func TestMaxShiftedExpOrderInvariance(t *testing.T) {
	forward := []float64{5, -3, 10, 2, 7}
	reverse := []float64{7, 2, 10, -3, 5}

	got1 := logSumExp(t, forward)
	got2 := logSumExp(t, reverse)

	if math.Abs(got1-got2) > 1e-12 {
		t.Errorf("order dependence: %v vs %v", got1, got2)
	}
}

func TestMaxShiftedExpWeightedPayload(t *testing.T) {
	var m MaxShiftedExp[float64]
	dimVect := 1
	acc := make([]float64, m.AccumDim(dimVect))
	m.Initialize(acc)

	m.Combine(acc, 1, []float64{2})
	m.Combine(acc, 2, []float64{3})

	out := make([]float64, m.OutDim(dimVect))
	m.Finalize(acc, out)

	wantS := 2*math.Exp(1-2) + 3*math.Exp(2-2)
	if math.Abs(out[1]-wantS) > 1e-12 {
		t.Errorf("weighted s = %v, want %v", out[1], wantS)
	}
	if out[0] != 2 {
		t.Errorf("m = %v, want 2", out[0])
	}
}

func TestMaxShiftedExpMergeMatchesSingleCombine(t *testing.T) {
	left := []float64{5, -3, 10}
	right := []float64{2, 7}
	want := logSumExp(t, append(append([]float64{}, left...), right...))

	var m MaxShiftedExp[float64]
	accLeft := make([]float64, m.AccumDim(1))
	m.Initialize(accLeft)
	for _, v := range left {
		m.Combine(accLeft, v, nil)
	}

	accRight := make([]float64, m.AccumDim(1))
	m.Initialize(accRight)
	for _, v := range right {
		m.Combine(accRight, v, nil)
	}

	m.Merge(accLeft, accRight)
	out := make([]float64, m.OutDim(1))
	m.Finalize(accLeft, out)
	got := out[0] + math.Log(out[1])

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("merged logSumExp = %v, want %v", got, want)
	}
}

func TestMaxShiftedExpMergeWithNeutralIsIdentity(t *testing.T) {
	var m MaxShiftedExp[float64]
	acc := make([]float64, m.AccumDim(1))
	m.Initialize(acc)
	m.Combine(acc, 3, nil)
	m.Combine(acc, -1, nil)

	neutral := make([]float64, m.AccumDim(1))
	m.Initialize(neutral)

	want := append([]float64{}, acc...)
	m.Merge(acc, neutral)
	for d := range acc {
		if acc[d] != want[d] {
			t.Errorf("merge with neutral changed acc[%d]: %v -> %v", d, want[d], acc[d])
		}
	}
}

func TestMaxShiftedExpKahanMatchesPlain(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6}

	var m MaxShiftedExp[float64]
	accPlain := make([]float64, m.AccumDim(1))
	m.Initialize(accPlain)
	for _, v := range values {
		m.Combine(accPlain, v, nil)
	}

	accKahan := make([]float64, m.AccumDim(1))
	comp := make([]float64, m.AccumDim(1))
	m.Initialize(accKahan)
	for _, v := range values {
		m.CombineKahan(accKahan, comp, v, nil)
	}

	if math.Abs(accPlain[0]-accKahan[0]) > 1e-12 {
		t.Errorf("m mismatch: plain=%v kahan=%v", accPlain[0], accKahan[0])
	}
	if math.Abs(accPlain[1]-accKahan[1]) > 1e-9 {
		t.Errorf("s mismatch: plain=%v kahan=%v", accPlain[1], accKahan[1])
	}
}
