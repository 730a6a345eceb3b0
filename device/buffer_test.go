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

package device

import (
	"testing"
)

func TestAllocAndFree(t *testing.T) {
	before := LiveAllocations()
	buf, err := Alloc[float64](16)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if got, want := LiveAllocations(), before+1; got != want {
		t.Errorf("LiveAllocations = %d, want %d", got, want)
	}
	buf.Free()
	if got, want := LiveAllocations(), before; got != want {
		t.Errorf("LiveAllocations after Free = %d, want %d", got, want)
	}
	// Free is idempotent.
	buf.Free()
	if got, want := LiveAllocations(), before; got != want {
		t.Errorf("LiveAllocations after double Free = %d, want %d", got, want)
	}
}

func TestAllocNegativeLength(t *testing.T) {
	if _, err := Alloc[float32](-1); err != ErrAlloc {
		t.Errorf("Alloc(-1) err = %v, want ErrAlloc", err)
	}
}

func TestFailNext(t *testing.T) {
	before := LiveAllocations()
	FailNext(2)
	if _, err := Alloc[float32](4); err != ErrAlloc {
		t.Errorf("first Alloc after FailNext(2) err = %v, want ErrAlloc", err)
	}
	if _, err := Alloc[float32](4); err != ErrAlloc {
		t.Errorf("second Alloc after FailNext(2) err = %v, want ErrAlloc", err)
	}
	buf, err := Alloc[float32](4)
	if err != nil {
		t.Fatalf("third Alloc should succeed, got %v", err)
	}
	defer buf.Free()
	if got, want := LiveAllocations(), before+1; got != want {
		t.Errorf("LiveAllocations = %d, want %d", got, want)
	}
}

func TestCopyRoundTrip(t *testing.T) {
	buf, err := Alloc[float64](3)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	defer buf.Free()

	src := []float64{1, 2, 3}
	if err := buf.CopyFromHost(src); err != nil {
		t.Fatalf("CopyFromHost: %v", err)
	}
	dst := make([]float64, 3)
	if err := buf.CopyToHost(dst); err != nil {
		t.Fatalf("CopyToHost: %v", err)
	}
	for i := range src {
		if dst[i] != src[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], src[i])
		}
	}
}

func TestCopyLengthMismatch(t *testing.T) {
	buf, err := Alloc[float64](3)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	defer buf.Free()

	if err := buf.CopyFromHost([]float64{1, 2}); err != ErrCopyLength {
		t.Errorf("CopyFromHost length mismatch err = %v, want ErrCopyLength", err)
	}
	if err := buf.CopyToHost(make([]float64, 4)); err != ErrCopyLength {
		t.Errorf("CopyToHost length mismatch err = %v, want ErrCopyLength", err)
	}
}

func TestNilBufferIsSafe(t *testing.T) {
	var buf *Buffer[float32]
	if buf.Len() != 0 {
		t.Errorf("nil buffer Len() = %d, want 0", buf.Len())
	}
	if buf.Data() != nil {
		t.Errorf("nil buffer Data() should be nil")
	}
	buf.Free() // must not panic
}
