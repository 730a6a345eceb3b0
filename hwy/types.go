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

// Package hwy provides the scalar-precision type constraints shared by the
// reduction engine. The parent project also carries a SIMD lane abstraction
// (Vec[T], portable Load/Store/Add/...); it is deliberately not reproduced
// here, since the reduction's per-point dimension (DIMPOINT, DIMVECT) tops
// out at 3 — far narrower than any SIMD lane width — so there is never a
// vector of point coordinates to load. What survives is the precision
// enumeration: half, float, double.
package hwy

// Float16Types is a constraint for half-precision float types.
// These types use uint16 storage but represent floating-point values.
type Float16Types interface {
	Float16 | BFloat16
}

// FloatsNative is a constraint for Go-native floating-point types.
// Use this for operations that require direct arithmetic support.
type FloatsNative interface {
	~float32 | ~float64
}

// Floats is a constraint for all scalar precisions supported by a reduction:
// half (Float16/BFloat16, promoted to float32 before arithmetic), float32,
// and float64.
type Floats interface {
	Float16 | BFloat16 | ~float32 | ~float64
}
