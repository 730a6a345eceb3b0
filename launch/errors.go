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

import "fmt"

// StatusError wraps a non-OK Status as an error, for callers that prefer
// Go's error convention to checking a Status return directly. Evaluate
// itself standardizes on a single status code rather than a richer
// error hierarchy, so StatusError exists only at this Go-idiomatic
// edge, not inside the launch/kernel/reduce core.
type StatusError struct {
	Status Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("launch: %s", e.Status)
}

// AsError returns nil for StatusOK, otherwise a *StatusError wrapping s.
func AsError(s Status) error {
	if s == StatusOK {
		return nil
	}
	return &StatusError{Status: s}
}
