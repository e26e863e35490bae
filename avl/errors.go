// Copyright 2025 Naren Yellavula
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

package avl

import (
	"errors"
	"fmt"
)

// Keys accepted by the tree lie in [MinKey, MaxKey].
const (
	MinKey = 1
	MaxKey = 99
)

var (
	// ErrOutOfRange is returned (wrapped in a *KeyRangeError) by Insert,
	// Delete and Contains for keys outside [MinKey, MaxKey].
	ErrOutOfRange = errors.New("key out of range")

	// ErrInvariant is wrapped by every error returned from Tree.Verify.
	ErrInvariant = errors.New("tree invariant violated")
)

// KeyRangeError reports the rejected key. It unwraps to ErrOutOfRange.
type KeyRangeError struct {
	Key int
}

func (e *KeyRangeError) Error() string {
	return fmt.Sprintf("key %d out of range [%d, %d]", e.Key, MinKey, MaxKey)
}

func (e *KeyRangeError) Unwrap() error { return ErrOutOfRange }

// ValidateKey returns a *KeyRangeError if key is outside [MinKey, MaxKey].
func ValidateKey(key int) error {
	if key < MinKey || key > MaxKey {
		return &KeyRangeError{Key: key}
	}
	return nil
}
