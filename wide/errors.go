// Copyright 2026 go-wide Authors
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

package wide

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCardinal is returned when a lane count is not a positive power of two.
	ErrInvalidCardinal = errors.New("cardinal must be a positive power of two")

	// ErrNoABI is returned when no storage strategy can hold an element type and cardinal.
	ErrNoABI = errors.New("no ABI for element type and cardinal")

	// ErrShapeMismatch is returned when two operands have incompatible cardinals.
	ErrShapeMismatch = errors.New("operand shapes have no common target")

	// ErrNoPolicyVariant is returned when a policy is applied to an operation
	// that has no kernel for it.
	ErrNoPolicyVariant = errors.New("operation has no variant for policy")

	// ErrUnknownTarget is returned when a target name is not registered.
	ErrUnknownTarget = errors.New("unknown target")

	// ErrUnknownOperation is returned when an operation name is not registered.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrDuplicateOperation is returned when an operation name is registered twice.
	ErrDuplicateOperation = errors.New("operation already registered")
)

// ResolutionError reports that the resolver could not find an implementation
// for an operation and its operands. Values are constructed and operations
// dispatched with panics carrying a *ResolutionError, since an unsupported
// shape is a programming error; ResolveABI and Plan return it as an error.
//
// The sentinel cause can be matched with errors.Is.
type ResolutionError struct {
	// Op is the operation name, including any policy decoration.
	Op string
	// Detail names the unsupported type/ABI combination.
	Detail string
	cause  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("[wide.%s] %s: %v", e.Op, e.Detail, e.cause)
}

func (e *ResolutionError) Unwrap() error { return e.cause }

func resolutionError(op string, cause error, format string, args ...any) *ResolutionError {
	return &ResolutionError{Op: op, Detail: fmt.Sprintf(format, args...), cause: cause}
}
