// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package goldenhour

import (
	"fmt"

	"cloudeng.io/errors"
)

var (
	// ErrLocationUnavailable is returned, typically wrapped, when a
	// location could not be determined or access to it was denied.
	ErrLocationUnavailable = errors.New("location unavailable")

	// ErrComputation is matched by all ComputationErrors.
	ErrComputation = errors.New("golden hour computation failed")

	// ErrInvariantViolation is matched by all InvariantErrors.
	ErrInvariantViolation = errors.New("internal invariant violated")
)

// ComputationError is returned when the astronomical calculation for
// a date and coordinate fails or returns an unusable result.
type ComputationError struct {
	Date       CalendarDate
	Coordinate Coordinate
	Err        error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%v: %v at %v: %v", ErrComputation, e.Date, e.Coordinate, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

func (e *ComputationError) Is(target error) bool {
	return target == ErrComputation
}

// InvariantError indicates a bug in the resolver or calculator, for
// example a countdown to an instant that is not in the future. It must
// never be silently corrected.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvariantViolation, e.Msg)
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariantViolation
}
