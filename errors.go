// Copyright (c) 2025 SciGo HDF5 Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

package ncinfo

import (
	"errors"
	"fmt"
	"strings"
)

// Reasons reported by dataset backends. The wording follows the netCDF
// library so reports read the same whichever backend produced them.
var (
	ErrBadID         = errors.New("NetCDF: Not a valid ID")
	ErrBadDim        = errors.New("NetCDF: Invalid dimension ID or name")
	ErrNotVar        = errors.New("NetCDF: Variable not found")
	ErrNotAtt        = errors.New("NetCDF: Attribute not found")
	ErrInvalidCoords = errors.New("NetCDF: Index exceeds dimension bound")
	ErrChar          = errors.New("NetCDF: Attempt to convert between text & numbers")
	ErrRange         = errors.New("NetCDF: Numeric conversion not representable")
	ErrBadType       = errors.New("NetCDF: Not a valid data type or _FillValue type mismatch")
)

// ErrorKind classifies the failures that escape the walk.
type ErrorKind int

// Error kinds.
const (
	KindOpen    ErrorKind = iota + 1 // Dataset could not be opened.
	KindInquiry                      // Dataset or entity metadata could not be read.
	KindLookup                       // A name or index did not resolve.
	KindRead                         // Values could not be fetched.
	KindAborted                      // The walk stopped on a variable descriptor failure.
	KindOutput                       // The report could not be written.
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindInquiry:
		return "inquiry"
	case KindLookup:
		return "lookup"
	case KindRead:
		return "read"
	case KindAborted:
		return "aborted"
	case KindOutput:
		return "output"
	default:
		return fmt.Sprintf("kind_%d", int(k))
	}
}

// Error is a classified failure with the operation it interrupted.
type Error struct {
	Kind    ErrorKind
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// Unwrap provides compatibility with errors.Unwrap().
func (e *Error) Unwrap() error {
	return e.Cause
}

// WrapError creates a classified error. It returns nil when cause is nil.
func WrapError(kind ErrorKind, context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{
		Kind:    kind,
		Context: context,
		Cause:   cause,
	}
}

// KindOf returns the kind of the outermost *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Reason returns the message of err on a single line, with runs of
// whitespace collapsed to one space.
func Reason(err error) string {
	return strings.Join(strings.Fields(err.Error()), " ")
}

// IsAborted reports whether err means the walk stopped early.
func IsAborted(err error) bool {
	return KindOf(err) == KindAborted
}
