// Package status defines the flat OPC UA result-code vocabulary used
// throughout the address-space traversal services, and a thin error
// wrapper carrying one such code plus an optional underlying cause.
package status

import (
	"errors"
	"fmt"
)

// Code is one result code from the OPC UA "Bad*"/"Good" vocabulary
// relevant to address-space traversal. It is a closed set: new values
// are never synthesized outside this package.
type Code string

const (
	Good Code = "Good"

	BadViewIdUnknown         Code = "BadViewIdUnknown"
	BadNothingToDo           Code = "BadNothingToDo"
	BadTooManyOperations     Code = "BadTooManyOperations"
	BadBrowseDirectionInvalid Code = "BadBrowseDirectionInvalid"
	BadReferenceTypeIdInvalid Code = "BadReferenceTypeIdInvalid"
	BadNodeIdUnknown         Code = "BadNodeIdUnknown"
	BadNodeIdInvalid         Code = "BadNodeIdInvalid"
	BadContinuationPointInvalid Code = "BadContinuationPointInvalid"
	BadNoContinuationPoints  Code = "BadNoContinuationPoints"
	BadOutOfMemory           Code = "BadOutOfMemory"
	BadBrowseNameInvalid     Code = "BadBrowseNameInvalid"
	BadNoMatch               Code = "BadNoMatch"
	BadTimeout               Code = "BadTimeout"
	BadInternalError         Code = "BadInternalError"
)

// IsGood reports whether c represents success.
func (c Code) IsGood() bool { return c == Good }

// IsBad reports whether c represents failure. Every non-Good code in
// this package's vocabulary is a failure; there is no Uncertain tier.
func (c Code) IsBad() bool { return c != Good }

// Error pairs a result Code with an optional underlying cause. Service
// operations that fail for a reason expressible as a Code return one of
// these rather than a bare error, so callers can switch on Code without
// string matching.
type Error struct {
	Code  Code
	Cause error
}

func New(code Code) *Error { return &Error{Code: code} }

func Wrap(code Code, cause error) *Error { return &Error{Code: code, Cause: cause} }

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Cause)
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Cause }

// CodeOf extracts the Code carried by err, if any, defaulting to
// BadInternalError for any other non-nil error and Good for nil.
func CodeOf(err error) Code {
	if err == nil {
		return Good
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return BadInternalError
}
