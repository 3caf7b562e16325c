// Package errors provides structured error types for the nifstream codec.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes mirror the failure categories of the block-stream codec. Two of
// them are soft by convention: NOT_THIS_FORMAT means "skip this file, it
// belongs to some other format", and UNSUPPORTED_VERSION means the file is
// recognized but its version is outside the supported catalogue. Everything
// else indicates a corrupt stream or a misuse of the API and fails the whole
// read or write call.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownBlockType, "unknown block type %q", name)
//	if errors.Is(err, errors.ErrCodeUnknownBlockType) {
//	    // Handle unknown type
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedFraming, origErr, "read header")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the codec's failure categories.
const (
	// ErrCodeNotThisFormat means the stream does not start with a known
	// product header line. Batch callers treat this as "skip".
	ErrCodeNotThisFormat Code = "NOT_THIS_FORMAT"

	// ErrCodeUnsupportedVersion means the product prefix matched but the
	// version string is not in the supported catalogue.
	ErrCodeUnsupportedVersion Code = "UNSUPPORTED_VERSION"

	// ErrCodeMalformedFraming covers wrong magic or sentinel strings,
	// truncated headers, and trailing bytes after the footer.
	ErrCodeMalformedFraming Code = "MALFORMED_FRAMING"

	// ErrCodeUnknownBlockType means a type name in the stream has no
	// registered constructor.
	ErrCodeUnknownBlockType Code = "UNKNOWN_BLOCK_TYPE"

	// ErrCodeTypeConstraint means a reference resolved to a block whose
	// type is incompatible with the field's declared target type.
	ErrCodeTypeConstraint Code = "TYPE_CONSTRAINT"

	// ErrCodeLinkStackImbalance means the number of raw link indices
	// produced while reading does not match the number consumed during
	// fix-up: a corrupt stream or a codec bug.
	ErrCodeLinkStackImbalance Code = "LINK_STACK_IMBALANCE"

	// ErrCodeDuplicateBlockIndex means a legacy stream used the same
	// on-disk block key twice.
	ErrCodeDuplicateBlockIndex Code = "DUPLICATE_BLOCK_INDEX"

	// ErrCodeStringPool means a string field referenced a pool slot that
	// does not exist, or a written string was missing from the pool.
	ErrCodeStringPool Code = "STRING_POOL"

	// ErrCodeInternal is for unexpected internal errors.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Skippable reports whether err is one of the soft probe outcomes that a
// bulk caller should skip rather than abort on.
func Skippable(err error) bool {
	return Is(err, ErrCodeNotThisFormat) || Is(err, ErrCodeUnsupportedVersion)
}
