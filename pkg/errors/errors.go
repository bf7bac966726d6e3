// Package errors provides structured error types for treeflow.
//
// Every failure of a normalize call carries a machine-readable [Code]. Codes
// are grouped into categories so callers can react to the kind of failure
// without matching on individual codes:
//
//   - Configuration: the options are contradictory or unknown (both or neither
//     of path separator and parent field, unknown statistic)
//   - Structural: the data cannot form a tree (no root, ambiguous root, cycle,
//     duplicate names, invalid paths or values)
//   - UnsupportedInput: the input shape matches none of the known variants
//   - MissingField: a referenced field is absent from a record
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoRoot, "no root found among %d records", n)
//	if errors.IsStructural(err) {
//	    // Handle broken hierarchy
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Structural errors
	ErrCodeNoRoot        Code = "NO_ROOT"
	ErrCodeAmbiguousRoot Code = "AMBIGUOUS_ROOT"
	ErrCodeCycle         Code = "CYCLE"
	ErrCodeDuplicateName Code = "DUPLICATE_NAME"
	ErrCodeUnknownParent Code = "UNKNOWN_PARENT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidValue  Code = "INVALID_VALUE"
	ErrCodeInvalidTable  Code = "INVALID_TABLE"

	// Input errors
	ErrCodeUnsupportedInput Code = "UNSUPPORTED_INPUT"
	ErrCodeMissingField     Code = "MISSING_FIELD"

	// I/O errors
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Category groups codes by the kind of failure they describe.
type Category string

// Error categories.
const (
	CategoryConfiguration    Category = "configuration"
	CategoryStructural       Category = "structural"
	CategoryUnsupportedInput Category = "unsupported_input"
	CategoryMissingField     Category = "missing_field"
	CategoryIO               Category = "io"
	CategoryInternal         Category = "internal"
)

var categories = map[Code]Category{
	ErrCodeInvalidConfig:    CategoryConfiguration,
	ErrCodeNoRoot:           CategoryStructural,
	ErrCodeAmbiguousRoot:    CategoryStructural,
	ErrCodeCycle:            CategoryStructural,
	ErrCodeDuplicateName:    CategoryStructural,
	ErrCodeUnknownParent:    CategoryStructural,
	ErrCodeInvalidPath:      CategoryStructural,
	ErrCodeInvalidValue:     CategoryStructural,
	ErrCodeInvalidTable:     CategoryStructural,
	ErrCodeUnsupportedInput: CategoryUnsupportedInput,
	ErrCodeMissingField:     CategoryMissingField,
	ErrCodeInvalidFormat:    CategoryIO,
	ErrCodeFileNotFound:     CategoryIO,
	ErrCodeInternal:         CategoryInternal,
}

// Category returns the category of the code.
// Unknown codes are reported as internal.
func (c Code) Category() Category {
	if cat, ok := categories[c]; ok {
		return cat
	}
	return CategoryInternal
}

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

// As finds the first error in err's chain that matches target.
// It is errors.As from the standard library.
func As(err error, target any) bool {
	return errors.As(err, target)
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

// CategoryOf returns the category of the first *Error in the chain.
// Errors without a code are internal.
func CategoryOf(err error) Category {
	return GetCode(err).Category()
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return CategoryOf(err) == CategoryConfiguration }

// IsStructural reports whether err is a structural error.
func IsStructural(err error) bool { return CategoryOf(err) == CategoryStructural }

// IsUnsupported reports whether err is an unsupported input error.
func IsUnsupported(err error) bool { return CategoryOf(err) == CategoryUnsupportedInput }

// IsMissingField reports whether err is a missing field error.
func IsMissingField(err error) bool { return CategoryOf(err) == CategoryMissingField }

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
