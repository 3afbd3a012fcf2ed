// Package cerrors defines stable error codes for the analyzer's
// failure modes.
package cerrors

import (
	"errors"
	"fmt"
)

// Code is a stable error code.
type Code string

const (
	// InvalidInput indicates a contract violation by the caller, such
	// as a nil file list. This is the only failure mode that aborts a
	// whole analysis.
	InvalidInput Code = "INVALID_INPUT"
	// StoreUnavailable indicates the run-history store could not be
	// opened or written.
	StoreUnavailable Code = "STORE_UNAVAILABLE"
	// ExportFailed indicates a snapshot could not be written.
	ExportFailed Code = "EXPORT_FAILED"
)

// Error carries a code alongside a message and optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a coded error with a cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}
