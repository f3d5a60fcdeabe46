package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Patch outcome taxonomy. An already applied patch is not an error,
	// sessions report it as the already-present state.
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrParse        ErrorCode = "PARSE_FAILURE"
	ErrIO           ErrorCode = "IO_FAILURE"
	ErrMarkerAbsent ErrorCode = "MARKER_ABSENT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// OmaError represents a structured error with code and details
type OmaError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *OmaError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *OmaError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *OmaError) Is(target error) bool {
	var targetErr *OmaError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new OmaError with the given code and message
func New(code ErrorCode, message string) *OmaError {
	return &OmaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new OmaError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *OmaError {
	return &OmaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an OmaError
func Wrap(err error, code ErrorCode, message string) *OmaError {
	if err == nil {
		return nil
	}
	return &OmaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *OmaError {
	if err == nil {
		return nil
	}
	return &OmaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WrapIO wraps a filesystem error for path. Missing files keep the
// NOT_FOUND code so callers can treat them as informational.
func WrapIO(err error, op, path string) *OmaError {
	if err == nil {
		return nil
	}
	code := ErrIO
	if errors.Is(err, fs.ErrNotExist) {
		code = ErrNotFound
	}
	return Wrapf(err, code, "%s %s", op, path).WithDetail("path", path)
}

// WithDetail adds a detail to the error
func (e *OmaError) WithDetail(key string, value interface{}) *OmaError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var omaErr *OmaError
	if errors.As(err, &omaErr) {
		return omaErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an OmaError
func GetErrorCode(err error) ErrorCode {
	var omaErr *OmaError
	if errors.As(err, &omaErr) {
		return omaErr.Code
	}
	return ErrUnknown
}
